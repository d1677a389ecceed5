package diagnostics

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/revisapp/internal/client/repositories/kv"
	"github.com/dmitrijs2005/revisapp/internal/filex"
	"github.com/dmitrijs2005/revisapp/internal/logging"
)

const (
	DefaultCapacity     = 100
	defaultRecentErrors = 10

	entrySeparator = "\n\n---\n\n"
	timeLayout     = "2006-01-02T15:04:05.000Z07:00"
)

// Collector is the bounded, persisted diagnostic log. It is safe for
// concurrent use.
type Collector struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int

	store  kv.Store
	logger logging.Logger
	now    func() time.Time
}

// NewCollector builds a collector over store and loads whatever entries a
// previous run left under kv.KeyLogs. capacity <= 0 means DefaultCapacity.
// A nil store keeps entries in memory only.
func NewCollector(ctx context.Context, store kv.Store, logger logging.Logger, capacity int) *Collector {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	c := &Collector{
		capacity: capacity,
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
	c.load(ctx)
	return c
}

func (c *Collector) load(ctx context.Context) {
	if c.store == nil {
		return
	}

	var stored []Entry
	found, err := kv.GetJSON(ctx, c.store, kv.KeyLogs, &stored)
	if err != nil {
		c.logger.Warn(ctx, "failed to load diagnostic logs", "error", err)
		return
	}
	if !found {
		return
	}
	if len(stored) > c.capacity {
		stored = stored[len(stored)-c.capacity:]
	}
	c.entries = stored
}

// Capacity is the maximum number of retained entries.
func (c *Collector) Capacity() int {
	return c.capacity
}

// Record stamps e and appends it, evicting the oldest entries beyond
// capacity. The buffer is then written to the store; a failed write is
// logged and otherwise ignored.
func (c *Collector) Record(ctx context.Context, e Entry) {
	e.Timestamp = c.now().UTC().Format(timeLayout)

	c.mu.Lock()
	c.entries = append(c.entries, e)
	if over := len(c.entries) - c.capacity; over > 0 {
		// copy down so the backing array does not grow without bound
		c.entries = append(c.entries[:0:0], c.entries[over:]...)
	}
	c.persist(ctx)
	c.mu.Unlock()

	c.echo(ctx, e)
}

// persist must be called with mu held.
func (c *Collector) persist(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := kv.SetJSON(ctx, c.store, kv.KeyLogs, c.entries); err != nil {
		c.logger.Error(ctx, "failed to save diagnostic logs", "error", err)
	}
}

func (c *Collector) echo(ctx context.Context, e Entry) {
	args := []any{"type", string(e.Type)}
	if e.RequestID != "" {
		args = append(args, "request_id", e.RequestID)
	}
	if e.Method != "" {
		args = append(args, "method", e.Method)
	}
	if e.Endpoint != "" {
		args = append(args, "endpoint", e.Endpoint)
	}
	if e.Status != 0 {
		args = append(args, "status", e.Status)
	}
	if len(e.Error) > 0 {
		args = append(args, "error", string(e.Error))
	}

	if e.Type == TypeError {
		c.logger.Error(ctx, e.Message, args...)
		return
	}
	c.logger.Debug(ctx, e.Message, args...)
}

func (c *Collector) Info(ctx context.Context, message string, data any) {
	c.Record(ctx, Entry{Type: TypeInfo, Message: message, Data: encodeData(data)})
}

func (c *Collector) Error(ctx context.Context, message string, err error) {
	c.Record(ctx, Entry{Type: TypeError, Message: message, Error: encodeError(err)})
}

// RequestError records a failed request under its request id.
func (c *Collector) RequestError(ctx context.Context, requestID, message string, err error) {
	c.Record(ctx, Entry{Type: TypeError, Message: message, Error: encodeError(err), RequestID: requestID})
}

func (c *Collector) APICall(ctx context.Context, requestID, method, endpoint string, body any) {
	c.Record(ctx, Entry{
		Type:      TypeAPICall,
		Method:    method,
		Endpoint:  endpoint,
		Data:      encodeData(body),
		Message:   method + " " + endpoint,
		RequestID: requestID,
	})
}

func (c *Collector) APIResponse(ctx context.Context, requestID, endpoint string, status int, data any) {
	c.Record(ctx, Entry{
		Type:      TypeAPIResponse,
		Endpoint:  endpoint,
		Status:    status,
		Data:      encodeData(data),
		Message:   fmt.Sprintf("Response from %s: %d", endpoint, status),
		RequestID: requestID,
	})
}

// Entries returns a copy of the buffer, oldest first.
func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]Entry(nil), c.entries...)
}

// Text renders all entries in the export format.
func (c *Collector) Text() string {
	entries := c.Entries()
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.Text()
	}
	return strings.Join(parts, entrySeparator)
}

// RecentErrors returns up to n of the newest ERROR entries, oldest first.
// n <= 0 means 10.
func (c *Collector) RecentErrors(n int) []Entry {
	if n <= 0 {
		n = defaultRecentErrors
	}

	var errs []Entry
	for _, e := range c.Entries() {
		if e.Type == TypeError {
			errs = append(errs, e)
		}
	}
	if len(errs) > n {
		errs = errs[len(errs)-n:]
	}
	return errs
}

// Clear drops every entry and removes the persisted copy.
func (c *Collector) Clear(ctx context.Context) {
	c.mu.Lock()
	c.entries = nil
	if c.store != nil {
		if err := c.store.Delete(ctx, kv.KeyLogs); err != nil {
			c.logger.Error(ctx, "failed to clear diagnostic logs", "error", err)
		}
	}
	c.mu.Unlock()

	c.logger.Info(ctx, "logs cleared")
}

// ExportFileName is the export file name for t, e.g.
// revisapp-logs-2024-05-01T10-20-30-123Z.txt.
func ExportFileName(t time.Time) string {
	stamp := t.UTC().Format(timeLayout)
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return "revisapp-logs-" + stamp + ".txt"
}

// Export writes Text into dir and returns the file path.
func (c *Collector) Export(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	path, err := filex.WriteFile(dir, ExportFileName(c.now()), []byte(c.Text()))
	if err != nil {
		return "", fmt.Errorf("export logs: %w", err)
	}
	return path, nil
}

