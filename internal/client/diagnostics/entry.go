package diagnostics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type EntryType string

const (
	TypeAPICall     EntryType = "API_CALL"
	TypeAPIResponse EntryType = "API_RESPONSE"
	TypeError       EntryType = "ERROR"
	TypeInfo        EntryType = "INFO"
)

// Entry is one record. Data and Error hold arbitrary JSON so entries saved
// by other clients under the same key load unchanged.
type Entry struct {
	Timestamp string          `json:"timestamp"`
	Type      EntryType       `json:"type"`
	Endpoint  string          `json:"endpoint,omitempty"`
	Method    string          `json:"method,omitempty"`
	Status    int             `json:"status,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     json.RawMessage `json:"error,omitempty"`
	Message   string          `json:"message,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
}

// errorDetail is the JSON shape stored in Entry.Error for Go errors.
type errorDetail struct {
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
}

func encodeError(err error) json.RawMessage {
	if err == nil {
		return nil
	}
	b, _ := json.Marshal(errorDetail{Message: err.Error(), Name: fmt.Sprintf("%T", err)})
	return b
}

// encodeData marshals v, falling back to its %v string when v is not JSON
// encodable. nil and JSON null produce no data.
func encodeData(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		if len(raw) == 0 || !json.Valid(raw) {
			return nil
		}
		return raw
	}
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(fmt.Sprintf("%v", v))
	}
	if string(b) == "null" {
		return nil
	}
	return b
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// empty mirrors the falsy check of the export format: "", 0, false and
// null are skipped.
func emptyJSON(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	switch s {
	case "", "null", `""`, "0", "false":
		return true
	}
	return false
}

// Text renders the entry in the export format.
func (e Entry) Text() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s] %s", e.Timestamp, e.Type, e.Message)

	if e.Endpoint != "" {
		sb.WriteString("\n  Endpoint: " + e.Endpoint)
	}
	if e.Method != "" {
		sb.WriteString("\n  Method: " + e.Method)
	}
	if e.Status != 0 {
		fmt.Fprintf(&sb, "\n  Status: %d", e.Status)
	}
	if !emptyJSON(e.Data) {
		sb.WriteString("\n  Data: " + indentJSON(e.Data))
	}
	if !emptyJSON(e.Error) {
		sb.WriteString("\n  Error: " + indentJSON(e.Error))
	}
	return sb.String()
}
