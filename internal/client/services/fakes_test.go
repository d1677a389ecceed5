package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/revisapp/internal/client/client"
	"github.com/dmitrijs2005/revisapp/internal/client/models"
	"github.com/dmitrijs2005/revisapp/internal/client/notify"
	"github.com/dmitrijs2005/revisapp/internal/client/repositories/kv"
)

// fakeDirectory implements client.Directory in memory. CreateUser adds the
// user without plate, the way the remote directory does.
type fakeDirectory struct {
	mu sync.Mutex

	Users     []models.DirectoryUser
	ListErr   error
	CreateErr error
	Workshops []models.Workshop
	FindErr   error

	Created   []models.User
	ListCalls int
	FindCEP   string
}

func (f *fakeDirectory) ListUsers(ctx context.Context) ([]models.DirectoryUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]models.DirectoryUser(nil), f.Users...), nil
}

func (f *fakeDirectory) CreateUser(ctx context.Context, u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.Created = append(f.Created, u)
	cep := u.Cep
	f.Users = append(f.Users, models.DirectoryUser{Name: u.Name, Email: u.Email, CepUsuario: &cep})
	return nil
}

func (f *fakeDirectory) FindWorkshops(ctx context.Context, cep string) ([]models.Workshop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.FindCEP = cep
	return f.Workshops, f.FindErr
}

// blockingDirectory holds CreateUser until release is closed.
type blockingDirectory struct {
	*fakeDirectory
	started chan struct{}
	release chan struct{}
}

func newBlockingDirectory() *blockingDirectory {
	return &blockingDirectory{
		fakeDirectory: &fakeDirectory{},
		started:       make(chan struct{}),
		release:       make(chan struct{}),
	}
}

func (b *blockingDirectory) CreateUser(ctx context.Context, u models.User) error {
	close(b.started)
	<-b.release
	return b.fakeDirectory.CreateUser(ctx, u)
}

// flakyStore fails every Get once failGet is set.
type flakyStore struct {
	*kv.MemoryRepository
	failGet atomic.Bool
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.failGet.Load() {
		return nil, errors.New("disk I/O error")
	}
	return s.MemoryRepository.Get(ctx, key)
}

type failingSender struct{}

func (failingSender) SendVerificationCode(context.Context, string, string, string) error {
	return errors.New("smtp down")
}

var (
	_ client.Directory = (*fakeDirectory)(nil)
	_ client.Directory = (*blockingDirectory)(nil)
	_ kv.Store         = (*flakyStore)(nil)
	_ notify.Sender    = failingSender{}
)

func strPtr(s string) *string { return &s }
