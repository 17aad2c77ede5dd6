package testutils

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/MacKrakenGames/Rhyming-Pairs/internal/identity"
	"github.com/MacKrakenGames/Rhyming-Pairs/internal/storage"
)

// MemoryBlobStore is an in-memory storage.BlobStore with failure injection.
type MemoryBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string

	PutErr    error
	RemoveErr error
	ListErr   error

	Calls []string
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *MemoryBlobStore) Put(_ context.Context, key string, data []byte, opts storage.PutOptions) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "put "+key)
	if m.PutErr != nil {
		return m.PutErr
	}
	if _, ok := m.objects[key]; ok && !opts.Overwrite {
		return fmt.Errorf("memory: %s: %w", key, storage.ErrObjectExists)
	}
	m.objects[key] = append([]byte(nil), data...)
	m.types[key] = opts.ContentType
	return nil
}

func (m *MemoryBlobStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, "remove "+key)
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	delete(m.objects, key)
	delete(m.types, key)
	return nil
}

func (m *MemoryBlobStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MemoryBlobStore) List(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryBlobStore) PublicURL(key string) string {
	return "https://blobs.test/puzzleimages/" + key
}

// Seed stores an object directly, bypassing failure injection.
func (m *MemoryBlobStore) Seed(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
}

// Object returns stored content and whether the key exists.
func (m *MemoryBlobStore) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}

func (m *MemoryBlobStore) ContentType(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.types[key]
}

func (m *MemoryBlobStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// Mutations counts put/remove calls.
func (m *MemoryBlobStore) Mutations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, call := range m.Calls {
		if strings.HasPrefix(call, "put ") || strings.HasPrefix(call, "remove ") {
			n++
		}
	}
	return n
}

// StaticVerifier maps fixed tokens to identities.
type StaticVerifier struct {
	mu     sync.Mutex
	tokens map[string]identity.Identity
	Calls  int
}

func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{tokens: map[string]identity.Identity{}}
}

// Add registers token for the given email; the identity ID is the token itself.
func (v *StaticVerifier) Add(token, email string) *StaticVerifier {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens[token] = identity.Identity{ID: token, Email: email}
	return v
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (*identity.Identity, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Calls++
	id, ok := v.tokens[token]
	if !ok {
		return nil, identity.ErrInvalidToken
	}
	return &id, nil
}
