package jdbtest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/hupe1980/jdb/blobstore"
)

// ErrInjected is the default error returned by injected faults.
var ErrInjected = errors.New("jdbtest: injected fault")

// Fault defines specific failure behavior.
type Fault struct {
	FailAfterBytes int64 // Fail reads that reach past this many bytes of the blob. -1 to disable.
	FailOnOpen     bool
	FailOnClose    bool
	Err            error
}

// FaultyStore is a BlobStore wrapper that can inject errors.
type FaultyStore struct {
	Store   blobstore.BlobStore
	mu      sync.Mutex
	rules   map[string]Fault // name pattern -> Fault
	Default Fault

	closed map[string]int
}

// NewFaultyStore creates a new FaultyStore wrapping store.
func NewFaultyStore(store blobstore.BlobStore) *FaultyStore {
	return &FaultyStore{
		Store:   store,
		rules:   make(map[string]Fault),
		Default: Fault{FailAfterBytes: -1},
		closed:  make(map[string]int),
	}
}

// AddRule adds a fault injection rule for blob names containing pattern.
func (f *FaultyStore) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// Closed returns how often blobs named name were closed.
func (f *FaultyStore) Closed(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed[name]
}

func (f *FaultyStore) fault(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()

	fault := f.Default
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
		}
	}
	if fault.Err == nil {
		fault.Err = ErrInjected
	}
	return fault
}

func (f *FaultyStore) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	fault := f.fault(name)
	if fault.FailOnOpen {
		return nil, fault.Err
	}
	b, err := f.Store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &faultyBlob{Blob: b, store: f, name: name, fault: fault}, nil
}

func (f *FaultyStore) List(ctx context.Context, prefix string) ([]string, error) {
	return f.Store.List(ctx, prefix)
}

type faultyBlob struct {
	blobstore.Blob
	store *FaultyStore
	name  string
	fault Fault
}

func (fb *faultyBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if limit := fb.fault.FailAfterBytes; limit >= 0 && off+int64(len(p)) > limit {
		return 0, fb.fault.Err
	}
	return fb.Blob.ReadAt(ctx, p, off)
}

func (fb *faultyBlob) Close() error {
	fb.store.mu.Lock()
	fb.store.closed[fb.name]++
	fb.store.mu.Unlock()

	err := fb.Blob.Close()
	if fb.fault.FailOnClose {
		return fb.fault.Err
	}
	return err
}
