package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Store reads and writes values at dotted key paths inside a single JSON file.
// Every call reads the file; every write rewrites the whole file.
type Store struct {
	Path string
	Perm os.FileMode

	mu sync.Mutex
	// baseline is the content last returned by Root or written by this store.
	baseline []byte
	// merged is set when a write folded in content that differed from baseline.
	merged    bool
	lastWrite *time.Time
}

// NewStore creates a Store over the JSON document at path.
func NewStore(path string) *Store {
	return &Store{Path: path, Perm: 0644}
}

// Initialize creates the backing file as an empty object if it is missing.
func (s *Store) Initialize(ctx context.Context) error {
	if _, err := ensureFile(s.Path, s.Perm); err != nil {
		return fmt.Errorf("failed to initialize store %s: %w", s.Path, err)
	}
	return nil
}

// Path joins segments into a key path, escaping characters the path syntax
// would otherwise interpret, so each segment addresses exactly one key.
func Path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = pathEscaper.Replace(seg)
		// A leading colon would force the rest to be read as an object key.
		if strings.HasPrefix(escaped[i], ":") {
			escaped[i] = `\` + escaped[i]
		}
	}
	return strings.Join(escaped, ".")
}

var pathEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`*`, `\*`,
	`?`, `\?`,
	`|`, `\|`,
	`#`, `\#`,
	`@`, `\@`,
)

// Get returns the value at path, or fallback when any segment is absent.
func (s *Store) Get(ctx context.Context, path string, fallback any) (any, error) {
	res, err := s.Result(ctx, path)
	if err != nil {
		return nil, err
	}
	if !res.Exists() {
		return fallback, nil
	}
	return res.Value(), nil
}

// Result returns the raw query result at path.
func (s *Store) Result(ctx context.Context, path string) (gjson.Result, error) {
	s.mu.Lock()
	data, err := s.read()
	s.mu.Unlock()
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.GetBytes(data, path), nil
}

// Root returns the whole document and takes it as the new baseline for Changed.
func (s *Store) Root(ctx context.Context) (gjson.Result, error) {
	s.mu.Lock()
	data, err := s.read()
	if err == nil {
		s.baseline = data
		s.merged = false
	}
	s.mu.Unlock()
	if err != nil {
		return gjson.Result{}, err
	}
	return gjson.ParseBytes(data), nil
}

// Set writes value at path, creating intermediate objects, and returns value.
func (s *Store) Set(ctx context.Context, path string, value any) (any, error) {
	err := s.update(func(data []byte) ([]byte, error) {
		return sjson.SetBytes(data, path, value)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set %q: %w", path, err)
	}
	return value, nil
}

// SetRaw writes pre-encoded JSON at path.
func (s *Store) SetRaw(ctx context.Context, path string, raw []byte) error {
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("failed to set %q: invalid json value", path)
	}
	err := s.update(func(data []byte) ([]byte, error) {
		return sjson.SetRawBytes(data, path, raw)
	})
	if err != nil {
		return fmt.Errorf("failed to set %q: %w", path, err)
	}
	return nil
}

// Delete removes the value at path. Missing paths are not an error.
func (s *Store) Delete(ctx context.Context, path string) error {
	err := s.update(func(data []byte) ([]byte, error) {
		return sjson.DeleteBytes(data, path)
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", path, err)
	}
	return nil
}

// Changed reports whether data holds anything the last Root did not see,
// either directly or folded into a later write of this store. The watcher
// uses it to tell its own writes from external edits.
func (s *Store) Changed(data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merged || !bytes.Equal(s.baseline, data)
}

// update runs a whole-document read-modify-write under the store lock.
func (s *Store) update(fn func([]byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	if s.baseline != nil && !bytes.Equal(s.baseline, data) {
		s.merged = true
	}

	next, err := fn(data)
	if err != nil {
		return err
	}

	out := pretty.Pretty(next)
	if err := writeFileAtomic(s.Path, out, s.Perm); err != nil {
		return err
	}

	now := time.Now()
	s.baseline = out
	s.lastWrite = &now
	return nil
}

// read must be called with s.mu held.
func (s *Store) read() ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []byte("{}"), nil
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("store %s holds invalid json", s.Path)
	}
	return data, nil
}
