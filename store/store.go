package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

// FileStore persists each collection as a single JSON array in
// <dir>/<name>.json. An absent file reads as an empty collection. Appends
// rewrite the whole array through a temp file and rename, and a per-collection
// mutex serializes the read-modify-write so concurrent requests within this
// process cannot lose records.
type FileStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *FileStore) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load reads a collection into out, which must be a pointer to a slice. An
// absent backing file leaves out as an empty slice.
func (s *FileStore) Load(collection string, out any) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return s.load(collection, out)
}

func (s *FileStore) load(collection string, out any) error {
	data, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		data = []byte("[]")
	} else if err != nil {
		return errs.NewPersistenceError("read", collection, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errs.NewPersistenceError("decode", collection, err)
	}
	return nil
}

// Append adds one record to the end of a collection, preserving prior order,
// and persists the updated array.
func (s *FileStore) Append(collection string, record any) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	var records []json.RawMessage
	if err := s.load(collection, &records); err != nil {
		return err
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return errs.NewPersistenceError("encode record for", collection, err)
	}
	records = append(records, encoded)

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errs.NewPersistenceError("encode", collection, err)
	}

	return s.write(collection, data)
}

// write lands the array through a temp file and rename so a crash mid-write
// never leaves a truncated store behind.
func (s *FileStore) write(collection string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errs.NewPersistenceError("create directory for", collection, err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+"-*.tmp")
	if err != nil {
		return errs.NewPersistenceError("create temp file for", collection, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errs.NewPersistenceError("write", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errs.NewPersistenceError("write", collection, err)
	}

	if err := os.Rename(tmpName, s.path(collection)); err != nil {
		os.Remove(tmpName)
		return errs.NewPersistenceError("persist", collection, fmt.Errorf("rename: %w", err))
	}
	return nil
}
