package outline

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/tally/internal/errors"
	"gopkg.in/yaml.v3"
)

// documentVersion is written at the top of every graph file.
const documentVersion = 1

// document is the on-disk layout of a graph file.
type document struct {
	Version int     `yaml:"version"`
	Pages   []*Page `yaml:"pages"`
}

// FileStore is a MemoryStore that rewrites a YAML file after every mutation.
type FileStore struct {
	*MemoryStore
	path string
}

// OpenFile loads the graph at path. A missing file is an empty outline; the
// file is created on the first write.
func OpenFile(path string) (*FileStore, error) {
	fs := &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
	}

	pages, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	fs.MemoryStore.reset(pages)
	fs.MemoryStore.persist = fs.write

	return fs, nil
}

// Path returns the graph file location.
func (f *FileStore) Path() string {
	return f.path
}

// Reload discards in-memory state and re-reads the graph file.
func (f *FileStore) Reload() error {
	pages, err := readDocument(f.path)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset(pages)
	return nil
}

func readDocument(path string) ([]*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Cannot read graph file "+path,
			"Check the file exists and is readable")
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Graph file is not valid YAML: "+path,
			"Fix the syntax or move the file aside to start a new graph")
	}
	return doc.Pages, nil
}

// write serializes pages and atomically replaces the graph file.
// Called by MemoryStore with its lock held.
func (f *FileStore) write(pages []*Page) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(document{Version: documentVersion, Pages: pages}); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
