// Package session persists menu state across rofi restarts. Within one rofi
// run state travels through the protocol's data/info payloads; a session
// store is only needed for values that should outlive the rofi process
// itself.
package session

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"os/user"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/atomicstack/rofi-menu-control/internal/logging/events"
)

// Store is a key/value bag with explicit load/save points. Implementations
// are not safe for concurrent use; one invocation owns one store.
type Store interface {
	Load() error
	Save() error
	Get(key string) (any, bool)
	Set(key string, value any)
	Delete(key string)
	Clear()
}

// Memory is a store that lives for a single invocation.
type Memory struct {
	values map[string]any
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]any)}
}

func (m *Memory) Load() error { return nil }
func (m *Memory) Save() error { return nil }

func (m *Memory) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(key string, value any) {
	m.values[key] = value
}

func (m *Memory) Delete(key string) {
	delete(m.values, key)
}

func (m *Memory) Clear() {
	m.values = make(map[string]any)
}

// File is a store backed by a JSON file under the user cache directory. The
// file name is derived from the invoking user and script path so independent
// menu scripts get independent sessions. Reads and writes hold a file lock
// because rofi can re-invoke the script before a previous one finished.
type File struct {
	Memory
	path string
}

const defaultCacheDir = "rofi-menu-control"

// NewFile creates a file store rooted at dir. An empty dir selects
// ~/.cache/rofi-menu-control.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(cache, defaultCacheDir)
	}
	return &File{
		Memory: *NewMemory(),
		path:   filepath.Join(dir, sessionFilename()+".json"),
	}, nil
}

func sessionFilename() string {
	h := sha256.New()
	if u, err := user.Current(); err == nil {
		h.Write([]byte(u.Username))
	}
	h.Write([]byte(os.Args[0]))
	return hex.EncodeToString(h.Sum(nil))
}

// Path reports the backing file location.
func (f *File) Path() string { return f.path }

func (f *File) Load() error {
	// First run: no session file yet, and possibly no cache directory to
	// create the lock file in either.
	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return nil
	}
	lock := flock.New(f.path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	values := make(map[string]any)
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	f.values = values
	events.Session.Loaded(f.path, len(values))
	return nil
}

func (f *File) Save() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	lock := flock.New(f.path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	data, err := json.Marshal(f.values)
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return err
	}
	events.Session.Saved(f.path, len(f.values))
	return nil
}

func (f *File) Clear() {
	f.Memory.Clear()
	events.Session.Cleared(f.path)
}
