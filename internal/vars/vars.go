// Package vars stores the small set of persistent boot-manager variables,
// such as the title of the previously booted entry.
package vars

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// PreviousBoot names the variable holding the last chosen entry's title.
const PreviousBoot = "PreviousBoot"

// Store reads and writes named variables.
type Store interface {
	Get(name string) (string, bool)
	Set(name, value string) error
}

// Dir keeps one file per variable under a directory.
type Dir struct {
	Path string
}

// Get returns the trimmed variable value.
func (d Dir) Get(name string) (string, bool) {
	if d.Path == "" {
		return "", false
	}
	data, err := os.ReadFile(filepath.Join(d.Path, name))
	if err != nil {
		return "", false
	}
	value := strings.TrimRight(string(data), "\r\n\x00")
	return value, true
}

// Set writes the variable, creating the directory when missing.
func (d Dir) Set(name, value string) error {
	if d.Path == "" {
		return errors.New("variable directory not configured")
	}
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("create variable directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d.Path, name), []byte(value), 0o644); err != nil {
		return fmt.Errorf("write variable %s: %w", name, err)
	}
	return nil
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns a store seeded with values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: map[string]string{}}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *Memory) Get(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[name]
	return v, ok
}

func (m *Memory) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[name] = value
	return nil
}

// IsNotExist reports a missing variable file.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
