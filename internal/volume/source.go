package volume

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSource reads files addressed with boot-manager style paths
// (backslash separated, case-insensitive).
type FileSource interface {
	Exists(dir, name string) bool
	ReadAll(dir, name string) ([]byte, error)
}

// JoinPath joins a directory and a file name with a single backslash. An
// absolute name (leading separator) ignores dir.
func JoinPath(dir, name string) string {
	name = strings.ReplaceAll(name, "/", `\`)
	if strings.HasPrefix(name, `\`) || dir == "" {
		return CleanPath(name)
	}
	return CleanPath(strings.ReplaceAll(dir, "/", `\`) + `\` + name)
}

// CleanPath converts forward slashes, collapses repeated separators and
// drops a trailing separator.
func CleanPath(p string) string {
	p = strings.ReplaceAll(p, "/", `\`)
	var b strings.Builder
	prevSep := false
	for _, r := range p {
		if r == '\\' {
			if prevSep {
				continue
			}
			prevSep = true
		} else {
			prevSep = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if len(out) > 1 && strings.HasSuffix(out, `\`) {
		out = strings.TrimSuffix(out, `\`)
	}
	return out
}

// Dir returns the directory part of a boot-manager path.
func Dir(p string) string {
	p = CleanPath(p)
	idx := strings.LastIndex(p, `\`)
	if idx <= 0 {
		if idx == 0 {
			return `\`
		}
		return ""
	}
	return p[:idx]
}

func splitPath(p string) []string {
	parts := strings.Split(CleanPath(p), `\`)
	out := parts[:0]
	for _, part := range parts {
		if part != "" && part != "." {
			out = append(out, part)
		}
	}
	return out
}

// DirSource serves files from a host directory.
type DirSource struct {
	Root string
}

func (d DirSource) resolve(dir, name string) (string, error) {
	current := d.Root
	for _, part := range splitPath(JoinPath(dir, name)) {
		if part == ".." {
			return "", fmt.Errorf("path escapes volume root: %s", JoinPath(dir, name))
		}
		candidate := filepath.Join(current, part)
		if _, err := os.Lstat(candidate); err == nil {
			current = candidate
			continue
		}
		entries, err := os.ReadDir(current)
		if err != nil {
			return "", err
		}
		matched := ""
		for _, entry := range entries {
			if strings.EqualFold(entry.Name(), part) {
				matched = entry.Name()
				break
			}
		}
		if matched == "" {
			return "", fs.ErrNotExist
		}
		current = filepath.Join(current, matched)
	}
	return current, nil
}

// Exists reports whether the file can be resolved.
func (d DirSource) Exists(dir, name string) bool {
	path, err := d.resolve(dir, name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadAll returns the file contents.
func (d DirSource) ReadAll(dir, name string) ([]byte, error) {
	path, err := d.resolve(dir, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", JoinPath(dir, name), err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", JoinPath(dir, name), err)
	}
	return data, nil
}

// HostPath maps a boot-manager path to the host path, if it exists.
func (d DirSource) HostPath(dir, name string) (string, bool) {
	path, err := d.resolve(dir, name)
	return path, err == nil
}

// MemSource is an in-memory FileSource keyed by boot-manager path.
type MemSource map[string][]byte

func memKey(dir, name string) string {
	return strings.ToLower(strings.TrimPrefix(JoinPath(dir, name), `\`))
}

// Put stores data under the given path.
func (m MemSource) Put(path string, data string) MemSource {
	m[memKey("", path)] = []byte(data)
	return m
}

// Exists reports whether path is present.
func (m MemSource) Exists(dir, name string) bool {
	_, ok := m[memKey(dir, name)]
	return ok
}

// ReadAll returns the stored bytes or fs.ErrNotExist.
func (m MemSource) ReadAll(dir, name string) ([]byte, error) {
	data, ok := m[memKey(dir, name)]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", JoinPath(dir, name), fs.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

// IsNotExist reports whether err means the file is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
