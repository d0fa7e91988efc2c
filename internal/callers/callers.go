// Package callers records the network addresses that call a service, and
// the user names an operator has assigned to them.
package callers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
)

// Store is a get-or-insert table keyed by network address.
type Store interface {
	// Lookup returns the user name recorded for addr, or addr itself if no
	// name is recorded. Unknown addresses are inserted with no name.
	Lookup(addr string) (string, error)
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu    sync.Mutex
	users map[string]string
}

// Set records a user name for addr.
func (ms *MemStore) Set(addr, user string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.users == nil {
		ms.users = make(map[string]string)
	}
	ms.users[addr] = user
}

// Lookup implements Store.
func (ms *MemStore) Lookup(addr string) (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.users == nil {
		ms.users = make(map[string]string)
	}
	return lookup(ms.users, addr), nil
}

// Addrs returns every recorded address in sorted order.
func (ms *MemStore) Addrs() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return sortedKeys(ms.users)
}

// FileStore is a Store kept in a flat file of colon delimited "ip:user"
// records under a header row. The file is re-read on every lookup, so names
// edited into it take effect without a restart, and rewritten whenever a
// new address is inserted. A missing file is an empty table.
type FileStore struct {
	Path string

	mu sync.Mutex
}

// Lookup implements Store.
func (fs *FileStore) Lookup(addr string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	users, err := fs.load()
	if err != nil {
		return addr, err
	}
	_, known := users[addr]
	user := lookup(users, addr)
	if !known {
		if err := fs.save(users); err != nil {
			return user, err
		}
	}
	return user, nil
}

func (fs *FileStore) load() (map[string]string, error) {
	users := make(map[string]string)
	f, err := os.Open(fs.Path)
	if errors.Is(err, os.ErrNotExist) {
		return users, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := readTable(f, users); err != nil {
		return nil, fmt.Errorf("reading %v: %w", fs.Path, err)
	}
	return users, nil
}

func (fs *FileStore) save(users map[string]string) error {
	f, err := os.Create(fs.Path)
	if err != nil {
		return err
	}
	if err := writeTable(f, users); err != nil {
		f.Close()
		return fmt.Errorf("writing %v: %w", fs.Path, err)
	}
	return f.Close()
}

var header = []string{"ip", "user"}

func readTable(r io.Reader, users map[string]string) error {
	cr := csv.NewReader(r)
	cr.Comma = ':'
	cr.FieldsPerRecord = len(header)
	for first := true; ; first = false {
		rec, err := cr.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if first && rec[0] == header[0] && rec[1] == header[1] {
			continue
		}
		users[rec[0]] = rec[1]
	}
}

func writeTable(w io.Writer, users map[string]string) error {
	cw := csv.NewWriter(w)
	cw.Comma = ':'
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, addr := range sortedKeys(users) {
		if err := cw.Write([]string{addr, users[addr]}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func lookup(users map[string]string, addr string) string {
	user, known := users[addr]
	if !known {
		users[addr] = ""
	}
	if user == "" {
		return addr
	}
	return user
}

func sortedKeys(users map[string]string) []string {
	keys := make([]string, 0, len(users))
	for key := range users {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
