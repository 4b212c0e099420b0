package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLockUnlock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
}

func TestTryLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")

	holder := NewFileLock(lockPath)
	if err := holder.Lock(); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}

	other := NewFileLock(lockPath)
	acquired, err := other.TryLock()
	if err != nil {
		t.Fatalf("TryLock() error = %v", err)
	}
	if acquired {
		t.Error("TryLock() acquired a lock that is already held")
	}

	if err := holder.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	acquired, err = other.TryLock()
	if err != nil || !acquired {
		t.Errorf("TryLock() after release = %v, %v", acquired, err)
	}
	other.Unlock()
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	if err := AtomicWrite(path, []byte("first\n")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}
	if err := AtomicWrite(path, []byte("second\n")); err != nil {
		t.Fatalf("AtomicWrite() overwrite error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "second\n" {
		t.Errorf("content = %q, want %q", data, "second\n")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0644 {
		t.Errorf("permissions = %o, want 644", perm)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".htmlinspector", "config.yaml")

	if err := WriteFile(path, []byte("a: 1\n"), false); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	err := WriteFile(path, []byte("a: 2\n"), false)
	if !errors.Is(err, ErrExists) {
		t.Fatalf("WriteFile() without overwrite error = %v, want ErrExists", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "a: 1\n" {
		t.Errorf("existing file was modified: %q", data)
	}

	if err := WriteFile(path, []byte("a: 3\n"), true); err != nil {
		t.Fatalf("WriteFile() with overwrite error = %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "a: 3\n" {
		t.Errorf("content = %q, want overwritten", data)
	}
}

func TestWriteFileConcurrentCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		exists  int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := WriteFile(path, []byte(fmt.Sprintf("writer: %d\n", i)), false)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrExists):
				exists++
			default:
				t.Errorf("writer %d: unexpected error %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("created = %d, want exactly one writer to succeed", created)
	}
	if created+exists != writers {
		t.Errorf("created+exists = %d, want %d", created+exists, writers)
	}
}
