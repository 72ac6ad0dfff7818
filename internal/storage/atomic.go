package storage

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// atomicFiles writes sheet files through a temp file and a rename, keeping
// one backup of the previous content when a backup directory is set.
type atomicFiles struct {
	locksMu   sync.Mutex
	locks     map[string]*sync.RWMutex
	backupDir string
}

func newAtomicFiles(backupDir string) *atomicFiles {
	return &atomicFiles{
		locks:     make(map[string]*sync.RWMutex),
		backupDir: backupDir,
	}
}

func (a *atomicFiles) write(filename string, data []byte) error {
	lock := a.lock(filename)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := a.backup(filename); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	tempFile := filename + ".tmp." + strconv.FormatInt(time.Now().UnixNano(), 36)
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	written, err := os.ReadFile(tempFile)
	if err != nil || sha256.Sum256(written) != sha256.Sum256(data) {
		os.Remove(tempFile)
		return fmt.Errorf("integrity check failed for %s", filepath.Base(filename))
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// read returns nil data for a file that does not exist yet. An empty file
// falls back to its backup.
func (a *atomicFiles) read(filename string) ([]byte, error) {
	lock := a.lock(filename)
	lock.RLock()
	defer lock.RUnlock()

	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 && a.backupDir != "" {
		backup, err := os.ReadFile(a.backupPath(filename))
		if err == nil {
			return backup, nil
		}
	}
	return data, nil
}

func (a *atomicFiles) backup(filename string) error {
	if a.backupDir == "" {
		return nil
	}
	data, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(a.backupDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(a.backupPath(filename), data, 0644)
}

func (a *atomicFiles) backupPath(filename string) string {
	return filepath.Join(a.backupDir, filepath.Base(filename)+".backup")
}

func (a *atomicFiles) lock(filename string) *sync.RWMutex {
	a.locksMu.Lock()
	defer a.locksMu.Unlock()

	if lock, ok := a.locks[filename]; ok {
		return lock
	}
	lock := &sync.RWMutex{}
	a.locks[filename] = lock
	return lock
}
