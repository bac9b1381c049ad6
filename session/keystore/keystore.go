// Package keystore persists the session to disk, encrypted with a key derived
// from a passphrase. It is the durable counterpart of session.MemStore: the
// CLI opens it once per invocation so a login survives across processes.
package keystore

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/schoolctl/schoolctl/internal/errors"
	"github.com/schoolctl/schoolctl/session"
)

// Keystore is a file-backed session.Store. All state is held in memory and
// flushed to the file on every write; the file is replaced atomically so a
// crash never leaves a partially written session behind.
type Keystore struct {
	path       string
	passphrase string

	mu   sync.RWMutex
	salt []byte
	snap session.Snapshot
}

var _ session.Store = (*Keystore)(nil)

type fileFormat struct {
	Salt string `json:"salt"`
	Data string `json:"data"`
}

// Open loads the keystore at path, creating an empty one if the file does not
// exist. A wrong passphrase surfaces as ErrKeystoreLocked.
func Open(path, passphrase string) (*Keystore, error) {
	ks := &Keystore{path: path, passphrase: passphrase}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		salt, saltErr := newSalt()
		if saltErr != nil {
			return nil, errors.Wrapf(saltErr, "generate keystore salt")
		}
		ks.salt = salt
		return ks, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read keystore %q", path)
	}

	var ff fileFormat
	if err := json.Unmarshal(raw, &ff); err != nil {
		return nil, errors.Wrapf(errors.ErrKeystoreCorrupted, "parse keystore %q", path)
	}

	salt, err := hex.DecodeString(ff.Salt)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrKeystoreCorrupted, "decode keystore salt")
	}
	ciphertext, err := hex.DecodeString(ff.Data)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrKeystoreCorrupted, "decode keystore data")
	}

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, errors.Wrapf(err, "derive keystore key")
	}

	plaintext, err := decrypt(ciphertext, key)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrKeystoreLocked, "open keystore %q", path)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(plaintext, &snap); err != nil {
		return nil, errors.Wrapf(errors.ErrKeystoreCorrupted, "decode keystore session")
	}

	ks.salt = salt
	ks.snap = snap
	return ks, nil
}

func (ks *Keystore) Snapshot() (session.Snapshot, error) {
	ks.mu.RLock()
	defer ks.mu.RUnlock()
	return ks.snap, nil
}

func (ks *Keystore) SetSession(snap session.Snapshot) error {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	old := ks.snap
	ks.snap = snap
	if err := ks.flush(); err != nil {
		ks.snap = old
		return err
	}
	return nil
}

func (ks *Keystore) SetTokens(creds session.Credentials) error {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	old := ks.snap
	ks.snap.Credentials = creds
	if err := ks.flush(); err != nil {
		ks.snap = old
		return err
	}
	return nil
}

func (ks *Keystore) Clear() error {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	ks.snap = session.Snapshot{}
	if err := os.Remove(ks.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove keystore %q", ks.path)
	}
	return nil
}

// flush writes the encrypted session to disk via a temp file and rename.
// Callers hold ks.mu.
func (ks *Keystore) flush() error {
	plaintext, err := json.Marshal(ks.snap)
	if err != nil {
		return errors.Wrapf(err, "encode keystore session")
	}

	key, err := deriveKey(ks.passphrase, ks.salt)
	if err != nil {
		return errors.Wrapf(err, "derive keystore key")
	}

	ciphertext, err := encrypt(plaintext, key)
	if err != nil {
		return errors.Wrapf(err, "encrypt keystore session")
	}

	out, err := json.Marshal(fileFormat{
		Salt: hex.EncodeToString(ks.salt),
		Data: hex.EncodeToString(ciphertext),
	})
	if err != nil {
		return errors.Wrapf(err, "encode keystore file")
	}

	dir := filepath.Dir(ks.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrapf(err, "create keystore dir %q", dir)
	}

	tmp, err := os.CreateTemp(dir, ".keystore-*")
	if err != nil {
		return errors.Wrapf(err, "create keystore temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "write keystore temp file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "chmod keystore temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "close keystore temp file")
	}

	if err := os.Rename(tmpName, ks.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "replace keystore %q", ks.path)
	}
	return nil
}
