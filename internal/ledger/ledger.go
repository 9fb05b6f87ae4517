// Package ledger records what an emit run wrote, so later runs and
// vellum clean know exactly which files the tool owns.
package ledger

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion invalidates ledgers written by incompatible builds.
// Increment when the Ledger format changes.
const SchemaVersion uint16 = 1

const (
	dirName  = ".vellum"
	fileName = "ledger.mp"
)

// Digest is a SHA-256 content hash, the same shape source units carry.
type Digest [32]byte

// DigestBytes hashes rendered output for the ledger record.
func DigestBytes(b []byte) Digest {
	return sha256.Sum256(b)
}

// Output is one artifact the run wrote or verified as already current.
type Output struct {
	// Path is the absolute destination.
	Path string
	// Digest is the content hash at record time.
	Digest Digest
}

// Stats keeps the run counters worth carrying across runs.
type Stats struct {
	Units   int
	Written int
	Skipped int
}

// Ledger is the cross-run record of the last successful emit.
type Ledger struct {
	Schema     uint16
	RunID      string
	FinishedAt time.Time
	Outputs    []Output
	Stats      Stats
}

// Path returns the ledger location for an emit directory.
func Path(emitDir string) string {
	return filepath.Join(emitDir, dirName, fileName)
}

// New builds a record for a finished run.
func New(outputs []Output, stats Stats) *Ledger {
	return &Ledger{
		Schema:     SchemaVersion,
		RunID:      uuid.New().String(),
		FinishedAt: time.Now().UTC(),
		Outputs:    outputs,
		Stats:      stats,
	}
}

// Save writes the ledger under emitDir, replacing any previous one
// atomically so a crashed run never leaves a half-written record.
func Save(emitDir string, led *Ledger) error {
	if led == nil {
		return errors.New("ledger: nil ledger")
	}
	p := Path(emitDir)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp ledger: %w", err)
	}
	tmp := f.Name()
	defer func() {
		_ = os.Remove(tmp)
	}()
	if err := msgpack.NewEncoder(f).Encode(led); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp ledger: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("failed to replace ledger: %w", err)
	}
	return nil
}

// Load reads the ledger for an emit directory. A missing file or a
// schema mismatch reports ok=false with no error; both just mean
// there is no usable record.
func Load(emitDir string) (*Ledger, bool, error) {
	f, err := os.Open(Path(emitDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	var led Ledger
	if err := msgpack.NewDecoder(f).Decode(&led); err != nil {
		return nil, false, fmt.Errorf("failed to decode ledger: %w", err)
	}
	if led.Schema != SchemaVersion {
		return nil, false, nil
	}
	return &led, true, nil
}
