package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/kluelabs/extdev/pkg/extdev/logging"
)

// Fingerprint is a digest of a file's byte content. Two files with equal
// content always carry equal fingerprints.
type Fingerprint string

// NoFingerprint marks a file that existed but could not be read. It compares
// unequal to every real digest, so a file flipping between readable and
// unreadable registers as a change.
const NoFingerprint Fingerprint = ""

// Snapshot maps root-relative, slash-separated file paths to content
// fingerprints. A snapshot is rebuilt in full on every poll cycle and never
// mutated in place.
type Snapshot map[string]Fingerprint

// Stats summarizes one snapshot build.
type Stats struct {
	// Files is the number of watched files captured.
	Files int

	// Bytes is the total byte count fingerprinted.
	Bytes int64

	// Unreadable is the number of files recorded with an absent fingerprint.
	Unreadable int

	// Elapsed is the time the build took.
	Elapsed time.Duration
}

// Build captures the current state of the watched tree as a Snapshot.
// Every file under the root that passes the WatchSet filters is fingerprinted
// over its raw bytes. Files that cannot be read are recorded with
// NoFingerprint rather than failing the build; only a missing or unreadable
// root is fatal.
func Build(ws *WatchSet) (Snapshot, error) {
	snap, _, err := build(ws)
	return snap, err
}

// build is the internal entry point that also reports build statistics.
func build(ws *WatchSet) (Snapshot, Stats, error) {
	start := time.Now()

	root, err := resolveRoot(ws.Root)
	if err != nil {
		return nil, Stats{}, err
	}

	b := &snapshotBuilder{
		ws:   ws,
		root: root,
		snap: make(Snapshot),
		log:  logging.Get("watch"),
	}

	conf := fastwalk.Config{
		Follow: false, // Don't follow symlinks.
	}
	if err := fastwalk.Walk(&conf, root, b.callback); err != nil {
		return nil, Stats{}, err
	}

	b.stats.Files = len(b.snap)
	b.stats.Elapsed = time.Since(start)
	return b.snap, b.stats, nil
}

// resolveRoot resolves the root path to absolute and verifies it is a
// directory.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", os.ErrInvalid
	}

	return abs, nil
}

// snapshotBuilder accumulates one snapshot during a walk. fastwalk invokes
// the callback from multiple goroutines, so the map and counters are
// mutex-guarded.
type snapshotBuilder struct {
	ws   *WatchSet
	root string
	log  *logging.Logger

	mu    sync.Mutex
	snap  Snapshot
	stats Stats
}

// callback is the fs.WalkDirFunc passed to fastwalk.
func (b *snapshotBuilder) callback(p string, d fs.DirEntry, err error) error {
	// Unreadable directories are logged and skipped; their files simply
	// drop out of the snapshot until they are listable again.
	if err != nil {
		b.log.Debug("walk error", "path", p, "error", err)
		return nil
	}

	rel, relErr := filepath.Rel(b.root, p)
	if relErr != nil {
		b.log.Debug("relative path error", "path", p, "error", relErr)
		return nil
	}
	rel = filepath.ToSlash(rel)

	if d.IsDir() {
		if b.ws.SkipDir(rel) {
			return fastwalk.SkipDir
		}
		return nil
	}

	if !d.Type().IsRegular() {
		return nil
	}

	if !b.ws.Match(rel) {
		return nil
	}

	fp, n, fpErr := fingerprintFile(p)
	if fpErr != nil {
		// A single unreadable file must not abort the scan; record it
		// as absent and let the next cycle retry.
		b.log.Debug("unreadable file", "path", p, "error", fpErr)
		b.mu.Lock()
		b.snap[rel] = NoFingerprint
		b.stats.Unreadable++
		b.mu.Unlock()
		return nil
	}

	b.mu.Lock()
	b.snap[rel] = fp
	b.stats.Bytes += n
	b.mu.Unlock()
	return nil
}

// fingerprintFile computes the content fingerprint of a single file and
// reports how many bytes it read.
func fingerprintFile(path string) (Fingerprint, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return NoFingerprint, 0, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return NoFingerprint, n, err
	}

	return Fingerprint(hex.EncodeToString(h.Sum(nil))), n, nil
}
