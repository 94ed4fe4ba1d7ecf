package watch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates a file with the given content, creating parent
// directories as needed.
func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

// extensionTree creates a small browser-extension-shaped project tree.
func extensionTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeFile(t, root, "manifest.json", `{"name": "Klue"}`)
	writeFile(t, root, "popup.html", "<html></html>")
	writeFile(t, root, "popup.css", "body {}")
	writeFile(t, root, "src/content.js", "console.log('content')")
	writeFile(t, root, "src/background/worker.js", "console.log('worker')")
	writeFile(t, root, "README.md", "# Klue")
	writeFile(t, root, "package-lock.json", "{}")
	writeFile(t, root, "node_modules/dep/index.js", "module.exports = {}")
	return root
}

// defaultSet builds a WatchSet with the stock extension filters.
func defaultSet(root string) *WatchSet {
	return NewSet(root,
		WithExtensions(".js", ".html", ".css", ".json"),
		WithIgnore("package-lock.json"),
		WithIgnorePatterns("node_modules/**", ".git/**", "dist/**"),
	)
}

func TestBuild(t *testing.T) {
	root := extensionTree(t)

	snap, err := Build(defaultSet(root))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	expected := []string{
		"manifest.json",
		"popup.html",
		"popup.css",
		"src/content.js",
		"src/background/worker.js",
	}
	if len(snap) != len(expected) {
		t.Errorf("snapshot has %d entries, want %d: %v", len(snap), len(expected), snap)
	}
	for _, rel := range expected {
		fp, ok := snap[rel]
		if !ok {
			t.Errorf("snapshot missing %q", rel)
			continue
		}
		if fp == NoFingerprint {
			t.Errorf("snapshot[%q] has no fingerprint", rel)
		}
	}

	// Filtered files must not appear.
	for _, rel := range []string{"README.md", "package-lock.json", "node_modules/dep/index.js"} {
		if _, ok := snap[rel]; ok {
			t.Errorf("snapshot should not contain %q", rel)
		}
	}
}

func TestBuild_SlashSeparatedKeys(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a/b/c.js", "x")

	snap, err := Build(NewSet(root, WithExtensions(".js")))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, ok := snap["a/b/c.js"]; !ok {
		t.Errorf("expected slash-separated key a/b/c.js, got keys %v", keys(snap))
	}
	for k := range snap {
		if strings.Contains(k, "\\") {
			t.Errorf("key %q contains a backslash", k)
		}
		if filepath.IsAbs(k) {
			t.Errorf("key %q is absolute", k)
		}
	}
}

func keys(s Snapshot) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

func TestBuild_ContentFingerprints(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "same content")
	writeFile(t, root, "b.js", "same content")
	writeFile(t, root, "c.js", "different content")

	snap, err := Build(NewSet(root, WithExtensions(".js")))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if snap["a.js"] != snap["b.js"] {
		t.Error("files with equal content should have equal fingerprints")
	}
	if snap["a.js"] == snap["c.js"] {
		t.Error("files with different content should have different fingerprints")
	}
}

func TestBuild_EmptyDirectory(t *testing.T) {
	snap, err := Build(defaultSet(t.TempDir()))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(snap) != 0 {
		t.Errorf("expected empty snapshot, got %d entries", len(snap))
	}
}

func TestBuild_NonExistentRoot(t *testing.T) {
	_, err := Build(defaultSet("/this/path/does/not/exist"))
	if err == nil {
		t.Error("expected error for non-existent root")
	}
}

func TestBuild_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.js", "x")

	_, err := Build(defaultSet(filepath.Join(root, "file.js")))
	if err == nil {
		t.Error("expected error when root is a file")
	}
}

func TestBuild_UnreadableFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("skipping permission test as root")
	}

	root := t.TempDir()
	writeFile(t, root, "ok.js", "readable")
	writeFile(t, root, "locked.js", "unreadable")

	locked := filepath.Join(root, "locked.js")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("failed to chmod: %v", err)
	}
	defer func() { _ = os.Chmod(locked, 0o644) }()

	snap, err := Build(NewSet(root, WithExtensions(".js")))
	if err != nil {
		t.Fatalf("Build should succeed despite an unreadable file: %v", err)
	}

	// The unreadable file is recorded with an absent fingerprint so the
	// next readable cycle registers as a change.
	fp, ok := snap["locked.js"]
	if !ok {
		t.Fatal("unreadable file should still appear in the snapshot")
	}
	if fp != NoFingerprint {
		t.Errorf("unreadable file fingerprint = %q, want NoFingerprint", fp)
	}
	if snap["ok.js"] == NoFingerprint {
		t.Error("readable file should have a real fingerprint")
	}
}

func TestBuild_IgnoresSymlinks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "real.js", "content")

	if err := os.Symlink(filepath.Join(root, "real.js"), filepath.Join(root, "link.js")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	snap, err := Build(NewSet(root, WithExtensions(".js")))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, ok := snap["link.js"]; ok {
		t.Error("symlinks should not be fingerprinted")
	}
	if _, ok := snap["real.js"]; !ok {
		t.Error("regular file should be fingerprinted")
	}
}

func TestBuild_RelativeRoot(t *testing.T) {
	root := extensionTree(t)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(root); err != nil {
		t.Fatalf("failed to chdir: %v", err)
	}
	defer func() { _ = os.Chdir(wd) }()

	snap, err := Build(defaultSet("."))
	if err != nil {
		t.Fatalf("Build failed for relative root: %v", err)
	}
	if len(snap) == 0 {
		t.Error("expected entries for relative root")
	}
}

func TestBuildStats(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "12345")
	writeFile(t, root, "b.js", "1234567890")

	snap, stats, err := build(NewSet(root, WithExtensions(".js")))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if stats.Files != 2 {
		t.Errorf("Files = %d, want 2", stats.Files)
	}
	if stats.Bytes != 15 {
		t.Errorf("Bytes = %d, want 15", stats.Bytes)
	}
	if stats.Unreadable != 0 {
		t.Errorf("Unreadable = %d, want 0", stats.Unreadable)
	}
	if stats.Elapsed <= 0 {
		t.Error("Elapsed should be positive")
	}
	if len(snap) != stats.Files {
		t.Errorf("snapshot size %d disagrees with stats.Files %d", len(snap), stats.Files)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	root := extensionTree(t)
	ws := defaultSet(root)

	first, err := Build(ws)
	if err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	second, err := Build(ws)
	if err != nil {
		t.Fatalf("second Build failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("snapshot sizes differ: %d vs %d", len(first), len(second))
	}
	for rel, fp := range first {
		if second[rel] != fp {
			t.Errorf("fingerprint for %q changed between identical builds", rel)
		}
	}
}
