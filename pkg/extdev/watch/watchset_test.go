package watch

import "testing"

func TestNewSet(t *testing.T) {
	ws := NewSet("/tmp/ext")

	// Verify defaults
	if ws.Root != "/tmp/ext" {
		t.Errorf("Root = %q, want %q", ws.Root, "/tmp/ext")
	}
	if len(ws.Extensions) != 0 {
		t.Errorf("Extensions = %v, want empty", ws.Extensions)
	}
	if len(ws.Ignore) != 0 {
		t.Errorf("Ignore = %v, want empty", ws.Ignore)
	}
	if len(ws.IgnorePatterns) != 0 {
		t.Errorf("IgnorePatterns = %v, want empty", ws.IgnorePatterns)
	}
}

func TestWithExtensions_Normalization(t *testing.T) {
	// Extensions are normalized: lowercase and dot prefix added
	ws := NewSet(".", WithExtensions("JS", "css", ".HTML", " json "))

	expected := []string{".js", ".css", ".html", ".json"}
	if len(ws.Extensions) != len(expected) {
		t.Fatalf("Extensions length = %d, want %d", len(ws.Extensions), len(expected))
	}
	for i, ext := range expected {
		if ws.Extensions[i] != ext {
			t.Errorf("Extensions[%d] = %q, want %q", i, ws.Extensions[i], ext)
		}
	}
}

func TestWithIgnore(t *testing.T) {
	ws := NewSet(".", WithIgnore("package-lock.json", "yarn.lock"))

	if len(ws.Ignore) != 2 {
		t.Errorf("Ignore length = %d, want 2", len(ws.Ignore))
	}
	if ws.Ignore[0] != "package-lock.json" || ws.Ignore[1] != "yarn.lock" {
		t.Errorf("Ignore = %v", ws.Ignore)
	}
}

func TestWithIgnorePatterns(t *testing.T) {
	patterns := []string{"node_modules/**", ".git/**"}
	ws := NewSet(".", WithIgnorePatterns(patterns...))

	if len(ws.IgnorePatterns) != 2 {
		t.Errorf("IgnorePatterns length = %d, want 2", len(ws.IgnorePatterns))
	}
	if ws.IgnorePatterns[0] != "node_modules/**" || ws.IgnorePatterns[1] != ".git/**" {
		t.Errorf("IgnorePatterns = %v, want %v", ws.IgnorePatterns, patterns)
	}
}

func TestMatch_Extensions(t *testing.T) {
	ws := NewSet(".", WithExtensions(".js", ".html"))

	tests := []struct {
		name string
		rel  string
		want bool
	}{
		{name: "matching js", rel: "content.js", want: true},
		{name: "matching html", rel: "popup.html", want: true},
		{name: "nested matching", rel: "src/background/worker.js", want: true},
		{name: "uppercase extension", rel: "INDEX.HTML", want: true},
		{name: "non-matching css", rel: "style.css", want: false},
		{name: "no extension", rel: "Makefile", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ws.Match(tt.rel)
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestMatch_NoExtensions(t *testing.T) {
	// With no extension filter, every file type matches
	ws := NewSet(".")

	for _, rel := range []string{"a.js", "b.txt", "Makefile", "deep/c.png"} {
		if !ws.Match(rel) {
			t.Errorf("Match(%q) = false, want true", rel)
		}
	}
}

func TestMatch_IgnoredNames(t *testing.T) {
	ws := NewSet(".", WithExtensions(".json"), WithIgnore("package-lock.json"))

	tests := []struct {
		name string
		rel  string
		want bool
	}{
		{name: "regular json", rel: "manifest.json", want: true},
		{name: "ignored name at root", rel: "package-lock.json", want: false},
		{name: "ignored name nested", rel: "vendor/package-lock.json", want: false},
		{name: "similar name", rel: "package-lock.json.bak", want: false}, // wrong extension anyway
		{name: "partial name", rel: "lock.json", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ws.Match(tt.rel)
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestMatch_IgnorePatterns(t *testing.T) {
	ws := NewSet(".", WithIgnorePatterns("node_modules/**", ".git/**", "dist/**"))

	tests := []struct {
		name string
		rel  string
		want bool
	}{
		{name: "normal file", rel: "src/content.js", want: true},
		{name: "under node_modules", rel: "node_modules/pkg/index.js", want: false},
		{name: "deep under node_modules", rel: "node_modules/a/b/c.js", want: false},
		{name: "under git", rel: ".git/HEAD", want: false},
		{name: "under dist", rel: "dist/bundle.js", want: false},
		{name: "similar prefix", rel: "node_modules_backup/file.js", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ws.Match(tt.rel)
			if got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestMatch_InvalidPatternIgnored(t *testing.T) {
	// Patterns that fail to compile are dropped rather than breaking the set
	ws := NewSet(".", WithIgnorePatterns("[", "dist/**"))

	if !ws.Match("src/app.js") {
		t.Error("Match should succeed with an invalid pattern in the set")
	}
	if ws.Match("dist/app.js") {
		t.Error("valid pattern should still apply")
	}
}

func TestSkipDir(t *testing.T) {
	ws := NewSet(".", WithIgnorePatterns("node_modules/**", ".git/**"))

	tests := []struct {
		name string
		rel  string
		want bool
	}{
		{name: "root dot", rel: ".", want: false},
		{name: "empty", rel: "", want: false},
		{name: "ignored dir itself", rel: "node_modules", want: true},
		{name: "nested ignored dir", rel: "vendor/node_modules", want: false},
		{name: "dir under ignored dir", rel: "node_modules/pkg", want: true},
		{name: "git dir", rel: ".git", want: true},
		{name: "normal dir", rel: "src", want: false},
		{name: "similar prefix dir", rel: "node_modules_backup", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ws.SkipDir(tt.rel)
			if got != tt.want {
				t.Errorf("SkipDir(%q) = %v, want %v", tt.rel, got, tt.want)
			}
		})
	}
}

func TestSkipDir_NoPatterns(t *testing.T) {
	ws := NewSet(".")

	for _, rel := range []string{".", "src", "node_modules"} {
		if ws.SkipDir(rel) {
			t.Errorf("SkipDir(%q) = true, want false", rel)
		}
	}
}

func TestMultipleOptions(t *testing.T) {
	ws := NewSet("/project",
		WithExtensions(".js", ".css"),
		WithIgnore("package-lock.json"),
		WithIgnorePatterns("dist/**"),
	)

	if ws.Root != "/project" {
		t.Errorf("Root = %q, want /project", ws.Root)
	}
	if len(ws.Extensions) != 2 {
		t.Errorf("Extensions length = %d, want 2", len(ws.Extensions))
	}
	if len(ws.Ignore) != 1 {
		t.Errorf("Ignore length = %d, want 1", len(ws.Ignore))
	}
	if len(ws.IgnorePatterns) != 1 {
		t.Errorf("IgnorePatterns length = %d, want 1", len(ws.IgnorePatterns))
	}
}
