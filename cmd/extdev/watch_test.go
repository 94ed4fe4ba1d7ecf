package main

import (
	"testing"

	"github.com/kluelabs/extdev/pkg/extdev/watch"
)

func TestBuildReport(t *testing.T) {
	changes := watch.ChangeSet{
		{Path: "src/content.js", Kind: watch.Modified},
		{Path: "popup.html", Kind: watch.Deleted},
	}

	report := buildReport("/home/dev/klue", "Klue", changes)

	if report.Root != "/home/dev/klue" {
		t.Errorf("Root = %q, want %q", report.Root, "/home/dev/klue")
	}
	if report.Extension != "Klue" {
		t.Errorf("Extension = %q, want %q", report.Extension, "Klue")
	}
	if report.At.IsZero() {
		t.Error("At is zero, want report timestamp")
	}

	if len(report.Changes) != 2 {
		t.Fatalf("len(Changes) = %d, want 2", len(report.Changes))
	}
	if report.Changes[0].Path != "src/content.js" || report.Changes[0].Deleted {
		t.Errorf("Changes[0] = %+v, want modified src/content.js", report.Changes[0])
	}
	if report.Changes[1].Path != "popup.html" || !report.Changes[1].Deleted {
		t.Errorf("Changes[1] = %+v, want deleted popup.html", report.Changes[1])
	}
}

func TestBuildReport_Empty(t *testing.T) {
	report := buildReport("/tmp/project", "Klue", nil)

	if len(report.Changes) != 0 {
		t.Errorf("len(Changes) = %d, want 0", len(report.Changes))
	}
}
