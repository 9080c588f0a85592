package content

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_HasHubData(t *testing.T) {
	p := Default()
	if p.Name != "ciel" || p.Handle == "" {
		t.Fatalf("unexpected identity: %q %q", p.Name, p.Handle)
	}
	if len(p.Projects) < 1 || len(p.Tools) < 1 {
		t.Fatalf("expected projects and tools, got %d/%d", len(p.Projects), len(p.Tools))
	}
	if got := p.ProjectTitles(); len(got) != len(p.Projects) {
		t.Fatalf("titles/projects mismatch: %v", got)
	}
}

func TestLoad_MissingFileFallsBack(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if p.Name != Default().Name {
		t.Fatalf("expected default profile")
	}
}

func TestLoad_NormalizesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	doc := "name: ' x '\nprojects:\n  - title: ''\n  - title: a\ntools:\n  - {name: mail, value: ''}\n  - {name: gh, value: ' u '}\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if p.Name != "x" || len(p.Projects) != 1 || p.Projects[0].Title != "a" {
		t.Fatalf("projects not normalized: %+v", p)
	}
	if len(p.Tools) != 1 || p.Tools[0].Value != "u" {
		t.Fatalf("tools not normalized: %+v", p.Tools)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("name: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
