package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"bootterm/internal/typewriter"
)

func TestDefault_BootSequence(t *testing.T) {
	s := Default()
	if s.Len() != 13 {
		t.Fatalf("expected 13 boot lines, got %d", s.Len())
	}
	first := s.Lines[0]
	if len(first.Segments) != 5 || first.Segments[1].Text != "ciel" || first.Segments[1].Class != "term-user" {
		t.Fatalf("unexpected first line: %+v", first)
	}
	if first.PostDelay != 160*time.Millisecond || !first.LineBreakAfter {
		t.Fatalf("unexpected first line timing/break: %+v", first)
	}
	if s.Lines[1].LineBreakAfter {
		t.Fatalf("prompt line should not break")
	}
	if got := s.Lines[12].Text(); got != "[OK] pronto." {
		t.Fatalf("last line = %q", got)
	}
}

func TestLoad_YAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	y := filepath.Join(dir, "boot.yaml")
	if err := os.WriteFile(y, []byte("lines:\n  - segments:\n      - {text: hi, class: term-ok}\n    wait_ms: 5\n  - {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(y)
	if err != nil {
		t.Fatalf("Load yaml error: %v", err)
	}
	if s.Len() != 2 || s.Lines[0].PostDelay != 5*time.Millisecond || len(s.Lines[1].Segments) != 0 {
		t.Fatalf("unexpected yaml script: %+v", s)
	}

	j := filepath.Join(dir, "boot.json")
	if err := os.WriteFile(j, []byte(`{"lines":[{"segments":[{"text":"a","class":"x"}],"break":false}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = Load(j)
	if err != nil {
		t.Fatalf("Load json error: %v", err)
	}
	if s.Len() != 1 || s.Lines[0].LineBreakAfter {
		t.Fatalf("unexpected json script: %+v", s)
	}
}

func TestLoad_EmptyPathIsDefault(t *testing.T) {
	s, err := Load("  ")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.Len() != Default().Len() {
		t.Fatalf("expected default script")
	}
}

func TestValidateDocument_Rejects(t *testing.T) {
	cases := map[string]string{
		"no lines":      "lines: []\n",
		"missing lines": "other: 1\n",
		"unknown key":   "lines:\n  - segments: [{text: a}]\n    colour: red\n",
		"missing text":  "lines:\n  - segments: [{class: a}]\n",
		"negative wait": "lines:\n  - segments: [{text: a}]\n    wait_ms: -1\n",
		"bad yaml":      "lines: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			err := ValidateDocument([]byte(doc), YAML)
			if !errors.Is(err, typewriter.ErrInvalidScript) {
				t.Fatalf("expected ErrInvalidScript, got %v", err)
			}
		})
	}
	if err := ValidateDocument(DefaultBytes(), YAML); err != nil {
		t.Fatalf("default script should validate: %v", err)
	}
}

func TestParse_EmptyScriptInvalid(t *testing.T) {
	if _, err := Parse([]byte(`{"lines":[]}`), JSON); !errors.Is(err, typewriter.ErrInvalidScript) {
		t.Fatalf("expected ErrInvalidScript, got %v", err)
	}
}

func TestFromScript_MarshalParse(t *testing.T) {
	orig := Default()
	for _, f := range []Format{YAML, JSON} {
		b, err := Marshal(FromScript(orig), f)
		if err != nil {
			t.Fatalf("Marshal error: %v", err)
		}
		got, err := Parse(b, f)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Len() != orig.Len() {
			t.Fatalf("line count changed: %d -> %d", orig.Len(), got.Len())
		}
		for i := range orig.Lines {
			o, g := orig.Lines[i], got.Lines[i]
			if o.Text() != g.Text() || o.PostDelay != g.PostDelay || o.LineBreakAfter != g.LineBreakAfter {
				t.Fatalf("line %d differs: %+v vs %+v", i, o, g)
			}
		}
	}
}

func TestSchema_DescribesLines(t *testing.T) {
	b, err := MarshalSchema(Schema())
	if err != nil {
		t.Fatalf("MarshalSchema error: %v", err)
	}
	s := string(b)
	for _, want := range []string{`"lines"`, `"wait_ms"`, `"segments"`, "bootterm boot script"} {
		if !strings.Contains(s, want) {
			t.Fatalf("schema missing %s:\n%s", want, s)
		}
	}
}

func TestWatcher_SignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "boot.yaml")
	if err := os.WriteFile(p, DefaultBytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(p, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher error: %v", err)
	}
	defer w.Close()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, DefaultBytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-w.C():
	case <-time.After(5 * time.Second):
		t.Fatal("no change signal")
	}
}

func TestWatcher_CloseClosesC(t *testing.T) {
	p := filepath.Join(t.TempDir(), "boot.yaml")
	if err := os.WriteFile(p, DefaultBytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := NewWatcher(p, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	select {
	case _, ok := <-w.C():
		if ok {
			t.Fatal("expected C to be closed, got a change signal")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("C still open after Close")
	}
}
