// Package script reads and writes boot scripts for the typewriter engine.
//
// Scripts are YAML or JSON documents:
//
//	lines:
//	  - segments:
//	      - {text: "└─$ ", class: term-prompt}
//	      - {text: "whoami", class: term-cmd}
//	    break: false
//	    wait_ms: 240
package script

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"bootterm/internal/typewriter"
)

//go:embed assets/boot.yaml
var defaultBoot []byte

// Format is the on-disk encoding of a script.
type Format int

const (
	YAML Format = iota
	JSON
)

// FormatFor picks the format from a file extension; anything but .json is YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// File is the document shape of a script.
type File struct {
	Lines []LineSpec `json:"lines" yaml:"lines" jsonschema:"minItems=1,description=Lines typed in order"`
}

// LineSpec is one line in a script document.
type LineSpec struct {
	Segments []SegmentSpec `json:"segments,omitempty" yaml:"segments,omitempty" jsonschema:"description=Styled runs of text; empty means a blank line"`
	// Break defaults to true when omitted.
	Break  *bool `json:"break,omitempty" yaml:"break,omitempty" jsonschema:"description=Visual break after the line (default true)"`
	WaitMs int   `json:"wait_ms,omitempty" yaml:"wait_ms,omitempty" jsonschema:"minimum=0,description=Pause after the line in milliseconds"`
}

// SegmentSpec is a styled run of text.
type SegmentSpec struct {
	Text  string `json:"text" yaml:"text" jsonschema:"description=Text to type"`
	Class string `json:"class,omitempty" yaml:"class,omitempty" jsonschema:"description=Style class, e.g. term-cmd"`
}

// Default returns the embedded boot script.
func Default() typewriter.Script {
	s, err := Parse(defaultBoot, YAML)
	if err != nil {
		panic(fmt.Sprintf("embedded boot script: %v", err))
	}
	return s
}

// DefaultBytes returns the embedded boot script document.
func DefaultBytes() []byte { return append([]byte(nil), defaultBoot...) }

// Load reads, schema-checks and parses the script at path.
// An empty path yields the embedded default.
func Load(path string) (typewriter.Script, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return typewriter.Script{}, err
	}
	f := FormatFor(path)
	if err := ValidateDocument(b, f); err != nil {
		return typewriter.Script{}, fmt.Errorf("%s: %w", path, err)
	}
	s, err := Parse(b, f)
	if err != nil {
		return typewriter.Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a script document without schema checks.
func Parse(b []byte, f Format) (typewriter.Script, error) {
	var doc File
	var err error
	switch f {
	case JSON:
		err = json.Unmarshal(b, &doc)
	default:
		err = yaml.Unmarshal(b, &doc)
	}
	if err != nil {
		return typewriter.Script{}, fmt.Errorf("%w: %v", typewriter.ErrInvalidScript, err)
	}
	return doc.Script()
}

// Script converts the document into an engine script and validates it.
func (f File) Script() (typewriter.Script, error) {
	out := typewriter.Script{Lines: make([]typewriter.Line, 0, len(f.Lines))}
	for i, ls := range f.Lines {
		if ls.WaitMs < 0 {
			return typewriter.Script{}, fmt.Errorf("%w: line %d: negative wait_ms %d", typewriter.ErrInvalidScript, i+1, ls.WaitMs)
		}
		ln := typewriter.Line{
			LineBreakAfter: ls.Break == nil || *ls.Break,
			PostDelay:      time.Duration(ls.WaitMs) * time.Millisecond,
		}
		for _, ss := range ls.Segments {
			ln.Segments = append(ln.Segments, typewriter.Seg(ss.Text, ss.Class))
		}
		out.Lines = append(out.Lines, ln)
	}
	if err := out.Validate(); err != nil {
		return typewriter.Script{}, err
	}
	return out, nil
}

// FromScript converts an engine script back into a document.
func FromScript(s typewriter.Script) File {
	f := File{Lines: make([]LineSpec, 0, len(s.Lines))}
	for _, l := range s.Lines {
		ls := LineSpec{WaitMs: int(l.PostDelay / time.Millisecond)}
		if !l.LineBreakAfter {
			no := false
			ls.Break = &no
		}
		for _, seg := range l.Segments {
			ls.Segments = append(ls.Segments, SegmentSpec{Text: seg.Text, Class: seg.Class})
		}
		f.Lines = append(f.Lines, ls)
	}
	return f
}

// Marshal encodes the document in the given format.
func Marshal(f File, format Format) ([]byte, error) {
	if format == JSON {
		return json.MarshalIndent(f, "", "  ")
	}
	return yaml.Marshal(f)
}
