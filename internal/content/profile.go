package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed assets/profile.yaml
var defaultProfile []byte

// Profile is what the hub shows: about text, project cards and tools.
type Profile struct {
	Name     string    `yaml:"name"`
	Handle   string    `yaml:"handle"`
	Tagline  string    `yaml:"tagline"`
	About    string    `yaml:"about"`
	Projects []Project `yaml:"projects"`
	Tools    []Tool    `yaml:"tools"`
}

// Project is an expandable card. Details is markdown.
type Project struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Tags    []string `yaml:"tags"`
	Details string   `yaml:"details"`
}

// Tool is a copyable value such as an address or key fingerprint.
type Tool struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
	Desc  string `yaml:"desc"`
}

// Default returns the embedded profile.
func Default() Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("embedded profile: %v", err))
	}
	return p
}

// DefaultBytes returns the embedded profile document.
func DefaultBytes() []byte { return append([]byte(nil), defaultProfile...) }

// Load reads a profile from path. Empty path or a missing file yields the default.
func Load(path string) (Profile, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), err
	}
	p, err := Parse(b)
	if err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and normalizes a profile document.
func Parse(b []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Profile{}, err
	}
	p.normalize()
	return p, nil
}

func (p *Profile) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Handle = strings.TrimSpace(p.Handle)
	projects := p.Projects[:0]
	for _, pr := range p.Projects {
		pr.Title = strings.TrimSpace(pr.Title)
		if pr.Title == "" {
			continue
		}
		projects = append(projects, pr)
	}
	p.Projects = projects
	tools := p.Tools[:0]
	for _, t := range p.Tools {
		t.Name = strings.TrimSpace(t.Name)
		t.Value = strings.TrimSpace(t.Value)
		if t.Name == "" || t.Value == "" {
			continue
		}
		tools = append(tools, t)
	}
	p.Tools = tools
}

// ProjectTitles returns the card titles in order, used as fuzzy filter targets.
func (p Profile) ProjectTitles() []string {
	out := make([]string, len(p.Projects))
	for i, pr := range p.Projects {
		out[i] = pr.Title + " " + strings.Join(pr.Tags, " ")
	}
	return out
}
