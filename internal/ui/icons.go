package ui

import "os"

// nfEnabled reports whether Nerd Font icons should be rendered.
// Opt-in via NERDFONT=1 to avoid tofu on terminals without the font.
func nfEnabled() bool {
	return os.Getenv("NERDFONT") == "1"
}

func nf(icon, fallback string) string {
	if nfEnabled() {
		return icon
	}
	return fallback
}

// Tab icons
func IconPanel() string    { return nf("", "") } // fa-user
func IconProjects() string { return nf("", "") } // fa-folder
func IconTools() string    { return nf("", "") } // fa-wrench

// IconBoot marks the hero terminal title.
func IconBoot() string { return nf("", "") } // fa-terminal

func (t tabKind) icon() string {
	switch t {
	case tabProjects:
		return IconProjects()
	case tabTools:
		return IconTools()
	default:
		return IconPanel()
	}
}

// withIcon prefixes s with icon when one is available.
func withIcon(icon, s string) string {
	if icon == "" {
		return s
	}
	return icon + " " + s
}
