package domain

import "fmt"

// Operating systems a user can target. Generated command-line instructions
// and file paths are tailored to this.
const (
	OSWindows = "Windows"
	OSMacOS   = "macOS"
	OSLinux   = "Linux"
)

// Preferences holds per-user generation preferences.
type Preferences struct {
	OperatingSystem string `json:"operatingSystem,omitempty"`
}

// Validate checks the preference values. An empty operating system is
// allowed and means "no preference".
func (p *Preferences) Validate() error {
	switch p.OperatingSystem {
	case "", OSWindows, OSMacOS, OSLinux:
		return nil
	}
	return fmt.Errorf("unknown operating system %q", p.OperatingSystem)
}
