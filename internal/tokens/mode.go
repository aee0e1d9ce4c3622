package tokens

import "strings"

// Mode is the light/dark theme selection.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// DefaultMode is used when neither a persisted choice nor an OS preference exists.
const DefaultMode = ModeLight

// ParseMode interprets s case-insensitively. The boolean is false for anything
// other than "light" or "dark".
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, true
	case ModeDark:
		return ModeDark, true
	default:
		return "", false
	}
}

// Valid reports whether m is one of the two supported modes.
func (m Mode) Valid() bool {
	return m == ModeLight || m == ModeDark
}

// Opposite returns the other mode. Invalid modes toggle to dark, matching a
// light default.
func (m Mode) Opposite() Mode {
	if m == ModeDark {
		return ModeLight
	}
	return ModeDark
}

func (m Mode) String() string {
	return string(m)
}
