package search

import (
	"fmt"
	"strings"
)

// Mode selects between the bundled dictionary and the remote translation service.
// It implements pflag.Value.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeOffline, "":
		return ModeOffline, nil
	case ModeOnline:
		return ModeOnline, nil
	default:
		return "", fmt.Errorf("unknown mode %q, must be %s or %s", value, ModeOffline, ModeOnline)
	}
}

func (m *Mode) Set(value string) error {
	mode, err := ParseMode(value)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m Mode) String() string {
	return string(m)
}

func (m Mode) Type() string {
	return "mode"
}
