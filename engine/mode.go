package engine

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Mode is the stepping state of an Engine
type Mode int32

const (
	// Idle does not advance until an intent arrives
	Idle Mode = iota
	// Running advances one generation per tick
	Running
	// SteppingOnce advances exactly one generation, then returns to Idle
	SteppingOnce
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case SteppingOnce:
		return "SteppingOnce"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseSpeed parses a tick interval in milliseconds typed by a user
func ParseSpeed(text string) (int, error) {
	ms, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSpeed, "[ParseSpeed] %q is not a number", text)
	}
	if ms <= 0 {
		return 0, errors.Wrapf(ErrInvalidSpeed, "[ParseSpeed] %dms must be positive", ms)
	}
	return ms, nil
}
