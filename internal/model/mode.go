package model

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects whether a run is for training or scoring.
type Mode string

const (
	// ModeTrain runs the pipeline and hands per-attribute summaries to the plotter.
	ModeTrain Mode = "train"
	// ModeScore runs the pipeline only.
	ModeScore Mode = "score"
)

// ErrInvalidMode is returned by ParseMode for unknown values.
var ErrInvalidMode = errors.New("invalid mode")

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeTrain:
		return ModeTrain, nil
	case ModeScore:
		return ModeScore, nil
	default:
		return "", fmt.Errorf("%w: %q (want train or score)", ErrInvalidMode, s)
	}
}

func (m Mode) String() string {
	return string(m)
}
