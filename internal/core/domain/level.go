package domain

import (
	"fmt"
	"strings"
)

// Level is an ordered logging severity. LevelDisabled sorts above every
// other level and is never written by any backend.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
	LevelDisabled
)

// ErrorThreshold is the lowest level reported with the error colour.
const ErrorThreshold = LevelError

var levelNames = map[Level]string{
	LevelTrace:    "trace",
	LevelDebug:    "debug",
	LevelInfo:     "info",
	LevelWarning:  "warning",
	LevelError:    "error",
	LevelCritical: "critical",
	LevelDisabled: "disabled",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func (l Level) Valid() bool {
	return l >= LevelTrace && l <= LevelDisabled
}

// ParseLevel accepts the level names case-insensitively; "warn" is an alias
// of "warning".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	case "critical":
		return LevelCritical, nil
	case "disabled":
		return LevelDisabled, nil
	default:
		return LevelDisabled, fmt.Errorf("unknown log level %q", s)
	}
}
