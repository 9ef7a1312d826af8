package config

import (
	"errors"
	"fmt"
	"time"
)

// log levels follow zapcore ordering
const (
	DEBUG_LEVEL = -1
	INFO_LEVEL  = 0
	WARN_LEVEL  = 1
	ERROR_LEVEL = 2
)

var ErrEmptyTimeFormat = errors.New("logger: time format is empty")

type Configuration struct {
	Level      int
	TimeFormat string
}

func (c Configuration) Validate() error {
	if c.Level < DEBUG_LEVEL || c.Level > ERROR_LEVEL {
		return fmt.Errorf("logger: level %d out of range [%d, %d]", c.Level, DEBUG_LEVEL, ERROR_LEVEL)
	}
	if c.TimeFormat == "" {
		return ErrEmptyTimeFormat
	}
	// a layout that cannot round trip a timestamp is almost always a typo
	now := time.Now().UTC().Truncate(time.Second)
	if _, err := time.Parse(c.TimeFormat, now.Format(c.TimeFormat)); err != nil {
		return fmt.Errorf("logger: invalid time format %q: %w", c.TimeFormat, err)
	}
	return nil
}
