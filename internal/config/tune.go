package config

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrTuneNameMismatch is returned when a requested tune differs from the
// tune already built for the process.
var ErrTuneNameMismatch = errors.New("tune name mismatch")

// RunOptions holds the process-wide generator selection: the event
// generator list and the tune. A tune is built at most once; later requests
// must name the same tune.
type RunOptions struct {
	mu                 sync.RWMutex
	eventGeneratorList string
	tune               string
	logger             *slog.Logger
}

// NewRunOptions returns run options with nothing selected yet.
func NewRunOptions(logger *slog.Logger) *RunOptions {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunOptions{logger: logger}
}

// SetEventGeneratorListAndTune expands both names with ExpandEnvVar. A
// non-empty list replaces the current one. The first tune request builds the
// tune; later requests fail with ErrTuneNameMismatch unless they name it.
func (o *RunOptions) SetEventGeneratorListAndTune(list, tune string) error {
	expList, err := ExpandEnvVar(list)
	if err != nil {
		return fmt.Errorf("event generator list: %w", err)
	}
	expTune, err := ExpandEnvVar(tune)
	if err != nil {
		return fmt.Errorf("tune: %w", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if expTune != tune {
		o.logger.Info("tune name expanded", slog.String("from", tune), slog.String("to", expTune))
	}

	switch {
	case o.tune == "":
		o.logger.Info("configuring tune", slog.String("tune", expTune))
		o.tune = expTune
	case expTune != o.tune:
		return fmt.Errorf("%w: requested %q does not match previously built %q", ErrTuneNameMismatch, expTune, o.tune)
	}
	if expList != "" {
		o.eventGeneratorList = expList
	}
	return nil
}

// EventGeneratorList returns the selected list, empty for the default.
func (o *RunOptions) EventGeneratorList() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.eventGeneratorList
}

// Tune returns the built tune, empty before the first selection.
func (o *RunOptions) Tune() string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.tune
}
