// Package levels is the registry of playable levels: puzzles built in code
// and the Tiled maps embedded in the binary. Levels can also be loaded from
// a .tmx path on disk.
package levels

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"beamgrid/internal/level"
	"beamgrid/internal/mapload"
)

// ErrUnknownLevel is returned by Load for names that are neither registered
// nor an existing map file.
var ErrUnknownLevel = errors.New("levels: unknown level")

// Builder constructs a fresh copy of a level that logs to log.
type Builder func(log *slog.Logger) (*level.Level, error)

var (
	builders = map[string]Builder{}
	order    []string
)

// Register adds a level under name. Registering a name twice replaces the
// builder but keeps its original position in Names.
func Register(name string, b Builder) {
	if name == "" || b == nil {
		return
	}
	if _, ok := builders[name]; !ok {
		order = append(order, name)
	}
	builders[name] = b
}

// Names lists registered levels in registration order.
func Names() []string {
	return append([]string(nil), order...)
}

// Load builds the level called name. Names ending in .tmx that are not
// registered are read from disk. The level logs to log, or to slog.Default
// when log is nil.
func Load(name string, log *slog.Logger) (*level.Level, error) {
	if log == nil {
		log = slog.Default()
	}
	if b, ok := builders[name]; ok {
		l, err := b(log)
		if err != nil {
			return nil, fmt.Errorf("levels: %s: %w", name, err)
		}
		if l.Name == "" {
			l.Name = name
		}
		return l, nil
	}
	if strings.HasSuffix(name, ".tmx") {
		if _, err := os.Stat(name); err == nil {
			return mapload.LoadFile(name, mapload.WithLogger(log))
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
}

// Next returns the level registered after name, wrapping around. Unknown
// names map to the first level.
func Next(name string, step int) string {
	if len(order) == 0 {
		return name
	}
	for i, n := range order {
		if n == name {
			j := (i + step) % len(order)
			if j < 0 {
				j += len(order)
			}
			return order[j]
		}
	}
	return order[0]
}
