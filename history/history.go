// Package history keeps the most recent generation commands so they can be
// replayed.
package history

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// MaxEntries bounds the history length.
const MaxEntries = 10

// Kind tells which generator a command ran.
type Kind string

const (
	KindEntity Kind = "entity"
	KindRoute  Kind = "route"
)

// Command is one recorded invocation.
type Command struct {
	Kind    Kind      `json:"kind"`
	Name    string    `json:"name,omitempty"`
	Method  string    `json:"method,omitempty"`
	Path    string    `json:"path,omitempty"`
	Private bool      `json:"private,omitempty"`
	At      time.Time `json:"at"`
}

// same reports whether two commands target the same output.
func (c Command) same(o Command) bool {
	return c.Kind == o.Kind && c.Name == o.Name && c.Method == o.Method && c.Path == o.Path && c.Private == o.Private
}

// Load returns the recorded commands, newest first. A missing file is an
// empty history.
func Load(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Command{}, nil
		}
		return nil, fmt.Errorf("history: read %s: %w", path, err)
	}
	var cmds []Command
	if err := json.Unmarshal(data, &cmds); err != nil {
		return nil, fmt.Errorf("history: parse %s: %w", path, err)
	}
	return cmds, nil
}

// Record puts c first in the history at path. An earlier identical command is
// dropped and the history is cut to MaxEntries.
func Record(path string, c Command) error {
	cmds, err := Load(path)
	if err != nil {
		return err
	}
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	out := make([]Command, 0, MaxEntries)
	out = append(out, c)
	for _, old := range cmds {
		if len(out) == MaxEntries {
			break
		}
		if old.same(c) {
			continue
		}
		out = append(out, old)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("history: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("history: mkdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("history: write %s: %w", path, err)
	}
	return nil
}
