package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes planned files under Root; absolute paths are used as is. Existing files are kept unless
// Force is set; scaffold files are always kept.
type Writer struct {
	Root  string
	Force bool
}

// Report lists what a Write did, by relative path.
type Report struct {
	Written []string
	Skipped []string
}

func (r *Report) merge(o Report) {
	r.Written = append(r.Written, o.Written...)
	r.Skipped = append(r.Skipped, o.Skipped...)
}

// Write writes files in order. It stops at the first failure and returns
// what was done so far.
func (w *Writer) Write(files []File) (Report, error) {
	var rep Report
	for _, f := range files {
		target := f.Path
		if !filepath.IsAbs(target) {
			target = filepath.Join(w.Root, target)
		}
		_, err := os.Stat(target)
		switch {
		case err == nil:
			if f.Scaffold || !w.Force {
				rep.Skipped = append(rep.Skipped, f.Path)
				continue
			}
		case !errors.Is(err, fs.ErrNotExist):
			return rep, fmt.Errorf("render: stat %s: %w", f.Path, err)
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return rep, fmt.Errorf("render: mkdir for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(target, f.Content, 0o644); err != nil {
			return rep, fmt.Errorf("render: write %s: %w", f.Path, err)
		}
		rep.Written = append(rep.Written, f.Path)
	}
	return rep, nil
}

// WriteAll writes several batches and merges their reports.
func (w *Writer) WriteAll(batches ...[]File) (Report, error) {
	var rep Report
	for _, b := range batches {
		r, err := w.Write(b)
		rep.merge(r)
		if err != nil {
			return rep, err
		}
	}
	return rep, nil
}

// NextRouteID returns one more than the number of route handlers under root,
// so every generated route gets a distinct id.
func NextRouteID(root string) (int, error) {
	n := 0
	err := filepath.WalkDir(root, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return filepath.SkipDir
			}
			return err
		}
		if e.IsDir() && e.Name() == "node_modules" {
			return filepath.SkipDir
		}
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".route.ts") {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("render: count routes: %w", err)
	}
	return n + 1, nil
}
