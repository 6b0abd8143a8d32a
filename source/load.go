package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rifhice/paxada"
	"github.com/Rifhice/paxada/diag"
	"github.com/Rifhice/paxada/ir"
)

// LoadFile reads and decodes one doc file.
func LoadFile(path string) ([]ir.Document, diag.List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("source: read %s: %w", path, err)
	}
	return Decode(data, path)
}

// LoadDir decodes every doc file under dir, in lexical order. Hidden
// directories and node_modules are skipped. Invalid files do not stop the
// walk: their issues are gathered and returned together once every file has
// been read. Diagnostic paths are placed under the file path.
func LoadDir(dir string) ([]ir.Document, diag.List, error) {
	files, err := Find(dir)
	if err != nil {
		return nil, nil, err
	}
	var (
		docs []ir.Document
		all  diag.List
		iss  paxada.Issues
	)
	for _, f := range files {
		ds, d, err := LoadFile(f)
		if err != nil {
			if more, ok := paxada.AsIssues(err); ok {
				iss = paxada.AppendIssues(iss, more...)
				continue
			}
			return nil, nil, err
		}
		docs = append(docs, ds...)
		all = append(all, d.Within(f)...)
	}
	if len(iss) > 0 {
		return docs, all, iss
	}
	return docs, all, nil
}

// Find lists the doc files under dir.
func Find(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if e.IsDir() {
			if path != dir && (strings.HasPrefix(e.Name(), ".") || e.Name() == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsDocFile(e.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source: walk %s: %w", dir, err)
	}
	return files, nil
}
