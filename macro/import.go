package macro

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"
)

//go:embed std/*.txt
var stdlib embed.FS

const stdPrefix = "std/"

// maxImportDepth bounds nested @include chains, which also stops cycles.
const maxImportDepth = 32

var ErrImportDepth = errors.New("macro: import nesting too deep")

// Importer resolves the path of an @include directive to file contents.
// A missing file is reported with an error wrapping fs.ErrNotExist.
type Importer interface {
	Import(path string) (string, error)
}

// FileImporter reads std/NAME from StdDir, falling back to the copy built
// into the binary, and every other path from the filesystem.
type FileImporter struct {
	StdDir string
}

func (fi FileImporter) Import(path string) (string, error) {
	name, ok := strings.CutPrefix(path, stdPrefix)
	if !ok {
		b, err := os.ReadFile(path)
		return string(b), err
	}

	file := name + ".txt"
	if fi.StdDir != "" {
		b, err := os.ReadFile(filepath.Join(fi.StdDir, file))
		if err == nil {
			return string(b), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	b, err := fs.ReadFile(stdlib, stdPrefix+file)
	return string(b), err
}

// StdNames lists the embedded standard library modules.
func StdNames() []string {
	entries, err := fs.ReadDir(stdlib, "std")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".txt"))
	}
	return names
}

// resolveImports replaces each @include in a script body with the script
// bodies of the imported file.
func (p *Processor) resolveImports(body string, depth int) (string, error) {
	var importErr error
	out, err := importRe.ReplaceFunc(body, func(m regexp2.Match) string {
		if importErr != nil {
			return ""
		}
		text, err := p.readImport(strings.TrimSpace(m.GroupByNumber(1).String()), depth)
		if err != nil {
			importErr = err
		}
		return text
	}, -1, -1)
	if err != nil {
		return "", err
	}
	if importErr != nil {
		return "", importErr
	}
	return out, nil
}

func (p *Processor) readImport(path string, depth int) (string, error) {
	if depth >= maxImportDepth {
		return "", fmt.Errorf("%w: %s", ErrImportDepth, path)
	}
	src, err := p.importer.Import(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		p.sink.Warnf("macro", "import path does not exist: %s", path)
		return "", nil
	case err != nil:
		p.sink.Warnf("macro", "could not read import %s: %v", path, err)
		return "", nil
	}

	bodies, err := scriptBodies(StripComments(src))
	if err != nil {
		return "", err
	}
	return p.resolveImports(strings.Join(bodies, "\n"), depth+1)
}
