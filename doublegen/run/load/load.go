// Package load parses a package's source files into DST.
package load

import (
	"errors"
	"fmt"
	"go/build"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

// PackageDST loads a package and returns its parsed files. importPath is "."
// for the current directory, "./x" for a directory relative to it, or an
// import path resolved with go/build. Only "." includes test files, since
// doubles are usually generated from a test package. No type checking is done.
func PackageDST(importPath string) ([]*dst.File, error) {
	dir, err := packageDir(importPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	includeTests := importPath == "."
	dec := decorator.NewDecorator(token.NewFileSet())
	files := make([]*dst.File, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}

		if !includeTests && strings.HasSuffix(name, "_test.go") {
			continue
		}

		file, err := dec.ParseFile(filepath.Join(dir, name), nil, 0)
		if err != nil {
			// A broken sibling file shouldn't stop generation from the others.
			continue
		}

		files = append(files, file)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no parseable .go files in %s", errNoPackagesFound, dir)
	}

	return files, nil
}

// unexported variables.
var (
	errNoPackagesFound = errors.New("no packages found")
)

func packageDir(importPath string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if importPath == "." {
		return wd, nil
	}

	if build.IsLocalImport(importPath) {
		return filepath.Join(wd, importPath), nil
	}

	pkg, err := build.Import(importPath, wd, build.FindOnly)
	if err != nil {
		return "", fmt.Errorf("failed to find package %q: %w", importPath, err)
	}

	return pkg.Dir, nil
}
