// doublegen generates impdouble subjects for Go interfaces.
//
// Add a `//go:generate doublegen <Interface>` comment next to the interface (or
// in a test file, for a test-only subject). The generated type embeds
// impdouble.Methods and is called <Interface>Double unless --name says
// otherwise. It is written to generated_<name>.go, or generated_<name>_test.go
// in test packages. Interfaces from imported packages are named pkg.Interface.
package main

import (
	"fmt"
	"os"

	"github.com/dave/dst"
	"github.com/toejough/impdouble/doublegen/run"
	"github.com/toejough/impdouble/doublegen/run/load"
)

func main() {
	err := run.Run(os.Args, os.Getenv, &realFileSystem{}, &realPackageLoader{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// realPackageLoader implements run.PackageLoader by parsing source with DST.
type realPackageLoader struct{}

// Load parses the package at importPath.
func (pl *realPackageLoader) Load(importPath string) ([]*dst.File, error) {
	files, err := load.PackageDST(importPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return files, nil
}
