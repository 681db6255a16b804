// Package output writes generated subjects to disk.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/toejough/go-reorder"
)

// Writer writes a file.
type Writer interface {
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Filename returns the file a subject called name is written to:
// generated_<name>.go, or generated_<name>_test.go when generating for a test
// package (pkgName ends in _test) or from a test file (goFile ends in _test.go).
func Filename(name, pkgName, goFile string) string {
	base := "generated_" + strings.TrimSuffix(strings.TrimSuffix(name, ".go"), "_test")

	if strings.HasSuffix(pkgName, "_test") || strings.HasSuffix(goFile, "_test.go") {
		return base + "_test.go"
	}

	return base + ".go"
}

// Write reorders code's declarations and writes it to Filename(name, pkgName, goFile).
// Progress and reorder warnings go to out.
func Write(code, name, pkgName, goFile string, fileWriter Writer, out io.Writer) error {
	const generatedFilePermissions = 0o600

	filename := Filename(name, pkgName, goFile)

	reordered, err := reorder.Source(code)
	if err != nil {
		_, _ = fmt.Fprintf(out, "Warning: failed to reorder %s: %v\n", filename, err)

		reordered = code
	}

	err = fileWriter.WriteFile(filename, []byte(reordered), generatedFilePermissions)
	if err != nil {
		return fmt.Errorf("error writing %s: %w", filename, err)
	}

	_, _ = fmt.Fprintf(out, "%s written successfully.\n", filename)

	return nil
}
