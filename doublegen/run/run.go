// Package run implements the doublegen command in a testable way.
package run

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/dave/dst"
	"github.com/toejough/impdouble/doublegen/run/generate"
	"github.com/toejough/impdouble/doublegen/run/output"
	"github.com/toejough/impdouble/doublegen/run/parse"
)

// FileSystem writes generated files.
type FileSystem interface {
	output.Writer
}

// PackageLoader parses the files of a package. "." is the current package.
type PackageLoader interface {
	Load(importPath string) ([]*dst.File, error)
}

// Run executes doublegen. args are the command line, getEnv reads the
// variables go generate sets (GOPACKAGE, GOFILE). On success, a subject for
// the named interface is written next to the file that invoked go generate.
func Run(args []string, getEnv func(string) string, fileSys FileSystem, pkgLoader PackageLoader, out io.Writer) error {
	parsed, err := parseArgs(args)
	if err != nil {
		return err
	}

	localFiles, err := pkgLoader.Load(".")
	if err != nil {
		return fmt.Errorf("failed to load current package: %w", err)
	}

	qualifier, interfaceName := splitInterfaceName(parsed.Interface)

	iface, err := findInterface(localFiles, qualifier, interfaceName, pkgLoader)
	if err != nil {
		return err
	}

	pkgName := getEnv("GOPACKAGE")
	if pkgName == "" {
		pkgName = packageName(localFiles)
	}

	if pkgName == "" {
		return errNoPackageName
	}

	name := parsed.Name
	if name == "" {
		name = interfaceName + "Double"
	}

	code, err := generate.Subject(pkgName, name, iface)
	if err != nil {
		return err
	}

	return output.Write(code, name, pkgName, getEnv("GOFILE"), fileSys, out)
}

// unexported variables.
var (
	errNoPackageName = errors.New("cannot determine package name")
)

// cliArgs defines the command-line arguments for the generator.
type cliArgs struct {
	Interface string `arg:"positional,required" help:"interface to generate a subject for (e.g. Store or store.Store)"`
	Name      string `arg:"--name"              help:"name of the generated subject type (defaults to <Interface>Double)"`
}

func findInterface(
	localFiles []*dst.File, qualifier, interfaceName string, pkgLoader PackageLoader,
) (parse.Interface, error) {
	if qualifier == "" {
		return parse.Find(localFiles, interfaceName, "", "")
	}

	importPath, err := parse.ImportPath(localFiles, qualifier)
	if err != nil {
		return parse.Interface{}, err
	}

	foreignFiles, err := pkgLoader.Load(importPath)
	if err != nil {
		return parse.Interface{}, fmt.Errorf("failed to load package %q: %w", importPath, err)
	}

	return parse.Find(foreignFiles, interfaceName, qualifier, importPath)
}

// packageName returns the package name of the first file, or "" if none.
func packageName(files []*dst.File) string {
	for _, file := range files {
		if file.Name != nil {
			return file.Name.Name
		}
	}

	return ""
}

// parseArgs parses command-line arguments into cliArgs.
func parseArgs(args []string) (cliArgs, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "doublegen"}, &parsed)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, nil
}

// splitInterfaceName splits "pkg.Iface" into its qualifier and name.
func splitInterfaceName(name string) (qualifier, local string) {
	if before, after, found := strings.Cut(name, "."); found {
		return before, after
	}

	return "", name
}
