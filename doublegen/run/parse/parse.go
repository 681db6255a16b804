// Package parse finds an interface in parsed source and describes the methods
// a generated subject has to implement.
package parse

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strconv"

	"github.com/dave/dst"
	"github.com/toejough/impdouble/doublegen/run/astutil"
)

// Import is one import the generated code needs.
type Import struct {
	Name string // explicit name, empty when the path's last element is used
	Path string
}

// Interface describes the interface a subject is generated for.
type Interface struct {
	// Type is the interface as the generated code refers to it, e.g. "Store" or "shop.Store".
	Type    string
	Methods []Method
	Imports []Import
}

// Method is one interface method.
type Method struct {
	Name    string
	Params  []Param
	Results []string
}

// Variadic reports whether the method's last parameter is variadic.
func (m Method) Variadic() bool {
	return len(m.Params) > 0 && m.Params[len(m.Params)-1].Variadic
}

// Param is one method parameter. Type is the element type for a variadic parameter.
type Param struct {
	Name     string
	Type     string
	Variadic bool
}

// Find looks up the interface called name in files. A non-empty qualifier
// means files belong to another package, imported as qualifier by the
// generated code; its own exported types get qualified and its import is
// added with importPath.
func Find(files []*dst.File, name, qualifier, importPath string) (Interface, error) {
	finder := newFinder(files, qualifier)

	methods, err := finder.methods(name, map[string]bool{})
	if err != nil {
		return Interface{}, err
	}

	sort.SliceStable(methods, func(i, j int) bool { return methods[i].Name < methods[j].Name })

	typeName := name
	if qualifier != "" {
		typeName = qualifier + "." + name
		finder.need(qualifier, importPath)
	}

	return Interface{Type: typeName, Methods: methods, Imports: finder.neededImports()}, nil
}

// ImportPath returns the path files import as qualifier.
func ImportPath(files []*dst.File, qualifier string) (string, error) {
	importPath, ok := fileImports(files)[qualifier]
	if !ok {
		return "", fmt.Errorf("%w: %q", errUnknownQualifier, qualifier)
	}

	return importPath, nil
}

// unexported variables.
var (
	errGenericInterface  = errors.New("generic interfaces are not supported")
	errInterfaceNotFound = errors.New("interface not found")
	errNotAnInterface    = errors.New("not an interface")
	errUnknownQualifier  = errors.New("no import for package")
	errUnsupportedEmbed  = errors.New("unsupported embedded interface")
)

// reservedNames are identifiers the generated methods use themselves.
//
//nolint:gochecknoglobals // read-only lookup table
var reservedNames = map[string]bool{"_": true, "d": true, "impdouble": true, "results": true}

type finder struct {
	types     map[string]*dst.TypeSpec
	imports   map[string]string
	qualifier string
	needed    map[string]string
}

func newFinder(files []*dst.File, qualifier string) *finder {
	types := make(map[string]*dst.TypeSpec)

	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*dst.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range genDecl.Specs {
				if typeSpec, ok := spec.(*dst.TypeSpec); ok {
					types[typeSpec.Name.Name] = typeSpec
				}
			}
		}
	}

	return &finder{
		types:     types,
		imports:   fileImports(files),
		qualifier: qualifier,
		needed:    make(map[string]string),
	}
}

// methods collects name's methods, including those of embedded interfaces
// declared in the same files. seen guards against embedding cycles.
func (f *finder) methods(name string, seen map[string]bool) ([]Method, error) {
	spec, ok := f.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errInterfaceNotFound, name)
	}

	if spec.TypeParams != nil && len(spec.TypeParams.List) > 0 {
		return nil, fmt.Errorf("%w: %s", errGenericInterface, name)
	}

	interfaceType, ok := spec.Type.(*dst.InterfaceType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errNotAnInterface, name)
	}

	if seen[name] {
		return nil, nil
	}

	seen[name] = true

	var methods []Method

	for _, field := range interfaceType.Methods.List {
		funcType, isFunc := field.Type.(*dst.FuncType)
		if isFunc && len(field.Names) > 0 {
			methods = append(methods, f.method(field.Names[0].Name, funcType))

			continue
		}

		embedded, isIdent := field.Type.(*dst.Ident)
		if !isIdent {
			return nil, fmt.Errorf("%w: %s in %s", errUnsupportedEmbed, astutil.TypeString(field.Type, ""), name)
		}

		inner, err := f.methods(embedded.Name, seen)
		if err != nil {
			return nil, err
		}

		methods = appendNew(methods, inner)
	}

	return methods, nil
}

func (f *finder) method(name string, funcType *dst.FuncType) Method {
	method := Method{Name: name}
	used := make(map[string]bool)

	if funcType.Params != nil {
		for _, field := range funcType.Params.List {
			typeExpr := field.Type
			ellipsis, variadic := typeExpr.(*dst.Ellipsis)

			if variadic {
				typeExpr = ellipsis.Elt
			}

			f.collectImports(typeExpr)
			rendered := astutil.TypeString(typeExpr, f.qualifier)

			names := make([]string, 0, len(field.Names))
			for _, ident := range field.Names {
				names = append(names, ident.Name)
			}

			if len(names) == 0 {
				names = append(names, "")
			}

			for _, paramName := range names {
				method.Params = append(method.Params, Param{
					Name:     f.paramName(paramName, len(method.Params), used),
					Type:     rendered,
					Variadic: variadic,
				})
			}
		}
	}

	if funcType.Results != nil {
		for _, field := range funcType.Results.List {
			f.collectImports(field.Type)
		}
	}

	method.Results = astutil.FieldTypes(funcType.Results, f.qualifier)

	return method
}

// collectImports records the imports expr's package selectors refer to.
func (f *finder) collectImports(expr dst.Expr) {
	dst.Inspect(expr, func(node dst.Node) bool {
		selector, ok := node.(*dst.SelectorExpr)
		if !ok {
			return true
		}

		if pkg, ok := selector.X.(*dst.Ident); ok {
			if importPath, known := f.imports[pkg.Name]; known {
				f.need(pkg.Name, importPath)
			}
		}

		return false
	})
}

func (f *finder) need(name, importPath string) {
	f.needed[name] = importPath
}

func (f *finder) neededImports() []Import {
	imports := make([]Import, 0, len(f.needed))

	for name, importPath := range f.needed {
		imp := Import{Path: importPath}
		if path.Base(importPath) != name {
			imp.Name = name
		}

		imports = append(imports, imp)
	}

	sort.Slice(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })

	return imports
}

func (f *finder) paramName(name string, index int, used map[string]bool) string {
	if name == "" || reservedNames[name] || name == f.qualifier || f.imports[name] != "" || used[name] {
		name = "arg" + strconv.Itoa(index)
	}

	used[name] = true

	return name
}

// appendNew appends the methods of more whose names aren't in methods yet.
func appendNew(methods, more []Method) []Method {
	for _, candidate := range more {
		duplicate := false

		for _, existing := range methods {
			if existing.Name == candidate.Name {
				duplicate = true

				break
			}
		}

		if !duplicate {
			methods = append(methods, candidate)
		}
	}

	return methods
}

// fileImports maps each import's local name to its path.
func fileImports(files []*dst.File) map[string]string {
	imports := make(map[string]string)

	for _, file := range files {
		for _, spec := range file.Imports {
			importPath, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}

			name := path.Base(importPath)
			if spec.Name != nil {
				name = spec.Name.Name
			}

			if name == "_" || name == "." {
				continue
			}

			if _, exists := imports[name]; !exists {
				imports[name] = importPath
			}
		}
	}

	return imports
}
