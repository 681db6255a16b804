// Package generate renders impdouble subjects for parsed interfaces.
package generate

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"

	"github.com/toejough/impdouble/doublegen/run/parse"
)

// ImpdoubleImportPath is the import path generated code uses for impdouble.
const ImpdoubleImportPath = "github.com/toejough/impdouble"

// Subject renders a subject type called name, in package pkgName, that
// implements iface through an impdouble method table.
func Subject(pkgName, name string, iface parse.Interface) (string, error) {
	var buf bytes.Buffer

	err := subjectTmpl.Execute(&buf, subjectData{
		Package:    pkgName,
		Name:       name,
		Interface:  iface.Type,
		Methods:    iface.Methods,
		Imports:    iface.Imports,
		ImportPath: ImpdoubleImportPath,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("failed to format %s: %w\n%s", name, err, buf.String())
	}

	return string(formatted), nil
}

// unexported constants.
const subjectTemplate = `// Code generated by doublegen. DO NOT EDIT.

package {{.Package}}

import (
	"{{.ImportPath}}"
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)

// {{.Name}} is an impdouble subject implementing {{.Interface}}.
type {{.Name}} struct {
	impdouble.Methods
}

// New{{.Name}} returns a {{.Name}} whose methods call impl. With a nil impl,
// every method stays undefined until a double is registered for it.
func New{{.Name}}(impl {{.Interface}}) *{{.Name}} {
	d := &{{.Name}}{}
	if impl == nil {
		return d
	}
{{range .Methods}}
	d.Methods.Define("{{.Name}}", func(args ...any) []any {
		{{if .Results}}{{resultVars .}} := {{end}}impl.{{.Name}}({{implArgs .}})

		return {{if .Results}}[]any{ {{- resultVars .}}}{{else}}nil{{end}}
	})
{{end}}
	return d
}
{{range .Methods}}
func (d *{{$.Name}}) {{.Name}}({{params .}}){{resultList .}} {
	{{if .Results}}results := {{end}}d.Methods.Invoke("{{.Name}}"{{invokeArgs .}})
{{- if .Results}}

	return {{typedResults .}}
{{- end}}
}
{{end}}`

// unexported variables.
var (
	//nolint:gochecknoglobals // parsed once; the template is a constant
	subjectTmpl = template.Must(template.New("subject").Funcs(template.FuncMap{
		"implArgs":     implArgs,
		"invokeArgs":   invokeArgs,
		"params":       params,
		"resultList":   resultList,
		"resultVars":   resultVars,
		"typedResults": typedResults,
	}).Parse(subjectTemplate))
)

type subjectData struct {
	Package    string
	Name       string
	Interface  string
	Methods    []parse.Method
	Imports    []parse.Import
	ImportPath string
}

// implArgs converts the dynamic args back to the typed parameters of method.
func implArgs(method parse.Method) string {
	parts := make([]string, len(method.Params))

	for i, param := range method.Params {
		if param.Variadic {
			parts[i] = fmt.Sprintf("impdouble.Rest[%s](args, %d)...", param.Type, i)

			continue
		}

		parts[i] = fmt.Sprintf("impdouble.Arg[%s](args, %d)", param.Type, i)
	}

	return strings.Join(parts, ", ")
}

// invokeArgs passes method's parameters to Invoke, flattening a variadic tail.
// The result starts with ", " unless there are no parameters.
func invokeArgs(method parse.Method) string {
	if len(method.Params) == 0 {
		return ""
	}

	names := make([]string, 0, len(method.Params))
	for _, param := range method.Params {
		names = append(names, param.Name)
	}

	if !method.Variadic() {
		return ", " + strings.Join(names, ", ")
	}

	last := names[len(names)-1]
	fixed := names[:len(names)-1]

	if len(fixed) == 0 {
		return fmt.Sprintf(", impdouble.Values(%s)...", last)
	}

	return fmt.Sprintf(", append([]any{%s}, impdouble.Values(%s)...)...", strings.Join(fixed, ", "), last)
}

func params(method parse.Method) string {
	parts := make([]string, len(method.Params))

	for i, param := range method.Params {
		if param.Variadic {
			parts[i] = param.Name + " ..." + param.Type

			continue
		}

		parts[i] = param.Name + " " + param.Type
	}

	return strings.Join(parts, ", ")
}

func resultList(method parse.Method) string {
	switch len(method.Results) {
	case 0:
		return ""
	case 1:
		return " " + method.Results[0]
	default:
		return " (" + strings.Join(method.Results, ", ") + ")"
	}
}

func resultVars(method parse.Method) string {
	vars := make([]string, len(method.Results))
	for i := range method.Results {
		vars[i] = "r" + strconv.Itoa(i)
	}

	return strings.Join(vars, ", ")
}

func typedResults(method parse.Method) string {
	parts := make([]string, len(method.Results))
	for i, result := range method.Results {
		parts[i] = fmt.Sprintf("impdouble.Result[%s](results, %d)", result, i)
	}

	return strings.Join(parts, ", ")
}
