// Package astutil renders DST type expressions back to Go source.
package astutil

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/dst"
)

// TypeString renders expr as Go source. When qualifier is not empty, exported
// identifiers that are not already package-qualified get "qualifier." in front,
// so types declared in another package read correctly from the generated one.
//
//nolint:cyclop // type switch over every DST type expression
func TypeString(expr dst.Expr, qualifier string) string {
	if expr == nil {
		return ""
	}

	switch typed := expr.(type) {
	case *dst.Ident:
		if qualifier != "" && isExported(typed.Name) {
			return qualifier + "." + typed.Name
		}

		return typed.Name
	case *dst.BasicLit:
		return typed.Value
	case *dst.SelectorExpr:
		return TypeString(typed.X, "") + "." + typed.Sel.Name
	case *dst.StarExpr:
		return "*" + TypeString(typed.X, qualifier)
	case *dst.ArrayType:
		return "[" + TypeString(typed.Len, "") + "]" + TypeString(typed.Elt, qualifier)
	case *dst.MapType:
		return "map[" + TypeString(typed.Key, qualifier) + "]" + TypeString(typed.Value, qualifier)
	case *dst.ChanType:
		return chanPrefix(typed.Dir) + TypeString(typed.Value, qualifier)
	case *dst.Ellipsis:
		return "..." + TypeString(typed.Elt, qualifier)
	case *dst.FuncType:
		return "func" + Signature(typed, qualifier)
	case *dst.InterfaceType:
		return interfaceString(typed, qualifier)
	case *dst.StructType:
		return structString(typed, qualifier)
	case *dst.IndexExpr:
		return TypeString(typed.X, qualifier) + "[" + TypeString(typed.Index, qualifier) + "]"
	case *dst.IndexListExpr:
		indices := make([]string, len(typed.Indices))
		for i, index := range typed.Indices {
			indices[i] = TypeString(index, qualifier)
		}

		return TypeString(typed.X, qualifier) + "[" + strings.Join(indices, ", ") + "]"
	case *dst.ParenExpr:
		return "(" + TypeString(typed.X, qualifier) + ")"
	default:
		return fmt.Sprintf("%T", expr)
	}
}

// FieldTypes returns one rendered type per declared name, so "a, b int"
// yields two entries and an unnamed field yields one.
func FieldTypes(fields *dst.FieldList, qualifier string) []string {
	if fields == nil {
		return nil
	}

	var types []string

	for _, field := range fields.List {
		rendered := TypeString(field.Type, qualifier)

		for range max(len(field.Names), 1) {
			types = append(types, rendered)
		}
	}

	return types
}

// Signature renders a function type's parameters and results, without the
// func keyword: "(int, string) error".
func Signature(funcType *dst.FuncType, qualifier string) string {
	var buf strings.Builder

	buf.WriteString("(")
	buf.WriteString(strings.Join(FieldTypes(funcType.Params, qualifier), ", "))
	buf.WriteString(")")

	results := FieldTypes(funcType.Results, qualifier)

	switch len(results) {
	case 0:
	case 1:
		buf.WriteString(" " + results[0])
	default:
		buf.WriteString(" (" + strings.Join(results, ", ") + ")")
	}

	return buf.String()
}

func chanPrefix(dir dst.ChanDir) string {
	switch dir {
	case dst.SEND:
		return "chan<- "
	case dst.RECV:
		return "<-chan "
	default:
		return "chan "
	}
}

func interfaceString(interfaceType *dst.InterfaceType, qualifier string) string {
	if interfaceType.Methods == nil || len(interfaceType.Methods.List) == 0 {
		return "interface{}"
	}

	elements := make([]string, 0, len(interfaceType.Methods.List))

	for _, method := range interfaceType.Methods.List {
		funcType, ok := method.Type.(*dst.FuncType)
		if !ok || len(method.Names) == 0 {
			elements = append(elements, TypeString(method.Type, qualifier))

			continue
		}

		elements = append(elements, method.Names[0].Name+Signature(funcType, qualifier))
	}

	return "interface{ " + strings.Join(elements, "; ") + " }"
}

func isExported(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}

	return false
}

func structString(structType *dst.StructType, qualifier string) string {
	if structType.Fields == nil || len(structType.Fields.List) == 0 {
		return "struct{}"
	}

	fields := make([]string, 0, len(structType.Fields.List))

	for _, field := range structType.Fields.List {
		var buf strings.Builder

		if len(field.Names) > 0 {
			names := make([]string, len(field.Names))
			for i, name := range field.Names {
				names[i] = name.Name
			}

			buf.WriteString(strings.Join(names, ", ") + " ")
		}

		buf.WriteString(TypeString(field.Type, qualifier))

		if field.Tag != nil {
			buf.WriteString(" " + field.Tag.Value)
		}

		fields = append(fields, buf.String())
	}

	return "struct{ " + strings.Join(fields, "; ") + " }"
}
