// Package keygen renders Go key schema declarations for sample documents.
package keygen

import (
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// Schema describes one key type to render.
type Schema struct {
	Package  string
	TypeName string
	Keys     []string
}

// Render emits a gofmt'ed Go file declaring TypeName as a string type with
// one constant per key. Constant names are TypeName followed by the key in
// PascalCase; collisions get the smallest numeric suffix not already taken.
func Render(s Schema) ([]byte, error) {
	if !isIdent(s.TypeName) {
		return nil, fmt.Errorf("keygen: invalid type name %q", s.TypeName)
	}
	pkg := s.Package
	if pkg == "" {
		pkg = "main"
	}
	if !isIdent(pkg) {
		return nil, fmt.Errorf("keygen: invalid package name %q", pkg)
	}

	keys := append([]string(nil), s.Keys...)
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by jsonmodel keys. DO NOT EDIT.\n\npackage %s\n\n", pkg)
	fmt.Fprintf(&b, "// %s enumerates the keys of a %s object.\n", s.TypeName, s.TypeName)
	fmt.Fprintf(&b, "type %s string\n\n", s.TypeName)
	if len(keys) > 0 {
		b.WriteString("const (\n")
		used := make(map[string]bool, len(keys))
		for _, k := range keys {
			base := s.TypeName + ConstName(k)
			name := base
			for n := 2; used[name]; n++ {
				name = base + strconv.Itoa(n)
			}
			used[name] = true
			fmt.Fprintf(&b, "\t%s %s = %s\n", name, s.TypeName, strconv.Quote(k))
		}
		b.WriteString(")\n")
	}

	out, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("keygen: format: %w", err)
	}
	return out, nil
}

// ConstName converts a JSON key into an exported identifier fragment.
// Characters that cannot appear in identifiers are dropped; keys that
// leave nothing, or start with a digit, get a "Key" prefix.
func ConstName(key string) string {
	name := strcase.ToCamel(key)
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return -1
	}, name)
	if name == "" || unicode.IsDigit([]rune(name)[0]) {
		name = "Key" + name
	}
	return name
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !(unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return true
}
