// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package goeval

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"
	"path"
	"strconv"
	"strings"

	"github.com/flintml/flint/internal/interp"
)

// parsedBlock is one block's source in AST form, either as top-level
// declarations or as statements wrapped in a synthetic function.
type parsedBlock struct {
	file    *ast.File
	imports []string // package names peeled off a statement snippet
	stmts   bool
}

// parseBlock parses block source, trying declaration form first and falling
// back to a statement snippet. Imports cannot live inside a function body,
// so the snippet path peels leading import declarations off before wrapping
// the rest. On failure the declaration-form parse error is returned.
func parseBlock(wrapper, code string) (parsedBlock, error) {
	file, ferr := parser.ParseFile(token.NewFileSet(), wrapper+".flint",
		"package "+wrapper+"\n"+code, parser.SkipObjectResolution)
	if ferr == nil {
		return parsedBlock{file: file}, nil
	}

	imports, rest, err := splitImports(code)
	if err != nil {
		return parsedBlock{}, ferr
	}
	wrapped := "package " + wrapper + "\nfunc _() {\n" + rest + "\n}"
	file, err = parser.ParseFile(token.NewFileSet(), wrapper+".flint", wrapped, parser.SkipObjectResolution)
	if err != nil {
		return parsedBlock{}, ferr
	}
	return parsedBlock{file: file, imports: imports, stmts: true}, nil
}

// scanExports derives the bindings a block will export: top-level var,
// const, type, and func declarations, short variable declarations in
// statement snippets, and imported package names.
func scanExports(wrapper, code string) (interp.ImportSet, error) {
	p, err := parseBlock(wrapper, code)
	if err != nil {
		return nil, err
	}

	set := interp.NewImportSet()
	for _, name := range p.imports {
		set[interp.Binding{Kind: interp.PackageBinding, Name: name}] = struct{}{}
	}
	if !p.stmts {
		collectDecls(p.file, set)
		return set, nil
	}
	for _, decl := range p.file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		collectStmts(fn.Body.List, set)
	}
	return set, nil
}

func collectDecls(file *ast.File, set interp.ImportSet) {
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			collectGenDecl(d, set)
		case *ast.FuncDecl:
			if d.Recv == nil && d.Name.Name != "_" && d.Name.Name != "init" {
				set[interp.Binding{Kind: interp.ValueBinding, Name: d.Name.Name}] = struct{}{}
			}
		}
	}
}

func collectGenDecl(d *ast.GenDecl, set interp.ImportSet) {
	for _, spec := range d.Specs {
		switch sp := spec.(type) {
		case *ast.ImportSpec:
			name := importedName(sp)
			if name != "" {
				set[interp.Binding{Kind: interp.PackageBinding, Name: name}] = struct{}{}
			}
		case *ast.ValueSpec:
			for _, id := range sp.Names {
				if id.Name != "_" {
					set[interp.Binding{Kind: interp.ValueBinding, Name: id.Name}] = struct{}{}
				}
			}
		case *ast.TypeSpec:
			if sp.Name.Name != "_" {
				set[interp.Binding{Kind: interp.TypeBinding, Name: sp.Name.Name}] = struct{}{}
			}
		}
	}
}

func collectStmts(stmts []ast.Stmt, set interp.ImportSet) {
	for _, stmt := range stmts {
		switch st := stmt.(type) {
		case *ast.AssignStmt:
			if st.Tok != token.DEFINE {
				continue
			}
			for _, lhs := range st.Lhs {
				if id, ok := lhs.(*ast.Ident); ok && id.Name != "_" {
					set[interp.Binding{Kind: interp.ValueBinding, Name: id.Name}] = struct{}{}
				}
			}
		case *ast.DeclStmt:
			if gd, ok := st.Decl.(*ast.GenDecl); ok {
				collectGenDecl(gd, set)
			}
		}
	}
}

func importedName(sp *ast.ImportSpec) string {
	if sp.Name != nil {
		if sp.Name.Name == "_" || sp.Name.Name == "." {
			return ""
		}
		return sp.Name.Name
	}
	p, err := strconv.Unquote(sp.Path.Value)
	if err != nil {
		return ""
	}
	return path.Base(p)
}

// splitImports peels leading import declarations off a statement snippet,
// returning the imported package names and the remaining source.
func splitImports(code string) (names []string, rest string, err error) {
	lines := strings.Split(code, "\n")
	i := 0
	for i < len(lines) {
		t := strings.TrimSpace(lines[i])
		switch {
		case t == "" || strings.HasPrefix(t, "//"):
			i++
		case strings.HasPrefix(t, "import ("):
			i++
			for i < len(lines) && strings.TrimSpace(lines[i]) != ")" {
				name, perr := importLineName(strings.TrimSpace(lines[i]))
				if perr != nil {
					return nil, "", perr
				}
				if name != "" {
					names = append(names, name)
				}
				i++
			}
			if i == len(lines) {
				return nil, "", errors.New("unterminated import block")
			}
			i++ // closing paren
		case strings.HasPrefix(t, "import "):
			name, perr := importLineName(strings.TrimPrefix(t, "import "))
			if perr != nil {
				return nil, "", perr
			}
			if name != "" {
				names = append(names, name)
			}
			i++
		default:
			return names, strings.Join(lines[i:], "\n"), nil
		}
	}
	return names, "", nil
}

// importLineName parses `"path"` or `alias "path"` and returns the bound name.
func importLineName(s string) (string, error) {
	if s == "" || strings.HasPrefix(s, "//") {
		return "", nil
	}
	alias := ""
	if !strings.HasPrefix(s, `"`) {
		var ok bool
		alias, s, ok = strings.Cut(s, " ")
		if !ok {
			return "", fmt.Errorf("malformed import spec %q", s)
		}
		s = strings.TrimSpace(s)
	}
	p, err := strconv.Unquote(strings.TrimSuffix(strings.TrimSpace(s), ";"))
	if err != nil {
		return "", fmt.Errorf("malformed import path %q: %w", s, err)
	}
	switch alias {
	case "_", ".":
		return "", nil
	case "":
		return path.Base(p), nil
	default:
		return alias, nil
	}
}

// positionOf extracts a file:line:col position from a parse error, if any.
func positionOf(err error) string {
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return list[0].Pos.String()
	}
	return ""
}
