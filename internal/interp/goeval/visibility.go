// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package goeval

import (
	"go/ast"
	"go/token"

	"github.com/flintml/flint/internal/interp"
)

// undefinedRef reports the first identifier in a block that refers to a
// session binding outside the block's visible import set. Names declared in
// the block itself shield their uses, and names the session never defined
// are left alone so stdlib and universe identifiers pass through untouched.
// A block that does not parse reports nothing; Compile surfaces the syntax
// error instead.
func (e *Engine) undefinedRef(wrapper, code string, visible interp.ImportSet) (string, bool) {
	p, err := parseBlock(wrapper, code)
	if err != nil {
		return "", false
	}

	declared := make(map[string]bool)
	for _, name := range p.imports {
		declared[name] = true
	}
	collectDeclared(p.file, declared)

	leaked := ""
	usedIdents(p.file, func(name string) bool {
		if declared[name] || !e.defined[name] || visible.ContainsName(name) {
			return true
		}
		leaked = name
		return false
	})
	return leaked, leaked != ""
}

// collectDeclared records every name the block binds at any depth: imports,
// top-level and nested declarations, function parameters and results, short
// variable declarations, range variables, and labels.
func collectDeclared(file *ast.File, declared map[string]bool) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch d := n.(type) {
		case *ast.ImportSpec:
			if name := importedName(d); name != "" {
				declared[name] = true
			}
		case *ast.ValueSpec:
			for _, id := range d.Names {
				declared[id.Name] = true
			}
		case *ast.TypeSpec:
			declared[d.Name.Name] = true
		case *ast.FuncDecl:
			declared[d.Name.Name] = true
		case *ast.FuncType:
			for _, field := range fieldNames(d.Params) {
				declared[field] = true
			}
			for _, field := range fieldNames(d.Results) {
				declared[field] = true
			}
		case *ast.AssignStmt:
			if d.Tok != token.DEFINE {
				return true
			}
			for _, lhs := range d.Lhs {
				if id, ok := lhs.(*ast.Ident); ok {
					declared[id.Name] = true
				}
			}
		case *ast.RangeStmt:
			if d.Tok != token.DEFINE {
				return true
			}
			if id, ok := d.Key.(*ast.Ident); ok {
				declared[id.Name] = true
			}
			if id, ok := d.Value.(*ast.Ident); ok {
				declared[id.Name] = true
			}
		case *ast.LabeledStmt:
			declared[d.Label.Name] = true
		}
		return true
	})
}

func fieldNames(list *ast.FieldList) []string {
	if list == nil {
		return nil
	}
	var names []string
	for _, field := range list.List {
		for _, id := range field.Names {
			names = append(names, id.Name)
		}
	}
	return names
}

// usedIdents walks every identifier position that reads a name, skipping
// selector members, struct field declarations, composite-literal keys,
// import specs, and branch labels. The visit callback returns false to stop.
func usedIdents(file *ast.File, visit func(name string) bool) {
	stopped := false
	var walk func(n ast.Node)
	walk = func(n ast.Node) {
		if n == nil || stopped {
			return
		}
		switch x := n.(type) {
		case *ast.File:
			// The package clause is synthetic; only declarations matter.
			for _, decl := range x.Decls {
				walk(decl)
			}
			return
		case *ast.Ident:
			if x.Name != "_" && !visit(x.Name) {
				stopped = true
			}
			return
		case *ast.SelectorExpr:
			// Only the qualifier resolves in block scope.
			walk(x.X)
			return
		case *ast.Field:
			walk(x.Type)
			return
		case *ast.KeyValueExpr:
			// Struct-literal keys are field names, not references.
			if _, isIdent := x.Key.(*ast.Ident); !isIdent {
				walk(x.Key)
			}
			walk(x.Value)
			return
		case *ast.ImportSpec, *ast.BranchStmt:
			return
		}
		ast.Inspect(n, func(child ast.Node) bool {
			if stopped || child == nil || child == n {
				return child == n
			}
			walk(child)
			return false
		})
	}
	walk(file)
}
