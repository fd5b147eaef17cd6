// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package builder

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"strings"
)

// errNoGoFiles is returned for a plugin directory without a Go package.
var errNoGoFiles = errors.New("no Go files in plugin directory")

// errUnknownComponent excludes pages whose component the package does not declare.
var errUnknownComponent = errors.New("component not declared by the plugin package")

// declKind is the kind of a top-level declaration.
type declKind int

const (
	declVar declKind = iota + 1
	declConst
	declFunc
	declType
)

func (k declKind) String() string {
	switch k {
	case declVar:
		return "var"
	case declConst:
		return "const"
	case declFunc:
		return "func"
	case declType:
		return "type"
	default:
		return "undeclared"
	}
}

// goPackage is the exported surface of a plugin package.
type goPackage struct {
	name    string
	exports map[string]declKind
}

// loadPackage parses the non-test Go files of dir and collects their
// exported top-level declarations.
func loadPackage(fsys fs.FS, dir string) (*goPackage, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading plugin directory: %w", err)
	}

	fset := token.NewFileSet()
	pkg := &goPackage{exports: make(map[string]declKind)}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		file := path.Join(dir, name)
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		f, err := parser.ParseFile(fset, file, data, parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}

		switch {
		case pkg.name == "":
			pkg.name = f.Name.Name
		case f.Name.Name != pkg.name:
			return nil, fmt.Errorf("%s declares package %s, other files declare %s", name, f.Name.Name, pkg.name)
		}
		pkg.collect(f)
	}

	if pkg.name == "" {
		return nil, errNoGoFiles
	}
	return pkg, nil
}

func (p *goPackage) collect(f *ast.File) {
	add := func(ident *ast.Ident, kind declKind) {
		if ident.IsExported() {
			p.exports[ident.Name] = kind
		}
	}

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				add(d.Name, declFunc)
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					add(s.Name, declType)
				case *ast.ValueSpec:
					kind := declVar
					if d.Tok == token.CONST {
						kind = declConst
					}
					for _, n := range s.Names {
						add(n, kind)
					}
				}
			}
		}
	}
}

// checkComponent reports whether ident can be used as a route component:
// an exported package-level variable holding an http.Handler.
func (p *goPackage) checkComponent(ident string) error {
	switch kind := p.exports[ident]; kind {
	case declVar:
		return nil
	case 0:
		return fmt.Errorf("%w: %s.%s", errUnknownComponent, p.name, ident)
	default:
		return fmt.Errorf("%w: %s.%s is a %s, not a handler variable", errUnknownComponent, p.name, ident, kind)
	}
}
