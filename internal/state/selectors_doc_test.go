package state

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

func TestSelectorsAreDocumented(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "selectors.go", nil, parser.ParseComments)
	if err != nil {
		t.Fatalf("parse selectors.go: %v", err)
	}
	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || !fn.Name.IsExported() {
			continue
		}
		if fn.Doc == nil || fn.Doc.Text() == "" {
			t.Errorf("%s has no doc comment", fn.Name.Name)
		}
	}
}
