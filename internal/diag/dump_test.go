package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/element"
	"github.com/basecode-lang/alphac/vm"
)

func TestDumpASTIndentsChildren(t *testing.T) {
	root := &ast.Node{Kind: ast.KindModule}
	child := &ast.Node{Kind: ast.KindLiteralInteger, Token: "1"}
	root.AddChild(child)

	var out bytes.Buffer
	DumpAST(&out, root)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}
	if strings.HasPrefix(lines[1], " ") == false {
		t.Fatalf("child line not indented: %q", lines[1])
	}
	if !strings.Contains(lines[1], `"1"`) {
		t.Fatalf("child line missing token: %q", lines[1])
	}
}

func TestDumpScopeListsStatementsAndNestedScopes(t *testing.T) {
	root := element.NewScope(element.BlockModule, nil)
	decl := &element.Element{Kind: element.KindIdentifier, Symbol: element.QualifiedSymbol{Name: "a"}}
	root.Statements = append(root.Statements, &element.Element{Kind: element.KindStatement, Left: decl})
	element.NewScope(element.BlockProcedureInstance, root)

	var out bytes.Buffer
	DumpScope(&out, root)

	if !strings.Contains(out.String(), "a") {
		t.Fatalf("missing declared symbol: %q", out.String())
	}
	if !strings.Contains(out.String(), "scope:") {
		t.Fatalf("missing nested scope marker: %q", out.String())
	}
}

func TestDumpTerpIncludesRegistersAndPC(t *testing.T) {
	term, err := vm.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	term.I[0] = 42
	term.PC = 64

	var out bytes.Buffer
	if err := DumpTerp(&out, term); err != nil {
		t.Fatalf("DumpTerp: %v", err)
	}
	if !strings.Contains(out.String(), "42") {
		t.Fatalf("missing register value: %q", out.String())
	}
	if !strings.Contains(out.String(), "pc=64") {
		t.Fatalf("missing pc: %q", out.String())
	}
}
