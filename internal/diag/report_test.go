package diag

import (
	"bytes"
	"strings"
	"testing"

	"github.com/basecode-lang/alphac/source"
)

func TestReportRendersCaretUnderColumn(t *testing.T) {
	buf := source.New("t.a", []byte("a := 1 +;\n"))
	loc := buf.At(8, 9)
	d := source.Diagnostic{Code: "P019", Message: "unexpected ';'", Location: loc, Fatal: true}

	var out bytes.Buffer
	Report(&out, buf, d)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), out.String())
	}
	if !strings.Contains(lines[0], "P019") || !strings.Contains(lines[0], "unexpected ';'") {
		t.Fatalf("header missing code/message: %q", lines[0])
	}
	caretCol := strings.Index(lines[2], "^")
	if caretCol != strings.Index(lines[1], ";") {
		t.Fatalf("caret at %d, ';' at %d:\n%s", caretCol, strings.Index(lines[1], ";"), out.String())
	}
}

func TestReportAllLooksUpBufferByFileName(t *testing.T) {
	buf := source.New("only.a", []byte("x;\n"))
	loc := buf.At(0, 1)
	diags := []source.Diagnostic{{Code: "B016", Message: "bad token", Location: loc}}

	var out bytes.Buffer
	ReportAll(&out, map[string]*source.Buffer{"only.a": buf}, diags)
	if !strings.Contains(out.String(), "B016") {
		t.Fatalf("ReportAll did not render the diagnostic: %q", out.String())
	}
}
