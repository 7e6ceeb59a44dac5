package asm

import (
	"strings"
	"testing"

	"github.com/basecode-lang/alphac/vm"
)

func TestCompileRawBlockEmitsInstructionsAndLabels(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)

	src := `
		( seed the accumulator and loop down to zero )
		move.qword r0, 3
		:loop
		dec.qword r0
		bnz.qword r0, loop
		exit
	`
	if err := CompileRawBlock(a, "t.raw", src); err != nil {
		t.Fatalf("CompileRawBlock: %v", err)
	}
	if len(a.UnresolvedLabels()) != 0 {
		t.Fatalf("unresolved labels: %v", a.UnresolvedLabels())
	}
	if a.Emitter.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", a.Emitter.Len())
	}

	loop, ok := a.Symbol("loop")
	if !ok {
		t.Fatal("loop label not defined")
	}
	bnz := a.Emitter.At(2)
	if bnz.Opcode != vm.OpBnz || bnz.Operands[1].Int != loop.Address {
		t.Fatalf("bnz mismatch: %+v, loop=%d", bnz, loop.Address)
	}

	move := a.Emitter.At(0)
	if move.Opcode != vm.OpMove || move.Operands[1].Int != 3 {
		t.Fatalf("move mismatch: %+v", move)
	}
}

func TestCompileRawBlockRejectsUnknownMnemonic(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)
	err := CompileRawBlock(a, "t.raw", "frobnicate r0")
	if err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
	if !strings.Contains(err.Error(), "frobnicate") {
		t.Fatalf("error %q does not name the bad mnemonic", err.Error())
	}
}

func TestCompileRawBlockRejectsMissingOperands(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)
	err := CompileRawBlock(a, "t.raw", "add.qword r0, r1")
	if err == nil {
		t.Fatal("expected an error for a short operand list")
	}
}

func TestCompileRawBlockExitDefaultsToSizeNone(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)
	if err := CompileRawBlock(a, "t.raw", "exit"); err != nil {
		t.Fatalf("CompileRawBlock: %v", err)
	}
	if sz := a.Emitter.At(0).Size; sz != vm.SizeNone {
		t.Fatalf("exit size = %v, want SizeNone", sz)
	}
}
