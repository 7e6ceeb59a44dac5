package asm

import (
	"testing"

	"github.com/basecode-lang/alphac/vm"
)

func newTestTerp(t *testing.T) *vm.Terp {
	t.Helper()
	term, err := vm.New()
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	return term
}

func TestAssemblerForwardLabelReferenceResolves(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)

	a.JumpSubroutine("routine", Meta{Line: 1})
	a.Emit(func(e *Emitter) int { return e.Exit(Meta{Line: 2}) })
	if err := a.DefineLabel("routine"); err != nil {
		t.Fatalf("DefineLabel: %v", err)
	}
	a.Emit(func(e *Emitter) int { return e.Return(Meta{Line: 3}) })

	if len(a.UnresolvedLabels()) != 0 {
		t.Fatalf("unresolved labels: %v", a.UnresolvedLabels())
	}

	routineAddr, ok := a.Symbol("routine")
	if !ok {
		t.Fatal("routine label not recorded")
	}
	jsr := a.Emitter.At(0)
	if jsr.Operands[0].Int != routineAddr.Address {
		t.Fatalf("jsr target = %d, want %d", jsr.Operands[0].Int, routineAddr.Address)
	}
}

func TestAssemblerBackwardLabelReferenceResolvesImmediately(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)

	if err := a.DefineLabel("top"); err != nil {
		t.Fatalf("DefineLabel: %v", err)
	}
	a.Emit(func(e *Emitter) int { return e.Nop(Meta{}) })
	a.Jump("top", Meta{})

	top, _ := a.Symbol("top")
	jmp := a.Emitter.At(1)
	if jmp.Operands[0].Int != top.Address {
		t.Fatalf("jmp target = %d, want %d", jmp.Operands[0].Int, top.Address)
	}
}

func TestAssemblerFinalizeFailsOnUndefinedLabel(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)
	a.Jump("nowhere", Meta{})

	heap := make([]byte, len(term.Heap))
	if _, err := a.Finalize(heap); err == nil {
		t.Fatal("Finalize: expected error for undefined label")
	}
}

func TestAssemblerFinalizeEncodesIntoHeap(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)
	a.Emit(func(e *Emitter) int { return e.MoveConstantToRegister(vm.SizeQword, 0, 7, Meta{}) })
	a.Emit(func(e *Emitter) int { return e.Exit(Meta{}) })

	heap := make([]byte, len(term.Heap))
	addrs, err := a.Finalize(heap)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	inst, _, err := vm.Decode(heap, addrs[0])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Opcode != vm.OpMove || inst.Operands[1].Int != 7 {
		t.Fatalf("decoded move mismatch: %+v", inst)
	}
}

func TestAssemblerInternedStringsGetDistinctLabels(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)
	a.SetDataOrigin(a.Segment(SegmentCode).Address + 4096)

	id1 := a.Intern("hello")
	id2 := a.Intern("world")
	if a.Intern("hello") != id1 {
		t.Fatal("re-interning the same string changed its id")
	}
	if id1 == id2 {
		t.Fatal("distinct strings got the same id")
	}

	heap := make([]byte, len(term.Heap))
	a.EmitInternedStrings(heap)

	base1, ok := a.Symbol(BaseLabelForID(id1))
	if !ok {
		t.Fatal("missing base label for id1")
	}
	data1, ok := a.Symbol(DataLabelForID(id1))
	if !ok {
		t.Fatal("missing data label for id1")
	}
	if string(heap[data1.Address:data1.Address+5]) != "hello" {
		t.Fatalf("interned bytes = %q", heap[data1.Address:data1.Address+5])
	}
	if base1.Address >= data1.Address {
		t.Fatalf("length prefix should precede string bytes: base=%d data=%d", base1.Address, data1.Address)
	}
}

func TestAssemblerDuplicateLabelFails(t *testing.T) {
	term := newTestTerp(t)
	a := NewAssembler(term)
	if err := a.DefineLabel("x"); err != nil {
		t.Fatalf("DefineLabel: %v", err)
	}
	if err := a.DefineLabel("x"); err == nil {
		t.Fatal("expected an error redefining a label")
	}
}
