package asm

import (
	"testing"

	"github.com/basecode-lang/alphac/vm"
)

func TestEmitterEncodeAssignsSequentialAddresses(t *testing.T) {
	e := NewEmitter()
	e.MoveConstantToRegister(vm.SizeQword, 0, 41, Meta{Line: 1})
	e.IncRegister(vm.SizeQword, 0, Meta{Line: 2})
	e.Exit(Meta{Line: 3})

	if e.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", e.Len())
	}

	heap := make([]byte, 256)
	addrs, err := e.Encode(heap, 0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(addrs) != 3 || addrs[0] != 0 {
		t.Fatalf("addrs = %v", addrs)
	}
	for i := 1; i < len(addrs); i++ {
		if addrs[i] <= addrs[i-1] {
			t.Fatalf("addrs not increasing: %v", addrs)
		}
	}

	inst, n, err := vm.Decode(heap, addrs[1])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if inst.Opcode != vm.OpInc || n != vm.EncodingSize(inst) {
		t.Fatalf("decoded inc mismatch: %+v", inst)
	}
}

func TestEmitterPatchOperandRewritesTarget(t *testing.T) {
	e := NewEmitter()
	idx := e.JumpDirect(0, Meta{})
	e.PatchOperand(idx, 0, 128)
	if got := e.At(idx).Operands[0].Int; got != 128 {
		t.Fatalf("patched operand = %d, want 128", got)
	}
}

func TestEmitterMetaTracksPerInstruction(t *testing.T) {
	e := NewEmitter()
	e.Nop(Meta{Line: 7, File: "x.a"})
	e.Nop(Meta{Line: 8, File: "x.a"})
	if e.MetaAt(0).Line != 7 || e.MetaAt(1).Line != 8 {
		t.Fatalf("meta out of order: %+v %+v", e.MetaAt(0), e.MetaAt(1))
	}
}
