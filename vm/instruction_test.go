package vm

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	heap := make([]byte, 64)
	inst := Instruction{
		Opcode: OpAdd,
		Size:   SizeDword,
		Operands: []Operand{
			Reg(1),
			Reg(2),
			Imm(7),
		},
	}
	n, err := Encode(heap, 0, inst)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if n%4 != 0 {
		t.Fatalf("encoded size %d is not 4-byte aligned", n)
	}
	got, size, err := Decode(heap, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if size != n {
		t.Fatalf("decode size %d != encode size %d", size, n)
	}
	if got.Opcode != OpAdd || got.Size != SizeDword || len(got.Operands) != 3 {
		t.Fatalf("got %+v", got)
	}
	if !got.Operands[0].IsRegister() || got.Operands[0].Reg != 1 {
		t.Fatalf("operand 0: %+v", got.Operands[0])
	}
	if got.Operands[2].IsRegister() || got.Operands[2].Int != 7 {
		t.Fatalf("operand 2: %+v", got.Operands[2])
	}
}

func TestEncodeRejectsMisalignedAddress(t *testing.T) {
	heap := make([]byte, 64)
	if _, err := Encode(heap, 2, Instruction{Opcode: OpNop}); err == nil {
		t.Fatalf("expected alignment error")
	} else if f, ok := err.(*Fault); !ok || f.Code != "B003" {
		t.Fatalf("expected B003, got %+v", err)
	}
}

func TestDecodeRejectsMisalignedAddress(t *testing.T) {
	heap := make([]byte, 64)
	if _, _, err := Decode(heap, 3); err == nil {
		t.Fatalf("expected alignment error")
	} else if f, ok := err.(*Fault); !ok || f.Code != "B003" {
		t.Fatalf("expected B003, got %+v", err)
	}
}

func TestEncodeFloatRejectsInvalidSize(t *testing.T) {
	heap := make([]byte, 64)
	inst := Instruction{Opcode: OpAdd, Size: SizeByte, Operands: []Operand{ImmFloat(1.5)}}
	if _, err := Encode(heap, 0, inst); err == nil {
		t.Fatalf("expected a rejection of a float constant at byte size")
	}
}

func TestEncodeFloatQwordRoundTrip(t *testing.T) {
	heap := make([]byte, 64)
	inst := Instruction{Opcode: OpAdd, Size: SizeQword, Operands: []Operand{ImmFloat(3.25)}}
	if _, err := Encode(heap, 0, inst); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, _, err := Decode(heap, 0)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Operands[0].Float != 3.25 {
		t.Fatalf("got %v, want 3.25", got.Operands[0].Float)
	}
}

func TestEncodingSizeMatchesEncode(t *testing.T) {
	inst := Instruction{Opcode: OpJsr, Size: SizeQword, Operands: []Operand{Imm(128), Imm(4)}}
	heap := make([]byte, 64)
	n, err := Encode(heap, 0, inst)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if EncodingSize(inst) != n {
		t.Fatalf("EncodingSize %d != actual encode size %d", EncodingSize(inst), n)
	}
}

func TestDecodeRejectsOversizedHeader(t *testing.T) {
	heap := make([]byte, 16)
	heap[0] = 200 // claims a size far larger than the heap
	if _, _, err := Decode(heap, 0); err == nil {
		t.Fatalf("expected an out-of-range decode failure")
	}
}
