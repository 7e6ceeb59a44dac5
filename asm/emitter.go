package asm

import "github.com/basecode-lang/alphac/vm"

// Meta is a debug record kept alongside an emitted instruction for later
// disassembly/diagnostics: source position, file and the symbol (if any)
// the instruction belongs to.
type Meta struct {
	Line   int
	Column int
	File   string
	Symbol string
}

// Emitter buffers an ordered instruction list plus a parallel list of Meta
// records keyed by instruction index.
type Emitter struct {
	insts []vm.Instruction
	meta  []Meta
}

// NewEmitter returns an empty Emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Len returns the number of buffered instructions.
func (e *Emitter) Len() int { return len(e.insts) }

// At returns the instruction at idx.
func (e *Emitter) At(idx int) vm.Instruction { return e.insts[idx] }

// MetaAt returns the debug record for the instruction at idx.
func (e *Emitter) MetaAt(idx int) Meta { return e.meta[idx] }

// PatchOperand overwrites operand operandIndex of the instruction at
// instIndex — used to resolve a forward label reference once its address
// is known.
func (e *Emitter) PatchOperand(instIndex, operandIndex int, addr uint64) {
	e.insts[instIndex].Operands[operandIndex].Int = addr
}

func (e *Emitter) emit(op vm.Opcode, size vm.Size, meta Meta, operands ...vm.Operand) int {
	idx := len(e.insts)
	e.insts = append(e.insts, vm.Instruction{Opcode: op, Size: size, Operands: operands})
	e.meta = append(e.meta, meta)
	return idx
}

// Encode walks the buffered instruction list, encoding each one into heap
// starting at startAddress, and returns the address each instruction index
// was placed at.
func (e *Emitter) Encode(heap []byte, startAddress int) ([]int, error) {
	addrs := make([]int, len(e.insts))
	addr := startAddress
	for idx, inst := range e.insts {
		addrs[idx] = addr
		n, err := vm.Encode(heap, addr, inst)
		if err != nil {
			return nil, err
		}
		addr += n
	}
	return addrs, nil
}

// Memory and register movement.

func (e *Emitter) LoadRegister(size vm.Size, dst, addr, offset uint8, meta Meta) int {
	return e.emit(vm.OpLoad, size, meta, vm.Reg(dst), vm.Reg(addr), vm.Reg(offset))
}

func (e *Emitter) LoadRegisterDirect(size vm.Size, dst uint8, address uint64, meta Meta) int {
	return e.emit(vm.OpLoad, size, meta, vm.Reg(dst), vm.Imm(address), vm.Imm(0))
}

func (e *Emitter) StoreRegister(size vm.Size, src, addr, offset uint8, meta Meta) int {
	return e.emit(vm.OpStore, size, meta, vm.Reg(src), vm.Reg(addr), vm.Reg(offset))
}

func (e *Emitter) StoreRegisterDirect(size vm.Size, src uint8, address uint64, meta Meta) int {
	return e.emit(vm.OpStore, size, meta, vm.Reg(src), vm.Imm(address), vm.Imm(0))
}

func (e *Emitter) CopyMemory(size vm.Size, srcAddr, dstAddr, length uint8, meta Meta) int {
	return e.emit(vm.OpCopy, size, meta, vm.Reg(srcAddr), vm.Reg(dstAddr), vm.Reg(length))
}

func (e *Emitter) FillMemory(size vm.Size, value, addr, length uint8, meta Meta) int {
	return e.emit(vm.OpFill, size, meta, vm.Reg(value), vm.Reg(addr), vm.Reg(length))
}

func (e *Emitter) MoveRegisterToRegister(size vm.Size, dst, src uint8, meta Meta) int {
	return e.emit(vm.OpMove, size, meta, vm.Reg(dst), vm.Reg(src))
}

func (e *Emitter) MoveConstantToRegister(size vm.Size, dst uint8, v uint64, meta Meta) int {
	return e.emit(vm.OpMove, size, meta, vm.Reg(dst), vm.Imm(v))
}

// Stack/control.

func (e *Emitter) PushRegister(size vm.Size, src uint8, meta Meta) int {
	return e.emit(vm.OpPush, size, meta, vm.Reg(src))
}

func (e *Emitter) PushConstant(size vm.Size, v uint64, meta Meta) int {
	return e.emit(vm.OpPush, size, meta, vm.Imm(v))
}

func (e *Emitter) PopRegister(size vm.Size, dst uint8, meta Meta) int {
	return e.emit(vm.OpPop, size, meta, vm.Reg(dst))
}

func (e *Emitter) Dup(meta Meta) int {
	return e.emit(vm.OpDup, vm.SizeNone, meta)
}

func (e *Emitter) JumpSubroutineDirect(addr uint64, meta Meta) int {
	return e.emit(vm.OpJsr, vm.SizeQword, meta, vm.Imm(addr))
}

func (e *Emitter) JumpSubroutineIndirect(reg uint8, offset int64, meta Meta) int {
	off := vm.Imm(uint64(offset))
	if offset < 0 {
		off = vm.Operand{Flags: vm.FlagNegative, Int: uint64(-offset)}
	}
	return e.emit(vm.OpJsr, vm.SizeQword, meta, vm.Reg(reg), off)
}

func (e *Emitter) Return(meta Meta) int {
	return e.emit(vm.OpRts, vm.SizeNone, meta)
}

func (e *Emitter) JumpDirect(addr uint64, meta Meta) int {
	return e.emit(vm.OpJmp, vm.SizeQword, meta, vm.Imm(addr))
}

func (e *Emitter) SoftwareInterrupt(n uint64, meta Meta) int {
	return e.emit(vm.OpSwi, vm.SizeQword, meta, vm.Imm(n))
}

func (e *Emitter) Trap(n uint64, meta Meta) int {
	return e.emit(vm.OpTrap, vm.SizeQword, meta, vm.Imm(n))
}

func (e *Emitter) MetaMarker(meta Meta) int {
	return e.emit(vm.OpMeta, vm.SizeNone, meta)
}

func (e *Emitter) Exit(meta Meta) int {
	return e.emit(vm.OpExit, vm.SizeNone, meta)
}

// Branches: fixed target-address form. Conditional branches take no
// operands other than the target; the flags they test are set by a
// preceding cmp/test/arithmetic instruction.

func (e *Emitter) BranchIfEqual(addr uint64, meta Meta) int {
	return e.emit(vm.OpBeq, vm.SizeQword, meta, vm.Imm(addr))
}

func (e *Emitter) BranchIfNotEqual(addr uint64, meta Meta) int {
	return e.emit(vm.OpBne, vm.SizeQword, meta, vm.Imm(addr))
}

func (e *Emitter) BranchIfGreater(addr uint64, meta Meta) int {
	return e.emit(vm.OpBg, vm.SizeQword, meta, vm.Imm(addr))
}

func (e *Emitter) BranchIfGreaterOrEqual(addr uint64, meta Meta) int {
	return e.emit(vm.OpBge, vm.SizeQword, meta, vm.Imm(addr))
}

func (e *Emitter) BranchIfLess(addr uint64, meta Meta) int {
	return e.emit(vm.OpBl, vm.SizeQword, meta, vm.Imm(addr))
}

func (e *Emitter) BranchIfLessOrEqual(addr uint64, meta Meta) int {
	return e.emit(vm.OpBle, vm.SizeQword, meta, vm.Imm(addr))
}

func (e *Emitter) BranchIfZero(size vm.Size, value uint8, addr uint64, meta Meta) int {
	return e.emit(vm.OpBz, size, meta, vm.Reg(value), vm.Imm(addr))
}

func (e *Emitter) BranchIfNotZero(size vm.Size, value uint8, addr uint64, meta Meta) int {
	return e.emit(vm.OpBnz, size, meta, vm.Reg(value), vm.Imm(addr))
}

func (e *Emitter) BranchIfTestBitZero(size vm.Size, value uint8, bit uint8, addr uint64, meta Meta) int {
	return e.emit(vm.OpTbz, size, meta, vm.Reg(value), vm.Imm(uint64(bit)), vm.Imm(addr))
}

func (e *Emitter) BranchIfTestBitNotZero(size vm.Size, value uint8, bit uint8, addr uint64, meta Meta) int {
	return e.emit(vm.OpTbnz, size, meta, vm.Reg(value), vm.Imm(uint64(bit)), vm.Imm(addr))
}

// Arithmetic/bitwise: 3-operand (dst, a, b) register form, per the
// encoding's "dst = a op b" convention.

func (e *Emitter) AddIntRegisterToRegister(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpAdd, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) SubIntRegisterToRegister(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpSub, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) MulIntRegisterToRegister(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpMul, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) DivIntRegisterToRegister(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpDiv, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) ModIntRegisterToRegister(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpMod, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) NegRegister(size vm.Size, dst, src uint8, meta Meta) int {
	return e.emit(vm.OpNeg, size, meta, vm.Reg(dst), vm.Reg(src))
}

func (e *Emitter) IncRegister(size vm.Size, dst uint8, meta Meta) int {
	return e.emit(vm.OpInc, size, meta, vm.Reg(dst))
}

func (e *Emitter) DecRegister(size vm.Size, dst uint8, meta Meta) int {
	return e.emit(vm.OpDec, size, meta, vm.Reg(dst))
}

func (e *Emitter) AndRegisterToRegister(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpAnd, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) OrRegisterToRegister(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpOr, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) XorRegisterToRegister(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpXor, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) NotRegister(size vm.Size, dst, src uint8, meta Meta) int {
	return e.emit(vm.OpNot, size, meta, vm.Reg(dst), vm.Reg(src))
}

func (e *Emitter) BitSet(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpBis, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) BitClear(size vm.Size, dst, a, b uint8, meta Meta) int {
	return e.emit(vm.OpBic, size, meta, vm.Reg(dst), vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) ShiftLeft(size vm.Size, dst, src, count uint8, meta Meta) int {
	return e.emit(vm.OpShl, size, meta, vm.Reg(dst), vm.Reg(src), vm.Reg(count))
}

func (e *Emitter) ShiftRight(size vm.Size, dst, src, count uint8, meta Meta) int {
	return e.emit(vm.OpShr, size, meta, vm.Reg(dst), vm.Reg(src), vm.Reg(count))
}

func (e *Emitter) RotateLeft(size vm.Size, dst, src, count uint8, meta Meta) int {
	return e.emit(vm.OpRol, size, meta, vm.Reg(dst), vm.Reg(src), vm.Reg(count))
}

func (e *Emitter) RotateRight(size vm.Size, dst, src, count uint8, meta Meta) int {
	return e.emit(vm.OpRor, size, meta, vm.Reg(dst), vm.Reg(src), vm.Reg(count))
}

func (e *Emitter) Test(size vm.Size, a, b uint8, meta Meta) int {
	return e.emit(vm.OpTest, size, meta, vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) Compare(size vm.Size, a, b uint8, meta Meta) int {
	return e.emit(vm.OpCmp, size, meta, vm.Reg(a), vm.Reg(b))
}

func (e *Emitter) Nop(meta Meta) int {
	return e.emit(vm.OpNop, vm.SizeNone, meta)
}
