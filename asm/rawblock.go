package asm

import (
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/basecode-lang/alphac/vm"
)

// arity is the fixed operand count the raw-block grammar accepts per
// mnemonic. jsr's optional second (offset) operand from §4.I is only
// reachable through the Emitter API directly, not from raw-block text,
// since the mini-assembler has no line-boundary tracking to tell a missing
// second operand from the start of the next instruction.
var arity = map[vm.Opcode]int{
	vm.OpNop: 0, vm.OpLoad: 3, vm.OpStore: 3, vm.OpCopy: 3, vm.OpFill: 3,
	vm.OpMove: 2, vm.OpPush: 1, vm.OpPop: 1, vm.OpDup: 0, vm.OpInc: 1,
	vm.OpDec: 1, vm.OpAdd: 3, vm.OpSub: 3, vm.OpMul: 3, vm.OpDiv: 3,
	vm.OpMod: 3, vm.OpNeg: 2, vm.OpShr: 3, vm.OpShl: 3, vm.OpRor: 3,
	vm.OpRol: 3, vm.OpAnd: 3, vm.OpOr: 3, vm.OpXor: 3, vm.OpNot: 2,
	vm.OpBis: 3, vm.OpBic: 3, vm.OpTest: 2, vm.OpCmp: 2, vm.OpBz: 2,
	vm.OpBnz: 2, vm.OpTbz: 3, vm.OpTbnz: 3, vm.OpBne: 1, vm.OpBeq: 1,
	vm.OpBg: 1, vm.OpBge: 1, vm.OpBl: 1, vm.OpBle: 1, vm.OpJsr: 1,
	vm.OpRts: 0, vm.OpJmp: 1, vm.OpSwi: 1, vm.OpTrap: 1, vm.OpMeta: 0,
	vm.OpExit: 0,
}

var sizeSuffix = map[string]vm.Size{
	"none":  vm.SizeNone,
	"byte":  vm.SizeByte,
	"word":  vm.SizeWord,
	"dword": vm.SizeDword,
	"qword": vm.SizeQword,
}

// noSizeOps take no size suffix and default to SizeNone when one is omitted,
// matching the Emitter's own builders for these opcodes.
var noSizeOps = map[vm.Opcode]bool{
	vm.OpNop: true, vm.OpDup: true, vm.OpRts: true, vm.OpMeta: true, vm.OpExit: true,
}

func isRawIdentRune(ch rune, i int) bool {
	return ch == '_' || ch == '.' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// parsedOperand is a raw-block operand before it is turned into a
// vm.Operand: either a register index, an immediate, or a forward/backward
// label reference to be resolved through the Assembler's label table.
type parsedOperand struct {
	label string
	op    vm.Operand
}

// RawBlockError collects up to maxRawBlockErrors raw-block parse errors.
type RawBlockError []string

func (e RawBlockError) Error() string { return strings.Join(e, "\n") }

const maxRawBlockErrors = 10

// CompileRawBlock parses a Forth-like "mnemonic[.size] operand, operand"
// instruction stream — the inline-assembly syntax used by raw blocks — and
// emits it through a. Labels are written as ":name" on their own and may be
// referenced (forward or backward) by name wherever an address operand is
// expected. Registers are written "r0".."r63", immediates as plain decimal
// or "0x"-prefixed literals, comments run from "(" to the next ")".
func CompileRawBlock(a *Assembler, file string, src string) error {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Filename = file
	s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanChars
	s.IsIdentRune = isRawIdentRune
	var errs RawBlockError
	fail := func(pos scanner.Position, msg string) {
		errs = append(errs, pos.String()+": "+msg)
	}

	for tok := s.Scan(); tok != scanner.EOF && len(errs) < maxRawBlockErrors; tok = s.Scan() {
		text := s.TokenText()
		pos := s.Position
		switch {
		case text == "(":
			for tok != scanner.EOF && text != ")" {
				tok = s.Scan()
				text = s.TokenText()
			}
			continue
		case text == ":":
			nameTok := s.Scan()
			if nameTok != scanner.Ident {
				fail(pos, "expected a label name after ':'")
				continue
			}
			if err := a.DefineLabel(s.TokenText()); err != nil {
				fail(pos, err.Error())
			}
			continue
		case text == ",":
			fail(pos, "unexpected ','")
			continue
		}
		name, sizeName, _ := strings.Cut(text, ".")
		op, ok := vm.OpcodeByName(name)
		if !ok {
			fail(pos, "unknown mnemonic "+strconv.Quote(text))
			continue
		}
		var size vm.Size
		if sizeName == "" {
			size = vm.SizeQword
			if noSizeOps[op] {
				size = vm.SizeNone
			}
		} else if sz, ok := sizeSuffix[sizeName]; ok {
			size = sz
		} else {
			fail(pos, "unknown operand size "+strconv.Quote(sizeName))
			size = vm.SizeQword
		}
		n := arity[op]
		operands := make([]parsedOperand, 0, n)
		for len(operands) < n && tok != scanner.EOF {
			tok = s.Scan()
			if tok == scanner.EOF {
				break
			}
			ttext := s.TokenText()
			if ttext == "," {
				continue
			}
			operands = append(operands, parseRawOperand(ttext))
		}
		if len(operands) < n {
			fail(pos, "not enough operands for "+name)
			continue
		}
		emitRawInstruction(a, op, size, operands, Meta{Line: pos.Line, Column: pos.Column, File: file})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func parseRawOperand(text string) parsedOperand {
	if len(text) > 1 && (text[0] == 'r' || text[0] == 'R') {
		if n, err := strconv.ParseUint(text[1:], 10, 8); err == nil {
			return parsedOperand{op: vm.Reg(uint8(n))}
		}
	}
	if n, err := strconv.ParseInt(text, 0, 64); err == nil {
		return parsedOperand{op: vm.Imm(uint64(n))}
	}
	return parsedOperand{label: text}
}

func emitRawInstruction(a *Assembler, op vm.Opcode, size vm.Size, operands []parsedOperand, meta Meta) {
	vmOperands := make([]vm.Operand, len(operands))
	for i, p := range operands {
		vmOperands[i] = p.op
	}
	idx := a.Emit(func(e *Emitter) int {
		return e.emit(op, size, meta, vmOperands...)
	})
	for i, p := range operands {
		if p.label != "" {
			a.ReferenceLabel(idx, i, p.label)
		}
	}
}
