// Package asm assembles encoded terp instructions: an Emitter buffers an
// ordered instruction list with per-instruction debug Meta records, and an
// Assembler layers a location counter, symbol/segment tables, two-phase
// label resolution and string interning on top of it, then calls
// vm.Encode to lay the result out in a terp's heap.
//
// CompileRawBlock compiles a small Forth-like mnemonic syntax (opcode.size
// operands) used for inline-assembly blocks, in the spirit of the
// teacher's own label/const text/scanner mini-assembler.
package asm
