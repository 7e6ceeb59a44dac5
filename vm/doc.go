// Package vm implements the register machine ("terp") that executes encoded
// instructions produced by package asm: a flat heap, 64 integer and 64 float
// registers, an instruction cache keyed by address, and a non-throwing step
// loop that reports faults instead of panicking.
//
// Layout, opcode set, flag contract and the reserved low-heap regions
// (interrupt vector table, heap-vector table) are fixed by the instruction
// encoding; see instruction.go, opcodes.go and terp.go for the concrete
// byte-for-byte rules.
package vm
