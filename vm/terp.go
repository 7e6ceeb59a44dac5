package vm

import (
	"encoding/binary"

	"go.uber.org/zap"
)

// Reserved low-heap regions (see package doc).
const (
	ivtSlots        = 16
	ivtSize         = ivtSlots * 8
	heapVectorSlots = 8
	heapVectorSize  = heapVectorSlots * 8
	heapVectorBase  = ivtSize
	reservedSize    = ivtSize + heapVectorSize
)

// Heap-vector table slot indices. Only ProgramStart is named by the
// specification; the remaining slots are reserved for future vectors.
const (
	HeapVectorProgramStart = 0
)

const (
	defaultHeapSize = 1 << 16
)

// Flag register bits.
const (
	FlagZero uint64 = 1 << iota
	FlagNegative
	FlagCarry
	FlagOverflow
	FlagSubtract
)

// TrapFunc is a host callable registered under a small integer index and
// invoked by the trap opcode. It receives the terp so it can read/write
// registers and heap memory; this keeps traps testable without global state
// (see spec's "traps as message passing" note).
type TrapFunc func(t *Terp) error

// Terp is the register machine: a flat heap, 64 integer and 64 float
// registers, PC/SP/FR/SR, and an instruction cache.
type Terp struct {
	Heap []byte

	I  [64]uint64
	F  [64]float64
	PC uint64
	SP uint64
	FR uint64
	SR uint64

	exited bool
	cache  *icache
	traps  map[uint64]TrapFunc
	log    *zap.SugaredLogger
}

// Option configures a Terp at construction time.
type Option func(*Terp) error

// HeapSize sets the total heap size in bytes. Must be at least large enough
// to hold the reserved interrupt-vector and heap-vector tables.
func HeapSize(n int) Option {
	return func(t *Terp) error {
		if n < reservedSize {
			return fault("B010", "heap size %d is smaller than the reserved region (%d bytes)", n, reservedSize)
		}
		heap := make([]byte, n)
		copy(heap, t.Heap)
		t.Heap = heap
		return nil
	}
}

// ProgramStart sets the heap-vector slot the assembler and Reset read to
// locate the first instruction.
func ProgramStart(addr uint64) Option {
	return func(t *Terp) error {
		if addr%4 != 0 {
			return fault("B003", "program start %d is not 4-byte aligned", addr)
		}
		t.setHeapVector(HeapVectorProgramStart, addr)
		return nil
	}
}

// WithTrap registers a host callable under trap index n.
func WithTrap(n uint64, fn TrapFunc) Option {
	return func(t *Terp) error {
		t.traps[n] = fn
		return nil
	}
}

// WithLogger attaches a structured logger used for low-volume tracing of
// faults and run boundaries; a nil Terp logger (the default) disables it.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(t *Terp) error {
		t.log = log
		return nil
	}
}

// New builds a Terp, applies opts, and resets it to a runnable state.
func New(opts ...Option) (*Terp, error) {
	t := &Terp{
		Heap:  make([]byte, defaultHeapSize),
		cache: newICache(),
		traps: make(map[uint64]TrapFunc),
	}
	t.setHeapVector(HeapVectorProgramStart, reservedSize)
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	t.Reset()
	return t, nil
}

func (t *Terp) setHeapVector(slot int, v uint64) {
	binary.LittleEndian.PutUint64(t.Heap[heapVectorBase+slot*8:], v)
}

func (t *Terp) heapVector(slot int) uint64 {
	return binary.LittleEndian.Uint64(t.Heap[heapVectorBase+slot*8:])
}

// ProgramStart returns the address stored in the program-start heap vector.
func (t *Terp) ProgramStart() uint64 { return t.heapVector(HeapVectorProgramStart) }

// InterruptVector returns the address stored in interrupt-vector-table
// slot n (0..15).
func (t *Terp) InterruptVector(n int) uint64 {
	return binary.LittleEndian.Uint64(t.Heap[n*8:])
}

// SetInterruptVector installs addr into interrupt-vector-table slot n.
func (t *Terp) SetInterruptVector(n int, addr uint64) {
	binary.LittleEndian.PutUint64(t.Heap[n*8:], addr)
}

// Reset restores PC/SP/FR/SR, clears every register, drops the instruction
// cache in bulk, and clears the exited flag.
func (t *Terp) Reset() {
	t.PC = t.ProgramStart()
	t.SP = uint64(len(t.Heap))
	t.FR = 0
	t.SR = 0
	for i := range t.I {
		t.I[i] = 0
	}
	for i := range t.F {
		t.F[i] = 0
	}
	t.cache.invalidate()
	t.exited = false
}

// Exited reports whether the exit opcode has run since the last Reset.
func (t *Terp) Exited() bool { return t.exited }

func (t *Terp) setFlag(f uint64, v bool) {
	if v {
		t.FR |= f
	} else {
		t.FR &^= f
	}
}

func (t *Terp) flag(f uint64) bool { return t.FR&f != 0 }
