package asm

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"github.com/basecode-lang/alphac/vm"
)

// Segment tags a region of the address space.
type Segment string

// Recognized segment tags.
const (
	SegmentCode     Segment = "code"
	SegmentData     Segment = "data"
	SegmentStack    Segment = "stack"
	SegmentConstant Segment = "constant"
)

// SymbolInfo records where a named symbol lives.
type SymbolInfo struct {
	Address uint64
	Segment Segment
}

// SegmentInfo records a segment's extent.
type SegmentInfo struct {
	Address uint64
	Size    uint64
}

type pendingUse struct {
	instIndex    int
	operandIndex int
}

// Assembler layers a location counter, symbol table, segment table,
// two-phase label resolution and string interning on top of an Emitter.
type Assembler struct {
	Emitter *Emitter

	locCtr  uint64
	segment Segment

	symbols  map[string]SymbolInfo
	segments map[Segment]*SegmentInfo
	pending  map[string][]pendingUse

	dataCtr uint64

	interned   map[string]int
	internOrd  []string
	nextIntern int
}

// NewAssembler builds an Assembler whose code location counter starts at
// term's program-start heap vector.
func NewAssembler(term *vm.Terp) *Assembler {
	start := term.ProgramStart()
	return &Assembler{
		Emitter: NewEmitter(),
		locCtr:  start,
		segment: SegmentCode,
		symbols: make(map[string]SymbolInfo),
		segments: map[Segment]*SegmentInfo{
			SegmentCode:     {Address: start},
			SegmentData:     {},
			SegmentStack:    {},
			SegmentConstant: {},
		},
		pending:  make(map[string][]pendingUse),
		interned: make(map[string]int),
	}
}

// SetDataOrigin sets the location counter used by DefineData*/DefineString,
// independent of the code counter.
func (a *Assembler) SetDataOrigin(addr uint64) {
	a.dataCtr = addr
	a.segments[SegmentData].Address = addr
}

// Address returns the current code location counter.
func (a *Assembler) Address() uint64 { return a.locCtr }

// Segment returns a copy of the named segment's recorded extent.
func (a *Assembler) Segment(tag Segment) SegmentInfo {
	if s, ok := a.segments[tag]; ok {
		return *s
	}
	return SegmentInfo{}
}

// Symbol looks up a resolved symbol by name.
func (a *Assembler) Symbol(name string) (SymbolInfo, bool) {
	s, ok := a.symbols[name]
	return s, ok
}

// emit records addr for the instruction about to be appended and advances
// the location counter by its encoded size.
func (a *Assembler) emit(build func() int) int {
	idx := build()
	inst := a.Emitter.insts[idx]
	a.locCtr += uint64(vm.EncodingSize(inst))
	if cs := a.segments[SegmentCode]; cs.Size < a.locCtr-cs.Address {
		cs.Size = a.locCtr - cs.Address
	}
	return idx
}

// DefineLabel binds name to the current location counter (the address the
// next emitted instruction will occupy) and patches any uses recorded
// before the label was known.
func (a *Assembler) DefineLabel(name string) error {
	if _, exists := a.symbols[name]; exists {
		return errors.Errorf("label %q already defined", name)
	}
	addr := a.locCtr
	a.symbols[name] = SymbolInfo{Address: addr, Segment: a.segment}
	for _, use := range a.pending[name] {
		a.Emitter.PatchOperand(use.instIndex, use.operandIndex, addr)
	}
	delete(a.pending, name)
	return nil
}

// ReferenceLabel records that operandIndex of the instruction at instIndex
// names label; if label is already defined the operand is patched
// immediately, otherwise the reference is reserved for DefineLabel to
// patch later (patch_branch_address, two-phase resolution).
func (a *Assembler) ReferenceLabel(instIndex, operandIndex int, label string) {
	if sym, ok := a.symbols[label]; ok {
		a.Emitter.PatchOperand(instIndex, operandIndex, sym.Address)
		return
	}
	a.pending[label] = append(a.pending[label], pendingUse{instIndex, operandIndex})
}

// UnresolvedLabels returns the names still pending a definition.
func (a *Assembler) UnresolvedLabels() []string {
	names := make([]string, 0, len(a.pending))
	for name := range a.pending {
		names = append(names, name)
	}
	return names
}

// Convenience wrappers mirroring the Emitter's branch/call builders but
// taking a label name instead of a raw address; the target operand is
// always the last one emit wrote.

func (a *Assembler) JumpSubroutine(label string, meta Meta) int {
	idx := a.emit(func() int { return a.Emitter.JumpSubroutineDirect(0, meta) })
	a.ReferenceLabel(idx, 0, label)
	return idx
}

func (a *Assembler) Jump(label string, meta Meta) int {
	idx := a.emit(func() int { return a.Emitter.JumpDirect(0, meta) })
	a.ReferenceLabel(idx, 0, label)
	return idx
}

func (a *Assembler) BranchIfEqual(label string, meta Meta) int {
	idx := a.emit(func() int { return a.Emitter.BranchIfEqual(0, meta) })
	a.ReferenceLabel(idx, 0, label)
	return idx
}

func (a *Assembler) BranchIfNotEqual(label string, meta Meta) int {
	idx := a.emit(func() int { return a.Emitter.BranchIfNotEqual(0, meta) })
	a.ReferenceLabel(idx, 0, label)
	return idx
}

// Emit wraps an arbitrary Emitter call (one of its non-label methods) so
// the location counter and code segment size stay in sync.
func (a *Assembler) Emit(build func(e *Emitter) int) int {
	return a.emit(func() int { return build(a.Emitter) })
}

// Finalize checks that every referenced label was defined, then encodes the
// buffered instructions into heap.
func (a *Assembler) Finalize(heap []byte) ([]int, error) {
	if len(a.pending) > 0 {
		return nil, errors.Errorf("undefined labels: %v", a.UnresolvedLabels())
	}
	start := a.segments[SegmentCode].Address
	return a.Emitter.Encode(heap, int(start))
}

// Data and string section support.

// DefineDataByte/Word/Dword/Qword append a little-endian raw value at the
// data location counter and return its address.
func (a *Assembler) DefineDataByte(heap []byte, v uint8) uint64 {
	addr := a.dataCtr
	heap[addr] = v
	a.dataCtr++
	a.growData()
	return addr
}

func (a *Assembler) DefineDataWord(heap []byte, v uint16) uint64 {
	addr := a.dataCtr
	binary.LittleEndian.PutUint16(heap[addr:], v)
	a.dataCtr += 2
	a.growData()
	return addr
}

func (a *Assembler) DefineDataDword(heap []byte, v uint32) uint64 {
	addr := a.dataCtr
	binary.LittleEndian.PutUint32(heap[addr:], v)
	a.dataCtr += 4
	a.growData()
	return addr
}

func (a *Assembler) DefineDataQword(heap []byte, v uint64) uint64 {
	addr := a.dataCtr
	binary.LittleEndian.PutUint64(heap[addr:], v)
	a.dataCtr += 8
	a.growData()
	return addr
}

// DefineString writes s's raw bytes with no terminator and returns the
// address the bytes start at.
func (a *Assembler) DefineString(heap []byte, s string) uint64 {
	addr := a.dataCtr
	copy(heap[addr:], s)
	a.dataCtr += uint64(len(s))
	a.growData()
	return addr
}

func (a *Assembler) growData() {
	ds := a.segments[SegmentData]
	if size := a.dataCtr - ds.Address; size > ds.Size {
		ds.Size = size
	}
}

// Intern returns a stable id for s, assigning a new one on first sight.
func (a *Assembler) Intern(s string) int {
	if id, ok := a.interned[s]; ok {
		return id
	}
	id := a.nextIntern
	a.nextIntern++
	a.interned[s] = id
	a.internOrd = append(a.internOrd, s)
	return id
}

// BaseLabelForID and DataLabelForID produce deterministic symbol names for
// an interned string's length-prefix label and raw-bytes label.
func BaseLabelForID(id int) string { return fmt.Sprintf("__str_base_%d", id) }
func DataLabelForID(id int) string { return fmt.Sprintf("__str_data_%d", id) }

// EmitInternedStrings writes every interned string, in insertion order, to
// the data segment: a qword length prefix labeled with its base label,
// followed by the raw bytes labeled with its data label.
func (a *Assembler) EmitInternedStrings(heap []byte) {
	for id, s := range a.internOrd {
		base := a.DefineDataQword(heap, uint64(len(s)))
		a.symbols[BaseLabelForID(id)] = SymbolInfo{Address: base, Segment: SegmentData}
		data := a.DefineString(heap, s)
		a.symbols[DataLabelForID(id)] = SymbolInfo{Address: data, Segment: SegmentData}
	}
}
