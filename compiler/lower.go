package compiler

import (
	"strconv"

	"github.com/basecode-lang/alphac/asm"
	"github.com/basecode-lang/alphac/element"
	"github.com/basecode-lang/alphac/vm"
)

// maxLoweredRegisters bounds the trivial lowering pass to the integer
// register file's size; a program needing more distinct live bindings than
// this falls outside what "trivial lowering" (spec.md scenario S1) covers.
const maxLoweredRegisters = 64

// Emit lowers every compiled module's top-level statements into integer
// register code and appends a terminating exit, then assembles the result
// into the Terp's heap. This is the "trivial lowering" spec.md's scenario
// S1 names: plain integer arithmetic bound to identifiers, plus raw-block
// inline assembly emitted verbatim through asm.CompileRawBlock. Statements
// whose shape it doesn't recognize (control flow, composite types,
// procedures) are left unlowered — full code generation from the element
// graph is out of this pass's scope.
func (s *Session) Emit() ([]int, error) {
	for i, scope := range s.modules {
		name := s.order[i]
		if err := s.lowerScope(name, scope); err != nil {
			return nil, err
		}
	}
	s.Asm.Emit(func(e *asm.Emitter) int { return e.Exit(asm.Meta{}) })
	return s.Asm.Finalize(s.Terp.Heap)
}

func (s *Session) lowerScope(file string, scope *element.Scope) error {
	for _, stmt := range scope.Statements {
		expr := stmt.Left
		if expr == nil {
			continue
		}
		switch expr.Kind {
		case element.KindIdentifier:
			if err := s.lowerIdentifierDecl(expr); err != nil {
				return err
			}
		case element.KindRawBlock:
			if err := asm.CompileRawBlock(s.Asm, file, expr.RawText); err != nil {
				return err
			}
		default:
			if s.log != nil {
				s.log.Debugw("emit: statement not lowered", "file", file, "kind", expr.Kind)
			}
		}
	}
	return nil
}

func (s *Session) lowerIdentifierDecl(ident *element.Element) error {
	dst, ok := s.allocReg(ident)
	if !ok {
		return nil
	}
	if ident.Initializer == nil {
		return nil
	}
	return s.lowerExpr(ident.Initializer, dst)
}

func (s *Session) allocReg(el *element.Element) (uint8, bool) {
	if r, ok := s.regs[el]; ok {
		return r, true
	}
	if int(s.nextReg) >= maxLoweredRegisters {
		if s.log != nil {
			s.log.Warnw("emit: out of integer registers for trivial lowering", "symbol", el.Symbol.FullyQualified())
		}
		return 0, false
	}
	r := s.nextReg
	s.nextReg++
	s.regs[el] = r
	return r, true
}

// lowerExpr emits code that leaves expr's value in register dst. It
// supports integer literals, references to already-lowered identifiers,
// and +/-/*// binary arithmetic over those — the shapes spec.md scenario S1
// exercises end to end.
func (s *Session) lowerExpr(expr *element.Element, dst uint8) error {
	switch expr.Kind {
	case element.KindLiteralInteger:
		v, err := strconv.ParseInt(expr.LiteralValue, 10, 64)
		if err != nil {
			return err
		}
		s.Asm.Emit(func(e *asm.Emitter) int {
			return e.MoveConstantToRegister(vm.SizeQword, dst, uint64(v), asm.Meta{Line: expr.Location.Line, File: expr.Location.Name})
		})
		return nil

	case element.KindIdentifierReference:
		target := expr.Target
		if !expr.Resolved || target == nil {
			if s.log != nil {
				s.log.Warnw("emit: unresolved reference not lowered", "symbol", expr.Symbol.FullyQualified())
			}
			return nil
		}
		src, ok := s.regs[target]
		if !ok {
			if s.log != nil {
				s.log.Warnw("emit: reference to an identifier with no lowered register", "symbol", expr.Symbol.FullyQualified())
			}
			return nil
		}
		s.Asm.Emit(func(e *asm.Emitter) int {
			return e.MoveRegisterToRegister(vm.SizeQword, dst, src, asm.Meta{})
		})
		return nil

	case element.KindUnaryOperator:
		if expr.Operator != "-" {
			return nil
		}
		tmp, ok := s.allocTemp()
		if !ok {
			return nil
		}
		if err := s.lowerExpr(expr.Left, tmp); err != nil {
			return err
		}
		s.Asm.Emit(func(e *asm.Emitter) int { return e.NegRegister(vm.SizeQword, dst, tmp, asm.Meta{}) })
		return nil

	case element.KindBinaryOperator:
		a, ok := s.allocTemp()
		if !ok {
			return nil
		}
		if err := s.lowerExpr(expr.Left, a); err != nil {
			return err
		}
		b, ok := s.allocTemp()
		if !ok {
			return nil
		}
		if err := s.lowerExpr(expr.Right, b); err != nil {
			return err
		}
		s.Asm.Emit(func(e *asm.Emitter) int {
			switch expr.Operator {
			case "+":
				return e.AddIntRegisterToRegister(vm.SizeQword, dst, a, b, asm.Meta{})
			case "-":
				return e.SubIntRegisterToRegister(vm.SizeQword, dst, a, b, asm.Meta{})
			case "*":
				return e.MulIntRegisterToRegister(vm.SizeQword, dst, a, b, asm.Meta{})
			case "/":
				return e.DivIntRegisterToRegister(vm.SizeQword, dst, a, b, asm.Meta{})
			case "%":
				return e.ModIntRegisterToRegister(vm.SizeQword, dst, a, b, asm.Meta{})
			default:
				return e.Nop(asm.Meta{})
			}
		})
		return nil

	default:
		if s.log != nil {
			s.log.Debugw("emit: expression kind not lowered", "kind", expr.Kind)
		}
		return nil
	}
}

// allocTemp reserves a scratch register above every identifier-bound
// register seen so far; temporaries are never reused across expressions
// since the trivial lowering pass makes no attempt at register pressure
// reduction.
func (s *Session) allocTemp() (uint8, bool) {
	if int(s.nextReg) >= maxLoweredRegisters {
		if s.log != nil {
			s.log.Warnw("emit: out of integer registers for a temporary")
		}
		return 0, false
	}
	r := s.nextReg
	s.nextReg++
	return r, true
}
