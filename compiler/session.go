// Package compiler wires the lexer/parser/evaluator front end to the
// assembler/VM back end behind one object, generalizing the teacher's own
// lang/retro glue layer (StringCodec/ShrinkSave/DumpVM sitting above
// vm.Instance) into a full pipeline: source text in, a running Terp out.
package compiler

import (
	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/asm"
	"github.com/basecode-lang/alphac/element"
	"github.com/basecode-lang/alphac/eval"
	"github.com/basecode-lang/alphac/lexer"
	"github.com/basecode-lang/alphac/parser"
	"github.com/basecode-lang/alphac/source"
	"github.com/basecode-lang/alphac/vm"

	"go.uber.org/zap"
)

// Session owns one source.Session's worth of diagnostics, the element
// graph/evaluator they feed, the assembler building up the program, and the
// Terp that will run it. Compile may be called once per source file before
// Emit lowers every compiled module and Run executes the result.
type Session struct {
	Sess    *source.Session
	Buffers map[string]*source.Buffer
	ASTs    map[string]*ast.Node
	Scopes  map[string]*element.Scope
	Eval    *eval.Evaluator
	Asm     *asm.Assembler
	Terp    *vm.Terp

	order   []string
	modules []*element.Scope

	regs    map[*element.Element]uint8
	nextReg uint8

	log *zap.SugaredLogger
}

type config struct {
	log    *zap.SugaredLogger
	vmOpts []vm.Option
}

// Option configures a Session at construction time.
type Option func(*config)

// WithLogger attaches a structured logger to both the Session and the Terp
// it builds.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *config) { c.log = log }
}

// WithVMOptions forwards extra options to the underlying vm.New call.
func WithVMOptions(opts ...vm.Option) Option {
	return func(c *config) { c.vmOpts = append(c.vmOpts, opts...) }
}

// New builds a Session: a fresh Terp (carrying opts.vmOpts and, if set, the
// logger), an Assembler over it, and an Evaluator reporting into a fresh
// source.Session.
func New(opts ...Option) (*Session, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	vmOpts := cfg.vmOpts
	if cfg.log != nil {
		vmOpts = append(vmOpts, vm.WithLogger(cfg.log))
	}
	term, err := vm.New(vmOpts...)
	if err != nil {
		return nil, err
	}
	srcSess := &source.Session{}
	return &Session{
		Sess:    srcSess,
		Buffers: map[string]*source.Buffer{},
		ASTs:    map[string]*ast.Node{},
		Scopes:  map[string]*element.Scope{},
		Eval:    eval.New(srcSess),
		Asm:     asm.NewAssembler(term),
		Terp:    term,
		regs:    map[*element.Element]uint8{},
		log:     cfg.log,
	}, nil
}

// Compile lexes, parses and evaluates one named source file, adding its
// module scope to the session. It returns the module's top-level scope and
// whether the session is still free of fatal diagnostics. Compile may be
// called repeatedly with distinct names to build a multi-file program.
func (s *Session) Compile(name string, src []byte) (*element.Scope, bool) {
	buf := source.New(name, src)
	s.Buffers[name] = buf
	s.order = append(s.order, name)

	lex := lexer.New(buf)
	builder := ast.NewBuilder()
	p := parser.New(lex, builder, s.Sess)
	mod := p.ParseModule()
	s.ASTs[name] = mod

	if s.log != nil {
		s.log.Debugw("compiled", "file", name, "nodes", builder.NodeCount())
	}
	if s.Sess.Failed() {
		return nil, false
	}

	scope := s.Eval.EvaluateModule(mod)
	s.Scopes[name] = scope
	s.modules = append(s.modules, scope)
	return scope, !s.Sess.Failed()
}

// Run resets the Terp's program counter to the heap's program-start vector
// and executes, up to maxSteps steps (0 for unbounded). Emit must have been
// called first to finalize code into the heap.
func (s *Session) Run(maxSteps int64) (int64, error) {
	s.Terp.Reset()
	return s.Terp.Run(maxSteps)
}

// Files returns the names passed to Compile, in call order.
func (s *Session) Files() []string {
	return s.order
}

// RegisterFor returns the integer register Emit bound to the top-level
// identifier named name, if Emit has run and the identifier had a supported
// initializer.
func (s *Session) RegisterFor(scope *element.Scope, name string) (uint8, bool) {
	decl, ok := scope.Lookup(name)
	if !ok {
		return 0, false
	}
	r, ok := s.regs[decl]
	return r, ok
}
