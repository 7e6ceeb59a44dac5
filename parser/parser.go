package parser

import (
	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/lexer"
	"github.com/basecode-lang/alphac/source"
	"github.com/basecode-lang/alphac/token"
)

// prefixParselet parses an expression that begins with tok. start is the
// token already consumed by the caller.
type prefixParselet func(p *Parser, start token.Token) *ast.Node

// infixParselet continues parsing an expression given the already-parsed
// left-hand side and the infix token already consumed.
type infixParselet func(p *Parser, left *ast.Node, op token.Token) *ast.Node

// Parser turns a token stream into an AST, driving an ast.Builder. It never
// throws: every parse function returns (possibly nil) and records a
// diagnostic on the shared session instead (spec.md §4.D's "failure
// semantics").
type Parser struct {
	lex     *lexer.Lexer
	builder *ast.Builder
	sess    *source.Session

	cur  token.Token
	peek token.Token
	have bool // peek has been filled

	prefix map[token.Kind]prefixParselet
	infix  map[token.Kind]infixParselet
}

// New builds a Parser reading from lex, allocating nodes through builder
// and reporting diagnostics against sess.
func New(lex *lexer.Lexer, builder *ast.Builder, sess *source.Session) *Parser {
	p := &Parser{lex: lex, builder: builder, sess: sess}
	p.prefix = defaultPrefixParselets()
	p.infix = defaultInfixParselets()
	p.advance()
	return p
}

func (p *Parser) advance() token.Token {
	prev := p.cur
	if p.have {
		p.cur = p.peek
		p.have = false
	} else {
		p.cur = p.nextRaw()
	}
	return prev
}

func (p *Parser) nextRaw() token.Token {
	if !p.lex.HasNext() {
		return token.Token{Kind: token.EOF}
	}
	tok, ok := p.lex.Next()
	if !ok {
		p.errorAt("P/B021", "unrecognized character", tok.Location)
		return token.Token{Kind: token.EOF, Location: tok.Location}
	}
	return tok
}

func (p *Parser) peekToken() token.Token {
	if !p.have {
		p.peek = p.nextRaw()
		p.have = true
	}
	return p.peek
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.cur.Kind == k {
		return p.advance(), true
	}
	return token.Token{}, false
}

func (p *Parser) expect(k token.Kind, code, what string) (token.Token, bool) {
	if tok, ok := p.accept(k); ok {
		return tok, true
	}
	p.errorAt(code, "expected "+what+", got "+p.cur.String(), p.cur.Location)
	return token.Token{}, false
}

func (p *Parser) errorAt(code, msg string, loc source.Location) {
	p.sess.Error(code, msg, loc, true)
}

// ParseModule parses an entire source file as a module block: a sequence of
// statements read until end-of-file.
func (p *Parser) ParseModule() *ast.Node {
	mod := p.builder.BeginScope(ast.KindModule, p.cur.Location, "")
	p.parseStatements(mod, token.EOF)
	p.builder.EndScope()
	return mod
}

// parseStatements reads statements into scope until the next token is end
// or EOF, handling comments, attributes, and labels along the way (spec.md
// §4.D "Scope parsing").
func (p *Parser) parseStatements(scope *ast.Node, end token.Kind) {
	for !p.at(end) && !p.at(token.EOF) {
		switch {
		case p.at(token.LineComment), p.at(token.BlockComment):
			tok := p.advance()
			scope.AddChild(p.builder.NewComment(tok.Location, tok.Value, tok.Kind == token.BlockComment))
			continue
		case p.at(token.Hash):
			attr := p.parseAttribute()
			if attr != nil {
				p.builder.PushPendingAttribute(attr)
			}
			continue
		}

		stmt := p.parseStatement()
		if stmt == nil {
			// Unwind: first null node from a parselet terminates the loop
			// (spec.md §4.D "Failure semantics").
			return
		}
		scope.AddChild(stmt)
	}
}

// parseStatement reads an optional run of leading labels, exactly one
// expression, and a terminating semicolon.
func (p *Parser) parseStatement() *ast.Node {
	var labels []*ast.Node
	for p.at(token.Label) {
		tok := p.advance()
		labels = append(labels, p.builder.NewLabel(tok.Location, tok.Value))
	}

	expr := p.parseExpression(precNone)
	if expr == nil {
		return nil
	}
	loc := expr.Location
	if len(labels) > 0 {
		loc = labels[0].Location
	}
	p.expect(token.Semicolon, "P/B030", "';'")
	return p.builder.NewStatement(loc, labels, expr)
}

func (p *Parser) parseAttribute() *ast.Node {
	hash := p.advance() // '#'
	name, ok := p.expect(token.Ident, "P/B040", "attribute name")
	if !ok {
		return nil
	}
	var value *ast.Node
	if _, ok := p.accept(token.LParen); ok {
		value = p.parseExpression(precNone)
		p.expect(token.RParen, "P/B041", "')'")
	}
	return p.builder.NewAttribute(hash.Location, name.Value, value)
}

// parseExpression is the Pratt core loop (spec.md §4.D).
func (p *Parser) parseExpression(minPrec precedence) *ast.Node {
	startTok := p.advance()
	prefix, ok := p.prefix[startTok.Kind]
	if !ok {
		p.errorAt("P/B021", "unexpected token "+startTok.String()+" in expression position", startTok.Location)
		return nil
	}
	left := prefix(p, startTok)
	if left == nil {
		return nil
	}

	for minPrec < precedenceOf(p.cur.Kind) {
		opTok := p.advance()
		infix, ok := p.infix[opTok.Kind]
		if !ok {
			p.errorAt("P/B022", "unexpected infix token "+opTok.String(), opTok.Location)
			return nil
		}
		left = infix(p, left, opTok)
		if left == nil {
			return nil
		}
	}
	return left
}

// parseBlock parses `{ statements... }` as a nested scope.
func (p *Parser) parseBlock() *ast.Node {
	open, ok := p.expect(token.LBrace, "P/B050", "'{'")
	if !ok {
		return nil
	}
	block := p.builder.BeginScope(ast.KindBlock, open.Location, "")
	p.parseStatements(block, token.RBrace)
	p.expect(token.RBrace, "P/B051", "'}'")
	p.builder.EndScope()
	return block
}
