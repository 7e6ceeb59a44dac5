package parser

import (
	"strings"

	"github.com/basecode-lang/alphac/ast"
	"github.com/basecode-lang/alphac/token"
)

func defaultPrefixParselets() map[token.Kind]prefixParselet {
	m := map[token.Kind]prefixParselet{
		token.Ident:         parseIdentifier,
		token.NumberLiteral: parseNumber,
		token.StringLiteral: parseString,
		token.CharLiteral:   parseChar,
		token.KwNull:        parseNullLiteral,
		token.KwTrue:        parseBoolLiteral,
		token.KwFalse:       parseBoolLiteral,

		token.Minus:      parseUnary,
		token.LogicalNot: parseUnary,
		token.Tilde:      parseUnary,
		token.Ampersand:  parseAddressOf,
		token.Star:       parsePointerDereference,

		token.LParen: parseGrouping,

		token.KwIf:         parseIf,
		token.KwWhile:      parseWhile,
		token.KwFor:        parseForIn,
		token.KwReturn:     parseReturn,
		token.KwImport:     parseImport,
		token.KwProc:       parseProc,
		token.KwStruct:     parseComposite,
		token.KwUnion:      parseComposite,
		token.KwEnum:       parseComposite,
		token.KwNS:         parseNamespace,
		token.KwDefer:      parseDefer,
		token.KwWith:       parseWith,
		token.KwBreak:      parseBreakContinue,
		token.KwContinue:   parseBreakContinue,
		token.KwCast:       parseCastLike,
		token.KwTransmute:  parseCastLike,
		token.KwSizeOf:     parseIntrinsicCall,
		token.KwAlignOf:    parseIntrinsicCall,
		token.KwAddressOf:  parseIntrinsicCall,
		token.KwTypeOf:     parseIntrinsicCall,
		token.KwAlloc:      parseIntrinsicCall,
		token.KwFree:       parseIntrinsicCall,
		token.KwModule:     parseModuleRef,
		token.DotDotDot:    parseSpread,
		token.BlockComment: parseLeadingBlockComment,
		token.LBrace:       parseBraceBlockExpression,
	}
	return m
}

func defaultInfixParselets() map[token.Kind]infixParselet {
	m := map[token.Kind]infixParselet{
		token.Plus: binary, token.Minus: binary, token.Star: binary,
		token.Slash: binary, token.Percent: binary,
		token.LogicalAnd: binary, token.LogicalOr: binary,
		token.Equal: binary, token.NotEqual: binary, token.Less: binary,
		token.LessEqual: binary, token.Greater: binary, token.GreaterEqual: binary,
		token.Ampersand: binary, token.Pipe: binary, token.Caret: binary,
		token.Shl: binary, token.Shr: binary, token.Caret2: binary,
		token.Comma: parseCommaPair,

		token.Assign:       parseAssignment,
		token.ColonEquals:  parseAssignment,
		token.ColonColonEq: parseAssignment,

		token.Dot:      parseMemberAccess,
		token.LBracket: parseSubscript,
		token.LParen:   parseCall,
	}
	return m
}

// --- literals & identifiers ---------------------------------------------

func parseIdentifier(p *Parser, start token.Token) *ast.Node {
	return p.builder.NewSymbol(start.Location, start.Value)
}

func parseNumber(p *Parser, start token.Token) *ast.Node {
	kind := ast.KindLiteralInteger
	if start.Number == token.FloatLiteral {
		kind = ast.KindLiteralFloat
	}
	return p.builder.NewLiteral(kind, start.Location, start.Value)
}

func parseString(p *Parser, start token.Token) *ast.Node {
	return p.builder.NewLiteral(ast.KindLiteralString, start.Location, start.Value)
}

func parseChar(p *Parser, start token.Token) *ast.Node {
	return p.builder.NewLiteral(ast.KindLiteralChar, start.Location, start.Value)
}

func parseNullLiteral(p *Parser, start token.Token) *ast.Node {
	return p.builder.NewLiteral(ast.KindLiteralNull, start.Location, start.Value)
}

func parseBoolLiteral(p *Parser, start token.Token) *ast.Node {
	return p.builder.NewLiteral(ast.KindLiteralBool, start.Location, start.Value)
}

// --- unary / pointer / grouping ------------------------------------------

func parseUnary(p *Parser, start token.Token) *ast.Node {
	operand := p.parseExpression(precPrefix)
	if operand == nil {
		return nil
	}
	return p.builder.NewUnary(start.Location, start.String(), operand)
}

func parseAddressOf(p *Parser, start token.Token) *ast.Node {
	operand := p.parseExpression(precPrefix)
	if operand == nil {
		return nil
	}
	n := p.builder.NewUnary(start.Location, "&", operand)
	n.Kind = ast.KindAddressOf
	return n
}

func parsePointerDereference(p *Parser, start token.Token) *ast.Node {
	operand := p.parseExpression(precPointerDeref)
	if operand == nil {
		return nil
	}
	n := p.builder.NewUnary(start.Location, "*", operand)
	n.Flags |= ast.FlagPointer
	return n
}

func parseGrouping(p *Parser, start token.Token) *ast.Node {
	inner := p.parseExpression(precNone)
	p.expect(token.RParen, "P/B060", "')'")
	return inner
}

func parseSpread(p *Parser, start token.Token) *ast.Node {
	operand := p.parseExpression(precPrefix)
	if operand == nil {
		return nil
	}
	return p.builder.NewSpread(start.Location, operand)
}

func parseLeadingBlockComment(p *Parser, start token.Token) *ast.Node {
	// A block comment used in expression position (spec.md's
	// block_comment precedence level) attaches to the enclosing scope
	// rather than standing in for a value; re-enter parseExpression for
	// whatever follows it.
	if scope := p.builder.CurrentScope(); scope != nil {
		scope.AddChild(p.builder.NewComment(start.Location, start.Value, true))
	}
	return p.parseExpression(precNone)
}

// parseBraceBlockExpression allows a bare `{ ... }` to appear in expression
// position, e.g. as a proc/if/while body parsed through the ordinary
// expression entry point.
func parseBraceBlockExpression(p *Parser, start token.Token) *ast.Node {
	block := p.builder.BeginScope(ast.KindBlock, start.Location, "")
	p.parseStatements(block, token.RBrace)
	p.expect(token.RBrace, "P/B051", "'}'")
	p.builder.EndScope()
	return block
}

// --- binary / assignment / comma -----------------------------------------

func binary(p *Parser, left *ast.Node, op token.Token) *ast.Node {
	prec := precedenceOf(op.Kind)
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return p.builder.NewBinary(op.Location, op.String(), left, right)
}

// parseAssignment is right-associative: the right-hand side is parsed at
// precedence-1 so a chain `a := b := 1` nests as `a := (b := 1)` (spec.md
// testable property 4).
func parseAssignment(p *Parser, left *ast.Node, op token.Token) *ast.Node {
	right := p.parseExpression(precAssignment - 1)
	if right == nil {
		return nil
	}
	if op.Kind == token.ColonColonEq {
		return p.builder.NewConstantAssignment(op.Location, left, right)
	}
	return p.builder.NewAssignment(op.Location, left, right)
}

// parseCommaPair builds a right-nested pair so FlattenComma can recover an
// ordered list in source order (spec.md §4.D: "Comma folds into nested
// pairs that §4.D later flattens into ordered argument/return lists.").
func parseCommaPair(p *Parser, left *ast.Node, op token.Token) *ast.Node {
	right := p.parseExpression(precComma - 1)
	if right == nil {
		return nil
	}
	pair := p.builder.NewBinary(op.Location, ",", left, right)
	pair.Kind = ast.KindExpression
	return pair
}

// FlattenComma walks a right-nested comma pair tree built by
// parseCommaPair and returns its operands in source order. A non-comma node
// is returned as its own single-element list.
func FlattenComma(n *ast.Node) []*ast.Node {
	if n == nil {
		return nil
	}
	if n.Kind != ast.KindExpression || n.Token != "," {
		return []*ast.Node{n}
	}
	return append([]*ast.Node{n.Left}, FlattenComma(n.Right)...)
}

// --- member access / subscript / call ------------------------------------

func parseMemberAccess(p *Parser, left *ast.Node, op token.Token) *ast.Node {
	name, ok := p.expect(token.Ident, "P/B070", "identifier after '.'")
	if !ok {
		return nil
	}
	n := p.builder.NewBinary(op.Location, ".", left, p.builder.NewSymbol(name.Location, name.Value))
	n.Kind = ast.KindSymbolPart
	return n
}

func parseSubscript(p *Parser, left *ast.Node, op token.Token) *ast.Node {
	index := p.parseExpression(precNone)
	p.expect(token.RBracket, "P/B071", "']'")
	return p.builder.NewSubscript(op.Location, left, index)
}

func parseCall(p *Parser, left *ast.Node, op token.Token) *ast.Node {
	call := p.builder.NewProcCall(op.Location, left)
	if _, ok := p.accept(token.RParen); ok {
		return call
	}
	args := p.parseExpression(precComma - 1)
	if args == nil {
		return nil
	}
	for _, a := range FlattenComma(args) {
		call.CallArgs().AddChild(a)
	}
	p.expect(token.RParen, "P/B072", "')'")
	return call
}

// --- control flow ---------------------------------------------------------

// parseIf assembles an if/else-if/else chain into a right-linked spine:
// each node's Right is the next clause (spec.md §4.D).
func parseIf(p *Parser, start token.Token) *ast.Node {
	cond := p.parseExpression(precConditional)
	if cond == nil {
		return nil
	}
	then := p.parseBlock()
	n := p.builder.NewIf(start.Location, cond, then)

	if elseTok, ok := p.accept(token.KwElse); ok {
		if p.at(token.KwIf) {
			ifTok := p.advance()
			next := parseIf(p, ifTok)
			if next != nil {
				next.Kind = ast.KindElseIf
			}
			n.SetRight(next)
		} else {
			body := p.parseBlock()
			elseNode := p.builder.NewLiteral(ast.KindElse, elseTok.Location, "else")
			elseNode.AddChild(body)
			n.SetRight(elseNode)
		}
	}
	return n
}

func parseWhile(p *Parser, start token.Token) *ast.Node {
	cond := p.parseExpression(precConditional)
	if cond == nil {
		return nil
	}
	body := p.parseBlock()
	return p.builder.NewWhile(start.Location, cond, body)
}

// parseForIn captures induction + iterable + body: `for x in range { ... }`.
func parseForIn(p *Parser, start token.Token) *ast.Node {
	name, ok := p.expect(token.Ident, "P/B080", "induction variable")
	if !ok {
		return nil
	}
	induction := p.builder.NewSymbol(name.Location, name.Value)
	if _, ok := p.expect(token.KwIn, "P/B081", "'in'"); !ok {
		return nil
	}
	iterable := p.parseExpression(precConditional)
	if iterable == nil {
		return nil
	}
	body := p.parseBlock()
	return p.builder.NewForIn(start.Location, induction, iterable, body)
}

func parseReturn(p *Parser, start token.Token) *ast.Node {
	ret := p.builder.NewReturnNode(start.Location)
	if p.at(token.Semicolon) {
		return ret
	}
	vals := p.parseExpression(precComma - 1)
	if vals == nil {
		return nil
	}
	for _, v := range FlattenComma(vals) {
		ret.ReturnArgs().AddChild(v)
	}
	return ret
}

func parseBreakContinue(p *Parser, start token.Token) *ast.Node {
	kind := ast.KindBreak
	if start.Kind == token.KwContinue {
		kind = ast.KindContinue
	}
	return p.builder.NewLiteral(kind, start.Location, start.String())
}

func parseDefer(p *Parser, start token.Token) *ast.Node {
	body := p.parseExpression(precComma)
	if body == nil {
		return nil
	}
	return p.builder.NewDefer(start.Location, body)
}

func parseWith(p *Parser, start token.Token) *ast.Node {
	target := p.parseExpression(precConditional)
	if target == nil {
		return nil
	}
	body := p.parseBlock()
	return p.builder.NewWith(start.Location, target, body)
}

func parseNamespace(p *Parser, start token.Token) *ast.Node {
	name, ok := p.expect(token.Ident, "P/B090", "namespace name")
	if !ok {
		return nil
	}
	ns := p.builder.NewComposite(ast.KindNamespace, start.Location)
	ns.Token = name.Value
	block := p.parseBlock()
	ns.AddChild(block)
	return ns
}

// --- import / module -------------------------------------------------------

func parseImport(p *Parser, start token.Token) *ast.Node {
	name, ok := p.expect(token.Ident, "P/B100", "import name")
	if !ok {
		return nil
	}
	var from *ast.Node
	if _, ok := p.accept(token.KwFrom); ok {
		from = p.parseExpression(precConditional)
	}
	return p.builder.NewImport(start.Location, name.Value, from)
}

// parseModuleRef parses `module("path")`, a required string-literal
// argument naming the referenced module.
func parseModuleRef(p *Parser, start token.Token) *ast.Node {
	if _, ok := p.expect(token.LParen, "P/B101", "'('"); !ok {
		return nil
	}
	path, ok := p.expect(token.StringLiteral, "P/B102", "module path string literal")
	if !ok {
		return nil
	}
	p.expect(token.RParen, "P/B103", "')'")
	n := p.builder.NewLiteral(ast.KindLiteralString, path.Location, path.Value)
	n.Kind = ast.KindSymbol
	n.Token = path.Value
	return n
}

// --- cast / transmute / intrinsics -----------------------------------------

// parseCastLike parses `cast(Type)(expr)` / `transmute(Type)(expr)` forms.
func parseCastLike(p *Parser, start token.Token) *ast.Node {
	if _, ok := p.expect(token.LParen, "P/B110", "'('"); !ok {
		return nil
	}
	typeName, ok := p.expect(token.Ident, "P/B111", "type name")
	if !ok {
		return nil
	}
	typeExpr := p.builder.NewTypeIdentifier(typeName.Location, typeName.Value)
	p.expect(token.RParen, "P/B112", "')'")

	if _, ok := p.expect(token.LParen, "P/B113", "'('"); !ok {
		return nil
	}
	expr := p.parseExpression(precNone)
	p.expect(token.RParen, "P/B114", "')'")
	if expr == nil {
		return nil
	}
	return p.builder.NewCast(start.Location, typeExpr, expr, start.Kind == token.KwTransmute)
}

// parseIntrinsicCall parses the size_of/align_of/address_of/type_of/alloc/
// free intrinsic forms, each taking a single parenthesized argument.
func parseIntrinsicCall(p *Parser, start token.Token) *ast.Node {
	kind := intrinsicKind(start.Kind)
	if _, ok := p.expect(token.LParen, "P/B120", "'('"); !ok {
		return nil
	}
	arg := p.parseExpression(precNone)
	p.expect(token.RParen, "P/B121", "')'")
	n := p.builder.NewLiteral(kind, start.Location, start.String())
	n.SetLeft(arg)
	return n
}

func intrinsicKind(k token.Kind) ast.Kind {
	switch k {
	case token.KwSizeOf:
		return ast.KindSizeOf
	case token.KwAlignOf:
		return ast.KindAlignOf
	case token.KwAddressOf:
		return ast.KindAddressOf
	case token.KwTypeOf:
		return ast.KindTypeOf
	case token.KwAlloc:
		return ast.KindAlloc
	case token.KwFree:
		return ast.KindFree
	default:
		return ast.KindInvalid
	}
}

// --- struct / union / enum / proc ------------------------------------------

// parseComposite parses `struct { field... }`, `union { ... }`, and
// `enum { ... }`, recognizing both `name: Type` and bare `name` field forms
// (spec.md §4.E "Composite types").
func parseComposite(p *Parser, start token.Token) *ast.Node {
	kind := ast.KindStructExpression
	switch start.Kind {
	case token.KwUnion:
		kind = ast.KindUnionExpression
	case token.KwEnum:
		kind = ast.KindEnumExpression
	}
	n := p.builder.NewComposite(kind, start.Location)
	if _, ok := p.expect(token.LBrace, "P/B130", "'{'"); !ok {
		return nil
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		field := p.parseField()
		if field == nil {
			return nil
		}
		n.AddChild(field)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RBrace, "P/B131", "'}'")
	return n
}

func (p *Parser) parseField() *ast.Node {
	// The lexer reads `name:` as one Label token, so a typed field arrives
	// as a Label followed by its type name.
	name, typed := p.accept(token.Label)
	if !typed {
		var ok bool
		name, ok = p.expect(token.Ident, "P/B132", "field name")
		if !ok {
			return nil
		}
		_, typed = p.accept(token.Colon)
	}
	var typeExpr *ast.Node
	if typed {
		typeName, ok := p.expect(token.Ident, "P/B133", "field type")
		if !ok {
			return nil
		}
		typeExpr = p.builder.NewTypeIdentifier(typeName.Location, typeName.Value)
	}
	return p.builder.NewField(name.Location, name.Value, typeExpr)
}

// parseProc parses `proc : ReturnType, ... (param: Type, ...) { body }`; the
// return list (after ':') and parameter list are both optional, and the
// body itself is optional (a bare procedure type with no instance).
func parseProc(p *Parser, start token.Token) *ast.Node {
	proc := p.builder.NewProcExpression(start.Location)

	if _, ok := p.accept(token.Colon); ok {
		for {
			typeName, ok := p.expect(token.Ident, "P/B140", "return type")
			if !ok {
				return nil
			}
			proc.Returns().AddChild(p.builder.NewTypeIdentifier(typeName.Location, typeName.Value))
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
	}

	if _, ok := p.expect(token.LParen, "P/B141", "'('"); !ok {
		return nil
	}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		param := p.parseParameter()
		if param == nil {
			return nil
		}
		proc.Params().AddChild(param)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen, "P/B142", "')'")

	if p.at(token.LBrace) {
		body := p.parseBlock()
		proc.AddChild(body)
	}
	return proc
}

func (p *Parser) parseParameter() *ast.Node {
	spread := false
	if _, ok := p.accept(token.DotDotDot); ok {
		spread = true
	}
	// The lexer reads `name:` as one Label token, so a typed parameter
	// arrives as a Label followed by its type name.
	name, typed := p.accept(token.Label)
	if !typed {
		var ok bool
		name, ok = p.expect(token.Ident, "P/B143", "parameter name")
		if !ok {
			return nil
		}
		_, typed = p.accept(token.Colon)
	}
	var typeExpr *ast.Node
	if typed {
		pointer := false
		if _, ok := p.accept(token.Star); ok {
			pointer = true
		}
		typeName, ok := p.expect(token.Ident, "P/B144", "parameter type")
		if !ok {
			return nil
		}
		typeExpr = p.builder.NewTypeIdentifier(typeName.Location, typeName.Value)
		if pointer {
			typeExpr.Flags |= ast.FlagPointer
		}
	}
	param := p.builder.NewParameter(name.Location, name.Value, typeExpr)
	if spread {
		param.Flags |= ast.FlagSpread
	}
	return param
}

// qualifiedName renders a dotted chain of identifiers for diagnostics; kept
// small and dependency-free rather than reusing element.QualifiedSymbol,
// which lives in a higher layer than parser.
func qualifiedName(parts []string) string {
	return strings.Join(parts, ".")
}
