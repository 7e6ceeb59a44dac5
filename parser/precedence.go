package parser

import "github.com/basecode-lang/alphac/token"

// precedence is an operator binding power. Higher binds tighter.
type precedence int

// The fixed precedence ladder, lowest to highest. Parser.parseExpression's
// core loop compares a caller's minimum precedence against the next
// token's to decide whether to keep consuming infix operators.
const (
	precNone precedence = iota
	precAssignment
	precKeyValue
	precConditional
	precComma
	precSum
	precProduct
	precLogical
	precRelational
	precBitwise
	precExponent
	precPrefix
	precPostfix
	precType
	precVariable
	precPointerDeref
	precSubscript
	precCast
	precBlockComment
	precCall
)

// infixPrecedence maps a token kind that can continue an expression to its
// binding power. Tokens absent from this map never continue an expression
// (parseExpression's loop condition naturally stops).
var infixPrecedence = map[token.Kind]precedence{
	token.Assign:       precAssignment,
	token.ColonEquals:  precAssignment,
	token.ColonColonEq: precAssignment,
	token.Colon:        precKeyValue,
	token.Comma:        precComma,

	token.Plus:  precSum,
	token.Minus: precSum,

	token.Star:    precProduct,
	token.Slash:   precProduct,
	token.Percent: precProduct,

	token.LogicalAnd: precLogical,
	token.LogicalOr:  precLogical,

	token.Equal:        precRelational,
	token.NotEqual:      precRelational,
	token.Less:          precRelational,
	token.LessEqual:     precRelational,
	token.Greater:       precRelational,
	token.GreaterEqual:  precRelational,

	token.Ampersand: precBitwise,
	token.Pipe:      precBitwise,
	token.Caret:     precBitwise,
	token.Shl:       precBitwise,
	token.Shr:       precBitwise,

	token.Caret2: precExponent,

	token.Dot:      precPostfix,
	token.LBracket: precSubscript,
	token.LParen:   precCall,
}

// rightAssociative holds the infix token kinds whose right-hand side should
// be parsed at precedence-1 instead of precedence, giving right-to-left
// grouping (spec.md testable property 4: `a := b := 1` parses as
// `a := (b := 1)`).
var rightAssociative = map[token.Kind]bool{
	token.Assign:       true,
	token.ColonEquals:  true,
	token.ColonColonEq: true,
}

func precedenceOf(k token.Kind) precedence {
	if p, ok := infixPrecedence[k]; ok {
		return p
	}
	return precNone
}
