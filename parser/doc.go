// Package parser implements a Pratt (precedence-climbing) recursive-descent
// parser: two dispatch tables keyed by token.Kind (prefix and infix
// parselets) plus a fixed precedence ladder, as described in the project's
// design notes and grounded on the lexer/parser split found throughout the
// retrieved reference implementations.
//
// Every parse function returns a possibly-nil *ast.Node and reports
// failures through the shared source.Session rather than panicking; the
// first nil returned by a parselet unwinds the enclosing statement loop.
package parser
