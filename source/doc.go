// Package source is the bottom layer of the alphac toolchain: it owns raw
// source bytes, offset-to-line/column mapping, and the append-only
// diagnostic list shared by every later pipeline stage (lexer, parser,
// evaluator, emitter, VM).
//
// Nothing above this package is allowed to mutate a Buffer once built; the
// lexer only ever borrows one.
package source
