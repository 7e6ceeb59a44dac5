// Package lexer scans alphac source text into a finite sequence of tokens.
//
// It never throws: an unrecognized leading character causes it to emit the
// distinguished end-of-file token and report HasNext() == false so the
// parser can surface a diagnostic at the most recent token's location.
package lexer
