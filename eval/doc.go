// Package eval additionally documents two decisions forced by ambiguities
// left open in the design notes (see DESIGN.md "Open Question decisions"):
//
//   - a `::=` declaration's right-hand side must be a constant expression
//     (a literal, a type, or a procedure type); isConstantExpression
//     enforces this and handleIdentifierDecl reports P/C024 otherwise.
//   - a procedure instance's defer list runs in reverse registration
//     order, the conventional "last deferred, first run" semantics.
package eval
