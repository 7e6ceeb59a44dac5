// Package ast additionally documents the builder's invariants:
//
//   - every node is allocated exactly once, by Builder, with a strictly
//     increasing ID;
//   - BeginScope/EndScope must balance; Depth() is zero once parsing
//     completes successfully;
//   - return and call sites always carry a pre-allocated argument list so
//     downstream evaluation never special-cases a nil argument list.
package ast
