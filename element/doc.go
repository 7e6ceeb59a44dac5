// Package element additionally documents the scope manager's contract:
//
//   - PushNewBlock/PopScope must balance, exactly like ast.Builder's
//     BeginScope/EndScope one layer down;
//   - identifier-reference elements created before their target identifier
//     exists are queued via EnqueueUnresolved and drained by ResolveAll once
//     the enclosing scope's top-level declarations have all materialized;
//   - FindIdentifier walks the current scope chain outward for bare names,
//     and walks a module's namespace prefix for qualified names.
package element
