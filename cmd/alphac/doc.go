// The alphac command line tool is a compiler driver for the pipeline
// implemented by the compiler, asm and vm packages: lex, parse, build the
// element graph, lower it to register code, assemble, and run.
//
// Usage:
//
//	alphac build [files...]
//		compile and assemble without running; reports diagnostics
//	alphac run [files...]
//		build, then execute the assembled program
//	alphac asm [file]
//		assemble a single raw inline-assembly file and run it
//
// Global flags:
//
//	--verbose
//		enable development-mode structured logging to stderr
//	--ast-graph filename
//		write an indented text dump of the parsed AST to filename
//	--dom-graph filename
//		write an indented text dump of the element graph to filename
//	--heap-size bytes
//		override the VM's heap size (default 64KiB)
//	--steps n
//		cap the number of VM steps run (default: unbounded)
package main
