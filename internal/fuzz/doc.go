// Package fuzztests houses Go fuzz harnesses that exercise the frontend
// pipeline (source -> lexer -> parser). Its goal is to smoke test robustness
// and guard against panics, hangs, or allocator explosions on arbitrary
// inputs.
//
// It does not generate corpora, write files, or execute the CLI.
package fuzztests
