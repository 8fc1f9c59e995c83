// Package specfile merges an exclusion list into a PyInstaller .spec file.
//
// A spec file is Python source. Rather than parse it, the patcher edits the
// single line holding the Analysis excludes argument and leaves every other
// byte alone.
//
// # Marker contract
//
// The following substrings are recognized, in this order of precedence,
// and the first line matching any of them is the slot:
//
//  1. Empty slot: the literal "excludes=[]," (as written by pyi-makespec).
//     The "[]" becomes a list literal of every name.
//  2. Partial slot: the literal "excludes=[" followed later on the same line
//     by "],". New names are inserted before that "]," after the existing
//     entries, which keep their order and formatting.
//
// If no line matches the literal forms, a tolerant form is tried: the word
// "excludes", optional whitespace, "=", optional whitespace, then a
// bracketed list closed on the same line, e.g. "excludes = [ 'tkinter' ]".
// Matches inside a comment are ignored. Lists spanning several lines are
// not recognized.
//
// A document without a slot is returned unchanged together with an
// ErrCodeNoExcludesSlot error.
//
// Names are written as single-quoted Python string literals joined by ", ".
// Names the slot already lists are not added again, so patching an already
// patched file is a no-op.
package specfile
