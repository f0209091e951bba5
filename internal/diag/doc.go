// Package diag defines the diagnostic model shared by the front end and the
// formatting engine.
//
// A Diagnostic carries a severity, a stable numeric Code, a short message, the
// primary span and a remediation hint. The front end never stops at the first
// problem: it reports everything it finds into a Reporter and keeps scanning.
// The engine later picks the earliest error and turns it into a SyntaxError.
//
// Package diag does not perform any formatting or IO. Rendering lives in
// internal/diagfmt.
package diag
