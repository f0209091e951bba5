// Package format is the Nushell formatting engine: a pure function from
// source text and a Config to canonical text.
//
// Pipeline: lexer.Tokenize (front end) → preprocess (glue, closure params,
// comment placement) → printer (regions, gaps, layout, quote normalization) →
// Writer (indentation, columns, final newline).
//
// Не делает: IO, поиск конфигов, параллелизм. Это слой internal/driver.
// The engine never inspects commands or types; it only needs balanced
// delimiters and terminated strings.
package format
