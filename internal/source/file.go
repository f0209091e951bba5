package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"unicode/utf8"

	"fortio.org/safecast"
)

// NewFile normalizes content (BOM, CRLF) and builds its line index.
func NewFile(path string, content []byte, flags FileFlags) *File {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return &File{
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	}
}

// Virtual builds a File for in-memory content (stdin, tests).
func Virtual(name string, content []byte) *File {
	return NewFile(name, content, FileVirtual)
}

// Load reads a file from disk and normalizes it.
func Load(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFile(path, content, 0), nil
}

// Len returns the content length as a span offset.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// Position converts a byte offset into a 1-based line and byte column.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// RuneColumn converts a byte offset into a 1-based column counted in runes.
func (f *File) RuneColumn(off uint32) uint32 {
	start := f.lineStart(off)
	if off > f.Len() {
		off = f.Len()
	}
	n, err := safecast.Conv[uint32](utf8.RuneCount(f.Content[start:off]))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return n + 1
}

// LinePrefix returns the text of the line holding off, up to off.
func (f *File) LinePrefix(off uint32) string {
	if off > f.Len() {
		off = f.Len()
	}
	return string(f.Content[f.lineStart(off):off])
}

func (f *File) lineStart(off uint32) uint32 {
	lc := toLineCol(f.LineIdx, off)
	if lc.Line == 1 {
		return 0
	}
	return f.LineIdx[lc.Line-2] + 1
}

// GetLine возвращает строку с заданным номером (1-based) из файла.
// Если строка не существует, возвращает пустую строку.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	lenLineIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index length overflow: %w", err))
	}
	lenContent := f.Len()

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenLineIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenLineIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start > lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}

	return string(f.Content[start:end])
}

// Text returns the bytes covered by span.
func (f *File) Text(span Span) string {
	return string(f.Content[span.Start:span.End])
}
