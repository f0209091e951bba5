
// Package fuzztests houses Go fuzz harnesses for the formatter pipeline
// (source -> lexer -> printer). Arbitrary bytes must never panic or hang, and
// whatever formats successfully must format to itself again.
//
// Назначение: прогонять байты через лексер и format.Source, проверять
// инварианты потока токенов и сохранность строковых литералов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/format,
// internal/testkit.

package fuzztests
