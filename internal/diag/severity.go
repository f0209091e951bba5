package diag

// Severity ранжирует диагностику. Форматирование останавливает только
// SevError; SevInfo и SevWarning лексер может оставить как заметки.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// Blocks reports whether a diagnostic of this severity makes the input
// unformattable.
func (s Severity) Blocks() bool { return s >= SevError }

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	}
	return "unknown"
}
