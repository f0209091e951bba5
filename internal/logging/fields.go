package logging

// Ключи структурированных полей.
const (
	FieldError   = "error"
	FieldPath    = "path"
	FieldFiles   = "files"
	FieldJobs    = "jobs"
	FieldConfig  = "config"
	FieldCache   = "cache"
	FieldChanged = "changed"
	FieldPhase   = "phase"
	FieldElapsed = "elapsed"
)
