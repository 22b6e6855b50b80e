package logger

// Standard field names for structured logging.
const (
	FieldComponent = "component"
	FieldOperation = "operation"

	FieldFile   = "file"
	FieldOutput = "output"

	FieldCount   = "count"
	FieldColors  = "colors"
	FieldPages   = "pages"
	FieldWidth   = "width"
	FieldHeight  = "height"
	FieldSkipped = "skipped"
	FieldMethod  = "method"

	FieldDurationMS = "duration_ms"
	FieldError      = "error"
)
