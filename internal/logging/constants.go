package logging

// Standardized field names for structured logging.
const (
	FieldUserID      = "user_id"
	FieldRunID       = "run_id"
	FieldGranularity = "granularity"
	FieldSource      = "source"
	FieldSourcePath  = "source_path"
	FieldCategory    = "category"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldSkipped     = "skipped"
	FieldUndated     = "undated"
	FieldNow         = "now"
	FieldInputFile   = "input_file"
	FieldFormat      = "format"
)
