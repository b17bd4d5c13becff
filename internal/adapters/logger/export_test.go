package logger

// Exported for black-box tests of the error formatting.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)
