package logger

// FormatError exposes the private chain formatting for white-box tests.
func FormatError(err error) string {
	return formatErrorEntries(collectErrorEntries(err))
}
