package tools

// ValidationError reports a missing or malformed tool argument. Field is
// empty for errors that concern the argument bag as a whole.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UnknownToolError reports a call for a name that is not in the registry.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "Unknown tool: " + e.Name
}

func requiredError(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " parameter is required"}
}

var errArgumentsRequired = &ValidationError{Message: "Arguments are required"}
