package validation

import "unicode/utf8"

// TaskInput is the caller-supplied body for creating a task.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
}

// ValidateTask checks a task creation payload. It returns a field->message
// map and whether the payload is acceptable. Title is not checked here; the
// store enforces its own required-field constraint on it.
func ValidateTask(input TaskInput) (map[string]string, bool) {
	errors := map[string]string{}

	// An absent description decodes to the empty string, so no separate
	// normalization step is needed.
	description := input.Description

	if n := utf8.RuneCountInString(description); n < 10 || n > 300 {
		errors["description"] = "Post must be between 10 and 300 characters"
	}

	// Runs after the length check and overwrites the same key when the
	// description is empty. Historical contract; isValid is unaffected.
	if description == "" {
		errors["description"] = "Text field is required"
	}

	return errors, len(errors) == 0
}
