package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTaskAcceptsInRangeDescriptions(t *testing.T) {
	cases := map[string]string{
		"lower bound": strings.Repeat("a", 10),
		"upper bound": strings.Repeat("a", 300),
		"middle":      "write the quarterly report",
	}

	for name, description := range cases {
		t.Run(name, func(t *testing.T) {
			errs, isValid := ValidateTask(TaskInput{Title: "report", Description: description})
			assert.True(t, isValid)
			assert.Empty(t, errs)
		})
	}
}

func TestValidateTaskRejectsOutOfRangeDescriptions(t *testing.T) {
	cases := map[string]string{
		"just under": strings.Repeat("a", 9),
		"just over":  strings.Repeat("a", 301),
		"one char":   "x",
	}

	for name, description := range cases {
		t.Run(name, func(t *testing.T) {
			errs, isValid := ValidateTask(TaskInput{Title: "report", Description: description})
			assert.False(t, isValid)
			assert.Equal(t, "Post must be between 10 and 300 characters", errs["description"])
		})
	}
}

// An empty description trips both checks, and the required-field message
// written second is the one that survives on the shared key.
func TestValidateTaskEmptyDescriptionGetsRequiredMessage(t *testing.T) {
	errs, isValid := ValidateTask(TaskInput{Title: "report"})
	assert.False(t, isValid)
	assert.Equal(t, map[string]string{"description": "Text field is required"}, errs)
}

func TestValidateTaskAbsentEqualsEmpty(t *testing.T) {
	absentErrs, absentValid := ValidateTask(TaskInput{Title: "report"})
	emptyErrs, emptyValid := ValidateTask(TaskInput{Title: "report", Description: ""})

	assert.Equal(t, absentValid, emptyValid)
	assert.Equal(t, absentErrs, emptyErrs)
}

func TestValidateTaskIgnoresTitle(t *testing.T) {
	errs, isValid := ValidateTask(TaskInput{Description: strings.Repeat("a", 50)})
	assert.True(t, isValid)
	assert.Empty(t, errs)
}

func TestValidateTaskIsIdempotent(t *testing.T) {
	input := TaskInput{Title: "report", Description: "short"}

	firstErrs, firstValid := ValidateTask(input)
	secondErrs, secondValid := ValidateTask(input)

	assert.Equal(t, firstValid, secondValid)
	assert.Equal(t, firstErrs, secondErrs)
}
