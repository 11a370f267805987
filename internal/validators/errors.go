package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrPolicyViolation matches every *PolicyViolationError.
	ErrPolicyViolation = errors.New("password does not satisfy the password policy")
)

// Violation is a single failed password rule.
type Violation struct {
	Rule    string
	Message string
}

// PolicyViolationError lists every rule a password failed.
type PolicyViolationError struct {
	Violations []Violation
}

func (e *PolicyViolationError) Error() string {
	return ErrPolicyViolation.Error() + ": " + strings.Join(e.Messages(), "; ")
}

// Is makes errors.Is(err, ErrPolicyViolation) true.
func (e *PolicyViolationError) Is(target error) bool {
	return target == ErrPolicyViolation
}

// Messages returns the human-readable message of each violation.
func (e *PolicyViolationError) Messages() []string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Message)
	}
	return messages
}

// Rules returns the rule name of each violation.
func (e *PolicyViolationError) Rules() []string {
	rules := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		rules = append(rules, v.Rule)
	}
	return rules
}
