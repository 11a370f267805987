package validators

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-community-access/models"
)

// Password policy rule names.
const (
	RuleAttributeSimilarity = "user_attribute_similarity"
	RuleMinimumLength       = "minimum_length"
	RuleCommonPassword      = "common_password"
	RuleNumericPassword     = "numeric_password"
)

const maxSimilarity = 0.7

//go:embed common_passwords.txt
var commonPasswordsFile string

var attributeSeparator = regexp.MustCompile(`\W+`)

// PasswordCandidate is a proposed password together with the account it is for.
type PasswordCandidate struct {
	Password string
	Account  models.Account
}

// PasswordValidator enforces the password policy.
type PasswordValidator struct {
	minLength int
	common    map[string]struct{}
}

// NewPasswordValidator builds the policy with the given minimum length.
func NewPasswordValidator(minLength int) *PasswordValidator {
	common := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(commonPasswordsFile))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			common[strings.ToLower(line)] = struct{}{}
		}
	}

	return &PasswordValidator{minLength: minLength, common: common}
}

// MinLength returns the configured minimum password length.
func (v *PasswordValidator) MinLength() int {
	return v.minLength
}

// Validate checks a PasswordCandidate against every rule, or only against
// the named rules when rules are given. It returns a *PolicyViolationError
// listing all failures.
func (v *PasswordValidator) Validate(_ context.Context, obj any, rules ...string) error {
	var candidate PasswordCandidate
	switch value := obj.(type) {
	case PasswordCandidate:
		candidate = value
	case *PasswordCandidate:
		candidate = *value
	default:
		return ErrUnsupportedType
	}

	checks := map[string]func(PasswordCandidate) *Violation{
		RuleAttributeSimilarity: v.checkSimilarity,
		RuleMinimumLength:       v.checkLength,
		RuleCommonPassword:      v.checkCommon,
		RuleNumericPassword:     v.checkNumeric,
	}
	order := []string{RuleAttributeSimilarity, RuleMinimumLength, RuleCommonPassword, RuleNumericPassword}
	if len(rules) > 0 {
		for _, rule := range rules {
			if _, ok := checks[rule]; !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, rule)
			}
		}
		order = rules
	}

	var violations []Violation
	for _, rule := range order {
		if violation := checks[rule](candidate); violation != nil {
			violations = append(violations, *violation)
		}
	}

	if len(violations) > 0 {
		return &PolicyViolationError{Violations: violations}
	}
	return nil
}

func (v *PasswordValidator) checkLength(c PasswordCandidate) *Violation {
	if utf8.RuneCountInString(c.Password) >= v.minLength {
		return nil
	}
	return &Violation{
		Rule:    RuleMinimumLength,
		Message: fmt.Sprintf("This password is too short. It must contain at least %d characters.", v.minLength),
	}
}

func (v *PasswordValidator) checkCommon(c PasswordCandidate) *Violation {
	if _, ok := v.common[strings.ToLower(strings.TrimSpace(c.Password))]; !ok {
		return nil
	}
	return &Violation{Rule: RuleCommonPassword, Message: "This password is too common."}
}

func (v *PasswordValidator) checkNumeric(c PasswordCandidate) *Violation {
	if c.Password == "" {
		return nil
	}
	for _, r := range c.Password {
		if !unicode.IsDigit(r) {
			return nil
		}
	}
	return &Violation{Rule: RuleNumericPassword, Message: "This password is entirely numeric."}
}

func (v *PasswordValidator) checkSimilarity(c PasswordCandidate) *Violation {
	password := strings.ToLower(c.Password)
	attributes := []struct {
		name  string
		value string
	}{
		{"username", c.Account.Username},
		{"first name", c.Account.FirstName},
		{"last name", c.Account.LastName},
		{"email address", c.Account.Email},
	}

	for _, attr := range attributes {
		value := strings.ToLower(attr.value)
		if value == "" || exceedsLengthRatio(password, value) {
			continue
		}

		parts := append(attributeSeparator.Split(value, -1), value)
		for _, part := range parts {
			if part == "" {
				continue
			}
			if quickRatio(password, part) >= maxSimilarity {
				return &Violation{
					Rule:    RuleAttributeSimilarity,
					Message: fmt.Sprintf("The password is too similar to the %s.", attr.name),
				}
			}
		}
	}

	return nil
}

// exceedsLengthRatio skips attributes far shorter than the password, which
// can never reach the similarity threshold.
func exceedsLengthRatio(password, value string) bool {
	passwordLen := utf8.RuneCountInString(password)
	valueLen := utf8.RuneCountInString(value)
	return passwordLen >= 10*valueLen && float64(valueLen) < maxSimilarity/2*float64(passwordLen)
}

// quickRatio is an upper bound of the sequence similarity of a and b:
// twice the size of their character multiset intersection over the total length.
func quickRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	counts := make(map[rune]int, len(rb))
	for _, r := range rb {
		counts[r]++
	}

	matches := 0
	for _, r := range ra {
		if counts[r] > 0 {
			counts[r]--
			matches++
		}
	}

	return 2 * float64(matches) / float64(total)
}
