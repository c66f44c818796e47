package errors

import (
	"strings"
	"unicode"
)

// ValidateClassName validates a CSS class name used as the effect prefix or
// a generated element class.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No whitespace or control characters
//   - No selector syntax (. # [ ] > + ~ : , * etc.)
//   - Must not start with a digit
func ValidateClassName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "class name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "class name %q contains whitespace or control characters", name)
		}
	}

	if i := strings.IndexAny(name, ".#[]>+~:,*()'\"\\/"); i >= 0 {
		return New(ErrCodeInvalidConfig, "class name %q contains selector character %q", name, name[i])
	}

	if unicode.IsDigit(rune(name[0])) {
		return New(ErrCodeInvalidConfig, "class name %q cannot start with a digit", name)
	}

	return nil
}

// ValidateTagName validates an element tag name such as "div" or "DIV".
func ValidateTagName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "tag name cannot be empty")
	}
	for i, r := range name {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && (unicode.IsDigit(r) || r == '-'))
		if !ok {
			return New(ErrCodeInvalidConfig, "invalid tag name %q", name)
		}
	}
	return nil
}
