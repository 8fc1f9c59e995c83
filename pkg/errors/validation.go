package errors

import (
	"regexp"
	"unicode"
)

// pep508Name matches a distribution name as defined by PEP 508.
var pep508Name = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ValidatePackageName rejects names that cannot identify a Python distribution.
//
// The rules are:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
//   - Letters, digits, '.', '_' and '-' only, starting and ending alphanumeric
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRequirement, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidRequirement, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRequirement, "package name contains invalid control characters")
		}
	}

	if !pep508Name.MatchString(name) {
		return New(ErrCodeInvalidRequirement, "invalid package name: %q", name)
	}
	return nil
}
