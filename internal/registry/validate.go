package registry

import (
	"regexp"
	"strings"
)

// contactPattern accepts an optional +91 country prefix, with or without a
// single space after it, followed by exactly ten digits.
var contactPattern = regexp.MustCompile(`^(\+91 ?)?[0-9]{10}$`)

func validatePatientName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &InvalidInputError{Field: "patient_name", Reason: "must not be empty"}
	}
	return nil
}

func validateContactNumber(contact string) error {
	if !contactPattern.MatchString(contact) {
		return &InvalidInputError{
			Field:  "contact_number",
			Reason: "must be 10 digits with an optional +91 prefix",
		}
	}
	return nil
}
