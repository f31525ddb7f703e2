// Package code issues the human-readable sequential codes assigned to
// patient and doctor records at creation time.
package code

import "fmt"

const (
	// PatientPrefix is the code prefix for patient records
	PatientPrefix = "PAT"
	// DoctorPrefix is the code prefix for doctor records
	DoctorPrefix = "DOC"
)

// Generate builds a code of the form PREFIX-NNN from a store-assigned id.
// The numeric part is zero-padded to at least 3 digits and grows with the id.
func Generate(prefix string, id uint) string {
	return fmt.Sprintf("%s-%03d", prefix, id)
}
