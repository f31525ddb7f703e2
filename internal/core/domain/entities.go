package domain

import "time"

// Role represents a user role in the system
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether r is one of the three known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// Identity is the resolved caller identity for a single request.
// Carried through request locals, never through ambient globals.
type Identity struct {
	UserID   uint
	Username string
	Role     Role
}

// User represents an account in the domain layer
type User struct {
	ID        uint
	Username  string
	Email     string
	Password  string // Hashed
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SpecialtySuffixes maps a doctor specialty to its title suffix
var SpecialtySuffixes = map[string]string{
	"Cardiology":       "Sp.JP",
	"Pediatrics":       "Sp.A",
	"InternalMedicine": "Sp.PD",
	"Neurology":        "Sp.S",
	"Dermatology":      "Sp.KK",
}

// SpecialtySuffix returns the title suffix for a specialty, or "" if unknown
func SpecialtySuffix(specialty string) string {
	return SpecialtySuffixes[specialty]
}

// DoctorDisplayName builds the display form "dr. Name, Sp.X"
func DoctorDisplayName(name, specialty string) string {
	suffix := SpecialtySuffix(specialty)
	if suffix == "" {
		return "dr. " + name
	}
	return "dr. " + name + ", " + suffix
}
