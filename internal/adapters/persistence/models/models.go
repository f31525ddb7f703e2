package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents the users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Patient *Patient `gorm:"foreignKey:UserID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:UserID" json:"doctor,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Patient represents the patients table (1:1 with users).
// DateOfBirth, Gender, BloodType and Height are nullable: all four must be
// present before the patient may request a consultation.
type Patient struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Phone       string     `gorm:"size:30" json:"phone"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth"`
	Gender      *string    `gorm:"size:10" json:"gender"`
	BloodType   *string    `gorm:"size:5" json:"blood_type"`
	Height      *int       `json:"height"`
	PatientCode string     `gorm:"size:20" json:"patient_code"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// IsComplete reports whether the profile carries every field required
// before a consultation request
func (p *Patient) IsComplete() bool {
	return p.DateOfBirth != nil && p.Gender != nil && p.BloodType != nil && p.Height != nil
}

// Doctor represents the doctors table (1:1 with users)
type Doctor struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	Specialty     string    `gorm:"size:50;not null" json:"specialty"`
	Phone         string    `gorm:"size:30" json:"phone"`
	LicenseNumber string    `gorm:"column:license_number;size:50;uniqueIndex;not null" json:"license_number"`
	DoctorCode    string    `gorm:"size:20" json:"doctor_code"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Appointment represents the appointments table
type Appointment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	AppointmentDate time.Time `gorm:"not null;index" json:"appointment_date"`
	Reason          string    `gorm:"size:255;not null" json:"reason"`
	PatientID       uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint      `gorm:"not null;index" json:"doctor_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Message represents the messages table. Messages are immutable after
// creation except for IsRead. PatientID and AppointmentID are optional
// context references; a deleted appointment leaves them dangling.
type Message struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	PatientID     *uint     `gorm:"index" json:"patient_id"`
	AppointmentID *uint     `gorm:"index" json:"appointment_id"`
	Title         string    `gorm:"size:100;not null" json:"title"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	IsRead        bool      `gorm:"default:false" json:"is_read"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Patient{},
		&Doctor{},
		&Appointment{},
		&Message{},
	)
}
