package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID             int64     `json:"id" db:"id"`
	Code           string    `json:"patient_code" db:"patient_code"`
	Name           *string   `json:"name" db:"name"`
	Age            *int      `json:"age" db:"age"`
	Gender         *string   `json:"gender" db:"gender"`
	Contact        RawJSON   `json:"contact" db:"contact"`
	MedicalHistory RawJSON   `json:"medical_history" db:"medical_history"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// NewPatientCode mints a P-XXXXXXXX code for patients registered
// without one.
func NewPatientCode() string {
	return "P-" + strings.ToUpper(uuid.NewString()[:8])
}
