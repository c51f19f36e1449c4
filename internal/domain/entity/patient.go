package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a registered patient
type Patient struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"clinic_id"`
	MRN             string         `gorm:"size:50;unique;not null;column:mrn" json:"mrn"`
	FirstName       string         `gorm:"size:255;not null" json:"first_name"`
	LastName        string         `gorm:"size:255;not null" json:"last_name"`
	Gender          string         `gorm:"size:10;not null" json:"gender"`
	DateOfBirth     time.Time      `gorm:"type:date;not null" json:"date_of_birth"`
	Phone           *string        `gorm:"size:50" json:"phone,omitempty"`
	Address         *string        `gorm:"type:text" json:"address,omitempty"`
	NextOfKin       *string        `gorm:"size:255" json:"next_of_kin,omitempty"`
	NextOfKinTel    *string        `gorm:"size:50" json:"next_of_kin_tel,omitempty"`
	BloodGroup      *string        `gorm:"size:10" json:"blood_group,omitempty"`
	Allergies       *string        `gorm:"type:text" json:"allergies,omitempty"`
	InsuranceName   *string        `gorm:"size:255" json:"insurance_name,omitempty"`
	InsuranceNumber *string        `gorm:"size:100" json:"insurance_number,omitempty"`
	RegisteredBy    uuid.UUID      `gorm:"type:uuid;column:registered_by" json:"registered_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Clinic Clinic        `gorm:"foreignKey:ClinicID" json:"-"`
	Bills  []PatientBill `gorm:"foreignKey:PatientID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new patient
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Patient model
func (Patient) TableName() string {
	return "patients"
}

// FullName returns the patient's display name
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Age returns the patient's age in whole years at the given time
func (p *Patient) Age(at time.Time) int {
	years := at.Year() - p.DateOfBirth.Year()
	if at.YearDay() < p.DateOfBirth.YearDay() {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}
