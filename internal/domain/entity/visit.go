package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Visit represents a clinical encounter between a patient and a doctor
type Visit struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	ClinicID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"clinic_id"`
	PatientID uuid.UUID        `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"doctor_id"`
	QueueID   *uuid.UUID       `gorm:"type:uuid;index" json:"queue_id,omitempty"`
	Complaint string           `gorm:"type:text" json:"complaint"`
	Diagnosis *string          `gorm:"type:text" json:"diagnosis,omitempty"`
	Notes     *string          `gorm:"type:text" json:"notes,omitempty"`
	Status    enum.VisitStatus `gorm:"default:0" json:"status"`
	ClosedAt  *time.Time       `json:"closed_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User    `gorm:"foreignKey:DoctorID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new visit
func (v *Visit) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Visit model
func (Visit) TableName() string {
	return "visits"
}
