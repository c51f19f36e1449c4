package request

// CreatePatientRequest registers a new patient
type CreatePatientRequest struct {
	FirstName       string  `json:"first_name" binding:"required,min=2,max=255"`
	LastName        string  `json:"last_name" binding:"required,min=2,max=255"`
	Gender          string  `json:"gender" binding:"required,oneof=male female other"`
	DateOfBirth     string  `json:"date_of_birth" binding:"required"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	NextOfKin       *string `json:"next_of_kin"`
	NextOfKinTel    *string `json:"next_of_kin_tel"`
	BloodGroup      *string `json:"blood_group"`
	Allergies       *string `json:"allergies"`
	InsuranceName   *string `json:"insurance_name"`
	InsuranceNumber *string `json:"insurance_number"`
}

// UpdatePatientRequest updates patient demographics
type UpdatePatientRequest struct {
	FirstName       *string `json:"first_name" binding:"omitempty,min=2,max=255"`
	LastName        *string `json:"last_name" binding:"omitempty,min=2,max=255"`
	Gender          *string `json:"gender" binding:"omitempty,oneof=male female other"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	NextOfKin       *string `json:"next_of_kin"`
	NextOfKinTel    *string `json:"next_of_kin_tel"`
	BloodGroup      *string `json:"blood_group"`
	Allergies       *string `json:"allergies"`
	InsuranceName   *string `json:"insurance_name"`
	InsuranceNumber *string `json:"insurance_number"`
}
