package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/pkg/apperror"
)

func setupPatientTest(t *testing.T) (*PatientService, entity.Actor) {
	t.Helper()
	svc := NewPatientService(newFakePatientRepo())
	actor := entity.Actor{ID: uuid.New(), Name: "Grace Njeri", ClinicID: uuid.New(), Roles: []string{"receptionist"}}
	return svc, actor
}

func TestRegisterPatient(t *testing.T) {
	svc, actor := setupPatientTest(t)
	ctx := context.Background()

	patient, err := svc.RegisterPatient(ctx, actor, &RegisterPatientInput{
		FirstName:   "Mary",
		LastName:    "Achieng",
		Gender:      "female",
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PT-%d-00001", time.Now().Year()), patient.MRN)
	assert.Equal(t, actor.ClinicID, patient.ClinicID)
	assert.Equal(t, actor.ID, patient.RegisteredBy)

	second, err := svc.RegisterPatient(ctx, actor, &RegisterPatientInput{
		FirstName:   "John",
		LastName:    "Otieno",
		Gender:      "male",
		DateOfBirth: time.Date(1985, 1, 3, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("PT-%d-00002", time.Now().Year()), second.MRN)
}

func TestRegisterPatientValidation(t *testing.T) {
	svc, actor := setupPatientTest(t)

	_, err := svc.RegisterPatient(context.Background(), actor, &RegisterPatientInput{})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"first_name", "last_name", "gender", "date_of_birth"}, fields)
}

func TestGetPatientByMRN(t *testing.T) {
	svc, actor := setupPatientTest(t)
	ctx := context.Background()

	registered, err := svc.RegisterPatient(ctx, actor, &RegisterPatientInput{
		FirstName:   "Mary",
		LastName:    "Achieng",
		Gender:      "female",
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	found, err := svc.GetPatientByMRN(ctx, registered.MRN)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, found.ID)

	_, err = svc.GetPatientByMRN(ctx, "PT-1999-99999")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestUpdatePatient(t *testing.T) {
	svc, actor := setupPatientTest(t)
	ctx := context.Background()

	patient, err := svc.RegisterPatient(ctx, actor, &RegisterPatientInput{
		FirstName:   "Mary",
		LastName:    "Achieng",
		Gender:      "female",
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	phone := "+254700000001"
	updated, err := svc.UpdatePatient(ctx, patient.ID, &UpdatePatientInput{Phone: &phone})
	require.NoError(t, err)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)
	// MRN never changes
	assert.Equal(t, patient.MRN, updated.MRN)
	assert.Equal(t, "Mary", updated.FirstName)

	_, err = svc.UpdatePatient(ctx, uuid.New(), &UpdatePatientInput{Phone: &phone})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
