package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	"github.com/afyacare/hms-api/pkg/apperror"
)

func setupQueueTest(t *testing.T) (*QueueService, *fakeQueueRepo, entity.Actor, *entity.Patient) {
	t.Helper()
	queueRepo := newFakeQueueRepo()
	patientRepo := newFakePatientRepo()
	svc := NewQueueService(queueRepo, patientRepo)

	actor := entity.Actor{ID: uuid.New(), Name: "Grace Njeri", ClinicID: uuid.New(), Roles: []string{"receptionist"}}
	patient := &entity.Patient{
		ID:        uuid.New(),
		ClinicID:  actor.ClinicID,
		MRN:       "PT-2026-00007",
		FirstName: "Mary",
		LastName:  "Achieng",
		Gender:    "female",
	}
	require.NoError(t, patientRepo.Create(context.Background(), patient))
	return svc, queueRepo, actor, patient
}

func TestJoinQueue(t *testing.T) {
	svc, _, actor, patient := setupQueueTest(t)
	ctx := context.Background()

	entry, err := svc.JoinQueue(ctx, actor, patient.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "general", entry.Department)
	assert.Equal(t, 1, entry.QueueNumber)
	assert.Equal(t, enum.QueueStatusWaiting, entry.Status)
	// Queue date carries no time component
	assert.Equal(t, 0, entry.QueueDate.Hour())

	t.Run("already queued", func(t *testing.T) {
		_, err := svc.JoinQueue(ctx, actor, patient.ID, "opd")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already in the queue")
	})

	t.Run("unknown patient", func(t *testing.T) {
		_, err := svc.JoinQueue(ctx, actor, uuid.New(), "opd")
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestQueueNumbersPerDepartment(t *testing.T) {
	svc, _, actor, patient := setupQueueTest(t)
	ctx := context.Background()

	first, err := svc.JoinQueue(ctx, actor, patient.ID, "opd")
	require.NoError(t, err)
	require.NoError(t, svc.CompleteEntry(ctx, first.ID))

	second, err := svc.JoinQueue(ctx, actor, patient.ID, "opd")
	require.NoError(t, err)
	assert.Equal(t, 2, second.QueueNumber)
	require.NoError(t, svc.CompleteEntry(ctx, second.ID))

	// Numbering is independent per department
	other, err := svc.JoinQueue(ctx, actor, patient.ID, "lab")
	require.NoError(t, err)
	assert.Equal(t, 1, other.QueueNumber)
}

func TestCallNext(t *testing.T) {
	svc, _, actor, patient := setupQueueTest(t)
	ctx := context.Background()

	entry, err := svc.JoinQueue(ctx, actor, patient.ID, "opd")
	require.NoError(t, err)

	called, err := svc.CallNext(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QueueStatusInProgress, called.Status)

	t.Run("only waiting entries can be called", func(t *testing.T) {
		_, err := svc.CallNext(ctx, entry.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not waiting")
	})
}

func TestCancelEntry(t *testing.T) {
	svc, queueRepo, actor, patient := setupQueueTest(t)
	ctx := context.Background()

	entry, err := svc.JoinQueue(ctx, actor, patient.ID, "opd")
	require.NoError(t, err)

	require.NoError(t, svc.CancelEntry(ctx, entry.ID))
	updated, err := queueRepo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QueueStatusCancelled, updated.Status)

	t.Run("completed entries stay completed", func(t *testing.T) {
		entry, err := svc.JoinQueue(ctx, actor, patient.ID, "opd")
		require.NoError(t, err)
		require.NoError(t, svc.CompleteEntry(ctx, entry.ID))

		err = svc.CancelEntry(ctx, entry.ID)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be cancelled")
	})
}
