package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/afyacare/hms-api/internal/domain/entity"
	"github.com/afyacare/hms-api/internal/domain/enum"
	domainRepo "github.com/afyacare/hms-api/internal/domain/repository"
	"gorm.io/gorm"
)

type queueRepository struct {
	db *gorm.DB
}

// NewQueueRepository creates a new queue repository
func NewQueueRepository(db *gorm.DB) domainRepo.QueueRepository {
	return &queueRepository{db: db}
}

func (r *queueRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *queueRepository) Create(ctx context.Context, entry *entity.QueueEntry) error {
	return r.conn(ctx).Create(entry).Error
}

func (r *queueRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.QueueEntry, error) {
	var entry entity.QueueEntry
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Preload("Patient").
		First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *queueRepository) Update(ctx context.Context, entry *entity.QueueEntry) error {
	return r.conn(ctx).Save(entry).Error
}

func (r *queueRepository) List(ctx context.Context, params *domainRepo.QueueFilterParams) ([]entity.QueueEntry, int64, error) {
	var entries []entity.QueueEntry
	var total int64

	query := r.conn(ctx).Model(&entity.QueueEntry{}).Scopes(ClinicScope(ctx))

	if params.Department != "" {
		query = query.Where("department = ?", params.Department)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Date != nil {
		query = query.Where("queue_date = ?", dateOnly(*params.Date))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "queue_number"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Patient").
		Order(sortBy + " " + sortOrder).
		Find(&entries).Error

	return entries, total, err
}

// NextQueueNumber restarts numbering at 1 every day per department.
func (r *queueRepository) NextQueueNumber(ctx context.Context, department string, date time.Time) (int, error) {
	var max *int
	err := r.conn(ctx).Model(&entity.QueueEntry{}).
		Scopes(ClinicScope(ctx)).
		Where("department = ? AND queue_date = ?", department, dateOnly(date)).
		Select("MAX(queue_number)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

func (r *queueRepository) FindWaitingForPatient(ctx context.Context, patientID uuid.UUID, date time.Time) (*entity.QueueEntry, error) {
	var entry entity.QueueEntry
	err := r.conn(ctx).
		Scopes(ClinicScope(ctx)).
		Where("patient_id = ? AND queue_date = ?", patientID, dateOnly(date)).
		Where("status IN ?", []enum.QueueStatus{enum.QueueStatusWaiting, enum.QueueStatusInProgress}).
		Order("created_at DESC").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &entry, err
}

func (r *queueRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QueueStatus) error {
	updates := map[string]interface{}{"status": status}
	switch status {
	case enum.QueueStatusInProgress:
		updates["called_at"] = time.Now()
	case enum.QueueStatusCompleted:
		updates["completed_at"] = time.Now()
	}
	return r.conn(ctx).Model(&entity.QueueEntry{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
