package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"GautamiHMS/models"
)

// ChangeLogRepository appends audit entries. The table is append-only:
// no update or delete method exists, and none should ever be added.
type ChangeLogRepository struct {
	db *gorm.DB
}

func NewChangeLogRepository(db *gorm.DB) *ChangeLogRepository {
	return &ChangeLogRepository{db: db}
}

// Append persists one audit entry for a successful edit. The entry id
// is generated here; the actor falls back to the unknown sentinel.
func (r *ChangeLogRepository) Append(ctx context.Context, entry *models.ChangeLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.EditedBy == "" {
		entry.EditedBy = models.ActorUnknown
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append change log entry: %w", err)
	}
	return nil
}

func (r *ChangeLogRepository) ListByAdmission(ctx context.Context, admissionID string) ([]models.ChangeLog, error) {
	var entries []models.ChangeLog
	err := r.db.WithContext(ctx).
		Where("admission_id = ?", admissionID).
		Order("edited_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list change log entries: %w", err)
	}
	return entries, nil
}

func (r *ChangeLogRepository) ListRecent(ctx context.Context, limit int) ([]models.ChangeLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.ChangeLog
	err := r.db.WithContext(ctx).
		Order("edited_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent change log entries: %w", err)
	}
	return entries, nil
}
