package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"GautamiHMS/models"
)

// BedRepository flips bed occupancy flags. Beds are read fresh on
// every request and are deliberately not cached: the bed board must
// reflect a reassignment on the very next read.
type BedRepository struct {
	db *gorm.DB
}

func NewBedRepository(db *gorm.DB) *BedRepository {
	return &BedRepository{db: db}
}

func (r *BedRepository) GetByID(ctx context.Context, id uint) (*models.Bed, error) {
	var bed models.Bed
	err := r.db.WithContext(ctx).First(&bed, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bed: %w", err)
	}
	return &bed, nil
}

func (r *BedRepository) ListWards(ctx context.Context) ([]models.Ward, error) {
	var wards []models.Ward
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&wards).Error; err != nil {
		return nil, fmt.Errorf("failed to list wards: %w", err)
	}
	return wards, nil
}

func (r *BedRepository) ListByWard(ctx context.Context, wardID string) ([]models.Bed, error) {
	var beds []models.Bed
	err := r.db.WithContext(ctx).
		Where("ward_id = ?", wardID).
		Order("number ASC").
		Find(&beds).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list beds: %w", err)
	}
	return beds, nil
}

// SetStatus writes one bed's occupancy flag, whatever it was before.
func (r *BedRepository) SetStatus(ctx context.Context, id uint, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Bed{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update bed %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("bed %d not found", id)
	}
	return nil
}

// Reassign moves an admission's bed assignment. The two status writes
// are independent and not atomic across both beds; freeing the old bed
// happens first so a failure in between leaves both beds free rather
// than both occupied.
func (r *BedRepository) Reassign(ctx context.Context, oldBed, newBed *uint) error {
	if oldBed == nil && newBed == nil {
		return nil
	}
	if oldBed != nil && newBed != nil && *oldBed == *newBed {
		return nil
	}
	if oldBed != nil {
		if err := r.SetStatus(ctx, *oldBed, models.BedAvailable); err != nil {
			return err
		}
	}
	if newBed != nil {
		if err := r.SetStatus(ctx, *newBed, models.BedOccupied); err != nil {
			return err
		}
	}
	return nil
}
