package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"GautamiHMS/database"
	"GautamiHMS/models"
)

// SummaryRepository owns the daily counters. Every mutation is a
// read-modify-write of a single summary row inside one transaction,
// holding a row lock for the duration, with a distributed lock around
// the whole cycle so two processes editing the same day serialize.
// Fields default to zero when the day's row does not exist yet, and
// every result is floored at zero.
type SummaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// withDayLock runs fn under the distributed lock for one summary day.
// Lock acquisition retries a few times; the DB row lock inside the
// transaction is what actually guarantees no torn intermediate state.
func withDayLock(ctx context.Context, domain, dateKey string, fn func() error) error {
	lockKey := fmt.Sprintf("summary_lock:%s:%s", domain, dateKey)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 200 * time.Millisecond
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire summary lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release summary lock: %v", err)
		}
	}()
	return fn()
}

// AdjustIPDDeposit rewrites one day's deposit totals for an edit that
// replaced the old contribution with the new one. A creation passes a
// zero old contribution; a removal passes a zero new one.
func (r *SummaryRepository) AdjustIPDDeposit(ctx context.Context, dateKey string, old, new models.Contribution) error {
	return withDayLock(ctx, "ipd", dateKey, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			summary, err := lockIPDRow(tx, dateKey)
			if err != nil {
				return err
			}
			summary.ApplyContribution(old, new)
			return saveSummary(tx, summary)
		})
	})
}

// AdjustAdmissions moves one day's admission counter. Callers invoke
// it exactly once per newly created admission (delta +1) and once on
// deletion (delta -1); edits to an existing admission never touch it.
func (r *SummaryRepository) AdjustAdmissions(ctx context.Context, dateKey string, delta int64) error {
	return withDayLock(ctx, "ipd", dateKey, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			summary, err := lockIPDRow(tx, dateKey)
			if err != nil {
				return err
			}
			summary.ApplyAdmissionDelta(delta)
			return saveSummary(tx, summary)
		})
	})
}

// GetIPD returns one day's IPD summary, zero-valued when absent.
func (r *SummaryRepository) GetIPD(ctx context.Context, dateKey string) (*models.IPDSummary, error) {
	var summary models.IPDSummary
	err := r.db.WithContext(ctx).First(&summary, "date_key = ?", dateKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.IPDSummary{DateKey: dateKey}, nil
		}
		return nil, fmt.Errorf("failed to get IPD summary: %w", err)
	}
	return &summary, nil
}

// AdjustOT moves one day's OT counter, floored at zero. Invoked once
// per newly created booking and once per cancellation.
func (r *SummaryRepository) AdjustOT(ctx context.Context, dateKey string, delta int64) error {
	return withDayLock(ctx, "ot", dateKey, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var summary models.OTSummary
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&summary, "date_key = ?", dateKey).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("failed to read OT summary: %w", err)
				}
				summary = models.OTSummary{DateKey: dateKey}
			}
			summary.ApplyDelta(delta)
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "date_key"}},
				UpdateAll: true,
			}).Create(&summary).Error; err != nil {
				return fmt.Errorf("failed to write OT summary: %w", err)
			}
			return nil
		})
	})
}

// GetOT returns one day's OT summary, zero-valued when absent.
func (r *SummaryRepository) GetOT(ctx context.Context, dateKey string) (*models.OTSummary, error) {
	var summary models.OTSummary
	err := r.db.WithContext(ctx).First(&summary, "date_key = ?", dateKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.OTSummary{DateKey: dateKey}, nil
		}
		return nil, fmt.Errorf("failed to get OT summary: %w", err)
	}
	return &summary, nil
}

func lockIPDRow(tx *gorm.DB, dateKey string) (*models.IPDSummary, error) {
	var summary models.IPDSummary
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&summary, "date_key = ?", dateKey).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to read IPD summary: %w", err)
		}
		summary = models.IPDSummary{DateKey: dateKey}
	}
	return &summary, nil
}

func saveSummary(tx *gorm.DB, summary *models.IPDSummary) error {
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date_key"}},
		UpdateAll: true,
	}).Create(summary).Error; err != nil {
		return fmt.Errorf("failed to write IPD summary: %w", err)
	}
	return nil
}
