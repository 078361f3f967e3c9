package repositories

import (
	"GautamiHMS/cache"
	"GautamiHMS/database"
	"GautamiHMS/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AdmissionCacheExpiry = 24 * time.Hour
)

type AdmissionRepository struct {
	cache *cache.Cache
}

func NewAdmissionRepository(cache *cache.Cache) *AdmissionRepository {
	return &AdmissionRepository{cache: cache}
}

// Create books an IPD admission: the admission row, its billing record
// and the advance payment row go in together in a single transaction.
// Bed occupancy and the daily summary are the caller's next steps, not
// part of this write.
func (r *AdmissionRepository) Create(ctx context.Context, admission *models.Admission, deposit models.Contribution, through string) (*models.Billing, error) {
	lockKey := fmt.Sprintf("admission_lock:%s_%s", admission.PatientID, admission.DateKey)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
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
		return nil, fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	if admission.ID == "" {
		admission.ID = uuid.New().String()
	}

	billing := &models.Billing{
		ID:           uuid.New().String(),
		AdmissionID:  admission.ID,
		PatientID:    admission.PatientID,
		DateKey:      admission.DateKey,
		TotalDeposit: deposit.Amount,
		PaymentMode:  deposit.Category,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(admission).Error; err != nil {
			return fmt.Errorf("failed to create admission: %w", err)
		}
		if err := tx.Create(billing).Error; err != nil {
			return fmt.Errorf("failed to create billing: %w", err)
		}
		if deposit.Amount > 0 {
			payment := models.Payment{
				ID:         uuid.New().String(),
				BillingID:  billing.ID,
				Amount:     deposit.Amount,
				Category:   deposit.Category,
				AmountType: models.AmountTypeAdvance,
				Through:    through,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return fmt.Errorf("failed to create advance payment: %w", err)
			}
			billing.Payments = append(billing.Payments, payment)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := r.cache.Delete(ctx, r.getAdmissionCacheKey(admission.ID)); err != nil {
		log.Printf("Failed to delete admission cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "admissions_cache:*"); err != nil {
		log.Printf("Failed to delete admissions cache: %v", err)
	}
	return billing, nil
}

func (r *AdmissionRepository) GetByID(ctx context.Context, id string) (*models.Admission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getAdmissionCacheKey(id)
	cachedAdmission, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedAdmission != "" {
		var admission models.Admission
		if err := json.Unmarshal([]byte(cachedAdmission), &admission); err == nil {
			return &admission, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get admission from cache: %v", err)
	}

	var admission models.Admission
	err = database.DB.First(&admission, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admission: %w", err)
	}

	admissionJSON, err := json.Marshal(admission)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal admission: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, admissionJSON, AdmissionCacheExpiry); err != nil {
		log.Printf("Failed to set admission in cache: %v", err)
	}

	return &admission, nil
}

func (r *AdmissionRepository) ListByDate(ctx context.Context, dateKey string) ([]models.Admission, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("admissions_cache:%s", dateKey)
	cachedAdmissions, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedAdmissions != "" {
		var admissions []models.Admission
		if err := json.Unmarshal([]byte(cachedAdmissions), &admissions); err == nil {
			return admissions, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get admissions from cache: %v", err)
	}

	var admissions []models.Admission
	err = database.DB.Where("date_key = ?", dateKey).
		Order("created_at DESC").
		Find(&admissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list admissions: %w", err)
	}

	admissionsJSON, err := json.Marshal(admissions)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal admissions: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, admissionsJSON, AdmissionCacheExpiry); err != nil {
		log.Printf("Failed to set admissions in cache: %v", err)
	}

	return admissions, nil
}

func (r *AdmissionRepository) Update(ctx context.Context, admission *models.Admission) error {
	lockKey := fmt.Sprintf("admission_lock:%s", admission.ID)
	lockValue := uuid.New().String()
	maxRetries := 3
	retryDelay := 2 * time.Second
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
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	err = database.DB.Save(admission).Error
	if err != nil {
		return fmt.Errorf("failed to update admission: %w", err)
	}
	if err := r.cache.Delete(ctx, r.getAdmissionCacheKey(admission.ID)); err != nil {
		return fmt.Errorf("failed to delete admission cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "admissions_cache:*")
}

// SetStatus flips the admission status (active/discharged) without
// touching the rest of the record.
func (r *AdmissionRepository) SetStatus(ctx context.Context, id, status string) error {
	result := database.DB.Model(&models.Admission{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update admission status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("admission %s not found", id)
	}
	if err := r.cache.Delete(ctx, r.getAdmissionCacheKey(id)); err != nil {
		return fmt.Errorf("failed to delete admission cache: %w", err)
	}
	return r.cache.DeleteAll(ctx, "admissions_cache:*")
}

func (r *AdmissionRepository) getAdmissionCacheKey(id string) string {
	return fmt.Sprintf("admission_cache:%s", id)
}
