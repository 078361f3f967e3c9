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
	BillingCacheExpiry = 24 * time.Hour
)

type BillingRepository struct {
	cache *cache.Cache
}

func NewBillingRepository(cache *cache.Cache) *BillingRepository {
	return &BillingRepository{cache: cache}
}

// GetByAdmission loads the billing record with its payments in
// payment-id order. That order is what makes the advance-payment
// lookup deterministic when the at-most-one invariant is violated.
func (r *BillingRepository) GetByAdmission(ctx context.Context, admissionID string) (*models.Billing, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.getBillingCacheKey(admissionID)
	cachedBilling, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBilling != "" {
		var billing models.Billing
		if err := json.Unmarshal([]byte(cachedBilling), &billing); err == nil {
			return &billing, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get billing from cache: %v", err)
	}

	var billing models.Billing
	err = database.DB.
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&billing, "admission_id = ?", admissionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get billing: %w", err)
	}

	billingJSON, err := json.Marshal(billing)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal billing: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, billingJSON, BillingCacheExpiry); err != nil {
		log.Printf("Failed to set billing in cache: %v", err)
	}

	return &billing, nil
}

// UpdateDeposit rewrites the billing totals and updates the advance
// payment row in place. When several payments carry the advance tag
// the first one in payment-id order is the one updated; when none
// exists a new advance payment row is created.
func (r *BillingRepository) UpdateDeposit(ctx context.Context, billingID string, deposit models.Contribution, through string) error {
	lockKey := fmt.Sprintf("billing_lock:%s", billingID)
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

	var billing models.Billing
	if err := database.DB.First(&billing, "id = ?", billingID).Error; err != nil {
		return fmt.Errorf("failed to find billing: %w", err)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"total_deposit": deposit.Amount,
			"payment_mode":  deposit.Category,
		}
		if err := tx.Model(&models.Billing{}).Where("id = ?", billingID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update billing: %w", err)
		}

		var advance models.Payment
		err := tx.Where("billing_id = ? AND amount_type = ?", billingID, models.AmountTypeAdvance).
			Order("id ASC").
			First(&advance).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to find advance payment: %w", err)
			}
			advance = models.Payment{
				ID:         uuid.New().String(),
				BillingID:  billingID,
				Amount:     deposit.Amount,
				Category:   deposit.Category,
				AmountType: models.AmountTypeAdvance,
				Through:    through,
			}
			if err := tx.Create(&advance).Error; err != nil {
				return fmt.Errorf("failed to create advance payment: %w", err)
			}
			return nil
		}
		if err := tx.Model(&models.Payment{}).Where("id = ?", advance.ID).Updates(map[string]interface{}{
			"amount":   deposit.Amount,
			"category": deposit.Category,
			"through":  through,
		}).Error; err != nil {
			return fmt.Errorf("failed to update advance payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, r.getBillingCacheKey(billing.AdmissionID)); err != nil {
		return fmt.Errorf("failed to delete billing cache: %w", err)
	}
	return nil
}

// IssueBillNumber assigns a bill number from the sequence the first
// time an invoice is generated for a billing record. Subsequent calls
// return the already issued number.
func (r *BillingRepository) IssueBillNumber(ctx context.Context, billingID string) (string, error) {
	var billing models.Billing
	if err := database.DB.First(&billing, "id = ?", billingID).Error; err != nil {
		return "", fmt.Errorf("failed to find billing: %w", err)
	}
	if billing.BillNumber != "" {
		return billing.BillNumber, nil
	}

	var billNumber string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw("SELECT 'BL-' || LPAD(nextval('bill_no_seq')::TEXT, 6, '0')").Scan(&billNumber).Error; err != nil {
			return fmt.Errorf("failed to generate bill number: %w", err)
		}
		return tx.Model(&models.Billing{}).Where("id = ?", billingID).
			Update("bill_number", billNumber).Error
	})
	if err != nil {
		return "", err
	}

	if err := r.cache.Delete(ctx, r.getBillingCacheKey(billing.AdmissionID)); err != nil {
		log.Printf("Failed to delete billing cache: %v", err)
	}
	return billNumber, nil
}

// AddPayment records an additional payment row (service charge,
// refundable deposit top-up, ...) and bumps the running total.
func (r *BillingRepository) AddPayment(ctx context.Context, billingID string, payment *models.Payment) error {
	lockKey := fmt.Sprintf("billing_lock:%s", billingID)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil || !locked {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	var billing models.Billing
	if err := database.DB.First(&billing, "id = ?", billingID).Error; err != nil {
		return fmt.Errorf("failed to find billing: %w", err)
	}

	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	payment.BillingID = billingID

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		return tx.Model(&models.Billing{}).Where("id = ?", billingID).
			Update("total_deposit", gorm.Expr("total_deposit + ?", payment.Amount)).Error
	})
	if err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, r.getBillingCacheKey(billing.AdmissionID)); err != nil {
		return fmt.Errorf("failed to delete billing cache: %w", err)
	}
	return nil
}

func (r *BillingRepository) getBillingCacheKey(admissionID string) string {
	return fmt.Sprintf("billing_cache:%s", admissionID)
}
