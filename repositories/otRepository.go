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
	OTCacheExpiry = 24 * time.Hour
)

type OTRepository struct {
	cache *cache.Cache
}

func NewOTRepository(cache *cache.Cache) *OTRepository {
	return &OTRepository{cache: cache}
}

func (r *OTRepository) Create(ctx context.Context, booking *models.OTBooking) error {
	lockKey := fmt.Sprintf("ot_lock:%s_%s", booking.PatientID, booking.DateKey)
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

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.OTScheduled
	}

	err = database.DB.Create(booking).Error
	if err != nil {
		return fmt.Errorf("failed to create OT booking: %w", err)
	}
	return r.cache.DeleteAll(ctx, "ot_cache:*")
}

func (r *OTRepository) GetByID(ctx context.Context, id string) (*models.OTBooking, error) {
	var booking models.OTBooking
	err := database.DB.First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get OT booking: %w", err)
	}
	return &booking, nil
}

func (r *OTRepository) ListByDate(ctx context.Context, dateKey string) ([]models.OTBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := fmt.Sprintf("ot_cache:%s", dateKey)
	cachedBookings, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cachedBookings != "" {
		var bookings []models.OTBooking
		if err := json.Unmarshal([]byte(cachedBookings), &bookings); err == nil {
			return bookings, nil
		}
	} else if err != nil && err != redis.Nil {
		log.Printf("Failed to get OT bookings from cache: %v", err)
	}

	var bookings []models.OTBooking
	err = database.DB.Where("date_key = ?", dateKey).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list OT bookings: %w", err)
	}

	bookingsJSON, err := json.Marshal(bookings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal OT bookings: %w", err)
	}
	if err := r.cache.Set(ctx, cacheKey, bookingsJSON, OTCacheExpiry); err != nil {
		log.Printf("Failed to set OT bookings in cache: %v", err)
	}

	return bookings, nil
}

func (r *OTRepository) Update(ctx context.Context, booking *models.OTBooking) error {
	lockKey := fmt.Sprintf("ot_lock:%s", booking.ID)
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

	err = database.DB.Save(booking).Error
	if err != nil {
		return fmt.Errorf("failed to update OT booking: %w", err)
	}
	return r.cache.DeleteAll(ctx, "ot_cache:*")
}

// SetStatus flips only the booking status (completed/cancelled).
func (r *OTRepository) SetStatus(ctx context.Context, id, status string) error {
	result := database.DB.Model(&models.OTBooking{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update OT booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("OT booking %s not found", id)
	}
	return r.cache.DeleteAll(ctx, "ot_cache:*")
}
