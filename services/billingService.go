package services

import (
	"GautamiHMS/models"
	"GautamiHMS/repositories"
	"context"
)

type BillingService struct {
	repository *repositories.BillingRepository
}

func NewBillingService(repository *repositories.BillingRepository) *BillingService {
	return &BillingService{repository: repository}
}

func (s *BillingService) GetByAdmission(ctx context.Context, admissionID string) (*models.Billing, error) {
	return s.repository.GetByAdmission(ctx, admissionID)
}

func (s *BillingService) AddPayment(ctx context.Context, billingID string, payment *models.Payment) error {
	return s.repository.AddPayment(ctx, billingID, payment)
}

func (s *BillingService) IssueBillNumber(ctx context.Context, billingID string) (string, error) {
	return s.repository.IssueBillNumber(ctx, billingID)
}
