package services

import (
	"GautamiHMS/models"
	"GautamiHMS/repositories"
	"context"
)

// AdmissionService covers the read side of admissions; the lifecycle
// writes go through IPDService.
type AdmissionService struct {
	repository *repositories.AdmissionRepository
}

func NewAdmissionService(repository *repositories.AdmissionRepository) *AdmissionService {
	return &AdmissionService{repository: repository}
}

func (s *AdmissionService) GetByID(ctx context.Context, id string) (*models.Admission, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *AdmissionService) ListByDate(ctx context.Context, dateKey string) ([]models.Admission, error) {
	return s.repository.ListByDate(ctx, dateKey)
}
