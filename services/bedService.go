package services

import (
	"GautamiHMS/models"
	"GautamiHMS/repositories"
	"context"
)

type BedService struct {
	repository *repositories.BedRepository
}

func NewBedService(repository *repositories.BedRepository) *BedService {
	return &BedService{repository: repository}
}

func (s *BedService) ListWards(ctx context.Context) ([]models.Ward, error) {
	return s.repository.ListWards(ctx)
}

func (s *BedService) ListByWard(ctx context.Context, wardID string) ([]models.Bed, error) {
	return s.repository.ListByWard(ctx, wardID)
}

func (s *BedService) GetByID(ctx context.Context, id uint) (*models.Bed, error) {
	return s.repository.GetByID(ctx, id)
}
