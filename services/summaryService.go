package services

import (
	"GautamiHMS/models"
	"GautamiHMS/repositories"
	"context"
)

type SummaryService struct {
	repository *repositories.SummaryRepository
}

func NewSummaryService(repository *repositories.SummaryRepository) *SummaryService {
	return &SummaryService{repository: repository}
}

func (s *SummaryService) GetIPD(ctx context.Context, dateKey string) (*models.IPDSummary, error) {
	return s.repository.GetIPD(ctx, dayOf(dateKey))
}

func (s *SummaryService) GetOT(ctx context.Context, dateKey string) (*models.OTSummary, error) {
	return s.repository.GetOT(ctx, dayOf(dateKey))
}
