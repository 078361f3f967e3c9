package services

import (
	"GautamiHMS/models"
	"GautamiHMS/repositories"
	"context"
)

type ChangeLogService struct {
	repository *repositories.ChangeLogRepository
}

func NewChangeLogService(repository *repositories.ChangeLogRepository) *ChangeLogService {
	return &ChangeLogService{repository: repository}
}

func (s *ChangeLogService) ListByAdmission(ctx context.Context, admissionID string) ([]models.ChangeLog, error) {
	return s.repository.ListByAdmission(ctx, admissionID)
}

func (s *ChangeLogService) ListRecent(ctx context.Context, limit int) ([]models.ChangeLog, error) {
	return s.repository.ListRecent(ctx, limit)
}
