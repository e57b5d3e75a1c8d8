package service

import (
	"context"

	"github.com/tripsentry/tripsentry/module/core/domain"
	"github.com/tripsentry/tripsentry/module/core/internal/repository/database"
)

type SampleService struct {
	repo database.SampleRepository
}

func NewSampleService(repo database.SampleRepository) *SampleService {
	return &SampleService{repo: repo}
}

func (s *SampleService) SaveSample(ctx context.Context, sample *domain.LocationSample) error {
	return s.repo.Insert(ctx, sample)
}

func (s *SampleService) GetLatest(ctx context.Context, userID, tripID int64) (*domain.LocationSample, error) {
	return s.repo.GetLatest(ctx, userID, tripID)
}

func (s *SampleService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.LocationSample, error) {
	return s.repo.GetHistory(ctx, query)
}
