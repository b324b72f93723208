package service

import (
	"context"

	"diagonator/internal/modules/analytics/domain"
	analyticsout "diagonator/internal/modules/analytics/port/out"
)

type AnalyticsService struct {
	reader analyticsout.LogReader
}

func NewAnalyticsService(reader analyticsout.LogReader) *AnalyticsService {
	return &AnalyticsService{reader: reader}
}

func (s *AnalyticsService) Deactivations(ctx context.Context, r domain.DateRange) (domain.Histogram, error) {
	rows, err := s.reader.Deactivations(ctx, r)
	if err != nil {
		return domain.Histogram{}, err
	}
	return domain.BuildHistogram(rows), nil
}

func (s *AnalyticsService) Requirements(ctx context.Context, r domain.DateRange) ([]domain.RequirementSeries, error) {
	rows, err := s.reader.Requirements(ctx, r)
	if err != nil {
		return nil, err
	}
	return domain.BuildRequirementSeries(rows), nil
}
