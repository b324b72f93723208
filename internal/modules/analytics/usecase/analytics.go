package usecase

import (
	"context"

	"diagonator/internal/modules/analytics/domain"
	"diagonator/internal/modules/analytics/dto"
	analyticsin "diagonator/internal/modules/analytics/port/in"
	"diagonator/internal/modules/analytics/service"
)

type Interactor struct {
	svc *service.AnalyticsService
}

func NewInteractor(svc *service.AnalyticsService) analyticsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Deactivations(ctx context.Context, input dto.RangeInput) (dto.DeactivationsOutput, error) {
	r, err := domain.ParseDateRange(input.From, input.To)
	if err != nil {
		return dto.DeactivationsOutput{}, err
	}
	h, err := i.svc.Deactivations(ctx, r)
	if err != nil {
		return dto.DeactivationsOutput{}, err
	}
	out := dto.DeactivationsOutput{
		From:   r.FromDate(),
		To:     r.ToDate(),
		Total:  h.Total(),
		Legend: make([]string, 0, len(domain.Buckets)),
		Bins:   make([]dto.HourBin, 0, domain.HoursPerDay),
	}
	for _, b := range domain.Buckets {
		out.Legend = append(out.Legend, b.String())
	}
	for hour, counts := range h.Bins {
		out.Bins = append(out.Bins, dto.HourBin{
			Hour:              hour,
			Unlockable:        counts[domain.BucketUnlockable],
			BreakTimer:        counts[domain.BucketBreakTimer],
			RequirementNotMet: counts[domain.BucketRequirementNotMet],
			Other:             counts[domain.BucketOther],
		})
	}
	return out, nil
}

func (i *Interactor) Requirements(ctx context.Context, input dto.RangeInput) (dto.RequirementsOutput, error) {
	r, err := domain.ParseDateRange(input.From, input.To)
	if err != nil {
		return dto.RequirementsOutput{}, err
	}
	series, err := i.svc.Requirements(ctx, r)
	if err != nil {
		return dto.RequirementsOutput{}, err
	}
	out := dto.RequirementsOutput{From: r.FromDate(), To: r.ToDate(), Series: make([]dto.RequirementSeries, 0, len(series))}
	for _, s := range series {
		points := make([]dto.RequirementPoint, 0, len(s.Points))
		for _, p := range s.Points {
			points = append(points, dto.RequirementPoint{Date: p.Date, Hours: p.Hours})
		}
		out.Series = append(out.Series, dto.RequirementSeries{
			Name:        s.Name,
			Median:      domain.FormatHours(s.MedianHours),
			MedianHours: s.MedianHours,
			Points:      points,
		})
	}
	return out, nil
}
