package app_test

import (
	"context"
	"testing"
	"time"

	"healthlog/internal/app"
	"healthlog/internal/domain"
)

func TestDailySeries_PassesResolvedCutoff(t *testing.T) {
	var gotCutoff string
	repo := &mockEntryRepo{
		seriesFn: func(_ context.Context, cutoff string) ([]domain.SeriesPoint, error) {
			gotCutoff = cutoff
			return []domain.SeriesPoint{{Date: "2024-01-01", WeightLbs: 180}}, nil
		},
	}
	svc := app.NewChartsService(repo)

	points, err := svc.DailySeries(context.Background(), "7d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.RangeCutoff("7d", time.Now())
	if gotCutoff != want {
		t.Errorf("expected cutoff %q, got %q", want, gotCutoff)
	}
	if len(points) != 1 || points[0].WeightLbs != 180 {
		t.Errorf("unexpected points: %v", points)
	}
}

func TestDailySeries_UnknownKeyIsUnbounded(t *testing.T) {
	var gotCutoff string
	repo := &mockEntryRepo{
		seriesFn: func(_ context.Context, cutoff string) ([]domain.SeriesPoint, error) {
			gotCutoff = cutoff
			return nil, nil
		},
	}
	svc := app.NewChartsService(repo)
	if _, err := svc.DailySeries(context.Background(), "whenever"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCutoff != "" {
		t.Errorf("expected empty cutoff, got %q", gotCutoff)
	}
}
