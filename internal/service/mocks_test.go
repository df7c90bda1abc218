package service

import (
	"context"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
)

type MockRateCache struct {
	ReadFunc  func(ctx context.Context) (model.RateSnapshot, bool)
	WriteFunc func(ctx context.Context, snapshot model.RateSnapshot) error
	ClearFunc func(ctx context.Context) error
}

func (m *MockRateCache) Read(ctx context.Context) (model.RateSnapshot, bool) {
	return m.ReadFunc(ctx)
}

func (m *MockRateCache) Write(ctx context.Context, snapshot model.RateSnapshot) error {
	return m.WriteFunc(ctx, snapshot)
}

func (m *MockRateCache) Clear(ctx context.Context) error {
	return m.ClearFunc(ctx)
}

type MockRateRepository struct {
	FetchLatestRatesFunc func(ctx context.Context) (model.RateSnapshot, error)
	calls                int
}

func (m *MockRateRepository) FetchLatestRates(ctx context.Context) (model.RateSnapshot, error) {
	m.calls++
	return m.FetchLatestRatesFunc(ctx)
}

type MockRateResolver struct {
	ResolveFunc    func(ctx context.Context) (model.RateSnapshot, error)
	InvalidateFunc func(ctx context.Context) error
}

func (m *MockRateResolver) Resolve(ctx context.Context) (model.RateSnapshot, error) {
	return m.ResolveFunc(ctx)
}

func (m *MockRateResolver) Invalidate(ctx context.Context) error {
	return m.InvalidateFunc(ctx)
}
