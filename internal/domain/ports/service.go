package ports

import (
	"context"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
)

type RateResolver interface {
	Resolve(ctx context.Context) (model.RateSnapshot, error)
	Invalidate(ctx context.Context) error
}

type ExchangeService interface {
	ConvertCurrency(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error)
	GetLatestRates(ctx context.Context) (*model.LatestRates, error)
	ClearRates(ctx context.Context) error
}
