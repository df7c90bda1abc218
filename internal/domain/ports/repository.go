package ports

import (
	"context"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
)

type RateRepository interface {
	FetchLatestRates(ctx context.Context) (model.RateSnapshot, error)
}
