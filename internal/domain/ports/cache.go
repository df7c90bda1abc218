package ports

import (
	"context"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
)

type RateCache interface {
	Read(ctx context.Context) (model.RateSnapshot, bool)
	Write(ctx context.Context, snapshot model.RateSnapshot) error
	Clear(ctx context.Context) error
}
