package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
	"github.com/lavida77-ai/currency-converter/internal/domain/ports"
	"github.com/lavida77-ai/currency-converter/pkg/logger"
)

// amountPlaces is the number of decimals a converted amount is rounded to.
const amountPlaces = 2

type ExchangeService struct {
	resolver ports.RateResolver
	log      *logger.Logger
}

func NewExchangeService(resolver ports.RateResolver, log *logger.Logger) *ExchangeService {
	return &ExchangeService{
		resolver: resolver,
		log:      log,
	}
}

// ConvertCurrency converts request.Amount at the cross rate
// rates[to] / rates[from]. The amount is validated before any rates are
// resolved.
func (s *ExchangeService) ConvertCurrency(ctx context.Context, request model.ConversionRequest) (*model.ConversionResult, error) {
	if err := model.ValidateAmount(request.Amount); err != nil {
		return nil, err
	}

	snapshot, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	rate, err := crossRate(snapshot, request.FromCurrency, request.ToCurrency)
	if err != nil {
		return nil, err
	}

	converted := request.Amount * rate
	if math.IsInf(converted, 0) {
		return nil, fmt.Errorf("%w: amount too large", model.ErrInvalidAmount)
	}

	return &model.ConversionResult{
		FromCurrency:    request.FromCurrency,
		ToCurrency:      request.ToCurrency,
		Amount:          request.Amount,
		ConvertedAmount: roundAmount(converted),
		Rate:            rate,
	}, nil
}

func (s *ExchangeService) GetLatestRates(ctx context.Context) (*model.LatestRates, error) {
	snapshot, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	return &model.LatestRates{
		Base:  model.BaseCurrency,
		Rates: snapshot.Clone(),
	}, nil
}

func (s *ExchangeService) ClearRates(ctx context.Context) error {
	return s.resolver.Invalidate(ctx)
}

func crossRate(snapshot model.RateSnapshot, from, to model.Currency) (float64, error) {
	fromRate, ok := snapshot.Rate(from)
	if !ok {
		return 0, fmt.Errorf("%w: %s", model.ErrCurrencyNotFound, from)
	}

	toRate, ok := snapshot.Rate(to)
	if !ok {
		return 0, fmt.Errorf("%w: %s", model.ErrCurrencyNotFound, to)
	}

	rate := toRate / fromRate
	if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
		return 0, fmt.Errorf("%w: no usable rate from %s to %s", model.ErrCurrencyNotFound, from, to)
	}

	return rate, nil
}

// roundAmount rounds half away from zero on the cent boundary. v must be
// finite.
func roundAmount(v float64) float64 {
	return decimal.NewFromFloat(v).Round(amountPlaces).InexactFloat64()
}
