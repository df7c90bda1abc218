package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
	"github.com/lavida77-ai/currency-converter/internal/domain/ports"
	"github.com/lavida77-ai/currency-converter/internal/metrics"
	"github.com/lavida77-ai/currency-converter/pkg/logger"
)

var errMissingCurrency = errors.New("missing currency")

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type Handler struct {
	service ports.ExchangeService
	log     *logger.Logger
	metrics *metrics.Metrics
}

func NewHandler(service ports.ExchangeService, log *logger.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service: service,
		log:     log,
		metrics: metrics,
	}
}

func parseConversionRequest(from, to, amount string) (model.ConversionRequest, error) {
	request := model.ConversionRequest{
		FromCurrency: model.ParseCurrency(from),
		ToCurrency:   model.ParseCurrency(to),
	}
	if request.FromCurrency == "" || request.ToCurrency == "" {
		return request, errMissingCurrency
	}

	parsed, err := model.ParseAmount(amount)
	if err != nil {
		return request, err
	}
	request.Amount = parsed

	return request, nil
}

// ConvertCurrencyHandler serves GET /api/v1/convert?from=&to=&amount=.
func (h *Handler) ConvertCurrencyHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.ObserveConversion()

	query := r.URL.Query()
	request, err := parseConversionRequest(query.Get("from"), query.Get("to"), query.Get("amount"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	result, err := h.service.ConvertCurrency(r.Context(), request)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, result)
}

// ConvertFragmentHandler serves the converter form: it reads the form
// fields and answers with the HTML fragment shown under the form.
func (h *Handler) ConvertFragmentHandler(w http.ResponseWriter, r *http.Request) {
	h.metrics.ObserveConversion()

	if err := r.ParseForm(); err != nil {
		h.sendErrorResponse(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	request, err := parseConversionRequest(
		r.PostForm.Get("fromCurrency"),
		r.PostForm.Get("toCurrency"),
		r.PostForm.Get("amount"),
	)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	result, err := h.service.ConvertCurrency(r.Context(), request)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := renderResult(w, result); err != nil {
		h.log.Error("Failed to render conversion result", "error", err)
	}
}

func (h *Handler) GetLatestRatesHandler(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.GetLatestRates(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.sendSuccessResponse(w, rates)
}

func (h *Handler) GetCurrenciesHandler(w http.ResponseWriter, r *http.Request) {
	h.sendSuccessResponse(w, model.KnownCurrencies())
}

func (h *Handler) ClearRatesHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearRates(r.Context()); err != nil {
		h.log.Error("Failed to clear rate cache", "error", err)
		h.sendErrorResponse(w, http.StatusInternalServerError, "failed to clear cached rates")
		return
	}

	h.sendSuccessResponse(w, map[string]bool{"cleared": true})
}

func (h *Handler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderIndex(w); err != nil {
		h.log.Error("Failed to render index page", "error", err)
	}
}

func (h *Handler) sendSuccessResponse(w http.ResponseWriter, data interface{}) {
	response := Response{
		Success: true,
		Data:    data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	response := Response{
		Success: false,
		Error:   message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error("Failed to encode error response", "error", err)
	}
}

// handleServiceError turns any failure into one user-facing message and a
// logged diagnostic.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	errorMessage := "internal server error"
	kind := "internal"

	switch {
	case errors.Is(err, errMissingCurrency):
		statusCode = http.StatusBadRequest
		errorMessage = "missing required parameters: from and to"
		kind = "validation"
	case errors.Is(err, model.ErrInvalidAmount):
		statusCode = http.StatusBadRequest
		errorMessage = "please enter a valid amount"
		kind = "validation"
	case errors.Is(err, model.ErrCurrencyNotFound):
		statusCode = http.StatusNotFound
		errorMessage = "exchange rate not found for the selected currency"
		kind = "lookup"
	case errors.Is(err, model.ErrMalformedRates):
		statusCode = http.StatusBadGateway
		errorMessage = "failed to get exchange rates, please try again later"
		kind = "parse"
	case errors.Is(err, model.ErrUpstreamUnavailable):
		statusCode = http.StatusServiceUnavailable
		errorMessage = "failed to get exchange rates, please try again later"
		kind = "network"
	}

	h.metrics.ObserveConversionError(kind)
	h.log.Error("Service error", "error", err, "kind", kind, "status_code", statusCode)
	h.sendErrorResponse(w, statusCode, errorMessage)
}
