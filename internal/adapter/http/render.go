package http

import (
	"embed"
	"html/template"
	"io"
	"strconv"

	"github.com/lavida77-ai/currency-converter/internal/domain/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	indexTemplate  = template.Must(template.ParseFS(templateFS, "templates/index.html"))
	resultTemplate = template.Must(template.ParseFS(templateFS, "templates/result.html"))
)

type indexView struct {
	Currencies []model.CurrencyInfo
	From       model.Currency
	To         model.Currency
}

type resultView struct {
	Amount    string
	FromName  string
	Converted string
	ToName    string
	Rate      string
}

func renderIndex(w io.Writer) error {
	return indexTemplate.Execute(w, indexView{
		Currencies: model.KnownCurrencies(),
		From:       model.CNY,
		To:         model.USD,
	})
}

func renderResult(w io.Writer, result *model.ConversionResult) error {
	return resultTemplate.Execute(w, resultView{
		Amount:    formatNumber(result.Amount),
		FromName:  result.FromCurrency.DisplayName(),
		Converted: formatNumber(result.ConvertedAmount),
		ToName:    result.ToCurrency.DisplayName(),
		Rate:      formatNumber(result.Rate),
	})
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
