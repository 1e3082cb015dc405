package internal

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is used when nothing is configured and the locale gives no hint
const DefaultCurrency = "INR"

// Currency formats amounts for display. It is not part of the data model.
type Currency struct {
	Code    string // "INR", "USD", "EUR"
	symbol  string
	printer *message.Printer
}

// symbolOverrides provides custom glyphs where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"INR": "₹",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// defaultLocaleForCurrency is the "home" locale of a currency, used for digit grouping
// when no locale is configured or detected
var defaultLocaleForCurrency = map[string]language.Tag{
	"INR": language.MustParse("en-IN"),
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"SEK": language.Swedish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
	"BRL": language.BrazilianPortuguese,
	"MXN": language.LatinAmericanSpanish,
	"CNY": language.Chinese,
	"PLN": language.Polish,
}

// CurrencyOptions selects how amounts are printed
type CurrencyOptions struct {
	Code   string       // ISO 4217 code, empty means detect from the system locale
	Symbol string       // glyph override, empty means derive from the code
	Locale language.Tag // number formatting locale, language.Und means default for the code
}

// NewCurrency resolves options into a Currency
func NewCurrency(opts CurrencyOptions) Currency {
	code := strings.ToUpper(strings.TrimSpace(opts.Code))
	tag := opts.Locale
	if code == "" {
		detected, detectedTag := DetectSystemCurrency()
		code = detected
		if tag == language.Und {
			tag = detectedTag
		}
	}
	if code == "" {
		code = DefaultCurrency
	}

	if tag == language.Und {
		if t, ok := defaultLocaleForCurrency[code]; ok {
			tag = t
		} else {
			tag = language.English
		}
	}

	c := Currency{
		Code:    code,
		symbol:  opts.Symbol,
		printer: message.NewPrinter(tag),
	}
	if c.symbol == "" {
		c.symbol = lookupSymbol(code, c.printer)
	}
	return c
}

// currencyWithLocale returns a Currency with a specific locale for formatting
func currencyWithLocale(code string, tag language.Tag) Currency {
	return NewCurrency(CurrencyOptions{Code: code, Locale: tag})
}

func lookupSymbol(code string, printer *message.Printer) string {
	if sym, ok := symbolOverrides[code]; ok {
		return sym
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		// unknown currencies print their code
		return code
	}
	return printer.Sprint(currency.NarrowSymbol(unit))
}

// Symbol returns the display glyph
func (c Currency) Symbol() string {
	return c.symbol
}

// Format prints amount with two fraction digits and the glyph in front
func (c Currency) Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	formatted := c.printer.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
	return sign + c.symbol + formatted
}

// DetectSystemCurrency attempts to detect the currency from the OS locale.
// Returns an empty code if detection fails.
func DetectSystemCurrency() (string, language.Tag) {
	locale := systemLocale()
	if locale == "" {
		return "", language.Und
	}
	return parseCurrencyFromLocale(locale)
}

// parseCurrencyFromLocale extracts currency code and language tag from a locale string.
// Examples: "sv_SE.UTF-8" -> ("SEK", sv-SE), "en_IN" -> ("INR", en-IN)
func parseCurrencyFromLocale(locale string) (string, language.Tag) {
	base := locale
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}
	if idx := strings.Index(base, "@"); idx != -1 {
		base = base[:idx]
	}

	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return "", language.Und
	}

	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return "", language.Und
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", language.Und
	}
	return unit.String(), tag
}
