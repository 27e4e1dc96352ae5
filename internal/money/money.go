// Package money defines the currencies supported across the application.
package money

// Currency is an ISO-style currency code.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	EGP Currency = "EGP"
)

// Currencies lists every supported currency in display order.
var Currencies = []Currency{USD, EUR, EGP}

// Valid returns true if c is a supported currency.
func Valid(c string) bool {
	switch Currency(c) {
	case USD, EUR, EGP:
		return true
	}
	return false
}

// Symbol returns the display symbol for a currency.
func Symbol(c Currency) string {
	switch c {
	case USD:
		return "$"
	case EUR:
		return "€"
	case EGP:
		return "E£"
	}
	return string(c)
}
