package entity

import "strings"

// Currency moneda aceptada en los documentos.
type Currency struct {
	Code   string
	Name   string
	Symbol string
}

// Currencies monedas soportadas; la primera es la moneda por defecto.
var Currencies = []Currency{
	{Code: "usd", Name: "Dólar estadounidense", Symbol: "$"},
	{Code: "ves", Name: "Bolívar", Symbol: "Bs"},
	{Code: "eur", Name: "Euro", Symbol: "€"},
}

// CurrencySymbol devuelve el símbolo de la moneda o "$" si no se conoce.
func CurrencySymbol(code string) string {
	for _, c := range Currencies {
		if c.Code == strings.ToLower(code) {
			return c.Symbol
		}
	}
	return "$"
}

// ValidCurrency indica si el código de moneda es soportado.
func ValidCurrency(code string) bool {
	for _, c := range Currencies {
		if c.Code == strings.ToLower(code) {
			return true
		}
	}
	return false
}
