package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var symbol = "$"

// SetCurrencySymbol changes the prefix used by FormatMoney. Call it once at startup.
func SetCurrencySymbol(s string) {
	if s != "" {
		symbol = s
	}
}

func FormatMoney(amount decimal.Decimal) string {
	ac := accounting.Accounting{Symbol: symbol, Precision: 2, Thousand: ",", Decimal: "."}
	return ac.FormatMoneyDecimal(amount)
}
