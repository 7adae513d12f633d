package calc

import "github.com/shopspring/decimal"

var (
	taxRate      = decimal.RequireFromString("0.10")
	shippingCost = decimal.RequireFromString("10.00")
)

func GetTaxRate() decimal.Decimal {
	return taxRate
}

func CalculateTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxRate)
}

// ShippingCost is the flat per-order shipping charge.
func ShippingCost() decimal.Decimal {
	return shippingCost
}

func CalculateGrandTotal(subtotal, tax, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(tax).Add(shipping)
}

func LineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}
