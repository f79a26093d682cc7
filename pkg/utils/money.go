package utils

import "fmt"

// TaxRatePercent is the flat storefront tax rate.
const TaxRatePercent = 10

// LineSubtotal returns price * quantity in minor units.
func LineSubtotal(price int64, quantity int) int64 {
	return price * int64(quantity)
}

// Tax computes the 10% tax on a subtotal in minor units, rounded half away
// from zero. Pure integer arithmetic, so 1999 -> 200, 10 -> 1, 5 -> 1, 0 -> 0.
func Tax(subtotal int64) int64 {
	if subtotal < 0 {
		return -Tax(-subtotal)
	}
	return (subtotal*TaxRatePercent + 50) / 100
}

// Total is subtotal plus tax.
func Total(subtotal int64) int64 {
	return subtotal + Tax(subtotal)
}

// FormatPrice renders minor units as a decimal string, e.g. 1999 -> "19.99".
func FormatPrice(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}
