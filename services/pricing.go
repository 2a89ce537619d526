package services

import (
	"github.com/shopspring/decimal"

	"github.com/cafe-eden/pos-app/models"
)

// DiscountInput carries at most one of: a resolved promo code record, a
// manual percent override, or a manual fixed override. Manual overrides are
// role-gated by the caller.
type DiscountInput struct {
	Promo         *models.Discount
	ManualPercent *float64
	ManualAmount  *float64
}

// PricingResult is the fully reconciled money breakdown for an order.
type PricingResult struct {
	Subtotal       float64
	DiscountAmount float64
	TaxableBase    float64
	TaxAmount      float64
	FinalTotal     float64
	TotalKHR       int64
}

var hundred = decimal.NewFromInt(100)

// ComputeTotals applies discount, tax and currency conversion to a pre-tax
// subtotal. discount_amount never exceeds the subtotal, tax applies to the
// discounted base only, and the final total is never negative.
func ComputeTotals(subtotal float64, disc DiscountInput, taxRate, exchangeRate float64) PricingResult {
	sub := decimal.NewFromFloat(subtotal).Round(2)

	var discount decimal.Decimal
	switch {
	case disc.ManualPercent != nil:
		discount = sub.Mul(decimal.NewFromFloat(*disc.ManualPercent)).Div(hundred).Round(2)
	case disc.ManualAmount != nil:
		discount = decimal.NewFromFloat(*disc.ManualAmount).Round(2)
	case disc.Promo != nil && disc.Promo.Percentage != nil:
		discount = sub.Mul(decimal.NewFromFloat(*disc.Promo.Percentage)).Div(hundred).Round(2)
	case disc.Promo != nil && disc.Promo.Amount != nil:
		discount = decimal.NewFromFloat(*disc.Promo.Amount).Round(2)
	}

	// Hard invariant: discount never exceeds the pre-tax subtotal.
	if discount.GreaterThan(sub) {
		discount = sub
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	base := sub.Sub(discount)
	if base.IsNegative() {
		base = decimal.Zero
	}

	var tax decimal.Decimal
	if taxRate > 0 {
		tax = base.Mul(decimal.NewFromFloat(taxRate)).Div(hundred).Round(2)
	}

	total := base.Add(tax).Round(2)
	khr := total.Mul(decimal.NewFromFloat(exchangeRate)).Round(0)

	return PricingResult{
		Subtotal:       f64(sub),
		DiscountAmount: f64(discount),
		TaxableBase:    f64(base),
		TaxAmount:      f64(tax),
		FinalTotal:     f64(total),
		TotalKHR:       khr.IntPart(),
	}
}

func f64(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
