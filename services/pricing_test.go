package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cafe-eden/pos-app/models"
)

func f(v float64) *float64 { return &v }

func TestComputeTotalsNoDiscountNoTax(t *testing.T) {
	res := ComputeTotals(10.00, DiscountInput{}, 0, 4100)

	assert.Equal(t, 10.00, res.Subtotal)
	assert.Equal(t, 0.00, res.DiscountAmount)
	assert.Equal(t, 0.00, res.TaxAmount)
	assert.Equal(t, 10.00, res.FinalTotal)
	assert.Equal(t, int64(41000), res.TotalKHR)
}

func TestComputeTotalsItemDiscountWithTax(t *testing.T) {
	// Two units of a 5.00 item at 10% off each: 4.50 * 2 = 9.00 subtotal,
	// then 10% tax on the discounted base.
	res := ComputeTotals(9.00, DiscountInput{}, 10, 4100)

	assert.Equal(t, 9.00, res.Subtotal)
	assert.Equal(t, 0.90, res.TaxAmount)
	assert.Equal(t, 9.90, res.FinalTotal)
	assert.Equal(t, int64(40590), res.TotalKHR)
}

func TestComputeTotalsPromoPercentage(t *testing.T) {
	promo := &models.Discount{Code: "SAVE10", Percentage: f(10)}
	res := ComputeTotals(20.00, DiscountInput{Promo: promo}, 0, 4100)

	assert.Equal(t, 2.00, res.DiscountAmount)
	assert.Equal(t, 18.00, res.FinalTotal)
}

func TestComputeTotalsPromoFixedAmount(t *testing.T) {
	promo := &models.Discount{Code: "TAKE3", Amount: f(3)}
	res := ComputeTotals(20.00, DiscountInput{Promo: promo}, 0, 4100)

	assert.Equal(t, 3.00, res.DiscountAmount)
	assert.Equal(t, 17.00, res.FinalTotal)
}

func TestComputeTotalsManualPercent(t *testing.T) {
	res := ComputeTotals(12.00, DiscountInput{ManualPercent: f(25)}, 10, 4100)

	assert.Equal(t, 3.00, res.DiscountAmount)
	assert.Equal(t, 9.00, res.TaxableBase)
	assert.Equal(t, 0.90, res.TaxAmount)
	assert.Equal(t, 9.90, res.FinalTotal)
}

func TestComputeTotalsDiscountClampedToSubtotal(t *testing.T) {
	res := ComputeTotals(5.00, DiscountInput{ManualAmount: f(8)}, 10, 4100)

	assert.Equal(t, 5.00, res.DiscountAmount)
	assert.Equal(t, 0.00, res.TaxableBase)
	assert.Equal(t, 0.00, res.TaxAmount)
	assert.Equal(t, 0.00, res.FinalTotal)
	assert.Equal(t, int64(0), res.TotalKHR)
}

func TestComputeTotalsNegativeManualAmountIgnored(t *testing.T) {
	res := ComputeTotals(10.00, DiscountInput{ManualAmount: f(-5)}, 0, 4100)

	assert.Equal(t, 0.00, res.DiscountAmount)
	assert.Equal(t, 10.00, res.FinalTotal)
}

func TestComputeTotalsKHRRounding(t *testing.T) {
	// 0.33 * 4123 = 1360.59 rounds to 1361 riel.
	res := ComputeTotals(0.33, DiscountInput{}, 0, 4123)
	assert.Equal(t, int64(1361), res.TotalKHR)
}

func TestMenuItemFinalPrice(t *testing.T) {
	percent := models.DiscountTypePercent
	item := models.MenuItem{Price: 5.00, DiscountType: &percent, DiscountValue: f(10)}

	now := item.CreatedAt
	assert.Equal(t, 0.50, item.DiscountAmount(now))
	assert.Equal(t, 4.50, item.FinalPrice(now))
}

func TestVariantInheritsItemDiscount(t *testing.T) {
	percent := models.DiscountTypePercent
	item := &models.MenuItem{Price: 5.00, DiscountType: &percent, DiscountValue: f(20)}
	variant := models.MenuItemVariant{Price: 6.50, MenuItem: item}

	now := variant.CreatedAt
	// 20% of the variant price, not the parent price.
	assert.Equal(t, 1.30, variant.DiscountAmount(now))
	assert.Equal(t, 5.20, variant.FinalPrice(now))
}

func TestVariantOwnDiscountWins(t *testing.T) {
	percent := models.DiscountTypePercent
	fixed := models.DiscountTypeFixed
	item := &models.MenuItem{Price: 5.00, DiscountType: &percent, DiscountValue: f(50)}
	variant := models.MenuItemVariant{
		Price: 6.00, MenuItem: item,
		DiscountType: &fixed, DiscountValue: f(1),
	}

	now := variant.CreatedAt
	assert.Equal(t, 5.00, variant.FinalPrice(now))
}
