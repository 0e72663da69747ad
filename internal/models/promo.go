package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType represents how a promo code discount is applied
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// FlatTaxes is the fixed tax amount added to every checkout
var FlatTaxes = decimal.NewFromInt(59)

// PromoCode is a discount code that can be applied at checkout
type PromoCode struct {
	ID            string          `json:"id" db:"id"`
	CodeText      string          `json:"code_text" db:"code_text"`
	DiscountType  DiscountType    `json:"discount_type" db:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value" db:"discount_value"`
	IsActive      bool            `json:"is_active" db:"is_active"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// NormalizePromoCode trims and upper-cases a promo code for lookup
func NormalizePromoCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate validates the promo code data
func (p *PromoCode) Validate() error {
	if NormalizePromoCode(p.CodeText) == "" {
		return NewValidationError("code_text", "code is required")
	}
	switch p.DiscountType {
	case DiscountPercentage:
		if p.DiscountValue.IsNegative() || p.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return NewValidationError("discount_value", "percentage must be between 0 and 100")
		}
	case DiscountFixed:
		if p.DiscountValue.IsNegative() {
			return NewValidationError("discount_value", "discount cannot be negative")
		}
	default:
		return NewValidationError("discount_type", "discount type must be percentage or fixed")
	}
	return nil
}

// Discount returns the amount this code takes off a checkout.
// Fixed discounts are capped at subtotal + taxes; percentage discounts are a
// fraction of the subtotal and need no cap.
func (p *PromoCode) Discount(subtotal, taxes decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	switch p.DiscountType {
	case DiscountPercentage:
		return subtotal.Mul(p.DiscountValue).Div(decimal.NewFromInt(100))
	case DiscountFixed:
		return decimal.Min(p.DiscountValue, subtotal.Add(taxes))
	default:
		return decimal.Zero
	}
}

// Quote is a priced checkout breakdown
type Quote struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Taxes     decimal.Decimal `json:"taxes"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	PromoCode string          `json:"promo_code,omitempty"`
}

// CalculateQuote prices quantity guests at unitPrice with an optional promo code
func CalculateQuote(unitPrice decimal.Decimal, quantity int, promo *PromoCode) *Quote {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discount := promo.Discount(subtotal, FlatTaxes)

	quote := &Quote{
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Subtotal:  subtotal,
		Taxes:     FlatTaxes,
		Discount:  discount,
		Total:     subtotal.Add(FlatTaxes).Sub(discount),
	}
	if promo != nil {
		quote.PromoCode = promo.CodeText
	}
	return quote
}
