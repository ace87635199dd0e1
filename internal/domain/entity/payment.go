package entity

import (
	"strings"

	"github.com/sangkips/restopos-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CustomerInfo is the optional buyer block printed on a tax invoice
type CustomerInfo struct {
	Name               string `gorm:"size:255" json:"name,omitempty"`
	TaxNumber          string `gorm:"size:64" json:"tax_number,omitempty"`
	CommercialRegister string `gorm:"size:64" json:"commercial_register,omitempty"`
	Address            string `gorm:"size:512" json:"address,omitempty"`
}

// IsZero reports whether no customer field was filled in
func (c CustomerInfo) IsZero() bool {
	return strings.TrimSpace(c.Name) == "" &&
		strings.TrimSpace(c.TaxNumber) == "" &&
		strings.TrimSpace(c.CommercialRegister) == "" &&
		strings.TrimSpace(c.Address) == ""
}

// PaymentDecision is what the payment coordinator hands to invoice creation
type PaymentDecision struct {
	Method           enum.PaymentMethod `json:"method"`
	PaidAmount       decimal.Decimal    `json:"paid_amount"`
	ChangeAmount     decimal.Decimal    `json:"change_amount"`
	Customer         *CustomerInfo      `json:"customer,omitempty"`
	ReceiptReference string             `json:"receipt_reference,omitempty"`
}

// ChangeFor returns max(0, paid - total)
func ChangeFor(paid, total decimal.Decimal) decimal.Decimal {
	change := paid.Sub(total)
	if change.IsNegative() {
		return decimal.Zero
	}
	return change
}
