package models

import (
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
	"github.com/shopspring/decimal"
)

// Warranty is one tracked product with its purchase and coverage terms.
type Warranty struct {
	// ID is a UUID assigned on creation. Immutable.
	ID string

	ProductName string
	Brand       string
	Category    string

	PurchaseDate timex.Date
	// WarrantyPeriod is the coverage length in calendar months.
	WarrantyPeriod int
	// ExpiryDate is PurchaseDate + WarrantyPeriod months, cached at write time.
	ExpiryDate timex.Date

	Price *decimal.Decimal
	// ReceiptImage is an embedded image (data URL), stored verbatim.
	ReceiptImage *string
	Notes        *string
	ContactInfo  *ContactInfo

	// CreatedAt is set once on creation, in UTC.
	CreatedAt time.Time
}

// ContactInfo holds optional support contacts for a product.
type ContactInfo struct {
	Phone             *string
	Email             *string
	Website           *string
	AdditionalDetails *string
}

// IsEmpty reports whether no contact field is set.
func (c ContactInfo) IsEmpty() bool {
	return c.Phone == nil && c.Email == nil && c.Website == nil && c.AdditionalDetails == nil
}

// Clone returns a deep copy of c.
func (c *ContactInfo) Clone() *ContactInfo {
	if c == nil {
		return nil
	}
	return &ContactInfo{
		Phone:             clonePtr(c.Phone),
		Email:             clonePtr(c.Email),
		Website:           clonePtr(c.Website),
		AdditionalDetails: clonePtr(c.AdditionalDetails),
	}
}

// Clone returns a deep copy of w, so callers can't mutate stored records
// through optional fields.
func (w Warranty) Clone() Warranty {
	w.Price = clonePtr(w.Price)
	w.ReceiptImage = clonePtr(w.ReceiptImage)
	w.Notes = clonePtr(w.Notes)
	w.ContactInfo = w.ContactInfo.Clone()
	return w
}

// ComputeExpiry returns purchase advanced by period calendar months. A
// missing purchase date has no expiry.
func ComputeExpiry(purchase timex.Date, period int) timex.Date {
	if purchase.IsZero() {
		return timex.Date{}
	}
	return purchase.AddMonths(period)
}

// WarrantyInput is everything Add needs. Contact details come in flat and
// are folded into ContactInfo by the store.
type WarrantyInput struct {
	ProductName    string
	Brand          string
	Category       string
	PurchaseDate   timex.Date
	WarrantyPeriod int

	Price        *decimal.Decimal
	ReceiptImage *string
	Notes        *string

	ContactPhone   *string
	ContactEmail   *string
	ContactWebsite *string
	ContactDetails *string
}

// Contact builds the ContactInfo of the input, or nil when no contact field
// was supplied.
func (in WarrantyInput) Contact() *ContactInfo {
	c := ContactInfo{
		Phone:             clonePtr(in.ContactPhone),
		Email:             clonePtr(in.ContactEmail),
		Website:           clonePtr(in.ContactWebsite),
		AdditionalDetails: clonePtr(in.ContactDetails),
	}
	if c.IsEmpty() {
		return nil
	}
	return &c
}

// Ptr returns a pointer to v. Handy for optional fields.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
