package models

import (
	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
	"github.com/shopspring/decimal"
)

// Field is one slot of a partial update. When Set is false the stored value
// is left alone; when true it is replaced by Value (a nil Value clears an
// optional field).
type Field[T any] struct {
	Set   bool
	Value T
}

// Set returns a Field that replaces the stored value with v.
func Set[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Clear returns a Field that resets an optional field to nil.
func Clear[T any]() Field[*T] {
	return Field[*T]{Set: true}
}

// WarrantyPatch is a shallow partial update. ContactInfo is replaced as a
// whole, never merged field by field. ID, CreatedAt and ExpiryDate are not
// patchable; ExpiryDate follows PurchaseDate and WarrantyPeriod.
type WarrantyPatch struct {
	ProductName    Field[string]
	Brand          Field[string]
	Category       Field[string]
	PurchaseDate   Field[timex.Date]
	WarrantyPeriod Field[int]
	Price          Field[*decimal.Decimal]
	ReceiptImage   Field[*string]
	Notes          Field[*string]
	ContactInfo    Field[*ContactInfo]
}

// IsEmpty reports whether the patch changes nothing.
func (p WarrantyPatch) IsEmpty() bool {
	return !p.ProductName.Set && !p.Brand.Set && !p.Category.Set &&
		!p.PurchaseDate.Set && !p.WarrantyPeriod.Set && !p.Price.Set &&
		!p.ReceiptImage.Set && !p.Notes.Set && !p.ContactInfo.Set
}

// TouchesExpiry reports whether applying p requires recomputing ExpiryDate.
func (p WarrantyPatch) TouchesExpiry() bool {
	return p.PurchaseDate.Set || p.WarrantyPeriod.Set
}

// Apply returns w with the set fields of p applied and ExpiryDate
// recomputed when the purchase date or period changed.
func (p WarrantyPatch) Apply(w Warranty) Warranty {
	if p.ProductName.Set {
		w.ProductName = p.ProductName.Value
	}
	if p.Brand.Set {
		w.Brand = p.Brand.Value
	}
	if p.Category.Set {
		w.Category = p.Category.Value
	}
	if p.PurchaseDate.Set {
		w.PurchaseDate = p.PurchaseDate.Value
	}
	if p.WarrantyPeriod.Set {
		w.WarrantyPeriod = p.WarrantyPeriod.Value
	}
	if p.Price.Set {
		w.Price = clonePtr(p.Price.Value)
	}
	if p.ReceiptImage.Set {
		w.ReceiptImage = clonePtr(p.ReceiptImage.Value)
	}
	if p.Notes.Set {
		w.Notes = clonePtr(p.Notes.Value)
	}
	if p.ContactInfo.Set {
		w.ContactInfo = p.ContactInfo.Value.Clone()
	}
	if p.TouchesExpiry() {
		w.ExpiryDate = ComputeExpiry(w.PurchaseDate, w.WarrantyPeriod)
	}
	return w
}
