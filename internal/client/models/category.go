package models

import "slices"

// Categories is the suggested category list offered by the UI. The store
// accepts any string.
var Categories = []string{
	"Electronics",
	"Appliances",
	"Furniture",
	"Automotive",
	"Jewelry",
	"Clothing",
	"Tools",
	"Toys",
	"Other",
}

// IsSuggestedCategory reports whether c is one of Categories (case-sensitive).
func IsSuggestedCategory(c string) bool {
	return slices.Contains(Categories, c)
}
