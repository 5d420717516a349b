// Package models defines the client-side data model of WarrantyKeeper:
// warranty records, their add/patch inputs and notification preferences.
package models
