package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/common"
	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
	"github.com/shopspring/decimal"
)

// StorageKey is the key the collection is persisted under.
const StorageKey = "warranty-storage"

// stateVersion is the only envelope version this build understands.
const stateVersion = 0

type envelope struct {
	State   state `json:"state"`
	Version int   `json:"version"`
}

type state struct {
	Warranties []warrantyDTO `json:"warranties"`
}

type contactDTO struct {
	Phone             *string `json:"phone,omitempty"`
	Email             *string `json:"email,omitempty"`
	Website           *string `json:"website,omitempty"`
	AdditionalDetails *string `json:"additionalDetails,omitempty"`
}

type warrantyDTO struct {
	ID             string       `json:"id"`
	ProductName    string       `json:"productName"`
	Brand          string       `json:"brand"`
	Category       string       `json:"category"`
	PurchaseDate   string       `json:"purchaseDate"`
	WarrantyPeriod int          `json:"warrantyPeriod"`
	ExpiryDate     string       `json:"expiryDate"`
	Price          *json.Number `json:"price,omitempty"`
	ReceiptImage   *string      `json:"receiptImage,omitempty"`
	Notes          *string      `json:"notes,omitempty"`
	ContactInfo    *contactDTO  `json:"contactInfo,omitempty"`
	CreatedAt      string       `json:"createdAt"`
}

func toDTO(w models.Warranty) warrantyDTO {
	d := warrantyDTO{
		ID:             w.ID,
		ProductName:    w.ProductName,
		Brand:          w.Brand,
		Category:       w.Category,
		PurchaseDate:   formatDate(w.PurchaseDate),
		WarrantyPeriod: w.WarrantyPeriod,
		ExpiryDate:     formatDate(w.ExpiryDate),
		ReceiptImage:   w.ReceiptImage,
		Notes:          w.Notes,
		CreatedAt:      w.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if w.Price != nil {
		n := json.Number(w.Price.String())
		d.Price = &n
	}
	if c := w.ContactInfo; c != nil {
		d.ContactInfo = &contactDTO{
			Phone:             c.Phone,
			Email:             c.Email,
			Website:           c.Website,
			AdditionalDetails: c.AdditionalDetails,
		}
	}
	return d
}

func formatDate(d timex.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// parseDate reads a stored date. Timestamps are taken as instants and
// converted to loc, so local midnight written in UTC keeps its local day.
func parseDate(s string, loc *time.Location) (timex.Date, error) {
	if s == "" {
		return timex.Date{}, nil
	}
	return timex.ParseDateIn(s, loc)
}

func fromDTO(d warrantyDTO, loc *time.Location) (models.Warranty, error) {
	if d.ID == "" {
		return models.Warranty{}, fmt.Errorf("warranty without id")
	}
	created, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return models.Warranty{}, fmt.Errorf("warranty %s: createdAt: %w", d.ID, err)
	}
	purchase, err := parseDate(d.PurchaseDate, loc)
	if err != nil {
		return models.Warranty{}, fmt.Errorf("warranty %s: purchaseDate: %w", d.ID, err)
	}
	expiry, err := parseDate(d.ExpiryDate, loc)
	if err != nil {
		return models.Warranty{}, fmt.Errorf("warranty %s: expiryDate: %w", d.ID, err)
	}
	w := models.Warranty{
		ID:             d.ID,
		ProductName:    d.ProductName,
		Brand:          d.Brand,
		Category:       d.Category,
		PurchaseDate:   purchase,
		WarrantyPeriod: d.WarrantyPeriod,
		ExpiryDate:     expiry,
		ReceiptImage:   d.ReceiptImage,
		Notes:          d.Notes,
		CreatedAt:      created.UTC(),
	}
	if w.ExpiryDate.IsZero() && !w.PurchaseDate.IsZero() {
		w.ExpiryDate = models.ComputeExpiry(w.PurchaseDate, w.WarrantyPeriod)
	}
	if d.Price != nil {
		p, err := decimal.NewFromString(d.Price.String())
		if err != nil {
			return models.Warranty{}, fmt.Errorf("warranty %s: price: %w", d.ID, err)
		}
		w.Price = &p
	}
	if c := d.ContactInfo; c != nil {
		w.ContactInfo = &models.ContactInfo{
			Phone:             c.Phone,
			Email:             c.Email,
			Website:           c.Website,
			AdditionalDetails: c.AdditionalDetails,
		}
	}
	return w, nil
}

// encode serializes the collection into the persisted envelope.
func encode(ws []models.Warranty) ([]byte, error) {
	env := envelope{
		State:   state{Warranties: make([]warrantyDTO, 0, len(ws))},
		Version: stateVersion,
	}
	for _, w := range ws {
		env.State.Warranties = append(env.State.Warranties, toDTO(w))
	}
	return json.Marshal(env)
}

// decode parses a persisted envelope. Dates written as timestamps are read
// in loc. Any structural problem, trailing data included, is reported as
// common.ErrMalformedState.
func decode(b []byte, loc *time.Location) ([]models.Warranty, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedState, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after envelope", common.ErrMalformedState)
	}
	if env.Version != stateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", common.ErrMalformedState, env.Version)
	}

	ws := make([]models.Warranty, 0, len(env.State.Warranties))
	seen := make(map[string]struct{}, len(env.State.Warranties))
	for _, d := range env.State.Warranties {
		w, err := fromDTO(d, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrMalformedState, err)
		}
		if _, dup := seen[w.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", common.ErrMalformedState, w.ID)
		}
		seen[w.ID] = struct{}{}
		ws = append(ws, w)
	}
	return ws, nil
}
