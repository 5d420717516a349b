package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/common"
	"github.com/dmitrijs2005/warrantykeeper/internal/filex"
	"github.com/dmitrijs2005/warrantykeeper/internal/timex"
	"github.com/shopspring/decimal"
)

var errAmbiguousID = errors.New("ambiguous id")

// Add collects a new warranty and stores it.
func (a *App) Add(ctx context.Context) error {
	in, err := a.inputWarranty()
	if err != nil {
		return err
	}
	id := a.store.Add(ctx, in)
	w, _ := a.store.GetByID(id)
	fmt.Fprintf(a.out, "Added %s, warranty expires %s\n", id, w.ExpiryDate)
	return nil
}

func (a *App) inputWarranty() (models.WarrantyInput, error) {
	r, w := a.reader, a.promptWriter()
	var in models.WarrantyInput
	var err error

	if in.ProductName, err = GetRequiredText(r, "Product name", w); err != nil {
		return in, err
	}
	if in.Brand, err = GetRequiredText(r, "Brand", w); err != nil {
		return in, err
	}
	if in.Category, err = GetRequiredText(r, "Category ("+strings.Join(models.Categories, ", ")+")", w); err != nil {
		return in, err
	}
	if in.PurchaseDate, err = GetDate(r, "Purchase date", w); err != nil {
		return in, err
	}
	if in.WarrantyPeriod, err = GetMonths(r, "Warranty period in months", w); err != nil {
		return in, err
	}
	if in.Price, err = GetPrice(r, "Price", w); err != nil {
		return in, err
	}
	if in.ReceiptImage, err = a.inputReceipt("Receipt image path"); err != nil {
		return in, err
	}
	notes, err := GetMultiline(r, "Notes (optional)", w)
	if err != nil {
		return in, err
	}
	if notes != "" {
		in.Notes = &notes
	}
	if in.ContactPhone, err = GetOptionalText(r, "Support phone", w); err != nil {
		return in, err
	}
	if in.ContactEmail, err = GetOptionalText(r, "Support email", w); err != nil {
		return in, err
	}
	if in.ContactWebsite, err = GetOptionalText(r, "Support website", w); err != nil {
		return in, err
	}
	if in.ContactDetails, err = GetOptionalText(r, "Additional contact details", w); err != nil {
		return in, err
	}
	return in, nil
}

// inputReceipt asks for an image path and embeds the file as a data URL.
// An empty answer means no receipt.
func (a *App) inputReceipt(prompt string) (*string, error) {
	return askUntil(a.reader, prompt+" (optional)", a.promptWriter(), func(path string) (*string, error) {
		if path == "" {
			return nil, nil
		}
		url, err := filex.ImageDataURL(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		return &url, nil
	})
}

// Edit walks through the fields of one warranty. An empty answer keeps the
// current value and "-" clears an optional one.
func (a *App) Edit(ctx context.Context, args []string) error {
	cur, err := a.resolve(args, "edit")
	if err != nil {
		return err
	}
	patch, err := a.inputPatch(cur)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing changed")
		return nil
	}
	if !a.store.Update(ctx, cur.ID, patch) {
		return fmt.Errorf("warranty %s: %w", cur.ID, common.ErrNotFound)
	}
	w, _ := a.store.GetByID(cur.ID)
	fmt.Fprintf(a.out, "Updated %s, warranty expires %s\n", w.ID, w.ExpiryDate)
	return nil
}

func (a *App) inputPatch(cur models.Warranty) (models.WarrantyPatch, error) {
	var p models.WarrantyPatch
	var err error

	if p.ProductName, err = a.editText("Product name", cur.ProductName); err != nil {
		return p, err
	}
	if p.Brand, err = a.editText("Brand", cur.Brand); err != nil {
		return p, err
	}
	if p.Category, err = a.editText("Category", cur.Category); err != nil {
		return p, err
	}
	if p.PurchaseDate, err = editValue(a, "Purchase date", cur.PurchaseDate, timex.Date.String, parseDate); err != nil {
		return p, err
	}
	if p.WarrantyPeriod, err = editValue(a, "Warranty period in months", cur.WarrantyPeriod, func(n int) string { return fmt.Sprint(n) }, parseMonths); err != nil {
		return p, err
	}
	if p.Price, err = a.editPrice(cur.Price); err != nil {
		return p, err
	}
	if p.ReceiptImage, err = a.editReceipt(cur.ReceiptImage); err != nil {
		return p, err
	}
	if p.Notes, err = a.editOptional("Notes", cur.Notes); err != nil {
		return p, err
	}
	if p.ContactInfo, err = a.editContact(cur.ContactInfo); err != nil {
		return p, err
	}
	return p, nil
}

func (a *App) editText(prompt, cur string) (models.Field[string], error) {
	s, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s]", prompt, cur), a.promptWriter())
	if err != nil || s == "" || s == cur {
		return models.Field[string]{}, err
	}
	return models.Set(s), nil
}

// editValue asks for a replacement of a required value, keeping cur on an
// empty answer.
func editValue[T comparable](a *App, prompt string, cur T, format func(T) string, parse func(string) (T, error)) (models.Field[T], error) {
	var unchanged bool
	v, err := askUntil(a.reader, fmt.Sprintf("%s [%s]", prompt, format(cur)), a.promptWriter(), func(s string) (T, error) {
		if s == "" {
			unchanged = true
			return cur, nil
		}
		return parse(s)
	})
	if err != nil || unchanged || v == cur {
		return models.Field[T]{}, err
	}
	return models.Set(v), nil
}

func (a *App) editOptional(prompt string, cur *string) (models.Field[*string], error) {
	s, err := GetSimpleText(a.reader, fmt.Sprintf("%s [%s] ('-' clears)", prompt, optional(cur)), a.promptWriter())
	switch {
	case err != nil || s == "":
		return models.Field[*string]{}, err
	case s == clearToken:
		if cur == nil {
			return models.Field[*string]{}, nil
		}
		return models.Clear[string](), nil
	}
	return models.Set(&s), nil
}

func (a *App) editPrice(cur *decimal.Decimal) (models.Field[*decimal.Decimal], error) {
	var keep, clear bool
	p, err := askUntil(a.reader, fmt.Sprintf("Price [%s] ('-' clears)", formatPrice(cur)), a.promptWriter(), func(s string) (*decimal.Decimal, error) {
		switch s {
		case "":
			keep = true
			return nil, nil
		case clearToken:
			clear = true
			return nil, nil
		}
		return parsePrice(s)
	})
	switch {
	case err != nil || keep:
		return models.Field[*decimal.Decimal]{}, err
	case clear:
		if cur == nil {
			return models.Field[*decimal.Decimal]{}, nil
		}
		return models.Clear[decimal.Decimal](), nil
	}
	return models.Set(p), nil
}

func (a *App) editReceipt(cur *string) (models.Field[*string], error) {
	current := "none"
	if cur != nil {
		current = "attached"
	}
	s, err := GetSimpleText(a.reader, fmt.Sprintf("Receipt image path [%s] ('-' removes)", current), a.promptWriter())
	switch {
	case err != nil || s == "":
		return models.Field[*string]{}, err
	case s == clearToken:
		if cur == nil {
			return models.Field[*string]{}, nil
		}
		return models.Clear[string](), nil
	}
	url, err := filex.ImageDataURL(s)
	if err != nil {
		return models.Field[*string]{}, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return models.Set(&url), nil
}

// editContact replaces the contact info as a whole when the user asks to.
func (a *App) editContact(cur *models.ContactInfo) (models.Field[*models.ContactInfo], error) {
	ok, err := GetConfirm(a.reader, "Replace contact info ("+formatContact(cur)+")?", a.promptWriter())
	if err != nil || !ok {
		return models.Field[*models.ContactInfo]{}, err
	}

	var in models.WarrantyInput
	r, w := a.reader, a.promptWriter()
	if in.ContactPhone, err = GetOptionalText(r, "Support phone", w); err != nil {
		return models.Field[*models.ContactInfo]{}, err
	}
	if in.ContactEmail, err = GetOptionalText(r, "Support email", w); err != nil {
		return models.Field[*models.ContactInfo]{}, err
	}
	if in.ContactWebsite, err = GetOptionalText(r, "Support website", w); err != nil {
		return models.Field[*models.ContactInfo]{}, err
	}
	if in.ContactDetails, err = GetOptionalText(r, "Additional contact details", w); err != nil {
		return models.Field[*models.ContactInfo]{}, err
	}
	return models.Set(in.Contact()), nil
}

// Delete removes one warranty. Interactive sessions are asked to confirm.
func (a *App) Delete(ctx context.Context, args []string) error {
	w, err := a.resolve(args, "delete")
	if err != nil {
		return err
	}
	if a.interactive {
		ok, err := GetConfirm(a.reader, fmt.Sprintf("Delete %s (%s)?", w.ProductName, w.ID), a.out)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "Cancelled")
			return nil
		}
	}
	if !a.store.Delete(ctx, w.ID) {
		return fmt.Errorf("warranty %s: %w", w.ID, common.ErrNotFound)
	}
	fmt.Fprintf(a.out, "Deleted %s\n", w.ID)
	return nil
}

// Show prints every field of one warranty.
func (a *App) Show(ctx context.Context, args []string) error {
	w, err := a.resolve(args, "show")
	if err != nil {
		return err
	}
	renderDetails(a.out, w, a.store.Now(), a.store.Location())
	return nil
}

// resolve finds the warranty named by args[0], which may be a unique
// prefix of its id.
func (a *App) resolve(args []string, cmd string) (models.Warranty, error) {
	if len(args) == 0 {
		return models.Warranty{}, fmt.Errorf("usage: %s <id>", cmd)
	}
	if w, ok := a.store.GetByID(args[0]); ok {
		return w, nil
	}

	var found []models.Warranty
	for _, w := range a.store.All() {
		if strings.HasPrefix(w.ID, args[0]) {
			found = append(found, w)
		}
	}
	switch len(found) {
	case 0:
		return models.Warranty{}, fmt.Errorf("warranty %s: %w", args[0], common.ErrNotFound)
	case 1:
		return found[0], nil
	}
	return models.Warranty{}, fmt.Errorf("%w: %s matches %d warranties", errAmbiguousID, args[0], len(found))
}
