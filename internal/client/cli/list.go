package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
)

// List prints all, active or expired warranties.
func (a *App) List(ctx context.Context, args []string) error {
	filter := "all"
	if len(args) > 0 {
		filter = args[0]
	}

	var ws []models.Warranty
	switch filter {
	case "all":
		ws = a.store.All()
	case "active":
		ws = a.store.ActiveWarranties()
	case "expired":
		ws = a.store.ExpiredWarranties()
	default:
		return fmt.Errorf("usage: list [all|active|expired]")
	}
	a.renderList(ws, "No warranties found")
	return nil
}

// Search lists warranties whose product, brand or notes contain the text.
func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		q, err := GetSimpleText(a.reader, "Search for", a.promptWriter())
		if err != nil {
			return err
		}
		query = q
	}
	a.renderList(a.store.SearchWarranties(query), fmt.Sprintf("Nothing matches %q", query))
	return nil
}

// Category lists the warranties of one category (exact match).
func (a *App) Category(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: category <name>")
	}
	name := strings.Join(args, " ")
	a.renderList(a.store.FilterByCategory(name), fmt.Sprintf("No warranties in %q", name))
	return nil
}

// Upcoming lists warranties expiring within the given number of days,
// the configured default when omitted.
func (a *App) Upcoming(ctx context.Context, args []string) error {
	days := a.config.UpcomingDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("usage: upcoming [days]")
		}
		days = n
	}
	a.renderList(a.store.UpcomingExpirations(days), fmt.Sprintf("Nothing expires in the next %d days", days))
	return nil
}

func (a *App) Expired(ctx context.Context) error {
	a.renderList(a.store.ExpiredWarranties(), "No expired warranties")
	return nil
}

// Summary prints the dashboard numbers.
func (a *App) Summary(ctx context.Context) error {
	renderSummary(a.out, a.store.Summary(a.config.UpcomingDays), a.config.UpcomingDays)
	return nil
}

// Categories prints the suggested categories with the number of stored
// warranties in each, followed by any other categories in use.
func (a *App) Categories(ctx context.Context) error {
	counts := map[string]int{}
	var extra []string
	for _, w := range a.store.All() {
		if counts[w.Category] == 0 && !models.IsSuggestedCategory(w.Category) {
			extra = append(extra, w.Category)
		}
		counts[w.Category]++
	}
	for _, c := range append(append([]string{}, models.Categories...), extra...) {
		fmt.Fprintf(a.out, "  %-12s %d\n", c, counts[c])
	}
	return nil
}

func (a *App) renderList(ws []models.Warranty, empty string) {
	if len(ws) == 0 {
		fmt.Fprintln(a.out, empty)
		return
	}
	renderTable(a.out, ws, a.store.Now(), a.store.Location())
}
