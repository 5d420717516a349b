package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/warrantykeeper/internal/client/models"
	"github.com/dmitrijs2005/warrantykeeper/internal/client/views"
	"github.com/shopspring/decimal"
)

func renderTable(w io.Writer, ws []models.Warranty, now time.Time, loc *time.Location) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tBRAND\tCATEGORY\tEXPIRES\tSTATUS\tDAYS LEFT")
	for _, x := range ws {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			x.ID, x.ProductName, x.Brand, x.Category, x.ExpiryDate,
			views.StatusOf(x, now, loc), views.DaysRemaining(x, now, loc))
	}
	_ = tw.Flush()
}

func renderDetails(w io.Writer, x models.Warranty, now time.Time, loc *time.Location) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(k, v string) { fmt.Fprintf(tw, "%s:\t%s\n", k, v) }

	row("ID", x.ID)
	row("Product", x.ProductName)
	row("Brand", x.Brand)
	row("Category", x.Category)
	row("Purchased", x.PurchaseDate.String())
	row("Period", fmt.Sprintf("%d months", x.WarrantyPeriod))
	row("Expires", x.ExpiryDate.String())
	row("Status", fmt.Sprintf("%s (%d days left)", views.StatusOf(x, now, loc), views.DaysRemaining(x, now, loc)))
	row("Price", formatPrice(x.Price))
	row("Receipt", formatReceipt(x.ReceiptImage))
	row("Notes", optional(x.Notes))
	row("Contact", formatContact(x.ContactInfo))
	row("Added", x.CreatedAt.In(loc).Format(time.DateTime))
	_ = tw.Flush()
}

func renderSummary(w io.Writer, s views.Summary, days int) {
	fmt.Fprintf(w, "Total warranties:   %d\n", s.Total)
	fmt.Fprintf(w, "Active:             %d\n", s.Active)
	fmt.Fprintf(w, "Expiring (%3d d):   %d\n", days, s.ExpiringSoon)
	fmt.Fprintf(w, "Expired:            %d\n", s.Expired)
	fmt.Fprintf(w, "Warranty health:    %.0f%%\n", s.Health)
}

func optional(s *string) string {
	if s == nil {
		return "none"
	}
	return *s
}

func formatPrice(p *decimal.Decimal) string {
	if p == nil {
		return "none"
	}
	return "$" + p.StringFixed(2)
}

// formatReceipt shows the media type and size of an embedded image instead
// of the data URL itself.
func formatReceipt(r *string) string {
	if r == nil {
		return "none"
	}
	meta, data, ok := strings.Cut(strings.TrimPrefix(*r, "data:"), ",")
	if !ok {
		return fmt.Sprintf("attached (%d bytes)", len(*r))
	}
	mime, _, _ := strings.Cut(meta, ";")
	return fmt.Sprintf("%s, %d bytes encoded", mime, len(data))
}

func formatContact(c *models.ContactInfo) string {
	if c == nil || c.IsEmpty() {
		return "none"
	}
	var parts []string
	add := func(label string, v *string) {
		if v != nil {
			parts = append(parts, label+" "+*v)
		}
	}
	add("phone", c.Phone)
	add("email", c.Email)
	add("web", c.Website)
	add("note", c.AdditionalDetails)
	return strings.Join(parts, "; ")
}
