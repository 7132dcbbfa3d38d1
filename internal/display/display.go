package display

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/linkreach/invoicer/internal/invoice"
)

// Renderer formats invoice payloads for console display. It never alters
// the payload it renders.
type Renderer struct{}

// NewRenderer creates a console renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render produces a human-readable summary of a payload for preview.
// missing lists business configuration fields that were left at their
// fallback values so the operator can fix the environment before sending.
func (r *Renderer) Render(p *invoice.Payload, missing []string) string {
	var b strings.Builder

	b.WriteString("Invoice Preview\n")
	b.WriteString("===============\n")
	fmt.Fprintf(&b, "Number:    %s\n", p.Detail.InvoiceNumber)
	fmt.Fprintf(&b, "Date:      %s\n", p.Detail.InvoiceDate)
	if p.Detail.PaymentTerm != nil {
		fmt.Fprintf(&b, "Due:       %s\n", p.Detail.PaymentTerm.DueDate)
	}
	fmt.Fprintf(&b, "Currency:  %s\n", p.Detail.CurrencyCode)
	if p.Detail.Reference != "" {
		fmt.Fprintf(&b, "Reference: %s\n", p.Detail.Reference)
	}

	b.WriteString("\nFrom: ")
	b.WriteString(invoicerLine(p.Invoicer))
	b.WriteString("\nTo:   ")
	b.WriteString(recipientLine(p.PrimaryRecipients))
	b.WriteString("\n\nItems\n-----\n")

	total := 0.0
	for _, item := range p.Items {
		qty, _ := strconv.ParseFloat(item.Quantity, 64)
		amount, _ := strconv.ParseFloat(item.UnitAmount.Value, 64)
		line := qty * amount
		total += line
		fmt.Fprintf(&b, "%-40s %6s x %10s = %10.2f %s\n",
			firstLine(item.Name), item.Quantity, item.UnitAmount.Value, line, item.UnitAmount.CurrencyCode)
	}

	fmt.Fprintf(&b, "\nTotal: %.2f %s\n", total, p.Detail.CurrencyCode)

	if p.Configuration.PartialPayment != nil && p.Configuration.PartialPayment.AllowPartialPayment {
		b.WriteString("Partial payments: allowed\n")
	}
	if p.Configuration.AllowTip {
		b.WriteString("Tips: allowed\n")
	}

	if len(missing) > 0 {
		b.WriteString("\nBusiness info missing: " + strings.Join(missing, ", ") + "\n")
	}

	return b.String()
}

func invoicerLine(inv invoice.Invoicer) string {
	parts := []string{}
	if inv.BusinessName != "" {
		parts = append(parts, inv.BusinessName)
	}
	if inv.EmailAddress != "" {
		parts = append(parts, "<"+inv.EmailAddress+">")
	}
	if len(parts) == 0 {
		return "(unset)"
	}
	return strings.Join(parts, " ")
}

func recipientLine(recipients []invoice.Recipient) string {
	if len(recipients) == 0 {
		return "(none)"
	}
	info := recipients[0].BillingInfo

	parts := []string{}
	if info.Name != nil {
		name := strings.TrimSpace(info.Name.GivenName + " " + info.Name.Surname)
		if name != "" {
			parts = append(parts, name)
		}
	}
	if info.BusinessName != "" {
		parts = append(parts, "("+info.BusinessName+")")
	}
	if info.EmailAddress != "" {
		parts = append(parts, "<"+info.EmailAddress+">")
	}
	if len(parts) == 0 {
		return "(unset)"
	}
	return strings.Join(parts, " ")
}

func firstLine(s string) string {
	if idx := strings.Index(s, "\n"); idx >= 0 {
		return s[:idx]
	}
	return s
}
