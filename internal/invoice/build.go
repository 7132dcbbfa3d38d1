package invoice

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	// DefaultDueInDays is the payment term applied when the draft does not
	// override it.
	DefaultDueInDays = 3

	termTypeDueOnDate = "DUE_ON_DATE_SPECIFIED"
	dateLayout        = "2006-01-02"

	// Country fallbacks applied when a source address lacks one. The
	// recipient side always falls back to US; the business side falls back
	// to the configured business country that flows in on the draft.
	defaultRecipientCountry = "US"

	// Phone country calling code used for all formatted numbers.
	phoneCountryCallingCode = "1"

	// Every line bills per unit of quantity; hours and flat amounts are
	// not modeled.
	unitOfMeasureQuantity = "QUANTITY"
)

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// Builder transforms a Draft into the wire Payload. It performs no I/O and
// no validation. Wall clock and randomness are injectable so generated
// invoice numbers and default dates are deterministic under test.
type Builder struct {
	now  func() time.Time
	intn func(int) int
}

// NewBuilder creates a Builder using the real clock and math/rand by
// default.
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{
		now:  time.Now,
		intn: rand.Intn,
	}
	for _, option := range options {
		option(b)
	}
	return b
}

// WithClock replaces the wall-clock source.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// WithRandom replaces the bounded random integer source.
func WithRandom(intn func(int) int) BuilderOption {
	return func(b *Builder) {
		b.intn = intn
	}
}

// Build assembles the wire payload from a canonical draft. The draft is not
// mutated.
func (b *Builder) Build(d *Draft) *Payload {
	issueDate := d.IssueDate
	if issueDate == "" {
		issueDate = b.now().Format(dateLayout)
	}

	payload := &Payload{
		Detail: Detail{
			InvoiceNumber: b.invoiceNumber(d),
			Reference:     d.Reference,
			InvoiceDate:   issueDate,
			CurrencyCode:  d.Currency,
			Note:          d.Note,
			Term:          d.Terms,
			Memo:          d.Memo,
			PaymentTerm: &PaymentTerm{
				TermType: termTypeDueOnDate,
				DueDate:  b.dueDate(d, issueDate),
			},
		},
		Invoicer:          buildInvoicer(d.Business),
		PrimaryRecipients: []Recipient{{BillingInfo: buildBillingInfo(d.Customer)}},
		Items:             buildItems(d.Items),
		Configuration: Configuration{
			PartialPayment: &PartialPayment{AllowPartialPayment: d.AllowPartial},
			AllowTip:       d.AllowTip,
		},
	}

	if d.Extra != nil {
		payload.Amount = &AmountSummary{
			Breakdown: &Breakdown{
				Custom: &CustomAmount{
					Label:  d.Extra.Label,
					Amount: Money{CurrencyCode: d.Currency, Value: FormatAmount(d.Extra.Amount)},
				},
			},
		}
	}

	return payload
}

// invoiceNumber uses the draft's number verbatim when present, otherwise
// combines the current time's trailing digits with a zero-padded 3-digit
// random suffix. Uniqueness is not guaranteed; the remote service is the
// source of truth for collisions.
func (b *Builder) invoiceNumber(d *Draft) string {
	if d.InvoiceNumber != "" {
		return d.InvoiceNumber
	}
	tail := b.now().UnixMilli() % 1_000_000
	return fmt.Sprintf("INV-%06d%03d", tail, b.intn(1000))
}

func (b *Builder) dueDate(d *Draft, issueDate string) string {
	if d.DueDate != "" {
		return d.DueDate
	}

	days := d.DueInDays
	if days <= 0 {
		days = DefaultDueInDays
	}

	issued, err := time.Parse(dateLayout, issueDate)
	if err != nil {
		issued = b.now()
	}
	return issued.AddDate(0, 0, days).Format(dateLayout)
}

func buildInvoicer(biz Party) Invoicer {
	inv := Invoicer{
		BusinessName: biz.BusinessName,
		EmailAddress: biz.Email,
		Website:      biz.Website,
		TaxID:        biz.TaxID,
	}
	if biz.GivenName != "" || biz.Surname != "" {
		inv.Name = &Name{GivenName: biz.GivenName, Surname: biz.Surname}
	}
	if biz.Address != nil {
		inv.Address = buildAddress(biz.Address, biz.Address.CountryCode)
	}
	if phone, ok := formatPhone(biz.Phone); ok {
		inv.Phones = []Phone{phone}
	}
	return inv
}

func buildBillingInfo(customer Party) BillingInfo {
	info := BillingInfo{
		BusinessName: customer.BusinessName,
		EmailAddress: customer.Email,
	}
	if customer.GivenName != "" || customer.Surname != "" {
		info.Name = &Name{GivenName: customer.GivenName, Surname: customer.Surname}
	}
	if customer.Address != nil {
		info.Address = buildAddress(customer.Address, defaultRecipientCountry)
	}
	if phone, ok := formatPhone(customer.Phone); ok {
		info.Phones = []Phone{phone}
	}
	return info
}

func buildAddress(addr *Address, fallbackCountry string) *PostalAddress {
	country := addr.CountryCode
	if country == "" {
		country = fallbackCountry
	}
	if country == "" {
		country = defaultRecipientCountry
	}
	return &PostalAddress{
		AddressLine1: addr.Line1,
		AddressLine2: addr.Line2,
		AdminArea2:   addr.City,
		AdminArea1:   addr.State,
		PostalCode:   addr.PostalCode,
		CountryCode:  country,
	}
}

func buildItems(items []LineItem) []Item {
	wire := make([]Item, 0, len(items))
	for _, item := range items {
		w := Item{
			Name:          item.Name,
			Description:   item.Description,
			Quantity:      FormatQuantity(item.Quantity),
			UnitAmount:    Money{CurrencyCode: item.Currency, Value: FormatAmount(item.UnitAmount)},
			UnitOfMeasure: unitOfMeasureQuantity,
		}
		if item.Tax != nil {
			w.Tax = &ItemTaxWire{
				Name:    item.Tax.Name,
				Percent: FormatAmount(item.Tax.Percent),
			}
		}
		if item.Discount != nil {
			w.Discount = buildItemDiscount(item.Discount, item.Currency)
		}
		wire = append(wire, w)
	}
	return wire
}

func buildItemDiscount(d *ItemDiscount, currency string) *ItemDiscountWire {
	wire := &ItemDiscountWire{}
	if d.Percent != 0 {
		wire.Percent = FormatAmount(d.Percent)
	}
	if d.Amount != 0 {
		wire.Amount = &Money{CurrencyCode: currency, Value: FormatAmount(d.Amount)}
	}
	return wire
}

// FormatAmount renders a monetary value with exactly 2 decimal digits.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// FormatQuantity renders a quantity as a plain, unlocalized number string.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// formatPhone strips every non-digit rune from the raw phone string. An
// empty result means no phone entry at all rather than an empty object.
func formatPhone(raw string) (Phone, bool) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return Phone{}, false
	}
	return Phone{
		CountryCode:    phoneCountryCallingCode,
		NationalNumber: digits.String(),
		PhoneType:      "MOBILE",
	}, true
}
