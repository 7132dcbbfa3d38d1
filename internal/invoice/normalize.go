package invoice

import (
	"math"
	"strconv"
	"strings"

	"github.com/linkreach/invoicer/internal/config"
)

// Default customer identity substituted for services-only input.
const (
	defaultCustomerGivenName = "Valued"
	defaultCustomerSurname   = "Client"
	defaultCustomerEmail     = "client@linkreach.example.com"
)

// DefaultCurrency is used when the document does not name one.
const DefaultCurrency = "USD"

// Normalize turns a loosely-typed input document into a canonical Draft.
// The business identity comes from the passed configuration, never from
// ambient state. Shape and service-type errors propagate unmodified;
// field-level problems are left for the validator.
func Normalize(doc *Document, biz config.Business) (*Draft, error) {
	shape, err := classify(doc)
	if err != nil {
		return nil, err
	}

	var customer Party
	var services []ServiceInput

	switch shape {
	case shapeSingle:
		customer = normalizeCustomer(doc.Customer)
		services = []ServiceInput{*doc.Service}
	case shapeBulk:
		customer = normalizeCustomer(doc.Customer)
		services = doc.Services
	case shapeServicesOnly:
		customer = Party{
			GivenName: defaultCustomerGivenName,
			Surname:   defaultCustomerSurname,
			Email:     defaultCustomerEmail,
		}
		services = doc.Services
	}

	currency := doc.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	items, err := normalizeItems(services, currency)
	if err != nil {
		return nil, err
	}

	if doc.Discount > 0 {
		items = append(items, LineItem{
			Name:       "Discount",
			Quantity:   1,
			UnitAmount: -math.Abs(doc.Discount),
			Currency:   currency,
			Kind:       ItemKindAdjustment,
		})
	}

	draft := &Draft{
		Customer:      customer,
		Business:      businessParty(biz),
		Items:         items,
		Currency:      currency,
		Note:          doc.Note,
		Terms:         doc.Terms,
		Memo:          doc.Memo,
		Reference:     doc.Reference,
		InvoiceNumber: doc.InvoiceNumber,
		DueInDays:     doc.DueInDays,
		AllowPartial:  doc.AllowPartial,
		AllowTip:      doc.AllowTip,
		CCRecipients:  doc.CCRecipients,
	}

	if doc.ExtraAmount != 0 {
		label := doc.ExtraLabel
		if label == "" {
			label = "Additional charge"
		}
		draft.Extra = &ExtraAmount{Label: label, Amount: doc.ExtraAmount}
	}

	return draft, nil
}

func normalizeItems(services []ServiceInput, currency string) ([]LineItem, error) {
	items := make([]LineItem, 0, len(services))
	multi := len(services) > 1

	for i, svc := range services {
		description, err := DescribeService(svc)
		if err != nil {
			return nil, err
		}

		name := itemBaseName(svc)
		if multi {
			name = name + " #" + strconv.Itoa(i+1)
		}

		quantity := svc.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		item := LineItem{
			Name:        name,
			Description: description,
			Quantity:    quantity,
			UnitAmount:  svc.Price,
			Currency:    currency,
			Kind:        ItemKindBillable,
		}
		if svc.Tax != nil {
			item.Tax = &ItemTax{Name: svc.Tax.Name, Percent: svc.Tax.Percent}
		}
		items = append(items, item)
	}

	return items, nil
}

// itemBaseName returns the display name for a service. Unknown types are
// caught earlier by DescribeService, so the default branch only needs a
// neutral fallback.
func itemBaseName(svc ServiceInput) string {
	switch normalizeServiceType(svc.Type) {
	case ServiceTypeLinkInsertion:
		return displayName(svc, linkInsertionDisplayName)
	default:
		return displayName(svc, guestPostDisplayName)
	}
}

func normalizeCustomer(in *CustomerInput) Party {
	given, surname := splitName(in)
	return Party{
		GivenName:    given,
		Surname:      surname,
		Email:        in.Email,
		BusinessName: in.Company,
		Phone:        in.Phone,
		TaxID:        in.TaxID,
		Address:      normalizeAddress(in.Address),
	}
}

// splitName prefers explicit given/family fields. When only a combined name
// is present it splits on the first space: first token becomes the given
// name, the rest the surname; with no space the surname stays empty.
func splitName(in *CustomerInput) (string, string) {
	if in.FirstName != "" || in.LastName != "" {
		return in.FirstName, in.LastName
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", ""
	}

	idx := strings.Index(name, " ")
	if idx < 0 {
		return name, ""
	}
	return name[:idx], strings.TrimSpace(name[idx+1:])
}

// normalizeAddress resolves the line1/street and postalCode/zip aliases. A
// missing address stays absent rather than becoming an empty-field address.
func normalizeAddress(in *AddressInput) *Address {
	if in == nil {
		return nil
	}

	line1 := in.Line1
	if line1 == "" {
		line1 = in.Street
	}
	postal := in.PostalCode
	if postal == "" {
		postal = in.Zip
	}

	return &Address{
		Line1:       line1,
		Line2:       in.Line2,
		City:        in.City,
		State:       in.State,
		PostalCode:  postal,
		CountryCode: strings.ToUpper(strings.TrimSpace(in.CountryCode)),
	}
}

func businessParty(biz config.Business) Party {
	var addr *Address
	if biz.AddressLine1 != "" || biz.City != "" || biz.PostalCode != "" {
		addr = &Address{
			Line1:       biz.AddressLine1,
			City:        biz.City,
			State:       biz.State,
			PostalCode:  biz.PostalCode,
			CountryCode: biz.CountryCode,
		}
	}

	return Party{
		BusinessName: biz.Name,
		Email:        biz.Email,
		Phone:        biz.Phone,
		Website:      biz.Website,
		Address:      addr,
	}
}
