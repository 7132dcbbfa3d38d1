package invoice

// Wire types matching the PayPal Invoicing v2 invoice schema. Optional
// sub-objects are pointers so an absent tax or discount never serializes as
// an empty structure.

// Money is an amount rendered as a 2-decimal string with its currency.
type Money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// Name is the wire form of a person's name.
type Name struct {
	GivenName string `json:"given_name,omitempty"`
	Surname   string `json:"surname,omitempty"`
}

// PostalAddress is the wire form of an address.
type PostalAddress struct {
	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	AdminArea2   string `json:"admin_area_2,omitempty"` // city
	AdminArea1   string `json:"admin_area_1,omitempty"` // state / region
	PostalCode   string `json:"postal_code,omitempty"`
	CountryCode  string `json:"country_code"`
}

// Phone is a country-code / national-number pair.
type Phone struct {
	CountryCode    string `json:"country_code"`
	NationalNumber string `json:"national_number"`
	PhoneType      string `json:"phone_type,omitempty"`
}

// PaymentTerm fixes the due date. Only DUE_ON_DATE_SPECIFIED is modeled in
// this domain.
type PaymentTerm struct {
	TermType string `json:"term_type"`
	DueDate  string `json:"due_date"`
}

// Detail is the invoice header block.
type Detail struct {
	InvoiceNumber string       `json:"invoice_number"`
	Reference     string       `json:"reference,omitempty"`
	InvoiceDate   string       `json:"invoice_date"`
	CurrencyCode  string       `json:"currency_code"`
	Note          string       `json:"note,omitempty"`
	Term          string       `json:"term,omitempty"`
	Memo          string       `json:"memo,omitempty"`
	PaymentTerm   *PaymentTerm `json:"payment_term,omitempty"`
}

// Invoicer is the business identity block.
type Invoicer struct {
	Name         *Name          `json:"name,omitempty"`
	BusinessName string         `json:"business_name,omitempty"`
	Address      *PostalAddress `json:"address,omitempty"`
	EmailAddress string         `json:"email_address,omitempty"`
	Phones       []Phone        `json:"phones,omitempty"`
	Website      string         `json:"website,omitempty"`
	TaxID        string         `json:"tax_id,omitempty"`
}

// BillingInfo is the customer identity inside a recipient block.
type BillingInfo struct {
	Name         *Name          `json:"name,omitempty"`
	BusinessName string         `json:"business_name,omitempty"`
	Address      *PostalAddress `json:"address,omitempty"`
	EmailAddress string         `json:"email_address,omitempty"`
	Phones       []Phone        `json:"phones,omitempty"`
}

// Recipient wraps a billing info block in the primary_recipients array.
type Recipient struct {
	BillingInfo BillingInfo `json:"billing_info"`
}

// ItemTaxWire is the optional per-item tax sub-object.
type ItemTaxWire struct {
	Name    string `json:"name"`
	Percent string `json:"percent"`
}

// ItemDiscountWire is the optional per-item discount sub-object.
type ItemDiscountWire struct {
	Percent string `json:"percent,omitempty"`
	Amount  *Money `json:"amount,omitempty"`
}

// Item is one wire-form invoice row.
type Item struct {
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Quantity      string            `json:"quantity"`
	UnitAmount    Money             `json:"unit_amount"`
	Tax           *ItemTaxWire      `json:"tax,omitempty"`
	Discount      *ItemDiscountWire `json:"discount,omitempty"`
	UnitOfMeasure string            `json:"unit_of_measure,omitempty"`
}

// PartialPayment configures whether partial payments are accepted.
type PartialPayment struct {
	AllowPartialPayment bool `json:"allow_partial_payment"`
}

// Configuration is the invoice-level policy block.
type Configuration struct {
	PartialPayment             *PartialPayment `json:"partial_payment,omitempty"`
	AllowTip                   bool            `json:"allow_tip"`
	TaxCalculatedAfterDiscount bool            `json:"tax_calculated_after_discount"`
	TaxInclusive               bool            `json:"tax_inclusive"`
}

// CustomAmount is a labeled extra amount in the total breakdown.
type CustomAmount struct {
	Label  string `json:"label"`
	Amount Money  `json:"amount"`
}

// Breakdown carries optional extra amounts added to the computed total.
type Breakdown struct {
	Custom *CustomAmount `json:"custom,omitempty"`
}

// AmountSummary is included only when the draft carries a custom extra
// amount; the remote service recomputes all totals regardless.
type AmountSummary struct {
	Breakdown *Breakdown `json:"breakdown,omitempty"`
}

// Payload is the full wire-schema invoice sent to the remote service.
type Payload struct {
	Detail            Detail         `json:"detail"`
	Invoicer          Invoicer       `json:"invoicer"`
	PrimaryRecipients []Recipient    `json:"primary_recipients"`
	Items             []Item         `json:"items"`
	Configuration     Configuration  `json:"configuration"`
	Amount            *AmountSummary `json:"amount,omitempty"`
}
