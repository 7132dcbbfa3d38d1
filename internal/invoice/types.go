package invoice

// ItemKind distinguishes ordinary billable rows from negative-valued
// adjustment rows (discounts). Validation rules differ by kind: billable
// items must have a positive unit amount, adjustments a negative one.
type ItemKind string

const (
	ItemKindBillable   ItemKind = "billable"
	ItemKindAdjustment ItemKind = "adjustment"
)

// Address is a postal address attached to a customer or the business.
type Address struct {
	Line1       string
	Line2       string
	City        string
	State       string
	PostalCode  string
	CountryCode string
}

// Party is a named, addressable entity referenced by an invoice: either the
// customer being billed or the business sending the invoice.
type Party struct {
	GivenName    string
	Surname      string
	Email        string
	BusinessName string
	Phone        string
	TaxID        string
	Website      string
	Address      *Address
}

// ItemTax describes an optional per-item tax rate.
type ItemTax struct {
	Name    string
	Percent float64
}

// ItemDiscount describes an optional per-item discount, either percentage
// or fixed amount.
type ItemDiscount struct {
	Percent float64
	Amount  float64
}

// LineItem is one row on an invoice. Insertion order in the draft is
// presentation order on the wire.
type LineItem struct {
	Name        string
	Description string
	Quantity    float64
	UnitAmount  float64
	Currency    string
	Kind        ItemKind
	Tax         *ItemTax
	Discount    *ItemDiscount
}

// ExtraAmount is an optional labeled custom amount added to the invoice
// total breakdown.
type ExtraAmount struct {
	Label  string
	Amount float64
}

// Draft is the canonical, pre-submission description of an invoice. It is
// built once by the normalizer and consumed read-only by the validator and
// the payload builder.
type Draft struct {
	Customer      Party
	Business      Party
	Items         []LineItem
	Currency      string
	Note          string
	Terms         string
	Memo          string
	Reference     string
	InvoiceNumber string
	IssueDate     string // YYYY-MM-DD, empty means today
	DueDate       string // YYYY-MM-DD, empty means issue date + term
	DueInDays     int    // 0 means the default term
	AllowPartial  bool
	AllowTip      bool
	CCRecipients  []string
	Extra         *ExtraAmount
}

// ValidationResult is the structured outcome of a validation pass: a
// validity flag plus the ordered list of human-readable violations.
type ValidationResult struct {
	Valid  bool
	Errors []string
}
