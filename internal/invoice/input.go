package invoice

// The loosely-typed input document accepted on the command line. Shape is
// decided once here into a closed set of variants; everything downstream is
// total over that set.

// AddressInput accepts the aliased address field names seen in the wild:
// line1/street and postalCode/zip are synonyms.
type AddressInput struct {
	Line1       string `json:"line1"`
	Street      string `json:"street"`
	Line2       string `json:"line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Zip         string `json:"zip"`
	CountryCode string `json:"countryCode"`
}

// CustomerInput is the raw customer block. Either firstName/lastName or a
// single combined name may be given.
type CustomerInput struct {
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Company   string        `json:"company"`
	TaxID     string        `json:"taxId"`
	Address   *AddressInput `json:"address"`
}

// ServiceInput is one raw service entry. Type must be one of the supported
// service tags; the remaining fields feed the description formatter.
type ServiceInput struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   float64   `json:"quantity"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	AnchorText string    `json:"anchorText"`
	Date       string    `json:"date"`
	Detail     string    `json:"detail"`
	Tax        *TaxInput `json:"tax"`
}

// TaxInput is an optional per-service tax line.
type TaxInput struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
}

// Document is the top-level input. Exactly one of Service / Services must be
// present; Customer may be omitted only in the services-only shape.
type Document struct {
	Customer      *CustomerInput `json:"customer"`
	Service       *ServiceInput  `json:"service"`
	Services      []ServiceInput `json:"services"`
	Currency      string         `json:"currency"`
	Discount      float64        `json:"discount"`
	Note          string         `json:"note"`
	Terms         string         `json:"terms"`
	Memo          string         `json:"memo"`
	Reference     string         `json:"reference"`
	InvoiceNumber string         `json:"invoiceNumber"`
	DueInDays     int            `json:"dueInDays"`
	AllowPartial  bool           `json:"allowPartial"`
	AllowTip      bool           `json:"allowTip"`
	CCRecipients  []string       `json:"ccRecipients"`
	ExtraLabel    string         `json:"extraLabel"`
	ExtraAmount   float64        `json:"extraAmount"`
}

// documentShape is the closed set of recognized input variants.
type documentShape int

const (
	shapeSingle       documentShape = iota // customer + one service
	shapeBulk                              // customer + services array
	shapeServicesOnly                      // services array, customer implied
)

// classify decides the document's shape exactly once. It is the only place
// that inspects field presence; every later step switches on the returned
// tag.
func classify(doc *Document) (documentShape, error) {
	switch {
	case doc.Service != nil && len(doc.Services) > 0:
		return 0, &InputShapeError{Reason: "both service and services are present"}
	case doc.Service != nil:
		if doc.Customer == nil {
			return 0, &InputShapeError{Reason: "single-service input requires a customer"}
		}
		return shapeSingle, nil
	case doc.Services != nil:
		if len(doc.Services) == 0 {
			return 0, &InputShapeError{Reason: "services array is empty"}
		}
		if doc.Customer == nil {
			return shapeServicesOnly, nil
		}
		return shapeBulk, nil
	default:
		return 0, &InputShapeError{Reason: "neither service nor services is present"}
	}
}
