package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/linkreach/invoicer/internal/client/paypal"
	"github.com/linkreach/invoicer/internal/config"
	"github.com/linkreach/invoicer/internal/invoice"
)

// DefaultSendDelay is the fixed wait between a successful create and the
// follow-up send, giving the remote side time to materialize the invoice.
const DefaultSendDelay = 2 * time.Second

// defaultCancelNote is used when no cancellation reason is given.
const defaultCancelNote = "This invoice has been cancelled."

// Transport is the opaque remote-call capability the orchestrator runs
// against. The concrete implementation lives in the paypal client package.
type Transport interface {
	AuthenticatedRequest(ctx context.Context, method, path string, body interface{}) (map[string]interface{}, error)
}

// Display formats a payload for human preview.
type Display interface {
	Render(p *invoice.Payload, missing []string) string
}

// Result is the normalized outcome of a create operation. No error ever
// escapes an orchestrator method; failures are reported through this record.
type Result struct {
	Success          bool   `json:"success"`
	ID               string `json:"id,omitempty"`
	InvoiceNumber    string `json:"invoice_number,omitempty"`
	Status           string `json:"status,omitempty"`
	InvoicerViewURL  string `json:"invoicer_view_url,omitempty"`
	RecipientViewURL string `json:"recipient_view_url,omitempty"`
	TotalAmount      string `json:"total_amount,omitempty"`
	Currency         string `json:"currency,omitempty"`
	Error            string `json:"error,omitempty"`
	Details          string `json:"details,omitempty"`
}

// PreviewResult carries the rendered preview plus the built payload for
// potential reuse by a following create.
type PreviewResult struct {
	Success  bool             `json:"success"`
	Rendered string           `json:"rendered,omitempty"`
	Payload  *invoice.Payload `json:"payload,omitempty"`
	Error    string           `json:"error,omitempty"`
	Details  string           `json:"details,omitempty"`
}

// SendResult is the normalized outcome of a send operation.
type SendResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

// CreateAndSendResult aggregates a create and the follow-up send. A send
// failure after a successful create is a partial success: the invoice
// exists remotely and sending can be retried by hand.
type CreateAndSendResult struct {
	Create    Result `json:"create"`
	Sent      bool   `json:"sent"`
	SendError string `json:"send_error,omitempty"`
}

// ListResult is the normalized outcome of a list operation.
type ListResult struct {
	Success  bool                     `json:"success"`
	Invoices []map[string]interface{} `json:"invoices,omitempty"`
	Total    int                      `json:"total"`
	Error    string                   `json:"error,omitempty"`
	Details  string                   `json:"details,omitempty"`
}

// SendOptions controls the send notification. Nil flags take their
// defaults: recipients are notified, the invoicer is not.
type SendOptions struct {
	NotifyRecipient      *bool
	NotifyInvoicer       *bool
	Subject              string
	Note                 string
	AdditionalRecipients []string
}

// ListOptions controls list pagination.
type ListOptions struct {
	Page          int
	PageSize      int
	TotalRequired bool
}

// Option configures an InvoiceService.
type Option func(*InvoiceService)

// InvoiceService sequences normalize, validate, build and the remote calls
// for every user-facing invoice operation.
type InvoiceService struct {
	transport Transport
	builder   *invoice.Builder
	display   Display
	business  config.Business
	logger    *zap.Logger
	sendDelay time.Duration
}

// NewInvoiceService creates the orchestrator.
func NewInvoiceService(transport Transport, business config.Business, options ...Option) *InvoiceService {
	s := &InvoiceService{
		transport: transport,
		builder:   invoice.NewBuilder(),
		business:  business,
		logger:    zap.NewNop(),
		sendDelay: DefaultSendDelay,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// WithBuilder replaces the payload builder, letting tests freeze its clock
// and randomness.
func WithBuilder(b *invoice.Builder) Option {
	return func(s *InvoiceService) {
		s.builder = b
	}
}

// WithDisplay sets the preview renderer.
func WithDisplay(d Display) Option {
	return func(s *InvoiceService) {
		s.display = d
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *InvoiceService) {
		s.logger = logger
	}
}

// WithSendDelay overrides the create-and-send delay.
func WithSendDelay(d time.Duration) Option {
	return func(s *InvoiceService) {
		s.sendDelay = d
	}
}

// prepare runs the shared normalize → validate → build prefix. A failing
// validation is turned into a ValidationError here, before any network
// attempt can happen. The draft is returned alongside the payload because
// some of its fields, like the CC recipient list, apply to the send step
// rather than the created resource.
func (s *InvoiceService) prepare(doc *invoice.Document) (*invoice.Draft, *invoice.Payload, error) {
	draft, err := invoice.Normalize(doc, s.business)
	if err != nil {
		return nil, nil, err
	}

	if result := invoice.Validate(draft); !result.Valid {
		return nil, nil, &invoice.ValidationError{Messages: result.Errors}
	}

	return draft, s.builder.Build(draft), nil
}

// Preview validates and builds the payload and renders it for display. No
// network call is made.
func (s *InvoiceService) Preview(ctx context.Context, doc *invoice.Document) PreviewResult {
	_, payload, err := s.prepare(doc)
	if err != nil {
		return PreviewResult{Success: false, Error: "could not prepare invoice", Details: err.Error()}
	}

	rendered := ""
	if s.display != nil {
		rendered = s.display.Render(payload, s.missingBusinessInfo())
	}

	return PreviewResult{Success: true, Rendered: rendered, Payload: payload}
}

// Create validates, builds and submits the invoice. When the remote answers
// with only a location reference, one follow-up fetch resolves the full
// resource.
func (s *InvoiceService) Create(ctx context.Context, doc *invoice.Document) Result {
	_, payload, err := s.prepare(doc)
	if err != nil {
		return failureResult("could not prepare invoice", err)
	}
	return s.submit(ctx, payload)
}

// submit posts a prepared payload and normalizes the creation response.
func (s *InvoiceService) submit(ctx context.Context, payload *invoice.Payload) Result {
	resp, err := s.transport.AuthenticatedRequest(ctx, "POST", paypal.InvoicesPath, payload)
	if err != nil {
		return failureResult("failed to create invoice", err)
	}

	// A creation response may be just {"href": ...}; resolve it to the
	// full resource with one follow-up fetch.
	if stringAt(resp, "id") == "" {
		href := stringAt(resp, "href")
		id := paypal.ExtractInvoiceID(href)
		if id == "" {
			return failureResult("create response carried neither id nor href", fmt.Errorf("response: %v", resp))
		}
		resp, err = s.transport.AuthenticatedRequest(ctx, "GET", paypal.InvoicePath(id), nil)
		if err != nil {
			return failureResult("failed to fetch created invoice", err)
		}
	}

	result := Result{
		Success:          true,
		ID:               stringAt(resp, "id"),
		InvoiceNumber:    stringAt(resp, "detail", "invoice_number"),
		Status:           stringAt(resp, "status"),
		InvoicerViewURL:  stringAt(resp, "detail", "metadata", "invoicer_view_url"),
		RecipientViewURL: stringAt(resp, "detail", "metadata", "recipient_view_url"),
		TotalAmount:      stringAt(resp, "amount", "value"),
		Currency:         stringAt(resp, "amount", "currency_code"),
	}

	s.logger.Info("invoice created",
		zap.String("id", result.ID),
		zap.String("invoice_number", result.InvoiceNumber),
		zap.String("status", result.Status))

	return result
}

// Send asks the remote service to email the invoice.
func (s *InvoiceService) Send(ctx context.Context, invoiceID string, opts SendOptions) SendResult {
	if invoiceID == "" {
		return SendResult{Success: false, Error: "invoice id is required"}
	}

	subject := opts.Subject
	if subject == "" {
		subject = "You have received an invoice"
	}
	note := opts.Note
	if note == "" {
		note = "Thank you for your business. Please find your invoice attached."
	}

	body := map[string]interface{}{
		"send_to_recipient": boolOr(opts.NotifyRecipient, true),
		"send_to_invoicer":  boolOr(opts.NotifyInvoicer, false),
		"subject":           subject,
		"note":              note,
	}
	if len(opts.AdditionalRecipients) > 0 {
		body["additional_recipients"] = opts.AdditionalRecipients
	}

	if _, err := s.transport.AuthenticatedRequest(ctx, "POST", paypal.SendPath(invoiceID), body); err != nil {
		return SendResult{Success: false, Error: "failed to send invoice", Details: err.Error()}
	}

	s.logger.Info("invoice sent", zap.String("id", invoiceID))
	return SendResult{Success: true}
}

// CreateAndSend creates the invoice and, on success, waits a fixed delay
// before sending it. The delay accommodates eventual consistency on the
// remote side. CC recipients listed in the document are carried into the
// send unless explicit recipients were passed in.
func (s *InvoiceService) CreateAndSend(ctx context.Context, doc *invoice.Document, opts SendOptions) CreateAndSendResult {
	draft, payload, err := s.prepare(doc)
	if err != nil {
		return CreateAndSendResult{Create: failureResult("could not prepare invoice", err)}
	}

	if len(opts.AdditionalRecipients) == 0 {
		opts.AdditionalRecipients = draft.CCRecipients
	}

	created := s.submit(ctx, payload)
	if !created.Success {
		return CreateAndSendResult{Create: created}
	}

	time.Sleep(s.sendDelay)

	sent := s.Send(ctx, created.ID, opts)
	result := CreateAndSendResult{Create: created, Sent: sent.Success}
	if !sent.Success {
		result.SendError = sent.Error
		if sent.Details != "" {
			result.SendError = sent.Error + ": " + sent.Details
		}
	}
	return result
}

// List fetches a page of invoices.
func (s *InvoiceService) List(ctx context.Context, opts ListOptions) ListResult {
	page := opts.Page
	if page <= 0 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	resp, err := s.transport.AuthenticatedRequest(ctx, "GET", paypal.ListPath(page, pageSize, opts.TotalRequired), nil)
	if err != nil {
		return ListResult{Success: false, Error: "failed to list invoices", Details: err.Error()}
	}

	result := ListResult{Success: true}
	if items, ok := resp["items"].([]interface{}); ok {
		for _, item := range items {
			if m, ok := item.(map[string]interface{}); ok {
				result.Invoices = append(result.Invoices, m)
			}
		}
	}
	if total, ok := resp["total_items"].(float64); ok {
		result.Total = int(total)
	}
	return result
}

// Cancel cancels a sent invoice, notifying the recipient with the given
// reason.
func (s *InvoiceService) Cancel(ctx context.Context, invoiceID, reason string) SendResult {
	if invoiceID == "" {
		return SendResult{Success: false, Error: "invoice id is required"}
	}
	if reason == "" {
		reason = defaultCancelNote
	}

	body := map[string]interface{}{
		"subject":           "Invoice cancelled",
		"note":              reason,
		"send_to_recipient": true,
		"send_to_invoicer":  false,
	}

	if _, err := s.transport.AuthenticatedRequest(ctx, "POST", paypal.CancelPath(invoiceID), body); err != nil {
		return SendResult{Success: false, Error: "failed to cancel invoice", Details: err.Error()}
	}

	s.logger.Info("invoice cancelled", zap.String("id", invoiceID))
	return SendResult{Success: true}
}

// missingBusinessInfo lists business identity fields still at their empty
// defaults, for the preview renderer's fallback line.
func (s *InvoiceService) missingBusinessInfo() []string {
	var missing []string
	if s.business.Phone == "" {
		missing = append(missing, "phone")
	}
	if s.business.Website == "" {
		missing = append(missing, "website")
	}
	if s.business.AddressLine1 == "" {
		missing = append(missing, "address")
	}
	return missing
}

func failureResult(msg string, err error) Result {
	return Result{Success: false, Error: msg, Details: err.Error()}
}

func boolOr(b *bool, fallback bool) bool {
	if b == nil {
		return fallback
	}
	return *b
}

// stringAt walks nested maps along path and returns the string leaf, or ""
// when any step is missing or the wrong type.
func stringAt(m map[string]interface{}, path ...string) string {
	current := m
	for i, key := range path {
		value, ok := current[key]
		if !ok {
			return ""
		}
		if i == len(path)-1 {
			s, _ := value.(string)
			return s
		}
		next, ok := value.(map[string]interface{})
		if !ok {
			return ""
		}
		current = next
	}
	return ""
}
