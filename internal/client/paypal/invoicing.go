package paypal

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Invoicing v2 endpoint paths.
const InvoicesPath = "/v2/invoicing/invoices"

// InvoicePath returns the resource path for one invoice.
func InvoicePath(id string) string {
	return fmt.Sprintf("%s/%s", InvoicesPath, url.PathEscape(id))
}

// SendPath returns the send-notification path for one invoice.
func SendPath(id string) string {
	return InvoicePath(id) + "/send"
}

// CancelPath returns the cancel path for one invoice.
func CancelPath(id string) string {
	return InvoicePath(id) + "/cancel"
}

// ListPath assembles the list endpoint with pagination query parameters.
func ListPath(page, pageSize int, totalRequired bool) string {
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("page_size", fmt.Sprintf("%d", pageSize))
	if totalRequired {
		q.Set("total_required", "true")
	}
	return InvoicesPath + "?" + q.Encode()
}

// ExtractInvoiceID pulls the invoice identifier from a resource href of the
// form .../v2/invoicing/invoices/{id}. Returns the empty string when the
// href has no path segments.
func ExtractInvoiceID(href string) string {
	trimmed := strings.TrimSuffix(href, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return ""
	}
	return trimmed[idx+1:]
}

// decodeJSON decodes a JSON body, tolerating empty responses such as the
// 202 returned by the send endpoint.
func decodeJSON(r io.Reader, target *map[string]interface{}) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}
