package invoice

import "strings"

// Service type tags recognized on input.
const (
	ServiceTypeGuestPost     = "guest post"
	ServiceTypeLinkInsertion = "link insertion"
)

// Default display names per service type.
const (
	guestPostDisplayName     = "Guest Post Publication"
	linkInsertionDisplayName = "Link Insertion Service"
)

// DescribeService renders the multi-line item description for a service.
// Lines appear in a fixed order per service type and lines whose source
// field is empty are omitted. The result is trimmed of surrounding
// whitespace.
func DescribeService(svc ServiceInput) (string, error) {
	switch normalizeServiceType(svc.Type) {
	case ServiceTypeGuestPost:
		return describeGuestPost(svc), nil
	case ServiceTypeLinkInsertion:
		return describeLinkInsertion(svc), nil
	default:
		return "", &UnknownServiceTypeError{Type: svc.Type}
	}
}

func describeGuestPost(svc ServiceInput) string {
	lines := []string{displayName(svc, guestPostDisplayName)}
	lines = appendLine(lines, "Published URL: ", svc.URL)
	lines = appendLine(lines, "Article Title: ", svc.Title)
	lines = appendLine(lines, "", svc.Detail)
	lines = appendLine(lines, "Publication Date: ", svc.Date)
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func describeLinkInsertion(svc ServiceInput) string {
	lines := []string{linkInsertionDisplayName}
	lines = appendLine(lines, "Target URL: ", svc.URL)
	lines = appendLine(lines, "Anchor Text: ", svc.AnchorText)
	lines = appendLine(lines, "Insertion Date: ", svc.Date)
	lines = appendLine(lines, "", svc.Detail)
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func appendLine(lines []string, label, value string) []string {
	if strings.TrimSpace(value) == "" {
		return lines
	}
	return append(lines, label+value)
}

// displayName prefers the service's own name over the type default.
func displayName(svc ServiceInput, fallback string) string {
	if strings.TrimSpace(svc.Name) != "" {
		return svc.Name
	}
	return fallback
}

func normalizeServiceType(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
