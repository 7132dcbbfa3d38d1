package invoice_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkreach/invoicer/internal/invoice"
)

// End-to-end pipeline scenarios: document → normalize → validate → build.

func TestPipeline_SingleGuestPost(t *testing.T) {
	doc := &invoice.Document{
		Customer: &invoice.CustomerInput{Email: "a@b.com", FirstName: "A", LastName: "B"},
		Service:  &invoice.ServiceInput{Type: "guest post", Price: 40, URL: "https://x.com/p"},
	}

	draft, err := invoice.Normalize(doc, testBusiness())
	require.NoError(t, err)

	result := invoice.Validate(draft)
	assert.True(t, result.Valid, "errors: %v", result.Errors)

	require.Len(t, draft.Items, 1)
	assert.Equal(t, "Guest Post Publication", draft.Items[0].Name)
	assert.Contains(t, draft.Items[0].Description, "Published URL: https://x.com/p")

	builder := frozenBuilder(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), 7)
	payload := builder.Build(draft)
	assert.Equal(t, "40.00", payload.Items[0].UnitAmount.Value)
}

func TestPipeline_BulkWithDefaultCustomer(t *testing.T) {
	doc := &invoice.Document{
		Services: []invoice.ServiceInput{
			{Type: "guest post", Price: 40},
			{Type: "guest post", Price: 40},
		},
	}

	draft, err := invoice.Normalize(doc, testBusiness())
	require.NoError(t, err)

	result := invoice.Validate(draft)
	assert.True(t, result.Valid, "errors: %v", result.Errors)

	builder := frozenBuilder(t, time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), 7)
	payload := builder.Build(draft)

	require.Len(t, payload.Items, 2)
	assert.Equal(t, "Guest Post Publication #1", payload.Items[0].Name)
	assert.Equal(t, "Guest Post Publication #2", payload.Items[1].Name)

	total := 0.0
	for _, item := range payload.Items {
		qty, err := strconv.ParseFloat(item.Quantity, 64)
		require.NoError(t, err)
		amount, err := strconv.ParseFloat(item.UnitAmount.Value, 64)
		require.NoError(t, err)
		total += qty * amount
	}
	assert.Equal(t, 80.0, total)
}

func TestPipeline_EmptyServicesFailsBeforeValidation(t *testing.T) {
	doc := &invoice.Document{Services: []invoice.ServiceInput{}}

	_, err := invoice.Normalize(doc, testBusiness())
	require.Error(t, err)

	var shapeErr *invoice.InputShapeError
	assert.ErrorAs(t, err, &shapeErr)
}

func TestISOTables(t *testing.T) {
	assert.True(t, invoice.IsValidCountryCode("US"))
	assert.True(t, invoice.IsValidCountryCode("GB"))
	assert.False(t, invoice.IsValidCountryCode("XX"))
	assert.False(t, invoice.IsValidCountryCode("us"))

	assert.True(t, invoice.IsValidCurrencyCode("USD"))
	assert.True(t, invoice.IsValidCurrencyCode("EUR"))
	assert.False(t, invoice.IsValidCurrencyCode("XYL"))
}
