package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/linkreach/invoicer/internal/client/paypal"
	"github.com/linkreach/invoicer/internal/config"
	"github.com/linkreach/invoicer/internal/invoice"
	"github.com/linkreach/invoicer/internal/service"
	"github.com/linkreach/invoicer/internal/service/mocks"
)

func testBusiness() config.Business {
	return config.Business{
		Name:        "LinkReach Media",
		Email:       "billing@linkreach.example.com",
		CountryCode: "US",
	}
}

func validDocument() *invoice.Document {
	return &invoice.Document{
		Customer: &invoice.CustomerInput{Email: "a@b.com", FirstName: "A", LastName: "B"},
		Service:  &invoice.ServiceInput{Type: "guest post", Price: 40, URL: "https://x.com/p"},
	}
}

func newService(t *testing.T, transport service.Transport) *service.InvoiceService {
	t.Helper()
	return service.NewInvoiceService(transport, testBusiness(),
		service.WithSendDelay(0),
		service.WithBuilder(invoice.NewBuilder(
			invoice.WithClock(func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }),
			invoice.WithRandom(func(int) int { return 7 }),
		)),
	)
}

func fullInvoiceResponse() map[string]interface{} {
	return map[string]interface{}{
		"id":     "INV2-AAAA",
		"status": "DRAFT",
		"detail": map[string]interface{}{
			"invoice_number": "INV-001",
			"metadata": map[string]interface{}{
				"invoicer_view_url":  "https://www.sandbox.paypal.com/invoice/details/INV2-AAAA",
				"recipient_view_url": "https://www.sandbox.paypal.com/invoice/p/INV2-AAAA",
			},
		},
		"amount": map[string]interface{}{
			"currency_code": "USD",
			"value":         "40.00",
		},
	}
}

func TestCreate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().
		AuthenticatedRequest(gomock.Any(), "POST", paypal.InvoicesPath, gomock.Any()).
		Return(fullInvoiceResponse(), nil)

	result := newService(t, transport).Create(context.Background(), validDocument())

	assert.True(t, result.Success)
	assert.Equal(t, "INV2-AAAA", result.ID)
	assert.Equal(t, "INV-001", result.InvoiceNumber)
	assert.Equal(t, "DRAFT", result.Status)
	assert.Equal(t, "40.00", result.TotalAmount)
	assert.Equal(t, "USD", result.Currency)
	assert.Contains(t, result.RecipientViewURL, "/p/INV2-AAAA")
}

func TestCreate_HrefOnlyResponseTriggersFollowUpFetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	gomock.InOrder(
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "POST", paypal.InvoicesPath, gomock.Any()).
			Return(map[string]interface{}{
				"href": "https://api-m.sandbox.paypal.com/v2/invoicing/invoices/INV2-BBBB",
			}, nil),
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "GET", paypal.InvoicePath("INV2-BBBB"), nil).
			Return(fullInvoiceResponse(), nil),
	)

	result := newService(t, transport).Create(context.Background(), validDocument())
	assert.True(t, result.Success)
	assert.Equal(t, "INV2-AAAA", result.ID)
}

func TestCreate_ValidationFailureNeverReachesTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: any transport call fails the test.
	transport := mocks.NewMockTransport(ctrl)

	doc := validDocument()
	doc.Customer.Email = "not-an-email"

	result := newService(t, transport).Create(context.Background(), doc)

	assert.False(t, result.Success)
	assert.Equal(t, "could not prepare invoice", result.Error)
	assert.Contains(t, result.Details, "not a valid email address")
}

func TestCreate_InputShapeFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)

	result := newService(t, transport).Create(context.Background(), &invoice.Document{})

	assert.False(t, result.Success)
	assert.Contains(t, result.Details, "invalid input shape")
}

func TestCreate_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().
		AuthenticatedRequest(gomock.Any(), "POST", paypal.InvoicesPath, gomock.Any()).
		Return(nil, &paypal.TransportError{StatusCode: 422, Body: `{"name":"UNPROCESSABLE_ENTITY"}`})

	result := newService(t, transport).Create(context.Background(), validDocument())

	assert.False(t, result.Success)
	assert.Equal(t, "failed to create invoice", result.Error)
	assert.Contains(t, result.Details, "422")
}

func TestSend_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().
		AuthenticatedRequest(gomock.Any(), "POST", paypal.SendPath("INV2-AAAA"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, body interface{}) (map[string]interface{}, error) {
			m, ok := body.(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, true, m["send_to_recipient"])
			assert.Equal(t, false, m["send_to_invoicer"])
			assert.NotEmpty(t, m["subject"])
			assert.NotEmpty(t, m["note"])
			assert.NotContains(t, m, "additional_recipients")
			return map[string]interface{}{}, nil
		})

	result := newService(t, transport).Send(context.Background(), "INV2-AAAA", service.SendOptions{})
	assert.True(t, result.Success)
}

func TestSend_ExplicitFlagsAndRecipients(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	off := false
	on := true

	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().
		AuthenticatedRequest(gomock.Any(), "POST", paypal.SendPath("INV2-AAAA"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, body interface{}) (map[string]interface{}, error) {
			m := body.(map[string]interface{})
			assert.Equal(t, false, m["send_to_recipient"])
			assert.Equal(t, true, m["send_to_invoicer"])
			assert.Equal(t, []string{"cc@example.com"}, m["additional_recipients"])
			return map[string]interface{}{}, nil
		})

	result := newService(t, transport).Send(context.Background(), "INV2-AAAA", service.SendOptions{
		NotifyRecipient:      &off,
		NotifyInvoicer:       &on,
		AdditionalRecipients: []string{"cc@example.com"},
	})
	assert.True(t, result.Success)
}

func TestSend_MissingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	result := newService(t, mocks.NewMockTransport(ctrl)).Send(context.Background(), "", service.SendOptions{})
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "invoice id is required")
}

func TestCreateAndSend_PartialSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	gomock.InOrder(
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "POST", paypal.InvoicesPath, gomock.Any()).
			Return(fullInvoiceResponse(), nil),
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "POST", paypal.SendPath("INV2-AAAA"), gomock.Any()).
			Return(nil, &paypal.TransportError{StatusCode: 500, Body: "boom"}),
	)

	result := newService(t, transport).CreateAndSend(context.Background(), validDocument(), service.SendOptions{})

	assert.True(t, result.Create.Success)
	assert.False(t, result.Sent)
	assert.Contains(t, result.SendError, "failed to send invoice")
}

func TestCreateAndSend_FullSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	gomock.InOrder(
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "POST", paypal.InvoicesPath, gomock.Any()).
			Return(fullInvoiceResponse(), nil),
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "POST", paypal.SendPath("INV2-AAAA"), gomock.Any()).
			Return(map[string]interface{}{}, nil),
	)

	result := newService(t, transport).CreateAndSend(context.Background(), validDocument(), service.SendOptions{})

	assert.True(t, result.Create.Success)
	assert.True(t, result.Sent)
	assert.Empty(t, result.SendError)
}

func TestCreateAndSend_DocumentCCRecipientsReachSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	doc := validDocument()
	doc.CCRecipients = []string{"cc@example.com", "copy@example.com"}

	transport := mocks.NewMockTransport(ctrl)
	gomock.InOrder(
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "POST", paypal.InvoicesPath, gomock.Any()).
			Return(fullInvoiceResponse(), nil),
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "POST", paypal.SendPath("INV2-AAAA"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, body interface{}) (map[string]interface{}, error) {
				m, ok := body.(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, []string{"cc@example.com", "copy@example.com"}, m["additional_recipients"])
				return map[string]interface{}{}, nil
			}),
	)

	result := newService(t, transport).CreateAndSend(context.Background(), doc, service.SendOptions{})
	assert.True(t, result.Sent)
}

func TestCreateAndSend_ExplicitRecipientsWinOverDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	doc := validDocument()
	doc.CCRecipients = []string{"cc@example.com"}

	transport := mocks.NewMockTransport(ctrl)
	gomock.InOrder(
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "POST", paypal.InvoicesPath, gomock.Any()).
			Return(fullInvoiceResponse(), nil),
		transport.EXPECT().
			AuthenticatedRequest(gomock.Any(), "POST", paypal.SendPath("INV2-AAAA"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, body interface{}) (map[string]interface{}, error) {
				m := body.(map[string]interface{})
				assert.Equal(t, []string{"override@example.com"}, m["additional_recipients"])
				return map[string]interface{}{}, nil
			}),
	)

	result := newService(t, transport).CreateAndSend(context.Background(), doc, service.SendOptions{
		AdditionalRecipients: []string{"override@example.com"},
	})
	assert.True(t, result.Sent)
}

func TestCreateAndSend_CreateFailureSkipsSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().
		AuthenticatedRequest(gomock.Any(), "POST", paypal.InvoicesPath, gomock.Any()).
		Return(nil, &paypal.TransportError{StatusCode: 401, Body: "unauthorized"})

	result := newService(t, transport).CreateAndSend(context.Background(), validDocument(), service.SendOptions{})

	assert.False(t, result.Create.Success)
	assert.False(t, result.Sent)
}

func TestList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().
		AuthenticatedRequest(gomock.Any(), "GET", paypal.ListPath(2, 10, true), nil).
		Return(map[string]interface{}{
			"items":       []interface{}{map[string]interface{}{"id": "INV2-AAAA"}},
			"total_items": float64(37),
		}, nil)

	result := newService(t, transport).List(context.Background(), service.ListOptions{
		Page:          2,
		PageSize:      10,
		TotalRequired: true,
	})

	assert.True(t, result.Success)
	require.Len(t, result.Invoices, 1)
	assert.Equal(t, "INV2-AAAA", result.Invoices[0]["id"])
	assert.Equal(t, 37, result.Total)
}

func TestList_DefaultsPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().
		AuthenticatedRequest(gomock.Any(), "GET", paypal.ListPath(1, 20, false), nil).
		Return(map[string]interface{}{}, nil)

	result := newService(t, transport).List(context.Background(), service.ListOptions{})
	assert.True(t, result.Success)
}

func TestCancel_DefaultReason(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	transport := mocks.NewMockTransport(ctrl)
	transport.EXPECT().
		AuthenticatedRequest(gomock.Any(), "POST", paypal.CancelPath("INV2-AAAA"), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, body interface{}) (map[string]interface{}, error) {
			m := body.(map[string]interface{})
			assert.Equal(t, "This invoice has been cancelled.", m["note"])
			return map[string]interface{}{}, nil
		})

	result := newService(t, transport).Cancel(context.Background(), "INV2-AAAA", "")
	assert.True(t, result.Success)
}

func TestPreview_NoTransportCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations: preview must not touch the network.
	transport := mocks.NewMockTransport(ctrl)

	svc := service.NewInvoiceService(transport, testBusiness(),
		service.WithDisplay(renderStub{}),
	)

	result := svc.Preview(context.Background(), validDocument())
	require.True(t, result.Success)
	require.NotNil(t, result.Payload)
	assert.Equal(t, "rendered", result.Rendered)
	assert.Len(t, result.Payload.Items, 1)
}

func TestPreview_ValidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	doc := validDocument()
	doc.Customer.Email = ""

	result := newService(t, mocks.NewMockTransport(ctrl)).Preview(context.Background(), doc)
	assert.False(t, result.Success)
	assert.Contains(t, result.Details, "customer email is required")
}

type renderStub struct{}

func (renderStub) Render(_ *invoice.Payload, _ []string) string { return "rendered" }
