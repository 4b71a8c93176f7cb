package payment_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/loanlink/internal"
	paymentDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/payment"
	paymentPkg "github.com/frahmantamala/loanlink/internal/payment"
)

type mockPaymentService struct {
	checkoutURL      string
	checkoutError    error
	reconcileResult  *paymentPkg.ReconcileResult
	reconcileError   error
	lastSessionID    string
	borrowerPayments []*paymentDatamodel.Payment
	lastBorrower     string
}

func (m *mockPaymentService) CreateCheckout(ctx context.Context, dto paymentPkg.CheckoutDTO) (string, error) {
	if m.checkoutError != nil {
		return "", m.checkoutError
	}
	return m.checkoutURL, nil
}

func (m *mockPaymentService) Reconcile(ctx context.Context, sessionID string) (*paymentPkg.ReconcileResult, error) {
	m.lastSessionID = sessionID
	if m.reconcileError != nil {
		return nil, m.reconcileError
	}
	return m.reconcileResult, nil
}

func (m *mockPaymentService) GetPaymentsByBorrower(email string) ([]*paymentDatamodel.Payment, error) {
	m.lastBorrower = email
	return m.borrowerPayments, nil
}

var _ = Describe("PaymentHandler", func() {
	var (
		handler *paymentPkg.Handler
		service *mockPaymentService
	)

	BeforeEach(func() {
		service = &mockPaymentService{}
		handler = paymentPkg.NewHandler(service)
	})

	Describe("CreateCheckout", func() {
		It("responds with the checkout URL", func() {
			service.checkoutURL = "https://checkout.example.com/cs_1"
			body := bytes.NewBufferString(`{"loanId":"app-1","borrower":{"name":"B","email":"b@example.com"}}`)
			req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", body)
			rec := httptest.NewRecorder()

			handler.CreateCheckout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			var resp map[string]string
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["url"]).To(Equal("https://checkout.example.com/cs_1"))
		})

		It("rejects malformed bodies", func() {
			req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", bytes.NewBufferString("{"))
			rec := httptest.NewRecorder()

			handler.CreateCheckout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("maps gateway failures to 502", func() {
			service.checkoutError = internal.NewExternalError("gateway down", errors.New("dial refused"))
			body := bytes.NewBufferString(`{"loanId":"app-1","borrower":{"name":"B","email":"b@example.com"}}`)
			req := httptest.NewRequest(http.MethodPost, "/create-checkout-session", body)
			rec := httptest.NewRecorder()

			handler.CreateCheckout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadGateway))
		})
	})

	Describe("Reconcile", func() {
		It("responds with the reconciliation outcome", func() {
			service.reconcileResult = &paymentPkg.ReconcileResult{Outcome: paymentPkg.OutcomeAlreadyRecorded}
			body := bytes.NewBufferString(`{"sessionId":"cs_1"}`)
			req := httptest.NewRequest(http.MethodPost, "/payment-paid", body)
			rec := httptest.NewRecorder()

			handler.Reconcile(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.lastSessionID).To(Equal("cs_1"))
			var resp paymentPkg.ReconcileResult
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.Outcome).To(Equal(paymentPkg.OutcomeAlreadyRecorded))
		})

		It("rejects a missing session id", func() {
			req := httptest.NewRequest(http.MethodPost, "/payment-paid", bytes.NewBufferString(`{}`))
			rec := httptest.NewRecorder()

			handler.Reconcile(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("MyPayments", func() {
		It("lists payments for the verified identity only", func() {
			service.borrowerPayments = []*paymentDatamodel.Payment{{ID: "p-1"}}
			req := httptest.NewRequest(http.MethodGet, "/my-payments", nil)
			ctx := internal.ContextWithIdentity(req.Context(), &internal.Identity{Email: "b@example.com"})
			rec := httptest.NewRecorder()

			handler.MyPayments(rec, req.WithContext(ctx))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.lastBorrower).To(Equal("b@example.com"))
		})

		It("returns 401 without an identity", func() {
			req := httptest.NewRequest(http.MethodGet, "/my-payments", nil)
			rec := httptest.NewRecorder()

			handler.MyPayments(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
