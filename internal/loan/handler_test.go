package loan_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/loanlink/internal"
	loanDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/loan"
	loanPkg "github.com/frahmantamala/loanlink/internal/loan"
)

type mockLoanServiceAPI struct {
	loans        []*loanDatamodel.Loan
	creatorCalls []string
}

func (m *mockLoanServiceAPI) CreateLoan(creator *internal.Identity, dto loanPkg.CreateLoanDTO) (*loanDatamodel.Loan, error) {
	return &loanDatamodel.Loan{ID: "loan-1"}, nil
}

func (m *mockLoanServiceAPI) GetAllLoans() ([]*loanDatamodel.Loan, error) {
	return m.loans, nil
}

func (m *mockLoanServiceAPI) GetLoanByID(id string) (*loanDatamodel.Loan, error) {
	for _, l := range m.loans {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, internal.ErrLoanNotFound
}

func (m *mockLoanServiceAPI) GetLoansByCreator(email string) ([]*loanDatamodel.Loan, error) {
	m.creatorCalls = append(m.creatorCalls, email)
	return m.loans, nil
}

var _ = Describe("LoanHandler", func() {
	var (
		handler *loanPkg.Handler
		service *mockLoanServiceAPI
		router  *chi.Mux
	)

	BeforeEach(func() {
		service = &mockLoanServiceAPI{}
		handler = loanPkg.NewHandler(service)
		router = chi.NewRouter()
		router.Get("/loans/{id}", handler.GetLoan)
		router.Get("/manage-loans/{email}", handler.ManageLoans)
	})

	Describe("GetLoan", func() {
		It("returns 404 for an unknown loan id", func() {
			req := httptest.NewRequest(http.MethodGet, "/loans/missing", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("returns the loan when it exists", func() {
			service.loans = []*loanDatamodel.Loan{{ID: "loan-1", Title: "Existing"}}
			req := httptest.NewRequest(http.MethodGet, "/loans/loan-1", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("ManageLoans", func() {
		withIdentity := func(req *http.Request, email string) *http.Request {
			ctx := internal.ContextWithIdentity(req.Context(), &internal.Identity{Email: email})
			return req.WithContext(ctx)
		}

		It("returns 403 when the path email is not the caller's", func() {
			req := httptest.NewRequest(http.MethodGet, "/manage-loans/other@example.com", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, withIdentity(req, "manager@example.com"))

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(service.creatorCalls).To(BeEmpty())
		})

		It("returns 401 when no identity reached the handler", func() {
			req := httptest.NewRequest(http.MethodGet, "/manage-loans/manager@example.com", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})

		It("lists the caller's own offers", func() {
			service.loans = []*loanDatamodel.Loan{{ID: "loan-1"}}
			req := httptest.NewRequest(http.MethodGet, "/manage-loans/manager@example.com", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, withIdentity(req, "manager@example.com"))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.creatorCalls).To(ConsistOf("manager@example.com"))
		})
	})
})
