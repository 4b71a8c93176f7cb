package loan_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frahmantamala/loanlink/internal"
	loanDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/loan"
	loanPkg "github.com/frahmantamala/loanlink/internal/loan"
)

func TestLoanService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Loan Service Suite")
}

type mockLoanRepository struct {
	byID        map[string]*loanDatamodel.Loan
	createError error
	listError   error
}

func newMockLoanRepository() *mockLoanRepository {
	return &mockLoanRepository{byID: make(map[string]*loanDatamodel.Loan)}
}

func (m *mockLoanRepository) Create(l *loanDatamodel.Loan) error {
	if m.createError != nil {
		return m.createError
	}
	stored := *l
	m.byID[l.ID] = &stored
	return nil
}

func (m *mockLoanRepository) GetByID(id string) (*loanDatamodel.Loan, error) {
	l, exists := m.byID[id]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (m *mockLoanRepository) GetAll() ([]*loanDatamodel.Loan, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var loans []*loanDatamodel.Loan
	for _, l := range m.byID {
		loans = append(loans, l)
	}
	return loans, nil
}

func (m *mockLoanRepository) GetByCreator(email string) ([]*loanDatamodel.Loan, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	var loans []*loanDatamodel.Loan
	for _, l := range m.byID {
		if l.CreatedByEmail == email {
			loans = append(loans, l)
		}
	}
	return loans, nil
}

var _ = Describe("LoanService", func() {
	var (
		service  *loanPkg.Service
		mockRepo *mockLoanRepository
		manager  *internal.Identity
	)

	BeforeEach(func() {
		mockRepo = newMockLoanRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = loanPkg.NewService(mockRepo, logger)
		manager = &internal.Identity{Email: "manager@example.com", Name: "Loan Manager"}
	})

	Describe("CreateLoan", func() {
		It("assigns id, creator and created_at server-side", func() {
			l, err := service.CreateLoan(manager, loanPkg.CreateLoanDTO{
				Title:        "Small Business Expansion",
				Category:     "business",
				LoanAmount:   decimal.RequireFromString("15000.00"),
				InterestRate: 7.5,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(l.ID).ToNot(BeEmpty())
			Expect(l.CreatedByEmail).To(Equal("manager@example.com"))
			Expect(l.CreatedAt).ToNot(BeZero())
		})

		It("rejects a non-positive loan amount", func() {
			_, err := service.CreateLoan(manager, loanPkg.CreateLoanDTO{
				Title:      "Zero Loan",
				Category:   "business",
				LoanAmount: decimal.Zero,
			})

			Expect(err).To(HaveOccurred())
		})

		It("rejects a loan without a title", func() {
			_, err := service.CreateLoan(manager, loanPkg.CreateLoanDTO{
				Category:   "business",
				LoanAmount: decimal.RequireFromString("100.00"),
			})

			Expect(err).To(HaveOccurred())
		})

		It("wraps repository failures", func() {
			mockRepo.createError = errors.New("connection lost")

			_, err := service.CreateLoan(manager, loanPkg.CreateLoanDTO{
				Title:      "Valid Loan",
				Category:   "business",
				LoanAmount: decimal.RequireFromString("100.00"),
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetLoanByID", func() {
		It("returns the loan when it exists", func() {
			mockRepo.byID["loan-1"] = &loanDatamodel.Loan{ID: "loan-1", Title: "Existing"}

			l, err := service.GetLoanByID("loan-1")

			Expect(err).ToNot(HaveOccurred())
			Expect(l.Title).To(Equal("Existing"))
		})

		It("returns a not-found error otherwise", func() {
			_, err := service.GetLoanByID("missing")
			Expect(err).To(MatchError(internal.ErrLoanNotFound))
		})
	})

	Describe("GetLoansByCreator", func() {
		It("returns only the creator's offers", func() {
			mockRepo.byID["loan-1"] = &loanDatamodel.Loan{ID: "loan-1", CreatedByEmail: "manager@example.com"}
			mockRepo.byID["loan-2"] = &loanDatamodel.Loan{ID: "loan-2", CreatedByEmail: "other@example.com"}

			loans, err := service.GetLoansByCreator("manager@example.com")

			Expect(err).ToNot(HaveOccurred())
			Expect(loans).To(HaveLen(1))
			Expect(loans[0].ID).To(Equal("loan-1"))
		})
	})
})
