package postgres

import (
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	paymentDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/payment"
)

func TestPaymentRepository(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Payment Repository Suite")
}

var _ = ginkgo.Describe("PaymentRepository", func() {
	var (
		db   *gorm.DB
		repo *PaymentRepository
	)

	newPayment := func(id, transactionID string) *paymentDatamodel.Payment {
		now := time.Now().UTC()
		return &paymentDatamodel.Payment{
			ID:            id,
			ApplicationID: "app-1",
			TransactionID: transactionID,
			BorrowerEmail: "borrower@example.com",
			Status:        "pending",
			Amount:        decimal.RequireFromString("10.00"),
			LoanTitle:     "Small Business Expansion",
			Category:      "business",
			LoanAmount:    decimal.RequireFromString("15000.00"),
			PaidAt:        now,
			CreatedAt:     now,
		}
	}

	ginkgo.BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			TranslateError: true,
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		err = db.AutoMigrate(&paymentDatamodel.Payment{})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		repo = &PaymentRepository{db: db}
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("inserts a payment", func() {
			err := repo.Create(newPayment("p-1", "pi_1"))
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			stored, err := repo.GetByTransactionID("pi_1")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(stored.ID).To(gomega.Equal("p-1"))
			gomega.Expect(stored.Amount.Equal(decimal.RequireFromString("10.00"))).To(gomega.BeTrue())
		})

		ginkgo.It("rejects a second payment for the same transaction", func() {
			gomega.Expect(repo.Create(newPayment("p-1", "pi_1"))).To(gomega.Succeed())

			err := repo.Create(newPayment("p-2", "pi_1"))

			gomega.Expect(err).To(gomega.MatchError(gorm.ErrDuplicatedKey))

			var count int64
			db.Model(&paymentDatamodel.Payment{}).Count(&count)
			gomega.Expect(count).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("allows distinct transactions", func() {
			gomega.Expect(repo.Create(newPayment("p-1", "pi_1"))).To(gomega.Succeed())
			gomega.Expect(repo.Create(newPayment("p-2", "pi_2"))).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("GetByTransactionID", func() {
		ginkgo.It("returns gorm.ErrRecordNotFound for an unseen transaction", func() {
			_, err := repo.GetByTransactionID("pi_missing")
			gomega.Expect(err).To(gomega.MatchError(gorm.ErrRecordNotFound))
		})
	})

	ginkgo.Describe("GetByBorrower", func() {
		ginkgo.It("lists only the borrower's payments", func() {
			gomega.Expect(repo.Create(newPayment("p-1", "pi_1"))).To(gomega.Succeed())
			other := newPayment("p-2", "pi_2")
			other.BorrowerEmail = "someone-else@example.com"
			gomega.Expect(repo.Create(other)).To(gomega.Succeed())

			payments, err := repo.GetByBorrower("borrower@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(payments).To(gomega.HaveLen(1))
			gomega.Expect(payments[0].ID).To(gomega.Equal("p-1"))
		})
	})
})
