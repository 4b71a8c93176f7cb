package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/loanlink/internal"
	"github.com/frahmantamala/loanlink/internal/auth"
	userDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/user"
)

type fakeVerifier struct {
	identity *internal.Identity
	err      error
	calls    int
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*internal.Identity, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type fakeRoleReader struct {
	roles map[string]string
}

func (f *fakeRoleReader) GetRoleByEmail(email string) (string, error) {
	role, ok := f.roles[email]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

var _ = Describe("Middleware", func() {
	var (
		verifier   *fakeVerifier
		roles      *fakeRoleReader
		middleware *auth.Middleware
		nextCalled bool
		next       http.Handler
	)

	BeforeEach(func() {
		verifier = &fakeVerifier{
			identity: &internal.Identity{Email: "user@example.com", Name: "User"},
		}
		roles = &fakeRoleReader{roles: map[string]string{}}
		middleware = auth.NewMiddleware(verifier, roles)

		nextCalled = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusOK)
		})
	})

	request := func(token string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/my-loans", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req
	}

	Describe("RequireAuth", func() {
		It("rejects a request without a token before calling the verifier", func() {
			rec := httptest.NewRecorder()

			middleware.RequireAuth(next).ServeHTTP(rec, request(""))

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(verifier.calls).To(Equal(0))
			Expect(nextCalled).To(BeFalse())
		})

		It("rejects a request whose token fails verification", func() {
			verifier.err = auth.ErrInvalidToken
			rec := httptest.NewRecorder()

			middleware.RequireAuth(next).ServeHTTP(rec, request("bad-token"))

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(nextCalled).To(BeFalse())
		})

		It("puts the verified identity on the request context", func() {
			var seen *internal.Identity
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = internal.IdentityFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			rec := httptest.NewRecorder()

			middleware.RequireAuth(next).ServeHTTP(rec, request("good-token"))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(seen).ToNot(BeNil())
			Expect(seen.Email).To(Equal("user@example.com"))
		})
	})

	Describe("RequireRole", func() {
		protected := func(gate func(http.Handler) http.Handler) http.Handler {
			return middleware.RequireAuth(gate(next))
		}

		It("returns 403 when the verified email has no user record", func() {
			rec := httptest.NewRecorder()

			protected(middleware.RequireManager()).ServeHTTP(rec, request("good-token"))

			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(nextCalled).To(BeFalse())
		})

		It("returns 403 when a borrower hits a manager gate", func() {
			roles.roles["user@example.com"] = userDatamodel.RoleBorrower
			rec := httptest.NewRecorder()

			protected(middleware.RequireManager()).ServeHTTP(rec, request("good-token"))

			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("lets a manager through a manager gate", func() {
			roles.roles["user@example.com"] = userDatamodel.RoleManager
			rec := httptest.NewRecorder()

			protected(middleware.RequireManager()).ServeHTTP(rec, request("good-token"))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(nextCalled).To(BeTrue())
		})

		It("lets an admin through a manager gate", func() {
			roles.roles["user@example.com"] = userDatamodel.RoleAdmin
			rec := httptest.NewRecorder()

			protected(middleware.RequireManager()).ServeHTTP(rec, request("good-token"))

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("keeps a manager out of an admin gate", func() {
			roles.roles["user@example.com"] = userDatamodel.RoleManager
			rec := httptest.NewRecorder()

			protected(middleware.RequireAdmin()).ServeHTTP(rec, request("good-token"))

			Expect(rec.Code).To(Equal(http.StatusForbidden))
		})

		It("returns 401, not 403, when the request is unauthenticated", func() {
			roles.roles["user@example.com"] = userDatamodel.RoleManager
			rec := httptest.NewRecorder()

			protected(middleware.RequireManager()).ServeHTTP(rec, request(""))

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
