package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/loanlink/internal"
	"github.com/frahmantamala/loanlink/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

const testProjectID = "loanlink-test"

func serviceKeyFor(pub *rsa.PublicKey) string {
	der, err := x509.MarshalPKIXPublicKey(pub)
	Expect(err).ToNot(HaveOccurred())
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	payload, err := json.Marshal(map[string]string{
		"project_id":   testProjectID,
		"client_email": "service@loanlink-test.iam.example.com",
		"public_key":   string(pemKey),
	})
	Expect(err).ToNot(HaveOccurred())

	return base64.StdEncoding.EncodeToString(payload)
}

func signToken(key *rsa.PrivateKey, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	Expect(err).ToNot(HaveOccurred())
	return signed
}

var _ = Describe("TokenVerifier", func() {
	var (
		privateKey *rsa.PrivateKey
		verifier   *auth.TokenVerifier
		ctx        context.Context
	)

	baseClaims := func() jwt.MapClaims {
		return jwt.MapClaims{
			"email": "borrower@example.com",
			"name":  "Sample Borrower",
			"aud":   testProjectID,
			"iat":   time.Now().Unix(),
			"exp":   time.Now().Add(time.Hour).Unix(),
		}
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		privateKey, err = rsa.GenerateKey(rand.Reader, 2048)
		Expect(err).ToNot(HaveOccurred())

		verifier, err = auth.NewTokenVerifier(internal.IdentityConfig{
			ServiceKey: serviceKeyFor(&privateKey.PublicKey),
		})
		Expect(err).ToNot(HaveOccurred())
	})

	It("accepts a valid token and returns its identity", func() {
		token := signToken(privateKey, baseClaims())

		identity, err := verifier.Verify(ctx, token)

		Expect(err).ToNot(HaveOccurred())
		Expect(identity.Email).To(Equal("borrower@example.com"))
		Expect(identity.Name).To(Equal("Sample Borrower"))
	})

	It("rejects an empty token", func() {
		_, err := verifier.Verify(ctx, "")
		Expect(err).To(MatchError(auth.ErrMissingToken))
	})

	It("rejects an expired token", func() {
		claims := baseClaims()
		claims["iat"] = time.Now().Add(-2 * time.Hour).Unix()
		claims["exp"] = time.Now().Add(-time.Hour).Unix()
		token := signToken(privateKey, claims)

		_, err := verifier.Verify(ctx, token)

		Expect(err).To(MatchError(auth.ErrTokenExpired))
	})

	It("tolerates small clock skew on expiry", func() {
		claims := baseClaims()
		claims["exp"] = time.Now().Add(-30 * time.Second).Unix()
		token := signToken(privateKey, claims)

		_, err := verifier.Verify(ctx, token)

		Expect(err).ToNot(HaveOccurred())
	})

	It("rejects a token signed with a different key", func() {
		otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
		Expect(err).ToNot(HaveOccurred())
		token := signToken(otherKey, baseClaims())

		_, err = verifier.Verify(ctx, token)

		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})

	It("rejects a token for a different audience", func() {
		claims := baseClaims()
		claims["aud"] = "someone-elses-project"
		token := signToken(privateKey, claims)

		_, err := verifier.Verify(ctx, token)

		Expect(err).To(HaveOccurred())
	})

	It("rejects a token without an email claim", func() {
		claims := baseClaims()
		delete(claims, "email")
		token := signToken(privateKey, claims)

		_, err := verifier.Verify(ctx, token)

		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})

	It("rejects an HS256 token even with a correct-looking payload", func() {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, baseClaims())
		signed, err := token.SignedString([]byte("shared-secret"))
		Expect(err).ToNot(HaveOccurred())

		_, err = verifier.Verify(ctx, signed)

		Expect(err).To(HaveOccurred())
	})
})
