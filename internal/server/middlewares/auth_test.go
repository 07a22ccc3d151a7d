package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/jobrunner/internal/server/middlewares"
)

var _ = Describe("Authenticator", func() {
	var (
		secret []byte
		router *gin.Engine
		user   string
	)

	sign := func(method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		Expect(err).NotTo(HaveOccurred())
		return token
	}

	validClaims := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": "alice",
			"iss": "jobrunner",
			"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
	}

	call := func(header string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	BeforeEach(func() {
		secret = []byte("s3cr3t")
		user = ""
		router = gin.New()
		router.Use(middlewares.Authenticator(secret, "jobrunner"))
		router.GET("/ping", func(c *gin.Context) {
			user = c.GetString(middlewares.UserKey)
			c.Status(http.StatusOK)
		})
	})

	It("should accept a valid token", func() {
		code := call("Bearer " + sign(jwt.SigningMethodHS256, secret, validClaims()))

		Expect(code).To(Equal(http.StatusOK))
		Expect(user).To(Equal("alice"))
	})

	DescribeTable("should reject",
		func(header func() string) {
			Expect(call(header())).To(Equal(http.StatusUnauthorized))
			Expect(user).To(BeEmpty())
		},
		Entry("a missing header", func() string { return "" }),
		Entry("a non bearer scheme", func() string { return "Basic dXNlcjpwYXNz" }),
		Entry("garbage", func() string { return "Bearer not-a-token" }),
		Entry("a wrong key", func() string {
			return "Bearer " + sign(jwt.SigningMethodHS256, []byte("other"), validClaims())
		}),
		Entry("an expired token", func() string {
			claims := validClaims()
			claims["exp"] = jwt.NewNumericDate(time.Now().Add(-time.Minute))
			return "Bearer " + sign(jwt.SigningMethodHS256, secret, claims)
		}),
		Entry("a token without expiry", func() string {
			claims := validClaims()
			delete(claims, "exp")
			return "Bearer " + sign(jwt.SigningMethodHS256, secret, claims)
		}),
		Entry("a wrong issuer", func() string {
			claims := validClaims()
			claims["iss"] = "someone-else"
			return "Bearer " + sign(jwt.SigningMethodHS256, secret, claims)
		}),
	)
})
