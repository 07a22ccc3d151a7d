package server_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/jobrunner/internal/config"
	"github.com/kubev2v/jobrunner/internal/server"
)

var _ = Describe("Server", func() {
	var cfg *config.Configuration

	register := func(router *gin.RouterGroup) {
		router.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})
	}

	call := func(srv *server.Server, path, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		cfg = config.NewConfigurationWithOptionsAndDefaults()
	})

	It("should mount handlers under /api/v1", func() {
		srv, err := server.NewServer(cfg, register)
		Expect(err).NotTo(HaveOccurred())

		w := call(srv, "/api/v1/ping", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("pong"))

		Expect(call(srv, "/health", "").Code).To(Equal(http.StatusOK))
		Expect(call(srv, "/nowhere", "").Code).To(Equal(http.StatusNotFound))
	})

	It("should serve the metrics handler", func() {
		metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("jobrunner_open_jobs 0\n"))
		})
		srv, err := server.NewServer(cfg, register, server.WithMetricsHandler(metrics))
		Expect(err).NotTo(HaveOccurred())

		w := call(srv, "/metrics", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("jobrunner_open_jobs"))
	})

	It("should recover from handler panics", func() {
		srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
			router.GET("/panic", func(c *gin.Context) { panic("boom") })
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(call(srv, "/api/v1/panic", "").Code).To(Equal(http.StatusInternalServerError))
	})

	Context("with authentication", func() {
		BeforeEach(func() {
			cfg.Auth = config.Authentication{AuthEnabled: true, JWTSecret: "s3cr3t"}
		})

		It("should protect the API but not health and metrics", func() {
			srv, err := server.NewServer(cfg, register, server.WithMetricsHandler(http.NotFoundHandler()))
			Expect(err).NotTo(HaveOccurred())

			Expect(call(srv, "/api/v1/ping", "").Code).To(Equal(http.StatusUnauthorized))
			Expect(call(srv, "/health", "").Code).To(Equal(http.StatusOK))

			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
				"sub": "alice",
				"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}).SignedString([]byte("s3cr3t"))
			Expect(err).NotTo(HaveOccurred())
			Expect(call(srv, "/api/v1/ping", token).Code).To(Equal(http.StatusOK))
		})

		It("should require a secret", func() {
			cfg.Auth.JWTSecret = ""
			_, err := server.NewServer(cfg, register)
			Expect(err).To(HaveOccurred())
		})
	})
})
