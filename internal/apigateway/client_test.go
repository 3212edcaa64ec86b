package apigateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/chemstack/chemconsole/internal"
)

func TestAPIGateway(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "API Gateway Module Suite")
}

type mockTokens struct {
	token string
}

func (m *mockTokens) Token() string { return m.token }

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestClient(baseURL string, tokens *mockTokens) *Client {
	return NewClient(internal.APIConfig{BaseURL: baseURL, Timeout: 2 * time.Second}, tokens, testLogger)
}

var _ = ginkgo.Describe("Client", func() {
	var (
		tokens *mockTokens
		ctx    context.Context
	)

	ginkgo.BeforeEach(func() {
		tokens = &mockTokens{}
		ctx = context.Background()
	})

	ginkgo.Describe("request shaping", func() {
		ginkgo.It("should send the bearer token when a session exists", func() {
			var gotAuth string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			tokens.token = "tok-123"
			client := newTestClient(server.URL, tokens)

			err := client.Call(ctx, http.MethodGet, "/materials", nil, nil)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(gotAuth).To(gomega.Equal("Bearer tok-123"))
		})

		ginkgo.It("should omit the Authorization header when logged out", func() {
			var gotAuth string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, tokens)

			err := client.Call(ctx, http.MethodPost, "/login", map[string]string{"username": "a"}, nil)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(gotAuth).To(gomega.BeEmpty())
		})

		ginkgo.It("should encode the body as JSON with the right content type", func() {
			var gotContentType string
			var gotBody map[string]any
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotContentType = r.Header.Get("Content-Type")
				json.NewDecoder(r.Body).Decode(&gotBody)
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, tokens)
			err := client.Call(ctx, http.MethodPost, "/materials", map[string]string{"name": "Ethanol"}, nil)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(gotContentType).To(gomega.Equal("application/json"))
			gomega.Expect(gotBody).To(gomega.HaveKeyWithValue("name", "Ethanol"))
		})

		ginkgo.It("should decode a successful response into out", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[{"material_id": 7, "name": "Ethanol"}]`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, tokens)
			var out []map[string]any
			err := client.Call(ctx, http.MethodGet, "/materials", nil, &out)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(out).To(gomega.HaveLen(1))
			gomega.Expect(out[0]).To(gomega.HaveKeyWithValue("name", "Ethanol"))
		})
	})

	ginkgo.Describe("error normalization", func() {
		ginkgo.It("should prefer the message field of an error body", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"message": "permission denied", "error": "ignored"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, tokens)
			err := client.Call(ctx, http.MethodDelete, "/materials/1", nil, nil)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeAPI))
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(http.StatusForbidden))
			gomega.Expect(appErr.Message).To(gomega.Equal("permission denied"))
		})

		ginkgo.It("should fall back to the error field", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error": "database is locked"}`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, tokens)
			err := client.Call(ctx, http.MethodGet, "/products", nil, nil)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("database is locked"))
		})

		ginkgo.It("should use the unknown-error fallback for unparseable bodies", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`<html>bad gateway</html>`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, tokens)
			err := client.Call(ctx, http.MethodGet, "/products", nil, nil)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Message).To(gomega.Equal("unknown error"))
		})

		ginkgo.It("should produce a transport error with no status when the server is unreachable", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			server.Close() // closed before the call

			client := newTestClient(server.URL, tokens)
			err := client.Call(ctx, http.MethodGet, "/materials", nil, nil)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeTransport))
			gomega.Expect(appErr.StatusCode).To(gomega.BeZero())
		})

		ginkgo.It("should produce a transport error for a malformed success body", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			}))
			defer server.Close()

			client := newTestClient(server.URL, tokens)
			var out []map[string]any
			err := client.Call(ctx, http.MethodGet, "/materials", nil, &out)

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeTransport))
		})
	})
})
