package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/chemstack/chemconsole/internal"
	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/session"
	"github.com/chemstack/chemconsole/internal/ui"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// mockCaller scripts the backend's answer to the login request.
type mockCaller struct {
	response    LoginResponse
	returnError error
	calls       int
}

func (m *mockCaller) Call(ctx context.Context, method, endpoint string, body, out any) error {
	m.calls++
	if m.returnError != nil {
		return m.returnError
	}
	if resp, ok := out.(*LoginResponse); ok {
		*resp = m.response
	}
	return nil
}

type mockSurface struct {
	alerts      []string
	loginErrors []string
	userInfo    string
	loginShown  int
	mainShown   int
	navVisible  map[string]bool
}

func newMockSurface() *mockSurface {
	return &mockSurface{navVisible: make(map[string]bool)}
}

func (m *mockSurface) Alert(level ui.Level, message string) {
	m.alerts = append(m.alerts, string(level)+": "+message)
}
func (m *mockSurface) Confirm(prompt string) bool { return true }
func (m *mockSurface) ShowLogin()                 { m.loginShown++ }
func (m *mockSurface) ShowMain()                  { m.mainShown++ }
func (m *mockSurface) SetLoginError(message string) {
	m.loginErrors = append(m.loginErrors, message)
}
func (m *mockSurface) SetUserInfo(text string)               { m.userInfo = text }
func (m *mockSurface) HideAllViews()                         {}
func (m *mockSurface) ShowView(id string)                    {}
func (m *mockSurface) SetHeading(text string)                {}
func (m *mockSurface) SetNavActive(id string)                {}
func (m *mockSurface) SetNavVisible(id string, visible bool) { m.navVisible[id] = visible }

type mockNavigator struct {
	activated   []string
	navRefreshs int
}

func (m *mockNavigator) Activate(ctx context.Context, viewID string) {
	m.activated = append(m.activated, viewID)
}
func (m *mockNavigator) RefreshNav() { m.navRefreshs++ }

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func signedToken(expiresAt time.Time) string {
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte("test-secret"))
	return signed
}

var _ = ginkgo.Describe("Controller", func() {
	var (
		caller     *mockCaller
		sess       *session.Manager
		surface    *mockSurface
		nav        *mockNavigator
		controller *Controller
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		caller = &mockCaller{}
		sess = session.NewManager(nil, testLogger)
		surface = newMockSurface()
		nav = &mockNavigator{}
		controller = NewController(caller, sess, surface, nav, testLogger)
		ctx = context.Background()
	})

	ginkgo.Describe("Login", func() {
		ginkgo.Context("when the backend accepts the credentials", func() {
			ginkgo.BeforeEach(func() {
				caller.response = LoginResponse{Token: "tok-1", Username: "alice", Role: "buyer"}
			})

			ginkgo.It("should populate the session with all three fields", func() {
				controller.Login(ctx, "alice", "password")

				gomega.Expect(sess.IsAuthenticated()).To(gomega.BeTrue())
				gomega.Expect(sess.Token()).To(gomega.Equal("tok-1"))
				gomega.Expect(sess.Username()).To(gomega.Equal("alice"))
				gomega.Expect(sess.Role()).To(gomega.Equal(permission.RoleBuyer))
			})

			ginkgo.It("should show the welcome banner and land on the dashboard", func() {
				controller.Login(ctx, "alice", "password")

				gomega.Expect(surface.userInfo).To(gomega.Equal("welcome, alice (buyer)"))
				gomega.Expect(surface.mainShown).To(gomega.Equal(1))
				gomega.Expect(nav.activated).To(gomega.Equal([]string{"dashboard"}))
				gomega.Expect(surface.alerts).To(gomega.ContainElement("success: logged in"))
			})

			ginkgo.It("should clear any previous inline login error first", func() {
				controller.Login(ctx, "alice", "password")
				gomega.Expect(surface.loginErrors[0]).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when the backend rejects the credentials", func() {
			ginkgo.BeforeEach(func() {
				caller.returnError = internal.NewAPIError(401, "invalid username or password")
			})

			ginkgo.It("should leave the session untouched", func() {
				controller.Login(ctx, "alice", "wrong")
				gomega.Expect(sess.IsAuthenticated()).To(gomega.BeFalse())
			})

			ginkgo.It("should surface the backend message inline, not as an alert", func() {
				controller.Login(ctx, "alice", "wrong")
				gomega.Expect(surface.loginErrors).To(gomega.ContainElement("invalid username or password"))
				gomega.Expect(surface.alerts).To(gomega.BeEmpty())
				gomega.Expect(nav.activated).To(gomega.BeEmpty())
			})
		})

		ginkgo.Context("when the backend is unreachable", func() {
			ginkgo.It("should strip the transport prefix from the inline error", func() {
				caller.returnError = internal.NewTransportError("request to /login failed: connection refused", nil)
				controller.Login(ctx, "alice", "password")

				gomega.Expect(surface.loginErrors).To(gomega.ContainElement("connection refused"))
				gomega.Expect(sess.IsAuthenticated()).To(gomega.BeFalse())
			})
		})

		ginkgo.Context("when the backend returns an unknown role", func() {
			ginkgo.It("should refuse the session", func() {
				caller.response = LoginResponse{Token: "tok-1", Username: "alice", Role: "superuser"}
				controller.Login(ctx, "alice", "password")

				gomega.Expect(sess.IsAuthenticated()).To(gomega.BeFalse())
				gomega.Expect(surface.loginErrors).To(gomega.ContainElement(`unknown role "superuser"`))
			})
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("should clear the session and return to the login surface", func() {
			sess.Set("tok-1", "alice", permission.RoleBuyer)
			controller.Logout(ctx)

			gomega.Expect(sess.IsAuthenticated()).To(gomega.BeFalse())
			gomega.Expect(surface.loginShown).To(gomega.Equal(1))
			gomega.Expect(surface.userInfo).To(gomega.BeEmpty())
			gomega.Expect(surface.alerts).To(gomega.ContainElement("info: logged out"))
		})

		ginkgo.It("should be idempotent", func() {
			controller.Logout(ctx)
			controller.Logout(ctx)
			gomega.Expect(sess.IsAuthenticated()).To(gomega.BeFalse())
		})
	})

	ginkgo.Describe("UpdateLoginStatus", func() {
		ginkgo.It("should report false and show login when no session exists", func() {
			gomega.Expect(controller.UpdateLoginStatus(ctx)).To(gomega.BeFalse())
			gomega.Expect(surface.loginShown).To(gomega.Equal(1))
			gomega.Expect(nav.navRefreshs).To(gomega.Equal(1))
		})

		ginkgo.It("should report true for a live session", func() {
			sess.Set(signedToken(time.Now().Add(time.Hour)), "alice", permission.RoleBuyer)
			gomega.Expect(controller.UpdateLoginStatus(ctx)).To(gomega.BeTrue())
			gomega.Expect(surface.mainShown).To(gomega.Equal(1))
		})

		ginkgo.It("should clear an expired session and fall back to login", func() {
			sess.Set(signedToken(time.Now().Add(-time.Hour)), "alice", permission.RoleBuyer)

			gomega.Expect(controller.UpdateLoginStatus(ctx)).To(gomega.BeFalse())
			gomega.Expect(sess.IsAuthenticated()).To(gomega.BeFalse())
			gomega.Expect(surface.loginShown).To(gomega.Equal(1))
		})

		ginkgo.It("should trust an opaque non-JWT token", func() {
			sess.Set("opaque-token", "alice", permission.RoleBuyer)
			gomega.Expect(controller.UpdateLoginStatus(ctx)).To(gomega.BeTrue())
		})
	})
})

var _ = ginkgo.Describe("tokenExpired", func() {
	now := time.Now()

	ginkgo.It("should detect a past expiry", func() {
		gomega.Expect(tokenExpired(signedToken(now.Add(-time.Minute)), now)).To(gomega.BeTrue())
	})

	ginkgo.It("should accept a future expiry", func() {
		gomega.Expect(tokenExpired(signedToken(now.Add(time.Minute)), now)).To(gomega.BeFalse())
	})

	ginkgo.It("should trust tokens that are not JWTs", func() {
		gomega.Expect(tokenExpired("not-a-jwt", now)).To(gomega.BeFalse())
	})

	ginkgo.It("should trust JWTs without an expiry claim", func() {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{})
		signed, _ := token.SignedString([]byte("test-secret"))
		gomega.Expect(tokenExpired(signed, now)).To(gomega.BeFalse())
	})
})
