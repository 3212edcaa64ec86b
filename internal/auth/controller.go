// Package auth drives the login and logout workflows and keeps the surface
// in sync with the session's authenticated state.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"github.com/chemstack/chemconsole/internal"
	"github.com/chemstack/chemconsole/internal/apigateway"
	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/session"
	"github.com/chemstack/chemconsole/internal/ui"
	"github.com/chemstack/chemconsole/internal/view"
)

// Navigator is the slice of the view router the auth workflows need.
type Navigator interface {
	Activate(ctx context.Context, viewID string)
	RefreshNav()
}

type Controller struct {
	api     apigateway.Caller
	session *session.Manager
	surface ui.Surface
	nav     Navigator
	logger  *slog.Logger
	now     func() time.Time
}

func NewController(api apigateway.Caller, sess *session.Manager, surface ui.Surface, nav Navigator, logger *slog.Logger) *Controller {
	return &Controller{
		api:     api,
		session: sess,
		surface: surface,
		nav:     nav,
		logger:  logger,
		now:     time.Now,
	}
}

// transportPrefix is the prefix the gateway puts on transport failures; the
// login surface shows only the underlying description.
var transportPrefix = regexp.MustCompile(`^request to \S+ failed: `)

// Login authenticates against the backend. On success all three session
// fields are set and the console transitions to the dashboard; on failure
// the session is left untouched and the server's message is shown inline on
// the login surface.
func (c *Controller) Login(ctx context.Context, username, password string) {
	c.surface.SetLoginError("")

	var resp LoginResponse
	err := c.api.Call(ctx, http.MethodPost, "/login", LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		message := err.Error()
		if appErr, ok := internal.IsAppError(err); ok {
			message = transportPrefix.ReplaceAllString(appErr.Message, "")
		}
		c.logger.Warn("login failed", "username", username, "error", err)
		c.surface.SetLoginError(message)
		return
	}

	role, ok := permission.ParseRole(resp.Role)
	if !ok {
		c.logger.Error("backend returned unknown role", "role", resp.Role)
		c.surface.SetLoginError(fmt.Sprintf("unknown role %q", resp.Role))
		return
	}

	c.session.Set(resp.Token, resp.Username, role)
	c.UpdateLoginStatus(ctx)
	c.surface.Alert(ui.LevelSuccess, "logged in")
	c.nav.Activate(ctx, view.DashboardID)
}

// Logout clears the session and returns to the login surface. It is
// idempotent.
func (c *Controller) Logout(ctx context.Context) {
	c.session.Clear()
	c.UpdateLoginStatus(ctx)
	c.surface.Alert(ui.LevelInfo, "logged out")
}

// UpdateLoginStatus reconciles the surface with the session. An incomplete
// or expired session is forcibly cleared, failing safe toward the
// unauthenticated state. It reports whether an authenticated session exists,
// which is the only trigger for the initial view activation.
func (c *Controller) UpdateLoginStatus(ctx context.Context) bool {
	authenticated := c.session.IsAuthenticated()

	if authenticated && tokenExpired(c.session.Token(), c.now()) {
		c.logger.Info("stored token expired, clearing session", "username", c.session.Username())
		c.session.Clear()
		authenticated = false
	}

	if authenticated {
		c.surface.SetUserInfo(fmt.Sprintf("welcome, %s (%s)", c.session.Username(), c.session.Role()))
		c.surface.ShowMain()
	} else {
		// a partial session is wiped rather than trusted
		c.session.Clear()
		c.surface.SetUserInfo("")
		c.surface.ShowLogin()
	}

	c.nav.RefreshNav()
	return authenticated
}
