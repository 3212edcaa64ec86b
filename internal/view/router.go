// Package view implements single-page style navigation between the console's
// named views and the generic table renderer every resource list shares.
package view

import (
	"context"
	"log/slog"

	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/ui"
)

const DashboardID = "dashboard"

// View is one navigable screen. Resource is empty for the dashboard, which
// carries no tabular data and therefore no Load.
type View struct {
	ID       string
	Label    string
	Resource permission.Resource
	Load     func(ctx context.Context)
}

// SessionInfo is the slice of the session the router needs.
type SessionInfo interface {
	IsAuthenticated() bool
	Role() permission.Role
}

// Router keeps exactly one view active at a time. Activating a view triggers
// its data load only when a session is authenticated; the load itself decides
// whether the role may see the data.
type Router struct {
	surface ui.Surface
	session SessionInfo
	perms   permission.Checker
	logger  *slog.Logger

	views  []*View
	index  map[string]*View
	active string
}

func NewRouter(surface ui.Surface, session SessionInfo, perms permission.Checker, logger *slog.Logger) *Router {
	return &Router{
		surface: surface,
		session: session,
		perms:   perms,
		logger:  logger,
		index:   make(map[string]*View),
	}
}

// Register adds a view in sidebar order. Registering twice with the same id
// replaces the earlier entry.
func (r *Router) Register(v View) {
	if existing, ok := r.index[v.ID]; ok {
		*existing = v
		return
	}
	held := v
	r.views = append(r.views, &held)
	r.index[v.ID] = &held
}

// Activate switches to the named view: hides all views, shows the target,
// sets the heading and the active nav entry, and loads the view's data when
// the session is authenticated. An unknown id is a warned no-op.
func (r *Router) Activate(ctx context.Context, id string) {
	v, ok := r.index[id]
	if !ok {
		r.logger.Warn("view not found", "view_id", id)
		return
	}

	r.surface.HideAllViews()
	r.surface.ShowView(v.ID)
	r.surface.SetHeading(v.Label)
	r.surface.SetNavActive(v.ID)
	r.active = v.ID

	if r.session.IsAuthenticated() && v.Load != nil {
		v.Load(ctx)
	}
}

// Active returns the id of the currently shown view.
func (r *Router) Active() string {
	return r.active
}

// RefreshNav recomputes sidebar visibility for the current role: a resource
// entry is revealed by any GET permission, the dashboard whenever a session
// exists.
func (r *Router) RefreshNav() {
	authenticated := r.session.IsAuthenticated()
	role := r.session.Role()

	for _, v := range r.views {
		if v.Resource == "" {
			r.surface.SetNavVisible(v.ID, authenticated)
			continue
		}
		r.surface.SetNavVisible(v.ID, authenticated && r.perms.Allowed(role, v.Resource, permission.VerbGet))
	}
}
