// Package console wires the controllers, the view router and the terminal
// surface into an interactive command loop.
package console

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/chemstack/chemconsole/internal"
	"github.com/chemstack/chemconsole/internal/apigateway"
	"github.com/chemstack/chemconsole/internal/auth"
	"github.com/chemstack/chemconsole/internal/materials"
	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/production"
	"github.com/chemstack/chemconsole/internal/products"
	"github.com/chemstack/chemconsole/internal/purchases"
	"github.com/chemstack/chemconsole/internal/sales"
	"github.com/chemstack/chemconsole/internal/session"
	"github.com/chemstack/chemconsole/internal/ui/term"
	"github.com/chemstack/chemconsole/internal/view"
)

// screen is one resource view plus the affordances the command loop drives
// directly: printing the table, dispatching row buttons, opening the add
// form.
type screen struct {
	widgets    *term.ResourceView
	openCreate func(ctx context.Context)
}

type App struct {
	surface *term.Surface
	session *session.Manager
	router  *view.Router
	auth    *auth.Controller
	logger  *slog.Logger

	screens map[string]*screen
}

func NewApp(cfg *internal.Config, store session.Store, in io.Reader, out io.Writer, logger *slog.Logger) *App {
	surface := term.NewSurface(in, out)
	forms := term.NewForms(surface)

	sess := session.NewManager(store, logger)
	perms := permission.NewChecker()
	api := apigateway.NewClient(cfg.API, sess, logger)

	router := view.NewRouter(surface, sess, perms, logger)
	app := &App{
		surface: surface,
		session: sess,
		router:  router,
		logger:  logger,
		screens: make(map[string]*screen),
	}
	app.auth = auth.NewController(api, sess, surface, router, logger)

	router.Register(view.View{ID: view.DashboardID, Label: "Dashboard"})
	surface.RegisterNav(view.DashboardID, "Dashboard")

	matView := term.NewResourceView("Materials", out)
	matCtrl := materials.NewController(materials.NewClient(api), matView, surface, forms, perms, sess, logger)
	app.register(matCtrl.View(), matView, matCtrl.OpenCreate)

	prodView := term.NewResourceView("Products", out)
	prodCtrl := products.NewController(products.NewClient(api), prodView, surface, forms, perms, sess, logger)
	app.register(prodCtrl.View(), prodView, prodCtrl.OpenCreate)

	purView := term.NewResourceView("Purchase Records", out)
	purCtrl := purchases.NewController(purchases.NewClient(api), purView, surface, forms, perms, sess, logger)
	app.register(purCtrl.View(), purView, purCtrl.OpenCreate)

	saleView := term.NewResourceView("Sale Records", out)
	saleCtrl := sales.NewController(sales.NewClient(api), saleView, surface, forms, perms, sess, logger)
	app.register(saleCtrl.View(), saleView, saleCtrl.OpenCreate)

	mfgView := term.NewResourceView("Production Records", out)
	mfgCtrl := production.NewController(production.NewClient(api), mfgView, surface, forms, perms, sess, logger)
	app.register(mfgCtrl.View(), mfgView, mfgCtrl.OpenCreate)

	return app
}

func (a *App) register(v view.View, widgets *term.ResourceView, openCreate func(ctx context.Context)) {
	a.router.Register(v)
	a.surface.RegisterNav(v.ID, v.Label)
	a.screens[v.ID] = &screen{widgets: widgets, openCreate: openCreate}
}

// Run restores any stored session and then reads commands until quit or EOF.
func (a *App) Run(ctx context.Context) error {
	if a.auth.UpdateLoginStatus(ctx) {
		a.router.Activate(ctx, view.DashboardID)
	}

	for {
		a.surface.Printf("> ")
		line, err := a.surface.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		a.dispatch(ctx, fields)
	}
}

func (a *App) dispatch(ctx context.Context, fields []string) {
	switch fields[0] {
	case "help":
		a.printHelp()
	case "login":
		if len(fields) != 2 {
			a.surface.Printf("usage: login <username>\n")
			return
		}
		a.surface.Printf("password: ")
		password, err := a.surface.ReadLine()
		if err != nil {
			return
		}
		a.auth.Login(ctx, fields[1], password)
	case "logout":
		a.auth.Logout(ctx)
	case "views":
		for _, id := range a.surface.VisibleNav() {
			a.surface.Printf("  %s\n", id)
		}
	case "go":
		if len(fields) != 2 {
			a.surface.Printf("usage: go <view>\n")
			return
		}
		a.router.Activate(ctx, fields[1])
		a.printActive()
	case "refresh":
		a.router.Activate(ctx, a.router.Active())
		a.printActive()
	case "add":
		s, ok := a.activeScreen()
		if !ok {
			a.surface.Printf("no resource view active\n")
			return
		}
		s.openCreate(ctx)
		a.printActive()
	case "edit", "delete", "view":
		if len(fields) != 2 {
			a.surface.Printf("usage: %s <id>\n", fields[0])
			return
		}
		s, ok := a.activeScreen()
		if !ok {
			a.surface.Printf("no resource view active\n")
			return
		}
		label := strings.ToUpper(fields[0][:1]) + fields[0][1:]
		if !s.widgets.Invoke(fields[1], label) {
			a.surface.Printf("no %s action on row %s\n", fields[0], fields[1])
			return
		}
		if fields[0] != "view" {
			a.printActive()
		}
	default:
		a.surface.Printf("unknown command: %s (try help)\n", fields[0])
	}
}

func (a *App) activeScreen() (*screen, bool) {
	s, ok := a.screens[a.router.Active()]
	return s, ok
}

func (a *App) printActive() {
	if s, ok := a.activeScreen(); ok {
		s.widgets.Print()
	}
}

func (a *App) printHelp() {
	a.surface.Printf(`commands:
  login <username>   authenticate (prompts for password)
  logout             clear the session
  views              list views visible to the current role
  go <view>          switch view and load its data
  refresh            reload the active view
  add                open the add form for the active view
  edit <id>          edit the row with that id
  delete <id>        delete the row with that id (asks for confirmation)
  view <id>          show the record detail for that id
  quit               exit
`)
}
