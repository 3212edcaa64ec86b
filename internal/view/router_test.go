package view

import (
	"context"
	"io"
	"log/slog"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/ui"
)

// mockSurface records the chrome operations the router performs.
type mockSurface struct {
	hideAllCalls int
	shownViews   []string
	headings     []string
	navActive    string
	navVisible   map[string]bool

	alerts      []string
	confirmed   bool
	loginShown  int
	mainShown   int
	loginErrors []string
	userInfo    string
}

func newMockSurface() *mockSurface {
	return &mockSurface{navVisible: make(map[string]bool)}
}

func (m *mockSurface) Alert(level ui.Level, message string) {
	m.alerts = append(m.alerts, string(level)+": "+message)
}
func (m *mockSurface) Confirm(prompt string) bool { return m.confirmed }
func (m *mockSurface) ShowLogin()                 { m.loginShown++ }
func (m *mockSurface) ShowMain()                  { m.mainShown++ }
func (m *mockSurface) SetLoginError(message string) {
	m.loginErrors = append(m.loginErrors, message)
}
func (m *mockSurface) SetUserInfo(text string) { m.userInfo = text }
func (m *mockSurface) HideAllViews()           { m.hideAllCalls++ }
func (m *mockSurface) ShowView(id string)      { m.shownViews = append(m.shownViews, id) }
func (m *mockSurface) SetHeading(text string)  { m.headings = append(m.headings, text) }
func (m *mockSurface) SetNavActive(id string)  { m.navActive = id }
func (m *mockSurface) SetNavVisible(id string, visible bool) {
	m.navVisible[id] = visible
}

type mockSession struct {
	authenticated bool
	role          permission.Role
}

func (m *mockSession) IsAuthenticated() bool { return m.authenticated }
func (m *mockSession) Role() permission.Role { return m.role }

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = ginkgo.Describe("Router", func() {
	var (
		surface *mockSurface
		sess    *mockSession
		router  *Router
		ctx     context.Context
	)

	ginkgo.BeforeEach(func() {
		surface = newMockSurface()
		sess = &mockSession{authenticated: true, role: permission.RoleAdmin}
		router = NewRouter(surface, sess, permission.NewChecker(), discardLogger)
		ctx = context.Background()
	})

	ginkgo.Describe("Activate", func() {
		ginkgo.It("should hide everything, show the target and set heading and nav", func() {
			router.Register(View{ID: "materials", Label: "Materials", Resource: permission.ResourceMaterials})
			router.Activate(ctx, "materials")

			gomega.Expect(surface.hideAllCalls).To(gomega.Equal(1))
			gomega.Expect(surface.shownViews).To(gomega.Equal([]string{"materials"}))
			gomega.Expect(surface.headings).To(gomega.Equal([]string{"Materials"}))
			gomega.Expect(surface.navActive).To(gomega.Equal("materials"))
			gomega.Expect(router.Active()).To(gomega.Equal("materials"))
		})

		ginkgo.It("should load the view's data when authenticated", func() {
			loads := 0
			router.Register(View{ID: "materials", Label: "Materials", Load: func(context.Context) { loads++ }})
			router.Activate(ctx, "materials")
			gomega.Expect(loads).To(gomega.Equal(1))
		})

		ginkgo.It("should not load data when unauthenticated", func() {
			loads := 0
			sess.authenticated = false
			router.Register(View{ID: "materials", Label: "Materials", Load: func(context.Context) { loads++ }})
			router.Activate(ctx, "materials")
			gomega.Expect(loads).To(gomega.BeZero())
		})

		ginkgo.It("should ignore an unknown view id entirely", func() {
			router.Register(View{ID: "materials", Label: "Materials"})
			router.Activate(ctx, "materials")
			router.Activate(ctx, "ghosts")

			gomega.Expect(router.Active()).To(gomega.Equal("materials"))
			gomega.Expect(surface.hideAllCalls).To(gomega.Equal(1))
		})

		ginkgo.It("should replace a view registered twice with the same id", func() {
			first, second := 0, 0
			router.Register(View{ID: "materials", Label: "Materials", Load: func(context.Context) { first++ }})
			router.Register(View{ID: "materials", Label: "Materials v2", Load: func(context.Context) { second++ }})
			router.Activate(ctx, "materials")

			gomega.Expect(first).To(gomega.BeZero())
			gomega.Expect(second).To(gomega.Equal(1))
			gomega.Expect(surface.headings).To(gomega.Equal([]string{"Materials v2"}))
		})
	})

	ginkgo.Describe("RefreshNav", func() {
		ginkgo.BeforeEach(func() {
			router.Register(View{ID: DashboardID, Label: "Dashboard"})
			router.Register(View{ID: "materials", Label: "Materials", Resource: permission.ResourceMaterials})
			router.Register(View{ID: "purchase_records", Label: "Purchases", Resource: permission.ResourcePurchaseRecords})
			router.Register(View{ID: "sale_records", Label: "Sales", Resource: permission.ResourceSaleRecords})
		})

		ginkgo.It("should hide everything when logged out", func() {
			sess.authenticated = false
			router.RefreshNav()

			gomega.Expect(surface.navVisible[DashboardID]).To(gomega.BeFalse())
			gomega.Expect(surface.navVisible["materials"]).To(gomega.BeFalse())
		})

		ginkgo.It("should reveal exactly the views the role may GET, plus the dashboard", func() {
			sess.role = permission.RoleBuyer
			router.RefreshNav()

			gomega.Expect(surface.navVisible[DashboardID]).To(gomega.BeTrue())
			gomega.Expect(surface.navVisible["materials"]).To(gomega.BeTrue())
			gomega.Expect(surface.navVisible["purchase_records"]).To(gomega.BeTrue())
			gomega.Expect(surface.navVisible["sale_records"]).To(gomega.BeFalse())
		})

		ginkgo.It("should recompute visibility when the role changes", func() {
			sess.role = permission.RoleBuyer
			router.RefreshNav()
			gomega.Expect(surface.navVisible["sale_records"]).To(gomega.BeFalse())

			sess.role = permission.RoleDistributor
			router.RefreshNav()
			gomega.Expect(surface.navVisible["sale_records"]).To(gomega.BeTrue())
			gomega.Expect(surface.navVisible["purchase_records"]).To(gomega.BeFalse())
		})
	})
})
