package sales

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/ui"
)

func TestSales(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Sales Module Suite")
}

type mockAPI struct {
	list   []SaleRecord
	detail SaleDetail
	items  []SaleItem

	createCalls int
	deleteCalls int
	lastInput   SaleInput
}

func (m *mockAPI) List(ctx context.Context) ([]SaleRecord, error)        { return m.list, nil }
func (m *mockAPI) Get(ctx context.Context, id int64) (SaleDetail, error) { return m.detail, nil }
func (m *mockAPI) Products(ctx context.Context, id int64) ([]SaleItem, error) {
	return m.items, nil
}
func (m *mockAPI) Create(ctx context.Context, input SaleInput) error {
	m.createCalls++
	m.lastInput = input
	return nil
}
func (m *mockAPI) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	return nil
}

type mockTable struct {
	rows    [][]string
	buttons [][]ui.Button
}

func (m *mockTable) Reset(columns []string, actionColumn bool) {
	m.rows = nil
	m.buttons = nil
}
func (m *mockTable) Placeholder(message string) {}
func (m *mockTable) AddRow(cells []string, buttons []ui.Button) {
	m.rows = append(m.rows, cells)
	m.buttons = append(m.buttons, buttons)
}

type mockDetail struct {
	fields  []ui.DetailField
	columns []string
	rows    [][]string
}

func (m *mockDetail) SetFields(fields []ui.DetailField) { m.fields = fields }
func (m *mockDetail) SetItems(columns []string, rows [][]string) {
	m.columns = columns
	m.rows = rows
}

type mockWidgets struct {
	table       *mockTable
	detail      *mockDetail
	messages    []string
	editorClose int
	detailOpens []string
}

func newMockWidgets() *mockWidgets {
	return &mockWidgets{table: &mockTable{}, detail: &mockDetail{}}
}

func (m *mockWidgets) Table() ui.Table            { return m.table }
func (m *mockWidgets) ShowMessage(message string) { m.messages = append(m.messages, message) }
func (m *mockWidgets) OpenEditor(title string)    {}
func (m *mockWidgets) CloseEditor()               { m.editorClose++ }
func (m *mockWidgets) Detail() ui.Detail          { return m.detail }
func (m *mockWidgets) OpenDetail(title string)    { m.detailOpens = append(m.detailOpens, title) }

type mockSurface struct {
	alerts    []string
	confirmed bool
}

func (m *mockSurface) Alert(level ui.Level, message string) {
	m.alerts = append(m.alerts, string(level)+": "+message)
}
func (m *mockSurface) Confirm(prompt string) bool { return m.confirmed }

type mockForms struct {
	input SaleInput
	ok    bool
}

func (m *mockForms) SaleForm() (SaleInput, bool) { return m.input, m.ok }

type staticRole struct {
	role permission.Role
}

func (s *staticRole) Role() permission.Role { return s.role }

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = ginkgo.Describe("Controller", func() {
	var (
		api        *mockAPI
		widgets    *mockWidgets
		surface    *mockSurface
		forms      *mockForms
		roles      *staticRole
		controller *Controller
		ctx        context.Context
	)

	ginkgo.BeforeEach(func() {
		api = &mockAPI{
			list: []SaleRecord{{RecordID: 4, Date: "2026-08-15", CustomerID: 2, EmployeeID: 5}},
			detail: SaleDetail{
				RecordID: 4, Date: "2026-08-15",
				CustomerID: 2, CustomerName: "Delta Agro Ltd.",
				EmployeeID: 5, EmployeeName: "Maria Lopez",
			},
			items: []SaleItem{{ProductID: 2, Name: "Industrial Cleaner", Quantity: 12, UnitPrice: 15, Unit: "L"}},
		}
		widgets = newMockWidgets()
		surface = &mockSurface{}
		forms = &mockForms{ok: true}
		roles = &staticRole{role: permission.RoleDistributor}
		controller = NewController(api, widgets, surface, forms, permission.NewChecker(), roles, testLogger)
		ctx = context.Background()
	})

	ginkgo.It("should let a distributor view but not delete", func() {
		controller.Load(ctx)
		gomega.Expect(widgets.table.buttons[0]).To(gomega.HaveLen(1))
		gomega.Expect(widgets.table.buttons[0][0].Label).To(gomega.Equal("View"))
	})

	ginkgo.It("should give an admin the delete button too", func() {
		roles.role = permission.RoleAdmin
		controller.Load(ctx)
		gomega.Expect(widgets.table.buttons[0]).To(gomega.HaveLen(2))
	})

	ginkgo.It("should block a buyer from the sale list without a request", func() {
		roles.role = permission.RoleBuyer
		controller.Load(ctx)
		gomega.Expect(widgets.messages).To(gomega.ContainElement("you do not have permission to view sale records"))
	})

	ginkgo.It("should render the customer detail with its product lines", func() {
		controller.ViewDetail(ctx, api.list[0])

		gomega.Expect(widgets.detailOpens).To(gomega.Equal([]string{"sale record detail"}))
		gomega.Expect(widgets.detail.fields[2].Value).To(gomega.Equal("Delta Agro Ltd. (id 2)"))
		gomega.Expect(widgets.detail.columns).To(gomega.Equal([]string{"product_id", "name", "quantity", "unit", "unit_price"}))
	})

	ginkgo.It("should send the product lines in form order, empty included", func() {
		forms.input = SaleInput{
			CustomerID: 2, Date: "2026-08-22", EmployeeID: 5,
			Products: []SaleLine{{ProductID: 2, Quantity: 6, UnitPrice: 15}},
		}
		controller.OpenCreate(ctx)
		gomega.Expect(api.createCalls).To(gomega.Equal(1))
		gomega.Expect(api.lastInput.Products).To(gomega.HaveLen(1))

		forms.input = SaleInput{CustomerID: 2, Date: "2026-08-23", EmployeeID: 5}
		roles.role = permission.RoleAdmin
		controller.OpenCreate(ctx)
		gomega.Expect(api.createCalls).To(gomega.Equal(2))
		gomega.Expect(api.lastInput.Products).To(gomega.BeEmpty())
	})

	ginkgo.It("should delete only after confirmation", func() {
		surface.confirmed = false
		controller.Remove(ctx, api.list[0])
		gomega.Expect(api.deleteCalls).To(gomega.BeZero())

		surface.confirmed = true
		controller.Remove(ctx, api.list[0])
		gomega.Expect(api.deleteCalls).To(gomega.Equal(1))
	})
})
