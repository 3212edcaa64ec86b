package purchases

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/ui"
)

func TestPurchases(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Purchases Module Suite")
}

type mockAPI struct {
	list   []PurchaseRecord
	detail PurchaseDetail
	items  []PurchaseItem

	listError   error
	getError    error
	itemsError  error
	writeError  error
	getCalls    int
	itemsCalls  int
	createCalls int
	deleteCalls int
	lastInput   PurchaseInput
	lastID      int64
}

func (m *mockAPI) List(ctx context.Context) ([]PurchaseRecord, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.list, nil
}

func (m *mockAPI) Get(ctx context.Context, id int64) (PurchaseDetail, error) {
	m.getCalls++
	if m.getError != nil {
		return PurchaseDetail{}, m.getError
	}
	return m.detail, nil
}

func (m *mockAPI) Materials(ctx context.Context, id int64) ([]PurchaseItem, error) {
	m.itemsCalls++
	if m.itemsError != nil {
		return nil, m.itemsError
	}
	return m.items, nil
}

func (m *mockAPI) Create(ctx context.Context, input PurchaseInput) error {
	m.createCalls++
	m.lastInput = input
	return m.writeError
}

func (m *mockAPI) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	m.lastID = id
	return m.writeError
}

type mockTable struct {
	placeholder string
	rows        [][]string
	buttons     [][]ui.Button
}

func (m *mockTable) Reset(columns []string, actionColumn bool) {
	m.placeholder = ""
	m.rows = nil
	m.buttons = nil
}
func (m *mockTable) Placeholder(message string) { m.placeholder = message }
func (m *mockTable) AddRow(cells []string, buttons []ui.Button) {
	m.rows = append(m.rows, cells)
	m.buttons = append(m.buttons, buttons)
}

type mockDetail struct {
	fields      []ui.DetailField
	itemColumns []string
	itemRows    [][]string
	setItems    int
}

func (m *mockDetail) SetFields(fields []ui.DetailField) { m.fields = fields }
func (m *mockDetail) SetItems(columns []string, rows [][]string) {
	m.setItems++
	m.itemColumns = columns
	m.itemRows = rows
}

type mockWidgets struct {
	table       *mockTable
	detail      *mockDetail
	messages    []string
	detailOpens []string
	editorOpens []string
	editorClose int
}

func newMockWidgets() *mockWidgets {
	return &mockWidgets{table: &mockTable{}, detail: &mockDetail{}}
}

func (m *mockWidgets) Table() ui.Table            { return m.table }
func (m *mockWidgets) ShowMessage(message string) { m.messages = append(m.messages, message) }
func (m *mockWidgets) OpenEditor(title string)    { m.editorOpens = append(m.editorOpens, title) }
func (m *mockWidgets) CloseEditor()               { m.editorClose++ }
func (m *mockWidgets) Detail() ui.Detail          { return m.detail }
func (m *mockWidgets) OpenDetail(title string)    { m.detailOpens = append(m.detailOpens, title) }

type mockSurface struct {
	alerts    []string
	confirmed bool
	prompts   []string
}

func (m *mockSurface) Alert(level ui.Level, message string) {
	m.alerts = append(m.alerts, string(level)+": "+message)
}
func (m *mockSurface) Confirm(prompt string) bool {
	m.prompts = append(m.prompts, prompt)
	return m.confirmed
}

type mockForms struct {
	input PurchaseInput
	ok    bool
}

func (m *mockForms) PurchaseForm() (PurchaseInput, bool) { return m.input, m.ok }

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
			list: []PurchaseRecord{
				{RecordID: 1, Date: "2026-08-01", SupplierID: 3, EmployeeID: 5},
			},
			detail: PurchaseDetail{
				RecordID: 1, Date: "2026-08-01",
				SupplierID: 3, SupplierName: "Northchem Supply Co.",
				EmployeeID: 5, EmployeeName: "Chen Wei",
			},
			items: []PurchaseItem{
				{MaterialID: 7, Name: "Ethanol", Quantity: 40, UnitPrice: 2.5, Unit: "L"},
				{MaterialID: 9, Name: "Sulfuric Acid", Quantity: 10, UnitPrice: 8, Unit: "kg"},
			},
		}
		widgets = newMockWidgets()
		surface = &mockSurface{}
		forms = &mockForms{ok: true}
		roles = &staticRole{role: permission.RoleAdmin}
		controller = NewController(api, widgets, surface, forms, permission.NewChecker(), roles, testLogger)
		ctx = context.Background()
	})

	ginkgo.Describe("Load", func() {
		ginkgo.It("should render view and delete buttons for admin", func() {
			controller.Load(ctx)
			gomega.Expect(widgets.table.rows).To(gomega.HaveLen(1))
			gomega.Expect(widgets.table.buttons[0]).To(gomega.HaveLen(2))
		})

		ginkgo.It("should render only the view button for a buyer", func() {
			roles.role = permission.RoleBuyer
			controller.Load(ctx)
			gomega.Expect(widgets.table.buttons[0]).To(gomega.HaveLen(1))
			gomega.Expect(widgets.table.buttons[0][0].Label).To(gomega.Equal("View"))
		})

		ginkgo.It("should block the view entirely for roles without GET", func() {
			roles.role = permission.RoleDistributor
			controller.Load(ctx)
			gomega.Expect(widgets.messages).To(gomega.ContainElement("you do not have permission to view purchase records"))
		})
	})

	ginkgo.Describe("ViewDetail", func() {
		ginkgo.It("should fetch the record and its lines with two separate calls", func() {
			controller.ViewDetail(ctx, api.list[0])

			gomega.Expect(api.getCalls).To(gomega.Equal(1))
			gomega.Expect(api.itemsCalls).To(gomega.Equal(1))
			gomega.Expect(widgets.detailOpens).To(gomega.Equal([]string{"purchase record detail"}))
		})

		ginkgo.It("should render the joined names next to their ids", func() {
			controller.ViewDetail(ctx, api.list[0])

			gomega.Expect(widgets.detail.fields).To(gomega.HaveLen(4))
			gomega.Expect(widgets.detail.fields[2].Value).To(gomega.Equal("Northchem Supply Co. (id 3)"))
			gomega.Expect(widgets.detail.fields[3].Value).To(gomega.Equal("Chen Wei (id 5)"))
		})

		ginkgo.It("should render the line items in backend order", func() {
			controller.ViewDetail(ctx, api.list[0])

			gomega.Expect(widgets.detail.itemColumns).To(gomega.Equal([]string{"material_id", "name", "quantity", "unit", "unit_price"}))
			gomega.Expect(widgets.detail.itemRows).To(gomega.HaveLen(2))
			gomega.Expect(widgets.detail.itemRows[0][1]).To(gomega.Equal("Ethanol"))
			gomega.Expect(widgets.detail.itemRows[1][1]).To(gomega.Equal("Sulfuric Acid"))
		})

		ginkgo.It("should abort on a failed record fetch without opening the detail", func() {
			api.getError = errors.New("boom")
			controller.ViewDetail(ctx, api.list[0])

			gomega.Expect(widgets.detailOpens).To(gomega.BeEmpty())
			gomega.Expect(surface.alerts).To(gomega.HaveLen(1))
		})

		ginkgo.It("should abort on a failed line fetch without opening the detail", func() {
			api.itemsError = errors.New("boom")
			controller.ViewDetail(ctx, api.list[0])

			gomega.Expect(widgets.detailOpens).To(gomega.BeEmpty())
			gomega.Expect(widgets.detail.setItems).To(gomega.BeZero())
		})
	})

	ginkgo.Describe("OpenCreate", func() {
		ginkgo.It("should send the line rows verbatim in form order", func() {
			forms.input = PurchaseInput{
				SupplierID: 3, Date: "2026-08-20", EmployeeID: 5,
				Materials: []PurchaseLine{
					{MaterialID: 9, Quantity: 5, UnitPrice: 8},
					{MaterialID: 7, Quantity: 100, UnitPrice: 2.5},
				},
			}
			controller.OpenCreate(ctx)

			gomega.Expect(api.createCalls).To(gomega.Equal(1))
			gomega.Expect(api.lastInput.Materials).To(gomega.HaveLen(2))
			gomega.Expect(api.lastInput.Materials[0].MaterialID).To(gomega.Equal(int64(9)))
			gomega.Expect(api.lastInput.Materials[1].MaterialID).To(gomega.Equal(int64(7)))
		})

		ginkgo.It("should send an empty line list verbatim rather than rejecting it", func() {
			forms.input = PurchaseInput{SupplierID: 3, Date: "2026-08-20", EmployeeID: 5}
			controller.OpenCreate(ctx)

			gomega.Expect(api.createCalls).To(gomega.Equal(1))
			gomega.Expect(api.lastInput.Materials).To(gomega.BeEmpty())
		})

		ginkgo.It("should refuse for roles without POST", func() {
			roles.role = permission.RoleWorker
			controller.OpenCreate(ctx)

			gomega.Expect(api.createCalls).To(gomega.BeZero())
			gomega.Expect(surface.alerts).To(gomega.ContainElement("error: you do not have permission to add purchase records"))
		})

		ginkgo.It("should keep the editor open when the backend rejects the record", func() {
			api.writeError = errors.New("insufficient stock for material 9")
			forms.input = PurchaseInput{SupplierID: 3}
			controller.OpenCreate(ctx)

			gomega.Expect(widgets.editorClose).To(gomega.BeZero())
			gomega.Expect(surface.alerts).To(gomega.ContainElement("error: failed to add purchase record: insufficient stock for material 9"))
		})
	})

	ginkgo.Describe("Remove", func() {
		ginkgo.It("should warn that deletion adjusts stock before deleting", func() {
			surface.confirmed = true
			controller.Remove(ctx, api.list[0])

			gomega.Expect(surface.prompts[0]).To(gomega.ContainSubstring("will adjust stock"))
			gomega.Expect(api.deleteCalls).To(gomega.Equal(1))
		})

		ginkgo.It("should issue no request when declined", func() {
			surface.confirmed = false
			controller.Remove(ctx, api.list[0])
			gomega.Expect(api.deleteCalls).To(gomega.BeZero())
		})
	})
})
