// Package purchases implements the purchase record workflows: list, detail
// with nested material lines, append-only create and delete. Existing
// records are never edited in place.
package purchases

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/ui"
	"github.com/chemstack/chemconsole/internal/view"
)

type Surface interface {
	ui.Alerter
	ui.Confirmer
}

type RoleProvider interface {
	Role() permission.Role
}

// FormSource collects a new purchase record, including its dynamically
// grown line-item rows, in the order the user left them.
type FormSource interface {
	PurchaseForm() (input PurchaseInput, ok bool)
}

type Controller struct {
	api     API
	widgets ui.DetailView
	surface Surface
	forms   FormSource
	perms   permission.Checker
	roles   RoleProvider
	logger  *slog.Logger
}

func NewController(
	api API,
	widgets ui.DetailView,
	surface Surface,
	forms FormSource,
	perms permission.Checker,
	roles RoleProvider,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		api:     api,
		widgets: widgets,
		surface: surface,
		forms:   forms,
		perms:   perms,
		roles:   roles,
		logger:  logger,
	}
}

func (c *Controller) View() view.View {
	return view.View{
		ID:       string(permission.ResourcePurchaseRecords),
		Label:    "Purchase Records",
		Resource: permission.ResourcePurchaseRecords,
		Load:     c.Load,
	}
}

func (c *Controller) Load(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourcePurchaseRecords, permission.VerbGet) {
		c.widgets.ShowMessage("you do not have permission to view purchase records")
		return
	}

	list, err := c.api.List(ctx)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load purchase records: %v", err))
		return
	}

	actions := []view.Action[PurchaseRecord]{
		{Label: "View", Style: "primary", Resource: permission.ResourcePurchaseRecords, Verb: permission.VerbGet,
			Handler: func(r PurchaseRecord) { c.ViewDetail(ctx, r) }},
		{Label: "Delete", Style: "danger", Resource: permission.ResourcePurchaseRecords, Verb: permission.VerbDelete,
			Handler: func(r PurchaseRecord) { c.Remove(ctx, r) }},
	}
	view.RenderTable(c.widgets.Table(), list, Columns(), Cells, actions, c.roles.Role(), c.perms)
}

// ViewDetail fetches the record and its material lines with two separate
// calls and renders both into the detail surface.
func (c *Controller) ViewDetail(ctx context.Context, r PurchaseRecord) {
	detail, err := c.api.Get(ctx, r.RecordID)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load purchase record detail: %v", err))
		return
	}

	items, err := c.api.Materials(ctx, r.RecordID)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load purchase record detail: %v", err))
		return
	}

	c.widgets.OpenDetail("purchase record detail")
	d := c.widgets.Detail()
	d.SetFields([]ui.DetailField{
		{Label: "record_id", Value: strconv.FormatInt(detail.RecordID, 10)},
		{Label: "date", Value: detail.Date},
		{Label: "supplier", Value: fmt.Sprintf("%s (id %d)", detail.SupplierName, detail.SupplierID)},
		{Label: "employee", Value: fmt.Sprintf("%s (id %d)", detail.EmployeeName, detail.EmployeeID)},
	})

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, ItemCells(it))
	}
	d.SetItems(ItemColumns(), rows)
}

// OpenCreate runs the append-only create workflow. Whatever line rows are
// present at submission are sent verbatim; an empty list is not rejected
// here.
func (c *Controller) OpenCreate(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourcePurchaseRecords, permission.VerbPost) {
		c.surface.Alert(ui.LevelError, "you do not have permission to add purchase records")
		return
	}

	c.widgets.OpenEditor("add purchase record")
	input, ok := c.forms.PurchaseForm()
	if !ok {
		c.widgets.CloseEditor()
		return
	}
	c.Submit(ctx, input)
}

func (c *Controller) Submit(ctx context.Context, input PurchaseInput) {
	if err := c.api.Create(ctx, input); err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to add purchase record: %v", err))
		return
	}
	c.surface.Alert(ui.LevelSuccess, "purchase record added")
	c.widgets.CloseEditor()
	c.Load(ctx)
}

func (c *Controller) Remove(ctx context.Context, r PurchaseRecord) {
	if !c.surface.Confirm(fmt.Sprintf("delete purchase record %d? this cannot be undone and will adjust stock", r.RecordID)) {
		return
	}

	if err := c.api.Delete(ctx, r.RecordID); err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("delete failed: %v", err))
		return
	}
	c.surface.Alert(ui.LevelSuccess, "purchase record deleted")
	c.Load(ctx)
}
