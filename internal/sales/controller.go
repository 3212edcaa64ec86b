// Package sales implements the sale record workflows, mirroring purchases
// with products as the nested line items.
package sales

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

type FormSource interface {
	SaleForm() (input SaleInput, ok bool)
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
		ID:       string(permission.ResourceSaleRecords),
		Label:    "Sale Records",
		Resource: permission.ResourceSaleRecords,
		Load:     c.Load,
	}
}

func (c *Controller) Load(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourceSaleRecords, permission.VerbGet) {
		c.widgets.ShowMessage("you do not have permission to view sale records")
		return
	}

	list, err := c.api.List(ctx)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load sale records: %v", err))
		return
	}

	actions := []view.Action[SaleRecord]{
		{Label: "View", Style: "primary", Resource: permission.ResourceSaleRecords, Verb: permission.VerbGet,
			Handler: func(r SaleRecord) { c.ViewDetail(ctx, r) }},
		{Label: "Delete", Style: "danger", Resource: permission.ResourceSaleRecords, Verb: permission.VerbDelete,
			Handler: func(r SaleRecord) { c.Remove(ctx, r) }},
	}
	view.RenderTable(c.widgets.Table(), list, Columns(), Cells, actions, c.roles.Role(), c.perms)
}

func (c *Controller) ViewDetail(ctx context.Context, r SaleRecord) {
	detail, err := c.api.Get(ctx, r.RecordID)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load sale record detail: %v", err))
		return
	}

	items, err := c.api.Products(ctx, r.RecordID)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load sale record detail: %v", err))
		return
	}

	c.widgets.OpenDetail("sale record detail")
	d := c.widgets.Detail()
	d.SetFields([]ui.DetailField{
		{Label: "record_id", Value: strconv.FormatInt(detail.RecordID, 10)},
		{Label: "date", Value: detail.Date},
		{Label: "customer", Value: fmt.Sprintf("%s (id %d)", detail.CustomerName, detail.CustomerID)},
		{Label: "employee", Value: fmt.Sprintf("%s (id %d)", detail.EmployeeName, detail.EmployeeID)},
	})

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, ItemCells(it))
	}
	d.SetItems(ItemColumns(), rows)
}

func (c *Controller) OpenCreate(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourceSaleRecords, permission.VerbPost) {
		c.surface.Alert(ui.LevelError, "you do not have permission to add sale records")
		return
	}

	c.widgets.OpenEditor("add sale record")
	input, ok := c.forms.SaleForm()
	if !ok {
		c.widgets.CloseEditor()
		return
	}
	c.Submit(ctx, input)
}

func (c *Controller) Submit(ctx context.Context, input SaleInput) {
	if err := c.api.Create(ctx, input); err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to add sale record: %v", err))
		return
	}
	c.surface.Alert(ui.LevelSuccess, "sale record added")
	c.widgets.CloseEditor()
	c.Load(ctx)
}

func (c *Controller) Remove(ctx context.Context, r SaleRecord) {
	if !c.surface.Confirm(fmt.Sprintf("delete sale record %d? this cannot be undone and will adjust stock", r.RecordID)) {
		return
	}

	if err := c.api.Delete(ctx, r.RecordID); err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("delete failed: %v", err))
		return
	}
	c.surface.Alert(ui.LevelSuccess, "sale record deleted")
	c.Load(ctx)
}
