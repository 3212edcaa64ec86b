// Package production implements the production record workflows. Production
// records cannot be deleted; the controller has no remove operation at all,
// not merely a hidden button.
package production

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
}

type RoleProvider interface {
	Role() permission.Role
}

type FormSource interface {
	ProductionForm() (input ProductionInput, ok bool)
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
		ID:       string(permission.ResourceProductionRecords),
		Label:    "Production Records",
		Resource: permission.ResourceProductionRecords,
		Load:     c.Load,
	}
}

func (c *Controller) Load(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourceProductionRecords, permission.VerbGet) {
		c.widgets.ShowMessage("you do not have permission to view production records")
		return
	}

	list, err := c.api.List(ctx)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load production records: %v", err))
		return
	}

	actions := []view.Action[ProductionRecord]{
		{Label: "View", Style: "primary", Resource: permission.ResourceProductionRecords, Verb: permission.VerbGet,
			Handler: func(r ProductionRecord) { c.ViewDetail(ctx, r) }},
	}
	view.RenderTable(c.widgets.Table(), list, Columns(), Cells, actions, c.roles.Role(), c.perms)
}

func (c *Controller) ViewDetail(ctx context.Context, r ProductionRecord) {
	detail, err := c.api.Get(ctx, r.RecordID)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load production record detail: %v", err))
		return
	}

	items, err := c.api.Materials(ctx, r.RecordID)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load production record detail: %v", err))
		return
	}

	c.widgets.OpenDetail("production record detail")
	d := c.widgets.Detail()
	d.SetFields([]ui.DetailField{
		{Label: "record_id", Value: strconv.FormatInt(detail.RecordID, 10)},
		{Label: "date", Value: detail.Date},
		{Label: "product", Value: fmt.Sprintf("%s (id %d)", detail.ProductName, detail.ProductID)},
		{Label: "line", Value: fmt.Sprintf("%s (id %d)", detail.LineName, detail.LineID)},
		{Label: "theoretical_output", Value: strconv.FormatFloat(detail.TheoreticalOutput, 'f', -1, 64)},
		{Label: "actual_output", Value: strconv.FormatFloat(detail.ActualOutput, 'f', -1, 64)},
	})

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, ItemCells(it))
	}
	d.SetItems(ItemColumns(), rows)
}

func (c *Controller) OpenCreate(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourceProductionRecords, permission.VerbPost) {
		c.surface.Alert(ui.LevelError, "you do not have permission to add production records")
		return
	}

	c.widgets.OpenEditor("add production record")
	input, ok := c.forms.ProductionForm()
	if !ok {
		c.widgets.CloseEditor()
		return
	}
	c.Submit(ctx, input)
}

func (c *Controller) Submit(ctx context.Context, input ProductionInput) {
	if err := c.api.Create(ctx, input); err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to add production record: %v", err))
		return
	}
	c.surface.Alert(ui.LevelSuccess, "production record added")
	c.widgets.CloseEditor()
	c.Load(ctx)
}
