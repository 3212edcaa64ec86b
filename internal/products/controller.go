// Package products implements the product list, edit and delete workflows.
package products

import (
	"context"
	"fmt"
	"log/slog"

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
	ProductForm(existing *Product) (input ProductInput, ok bool)
}

type Controller struct {
	api     API
	widgets ui.ResourceView
	surface Surface
	forms   FormSource
	perms   permission.Checker
	roles   RoleProvider
	logger  *slog.Logger
}

func NewController(
	api API,
	widgets ui.ResourceView,
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
		ID:       string(permission.ResourceProducts),
		Label:    "Products",
		Resource: permission.ResourceProducts,
		Load:     c.Load,
	}
}

func (c *Controller) Load(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourceProducts, permission.VerbGet) {
		c.widgets.ShowMessage("you do not have permission to view products")
		return
	}

	list, err := c.api.List(ctx)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load products: %v", err))
		return
	}

	actions := []view.Action[Product]{
		{Label: "Edit", Style: "info", Resource: permission.ResourceProducts, Verb: permission.VerbPut,
			Handler: func(p Product) { c.OpenEdit(ctx, p) }},
		{Label: "Delete", Style: "danger", Resource: permission.ResourceProducts, Verb: permission.VerbDelete,
			Handler: func(p Product) { c.Remove(ctx, p) }},
	}
	view.RenderTable(c.widgets.Table(), list, Columns(), Cells, actions, c.roles.Role(), c.perms)
}

func (c *Controller) OpenCreate(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourceProducts, permission.VerbPost) {
		c.surface.Alert(ui.LevelError, "you do not have permission to add products")
		return
	}

	c.widgets.OpenEditor("add product")
	input, ok := c.forms.ProductForm(nil)
	if !ok {
		c.widgets.CloseEditor()
		return
	}
	c.Submit(ctx, view.ModeAdd, 0, input)
}

func (c *Controller) OpenEdit(ctx context.Context, p Product) {
	c.widgets.OpenEditor("edit product")
	input, ok := c.forms.ProductForm(&p)
	if !ok {
		c.widgets.CloseEditor()
		return
	}
	c.Submit(ctx, view.ModeEdit, p.ProductID, input)
}

func (c *Controller) Submit(ctx context.Context, mode view.FormMode, id int64, input ProductInput) {
	var err error
	switch mode {
	case view.ModeAdd:
		err = c.api.Create(ctx, input)
	case view.ModeEdit:
		err = c.api.Update(ctx, id, input)
	default:
		c.logger.Warn("unknown form mode", "mode", mode)
		return
	}

	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("operation failed: %v", err))
		return
	}

	if mode == view.ModeAdd {
		c.surface.Alert(ui.LevelSuccess, "product added")
	} else {
		c.surface.Alert(ui.LevelSuccess, "product updated")
	}
	c.widgets.CloseEditor()
	c.Load(ctx)
}

func (c *Controller) Remove(ctx context.Context, p Product) {
	if !c.surface.Confirm(fmt.Sprintf("delete product %s (id %d)?", p.Name, p.ProductID)) {
		return
	}

	if err := c.api.Delete(ctx, p.ProductID); err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("delete failed: %v", err))
		return
	}
	c.surface.Alert(ui.LevelSuccess, "product deleted")
	c.Load(ctx)
}
