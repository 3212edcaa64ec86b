// Package materials implements the materials list, edit and delete
// workflows.
package materials

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/ui"
	"github.com/chemstack/chemconsole/internal/view"
)

// Surface is the application chrome the controller notifies through.
type Surface interface {
	ui.Alerter
	ui.Confirmer
}

// RoleProvider yields the current session role for permission gating.
type RoleProvider interface {
	Role() permission.Role
}

// FormSource collects material form input from the user. ok=false means the
// form was abandoned.
type FormSource interface {
	MaterialForm(existing *Material) (input MaterialInput, ok bool)
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

// View describes this controller's entry in the view router.
func (c *Controller) View() view.View {
	return view.View{
		ID:       string(permission.ResourceMaterials),
		Label:    "Materials",
		Resource: permission.ResourceMaterials,
		Load:     c.Load,
	}
}

// Load renders the material list, or an in-place message when the role lacks
// read permission; no request is made in that case.
func (c *Controller) Load(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourceMaterials, permission.VerbGet) {
		c.widgets.ShowMessage("you do not have permission to view materials")
		return
	}

	list, err := c.api.List(ctx)
	if err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("failed to load materials: %v", err))
		return
	}

	actions := []view.Action[Material]{
		{Label: "Edit", Style: "info", Resource: permission.ResourceMaterials, Verb: permission.VerbPut,
			Handler: func(m Material) { c.OpenEdit(ctx, m) }},
		{Label: "Delete", Style: "danger", Resource: permission.ResourceMaterials, Verb: permission.VerbDelete,
			Handler: func(m Material) { c.Remove(ctx, m) }},
	}
	view.RenderTable(c.widgets.Table(), list, Columns(), Cells, actions, c.roles.Role(), c.perms)
}

// OpenCreate runs the add workflow. The add affordance is gated by the same
// capability table as everything else, as a POST check.
func (c *Controller) OpenCreate(ctx context.Context) {
	if !c.perms.Allowed(c.roles.Role(), permission.ResourceMaterials, permission.VerbPost) {
		c.surface.Alert(ui.LevelError, "you do not have permission to add materials")
		return
	}

	c.widgets.OpenEditor("add material")
	input, ok := c.forms.MaterialForm(nil)
	if !ok {
		c.widgets.CloseEditor()
		return
	}
	c.Submit(ctx, view.ModeAdd, 0, input)
}

func (c *Controller) OpenEdit(ctx context.Context, m Material) {
	c.widgets.OpenEditor("edit material")
	input, ok := c.forms.MaterialForm(&m)
	if !ok {
		c.widgets.CloseEditor()
		return
	}
	c.Submit(ctx, view.ModeEdit, m.MaterialID, input)
}

// Submit sends the create or update request. Success closes the editor and
// reloads the list; failure leaves the editor open.
func (c *Controller) Submit(ctx context.Context, mode view.FormMode, id int64, input MaterialInput) {
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
		c.surface.Alert(ui.LevelSuccess, "material added")
	} else {
		c.surface.Alert(ui.LevelSuccess, "material updated")
	}
	c.widgets.CloseEditor()
	c.Load(ctx)
}

// Remove deletes a material after explicit confirmation. Declining issues no
// request at all.
func (c *Controller) Remove(ctx context.Context, m Material) {
	if !c.surface.Confirm(fmt.Sprintf("delete material %s (id %d)?", m.Name, m.MaterialID)) {
		return
	}

	if err := c.api.Delete(ctx, m.MaterialID); err != nil {
		c.surface.Alert(ui.LevelError, fmt.Sprintf("delete failed: %v", err))
		return
	}
	c.surface.Alert(ui.LevelSuccess, "material deleted")
	c.Load(ctx)
}
