package handlers

import (
	"context"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"tps-admin/application/controller"
	"tps-admin/domain/models"
	"tps-admin/domain/navigation"
	"tps-admin/infrastructure/viewstate"
	"tps-admin/interfaces/web/views"
)

type PersonFormHandler struct {
	svc  *Services
	deps controller.FormDeps
}

func NewPersonFormHandler(svc *Services, deps controller.FormDeps) *PersonFormHandler {
	return &PersonFormHandler{svc: svc, deps: deps}
}

// route resolves the form mode, its view key and submit path from the URL.
func (h *PersonFormHandler) route(c *fiber.Ctx) (models.FormMode, viewstate.Key, string, error) {
	raw := c.Params("jmbg")
	if raw == "" {
		return models.AddMode{}, viewKey(c, "form:add"), navigation.AddPath, nil
	}

	jmbg, err := url.PathUnescape(raw)
	if err != nil {
		return nil, viewstate.Key{}, "", fiber.NewError(fiber.StatusBadRequest, "invalid jmbg")
	}
	return models.FormModeFor(jmbg), viewKey(c, "form:edit:"+jmbg), navigation.EditPath(jmbg), nil
}

func (h *PersonFormHandler) mount(ctx context.Context, mode models.FormMode) func() *controller.PersonForm {
	return func() *controller.PersonForm {
		form := controller.NewPersonForm(h.deps, mode)
		form.Mount(ctx)
		return form
	}
}

func (h *PersonFormHandler) page(c *fiber.Ctx, form *controller.PersonForm, action string) error {
	return render(c, h.svc.Renderer, fiber.StatusOK, views.PagePersonForm, views.FormView{
		Lang:        h.svc.Translator.Lang(),
		Title:       form.Title(),
		SubmitLabel: form.SubmitLabel(),
		Error:       form.Error(),
		Action:      action,
		Person:      form.Person(),
		Cities:      form.Cities(),
	})
}

// Page mounts a fresh form.
// GET /add, GET /edit/:jmbg
func (h *PersonFormHandler) Page(c *fiber.Ctx) error {
	mode, key, action, err := h.route(c)
	if err != nil {
		return err
	}

	form := h.mount(c.UserContext(), mode)()
	h.svc.ViewState.Put(key, form)
	return h.page(c, form, action)
}

// Submit copies the posted fields into the form and submits it.
// POST /add, POST /edit/:jmbg
func (h *PersonFormHandler) Submit(c *fiber.Ctx) error {
	mode, key, action, err := h.route(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	return viewstate.Use(h.svc.ViewState, key, h.mount(ctx, mode), func(form *controller.PersonForm) error {
		args := c.Request().PostArgs()
		for _, field := range models.PersonFields {
			if !args.Has(string(field)) {
				continue
			}
			if err := form.SetField(field, string(args.Peek(string(field)))); err != nil {
				return err
			}
		}

		nav := &navigation.Recorder{}
		if !form.Submit(ctx, nav) {
			return h.page(c, form, action)
		}

		h.svc.ViewState.Delete(key)
		return c.Redirect(nav.Path, fiber.StatusSeeOther)
	})
}
