package handlers

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"tps-admin/application/controller"
	"tps-admin/domain/navigation"
	"tps-admin/infrastructure/viewstate"
	"tps-admin/interfaces/web/views"
	"tps-admin/pkg/i18n"
)

const listView = "list"

type PersonListHandler struct {
	svc *Services
}

func NewPersonListHandler(svc *Services) *PersonListHandler {
	return &PersonListHandler{svc: svc}
}

func (h *PersonListHandler) mount(ctx context.Context) func() *controller.PersonList {
	return func() *controller.PersonList {
		list := controller.NewPersonList(h.svc.Persons, h.svc.Translator)
		list.Mount(ctx)
		return list
	}
}

func (h *PersonListHandler) page(c *fiber.Ctx, list *controller.PersonList) error {
	return render(c, h.svc.Renderer, fiber.StatusOK, views.PagePersonList, views.ListView{
		Lang:  h.svc.Translator.Lang(),
		Title: h.svc.Translator.T(i18n.MsgListTitle),
		Rows:  list.Rows(),
	})
}

// Page mounts a fresh list for the session.
// GET /
func (h *PersonListHandler) Page(c *fiber.Ctx) error {
	list := h.mount(c.UserContext())()
	h.svc.ViewState.Put(viewKey(c, listView), list)
	return h.page(c, list)
}

// Action handles the list buttons.
// POST / with action=add|update|delete
func (h *PersonListHandler) Action(c *fiber.Ctx) error {
	ctx := c.UserContext()

	return viewstate.Use(h.svc.ViewState, viewKey(c, listView), h.mount(ctx), func(list *controller.PersonList) error {
		nav := &navigation.Recorder{}

		switch c.FormValue("action") {
		case "add":
			list.AddPerson(nav)
		case "update":
			jmbg := c.FormValue("jmbg")
			if jmbg == "" {
				return fiber.NewError(fiber.StatusBadRequest, "jmbg is required")
			}
			list.UpdatePerson(nav, jmbg)
		case "delete":
			id, err := strconv.ParseInt(c.FormValue("id"), 10, 64)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid person id")
			}
			confirmed, _ := strconv.ParseBool(c.FormValue("confirmed"))
			list.DeletePerson(ctx, id, navigation.Always(confirmed))
			return h.page(c, list)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unknown action")
		}

		return c.Redirect(nav.Path, fiber.StatusSeeOther)
	})
}

// ConfirmDelete asks before deleting a row.
// GET /delete/:id
func (h *PersonListHandler) ConfirmDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid person id")
	}

	return viewstate.Use(h.svc.ViewState, viewKey(c, listView), h.mount(c.UserContext()), func(list *controller.PersonList) error {
		row, found := list.Row(id)
		prompt := h.svc.Translator.T(i18n.MsgConfirmDelete)
		return render(c, h.svc.Renderer, fiber.StatusOK, views.PageConfirmDelete, views.ConfirmView{
			Lang:   h.svc.Translator.Lang(),
			Title:  prompt,
			Prompt: prompt,
			ID:     id,
			Row:    row,
			Found:  found,
		})
	})
}
