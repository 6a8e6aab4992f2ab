package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"tps-admin/application/controller"
	"tps-admin/domain/services"
	"tps-admin/infrastructure/viewstate"
	"tps-admin/interfaces/web/middleware"
	"tps-admin/interfaces/web/views"
	"tps-admin/pkg/i18n"
)

// Services contains what the page handlers need
type Services struct {
	Persons    services.PersonAPI
	Cities     services.CityLoader
	Translator *i18n.Translator
	Renderer   *views.Renderer
	ViewState  *viewstate.Store
}

// Handlers contains all HTTP handlers
type Handlers struct {
	PersonList *PersonListHandler
	PersonForm *PersonFormHandler
	Health     *HealthHandler
}

// NewHandlers creates the page handlers; health may be nil.
func NewHandlers(svc *Services, health *HealthHandler) *Handlers {
	return &Handlers{
		PersonList: NewPersonListHandler(svc),
		PersonForm: NewPersonFormHandler(svc, controller.FormDeps{
			Persons:    svc.Persons,
			Cities:     svc.Cities,
			Translator: svc.Translator,
		}),
		Health: health,
	}
}

func viewKey(c *fiber.Ctx, view string) viewstate.Key {
	return viewstate.Key{Session: middleware.SessionID(c), View: view}
}

func render(c *fiber.Ctx, r *views.Renderer, status int, page string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, page, data); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}
