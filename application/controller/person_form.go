// Package controller holds the person screens as plain state machines. The
// web layer mounts one controller per browser session and view, feeds it
// user events and renders its state.
package controller

import (
	"context"
	"errors"

	"tps-admin/application/validator"
	"tps-admin/domain/models"
	"tps-admin/domain/navigation"
	"tps-admin/domain/services"
	"tps-admin/pkg/i18n"
	"tps-admin/pkg/logger"
)

// FormDeps are the collaborators shared by every person form.
type FormDeps struct {
	Persons    services.PersonAPI
	Cities     services.CityLoader
	Validator  *validator.PersonValidator
	Translator *i18n.Translator
}

// PersonForm adds a new person or edits an existing one. The mode is fixed
// at construction.
type PersonForm struct {
	deps   FormDeps
	mode   models.FormMode
	person models.Person
	cities []models.City
	err    string
}

func NewPersonForm(deps FormDeps, mode models.FormMode) *PersonForm {
	if mode == nil {
		mode = models.AddMode{}
	}
	if deps.Validator == nil {
		deps.Validator = validator.NewPersonValidator(deps.Translator)
	}
	return &PersonForm{
		deps: deps,
		mode: mode,
	}
}

// Mount loads the cities and, in edit mode, the person being edited. Load
// failures are logged and leave the form empty.
func (f *PersonForm) Mount(ctx context.Context) {
	cities, err := f.deps.Cities.LoadCities(ctx)
	if err != nil {
		logger.Error(logger.CategoryForm, "load_cities_failed", "There was an error fetching cities", err, nil)
	} else {
		f.cities = cities
	}

	edit, ok := f.mode.(models.EditMode)
	if !ok {
		return
	}

	record, err := f.deps.Persons.GetPersonByJMBG(ctx, edit.JMBG)
	if err != nil {
		logger.Error(logger.CategoryForm, "load_person_failed", "There was an error fetching the person", err, map[string]interface{}{
			"jmbg": edit.JMBG,
		})
		return
	}
	f.person = record.Editable()
}

func (f *PersonForm) Mode() models.FormMode {
	return f.mode
}

func (f *PersonForm) Editing() bool {
	_, ok := f.mode.(models.EditMode)
	return ok
}

// Title is the page heading.
func (f *PersonForm) Title() string {
	if f.Editing() {
		return f.deps.Translator.T(i18n.MsgEditPerson)
	}
	return f.deps.Translator.T(i18n.MsgAddPerson)
}

// SubmitLabel is the caption of the submit button.
func (f *PersonForm) SubmitLabel() string {
	if f.Editing() {
		return f.deps.Translator.T(i18n.MsgUpdatePerson)
	}
	return f.deps.Translator.T(i18n.MsgAddPerson)
}

// SetField replaces one field and clears the shown error.
func (f *PersonForm) SetField(field models.PersonField, raw string) error {
	person, err := f.person.With(field, raw)
	if err != nil {
		return err
	}
	f.err = ""
	f.person = person
	return nil
}

// Submit validates and sends the person. It reports whether the submission
// succeeded, in which case nav was sent back to the list.
func (f *PersonForm) Submit(ctx context.Context, nav navigation.Navigator) bool {
	t := f.deps.Translator

	result := f.deps.Validator.Validate(f.person)
	if !result.Valid {
		f.err = t.T(i18n.MsgInvalidInput, result.Message)
		return false
	}

	var err error
	if f.Editing() {
		err = f.deps.Persons.UpdatePerson(ctx, f.person)
	} else {
		err = f.deps.Persons.CreatePerson(ctx, f.person)
	}
	if err != nil {
		f.err = f.describe(err)
		logger.Warn(logger.CategoryForm, "submit_failed", "Person submit failed", map[string]interface{}{
			"jmbg":  f.person.JMBG,
			"error": err.Error(),
		})
		return false
	}

	nav.Navigate(navigation.ListPath)
	return true
}

func (f *PersonForm) describe(err error) string {
	t := f.deps.Translator

	var apiErr *models.APIError
	switch {
	case errors.As(err, &apiErr):
		return t.T(i18n.MsgServerError, apiErr.Code, apiErr.Message)
	case errors.Is(err, models.ErrMissingPersonID):
		return t.T(i18n.MsgRequestError, t.T(i18n.MsgMissingID))
	default:
		return t.T(i18n.MsgRequestError, err.Error())
	}
}

// Person is the current candidate.
func (f *PersonForm) Person() models.Person {
	return f.person
}

func (f *PersonForm) Cities() []models.City {
	return f.cities
}

// Error is the message shown above the form, empty when there is none.
func (f *PersonForm) Error() string {
	return f.err
}
