package models

// FormMode selects how the person form behaves. It is either AddMode or
// EditMode and is chosen once when the form is entered.
type FormMode interface {
	isFormMode()
}

type AddMode struct{}

// EditMode edits the person with the given identity number.
type EditMode struct {
	JMBG string
}

func (AddMode) isFormMode()  {}
func (EditMode) isFormMode() {}

// FormModeFor maps the optional jmbg route parameter to a mode.
func FormModeFor(jmbg string) FormMode {
	if jmbg == "" {
		return AddMode{}
	}
	return EditMode{JMBG: jmbg}
}
