// Package i18n holds the UI message catalog. Message keys are the English
// strings; Serbian (Latin) is the default language of the administration
// screens.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys shared by the controllers, validator and templates.
const (
	MsgListTitle      = "Acquaintance records"
	MsgColJMBG        = "JMBG"
	MsgColFullName    = "Name and surname"
	MsgColBirthdate   = "Date of birth"
	MsgColAge         = "Age in months"
	MsgColHeight      = "Height [cm]"
	MsgColCityOfBirth = "City of birth"
	MsgColResidence   = "Residence"
	MsgColActions     = "Actions"
	MsgUpdate         = "Update"
	MsgDelete         = "Delete"
	MsgAddNewPerson   = "Add New Person"

	MsgAddPerson    = "Add Person"
	MsgEditPerson   = "Edit Person"
	MsgUpdatePerson = "Update Person"

	MsgLabelJMBG        = "JMBG:"
	MsgLabelName        = "Name:"
	MsgLabelSurname     = "Surname:"
	MsgLabelBirthdate   = "Date of birth:"
	MsgLabelAge         = "Age in months:"
	MsgLabelHeight      = "Height:"
	MsgLabelCityOfBirth = "City of birth:"
	MsgLabelResidence   = "Residence:"
	MsgChooseCity       = "Choose city"

	MsgConfirmDelete = "Are you sure?"
	MsgYes           = "Yes"
	MsgNo            = "No"

	MsgAllFieldsRequired = "All fields must be filled in."
	MsgHeightRange       = "Minimum height is 70cm and maximum is 230cm."
	MsgNegativeAge       = "Age in months must be a positive value"
	MsgInvalidInput      = "Invalid input: %s"
	MsgServerError       = "An error occurred: %s, %s"
	MsgRequestError      = "An error occurred: %s"
	MsgMissingID         = "the person has no identifier"
)

var serbian = map[string]string{
	MsgListTitle:      "Podaci o poznanicima",
	MsgColFullName:    "Ime i prezime",
	MsgColBirthdate:   "Datum rodjenja",
	MsgColAge:         "Starost u mesecima",
	MsgColHeight:      "Visina [cm]",
	MsgColCityOfBirth: "Mesto rodjenja",
	MsgColResidence:   "Prebivaliste",

	MsgLabelName:        "Ime:",
	MsgLabelSurname:     "Prezime:",
	MsgLabelBirthdate:   "Datum rodjenja:",
	MsgLabelAge:         "Starost u mesecima:",
	MsgLabelHeight:      "Visina:",
	MsgLabelCityOfBirth: "Mesto rodjenja:",
	MsgLabelResidence:   "Prebivaliste:",
	MsgChooseCity:       "Odaberi grad",

	MsgConfirmDelete: "Da li ste sigurni?",
	MsgYes:           "Da",
	MsgNo:            "Ne",

	MsgAllFieldsRequired: "Svi podaci moraju biti popunjeni.",
	MsgHeightRange:       "Minimalna visina je 70cm, a maksimalna 230cm.",
	MsgNegativeAge:       "Starost u mesecima mora biti pozitivna vrednost",
	MsgInvalidInput:      "Nevalidan unos: %s",
	MsgServerError:       "Doslo je do greske: %s, %s",
	MsgRequestError:      "Doslo je do greske: %s",
	MsgMissingID:         "osoba nema identifikator",
}

// Translator renders catalog messages for one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New builds a translator for lang ("sr", "en", or any BCP 47 tag). Unknown
// languages fall back to English.
func New(lang string) *Translator {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range serbian {
		// SetString only fails on malformed messages, none of which are in the table
		_ = builder.SetString(language.Serbian, key, msg)
	}

	tag := language.English
	if parsed, err := language.Parse(lang); err == nil {
		if base, _ := parsed.Base(); base.String() == "sr" {
			tag = language.Serbian
		}
	}

	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(builder)),
	}
}

// T looks up key and formats it with args. Only %s verbs are used in the
// catalog so numbers are never reformatted with locale separators.
func (t *Translator) T(key string, args ...interface{}) string {
	if t == nil {
		if len(args) == 0 {
			return key
		}
		return message.NewPrinter(language.English).Sprintf(key, args...)
	}
	return t.printer.Sprintf(key, args...)
}

// Lang returns the base language code in use.
func (t *Translator) Lang() string {
	if t == nil {
		return "en"
	}
	base, _ := t.tag.Base()
	return base.String()
}
