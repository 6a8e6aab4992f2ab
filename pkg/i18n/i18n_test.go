package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerbianCatalog(t *testing.T) {
	tr := New("sr")

	assert.Equal(t, "sr", tr.Lang())
	assert.Equal(t, "Podaci o poznanicima", tr.T(MsgListTitle))
	assert.Equal(t, "Odaberi grad", tr.T(MsgChooseCity))
	assert.Equal(t, "Nevalidan unos: x", tr.T(MsgInvalidInput, "x"))
	assert.Equal(t, "Doslo je do greske: 409, Duplicate", tr.T(MsgServerError, "409", "Duplicate"))
}

func TestButtonsStayEnglishInSerbian(t *testing.T) {
	tr := New("sr-Latn")

	assert.Equal(t, "Add Person", tr.T(MsgAddPerson))
	assert.Equal(t, "Update Person", tr.T(MsgUpdatePerson))
	assert.Equal(t, "Add New Person", tr.T(MsgAddNewPerson))
}

func TestEnglishAndUnknownFallBack(t *testing.T) {
	for _, lang := range []string{"en", "de", "not a tag"} {
		tr := New(lang)
		assert.Equal(t, "en", tr.Lang(), lang)
		assert.Equal(t, "Acquaintance records", tr.T(MsgListTitle), lang)
		assert.Equal(t, "Invalid input: x", tr.T(MsgInvalidInput, "x"), lang)
	}
}

func TestNilTranslator(t *testing.T) {
	var tr *Translator
	assert.Equal(t, "Choose city", tr.T(MsgChooseCity))
	assert.Equal(t, "An error occurred: boom", tr.T(MsgRequestError, "boom"))
}
