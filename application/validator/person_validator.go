package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"tps-admin/domain/models"
	"tps-admin/pkg/i18n"
)

const (
	MinHeightCm = 70
	MaxHeightCm = 230
)

// Problem identifies one failed rule.
type Problem string

const (
	ProblemRequired    Problem = "required"
	ProblemHeightRange Problem = "height_range"
	ProblemNegativeAge Problem = "negative_age"
)

var problemMessages = map[Problem]string{
	ProblemRequired:    i18n.MsgAllFieldsRequired,
	ProblemHeightRange: i18n.MsgHeightRange,
	ProblemNegativeAge: i18n.MsgNegativeAge,
}

// Result is the outcome of validating a candidate person. Message joins the
// fragments of every failed rule in rule order.
type Result struct {
	Valid    bool
	Message  string
	Problems []Problem
}

// Has reports whether p is among the failed rules.
func (r Result) Has(p Problem) bool {
	for _, got := range r.Problems {
		if got == p {
			return true
		}
	}
	return false
}

// personCheck is the shape the struct tags run against. Pointers are nil for
// unset fields; Height and Age carry the raw number for the range rules.
type personCheck struct {
	JMBG        string `validate:"required"`
	Name        string `validate:"required"`
	Surname     string `validate:"required"`
	Birthdate   string `validate:"required"`
	AgeInMonths *int   `validate:"required"`
	HeightInCm  *int   `validate:"required"`
	CityOfBirth *int64 `validate:"required"`
	Residence   *int64 `validate:"required"`

	Height int `validate:"min=70,max=230"`
	Age    int `validate:"min=0"`
}

// PersonValidator checks a person before it is submitted. Only presence, the
// height range and a non-negative age are checked; the jmbg checksum and the
// birthdate are not.
type PersonValidator struct {
	validate   *validator.Validate
	translator *i18n.Translator
}

// NewPersonValidator creates a validator. A nil translator yields English
// messages.
func NewPersonValidator(translator *i18n.Translator) *PersonValidator {
	return &PersonValidator{
		validate:   validator.New(),
		translator: translator,
	}
}

// Validate applies every rule independently.
func (v *PersonValidator) Validate(person models.Person) Result {
	check := personCheck{
		JMBG:        person.JMBG,
		Name:        person.Name,
		Surname:     person.Surname,
		Birthdate:   person.Birthdate,
		AgeInMonths: person.AgeInMonths.Ptr(),
		HeightInCm:  person.HeightInCm.Ptr(),
		CityOfBirth: person.CityOfBirth.Ptr(),
		Residence:   person.Residence.Ptr(),
		// unset height is out of range, unset age is not negative
		Height: person.HeightInCm.ValueOr(0),
		Age:    person.AgeInMonths.ValueOr(0),
	}

	failed := map[Problem]bool{}
	if err := v.validate.Struct(check); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			// only reachable on a programming error in personCheck
			failed[ProblemRequired] = true
		}
		for _, fe := range fieldErrs {
			switch {
			case fe.Tag() == "required":
				failed[ProblemRequired] = true
			case fe.StructField() == "Height":
				failed[ProblemHeightRange] = true
			case fe.StructField() == "Age":
				failed[ProblemNegativeAge] = true
			}
		}
	}

	result := Result{Valid: true}
	var message strings.Builder
	for _, p := range []Problem{ProblemRequired, ProblemHeightRange, ProblemNegativeAge} {
		if !failed[p] {
			continue
		}
		result.Valid = false
		result.Problems = append(result.Problems, p)
		message.WriteString(v.translator.T(problemMessages[p]))
	}
	result.Message = message.String()
	return result
}
