package models

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PersonField names one editable field; the values double as HTML form names.
type PersonField string

const (
	FieldJMBG        PersonField = "jmbg"
	FieldName        PersonField = "name"
	FieldSurname     PersonField = "surname"
	FieldBirthdate   PersonField = "birthdate"
	FieldAgeInMonths PersonField = "ageInMonths"
	FieldHeightInCm  PersonField = "heightInCm"
	FieldCityOfBirth PersonField = "cityOfBirth"
	FieldResidence   PersonField = "residence"
)

// PersonFields lists the editable fields in form order.
var PersonFields = []PersonField{
	FieldJMBG,
	FieldName,
	FieldSurname,
	FieldBirthdate,
	FieldAgeInMonths,
	FieldHeightInCm,
	FieldCityOfBirth,
	FieldResidence,
}

// Person is the editable identity record. City references are bare ids.
type Person struct {
	ID          Optional[int64]
	JMBG        string
	Name        string
	Surname     string
	Birthdate   string // calendar date, YYYY-MM-DD
	AgeInMonths Optional[int]
	HeightInCm  Optional[int]
	CityOfBirth Optional[int64]
	Residence   Optional[int64]
}

// With returns a copy of p with field replaced by the parsed raw form value.
//
// Empty numeric input is unset. City value 0 is the "choose city" placeholder
// and is unset as well; age and height keep an explicit 0.
func (p Person) With(field PersonField, raw string) (Person, error) {
	raw = strings.TrimSpace(raw)

	switch field {
	case FieldJMBG:
		p.JMBG = raw
	case FieldName:
		p.Name = norm.NFC.String(raw)
	case FieldSurname:
		p.Surname = norm.NFC.String(raw)
	case FieldBirthdate:
		p.Birthdate = raw
	case FieldAgeInMonths:
		p.AgeInMonths = parseInt(raw)
	case FieldHeightInCm:
		p.HeightInCm = parseInt(raw)
	case FieldCityOfBirth:
		p.CityOfBirth = parseCityID(raw)
	case FieldResidence:
		p.Residence = parseCityID(raw)
	default:
		return p, fmt.Errorf("unknown person field %q", field)
	}
	return p, nil
}

// FormValue renders field the way it appears in an input element.
func (p Person) FormValue(field PersonField) string {
	switch field {
	case FieldJMBG:
		return p.JMBG
	case FieldName:
		return p.Name
	case FieldSurname:
		return p.Surname
	case FieldBirthdate:
		return p.Birthdate
	case FieldAgeInMonths:
		return formatOptional(p.AgeInMonths)
	case FieldHeightInCm:
		return formatOptional(p.HeightInCm)
	case FieldCityOfBirth:
		return strconv.FormatInt(p.CityOfBirth.ValueOr(0), 10)
	case FieldResidence:
		return strconv.FormatInt(p.Residence.ValueOr(0), 10)
	}
	return ""
}

func parseInt(raw string) Optional[int] {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return None[int]()
	}
	return Some(v)
}

func parseCityID(raw string) Optional[int64] {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v == 0 {
		return None[int64]()
	}
	return Some(v)
}

func formatOptional(o Optional[int]) string {
	v, ok := o.Get()
	if !ok {
		return ""
	}
	return strconv.Itoa(v)
}

// PersonRecord is a person as the TPS API returns it, with nested cities.
type PersonRecord struct {
	ID          int64
	JMBG        string
	Name        string
	Surname     string
	Birthdate   string
	AgeInMonths int
	HeightInCm  int
	CityOfBirth City
	Residence   City
}

// FullName is the "name surname" list column.
func (r PersonRecord) FullName() string {
	return r.Name + " " + r.Surname
}

// Editable collapses the nested cities to their ids.
func (r PersonRecord) Editable() Person {
	return Person{
		ID:          Some(r.ID),
		JMBG:        r.JMBG,
		Name:        r.Name,
		Surname:     r.Surname,
		Birthdate:   r.Birthdate,
		AgeInMonths: Some(r.AgeInMonths),
		HeightInCm:  Some(r.HeightInCm),
		CityOfBirth: cityRef(r.CityOfBirth),
		Residence:   cityRef(r.Residence),
	}
}

func cityRef(c City) Optional[int64] {
	if c.ID == 0 {
		return None[int64]()
	}
	return Some(c.ID)
}
