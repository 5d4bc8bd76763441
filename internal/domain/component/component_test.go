package component_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/arc-self/person-engine/internal/domain/component"
)

func TestEmailValidateRejectsEmptyAddress(t *testing.T) {
	assert.Error(t, component.Email{}.Validate())
	assert.NoError(t, component.Email{Address: "a@example.com"}.Validate())
}

func TestPhoneValidateRejectsEmptyNumber(t *testing.T) {
	assert.Error(t, component.Phone{}.Validate())
	assert.NoError(t, component.Phone{Number: "555-0100", Kind: "mobile"}.Validate())
}

func TestSkillValidateRejectsUnknownProficiency(t *testing.T) {
	assert.Error(t, component.Skill{Name: "Go", Proficiency: "wizard"}.Validate())
	assert.NoError(t, component.Skill{Name: "Go", Proficiency: component.ProficiencyExpert}.Validate())
}

func TestEmploymentValidateRejectsEndBeforeStart(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(-1, 0, 0)
	e := component.Employment{Organization: "Acme", Title: "Engineer", StartedOn: start, EndedOn: &end}
	assert.Error(t, e.Validate())

	laterEnd := start.AddDate(1, 0, 0)
	e.EndedOn = &laterEnd
	assert.NoError(t, e.Validate())
}

func TestAddressValidateRequiresLine1CityCountry(t *testing.T) {
	assert.Error(t, component.Address{}.Validate())
	assert.NoError(t, component.Address{Line1: "1 Main St", City: "Springfield", Country: "US"}.Validate())
}
