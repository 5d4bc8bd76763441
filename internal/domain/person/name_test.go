package person_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-self/person-engine/internal/domain/person"
)

func TestNameValidateRejectsEmpty(t *testing.T) {
	_, err := person.NewNameBuilder().Build()
	require.Error(t, err)
}

func TestNameDisplayFormal(t *testing.T) {
	n, err := person.NewNameBuilder().
		Prefixes("Dr.").
		Given("Maria", "Elena").
		Family("Garcia").
		Suffixes("Jr.").
		Build()
	require.NoError(t, err)
	assert.Equal(t, "Dr. Maria Elena Garcia Jr.", n.Display(person.DisplayFormal))
}

func TestNameDisplayInformalPrefersPreferredForm(t *testing.T) {
	n, err := person.NewNameBuilder().Given("Robert").Family("Smith").PreferredForm("Bob").Build()
	require.NoError(t, err)
	assert.Equal(t, "Bob", n.Display(person.DisplayInformal))
}

func TestNameDisplayLegal(t *testing.T) {
	n, err := person.NewNameBuilder().Given("Ada").Family("Lovelace").Build()
	require.NoError(t, err)
	assert.Equal(t, "Lovelace, Ada", n.Display(person.DisplayLegal))
}

func TestNameDisplayAlphabetical(t *testing.T) {
	n, err := person.NewNameBuilder().Given("Grace", "Brewster").Family("Hopper").Build()
	require.NoError(t, err)
	assert.Equal(t, "Hopper, G. B.", n.Display(person.DisplayAlphabetical))
}

func TestNameDisplayCulturalSpanishJoinsTwoFamilyNames(t *testing.T) {
	n, err := person.NewNameBuilder().
		Given("Juan").
		Family("Garcia", "Lopez").
		Convention(person.Spanish).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "Juan Garcia y Lopez", n.Display(person.DisplayCultural))
}

func TestNameDisplayCulturalEastAsianConcatenatesNoSeparator(t *testing.T) {
	n, err := person.NewNameBuilder().
		Given("Ichiro").
		Family("Suzuki").
		Convention(person.EastAsian).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "SuzukiIchiro", n.Display(person.DisplayCultural))
}

func TestNameDisplayCulturalMononymic(t *testing.T) {
	n, err := person.NewNameBuilder().Given("Madonna").Convention(person.Mononymic).Build()
	require.NoError(t, err)
	assert.Equal(t, "Madonna", n.Display(person.DisplayCultural))
}
