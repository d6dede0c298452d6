package alias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripArticle(t *testing.T) {
	assert.Equal(t, "Gambia", StripArticle("the Gambia"))
	assert.Equal(t, "Congo, Democratic Republic of", StripArticle("Congo, Democratic Republic of the"))
	assert.Equal(t, "Netherlands", StripArticle("Netherlands"))
	assert.Equal(t, "The Bahamas", StripArticle("The Bahamas"))
}

func TestStripDistance(t *testing.T) {
	assert.Equal(t, "Greece", StripDistance(" Greece 282 km"))
	assert.Equal(t, "North Macedonia", StripDistance("North Macedonia"))
	assert.Equal(t, "", StripDistance("12 km"))
}

func TestAcronym(t *testing.T) {
	assert.Equal(t, "USA", Acronym("United States of America"))
	assert.Equal(t, "", Acronym("lowercase"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, Fold("cote d'ivoire"), Fold("Côte D’Ivoire"))
	assert.Equal(t, "sao tome and principe", Fold("  São Tomé   and Príncipe"))
}
