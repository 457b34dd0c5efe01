package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/invorya/bodega-api/internal/domain/match"
)

func TestContains(t *testing.T) {
	assert.True(t, match.Contains("Tornillos M4", "torn"))
	assert.True(t, match.Contains("tuercas", "UERCA"))
	assert.True(t, match.Contains("Ñandú", "ñandú"))
	assert.True(t, match.Contains("货架A区", "货架"))
	assert.True(t, match.Contains("cualquier cosa", ""), "subcadena vacía coincide con todo")

	assert.False(t, match.Contains("cajas", "palets"))
	assert.False(t, match.Contains("", "x"))
}
