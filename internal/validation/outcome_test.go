package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_ZeroValueIsUnavailable(t *testing.T) {
	var o Outcome[int]
	assert.True(t, o.IsUnavailable())
	assert.False(t, o.definitive())
}

func TestOutcome_Constructors(t *testing.T) {
	found := Found(42)
	assert.True(t, found.IsFound())
	assert.Equal(t, 42, found.Value)
	assert.True(t, found.definitive())

	missing := NotFound[int]()
	assert.True(t, missing.IsNotFound())
	assert.True(t, missing.definitive())

	down := Unavailable[int]("timeout")
	assert.True(t, down.IsUnavailable())
	assert.Equal(t, "timeout", down.Reason)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "found", KindFound.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "unavailable", KindUnavailable.String())
}
