package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeValid(t *testing.T) {
	assert.True(t, ModeActionable.Valid())
	assert.True(t, ModeVerbose.Valid())
	assert.False(t, Mode("fast").Valid())
	assert.False(t, Mode("").Valid())
}

func TestModeVerboseFlag(t *testing.T) {
	assert.Equal(t, "--verbose=false", ModeActionable.VerboseFlag())
	assert.Equal(t, "--verbose=true", ModeVerbose.VerboseFlag())
}

func TestCategoryNames(t *testing.T) {
	// The table covers exactly the twenty groups A-T
	assert.Len(t, CategoryNames, 20)
	assert.Equal(t, "Certificates", CategoryName("D"))
	assert.Equal(t, "RHACS / ACS Presence", CategoryName("T"))

	// Identifiers without an entry fall back to a generic name
	assert.Equal(t, "Category U", CategoryName("U"))
}
