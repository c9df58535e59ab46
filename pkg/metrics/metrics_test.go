package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEnabledFalseBeforeInit(t *testing.T) {
	Reset()
	assert.False(t, IsEnabled())
	assert.Nil(t, GetRegistry())
}

func TestInitRegistryEnablesCollection(t *testing.T) {
	Reset()
	reg := InitRegistry()
	assert.NotNil(t, reg)
	assert.True(t, IsEnabled())
	assert.Same(t, reg, GetRegistry())
	Reset()
}

func TestResetDisablesCollection(t *testing.T) {
	InitRegistry()
	Reset()
	assert.False(t, IsEnabled())
	assert.Nil(t, GetRegistry())
}
