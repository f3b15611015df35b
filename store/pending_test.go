package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "sanction:123456", Key("123456"))
}

func TestParseKey(t *testing.T) {
	id, ok := ParseKey("sanction:123456")
	assert.True(t, ok)
	assert.Equal(t, "123456", id)

	_, ok = ParseKey("sanction:")
	assert.False(t, ok)

	_, ok = ParseKey("punish_modal_123")
	assert.False(t, ok)

	_, ok = ParseKey("123456")
	assert.False(t, ok)
}
