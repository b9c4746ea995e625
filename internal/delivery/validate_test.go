package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPayload(t *testing.T) {
	assert.False(t, validPayload(nil))
	assert.False(t, validPayload([]byte("")))
	assert.False(t, validPayload([]byte("  ")))
	assert.False(t, validPayload([]byte("{}")))
	assert.False(t, validPayload([]byte("null")))
	assert.True(t, validPayload([]byte(`{"date":"2026-08-31"}`)))
}
