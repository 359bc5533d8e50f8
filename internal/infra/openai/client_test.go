package openai

import (
	"errors"
	"testing"
	"time"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient("")
	assert.True(t, errors.Is(err, ErrAPIKeyNotSet))
}

func TestNewClientOptionsOverrideDefaults(t *testing.T) {
	client, err := NewClient("dummy-key",
		WithModel("custom-model"),
		WithTimeout(30*time.Second),
		WithTemperature(0.2),
	)
	require.NoError(t, err)

	assert.Equal(t, "custom-model", client.ModelName())
	assert.Equal(t, 30*time.Second, client.timeout)
	assert.InDelta(t, 0.2, client.temperature, 1e-9)
}

func TestIsRateLimitError(t *testing.T) {
	assert.False(t, isRateLimitError(nil))
	assert.False(t, isRateLimitError(errors.New("connection refused")))
	assert.False(t, isRateLimitError(&openaisdk.Error{StatusCode: 500}))
	assert.True(t, isRateLimitError(&openaisdk.Error{StatusCode: 429}))
}
