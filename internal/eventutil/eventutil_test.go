package eventutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Round string `json:"round"`
	Count int    `json:"count"`
}

func TestNewMessageRoundTrip(t *testing.T) {
	msg, err := NewMessage(testPayload{Round: "GM3", Count: 7})
	require.NoError(t, err)
	require.NotEmpty(t, msg.UUID)
	require.NotEmpty(t, CorrelationID(msg))

	decoded, err := ParsePayload[testPayload](msg)
	require.NoError(t, err)
	assert.Equal(t, "GM3", decoded.Round)
	assert.Equal(t, 7, decoded.Count)
}

func TestNewResultMessagePropagatesCorrelationID(t *testing.T) {
	parent, err := NewMessage(testPayload{Round: "GM3"})
	require.NoError(t, err)

	child, err := NewResultMessage(parent, testPayload{Round: "GM3", Count: 1})
	require.NoError(t, err)

	assert.Equal(t, CorrelationID(parent), CorrelationID(child))
	assert.NotEqual(t, parent.UUID, child.UUID)
}

func TestParsePayloadRejectsGarbage(t *testing.T) {
	msg, err := NewMessage(testPayload{})
	require.NoError(t, err)
	msg.Payload = []byte("{not json")

	_, err = ParsePayload[testPayload](msg)
	assert.Error(t, err)
}
