package speech

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeechToTextReturnsPlaceholder(t *testing.T) {
	svc := NewSimpleService()

	text, err := svc.SpeechToText(context.Background(), []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, PlaceholderTranscription, text)
}

func TestTextToSpeechProducesWAV(t *testing.T) {
	svc := NewSimpleService()

	audio, err := svc.TextToSpeech(context.Background(), "hello")
	require.NoError(t, err)
	require.Greater(t, len(audio), 44)

	assert.Equal(t, "RIFF", string(audio[0:4]))
	assert.Equal(t, "WAVE", string(audio[8:12]))

	// One second of mono 16-bit PCM at 44.1kHz.
	dataSize := binary.LittleEndian.Uint32(audio[40:44])
	assert.Equal(t, uint32(88200), dataSize)
}

func TestSimpleBackendReportsUnavailable(t *testing.T) {
	svc := NewSimpleService()

	assert.False(t, svc.Available())
	assert.False(t, svc.Status()["fully_functional"])
}
