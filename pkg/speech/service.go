package speech

import (
	"bytes"
	"context"
	"encoding/binary"
)

// Service converts between audio and text for the realtime channel.
type Service interface {
	SpeechToText(ctx context.Context, audio []byte) (string, error)
	TextToSpeech(ctx context.Context, text string) ([]byte, error)
	Available() bool
	Status() map[string]bool
}

// PlaceholderTranscription is returned by the simple backend for every
// audio frame.
const PlaceholderTranscription = "[Speech recognition not available - please use text input]"

// simpleService is the no-dependency backend. Transcription returns a
// fixed placeholder and synthesis returns one second of silence.
type simpleService struct{}

func NewSimpleService() Service {
	return &simpleService{}
}

func (s *simpleService) SpeechToText(ctx context.Context, audio []byte) (string, error) {
	return PlaceholderTranscription, nil
}

func (s *simpleService) TextToSpeech(ctx context.Context, text string) ([]byte, error) {
	return silentWAV(), nil
}

func (s *simpleService) Available() bool {
	return false
}

func (s *simpleService) Status() map[string]bool {
	return map[string]bool{
		"stt_available":    false,
		"tts_available":    false,
		"fully_functional": false,
	}
}

const (
	sampleRate      = 44100
	bytesPerSample  = 2
	silenceDuration = 1 // seconds
)

// silentWAV builds a mono 16-bit PCM WAV file containing only silence.
func silentWAV() []byte {
	dataSize := sampleRate * bytesPerSample * silenceDuration

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*bytesPerSample))
	binary.Write(&buf, binary.LittleEndian, uint16(bytesPerSample))
	binary.Write(&buf, binary.LittleEndian, uint16(8*bytesPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	buf.Write(make([]byte, dataSize))

	return buf.Bytes()
}
