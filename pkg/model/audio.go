package model

import "errors"

// ErrNoSpeech reports that the transcription call succeeded but produced no
// text. Callers that do not care can treat it like any other failed
// transcription; the HTTP layer uses it for a more specific user message.
var ErrNoSpeech = errors.New("no speech detected")

// ErrMicrophoneUnavailable reports that no audio input device was found at
// startup. The upload path still works.
var ErrMicrophoneUnavailable = errors.New("microphone not available")

type AudioOptions struct {
	URL       string
	AuthToken string
	Model     string
	// Prompt optionally biases the transcription model toward expected
	// vocabulary.
	Prompt string
}

// SupportedAudioExtensions lists the container formats accepted for upload.
// FLAC and AAC decode fine upstream but are not wired into the upload control.
var SupportedAudioExtensions = []string{".wav", ".mp3", ".m4a", ".ogg"}

const (
	CaptureSampleRate = 44100
	CaptureChannels   = 1
	CaptureBitDepth   = 16
)
