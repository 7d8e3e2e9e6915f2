package speech

import (
	"context"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

const captureFramesPerBuffer = 1024

// Recorder captures audio from the default input device. Construct it once:
// it probes the device at creation and remembers whether capture is possible,
// so headless deployments degrade to upload-only without repeated probing.
type Recorder struct {
	mu        sync.Mutex
	available bool
}

// NewRecorder initializes the audio backend and checks for an input device.
// A missing device is not an error; Available reports it.
func NewRecorder(ctx context.Context) (*Recorder, error) {
	log := logging.NewLogger(ctx)

	if err := portaudio.Initialize(); err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	recorder := &Recorder{}
	device, err := portaudio.DefaultInputDevice()
	if err != nil || device == nil {
		log.Warnf("no audio input device available: %v", err)
		return recorder, nil
	}

	if device.DefaultSampleRate != float64(model.CaptureSampleRate) {
		log.Warnf("device sample rate %.0f differs from capture rate %d", device.DefaultSampleRate, model.CaptureSampleRate)
	}

	recorder.available = true
	log.Infof("audio input device ready: %s", device.Name)
	return recorder, nil
}

// Close releases the audio backend.
func (r *Recorder) Close() error {
	return utils.WrapIfNotNil(portaudio.Terminate())
}

// Available reports whether an input device was found at startup.
func (r *Recorder) Available() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.available
}

// Record captures audio for the given duration and returns it as WAV bytes.
// The context cancels a recording early; whatever was captured so far is
// still returned.
func (r *Recorder) Record(ctx context.Context, duration time.Duration) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := logging.NewLogger(ctx)
	if !r.available {
		return nil, model.ErrMicrophoneUnavailable
	}

	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	wanted := int(float64(model.CaptureSampleRate) * duration.Seconds())
	samples := make([]int16, 0, wanted)
	done := make(chan struct{})
	var closeOnce sync.Once

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: model.CaptureChannels,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      float64(model.CaptureSampleRate),
		FramesPerBuffer: captureFramesPerBuffer,
	}

	// The callback runs on the audio thread and appends to samples without a
	// lock. Stop() below is the synchronization point: samples must not be
	// read until it returns.
	stream, err := portaudio.OpenStream(params, func(in []int16) {
		if len(samples) >= wanted {
			closeOnce.Do(func() { close(done) })
			return
		}
		samples = append(samples, in...)
	})
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	defer stream.Close()

	log.Infof("recording audio for %s", duration)
	if err := stream.Start(); err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	select {
	case <-done:
	case <-time.After(duration + time.Second):
	case <-ctx.Done():
	}

	if err := stream.Stop(); err != nil {
		return nil, utils.WrapIfNotNil(err)
	}

	if len(samples) > wanted {
		samples = samples[:wanted]
	}
	log.Infof("recording completed, %d samples captured", len(samples))
	return EncodeWAV(samples), nil
}
