package speech

import (
	"bytes"
	"encoding/binary"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

// EncodeWAV wraps raw PCM samples in a WAV container using the capture
// format: mono, 16-bit, 44100 Hz.
func EncodeWAV(samples []int16) []byte {
	const headerSize = 44
	dataSize := len(samples) * 2
	byteRate := model.CaptureSampleRate * model.CaptureChannels * model.CaptureBitDepth / 8
	blockAlign := model.CaptureChannels * model.CaptureBitDepth / 8

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+dataSize))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(model.CaptureChannels))
	binary.Write(buf, binary.LittleEndian, uint32(model.CaptureSampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(model.CaptureBitDepth))

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}
