package moderation

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/utils"
)

const (
	analysisMaxDimension = 1024
	analysisJPEGQuality  = 85
)

// DecodeImage decodes PNG, JPEG or GIF bytes into an image.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return img, nil
}

// prepareForAnalysis re-encodes an image for the vision API: downscaled so
// neither dimension exceeds 1024px (aspect ratio preserved, Catmull-Rom
// resampling) and compressed as quality-85 JPEG.
func prepareForAnalysis(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > analysisMaxDimension || height > analysisMaxDimension {
		scale := float64(analysisMaxDimension) / float64(width)
		if height > width {
			scale = float64(analysisMaxDimension) / float64(height)
		}
		scaledWidth := int(float64(width) * scale)
		scaledHeight := int(float64(height) * scale)
		if scaledWidth < 1 {
			scaledWidth = 1
		}
		if scaledHeight < 1 {
			scaledHeight = 1
		}

		scaled := image.NewRGBA(image.Rect(0, 0, scaledWidth, scaledHeight))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, draw.Over, nil)
		img = scaled
	}

	buffer := &bytes.Buffer{}
	err := jpeg.Encode(buffer, img, &jpeg.Options{Quality: analysisJPEGQuality})
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	return buffer.Bytes(), nil
}
