package utils

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/logging"
)

var unsafeFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SaveTempAudio writes audio bytes to a temporary file and returns its path.
// Callers must remove the file when done, normally via CleanupTempFiles.
func SaveTempAudio(ctx context.Context, data []byte, extension string) (string, error) {
	if extension == "" {
		extension = ".wav"
	}

	tempFile, err := os.CreateTemp("", "speech-*"+extension)
	if err != nil {
		return "", WrapIfNotNil(err)
	}

	_, writeErr := tempFile.Write(data)
	closeErr := tempFile.Close()
	if writeErr != nil {
		_ = os.Remove(tempFile.Name())
		return "", WrapIfNotNil(writeErr)
	}
	if closeErr != nil {
		_ = os.Remove(tempFile.Name())
		return "", WrapIfNotNil(closeErr)
	}

	logging.NewLogger(ctx).Debugf("audio saved to temporary file %q (%s)", tempFile.Name(), FormatFileSize(int64(len(data))))
	return tempFile.Name(), nil
}

// CleanupTempFiles removes the given files, logging rather than failing on
// errors. Missing files are not an error.
func CleanupTempFiles(ctx context.Context, paths ...string) {
	log := logging.NewLogger(ctx)
	for _, path := range paths {
		if path == "" {
			continue
		}
		err := os.Remove(path)
		if err != nil && !os.IsNotExist(err) {
			log.Warnf("cleanup of %q failed: %v", path, err)
			continue
		}
		log.Debugf("cleaned up temporary file %q", path)
	}
}

// SafeFilename strips characters that are unsafe in filenames. An empty
// result is replaced with a timestamped placeholder.
func SafeFilename(name string) string {
	safe := unsafeFilenameChars.ReplaceAllString(name, "_")
	safe = strings.Trim(safe, " .")
	if safe == "" {
		safe = fmt.Sprintf("file_%d", time.Now().Unix())
	}
	return safe
}

// FileExtension returns the lowercased extension of name, including the dot.
func FileExtension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx:])
}

func FormatFileSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0B"
	}

	size := float64(sizeBytes)
	units := []string{"B", "KB", "MB", "GB"}
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.1f%s", size, units[i])
}

// EstimateProcessingTime predicts, in seconds, how long the full pipeline
// will take for a recording of the given duration. Rough figures: faster than
// real-time transcription, a fixed image-generation cost, a quick moderation
// pass. Never less than 5 seconds.
func EstimateProcessingTime(audioDurationSeconds float64) float64 {
	const (
		transcriptionFactor = 0.3
		imageGenerationTime = 15.0
		moderationTime      = 3.0
	)

	total := audioDurationSeconds*transcriptionFactor + imageGenerationTime + moderationTime
	if total < 5 {
		return 5
	}
	return total
}

func FormatDuration(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", int(seconds)/60, int(seconds)%60)
	default:
		return fmt.Sprintf("%dh %dm", int(seconds)/3600, (int(seconds)%3600)/60)
	}
}
