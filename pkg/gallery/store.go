package gallery

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

// Store holds the images generated during one session, in memory only.
// Records are immutable once appended. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	images []model.GeneratedImage
}

func NewStore() *Store {
	return &Store{}
}

// Append adds a record to the gallery, assigning it an ID and timestamp, and
// returns the stored copy.
func (s *Store) Append(record model.GeneratedImage) model.GeneratedImage {
	record.ID = uuid.NewString()
	record.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, record)
	return record
}

// List returns the gallery newest-first. With includeAdult false, records
// whose verdict flags adult content are omitted entirely rather than blurred;
// hiding is the caller-facing contract here.
func (s *Store) List(includeAdult bool) []model.GeneratedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.GeneratedImage, 0, len(s.images))
	for i := len(s.images) - 1; i >= 0; i-- {
		record := s.images[i]
		if !includeAdult && record.Moderation.IsAdultContent {
			continue
		}
		out = append(out, record)
	}
	return out
}

// Get looks up a record by ID.
func (s *Store) Get(id string) (model.GeneratedImage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.images {
		if record.ID == id {
			return record, true
		}
	}
	return model.GeneratedImage{}, false
}

// Len reports the number of stored records, including hidden ones.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Clear removes every record and reports how many were dropped.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.images)
	s.images = nil
	return n
}
