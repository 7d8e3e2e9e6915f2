package gallery

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

type StoreSuite struct {
	suite.Suite
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) TestAppendAssignsIDAndTimestamp() {
	store := NewStore()

	record := store.Append(model.GeneratedImage{Prompt: "a lighthouse"})

	s.NotEmpty(record.ID)
	s.False(record.CreatedAt.IsZero())
	s.Equal(1, store.Len())
}

func (s *StoreSuite) TestListReturnsNewestFirst() {
	store := NewStore()
	store.Append(model.GeneratedImage{Prompt: "first"})
	store.Append(model.GeneratedImage{Prompt: "second"})
	store.Append(model.GeneratedImage{Prompt: "third"})

	records := store.List(true)

	s.Require().Len(records, 3)
	s.Equal("third", records[0].Prompt)
	s.Equal("first", records[2].Prompt)
}

func (s *StoreSuite) TestListHidesAdultContentByDefault() {
	store := NewStore()
	store.Append(model.GeneratedImage{Prompt: "clean"})
	store.Append(model.GeneratedImage{
		Prompt:     "flagged",
		Moderation: model.ImageVerdict{IsAdultContent: true},
	})

	hidden := store.List(false)
	s.Require().Len(hidden, 1)
	s.Equal("clean", hidden[0].Prompt)

	all := store.List(true)
	s.Len(all, 2)
	s.Equal(2, store.Len())
}

func (s *StoreSuite) TestGetFindsRecordByID() {
	store := NewStore()
	stored := store.Append(model.GeneratedImage{Prompt: "a lighthouse"})

	found, ok := store.Get(stored.ID)
	s.True(ok)
	s.Equal("a lighthouse", found.Prompt)

	_, ok = store.Get("missing")
	s.False(ok)
}

func (s *StoreSuite) TestManagerIsolatesSessions() {
	manager := NewManager()

	manager.Session("alpha").Append(model.GeneratedImage{Prompt: "from alpha"})

	s.Zero(manager.Session("beta").Len())
	s.Equal(1, manager.Session("alpha").Len())
	s.Equal(2, manager.SessionCount())
}

func (s *StoreSuite) TestManagerEmptyIDMapsToDefault() {
	manager := NewManager()

	manager.Session("").Append(model.GeneratedImage{Prompt: "anonymous"})

	s.Equal(1, manager.Session(DefaultSession).Len())
}

func (s *StoreSuite) TestManagerResetDropsSession() {
	manager := NewManager()
	manager.Session("alpha").Append(model.GeneratedImage{Prompt: "one"})
	manager.Session("alpha").Append(model.GeneratedImage{Prompt: "two"})

	s.Equal(2, manager.Reset("alpha"))
	s.Zero(manager.Session("alpha").Len())
	s.Zero(manager.Reset("never-seen"))
}

func (s *StoreSuite) TestClearDropsEverything() {
	store := NewStore()
	store.Append(model.GeneratedImage{Prompt: "one"})
	store.Append(model.GeneratedImage{Prompt: "two"})

	s.Equal(2, store.Clear())
	s.Zero(store.Len())
	s.Empty(store.List(true))
	s.Zero(store.Clear())
}
