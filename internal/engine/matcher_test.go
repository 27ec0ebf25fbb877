package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupulse/timetable-api/internal/models"
)

func TestRoomMatcherPicksFirstFreeCandidate(t *testing.T) {
	store := newMemoryStore(nil)
	rooms := &stubRooms{rooms: []models.Room{
		{ID: "room-a", Name: "Lab A", SeatsAmount: 30, Type: "LAB"},
		{ID: "room-b", Name: "Lab B", SeatsAmount: 30, Type: "LAB"},
	}}
	matcher := NewRoomMatcher(rooms, NewChecker(store, 2))

	room, err := matcher.Find(context.Background(), "LAB", 20, day(2024, time.February, 5), "sched-mon", "")
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "room-a", room.ID)
}

func TestRoomMatcherSkipsBusyRooms(t *testing.T) {
	store := newMemoryStore(nil)
	store.book("t-1", "sched-mon", "room-a", day(2024, time.February, 5))
	rooms := &stubRooms{rooms: []models.Room{
		{ID: "room-a", Name: "Lab A", SeatsAmount: 30, Type: "LAB"},
		{ID: "room-b", Name: "Lab B", SeatsAmount: 30, Type: "LAB"},
	}}
	matcher := NewRoomMatcher(rooms, NewChecker(store, 2))

	room, err := matcher.Find(context.Background(), "LAB", 20, day(2024, time.February, 5), "sched-mon", "")
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "room-b", room.ID)
}

func TestRoomMatcherNoCandidateFree(t *testing.T) {
	store := newMemoryStore(nil)
	store.book("t-1", "sched-mon", "room-a", day(2024, time.February, 5))
	rooms := &stubRooms{rooms: []models.Room{
		{ID: "room-a", Name: "Lab A", SeatsAmount: 30, Type: "LAB"},
	}}
	matcher := NewRoomMatcher(rooms, NewChecker(store, 2))

	room, err := matcher.Find(context.Background(), "LAB", 20, day(2024, time.February, 5), "sched-mon", "")
	require.NoError(t, err)
	assert.Nil(t, room)
}

func TestRoomMatcherHonorsExclusion(t *testing.T) {
	store := newMemoryStore(nil)
	store.book("t-1", "sched-mon", "room-a", day(2024, time.February, 5))
	bookingID := store.allocations[0].bookingID
	rooms := &stubRooms{rooms: []models.Room{
		{ID: "room-a", Name: "Lab A", SeatsAmount: 30, Type: "LAB"},
	}}
	matcher := NewRoomMatcher(rooms, NewChecker(store, 2))

	room, err := matcher.Find(context.Background(), "LAB", 20, day(2024, time.February, 5), "sched-mon", bookingID)
	require.NoError(t, err)
	require.NotNil(t, room)
	assert.Equal(t, "room-a", room.ID, "the session's own booking does not block its room")
}

func TestRoomMatcherPropagatesCatalogError(t *testing.T) {
	rooms := &stubRooms{err: errors.New("catalog down")}
	matcher := NewRoomMatcher(rooms, NewChecker(newMemoryStore(nil), 2))

	_, err := matcher.Find(context.Background(), "LAB", 20, day(2024, time.February, 5), "sched-mon", "")
	require.Error(t, err)
}
