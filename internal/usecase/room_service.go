package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roomly/backend/internal/domain"
)

const roomsKey = "rooms"

// RoomService manages room profiles. The whole room list lives in one blob;
// every mutation rewrites it (last write wins). Writes are best-effort: on
// storage failure the in-memory list stays authoritative for the session.
type RoomService struct {
	store domain.BlobStore

	mu     sync.Mutex
	loaded bool
	rooms  []domain.Room

	newID func() string
	now   func() time.Time
}

// NewRoomService creates a room service backed by the given store
func NewRoomService(store domain.BlobStore) *RoomService {
	return &RoomService{
		store: store,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// List returns all rooms, newest last (insertion order).
func (s *RoomService) List(ctx context.Context) []domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]domain.Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// Get returns a room by ID or ErrRoomNotFound.
func (s *RoomService) Get(ctx context.Context, id string) (*domain.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for _, room := range s.rooms {
		if room.ID == id {
			copied := room
			return &copied, nil
		}
	}
	return nil, domain.ErrRoomNotFound
}

// Create validates and stores a new room, assigning its ID and timestamps.
func (s *RoomService) Create(ctx context.Context, room domain.Room) (*domain.Room, error) {
	if strings.TrimSpace(room.Name) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if err := validateBudget(room); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	now := s.now()
	room.ID = s.newID()
	room.CreatedAt = now
	room.UpdatedAt = now

	s.rooms = append(s.rooms, room)
	s.persist(ctx)
	return &room, nil
}

// Update replaces a room's editable fields. The original creation time is
// preserved; everything else is last-write-wins.
func (s *RoomService) Update(ctx context.Context, id string, room domain.Room) (*domain.Room, error) {
	if strings.TrimSpace(room.Name) == "" {
		return nil, domain.ErrInvalidRequest
	}
	if err := validateBudget(room); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for i, existing := range s.rooms {
		if existing.ID != id {
			continue
		}
		room.ID = id
		room.CreatedAt = existing.CreatedAt
		room.UpdatedAt = s.now()
		s.rooms[i] = room
		s.persist(ctx)
		return &room, nil
	}
	return nil, domain.ErrRoomNotFound
}

// Delete removes a room by ID.
func (s *RoomService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for i, room := range s.rooms {
		if room.ID == id {
			s.rooms = append(s.rooms[:i], s.rooms[i+1:]...)
			s.persist(ctx)
			return nil
		}
	}
	return domain.ErrRoomNotFound
}

func validateBudget(room domain.Room) error {
	if room.BudgetMin != nil && *room.BudgetMin < 0 {
		return domain.ErrInvalidRequest
	}
	if room.BudgetMax != nil && *room.BudgetMax < 0 {
		return domain.ErrInvalidRequest
	}
	if room.BudgetMin != nil && room.BudgetMax != nil && *room.BudgetMin > *room.BudgetMax {
		return domain.ErrInvalidRequest
	}
	return nil
}

// ensureLoaded reads the rooms blob once. Stale entries missing id or name
// (left behind by older clients) are dropped. Callers hold s.mu.
func (s *RoomService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := s.store.Load(ctx, roomsKey)
	if err != nil {
		if err != domain.ErrBlobNotFound {
			log.Printf("[ROOMS] load failed, starting empty: %v", err)
		}
		return
	}

	var rooms []domain.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		log.Printf("[ROOMS] decode failed, starting empty: %v", err)
		return
	}
	for _, room := range rooms {
		if strings.TrimSpace(room.ID) == "" || strings.TrimSpace(room.Name) == "" {
			continue
		}
		s.rooms = append(s.rooms, room)
	}
}

func (s *RoomService) persist(ctx context.Context) {
	data, err := json.Marshal(s.rooms)
	if err != nil {
		log.Printf("[ROOMS] marshal failed: %v", err)
		return
	}
	if err := s.store.Save(ctx, roomsKey, data); err != nil {
		log.Printf("[ROOMS] persist failed, keeping session-only state: %v", err)
	}
}
