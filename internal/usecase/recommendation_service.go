package usecase

import (
	"context"

	"github.com/roomly/backend/internal/domain"
)

// RecommendationService produces room-personalized product rankings.
// Flow: load room -> fetch candidate products -> score -> sort -> truncate.
type RecommendationService struct {
	rooms   *RoomService
	catalog *CatalogService
	scorer  *MatchScorer
}

// NewRecommendationService creates a recommendation service
func NewRecommendationService(rooms *RoomService, catalog *CatalogService, scorer *MatchScorer) *RecommendationService {
	return &RecommendationService{
		rooms:   rooms,
		catalog: catalog,
		scorer:  scorer,
	}
}

// RecommendForRoom ranks catalog products for a stored room profile.
// Returns ErrRoomNotFound for an unknown room and ErrCatalogUnavailable when
// no candidates can be fetched. A room with no style preferences yields an
// empty result, not an error.
func (s *RecommendationService) RecommendForRoom(ctx context.Context, roomID, category string, limit int) ([]domain.ScoredProduct, error) {
	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}

	products, err := s.catalog.ListProducts(ctx, category)
	if err != nil {
		return nil, err
	}

	return s.scorer.Recommend(*room, products, limit), nil
}
