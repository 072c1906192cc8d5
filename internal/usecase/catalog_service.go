package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/roomly/backend/internal/domain"
)

// CatalogService serves product listings by merging the remote catalog API
// with the locally persisted admin-added product list, and fronts smart
// search, comparison, and room image analysis.
type CatalogService struct {
	client     domain.CatalogClient
	custom     domain.ProductStore
	activity   *ActivityService
	normalizer *SearchNormalizer
}

// NewCatalogService creates a catalog service
func NewCatalogService(client domain.CatalogClient, custom domain.ProductStore, activity *ActivityService) *CatalogService {
	return &CatalogService{
		client:     client,
		custom:     custom,
		activity:   activity,
		normalizer: NewSearchNormalizer(),
	}
}

// ListProducts returns remote products merged with custom products,
// optionally filtered by category. When the remote catalog is down, the
// custom list is served alone rather than failing the whole request.
func (s *CatalogService) ListProducts(ctx context.Context, category string) ([]domain.Product, error) {
	remote, remoteErr := s.client.ListProducts(ctx, category)
	if remoteErr != nil {
		log.Printf("[CATALOG] remote listing failed, serving custom products only: %v", remoteErr)
	}

	custom := s.customProducts(ctx, category)
	if remoteErr != nil && len(custom) == 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, remoteErr)
	}
	return append(remote, custom...), nil
}

// GetProduct returns a product by ID, checking the custom list first.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if s.custom != nil {
		if product, ok, err := s.custom.GetProduct(ctx, id); err != nil {
			log.Printf("[CATALOG] custom product lookup failed: %v", err)
		} else if ok {
			return &product, nil
		}
	}
	return s.client.GetProduct(ctx, id)
}

// SmartSearch forwards a normalized query to the catalog API and records the
// search in the activity log. Blank queries are rejected.
func (s *CatalogService) SmartSearch(ctx context.Context, query, category string, limit int) ([]domain.Product, error) {
	normalized := s.normalizer.Normalize(query)
	if normalized == "" {
		return nil, domain.ErrInvalidRequest
	}

	if s.activity != nil {
		s.activity.RecordSearch(ctx, normalized)
	}

	products, err := s.client.SmartSearch(ctx, normalized, category, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return products, nil
}

// CompareProducts forwards a product pair to the catalog API.
func (s *CatalogService) CompareProducts(ctx context.Context, firstID, secondID string) (*domain.ProductComparison, error) {
	if strings.TrimSpace(firstID) == "" || strings.TrimSpace(secondID) == "" {
		return nil, domain.ErrInvalidRequest
	}
	comparison, err := s.client.CompareProducts(ctx, firstID, secondID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return comparison, nil
}

// AnalyzeRoomImage forwards an uploaded room photo to the catalog API.
func (s *CatalogService) AnalyzeRoomImage(ctx context.Context, filename string, image io.Reader) (*domain.RoomAnalysis, error) {
	analysis, err := s.client.AnalyzeRoomImage(ctx, filename, image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return analysis, nil
}

// AddCustomProduct stores an admin-added product, assigning an ID when
// missing.
func (s *CatalogService) AddCustomProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if s.custom == nil {
		return nil, domain.ErrInvalidRequest
	}
	if strings.TrimSpace(product.Name) == "" || product.Price < 0 {
		return nil, domain.ErrInvalidRequest
	}
	if strings.TrimSpace(product.ID) == "" {
		product.ID = uuid.NewString()
	}
	if err := s.custom.SaveProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("save custom product: %w", err)
	}
	return &product, nil
}

// RemoveCustomProduct deletes an admin-added product.
func (s *CatalogService) RemoveCustomProduct(ctx context.Context, id string) error {
	if s.custom == nil {
		return domain.ErrProductNotFound
	}
	if _, ok, err := s.custom.GetProduct(ctx, id); err != nil {
		return err
	} else if !ok {
		return domain.ErrProductNotFound
	}
	return s.custom.DeleteProduct(ctx, id)
}

func (s *CatalogService) customProducts(ctx context.Context, category string) []domain.Product {
	if s.custom == nil {
		return nil
	}
	products, err := s.custom.ListProducts(ctx)
	if err != nil {
		log.Printf("[CATALOG] custom product listing failed: %v", err)
		return nil
	}
	if category == "" {
		return products
	}
	var filtered []domain.Product
	for _, p := range products {
		if strings.EqualFold(p.Category, category) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
