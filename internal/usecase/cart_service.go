package usecase

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/roomly/backend/internal/domain"
)

const (
	cartKey      = "cart"
	discountsKey = "discounts"
)

// CartService manages the shopping cart and the per-product discount map.
// Each lives in its own blob; mutations rewrite the whole document.
type CartService struct {
	store domain.BlobStore

	mu        sync.Mutex
	loaded    bool
	items     []domain.CartItem
	discounts map[string]float64

	now func() time.Time
}

// NewCartService creates a cart service backed by the given store
func NewCartService(store domain.BlobStore) *CartService {
	return &CartService{
		store:     store,
		discounts: make(map[string]float64),
		now:       time.Now,
	}
}

// AddItem adds a product to the cart, merging quantities for an existing
// line. Quantity defaults to 1.
func (s *CartService) AddItem(ctx context.Context, item domain.CartItem) error {
	if strings.TrimSpace(item.ProductID) == "" {
		return domain.ErrInvalidRequest
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for i, existing := range s.items {
		if existing.ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			s.persistCart(ctx)
			return nil
		}
	}

	item.AddedAt = s.now()
	s.items = append(s.items, item)
	s.persistCart(ctx)
	return nil
}

// SetQuantity updates a cart line; a quantity at or below zero removes it.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for i, item := range s.items {
		if item.ProductID != productID {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		s.persistCart(ctx)
		return nil
	}
	return domain.ErrCartItemNotFound
}

// RemoveItem deletes a cart line.
func (s *CartService) RemoveItem(ctx context.Context, productID string) error {
	return s.SetQuantity(ctx, productID, 0)
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	s.items = nil
	s.persistCart(ctx)
}

// Items returns the cart lines in insertion order.
func (s *CartService) Items(ctx context.Context) []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Totals sums the cart with discounts applied. A discount is a fraction of
// the line price in (0, 1].
func (s *CartService) Totals(ctx context.Context) domain.CartTotals {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	var totals domain.CartTotals
	for _, item := range s.items {
		line := item.Price * float64(item.Quantity)
		totals.Subtotal += line
		totals.ItemCount += item.Quantity
		if fraction, ok := s.discounts[item.ProductID]; ok {
			totals.Discount += line * fraction
		}
	}
	totals.Total = totals.Subtotal - totals.Discount
	return totals
}

// SetDiscount sets the discount fraction for a product.
func (s *CartService) SetDiscount(ctx context.Context, productID string, fraction float64) error {
	if strings.TrimSpace(productID) == "" || fraction <= 0 || fraction > 1 {
		return domain.ErrInvalidRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	s.discounts[productID] = fraction
	s.persistDiscounts(ctx)
	return nil
}

// RemoveDiscount clears a product's discount.
func (s *CartService) RemoveDiscount(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	delete(s.discounts, productID)
	s.persistDiscounts(ctx)
}

// Discounts returns a copy of the discount map.
func (s *CartService) Discounts(ctx context.Context) map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make(map[string]float64, len(s.discounts))
	for id, fraction := range s.discounts {
		out[id] = fraction
	}
	return out
}

func (s *CartService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	if data, err := s.store.Load(ctx, cartKey); err == nil {
		var items []domain.CartItem
		if err := json.Unmarshal(data, &items); err != nil {
			log.Printf("[CART] decode cart failed, starting empty: %v", err)
		} else {
			for _, item := range items {
				if strings.TrimSpace(item.ProductID) == "" || item.Quantity <= 0 {
					continue
				}
				s.items = append(s.items, item)
			}
		}
	} else if err != domain.ErrBlobNotFound {
		log.Printf("[CART] load cart failed, starting empty: %v", err)
	}

	if data, err := s.store.Load(ctx, discountsKey); err == nil {
		if err := json.Unmarshal(data, &s.discounts); err != nil {
			log.Printf("[CART] decode discounts failed, starting empty: %v", err)
			s.discounts = make(map[string]float64)
		}
	} else if err != domain.ErrBlobNotFound {
		log.Printf("[CART] load discounts failed, starting empty: %v", err)
	}
}

func (s *CartService) persistCart(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("[CART] marshal cart failed: %v", err)
		return
	}
	if err := s.store.Save(ctx, cartKey, data); err != nil {
		log.Printf("[CART] persist cart failed, keeping session-only state: %v", err)
	}
}

func (s *CartService) persistDiscounts(ctx context.Context) {
	data, err := json.Marshal(s.discounts)
	if err != nil {
		log.Printf("[CART] marshal discounts failed: %v", err)
		return
	}
	if err := s.store.Save(ctx, discountsKey, data); err != nil {
		log.Printf("[CART] persist discounts failed, keeping session-only state: %v", err)
	}
}
