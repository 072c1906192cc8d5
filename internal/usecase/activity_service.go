package usecase

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/roomly/backend/internal/domain"
)

// Storage keys, one JSON document per event kind
const (
	searchesKey = "activity:searches"
	viewsKey    = "activity:views"
	clicksKey   = "activity:clicks"
)

// FIFO caps per event kind
const (
	searchLogCap = 100
	viewLogCap   = 200
	clickLogCap  = 200
)

const topCategoryCount = 5

// ActivityService is the append-only, size-bounded activity log. Lists are
// kept newest-first. Appends are optimistic: the in-memory state always
// reflects the mutation, and a failed storage write is logged, not surfaced.
// Tracking must never break a caller.
type ActivityService struct {
	store      domain.BlobStore
	normalizer *SearchNormalizer

	mu       sync.Mutex
	loaded   bool
	searches []domain.SearchRecord
	views    []domain.ProductRecord
	clicks   []domain.ProductRecord

	now func() time.Time
}

// NewActivityService creates an activity service backed by the given store
func NewActivityService(store domain.BlobStore) *ActivityService {
	return &ActivityService{
		store:      store,
		normalizer: NewSearchNormalizer(),
		now:        time.Now,
	}
}

// RecordSearch appends a search event. Blank queries are a silent no-op.
func (s *ActivityService) RecordSearch(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	record := domain.SearchRecord{Query: query, Timestamp: s.now()}
	s.searches = append([]domain.SearchRecord{record}, s.searches...)
	if len(s.searches) > searchLogCap {
		s.searches = s.searches[:searchLogCap]
	}
	s.persist(ctx, searchesKey, s.searches)
}

// RecordView appends a product view event. Products without an ID are a
// silent no-op.
func (s *ActivityService) RecordView(ctx context.Context, product domain.Product) {
	s.recordProduct(ctx, product, &s.views, viewsKey, viewLogCap)
}

// RecordClick appends a product click event.
func (s *ActivityService) RecordClick(ctx context.Context, product domain.Product) {
	s.recordProduct(ctx, product, &s.clicks, clicksKey, clickLogCap)
}

func (s *ActivityService) recordProduct(ctx context.Context, product domain.Product, list *[]domain.ProductRecord, key string, max int) {
	if strings.TrimSpace(product.ID) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	record := domain.ProductRecord{
		ProductID: product.ID,
		Name:      product.Name,
		Category:  product.Category,
		Price:     product.Price,
		Timestamp: s.now(),
	}
	*list = append([]domain.ProductRecord{record}, *list...)
	if len(*list) > max {
		*list = (*list)[:max]
	}
	s.persist(ctx, key, *list)
}

// RecentlyViewed returns the most recent views deduplicated by product ID,
// keeping the first (most recent) occurrence.
func (s *ActivityService) RecentlyViewed(ctx context.Context, limit int) []domain.ProductRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	seen := make(map[string]bool)
	var out []domain.ProductRecord
	for _, record := range s.views {
		if seen[record.ProductID] {
			continue
		}
		seen[record.ProductID] = true
		out = append(out, record)
	}
	return truncateProducts(out, limit)
}

// RecentSearches returns the most recent searches deduplicated
// case-insensitively, keeping the first (most recent) occurrence.
func (s *ActivityService) RecentSearches(ctx context.Context, limit int) []domain.SearchRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	seen := make(map[string]bool)
	var out []domain.SearchRecord
	for _, record := range s.searches {
		key := s.normalizer.DedupKey(record.Query)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, record)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Summary aggregates the log: per-kind counts, top categories across views
// and clicks, and the latest event timestamp.
func (s *ActivityService) Summary(ctx context.Context) domain.ActivitySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	summary := domain.ActivitySummary{
		ProductViews:  len(s.views),
		ProductClicks: len(s.clicks),
		Searches:      len(s.searches),
	}
	summary.TotalEvents = summary.ProductViews + summary.ProductClicks + summary.Searches

	counts := make(map[string]int)
	var last time.Time
	for _, record := range s.views {
		if record.Category != "" {
			counts[record.Category]++
		}
		if record.Timestamp.After(last) {
			last = record.Timestamp
		}
	}
	for _, record := range s.clicks {
		if record.Category != "" {
			counts[record.Category]++
		}
		if record.Timestamp.After(last) {
			last = record.Timestamp
		}
	}
	for _, record := range s.searches {
		if record.Timestamp.After(last) {
			last = record.Timestamp
		}
	}

	for category, count := range counts {
		summary.TopCategories = append(summary.TopCategories, domain.CategoryCount{Category: category, Count: count})
	}
	sort.SliceStable(summary.TopCategories, func(i, j int) bool {
		if summary.TopCategories[i].Count != summary.TopCategories[j].Count {
			return summary.TopCategories[i].Count > summary.TopCategories[j].Count
		}
		return summary.TopCategories[i].Category < summary.TopCategories[j].Category
	})
	if len(summary.TopCategories) > topCategoryCount {
		summary.TopCategories = summary.TopCategories[:topCategoryCount]
	}

	if !last.IsZero() {
		summary.LastActive = &last
	}
	return summary
}

// ensureLoaded reads the persisted logs once per process. Stale records
// missing their identifying field are dropped. Callers hold s.mu.
func (s *ActivityService) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true

	loadList(ctx, s.store, searchesKey, &s.searches)
	loadList(ctx, s.store, viewsKey, &s.views)
	loadList(ctx, s.store, clicksKey, &s.clicks)

	s.searches = filterSearches(s.searches, searchLogCap)
	s.views = filterProducts(s.views, viewLogCap)
	s.clicks = filterProducts(s.clicks, clickLogCap)
}

// persist writes a whole list back to its key, best-effort. Callers hold
// s.mu; in-memory state already reflects the mutation.
func (s *ActivityService) persist(ctx context.Context, key string, list interface{}) {
	data, err := json.Marshal(list)
	if err != nil {
		log.Printf("[ACTIVITY] marshal %s failed: %v", key, err)
		return
	}
	if err := s.store.Save(ctx, key, data); err != nil {
		log.Printf("[ACTIVITY] persist %s failed, keeping session-only state: %v", key, err)
	}
}

func loadList[T any](ctx context.Context, store domain.BlobStore, key string, into *[]T) {
	data, err := store.Load(ctx, key)
	if err != nil {
		if err != domain.ErrBlobNotFound {
			log.Printf("[ACTIVITY] load %s failed, starting empty: %v", key, err)
		}
		return
	}
	if err := json.Unmarshal(data, into); err != nil {
		log.Printf("[ACTIVITY] decode %s failed, starting empty: %v", key, err)
		*into = nil
	}
}

func filterSearches(records []domain.SearchRecord, max int) []domain.SearchRecord {
	var out []domain.SearchRecord
	for _, r := range records {
		if strings.TrimSpace(r.Query) == "" {
			continue
		}
		out = append(out, r)
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func filterProducts(records []domain.ProductRecord, max int) []domain.ProductRecord {
	var out []domain.ProductRecord
	for _, r := range records {
		if strings.TrimSpace(r.ProductID) == "" {
			continue
		}
		out = append(out, r)
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func truncateProducts(records []domain.ProductRecord, limit int) []domain.ProductRecord {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
