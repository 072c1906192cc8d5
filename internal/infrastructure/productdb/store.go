package productdb

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/roomly/backend/internal/domain"
)

// ProductModel is the persisted row for an admin-added product.
type ProductModel struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Category    string `gorm:"index"`
	Price       float64
	Rating      float64
	ReviewCount int
	Image       string
	Description string
	Styles      datatypes.JSONSlice[string]
	Colors      datatypes.JSONSlice[string]
	Tags        datatypes.JSONSlice[string]
	Images      datatypes.JSONSlice[string]
	Dimensions  datatypes.JSONType[domain.Dimensions]
	InStock     bool
	Trending    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (ProductModel) TableName() string { return "custom_products" }

// Store implements domain.ProductStore using GORM + SQLite.
type Store struct {
	db *gorm.DB
}

// NewStore opens the DB file and runs auto-migrations.
func NewStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open product db: %w", err)
	}
	if err := db.AutoMigrate(&ProductModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveProduct inserts or updates a product row.
func (s *Store) SaveProduct(ctx context.Context, p domain.Product) error {
	model := toModel(p)
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "category", "price", "rating", "review_count", "image",
			"description", "styles", "colors", "tags", "images", "dimensions",
			"in_stock", "trending", "updated_at",
		}),
	}).Create(&model).Error
}

// GetProduct retrieves a product by ID.
func (s *Store) GetProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	var model ProductModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Product{}, false, nil
		}
		return domain.Product{}, false, err
	}
	return fromModel(model), true, nil
}

// ListProducts returns all products ordered by creation time.
func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var models []ProductModel
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(models))
	for _, m := range models {
		products = append(products, fromModel(m))
	}
	return products, nil
}

// DeleteProduct removes a product row.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&ProductModel{}, "id = ?", id).Error
}

func toModel(p domain.Product) ProductModel {
	return ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Image:       p.Image,
		Description: p.Description,
		Styles:      datatypes.NewJSONSlice(p.Styles),
		Colors:      datatypes.NewJSONSlice(p.Colors),
		Tags:        datatypes.NewJSONSlice(p.Tags),
		Images:      datatypes.NewJSONSlice(p.Images),
		Dimensions:  datatypes.NewJSONType(p.Dimensions),
		InStock:     p.InStock,
		Trending:    p.Trending,
	}
}

func fromModel(m ProductModel) domain.Product {
	return domain.Product{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Price:       m.Price,
		Rating:      m.Rating,
		ReviewCount: m.ReviewCount,
		Image:       m.Image,
		Description: m.Description,
		Styles:      m.Styles,
		Colors:      m.Colors,
		Tags:        m.Tags,
		Images:      m.Images,
		Dimensions:  m.Dimensions.Data(),
		InStock:     m.InStock,
		Trending:    m.Trending,
	}
}
