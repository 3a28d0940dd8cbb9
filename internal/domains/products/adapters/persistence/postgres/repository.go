package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sokoyetu/soko-api/internal/domains/products/domain"
	"github.com/sokoyetu/soko-api/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog listings in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

// productRecord maps a listing to a relational table.
type productRecord struct {
	ID           string         `gorm:"primaryKey;column:id;size:64"`
	FarmerID     string         `gorm:"column:farmer_id;size:64;index:idx_products_farmer"`
	Name         string         `gorm:"column:name"`
	Description  string         `gorm:"column:description"`
	Category     string         `gorm:"column:category;type:varchar(32);index:idx_products_category_county"`
	Subcategory  string         `gorm:"column:subcategory"`
	Price        float64        `gorm:"column:price"`
	Unit         string         `gorm:"column:unit;type:varchar(16)"`
	Quantity     int32          `gorm:"column:quantity"`
	MinOrder     int32          `gorm:"column:min_order"`
	County       string         `gorm:"column:county;index:idx_products_category_county"`
	SubCounty    string         `gorm:"column:sub_county"`
	IsOrganic    bool           `gorm:"column:is_organic"`
	IsFresh      bool           `gorm:"column:is_fresh"`
	Tags         pq.StringArray `gorm:"column:tags;type:text[]"`
	Rating       float64        `gorm:"column:rating"`
	TotalReviews int32          `gorm:"column:total_reviews"`
	IsAvailable  bool           `gorm:"column:is_available;index"`
	Views        int64          `gorm:"column:views"`
	HarvestDate  *time.Time     `gorm:"column:harvest_date"`
	ExpiryDate   *time.Time     `gorm:"column:expiry_date"`
	CreatedAt    time.Time      `gorm:"column:created_at;index"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a listing.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":         record.Name,
				"description":  record.Description,
				"price":        record.Price,
				"quantity":     record.Quantity,
				"min_order":    record.MinOrder,
				"tags":         record.Tags,
				"is_available": record.IsAvailable,
				"views":        record.Views,
				"updated_at":   record.UpdatedAt,
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a listing by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Search filters listings in SQL, newest listings first.
func (r *Repository) Search(ctx context.Context, query ports.SearchQuery) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	tx := r.db.WithContext(ctx)
	if query.Category != "" {
		tx = tx.Where("category = ?", string(query.Category))
	}
	if query.County != "" {
		tx = tx.Where("LOWER(county) = LOWER(?)", query.County)
	}
	if query.FarmerID != "" {
		tx = tx.Where("farmer_id = ?", query.FarmerID)
	}
	if query.OnlyAvailable {
		tx = tx.Where("is_available = TRUE")
	}
	if query.Text != "" {
		pattern := "%" + query.Text + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	var records []productRecord
	if err := tx.Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:           product.ID,
		FarmerID:     product.FarmerID,
		Name:         product.Name,
		Description:  product.Description,
		Category:     string(product.Category),
		Subcategory:  product.Subcategory,
		Price:        product.Price,
		Unit:         product.Unit,
		Quantity:     product.Quantity,
		MinOrder:     product.MinOrder,
		County:       product.Location.County,
		SubCounty:    product.Location.SubCounty,
		IsOrganic:    product.IsOrganic,
		IsFresh:      product.IsFresh,
		Tags:         pq.StringArray(product.Tags),
		Rating:       product.Rating,
		TotalReviews: product.TotalReviews,
		IsAvailable:  product.IsAvailable,
		Views:        product.Views,
		HarvestDate:  product.HarvestDate,
		ExpiryDate:   product.ExpiryDate,
		CreatedAt:    product.CreatedAt,
		UpdatedAt:    product.UpdatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:           r.ID,
		FarmerID:     r.FarmerID,
		Name:         r.Name,
		Description:  r.Description,
		Category:     domain.Category(r.Category),
		Subcategory:  r.Subcategory,
		Price:        r.Price,
		Unit:         r.Unit,
		Quantity:     r.Quantity,
		MinOrder:     r.MinOrder,
		Location: domain.Location{
			County:    r.County,
			SubCounty: r.SubCounty,
		},
		IsOrganic:    r.IsOrganic,
		IsFresh:      r.IsFresh,
		Tags:         []string(r.Tags),
		Rating:       r.Rating,
		TotalReviews: r.TotalReviews,
		IsAvailable:  r.IsAvailable,
		Views:        r.Views,
		HarvestDate:  r.HarvestDate,
		ExpiryDate:   r.ExpiryDate,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
