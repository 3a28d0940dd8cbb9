package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	"github.com/sokoyetu/soko-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

type itemRecord struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int32   `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// orderRecord maps the order aggregate to a relational table.
type orderRecord struct {
	ID             string       `gorm:"primaryKey;column:id;size:64"`
	OrderNumber    string       `gorm:"column:order_number;uniqueIndex"`
	CustomerID     string       `gorm:"column:customer_id;size:64;index:idx_orders_customer_status"`
	FarmerID       string       `gorm:"column:farmer_id;size:64;index:idx_orders_farmer_status"`
	Items          []itemRecord `gorm:"column:items;serializer:json"`
	TotalAmount    float64      `gorm:"column:total_amount"`
	Status         string       `gorm:"column:status;type:varchar(32);index:idx_orders_customer_status;index:idx_orders_farmer_status"`
	PaymentStatus  string       `gorm:"column:payment_status;type:varchar(32)"`
	MpesaCode      string       `gorm:"column:mpesa_code"`
	DeliveryMethod string       `gorm:"column:delivery_method;type:varchar(16)"`
	ShipCounty     string       `gorm:"column:ship_county"`
	ShipSubCounty  string       `gorm:"column:ship_sub_county"`
	ShipStreet     string       `gorm:"column:ship_street"`
	DeliveryDate   *time.Time   `gorm:"column:delivery_date"`
	Notes          string       `gorm:"column:notes"`
	CreatedAt      time.Time    `gorm:"column:created_at;index"`
	UpdatedAt      time.Time    `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts or updates an order.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":         record.Status,
				"payment_status": record.PaymentStatus,
				"mpesa_code":     record.MpesaCode,
				"delivery_date":  record.DeliveryDate,
				"notes":          record.Notes,
				"updated_at":     record.UpdatedAt,
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders append-ordered by creation time.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, r.db)
}

// ListForUser returns orders where the user is either party, append-ordered.
func (r *Repository) ListForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	return r.list(ctx, r.db.Where("customer_id = ? OR farmer_id = ?", userID, userID))
}

func (r *Repository) list(ctx context.Context, tx *gorm.DB) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := tx.WithContext(ctx).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]itemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, itemRecord{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	rec := orderRecord{
		ID:             order.ID,
		OrderNumber:    order.OrderNumber,
		CustomerID:     order.CustomerID,
		FarmerID:       order.FarmerID,
		Items:          items,
		TotalAmount:    order.TotalAmount,
		Status:         string(order.Status),
		PaymentStatus:  string(order.PaymentStatus),
		MpesaCode:      order.MpesaCode,
		DeliveryMethod: string(order.DeliveryMethod),
		ShipCounty:     order.ShippingAddress.County,
		ShipSubCounty:  order.ShippingAddress.SubCounty,
		ShipStreet:     order.ShippingAddress.Street,
		Notes:          order.Notes,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
	if !order.DeliveryDate.IsZero() {
		date := order.DeliveryDate
		rec.DeliveryDate = &date
	}
	return rec
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	order := &domain.Order{
		ID:             r.ID,
		OrderNumber:    r.OrderNumber,
		CustomerID:     r.CustomerID,
		FarmerID:       r.FarmerID,
		Items:          items,
		TotalAmount:    r.TotalAmount,
		Status:         domain.Status(r.Status),
		PaymentStatus:  domain.PaymentStatus(r.PaymentStatus),
		MpesaCode:      r.MpesaCode,
		DeliveryMethod: domain.DeliveryMethod(r.DeliveryMethod),
		ShippingAddress: domain.Address{
			County:    r.ShipCounty,
			SubCounty: r.ShipSubCounty,
			Street:    r.ShipStreet,
		},
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.DeliveryDate != nil {
		order.DeliveryDate = *r.DeliveryDate
	}
	return order
}
