package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&productRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID             string     `gorm:"primaryKey;column:id;size:64"`
	OrderNumber    string     `gorm:"column:order_number;uniqueIndex"`
	CustomerID     string     `gorm:"column:customer_id;size:64;index:idx_orders_customer_status"`
	FarmerID       string     `gorm:"column:farmer_id;size:64;index:idx_orders_farmer_status"`
	Items          []byte     `gorm:"column:items;type:jsonb"`
	TotalAmount    float64    `gorm:"column:total_amount"`
	Status         string     `gorm:"column:status;type:varchar(32);index:idx_orders_customer_status;index:idx_orders_farmer_status"`
	PaymentStatus  string     `gorm:"column:payment_status;type:varchar(32)"`
	MpesaCode      string     `gorm:"column:mpesa_code"`
	DeliveryMethod string     `gorm:"column:delivery_method;type:varchar(16)"`
	ShipCounty     string     `gorm:"column:ship_county"`
	ShipSubCounty  string     `gorm:"column:ship_sub_county"`
	ShipStreet     string     `gorm:"column:ship_street"`
	DeliveryDate   *time.Time `gorm:"column:delivery_date"`
	Notes          string     `gorm:"column:notes"`
	CreatedAt      time.Time  `gorm:"column:created_at;index"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Product schema mirrors the products Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:64"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Phone        string    `gorm:"column:phone"`
	Role         string    `gorm:"column:role;type:varchar(16)"`
	PasswordHash string    `gorm:"column:password_hash"`
	County       string    `gorm:"column:county"`
	SubCounty    string    `gorm:"column:sub_county"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string    `gorm:"primaryKey;column:token;size:512"`
	UserID    string    `gorm:"column:user_id;size:64;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
