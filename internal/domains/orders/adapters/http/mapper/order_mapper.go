package mapper

import (
	"time"

	ordertypes "github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	orderdomain "github.com/sokoyetu/soko-api/internal/domains/orders/domain"
)

// OrderItem is the transport-layer shape of one order line.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int32   `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Address is the transport-layer shape of a delivery destination.
type Address struct {
	County    string `json:"county"`
	SubCounty string `json:"subCounty,omitempty"`
	Street    string `json:"street,omitempty"`
}

// Order is the transport-layer shape used by the HTTP handlers.
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	CustomerID      string      `json:"customerId"`
	FarmerID        string      `json:"farmerId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	PaymentStatus   string      `json:"paymentStatus"`
	MpesaCode       string      `json:"mpesaCode,omitempty"`
	DeliveryMethod  string      `json:"deliveryMethod"`
	ShippingAddress Address     `json:"shippingAddress"`
	DeliveryDate    *time.Time  `json:"deliveryDate,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// BucketCounts carries the live tab counters.
type BucketCounts struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// Board is the filtered listing plus its counts.
type Board struct {
	Filter string       `json:"filter"`
	Orders []Order      `json:"orders"`
	Counts BucketCounts `json:"counts"`
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	out := Order{
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
		ShippingAddress: Address{
			County:    order.ShippingAddress.County,
			SubCounty: order.ShippingAddress.SubCounty,
			Street:    order.ShippingAddress.Street,
		},
		Notes:     order.Notes,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
	if !order.DeliveryDate.IsZero() {
		date := order.DeliveryDate
		out.DeliveryDate = &date
	}
	return out
}

// FromBoard converts the projected board to the transport representation.
func FromBoard(board *ordertypes.Board) Board {
	if board == nil {
		return Board{}
	}
	orders := make([]Order, 0, len(board.Orders))
	for _, order := range board.Orders {
		orders = append(orders, FromDomainOrder(order))
	}
	return Board{
		Filter: string(board.Filter),
		Orders: orders,
		Counts: BucketCounts{
			All:       board.Counts.All,
			Pending:   board.Counts.Pending,
			Active:    board.Counts.Active,
			Completed: board.Counts.Completed,
			Cancelled: board.Counts.Cancelled,
		},
	}
}
