package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// Status is the order lifecycle state
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

// Item is one purchased line, frozen from the cart snapshot at checkout
type Item struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	SKU       string          `gorm:"type:varchar(50);not null" json:"sku"`
	Name      string          `gorm:"type:varchar(200);not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}

// Subtotal returns unit price multiplied by quantity
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the record of a completed checkout. It is created in pending
// state, marked paid when the gateway confirms, and then shipped or
// cancelled by an administrator.
type Order struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	Status Status          `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Total  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total"`
	Items  []Item          `gorm:"foreignKey:OrderID" json:"items"`
	PaidAt *time.Time      `json:"paid_at,omitempty"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// TableName specifies the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// NewOrder creates a pending order from the given cart contents
func NewOrder(userID uuid.UUID, cartItems []cart.Item) (*Order, error) {
	if len(cartItems) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order requires at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            StatusPending,
	}

	total := decimal.Zero
	for _, ci := range cartItems {
		item := Item{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: ci.ProductID,
			SKU:       ci.SKU,
			Name:      ci.Name,
			UnitPrice: ci.Price,
			Quantity:  ci.Quantity,
		}
		total = total.Add(item.Subtotal())
		o.Items = append(o.Items, item)
	}
	o.Total = total

	o.AddDomainEvent(NewOrderCreatedEvent(o.ID, o.UserID, o.Total))
	return o, nil
}

// MarkPaid transitions the order from pending to paid
func (o *Order) MarkPaid() error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be marked paid")
	}
	now := time.Now()
	o.Status = StatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderPaidEvent(o.ID, o.Total))
	return nil
}

// MarkShipped transitions the order from paid to shipped
func (o *Order) MarkShipped() error {
	if o.Status != StatusPaid {
		return shared.NewDomainError("INVALID_STATE", "Only paid orders can be shipped")
	}
	o.Status = StatusShipped
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderShippedEvent(o.ID))
	return nil
}

// Cancel transitions a pending or paid order to cancelled
func (o *Order) Cancel() error {
	if o.Status == StatusShipped || o.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Shipped or cancelled orders cannot be cancelled")
	}
	o.Status = StatusCancelled
	o.Touch()
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCancelledEvent(o.ID))
	return nil
}

// ItemCount returns the sum of quantities across all lines
func (o *Order) ItemCount() int {
	count := 0
	for i := range o.Items {
		count += o.Items[i].Quantity
	}
	return count
}
