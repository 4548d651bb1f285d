package model

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Production order statuses
const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// FormingMargin is the defect/shrinkage margin applied when deriving the
// forming quantity from the ordered quantity.
const FormingMargin = 1.15

// orderTransitions is the allowed status transition table. Completed and
// cancelled are terminal.
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from one status to another.
// Keeping the same status is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// FormingQuantity derives how many units to start production with for a
// given ordered quantity.
func FormingQuantity(ordered int) int {
	return int(math.Round(float64(ordered) * FormingMargin))
}

// ProductionOrder is a customer purchase order with one or more items
type ProductionOrder struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	CompanyID    uint           `json:"company_id" gorm:"uniqueIndex:idx_orders_company_po;not null"`
	ClientID     uint           `json:"client_id" gorm:"index;not null"`
	PONo         string         `json:"po_no" gorm:"column:po_no;type:varchar(100);uniqueIndex:idx_orders_company_po;not null"`
	DeliveryDate time.Time      `json:"delivery_date" gorm:"not null"`
	Priority     int            `json:"priority" gorm:"default:1"`
	Status       string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Notes        string         `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	Client Client                `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Items  []ProductionOrderItem `json:"items,omitempty" gorm:"foreignKey:ProductionOrderID"`
}

// ProductionOrderItem is one product line of a production order. Items are
// replaced wholesale when the order is updated, so they carry no soft delete.
type ProductionOrderItem struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ProductionOrderID uint      `json:"production_order_id" gorm:"index;not null"`
	ProductID         uint      `json:"product_id" gorm:"index;not null"`
	QtyOrdered        int       `json:"qty_ordered" gorm:"not null"`
	QtyForming        int       `json:"qty_forming" gorm:"not null"`
	Notes             string    `json:"notes" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
