package domain

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusValidated OrderStatus = "VALIDATED"
	StatusReady     OrderStatus = "READY"
	StatusPaid      OrderStatus = "PAID"
)

type OrderType string

const (
	TypeDineIn   OrderType = "DINE_IN"
	TypeTakeaway OrderType = "TAKEAWAY"
)

type PaymentMethod string

const (
	PaymentCard        PaymentMethod = "CARD"
	PaymentTicketCard  PaymentMethod = "TICKET_CARD"
	PaymentCash        PaymentMethod = "CASH"
	PaymentPaperTicket PaymentMethod = "PAPER_TICKET"
)

type Role string

const (
	RoleGuest  Role = "guest"
	RoleWaiter Role = "waiter"
	RoleAdmin  Role = "admin"
	RoleChef   Role = "chef"
)

type TableShape string

const (
	ShapeRect  TableShape = "RECT"
	ShapeRound TableShape = "ROUND"
)

// Table number sentinels. An empty table number is treated like
// UnassignedTable.
const (
	UnassignedTable = "?"
	TakeawayTable   = "Takeaway"
)

type MenuItem struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	IsAvailable bool    `json:"is_available"`
}

type OrderItem struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	MenuItemID string    `json:"menu_item_id"`
	MenuItem   *MenuItem `json:"menu_item,omitempty"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	Notes      string    `json:"notes,omitempty"`
	IsPrepared bool      `json:"is_prepared"`
}

type Order struct {
	ID             string        `json:"id"`
	TableNumber    string        `json:"table_number"`
	Type           OrderType     `json:"type"`
	Status         OrderStatus   `json:"status"`
	Items          []OrderItem   `json:"items"`
	PaymentMethod  PaymentMethod `json:"payment_method,omitempty"`
	TotalAmount    float64       `json:"total_amount"`
	NumberOfPeople int           `json:"number_of_people"`
	MainsStarted   bool          `json:"mains_started"`
	CreatedBy      string        `json:"created_by,omitempty"`
	ValidatedBy    string        `json:"validated_by,omitempty"`
	Version        int64         `json:"version"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type Table struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	Shape    TableShape `json:"shape"`
	Capacity int        `json:"capacity"`
}

// OrderPatch is a partial order update. Nil fields are left untouched.
type OrderPatch struct {
	Status         *OrderStatus
	TableNumber    *string
	NumberOfPeople *int
	MainsStarted   *bool
	ValidatedBy    *string
}

func (p OrderPatch) IsEmpty() bool {
	return p.Status == nil && p.TableNumber == nil && p.NumberOfPeople == nil &&
		p.MainsStarted == nil && p.ValidatedBy == nil
}

// OrderFilter narrows FetchOrders. Zero values match everything.
type OrderFilter struct {
	Status    OrderStatus
	CreatedBy string
	Statuses  []OrderStatus
	Limit     int
}

type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	ItemID    string    `json:"item_id,omitempty"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventOrderCreated     = "order_created"
	EventOrderUpdated     = "order_updated"
	EventOrderItemUpdated = "order_item_updated"
)

func IsUnassigned(tableNumber string) bool {
	return tableNumber == "" || tableNumber == UnassignedTable
}

// IsReservedLabel reports whether a label collides with a table number
// sentinel and therefore can never name a physical table.
func IsReservedLabel(label string) bool {
	return IsUnassigned(label) || label == TakeawayTable
}

func (o *Order) IsUnassigned() bool {
	return o.Type == TypeDineIn && IsUnassigned(o.TableNumber)
}

// IsActiveAt reports whether the order holds the table with the given label.
func (o *Order) IsActiveAt(label string) bool {
	return o.Type == TypeDineIn && o.Status != StatusPaid && !IsReservedLabel(label) && o.TableNumber == label
}

func (o *Order) Party() int {
	if o.NumberOfPeople <= 0 {
		return 1
	}
	return o.NumberOfPeople
}

func (o *Order) Clone() Order {
	c := *o
	if o.Items != nil {
		c.Items = make([]OrderItem, len(o.Items))
		copy(c.Items, o.Items)
	}
	return c
}

// Apply returns a copy of the order with the patch applied. The version is
// not touched.
func (o *Order) Apply(p OrderPatch) Order {
	c := o.Clone()
	if p.Status != nil {
		c.Status = *p.Status
	}
	if p.TableNumber != nil {
		c.TableNumber = *p.TableNumber
	}
	if p.NumberOfPeople != nil {
		c.NumberOfPeople = *p.NumberOfPeople
	}
	if p.MainsStarted != nil {
		c.MainsStarted = *p.MainsStarted
	}
	if p.ValidatedBy != nil {
		c.ValidatedBy = *p.ValidatedBy
	}
	return c
}

func (o *Order) CheckInvariants() error {
	switch o.Type {
	case TypeTakeaway:
		if o.TableNumber != TakeawayTable {
			return ErrInvalidOrder
		}
	case TypeDineIn:
		if o.TableNumber == TakeawayTable {
			return ErrInvalidOrder
		}
	default:
		return ErrInvalidOrder
	}
	if o.MainsStarted && o.Status == StatusPending {
		return ErrInvalidOrder
	}
	return nil
}

func (t *Table) Validate() error {
	if IsReservedLabel(t.Label) {
		return ErrReservedLabel
	}
	if t.Capacity <= 0 {
		return ErrInvalidTable
	}
	if t.Shape != ShapeRect && t.Shape != ShapeRound {
		return ErrInvalidTable
	}
	return nil
}

func StatusPtr(s OrderStatus) *OrderStatus { return &s }

func StringPtr(s string) *string { return &s }

func IntPtr(i int) *int { return &i }

func BoolPtr(b bool) *bool { return &b }

// Actor is whoever triggers a mutation.
type Actor struct {
	ID   string
	Role Role
}

type NewOrderItem struct {
	MenuItemID string `json:"menu_item_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"min=0"`
	Notes      string `json:"notes,omitempty" validate:"max=500"`
}

type NewOrder struct {
	Items          []NewOrderItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod  PaymentMethod  `json:"payment_method,omitempty"`
	Type           OrderType      `json:"type" validate:"required,oneof=DINE_IN TAKEAWAY"`
	TableNumber    string         `json:"table_number,omitempty"`
	NumberOfPeople int            `json:"number_of_people,omitempty" validate:"min=0,max=50"`
}
