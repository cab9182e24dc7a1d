package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"gitlab.com/sprinkles/storefront/internal/repository"
)

// Role is the permission class of an account. The numeric values are the
// ones stored in users.role.
type Role int16

const (
	RoleCustomer Role = 1
	RoleDelivery Role = 2
	RoleAdmin    Role = 3
)

func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleDelivery || r == RoleAdmin
}

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "Customer"
	case RoleDelivery:
		return "Delivery"
	case RoleAdmin:
		return "Admin"
	default:
		return "Unknown(" + strconv.Itoa(int(r)) + ")"
	}
}

// ParseRole accepts the numeric form ("1") as well as the role name
// ("customer"), case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "customer":
		return RoleCustomer, nil
	case "2", "delivery":
		return RoleDelivery, nil
	case "3", "admin":
		return RoleAdmin, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

type DispatchStatus string

const (
	StatusPlaced     DispatchStatus = "Not Picked Up"
	StatusDispatched DispatchStatus = "Dispatched"
	StatusDelivered  DispatchStatus = "Delivered"
)

const (
	EventOrderPlaced    = "order.placed"
	EventOrderClaimed   = "order.claimed"
	EventOrderDelivered = "order.delivered"
)

// Input limits follow the column types in db/migrate.go.
const (
	maxETALength         = 20
	maxTextLength        = 100
	maxDescriptionLength = 500
	// bcrypt only accepts passwords up to 72 bytes.
	maxPasswordBytes = 72
)

var (
	// NUMERIC(10,2)
	maxPrice = decimal.New(1, 8)
	// NUMERIC(12,2)
	maxTotal = decimal.New(1, 10)
)

func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) > limit
}

type Account struct {
	ID      int64
	Name    string
	Address string
	Email   string
	Role    Role
}

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
}

type Order struct {
	ID             int64
	ProductName    string
	Quantity       int32
	CustomerID     int64
	CustomerName   string
	Address        string
	UnitPrice      decimal.Decimal
	Total          decimal.Decimal
	DeliveryID     *int64
	DeliveryName   string
	DispatchStatus DispatchStatus
	Delivered      bool
	ETA            string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type HistoryEntry struct {
	Status    DispatchStatus
	ActorID   *int64
	ChangedAt time.Time
}

type SignupForm struct {
	Name      string
	Address   string
	Email     string
	Password  string
	Password2 string
	Type      string
}

type ProductForm struct {
	Name        string
	Description string
	Price       string
	Category    string
}

// AdminSeed describes the administrator account created on startup.
type AdminSeed struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// Dashboard is what the role router hands to the view layer. Only the
// fields relevant to Role are populated.
type Dashboard struct {
	Role     Role
	Products []Product
	Eligible []Order
	Yours    []Order
}

type CustomerOrders struct {
	Current []Order
	Past    []Order
}

func toAccount(a *repository.Account) Account {
	return Account{
		ID:      a.ID,
		Name:    a.Name,
		Address: a.Address,
		Email:   a.Email,
		Role:    Role(a.Role),
	}
}

func toProduct(p *repository.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
	}
}

func toOrder(o *repository.Order) Order {
	order := Order{
		ID:             o.ID,
		ProductName:    o.ProductName,
		Quantity:       o.Quantity,
		CustomerID:     o.CustomerID,
		CustomerName:   o.CustomerName,
		Address:        o.Address,
		UnitPrice:      o.UnitPrice,
		Total:          o.Total,
		DeliveryID:     o.DeliveryID,
		DispatchStatus: DispatchStatus(o.DispatchStatus),
		Delivered:      o.Delivered,
		ETA:            o.ETA,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.DeliveryName != nil {
		order.DeliveryName = *o.DeliveryName
	}
	return order
}

func toOrders(orders []*repository.Order) []Order {
	result := make([]Order, len(orders))
	for i, o := range orders {
		result[i] = toOrder(o)
	}
	return result
}
