package commerce

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OrderStatus tracks an order through fulfilment
type OrderStatus = string

const (
	// OrderPending is the state right after checkout
	OrderPending OrderStatus = "pending"
	// OrderPaid means the payment provider confirmed the charge
	OrderPaid OrderStatus = "paid"
	// OrderShipped means the order left the warehouse
	OrderShipped OrderStatus = "shipped"
	// OrderDelivered is the happy terminal state
	OrderDelivered OrderStatus = "delivered"
	// OrderCancelled is the unhappy terminal state
	OrderCancelled OrderStatus = "cancelled"
)

// PaymentProvider identifies the processor that settled an order
type PaymentProvider = string

const (
	ProviderMpesa  PaymentProvider = "mpesa"
	ProviderCard   PaymentProvider = "card"
	ProviderPaypal PaymentProvider = "paypal"
)

// RestaurantKind partitions the catalog per storefront vendor
type RestaurantKind = string

const (
	RestaurantFastFood RestaurantKind = "fast_food"
	RestaurantBakery   RestaurantKind = "bakery"
	RestaurantGrill    RestaurantKind = "grill"
)

// User is the credential record. PasswordHash is empty for accounts
// provisioned through an external identity provider; those can never complete
// a local login.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	AvatarURL     string     `bun:"avatar_url" json:"avatar_url,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Orders        []*Order   `bun:"rel:has-many,join:id=user_id" json:"orders,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// HasLocalPassword reports whether this account can complete a local login.
func (u *User) HasLocalPassword() bool {
	return u != nil && u.PasswordHash != ""
}

// Category groups products
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"category_name,notnull,unique" json:"category_name,omitempty"`
	Description   string     `bun:"category_description" json:"category_description,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Product is a catalog entry. Prices are integer cents. Quantity doubles as
// the inventory level; LowLevelAlert is the restock threshold.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:prd"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"product_name,notnull" json:"product_name,omitempty"`
	Description   string     `bun:"product_description" json:"product_description,omitempty"`
	SellingPrice  int64      `bun:"selling_price,notnull" json:"selling_price,omitempty"`
	BuyingPrice   int64      `bun:"buying_price" json:"buying_price,omitempty"`
	Quantity      int        `bun:"quantity" json:"quantity"`
	LowLevelAlert int        `bun:"low_level_alert" json:"low_level_alert,omitempty"`
	Restaurant    RestaurantKind `bun:"restaurant_kind" json:"restaurant_kind,omitempty"`
	Images        []string   `bun:"images" json:"images,omitempty"`
	CategoryID    uuid.UUID  `bun:"category_id,nullzero,type:uuid" json:"category_id,omitempty"`
	Category      *Category  `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// Order is the checkout aggregate. Shipping fields ride on the order row; the
// previous implementation kept a separate table it only ever filled with
// placeholder values.
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:ord"`
	ID            uuid.UUID       `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	UserID        uuid.UUID       `bun:"user_id,notnull,type:uuid" json:"user_id,omitempty"`
	User          *User           `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Total         int64           `bun:"total,notnull" json:"total"`
	Status        OrderStatus     `bun:"status,notnull,default:'pending'" json:"status,omitempty"`
	Provider      PaymentProvider `bun:"payment_provider" json:"payment_provider,omitempty"`
	ShipCounty    string          `bun:"ship_county" json:"ship_county,omitempty"`
	ShipTown      string          `bun:"ship_town" json:"ship_town,omitempty"`
	ShipStreet    string          `bun:"ship_street" json:"ship_street,omitempty"`
	ShipLocation  string          `bun:"ship_location_desc" json:"ship_location_desc,omitempty"`
	Items         []*OrderItem    `bun:"rel:has-many,join:id=order_id" json:"items,omitempty"`
	CreatedAt     *time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// OrderItem is a single product line on an order. Price is the unit price at
// purchase time so later catalog edits do not rewrite history.
type OrderItem struct {
	bun.BaseModel `bun:"table:order_items,alias:itm"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	OrderID       uuid.UUID `bun:"order_id,notnull,type:uuid" json:"order_id,omitempty"`
	ProductID     uuid.UUID `bun:"product_id,notnull,type:uuid" json:"product_id,omitempty"`
	Product       *Product  `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
	Quantity      int       `bun:"quantity,notnull" json:"quantity"`
	Price         int64     `bun:"price,notnull" json:"price"`
}

// ValidOrderStatus reports whether s is part of the fulfilment vocabulary.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}
