package entity

import (
	"github.com/google/uuid"
)

// db model; "order" is a reserved word, the table is named app_order
type Order struct {
	Id            uuid.UUID `json:"id" db:"id"`
	OrderNumber   string    `json:"orderNumber" db:"order_number"`
	ItemId        uuid.UUID `json:"itemId" db:"item_id"`
	BuyerId       uuid.UUID `json:"buyerId" db:"buyer_id"`
	FinalPrice    int64     `json:"finalPrice" db:"final_price"`
	BuyerPremium  int64     `json:"buyerPremium" db:"buyer_premium"`
	SellerFee     int64     `json:"sellerFee" db:"seller_fee"`
	TotalAmount   int64     `json:"totalAmount" db:"total_amount"`
	PaymentStatus string    `json:"paymentStatus" db:"payment_status"`
	PaidAt        *string   `json:"paidAt" db:"paid_at"`
	CanceledAt    *string   `json:"canceledAt" db:"canceled_at"`
	CreatedAt     string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateOrderInput struct {
	OrderNumber  string // given, unique, human-referenceable
	ItemId       string // given
	BuyerId      string // given
	FinalPrice   int64  // given
	BuyerPremium int64  // given
	SellerFee    int64  // given
	TotalAmount  int64  // given
	// PaymentStatus should be set: "PENDING"
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// controller model
type OrderOutputModel struct {
	Id            string  `json:"id"`
	OrderNumber   string  `json:"orderNumber"`
	ItemId        string  `json:"itemId"`
	BuyerId       string  `json:"buyerId"`
	FinalPrice    int64   `json:"finalPrice"`
	BuyerPremium  int64   `json:"buyerPremium"`
	SellerFee     int64   `json:"sellerFee"`
	TotalAmount   int64   `json:"totalAmount"`
	PaymentStatus string  `json:"paymentStatus"`
	PaidAt        *string `json:"paidAt,omitempty"`
	CanceledAt    *string `json:"canceledAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// engine-internal result of a buy-now purchase
type BuyNowResult struct {
	Bid   *Bid
	Order *Order
}

// controller model
type BuyNowOutputModel struct {
	Bid   BidOutputModel   `json:"bid"`
	Order OrderOutputModel `json:"order"`
}
