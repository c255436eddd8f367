package entity

import (
	"time"

	"github.com/google/uuid"
)

// db model
type Item struct {
	Id                uuid.UUID `json:"id" db:"id"`
	SellerId          uuid.UUID `json:"sellerId" db:"seller_id"`
	Title             string    `json:"title" db:"title"`
	Description       string    `json:"description" db:"description"`
	Species           string    `json:"species" db:"species"`
	StartPrice        int64     `json:"startPrice" db:"start_price"`
	CurrentPrice      int64     `json:"currentPrice" db:"current_price"`
	BuyNowPrice       *int64    `json:"buyNowPrice" db:"buy_now_price"`
	ReservePrice      *int64    `json:"reservePrice" db:"reserve_price"`
	BidStep           int64     `json:"bidStep" db:"bid_step"`
	StartsAt          time.Time `json:"startsAt" db:"starts_at"`
	EndsAt            time.Time `json:"endsAt" db:"ends_at"`
	AutoExtendMinutes int       `json:"autoExtendMinutes" db:"auto_extend_minutes"`
	Status            string    `json:"status" db:"status"`
	CreatedAt         string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateItemInput struct {
	SellerId          string // given
	Title             string // given
	Description       string // given
	Species           string // given
	StartPrice        int64  // given
	BuyNowPrice       *int64 // given, optional
	ReservePrice      *int64 // given, optional, hidden from bidders
	BidStep           int64  // given
	StartsAt          time.Time
	EndsAt            time.Time
	AutoExtendMinutes int
	Status            string // should be set: "PENDING_REVIEW"
	// Id UUID sets automatically
	// CurrentPrice stays 0 until the auction goes live
	// CreatedAt sets automatically
}

// repo filter for the public catalogue
type ItemFilter struct {
	Status   string
	Species  string
	MinPrice *int64
	MaxPrice *int64
	Sort     string // newest | price_asc | price_desc | ending_soon
}

// controller model; reserve price is never exposed
type ItemOutputModel struct {
	Id                string `json:"id"`
	SellerId          string `json:"sellerId"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Species           string `json:"species"`
	StartPrice        int64  `json:"startPrice"`
	CurrentPrice      int64  `json:"currentPrice"`
	BuyNowPrice       *int64 `json:"buyNowPrice,omitempty"`
	BidStep           int64  `json:"bidStep"`
	StartsAt          string `json:"startsAt"`
	EndsAt            string `json:"endsAt"`
	AutoExtendMinutes int    `json:"autoExtendMinutes"`
	Status            string `json:"status"`
	CreatedAt         string `json:"createdAt"`
}
