package entity

import (
	"github.com/google/uuid"
)

// db model
type Bid struct {
	Id             uuid.UUID `json:"id" db:"id"`
	ItemId         uuid.UUID `json:"itemId" db:"item_id"`
	BidderId       uuid.UUID `json:"bidderId" db:"bidder_id"`
	Amount         int64     `json:"amount" db:"amount"`
	IsProxy        bool      `json:"isProxy" db:"is_proxy"`
	MaxProxyAmount *int64    `json:"maxProxyAmount" db:"max_proxy_amount"`
	IsWinning      bool      `json:"isWinning" db:"is_winning"`
	CreatedAt      string    `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateBidInput struct {
	ItemId         string // given
	BidderId       string // given
	Amount         int64  // given
	IsProxy        bool   // given
	MaxProxyAmount *int64 // given, required when IsProxy
	IsWinning      bool   // should be set: true, the new bid is the highest
	// Id UUID sets automatically
	// CreatedAt sets automatically
}

// controller model
type BidOutputModel struct {
	Id        string `json:"id"`
	ItemId    string `json:"itemId"`
	BidderId  string `json:"bidderId"`
	Amount    int64  `json:"amount"`
	IsProxy   bool   `json:"isProxy"`
	IsWinning bool   `json:"isWinning"`
	CreatedAt string `json:"createdAt"`
}

// engine-internal result of a successfully placed bid: the created bid plus
// the item reflecting the new price and the possibly extended deadline
type PlaceBidResult struct {
	Bid  *Bid
	Item *Item
}

// controller model; built from PlaceBidResult so the item side never
// carries the reserve price
type PlaceBidOutputModel struct {
	Bid  BidOutputModel  `json:"bid"`
	Item ItemOutputModel `json:"item"`
}
