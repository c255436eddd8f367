package service

import (
	"math/rand"
	"strconv"
	"time"

	"bonsai-auction-api/internal/common"
	"bonsai-auction-api/internal/entity"
)

// Monetary values are whole won, so the commission math stays in integers.
// Percentages round half-up.

func BuyerPremium(finalPrice int64) int64 {
	return (finalPrice*common.BuyerPremiumPercent + 50) / 100
}

func SellerFee(finalPrice int64) int64 {
	return (finalPrice*common.SellerFeePercent + 50) / 100
}

func TotalAmount(finalPrice int64) int64 {
	return finalPrice + BuyerPremium(finalPrice)
}

// MinimumBid is the lowest acceptable next bid. Items that never went live
// have a zero current price, so the start price stands in.
func MinimumBid(item *entity.Item) int64 {
	currentPrice := item.CurrentPrice
	if currentPrice == 0 {
		currentPrice = item.StartPrice
	}

	return currentPrice + item.BidStep
}

// NewOrderNumber builds a human-referenceable order number:
// ORD-<unix millis>-<9 base36 chars>. Uniqueness is backed by the
// unique column constraint, the random tail only avoids collisions
// within the same millisecond.
func NewOrderNumber(now time.Time) string {
	tail := strconv.FormatInt(rand.Int63(), 36)
	for len(tail) < 9 {
		tail = "0" + tail
	}

	return "ORD-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + tail[:9]
}

func newOrderInput(item *entity.Item, buyerId string, finalPrice int64, now time.Time) *entity.CreateOrderInput {
	return &entity.CreateOrderInput{
		OrderNumber:  NewOrderNumber(now),
		ItemId:       item.Id.String(),
		BuyerId:      buyerId,
		FinalPrice:   finalPrice,
		BuyerPremium: BuyerPremium(finalPrice),
		SellerFee:    SellerFee(finalPrice),
		TotalAmount:  TotalAmount(finalPrice),
	}
}
