package service

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound         = errors.New("item not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrAuctionNotLive     = errors.New("item is not in a live auction")
	ErrAuctionExpired     = errors.New("auction deadline has passed")
	ErrBuyNowNotAvailable = errors.New("item has no buy-now price")
	ErrOwnItemBid         = errors.New("seller can't bid on or buy their own item")

	ErrInvalidBidAmount     = errors.New("bid amount must be positive")
	ErrProxyCeilingRequired = errors.New("proxy bid requires a maximum amount")
	ErrProxyCeilingTooLow   = errors.New("proxy maximum must not be below the bid amount")

	ErrInvalidPrice         = errors.New("prices must be positive")
	ErrInvalidAuctionWindow = errors.New("auction must end after it starts")
	ErrInvalidAutoExtend    = errors.New("auto-extend window must be between 0 and 10 minutes")

	ErrNotAdmin             = errors.New("actor doesn't have admin rights")
	ErrItemNotPendingReview = errors.New("only items pending review can be approved or rejected")
	ErrRejectReasonRequired = errors.New("rejection requires a reason")

	ErrAlreadyInWatchlist = errors.New("item is already in the watchlist")
	ErrNotInWatchlist     = errors.New("item is not in the watchlist")

	ErrOrderNotPending = errors.New("order already left the pending state")
)

// BidTooLowError carries the computed minimum so the HTTP layer can echo it
// back to the bidder.
type BidTooLowError struct {
	MinimumBid int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid is below the minimum of %d", e.MinimumBid)
}
