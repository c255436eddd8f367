package common

// Item statuses
const (
	Draft         = "DRAFT"
	PendingReview = "PENDING_REVIEW"
	Scheduled     = "SCHEDULED"
	Live          = "LIVE"
	Ended         = "ENDED"
	Canceled      = "CANCELED"
)

// Order payment statuses
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentRefunded = "REFUNDED"
	PaymentCanceled = "CANCELED"
)

// Notification types
const (
	NotificationAuctionStart = "AUCTION_START"
	NotificationAuctionWon   = "AUCTION_WON"
	NotificationAuctionLost  = "AUCTION_LOST"
	NotificationOutbid       = "OUTBID"
	NotificationAdminMessage = "ADMIN_MESSAGE"
	NotificationPayment      = "PAYMENT"
)

// Reasons attached to AUCTION_LOST notifications
const (
	ReasonReserveNotMet = "RESERVE_NOT_MET"
	ReasonNoBids        = "NO_BIDS"
)

// User roles
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Audit log actions
const (
	ActionItemApproved = "ITEM_APPROVED"
	ActionItemRejected = "ITEM_REJECTED"
)

// Platform commission rates in percent of the final hammer price.
// Fixed platform-wide, not configurable per item.
const (
	BuyerPremiumPercent = 7
	SellerFeePercent    = 10
)
