package entity

// controller model for the admin dashboard
type DashboardCounts struct {
	Users             int   `json:"users"`
	Items             int   `json:"items"`
	LiveItems         int   `json:"liveItems"`
	PendingReview     int   `json:"pendingReview"`
	Orders            int   `json:"orders"`
	OrdersTotalAmount int64 `json:"ordersTotalAmount"`
}
