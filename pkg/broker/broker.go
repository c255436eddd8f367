package broker

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	bidSubjectPrefix   = "auction.bids."
	orderSubjectPrefix = "auction.orders."
)

// BidEvent is published on every accepted bid so downstream consumers
// (live price tickers, archival) can follow the auction without polling.
type BidEvent struct {
	ItemId        string    `json:"itemId"`
	BidId         string    `json:"bidId"`
	BidderId      string    `json:"bidderId"`
	Amount        int64     `json:"amount"`
	PreviousPrice int64     `json:"previousPrice"`
	EndsAt        time.Time `json:"endsAt"`
	Timestamp     time.Time `json:"timestamp"`
}

// OrderEvent is published when an item settles into an order,
// either at the end sweep or through buy-now.
type OrderEvent struct {
	ItemId      string    `json:"itemId"`
	OrderNumber string    `json:"orderNumber"`
	BuyerId     string    `json:"buyerId"`
	FinalPrice  int64     `json:"finalPrice"`
	TotalAmount int64     `json:"totalAmount"`
	Timestamp   time.Time `json:"timestamp"`
}

type Publisher struct {
	nc *nats.Conn
}

func Connect(url string) (*Publisher, func(), error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, nil, fmt.Errorf("can't connect to nats at %s: %w", url, err)
	}

	return &Publisher{nc: nc}, nc.Close, nil
}

func (p *Publisher) PublishBid(event BidEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("can't marshal bid event: %w", err)
	}

	return p.nc.Publish(bidSubjectPrefix+event.ItemId, data)
}

func (p *Publisher) PublishOrder(event OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("can't marshal order event: %w", err)
	}

	return p.nc.Publish(orderSubjectPrefix+event.ItemId, data)
}
