package service

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"time"

	"bonsai-auction-api/internal/common"
	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo/repo_errors"
	"bonsai-auction-api/pkg/broker"

	"github.com/google/uuid"
)

// In-memory stand-ins for the pgdb repositories. Transactions collapse to a
// direct call: WithTx runs the body with a nil tx, which is all the service
// layer ever passes through.

type fakeAuctionRepo struct {
	items  map[string]*entity.Item
	bids   []*entity.Bid
	orders []*entity.Order
}

func newFakeAuctionRepo(items ...*entity.Item) *fakeAuctionRepo {
	r := &fakeAuctionRepo{items: make(map[string]*entity.Item)}
	for _, item := range items {
		r.items[item.Id.String()] = item
	}

	return r
}

func (r *fakeAuctionRepo) WithTx(fn func(tx *sql.Tx) error) error {
	return fn(nil)
}

func (r *fakeAuctionRepo) ListStartableItemIds(_ context.Context, now time.Time) ([]string, error) {
	return r.listIds(common.Scheduled, func(item *entity.Item) bool {
		return !item.StartsAt.After(now)
	}), nil
}

func (r *fakeAuctionRepo) ListExpiredItemIds(_ context.Context, now time.Time) ([]string, error) {
	return r.listIds(common.Live, func(item *entity.Item) bool {
		return !item.EndsAt.After(now)
	}), nil
}

func (r *fakeAuctionRepo) listIds(status string, matches func(*entity.Item) bool) []string {
	ids := make([]string, 0)
	for id, item := range r.items {
		if item.Status == status && matches(item) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return ids
}

func (r *fakeAuctionRepo) GetItemForUpdate(_ context.Context, _ *sql.Tx, itemId string) (*entity.Item, error) {
	item, ok := r.items[itemId]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	snapshot := *item

	return &snapshot, nil
}

func (r *fakeAuctionRepo) GetHighestBid(_ context.Context, _ *sql.Tx, itemId string) (*entity.Bid, error) {
	var highest *entity.Bid
	for _, bid := range r.bids {
		if bid.ItemId.String() != itemId {
			continue
		}
		if highest == nil || bid.Amount > highest.Amount {
			highest = bid
		}
	}
	if highest == nil {
		return nil, nil
	}

	snapshot := *highest

	return &snapshot, nil
}

func (r *fakeAuctionRepo) StartItem(_ context.Context, _ *sql.Tx, itemId string) error {
	item, ok := r.items[itemId]
	if !ok || item.Status != common.Scheduled {
		return repo_errors.ErrNotFound
	}

	item.Status = common.Live
	item.CurrentPrice = item.StartPrice

	return nil
}

func (r *fakeAuctionRepo) EndItem(_ context.Context, _ *sql.Tx, itemId string, finalPrice *int64) error {
	item, ok := r.items[itemId]
	if !ok || item.Status != common.Live {
		return repo_errors.ErrNotFound
	}

	item.Status = common.Ended
	if finalPrice != nil {
		item.CurrentPrice = *finalPrice
	}

	return nil
}

func (r *fakeAuctionRepo) UpdateItemForBid(_ context.Context, _ *sql.Tx, itemId string, price int64, endsAt time.Time) error {
	item, ok := r.items[itemId]
	if !ok {
		return repo_errors.ErrNotFound
	}

	item.CurrentPrice = price
	item.EndsAt = endsAt

	return nil
}

func (r *fakeAuctionRepo) InsertBid(_ context.Context, _ *sql.Tx, input *entity.CreateBidInput) (*entity.Bid, error) {
	itemUuid, err := uuid.Parse(input.ItemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	bidderUuid, err := uuid.Parse(input.BidderId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	bid := &entity.Bid{
		Id:             uuid.New(),
		ItemId:         itemUuid,
		BidderId:       bidderUuid,
		Amount:         input.Amount,
		IsProxy:        input.IsProxy,
		MaxProxyAmount: input.MaxProxyAmount,
		IsWinning:      input.IsWinning,
		CreatedAt:      time.Now().Format(time.RFC3339),
	}
	r.bids = append(r.bids, bid)

	snapshot := *bid

	return &snapshot, nil
}

func (r *fakeAuctionRepo) DemoteWinningBids(_ context.Context, _ *sql.Tx, itemId string, keepBidId uuid.UUID) ([]uuid.UUID, error) {
	demoted := make([]uuid.UUID, 0)
	for _, bid := range r.bids {
		if bid.ItemId.String() != itemId || !bid.IsWinning || bid.Id == keepBidId {
			continue
		}

		bid.IsWinning = false
		demoted = append(demoted, bid.BidderId)
	}

	return demoted, nil
}

func (r *fakeAuctionRepo) MarkBidWinning(_ context.Context, _ *sql.Tx, bidId uuid.UUID) error {
	for _, bid := range r.bids {
		if bid.Id == bidId {
			bid.IsWinning = true
			return nil
		}
	}

	return repo_errors.ErrNotFound
}

func (r *fakeAuctionRepo) CreateOrder(_ context.Context, _ *sql.Tx, input *entity.CreateOrderInput) (*entity.Order, error) {
	itemUuid, err := uuid.Parse(input.ItemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}
	buyerUuid, err := uuid.Parse(input.BuyerId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	order := &entity.Order{
		Id:            uuid.New(),
		OrderNumber:   input.OrderNumber,
		ItemId:        itemUuid,
		BuyerId:       buyerUuid,
		FinalPrice:    input.FinalPrice,
		BuyerPremium:  input.BuyerPremium,
		SellerFee:     input.SellerFee,
		TotalAmount:   input.TotalAmount,
		PaymentStatus: common.PaymentPending,
		CreatedAt:     time.Now().Format(time.RFC3339),
	}
	r.orders = append(r.orders, order)

	snapshot := *order

	return &snapshot, nil
}

func (r *fakeAuctionRepo) winningBids(itemId string) []*entity.Bid {
	winning := make([]*entity.Bid, 0)
	for _, bid := range r.bids {
		if bid.ItemId.String() == itemId && bid.IsWinning {
			winning = append(winning, bid)
		}
	}

	return winning
}

type fakeWatchlistRepo struct {
	watchers map[string][]string // itemId -> userIds
}

func newFakeWatchlistRepo() *fakeWatchlistRepo {
	return &fakeWatchlistRepo{watchers: make(map[string][]string)}
}

func (r *fakeWatchlistRepo) AddToWatchlist(_ context.Context, userId, itemId string) error {
	for _, w := range r.watchers[itemId] {
		if w == userId {
			return repo_errors.ErrAlreadyExists
		}
	}
	r.watchers[itemId] = append(r.watchers[itemId], userId)

	return nil
}

func (r *fakeWatchlistRepo) RemoveFromWatchlist(_ context.Context, userId, itemId string) error {
	for i, w := range r.watchers[itemId] {
		if w == userId {
			r.watchers[itemId] = append(r.watchers[itemId][:i], r.watchers[itemId][i+1:]...)
			return nil
		}
	}

	return repo_errors.ErrNotFound
}

func (r *fakeWatchlistRepo) GetUserWatchlist(_ context.Context, _ string, _ *entity.PaginationInput) ([]entity.Item, error) {
	return nil, nil
}

func (r *fakeWatchlistRepo) GetWatcherIds(_ context.Context, itemId string) ([]string, error) {
	return r.watchers[itemId], nil
}

type fakeNotificationRepo struct {
	created []entity.CreateNotificationInput
}

func (r *fakeNotificationRepo) CreateNotification(_ context.Context, input *entity.CreateNotificationInput) error {
	r.created = append(r.created, *input)

	return nil
}

func (r *fakeNotificationRepo) GetUserNotifications(_ context.Context, _ string, _ *entity.PaginationInput) ([]entity.Notification, error) {
	return nil, nil
}

func (r *fakeNotificationRepo) MarkNotificationRead(_ context.Context, _ string) error {
	return nil
}

func (r *fakeNotificationRepo) ofType(notificationType string) []entity.CreateNotificationInput {
	matched := make([]entity.CreateNotificationInput, 0)
	for _, n := range r.created {
		if n.Type == notificationType {
			matched = append(matched, n)
		}
	}

	return matched
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, user := range users {
		r.users[user.Id.String()] = user
	}

	return r
}

func (r *fakeUserRepo) GetUserById(_ context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) CountUsers(_ context.Context) (int, error) {
	return len(r.users), nil
}

type fakeItemRepo struct {
	items   map[string]*entity.Item
	nextId  uuid.UUID
	created []entity.CreateItemInput
}

func newFakeItemRepo(items ...*entity.Item) *fakeItemRepo {
	r := &fakeItemRepo{items: make(map[string]*entity.Item), nextId: uuid.New()}
	for _, item := range items {
		r.items[item.Id.String()] = item
	}

	return r
}

func (r *fakeItemRepo) CreateItem(_ context.Context, input *entity.CreateItemInput) (uuid.UUID, error) {
	sellerUuid, err := uuid.Parse(input.SellerId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	r.created = append(r.created, *input)
	item := &entity.Item{
		Id:                r.nextId,
		SellerId:          sellerUuid,
		Title:             input.Title,
		Description:       input.Description,
		Species:           input.Species,
		StartPrice:        input.StartPrice,
		BuyNowPrice:       input.BuyNowPrice,
		ReservePrice:      input.ReservePrice,
		BidStep:           input.BidStep,
		StartsAt:          input.StartsAt,
		EndsAt:            input.EndsAt,
		AutoExtendMinutes: input.AutoExtendMinutes,
		Status:            input.Status,
		CreatedAt:         time.Now().Format(time.RFC3339),
	}
	r.items[item.Id.String()] = item

	return item.Id, nil
}

func (r *fakeItemRepo) GetItemById(_ context.Context, id string) (*entity.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	snapshot := *item

	return &snapshot, nil
}

func (r *fakeItemRepo) GetItems(_ context.Context, _ *entity.ItemFilter, _ *entity.PaginationInput) ([]entity.Item, error) {
	items := make([]entity.Item, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, *item)
	}

	return items, nil
}

func (r *fakeItemRepo) UpdateItemStatusById(_ context.Context, id string, newStatus string) error {
	item, ok := r.items[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	item.Status = newStatus

	return nil
}

func (r *fakeItemRepo) CountItems(_ context.Context) (int, error) {
	return len(r.items), nil
}

func (r *fakeItemRepo) CountItemsByStatus(_ context.Context, status string) (int, error) {
	count := 0
	for _, item := range r.items {
		if item.Status == status {
			count++
		}
	}

	return count, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order // keyed by order number
}

func newFakeOrderRepo(orders ...*entity.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*entity.Order)}
	for _, order := range orders {
		r.orders[order.OrderNumber] = order
	}

	return r
}

func (r *fakeOrderRepo) GetOrderByNumber(_ context.Context, orderNumber string) (*entity.Order, error) {
	order, ok := r.orders[orderNumber]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	snapshot := *order

	return &snapshot, nil
}

func (r *fakeOrderRepo) GetUserOrders(_ context.Context, buyerId string, _ *entity.PaginationInput) ([]entity.Order, error) {
	orders := make([]entity.Order, 0)
	for _, order := range r.orders {
		if order.BuyerId.String() == buyerId {
			orders = append(orders, *order)
		}
	}

	return orders, nil
}

func (r *fakeOrderRepo) UpdatePaymentStatus(_ context.Context, orderNumber string, fromStatus, toStatus string, at time.Time) error {
	order, ok := r.orders[orderNumber]
	if !ok || order.PaymentStatus != fromStatus {
		return repo_errors.ErrNotFound
	}

	order.PaymentStatus = toStatus
	stamp := at.Format(time.RFC3339)
	switch toStatus {
	case common.PaymentPaid:
		order.PaidAt = &stamp
	case common.PaymentCanceled:
		order.CanceledAt = &stamp
	}

	return nil
}

func (r *fakeOrderRepo) CountOrders(_ context.Context) (int, error) {
	return len(r.orders), nil
}

func (r *fakeOrderRepo) SumOrderTotals(_ context.Context) (int64, error) {
	var total int64
	for _, order := range r.orders {
		total += order.TotalAmount
	}

	return total, nil
}

type fakeAuditLogRepo struct {
	records []entity.CreateAuditLogInput
}

func (r *fakeAuditLogRepo) RecordAuditLog(_ context.Context, input *entity.CreateAuditLogInput) error {
	r.records = append(r.records, *input)

	return nil
}

type fakePublisher struct {
	bids   []string
	orders []string
}

func (p *fakePublisher) PublishBid(event broker.BidEvent) error {
	p.bids = append(p.bids, event.ItemId+"@"+strconv.FormatInt(event.Amount, 10))

	return nil
}

func (p *fakePublisher) PublishOrder(event broker.OrderEvent) error {
	p.orders = append(p.orders, event.OrderNumber)

	return nil
}
