package service

import (
	"time"

	"bonsai-auction-api/internal/entity"
)

func mapItem(item *entity.Item) *entity.ItemOutputModel {
	return &entity.ItemOutputModel{
		Id:                item.Id.String(),
		SellerId:          item.SellerId.String(),
		Title:             item.Title,
		Description:       item.Description,
		Species:           item.Species,
		StartPrice:        item.StartPrice,
		CurrentPrice:      item.CurrentPrice,
		BuyNowPrice:       item.BuyNowPrice,
		BidStep:           item.BidStep,
		StartsAt:          item.StartsAt.Format(time.RFC3339),
		EndsAt:            item.EndsAt.Format(time.RFC3339),
		AutoExtendMinutes: item.AutoExtendMinutes,
		Status:            item.Status,
		CreatedAt:         item.CreatedAt,
	}
}

func mapItems(items []entity.Item) []entity.ItemOutputModel {
	models := make([]entity.ItemOutputModel, 0, len(items))
	for i := range items {
		models = append(models, *mapItem(&items[i]))
	}

	return models
}

func mapBid(bid *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:        bid.Id.String(),
		ItemId:    bid.ItemId.String(),
		BidderId:  bid.BidderId.String(),
		Amount:    bid.Amount,
		IsProxy:   bid.IsProxy,
		IsWinning: bid.IsWinning,
		CreatedAt: bid.CreatedAt,
	}
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	models := make([]entity.BidOutputModel, 0, len(bids))
	for i := range bids {
		models = append(models, *mapBid(&bids[i]))
	}

	return models
}

func mapPlaceBid(result *entity.PlaceBidResult) *entity.PlaceBidOutputModel {
	return &entity.PlaceBidOutputModel{
		Bid:  *mapBid(result.Bid),
		Item: *mapItem(result.Item),
	}
}

func mapBuyNow(result *entity.BuyNowResult) *entity.BuyNowOutputModel {
	return &entity.BuyNowOutputModel{
		Bid:   *mapBid(result.Bid),
		Order: *mapOrder(result.Order),
	}
}

func mapOrder(order *entity.Order) *entity.OrderOutputModel {
	return &entity.OrderOutputModel{
		Id:            order.Id.String(),
		OrderNumber:   order.OrderNumber,
		ItemId:        order.ItemId.String(),
		BuyerId:       order.BuyerId.String(),
		FinalPrice:    order.FinalPrice,
		BuyerPremium:  order.BuyerPremium,
		SellerFee:     order.SellerFee,
		TotalAmount:   order.TotalAmount,
		PaymentStatus: order.PaymentStatus,
		PaidAt:        order.PaidAt,
		CanceledAt:    order.CanceledAt,
		CreatedAt:     order.CreatedAt,
	}
}

func mapOrders(orders []entity.Order) []entity.OrderOutputModel {
	models := make([]entity.OrderOutputModel, 0, len(orders))
	for i := range orders {
		models = append(models, *mapOrder(&orders[i]))
	}

	return models
}

func mapNotifications(notifications []entity.Notification) []entity.NotificationOutputModel {
	models := make([]entity.NotificationOutputModel, 0, len(notifications))
	for _, n := range notifications {
		models = append(models, entity.NotificationOutputModel{
			Id:        n.Id.String(),
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Data:      n.Data,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	return models
}
