package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bonsai-auction-api/internal/common"
	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo"
	"bonsai-auction-api/internal/repo/repo_errors"
)

type OrderService struct {
	orderRepo        repo.Order
	notificationRepo repo.Notification

	now func() time.Time
}

func NewOrderService(repos *repo.Repositories) *OrderService {
	return &OrderService{
		orderRepo:        repos.Order,
		notificationRepo: repos.Notification,
		now:              time.Now,
	}
}

func (s *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*entity.OrderOutputModel, error) {
	order, err := s.orderRepo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrOrderNotFound
		}

		return nil, err
	}

	return mapOrder(order), nil
}

func (s *OrderService) GetUserOrders(ctx context.Context, buyerId string, pg *entity.PaginationInput) ([]entity.OrderOutputModel, error) {
	orders, err := s.orderRepo.GetUserOrders(ctx, buyerId, pg)
	if err != nil {
		return nil, err
	}

	return mapOrders(orders), nil
}

// MarkPaid confirms payment on a pending order. Payment capture itself happens
// downstream; this only records the outcome keyed by order number.
func (s *OrderService) MarkPaid(ctx context.Context, orderNumber string) (*entity.OrderOutputModel, error) {
	order, err := s.transition(ctx, orderNumber, common.PaymentPaid)
	if err != nil {
		return nil, err
	}

	s.notifyBuyer(ctx, order, "결제 확인",
		fmt.Sprintf("주문 %s의 결제가 확인되었습니다.", order.OrderNumber))

	return mapOrder(order), nil
}

func (s *OrderService) CancelOrder(ctx context.Context, orderNumber string) (*entity.OrderOutputModel, error) {
	order, err := s.transition(ctx, orderNumber, common.PaymentCanceled)
	if err != nil {
		return nil, err
	}

	return mapOrder(order), nil
}

func (s *OrderService) transition(ctx context.Context, orderNumber, toStatus string) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrOrderNotFound
		}

		return nil, err
	}

	if order.PaymentStatus != common.PaymentPending {
		return nil, ErrOrderNotPending
	}

	err = s.orderRepo.UpdatePaymentStatus(ctx, orderNumber, common.PaymentPending, toStatus, s.now())
	if err != nil {
		// Lost a race against another transition on the same order.
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrOrderNotPending
		}

		return nil, err
	}

	return s.orderRepo.GetOrderByNumber(ctx, orderNumber)
}

func (s *OrderService) notifyBuyer(ctx context.Context, order *entity.Order, title, message string) {
	err := s.notificationRepo.CreateNotification(ctx, &entity.CreateNotificationInput{
		UserId:  order.BuyerId.String(),
		Type:    common.NotificationPayment,
		Title:   title,
		Message: message,
		Data: map[string]any{
			"orderNumber": order.OrderNumber,
			"totalAmount": order.TotalAmount,
		},
	})
	if err != nil {
		slog.Error("can't notify buyer", slog.String("orderNumber", order.OrderNumber), slog.Any("error", err))
	}
}
