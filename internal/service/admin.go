package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"bonsai-auction-api/internal/common"
	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo"
	"bonsai-auction-api/internal/repo/repo_errors"
)

type AdminService struct {
	itemRepo         repo.Item
	userRepo         repo.User
	orderRepo        repo.Order
	auditLogRepo     repo.AuditLog
	notificationRepo repo.Notification
}

func NewAdminService(repos *repo.Repositories) *AdminService {
	return &AdminService{
		itemRepo:         repos.Item,
		userRepo:         repos.User,
		orderRepo:        repos.Order,
		auditLogRepo:     repos.AuditLog,
		notificationRepo: repos.Notification,
	}
}

// ApproveItem moves a reviewed listing into the auction schedule.
// Only PENDING_REVIEW items qualify.
func (s *AdminService) ApproveItem(ctx context.Context, actorId, itemId string) (*entity.ItemOutputModel, error) {
	item, err := s.reviewableItem(ctx, actorId, itemId)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.UpdateItemStatusById(ctx, itemId, common.Scheduled); err != nil {
		return nil, err
	}

	err = s.auditLogRepo.RecordAuditLog(ctx, &entity.CreateAuditLogInput{
		ActorId:    actorId,
		Action:     common.ActionItemApproved,
		TargetType: "ITEM",
		TargetId:   itemId,
		Diff: map[string]any{
			"status": map[string]any{"from": common.PendingReview, "to": common.Scheduled},
		},
	})
	if err != nil {
		return nil, err
	}

	s.notifySeller(ctx, item, "상품 승인 완료",
		fmt.Sprintf("상품 \"%s\"이 승인되었습니다.", item.Title), nil)

	item.Status = common.Scheduled

	return mapItem(item), nil
}

// RejectItem cancels a reviewed listing. CANCELED is terminal.
func (s *AdminService) RejectItem(ctx context.Context, actorId, itemId, reason string) (*entity.ItemOutputModel, error) {
	if reason == "" {
		return nil, ErrRejectReasonRequired
	}

	item, err := s.reviewableItem(ctx, actorId, itemId)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.UpdateItemStatusById(ctx, itemId, common.Canceled); err != nil {
		return nil, err
	}

	err = s.auditLogRepo.RecordAuditLog(ctx, &entity.CreateAuditLogInput{
		ActorId:    actorId,
		Action:     common.ActionItemRejected,
		TargetType: "ITEM",
		TargetId:   itemId,
		Diff: map[string]any{
			"status": map[string]any{"from": common.PendingReview, "to": common.Canceled},
			"reason": reason,
		},
	})
	if err != nil {
		return nil, err
	}

	s.notifySeller(ctx, item, "상품 거부됨",
		fmt.Sprintf("상품 \"%s\"이 거부되었습니다. 사유: %s", item.Title, reason),
		map[string]any{"reason": reason})

	item.Status = common.Canceled

	return mapItem(item), nil
}

func (s *AdminService) GetDashboardCounts(ctx context.Context, actorId string) (*entity.DashboardCounts, error) {
	if err := s.requireAdmin(ctx, actorId); err != nil {
		return nil, err
	}

	counts := &entity.DashboardCounts{}
	var err error

	if counts.Users, err = s.userRepo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if counts.Items, err = s.itemRepo.CountItems(ctx); err != nil {
		return nil, err
	}
	if counts.LiveItems, err = s.itemRepo.CountItemsByStatus(ctx, common.Live); err != nil {
		return nil, err
	}
	if counts.PendingReview, err = s.itemRepo.CountItemsByStatus(ctx, common.PendingReview); err != nil {
		return nil, err
	}
	if counts.Orders, err = s.orderRepo.CountOrders(ctx); err != nil {
		return nil, err
	}
	if counts.OrdersTotalAmount, err = s.orderRepo.SumOrderTotals(ctx); err != nil {
		return nil, err
	}

	return counts, nil
}

func (s *AdminService) reviewableItem(ctx context.Context, actorId, itemId string) (*entity.Item, error) {
	if err := s.requireAdmin(ctx, actorId); err != nil {
		return nil, err
	}

	item, err := s.itemRepo.GetItemById(ctx, itemId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrItemNotFound
		}

		return nil, err
	}

	if item.Status != common.PendingReview {
		return nil, ErrItemNotPendingReview
	}

	return item, nil
}

func (s *AdminService) requireAdmin(ctx context.Context, actorId string) error {
	actor, err := s.userRepo.GetUserById(ctx, actorId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	if actor.Role != common.RoleAdmin {
		return ErrNotAdmin
	}

	return nil
}

func (s *AdminService) notifySeller(ctx context.Context, item *entity.Item, title, message string, extra map[string]any) {
	data := map[string]any{
		"itemId":    item.Id.String(),
		"itemTitle": item.Title,
	}
	for k, v := range extra {
		data[k] = v
	}

	err := s.notificationRepo.CreateNotification(ctx, &entity.CreateNotificationInput{
		UserId:  item.SellerId.String(),
		Type:    common.NotificationAdminMessage,
		Title:   title,
		Message: message,
		Data:    data,
	})
	if err != nil {
		slog.Error("can't notify seller", slog.String("itemId", item.Id.String()), slog.Any("error", err))
	}
}
