package service

import (
	"context"
	"errors"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/repo"
	"bonsai-auction-api/internal/repo/repo_errors"
)

type NotificationService struct {
	notificationRepo repo.Notification
}

func NewNotificationService(repos *repo.Repositories) *NotificationService {
	return &NotificationService{notificationRepo: repos.Notification}
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userId string, pg *entity.PaginationInput) ([]entity.NotificationOutputModel, error) {
	notifications, err := s.notificationRepo.GetUserNotifications(ctx, userId, pg)
	if err != nil {
		return nil, err
	}

	return mapNotifications(notifications), nil
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationId string) error {
	err := s.notificationRepo.MarkNotificationRead(ctx, notificationId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrNotificationNotFound
		}

		return err
	}

	return nil
}
