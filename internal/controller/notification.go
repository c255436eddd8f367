package controller

import (
	"net/http"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type notificationRoutesHandler struct {
	notificationService service.Notification
	validate            *validator.Validate
}

func newNotificationRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *notificationRoutesHandler {
	h := &notificationRoutesHandler{notificationService: services.Notification, validate: v}
	outer.GET("/users/:userId/notifications", h.GetUserNotifications)
	outer.PUT("/notifications/:notificationId/read", h.MarkRead)

	return h
}

type getNotificationsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /users/:userId/notifications
func (h *notificationRoutesHandler) GetUserNotifications(c echo.Context) error {
	var input = getNotificationsInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	notifications, err := h.notificationService.GetUserNotifications(c.Request().Context(), c.Param("userId"), pg)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, notifications); e != nil {
		return e
	}

	return nil
}

// /notifications/:notificationId/read
func (h *notificationRoutesHandler) MarkRead(c echo.Context) error {
	err := h.notificationService.MarkRead(c.Request().Context(), c.Param("notificationId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, map[string]string{"message": "알림을 읽음 처리했습니다"}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrNotificationNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"알림을 찾을 수 없습니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
