package controller

import (
	"net/http"

	"bonsai-auction-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type adminRoutesHandler struct {
	adminService service.Admin
	validate     *validator.Validate
}

func newAdminRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *adminRoutesHandler {
	h := &adminRoutesHandler{adminService: services.Admin, validate: v}
	admin := outer.Group("/admin")
	admin.POST("/items/:itemId/approve", h.ApproveItem)
	admin.POST("/items/:itemId/reject", h.RejectItem)
	admin.GET("/dashboard", h.GetDashboard)

	return h
}

type approveItemInput struct {
	ActorId string `json:"actorId" validate:"required,max=100"`
}

// /admin/items/:itemId/approve
func (h *adminRoutesHandler) ApproveItem(c echo.Context) error {
	var input approveItemInput
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

	item, err := h.adminService.ApproveItem(c.Request().Context(), input.ActorId, c.Param("itemId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, item); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrItemNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"상품을 찾을 수 없습니다"}); e != nil {
			return e
		}
	case service.ErrNotAdmin:
		if e := c.JSON(http.StatusForbidden, errorResponse{"관리자 권한이 필요합니다"}); e != nil {
			return e
		}
	case service.ErrItemNotPendingReview:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"심사 대기 상태의 상품이 아닙니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type rejectItemInput struct {
	ActorId string `json:"actorId" validate:"required,max=100"`
	Reason  string `json:"reason" validate:"required,max=500"`
}

// /admin/items/:itemId/reject
func (h *adminRoutesHandler) RejectItem(c echo.Context) error {
	var input rejectItemInput
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

	item, err := h.adminService.RejectItem(c.Request().Context(), input.ActorId, c.Param("itemId"), input.Reason)
	if err == nil {
		if e := c.JSON(http.StatusOK, item); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrItemNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"상품을 찾을 수 없습니다"}); e != nil {
			return e
		}
	case service.ErrNotAdmin:
		if e := c.JSON(http.StatusForbidden, errorResponse{"관리자 권한이 필요합니다"}); e != nil {
			return e
		}
	case service.ErrItemNotPendingReview:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"심사 대기 상태의 상품이 아닙니다"}); e != nil {
			return e
		}
	case service.ErrRejectReasonRequired:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"거절 사유를 입력해주세요"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getDashboardInput struct {
	ActorId string `query:"actorId" validate:"required,max=100"`
}

// /admin/dashboard
func (h *adminRoutesHandler) GetDashboard(c echo.Context) error {
	var input getDashboardInput
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

	counts, err := h.adminService.GetDashboardCounts(c.Request().Context(), input.ActorId)
	if err == nil {
		if e := c.JSON(http.StatusOK, counts); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrUserNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"사용자를 찾을 수 없습니다"}); e != nil {
			return e
		}
	case service.ErrNotAdmin:
		if e := c.JSON(http.StatusForbidden, errorResponse{"관리자 권한이 필요합니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
