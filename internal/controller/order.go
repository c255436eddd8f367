package controller

import (
	"net/http"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type orderRoutesHandler struct {
	orderService service.Order
	validate     *validator.Validate
}

func newOrderRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *orderRoutesHandler {
	h := &orderRoutesHandler{orderService: services.Order, validate: v}
	outer.GET("/orders/:orderNumber", h.GetOrderByNumber)
	outer.GET("/users/:userId/orders", h.GetUserOrders)
	outer.PUT("/orders/:orderNumber/paid", h.MarkPaid)
	outer.PUT("/orders/:orderNumber/cancel", h.CancelOrder)

	return h
}

// /orders/:orderNumber
func (h *orderRoutesHandler) GetOrderByNumber(c echo.Context) error {
	order, err := h.orderService.GetOrderByNumber(c.Request().Context(), c.Param("orderNumber"))
	if err == nil {
		if e := c.JSON(http.StatusOK, order); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrOrderNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"주문을 찾을 수 없습니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getOrdersInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /users/:userId/orders
func (h *orderRoutesHandler) GetUserOrders(c echo.Context) error {
	var input = getOrdersInput{Limit: defaultLimit, Offset: defaultOffset}
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
	orders, err := h.orderService.GetUserOrders(c.Request().Context(), c.Param("userId"), pg)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, orders); e != nil {
		return e
	}

	return nil
}

// /orders/:orderNumber/paid
func (h *orderRoutesHandler) MarkPaid(c echo.Context) error {
	order, err := h.orderService.MarkPaid(c.Request().Context(), c.Param("orderNumber"))
	if err == nil {
		if e := c.JSON(http.StatusOK, order); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrOrderNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"주문을 찾을 수 없습니다"}); e != nil {
			return e
		}
	case service.ErrOrderNotPending:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"결제 대기 상태의 주문이 아닙니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /orders/:orderNumber/cancel
func (h *orderRoutesHandler) CancelOrder(c echo.Context) error {
	order, err := h.orderService.CancelOrder(c.Request().Context(), c.Param("orderNumber"))
	if err == nil {
		if e := c.JSON(http.StatusOK, order); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrOrderNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"주문을 찾을 수 없습니다"}); e != nil {
			return e
		}
	case service.ErrOrderNotPending:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"결제 대기 상태의 주문이 아닙니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}
