package controller

import (
	"net/http"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type watchlistRoutesHandler struct {
	watchlistService service.Watchlist
	validate         *validator.Validate
}

func newWatchlistRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *watchlistRoutesHandler {
	h := &watchlistRoutesHandler{watchlistService: services.Watchlist, validate: v}
	outer.POST("/items/:itemId/watchlist", h.AddToWatchlist)
	outer.DELETE("/items/:itemId/watchlist", h.RemoveFromWatchlist)
	outer.GET("/users/:userId/watchlist", h.GetUserWatchlist)

	return h
}

type watchlistInput struct {
	UserId string `json:"userId" query:"userId" validate:"required,max=100"`
}

// /items/:itemId/watchlist
func (h *watchlistRoutesHandler) AddToWatchlist(c echo.Context) error {
	var input watchlistInput
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

	err := h.watchlistService.AddToWatchlist(c.Request().Context(), input.UserId, c.Param("itemId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, map[string]string{"message": "관심목록에 추가되었습니다"}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrItemNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"상품을 찾을 수 없습니다"}); e != nil {
			return e
		}
	case service.ErrAlreadyInWatchlist:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"이미 관심목록에 추가된 상품입니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /items/:itemId/watchlist
func (h *watchlistRoutesHandler) RemoveFromWatchlist(c echo.Context) error {
	var input watchlistInput
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

	err := h.watchlistService.RemoveFromWatchlist(c.Request().Context(), input.UserId, c.Param("itemId"))
	if err == nil {
		if e := c.JSON(http.StatusOK, map[string]string{"message": "관심목록에서 제거되었습니다"}); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrNotInWatchlist:
		if e := c.JSON(http.StatusNotFound, errorResponse{"관심목록에 없는 상품입니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getWatchlistInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /users/:userId/watchlist
func (h *watchlistRoutesHandler) GetUserWatchlist(c echo.Context) error {
	var input = getWatchlistInput{Limit: defaultLimit, Offset: defaultOffset}
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
	items, err := h.watchlistService.GetUserWatchlist(c.Request().Context(), c.Param("userId"), pg)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, items); e != nil {
		return e
	}

	return nil
}
