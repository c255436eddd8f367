package controller

import (
	"net/http"
	"time"

	"bonsai-auction-api/internal/entity"
	"bonsai-auction-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type itemRoutesHandler struct {
	itemService       service.Item
	bidHistoryService service.BidHistory
	validate          *validator.Validate
}

func newItemRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *itemRoutesHandler {
	h := &itemRoutesHandler{itemService: services.Item, bidHistoryService: services.BidHistory, validate: v}
	outer.GET("/items", h.GetItems)
	outer.POST("/items/new", h.PostItem)
	outer.GET("/items/:itemId", h.GetItem)
	outer.GET("/items/:itemId/bids", h.GetItemBids)
	outer.GET("/users/:userId/bids", h.GetUserBids)

	return h
}

type postItemInput struct {
	SellerId          string `json:"sellerId" validate:"required,max=100"`
	Title             string `json:"title" validate:"required,min=3,max=200"`
	Description       string `json:"description" validate:"max=5000"`
	Species           string `json:"species" validate:"required,max=100"`
	StartPrice        int64  `json:"startPrice" validate:"required,gt=0"`
	BuyNowPrice       *int64 `json:"buyNowPrice" validate:"omitempty,gt=0"`
	ReservePrice      *int64 `json:"reservePrice" validate:"omitempty,gt=0"`
	BidStep           int64  `json:"bidStep" validate:"required,gt=0"`
	StartsAt          string `json:"startsAt" validate:"required"`
	EndsAt            string `json:"endsAt" validate:"required"`
	AutoExtendMinutes int    `json:"autoExtendMinutes" validate:"gte=0,lte=10"`
}

// /items/new
func (h *itemRoutesHandler) PostItem(c echo.Context) error {
	var input postItemInput
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

	startsAt, err := time.Parse(time.RFC3339, input.StartsAt)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"'startsAt': should be an RFC3339 timestamp"}); e != nil {
			return e
		}

		return err
	}

	endsAt, err := time.Parse(time.RFC3339, input.EndsAt)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"'endsAt': should be an RFC3339 timestamp"}); e != nil {
			return e
		}

		return err
	}

	model := &entity.CreateItemInput{
		SellerId: input.SellerId, Title: input.Title, Description: input.Description,
		Species: input.Species, StartPrice: input.StartPrice, BuyNowPrice: input.BuyNowPrice,
		ReservePrice: input.ReservePrice, BidStep: input.BidStep,
		StartsAt: startsAt, EndsAt: endsAt, AutoExtendMinutes: input.AutoExtendMinutes,
	}

	item, err := h.itemService.CreateItem(c.Request().Context(), model)
	if err == nil {
		if e := c.JSON(http.StatusOK, item); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrUserNotFound:
		if e := c.JSON(http.StatusUnauthorized, errorResponse{"There is no user with given id"}); e != nil {
			return e
		}
	case service.ErrInvalidPrice:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"시작가와 입찰 단위는 0보다 커야 합니다"}); e != nil {
			return e
		}
	case service.ErrInvalidAuctionWindow:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"경매 종료 시간은 시작 시간 이후여야 합니다"}); e != nil {
			return e
		}
	case service.ErrInvalidAutoExtend:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"자동 연장 시간은 0~10분이어야 합니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getItemsInput struct {
	Status   string `query:"status" validate:"omitempty,oneof=DRAFT PENDING_REVIEW SCHEDULED LIVE ENDED CANCELED"`
	Species  string `query:"species" validate:"max=100"`
	MinPrice *int64 `query:"minPrice" validate:"omitempty,gte=0"`
	MaxPrice *int64 `query:"maxPrice" validate:"omitempty,gte=0"`
	Sort     string `query:"sort" validate:"omitempty,oneof=newest price_asc price_desc ending_soon"`
	Limit    int32  `query:"limit" validate:"gte=0,lte=100"`
	Offset   int32  `query:"offset" validate:"gte=0"`
}

func newGetItemsInput() getItemsInput {
	return getItemsInput{Status: "LIVE", Limit: defaultLimit, Offset: defaultOffset}
}

// /items
func (h *itemRoutesHandler) GetItems(c echo.Context) error {
	var input = newGetItemsInput()
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

	filter := &entity.ItemFilter{
		Status: input.Status, Species: input.Species,
		MinPrice: input.MinPrice, MaxPrice: input.MaxPrice, Sort: input.Sort,
	}
	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))

	items, err := h.itemService.GetItems(c.Request().Context(), filter, pg)
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

// /items/:itemId
func (h *itemRoutesHandler) GetItem(c echo.Context) error {
	itemId := c.Param("itemId")

	item, err := h.itemService.GetItemById(c.Request().Context(), itemId)
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
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

type getBidsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newGetBidsInput() getBidsInput {
	return getBidsInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /items/:itemId/bids
func (h *itemRoutesHandler) GetItemBids(c echo.Context) error {
	var input = newGetBidsInput()
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
	bids, err := h.bidHistoryService.GetItemBids(c.Request().Context(), c.Param("itemId"), pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, bids); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrItemNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"상품을 찾을 수 없습니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}
	}

	return err
}

// /users/:userId/bids
func (h *itemRoutesHandler) GetUserBids(c echo.Context) error {
	var input = newGetBidsInput()
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
	bids, err := h.bidHistoryService.GetUserBids(c.Request().Context(), c.Param("userId"), pg)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, bids); e != nil {
		return e
	}

	return nil
}
