package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"bonsai-auction-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type auctionRoutesHandler struct {
	auctionService service.Auction
	validate       *validator.Validate
}

func newAuctionRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *auctionRoutesHandler {
	h := &auctionRoutesHandler{auctionService: services.Auction, validate: v}
	outer.POST("/items/:itemId/bid", h.PostBid)
	outer.POST("/items/:itemId/buy-now", h.PostBuyNow)
	outer.POST("/auctions/sweep", h.PostSweep)

	return h
}

type postBidInput struct {
	BidderId       string `json:"bidderId" validate:"required,max=100"`
	Amount         int64  `json:"amount" validate:"required,gt=0"`
	IsProxy        bool   `json:"isProxy"`
	MaxProxyAmount *int64 `json:"maxProxyAmount" validate:"omitempty,gt=0"`
}

// /items/:itemId/bid
func (h *auctionRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
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

	result, err := h.auctionService.ProcessBid(c.Request().Context(),
		c.Param("itemId"), input.BidderId, input.Amount, input.IsProxy, input.MaxProxyAmount)
	if err == nil {
		if e := c.JSON(http.StatusOK, result); e != nil {
			return e
		}

		return nil
	}

	var tooLow *service.BidTooLowError
	if errors.As(err, &tooLow) {
		reason := fmt.Sprintf("최소 입찰가는 %s원입니다", formatWon(tooLow.MinimumBid))
		if e := c.JSON(http.StatusBadRequest, errorResponse{reason}); e != nil {
			return e
		}

		return err
	}

	switch err {
	case service.ErrItemNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"상품을 찾을 수 없습니다"}); e != nil {
			return e
		}
	case service.ErrAuctionNotLive:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"진행 중인 경매가 아닙니다"}); e != nil {
			return e
		}
	case service.ErrAuctionExpired:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"경매가 종료되었습니다"}); e != nil {
			return e
		}
	case service.ErrOwnItemBid:
		if e := c.JSON(http.StatusForbidden, errorResponse{"자신의 상품에는 입찰할 수 없습니다"}); e != nil {
			return e
		}
	case service.ErrInvalidBidAmount:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"입찰가는 0보다 커야 합니다"}); e != nil {
			return e
		}
	case service.ErrProxyCeilingRequired:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"자동 입찰에는 최대 금액이 필요합니다"}); e != nil {
			return e
		}
	case service.ErrProxyCeilingTooLow:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"자동 입찰 최대 금액은 입찰가 이상이어야 합니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"입찰 처리 중 오류가 발생했습니다"}); e != nil {
			return e
		}
	}

	return err
}

type postBuyNowInput struct {
	BuyerId string `json:"buyerId" validate:"required,max=100"`
}

// /items/:itemId/buy-now
func (h *auctionRoutesHandler) PostBuyNow(c echo.Context) error {
	var input postBuyNowInput
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

	result, err := h.auctionService.BuyNow(c.Request().Context(), c.Param("itemId"), input.BuyerId)
	if err == nil {
		if e := c.JSON(http.StatusOK, result); e != nil {
			return e
		}

		return nil
	}

	switch err {
	case service.ErrItemNotFound:
		if e := c.JSON(http.StatusNotFound, errorResponse{"상품을 찾을 수 없습니다"}); e != nil {
			return e
		}
	case service.ErrAuctionNotLive:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"진행 중인 경매가 아닙니다"}); e != nil {
			return e
		}
	case service.ErrBuyNowNotAvailable:
		if e := c.JSON(http.StatusBadRequest, errorResponse{"즉시구매가 설정되지 않은 상품입니다"}); e != nil {
			return e
		}
	case service.ErrOwnItemBid:
		if e := c.JSON(http.StatusForbidden, errorResponse{"자신의 상품은 구매할 수 없습니다"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"즉시구매 처리 중 오류가 발생했습니다"}); e != nil {
			return e
		}
	}

	return err
}

type sweepOutput struct {
	Started int `json:"started"`
	Ended   int `json:"ended"`
}

// /auctions/sweep
// Invoked by an external timer; starts due auctions and closes expired ones.
func (h *auctionRoutesHandler) PostSweep(c echo.Context) error {
	now := time.Now()
	ctx := c.Request().Context()

	started, err := h.auctionService.StartScheduledAuctions(ctx, now)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	ended, err := h.auctionService.EndExpiredAuctions(ctx, now)
	if err != nil {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, sweepOutput{Started: started, Ended: ended}); e != nil {
		return e
	}

	return nil
}
