package controller

import (
	"bonsai-auction-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)
	newItemRoutesHandler(api, services, validate)
	newAuctionRoutesHandler(api, services, validate)
	newWatchlistRoutesHandler(api, services, validate)
	newOrderRoutesHandler(api, services, validate)
	newNotificationRoutesHandler(api, services, validate)
	newAdminRoutesHandler(api, services, validate)
}
