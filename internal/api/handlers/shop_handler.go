package handlers

import (
	"scannsave-backend/domain"
	"scannsave-backend/internal/api/presenters"
	"scannsave-backend/pkg/shop"

	"github.com/gofiber/fiber/v2"
)

type (
	ShopHandler interface {
		GetShops(c *fiber.Ctx) error
	}

	shopHandler struct {
		shopService shop.ShopService
	}
)

func NewShopHandler(shopService shop.ShopService) ShopHandler {
	return &shopHandler{shopService: shopService}
}

func (h *shopHandler) GetShops(c *fiber.Ctx) error {
	shops, err := h.shopService.GetShops(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetShops, err)
	}

	return presenters.SuccessResponse(c, shops, fiber.StatusOK, domain.MessageSuccessGetShops)
}
