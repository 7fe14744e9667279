package handlers

import (
	"aurum/internal/services/prices"
	"aurum/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PriceHandler struct {
	prices prices.Service
}

func NewPriceHandler(priceService prices.Service) *PriceHandler {
	return &PriceHandler{prices: priceService}
}

func (h *PriceHandler) Spot(c *fiber.Ctx) error {
	metal := c.Query("metal", "gold")
	quote, err := h.prices.Spot(c.Context(), metal)
	if err != nil {
		return utils.InternalError(c, "failed to fetch spot price")
	}
	return utils.Success(c, quote)
}
