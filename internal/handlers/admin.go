package handlers

import (
	"errors"
	"strconv"

	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes token and settings administration. Routes are mounted
// behind the admin middleware.
type AdminHandler struct {
	tokens   repositories.TokenRepository
	settings repositories.SettingsRepository
}

func NewAdminHandler(tokens repositories.TokenRepository, settings repositories.SettingsRepository) *AdminHandler {
	return &AdminHandler{
		tokens:   tokens,
		settings: settings,
	}
}

func (h *AdminHandler) ListTokens(c *fiber.Ctx) error {
	tokens, err := h.tokens.List()
	if err != nil {
		return utils.InternalError(c, "failed to list tokens")
	}
	return utils.Success(c, fiber.Map{"tokens": tokens})
}

func (h *AdminHandler) CreateToken(c *fiber.Ctx) error {
	var input struct {
		Code   string `json:"code"`
		Issuer string `json:"issuer"`
		Name   string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Code == "" || input.Issuer == "" {
		return utils.BadRequest(c, "code and issuer are required")
	}

	token := &models.Token{
		Code:     input.Code,
		Issuer:   input.Issuer,
		Name:     input.Name,
		IsActive: true,
	}
	if err := h.tokens.Create(token); err != nil {
		return utils.InternalError(c, "failed to create token")
	}
	return utils.Success(c, token)
}

// UpdateToken toggles whether a token takes part in synchronization.
func (h *AdminHandler) UpdateToken(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.BadRequest(c, "invalid token id")
	}

	var input struct {
		IsActive *bool  `json:"is_active"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	token, err := h.tokens.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return utils.NotFound(c, "token not found")
		}
		return utils.InternalError(c, "failed to get token")
	}

	if input.IsActive != nil {
		token.IsActive = *input.IsActive
	}
	if input.Name != "" {
		token.Name = input.Name
	}
	if err := h.tokens.Update(token); err != nil {
		return utils.InternalError(c, "failed to update token")
	}
	return utils.Success(c, token)
}

func (h *AdminHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get()
	if err != nil {
		return utils.InternalError(c, "failed to get settings")
	}
	return utils.Success(c, settings)
}

func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var input struct {
		DepositAddress     string   `json:"deposit_address"`
		MinPayment         *float64 `json:"min_payment"`
		PaymentAssetCode   *string  `json:"payment_asset_code"`
		PaymentAssetIssuer *string  `json:"payment_asset_issuer"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}

	settings, err := h.settings.Get()
	if err != nil {
		return utils.InternalError(c, "failed to get settings")
	}

	if input.DepositAddress != "" {
		settings.DepositAddress = input.DepositAddress
	}
	if input.MinPayment != nil {
		settings.MinPayment = *input.MinPayment
	}
	if input.PaymentAssetCode != nil {
		settings.PaymentAssetCode = *input.PaymentAssetCode
	}
	if input.PaymentAssetIssuer != nil {
		settings.PaymentAssetIssuer = *input.PaymentAssetIssuer
	}

	if err := h.settings.Update(settings); err != nil {
		return utils.InternalError(c, "failed to update settings")
	}
	return utils.Success(c, settings)
}
