package handlers

import (
	"errors"
	"strconv"

	"aurum/internal/models"
	"aurum/internal/repositories"
	"aurum/internal/services/verification"
	"aurum/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	verifier verification.Service
	balances repositories.BalanceRepository
}

func NewWalletHandler(verifier verification.Service, balances repositories.BalanceRepository) *WalletHandler {
	return &WalletHandler{
		verifier: verifier,
		balances: balances,
	}
}

// extractUserClaims is a helper function to reduce duplication.
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func walletIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// RegisterWallet claims a ledger address for the caller and returns the
// verification code, deposit address, minimum amount, and expiry.
func (h *WalletHandler) RegisterWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input struct {
		Address string `json:"address"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request format")
	}
	if input.Address == "" {
		return utils.BadRequest(c, "address is required")
	}

	result, err := h.verifier.Register(c.Context(), claims.UserID, input.Address)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrAlreadyBound):
			return utils.Conflict(c, "address already claimed by another user")
		case errors.Is(err, verification.ErrAccountNotFound):
			return utils.NotFound(c, "address not found on ledger")
		default:
			return utils.InternalError(c, "failed to register wallet")
		}
	}

	return utils.Success(c, result)
}

// CheckWallet re-checks the ledger for the verification payment.
func (h *WalletHandler) CheckWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	walletID, err := walletIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}

	result, err := h.verifier.Check(c.Context(), claims.UserID, walletID)
	if err != nil {
		switch {
		case errors.Is(err, verification.ErrWalletNotFound):
			return utils.NotFound(c, "wallet not found")
		case errors.Is(err, verification.ErrExpired):
			return utils.Gone(c, "verification window expired, register again")
		case errors.Is(err, verification.ErrNotPending):
			return utils.BadRequest(c, "wallet is not awaiting verification")
		default:
			return utils.InternalError(c, "failed to check verification")
		}
	}

	return utils.Success(c, result)
}

func (h *WalletHandler) ListWallets(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	wallets, err := h.verifier.ListWallets(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to list wallets")
	}
	return utils.Success(c, fiber.Map{"wallets": wallets})
}

func (h *WalletHandler) DeleteWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	walletID, err := walletIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}

	if err := h.verifier.Delete(c.Context(), claims.UserID, walletID); err != nil {
		if errors.Is(err, verification.ErrWalletNotFound) {
			return utils.NotFound(c, "wallet not found")
		}
		return utils.InternalError(c, "failed to delete wallet")
	}
	return utils.Success(c, fiber.Map{"message": "wallet deleted"})
}

func (h *WalletHandler) RestoreWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	walletID, err := walletIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}

	if err := h.verifier.Restore(c.Context(), claims.UserID, walletID); err != nil {
		switch {
		case errors.Is(err, verification.ErrWalletNotFound):
			return utils.NotFound(c, "wallet not found")
		case errors.Is(err, verification.ErrNotVerified):
			return utils.BadRequest(c, "only verified wallets can be restored")
		default:
			return utils.InternalError(c, "failed to restore wallet")
		}
	}
	return utils.Success(c, fiber.Map{"message": "wallet restored"})
}

func (h *WalletHandler) ActivateWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	walletID, err := walletIDParam(c)
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}

	if err := h.verifier.SetActive(c.Context(), claims.UserID, walletID); err != nil {
		switch {
		case errors.Is(err, verification.ErrWalletNotFound):
			return utils.NotFound(c, "wallet not found")
		case errors.Is(err, verification.ErrNotVerified):
			return utils.BadRequest(c, "wallet is not verified")
		default:
			return utils.InternalError(c, "failed to activate wallet")
		}
	}
	return utils.Success(c, fiber.Map{"message": "wallet activated"})
}

// Balances returns the caller's last-observed token holdings.
func (h *WalletHandler) Balances(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}

	balances, err := h.balances.ListByUser(claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to list balances")
	}
	return utils.Success(c, fiber.Map{"balances": balances})
}
