package handlers

import (
	"scannsave-backend/domain"
	"scannsave-backend/internal/api/presenters"
	"scannsave-backend/pkg/stats"

	"github.com/gofiber/fiber/v2"
)

type (
	StatsHandler interface {
		ExpensesByCategory(c *fiber.Ctx) error
		ExpensesByShop(c *fiber.Ctx) error
		ExpensesByMonth(c *fiber.Ctx) error
		TotalExpenseSummary(c *fiber.Ctx) error
	}

	statsHandler struct {
		statsService stats.StatsService
	}
)

func NewStatsHandler(statsService stats.StatsService) StatsHandler {
	return &statsHandler{statsService: statsService}
}

func (h *statsHandler) ExpensesByCategory(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)

	rows, err := h.statsService.ExpensesByCategory(c.Context(), userToken, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, rows, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *statsHandler) ExpensesByShop(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)

	rows, err := h.statsService.ExpensesByShop(c.Context(), userToken, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, rows, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *statsHandler) ExpensesByMonth(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)

	rows, err := h.statsService.ExpensesByMonth(c.Context(), userToken, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, rows, fiber.StatusOK, domain.MessageSuccessGetStats)
}

func (h *statsHandler) TotalExpenseSummary(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)

	row, err := h.statsService.TotalExpenseSummary(c.Context(), userToken, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, row, fiber.StatusOK, domain.MessageSuccessGetStats)
}
