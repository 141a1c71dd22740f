package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/carenotes/internal/api/dto"
	"github.com/spec-kit/carenotes/internal/auth"
	"github.com/spec-kit/carenotes/internal/domain"
	"github.com/spec-kit/carenotes/internal/service"
	apperrors "github.com/spec-kit/carenotes/pkg/util"
)

// FinanceHandler manages pocket money endpoints.
type FinanceHandler struct {
	service *service.FinanceService
}

// NewFinanceHandler constructs handler.
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{service: financeService}
}

// DisbursePocketMoney POST /finance/pocket-money.
func (h *FinanceHandler) DisbursePocketMoney(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Staff == nil {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.DisbursePocketMoneyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	disbursement, err := h.service.DisbursePocketMoney(c.Context(), service.DisbursementInput{
		ChildID:     req.ChildID,
		WeekNumber:  req.WeekNumber,
		Year:        req.Year,
		AmountPence: req.AmountPence,
		Method:      req.Method,
		DisbursedBy: principal.Staff.ID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": disbursementResponse(disbursement)})
}

// ListDisbursements GET /children/:id/pocket-money.
func (h *FinanceHandler) ListDisbursements(c *fiber.Ctx) error {
	year := queryInt(c, "year", time.Now().Year())
	childID := c.Params("id")
	disbursements, err := h.service.ListDisbursements(c.Context(), childID, year)
	if err != nil {
		return err
	}
	items := make([]dto.DisbursementResponse, 0, len(disbursements))
	var total int64
	for i := range disbursements {
		items = append(items, disbursementResponse(&disbursements[i]))
		total += disbursements[i].AmountPence
	}
	return c.JSON(fiber.Map{"data": dto.DisbursementYearResponse{
		ChildID:       childID,
		Year:          year,
		TotalPence:    total,
		Disbursements: items,
	}})
}

func disbursementResponse(d *domain.PocketMoneyDisbursement) dto.DisbursementResponse {
	return dto.DisbursementResponse{
		ID:          d.ID,
		ChildID:     d.ChildID,
		WeekNumber:  d.WeekNumber,
		Year:        d.Year,
		AmountPence: d.AmountPence,
		Method:      d.Method,
		DisbursedBy: d.DisbursedBy,
		CreatedAt:   d.CreatedAt,
	}
}
