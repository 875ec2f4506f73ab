package handlers

import (
	"errors"
	"strconv"

	"scannsave-backend/domain"
	"scannsave-backend/internal/api/presenters"
	"scannsave-backend/pkg/receipt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReceiptHandler interface {
		SaveReceipt(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
		GetReceiptDetails(c *fiber.Ctx) error
		GetReceiptsByDateRange(c *fiber.Ctx) error
		DeleteReceipt(c *fiber.Ctx) error
		ShareReceipt(c *fiber.Ctx) error
		UploadReceiptPicture(c *fiber.Ctx) error
	}

	receiptHandler struct {
		receiptService receipt.ReceiptService
		validator      *validator.Validate
	}
)

func NewReceiptHandler(receiptService receipt.ReceiptService, validator *validator.Validate) ReceiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
		validator:      validator,
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrReceiptNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrShopNotFound),
		errors.Is(err, domain.ErrShopParcelNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrPermissionDenied):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

func (h *receiptHandler) SaveReceipt(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)
	req := new(domain.SaveReceiptRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSaveReceipt, err)
	}

	res, err := h.receiptService.SaveReceipt(c.Context(), *req, userToken)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedSaveReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveReceipt)
}

func (h *receiptHandler) GetReceipts(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)
	storeName := c.Query("store_name", "")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.Query("page_size", "10"))
	if err != nil || pageSize < 1 {
		pageSize = 10
	}

	res, err := h.receiptService.GetUserReceipts(c.Context(), userToken, page, pageSize, storeName)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceipts)
}

func (h *receiptHandler) GetReceiptDetails(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceipt, err)
	}

	res, err := h.receiptService.GetReceiptByID(c.Context(), uint(id), userToken)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceipt)
}

func (h *receiptHandler) GetReceiptsByDateRange(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	res, err := h.receiptService.GetReceiptsByDateRange(c.Context(), userToken, startDate, endDate)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReceipts)
}

func (h *receiptHandler) DeleteReceipt(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteReceipt, err)
	}

	if err := h.receiptService.DeleteReceipt(c.Context(), uint(id), userToken); err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedDeleteReceipt, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReceipt)
}

func (h *receiptHandler) ShareReceipt(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)
	req := new(domain.ShareReceiptRequest)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareReceipt, err)
	}

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedShareReceipt, err)
	}

	if err := h.receiptService.ShareReceipt(c.Context(), uint(id), userToken, *req); err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedShareReceipt, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessShareReceipt)
}

func (h *receiptHandler) UploadReceiptPicture(c *fiber.Ctx) error {
	userToken := c.Locals("user_token").(string)
	req := new(domain.UploadReceiptPictureRequest)

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPicture, err)
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	req.Picture = file

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadPicture, err)
	}

	picPath, err := h.receiptService.UploadReceiptPicture(c.Context(), uint(id), userToken, *req)
	if err != nil {
		return presenters.ErrorResponse(c, errorStatus(err), domain.MessageFailedUploadPicture, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"pic_path": picPath}, fiber.StatusOK, domain.MessageSuccessUploadPicture)
}
