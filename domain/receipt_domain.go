package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessSaveReceipt    = "receipt saved successfully"
	MessageSuccessGetReceipts    = "receipts retrieved successfully"
	MessageSuccessGetReceipt     = "receipt retrieved successfully"
	MessageSuccessDeleteReceipt  = "receipt deleted successfully"
	MessageSuccessShareReceipt   = "receipt shared successfully"
	MessageSuccessUploadPicture  = "receipt picture uploaded successfully"

	MessageFailedSaveReceipt   = "failed to save receipt"
	MessageFailedGetReceipts   = "failed to retrieve receipts"
	MessageFailedGetReceipt    = "failed to retrieve receipt"
	MessageFailedDeleteReceipt = "failed to delete receipt"
	MessageFailedShareReceipt  = "failed to share receipt"
	MessageFailedUploadPicture = "failed to upload receipt picture"

	ErrReceiptNotFound        = errors.New("receipt not found")
	ErrPermissionDenied       = errors.New("no permission to access this receipt")
	ErrReceiptWriteFailed     = errors.New("failed to write receipt record")
	ErrLineWriteFailed        = errors.New("failed to write receipt line items")
	ErrAssociationWriteFailed = errors.New("failed to write receipt line associations")
	ErrInvalidDateRange       = errors.New("invalid date range")
)

type (
	ReceiptItemRequest struct {
		Name     string  `json:"name" validate:"required"`
		Quantity float64 `json:"quantity" validate:"min=0"`
		Price    float64 `json:"price" validate:"min=0"`
	}

	SaveReceiptRequest struct {
		StoreName string               `json:"store_name" validate:"required"`
		Location  *string              `json:"location,omitempty"`
		Date      string               `json:"date" validate:"omitempty,datetime=2006-01-02"`
		Items     []ReceiptItemRequest `json:"items" validate:"required,dive"`
		Total     float64              `json:"total" validate:"min=0"`
	}

	SaveReceiptResponse struct {
		ReceiptID uint    `json:"receipt_id"`
		Date      string  `json:"date"`
		SumPrice  float64 `json:"sum_price"`
	}

	ReceiptItemResponse struct {
		IndeksID  uint    `json:"indeks_id"`
		Indeks    string  `json:"indeks"`
		Quantity  float64 `json:"quantity"`
		Price     float64 `json:"price"`
		ProductID *uint   `json:"product_id,omitempty"`
	}

	ReceiptResponse struct {
		ID         uint                  `json:"id"`
		CreateDate time.Time             `json:"create_date"`
		Date       string                `json:"date"`
		SumPrice   float64               `json:"sum_price"`
		ShopName   string                `json:"shop_name"`
		Location   string                `json:"location,omitempty"`
		PicPath    *string               `json:"pic_path,omitempty"`
		Items      []ReceiptItemResponse `json:"receipt_indekses"`
	}

	ReceiptListResponse struct {
		Receipts   []ReceiptResponse `json:"paragons"`
		TotalCount int64             `json:"total_count"`
		Page       int               `json:"page"`
		PageSize   int               `json:"page_size"`
		TotalPages int64             `json:"total_pages"`
	}

	ShareReceiptRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	UploadReceiptPictureRequest struct {
		Picture *multipart.FileHeader `json:"picture" form:"picture" validate:"required"`
	}
)
