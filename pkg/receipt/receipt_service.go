package receipt

import (
	"context"
	"errors"
	"fmt"
	"log"

	"scannsave-backend/domain"
	"scannsave-backend/entities"
	"scannsave-backend/internal/utils/mailing"
	"scannsave-backend/internal/utils/storage"
	"scannsave-backend/pkg/product"
	"scannsave-backend/pkg/shop"
	"scannsave-backend/pkg/user"

	"gorm.io/gorm"
)

type (
	ReceiptService interface {
		SaveReceipt(ctx context.Context, req domain.SaveReceiptRequest, userToken string) (domain.SaveReceiptResponse, error)
		GetUserReceipts(ctx context.Context, userToken string, page, pageSize int, storeName string) (domain.ReceiptListResponse, error)
		GetReceiptByID(ctx context.Context, id uint, userToken string) (domain.ReceiptResponse, error)
		GetReceiptsByDateRange(ctx context.Context, userToken, startDate, endDate string) ([]domain.ReceiptResponse, error)
		DeleteReceipt(ctx context.Context, id uint, userToken string) error
		ShareReceipt(ctx context.Context, id uint, userToken string, req domain.ShareReceiptRequest) error
		UploadReceiptPicture(ctx context.Context, id uint, userToken string, req domain.UploadReceiptPictureRequest) (string, error)
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		userService       user.UserService
		shopService       shop.ShopService
		productService    product.ProductService
		s3                storage.AwsS3
	}
)

func NewReceiptService(
	receiptRepository ReceiptRepository,
	userService user.UserService,
	shopService shop.ShopService,
	productService product.ProductService,
	s3 storage.AwsS3,
) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		userService:       userService,
		shopService:       shopService,
		productService:    productService,
		s3:                s3,
	}
}

// SaveReceipt persists a parsed receipt as a header row, one index row per
// purchased line and one association row per index. The store offers no
// multi-table transaction, so every stage commits independently and any
// failure after the header insert replays deletes in reverse insertion order.
// Callers never observe a partially written receipt.
func (s *receiptService) SaveReceipt(ctx context.Context, req domain.SaveReceiptRequest, userToken string) (domain.SaveReceiptResponse, error) {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return domain.SaveReceiptResponse{}, err
	}

	resolved, err := s.shopService.ResolveShopParcel(ctx, req.StoreName, req.Location)
	if err != nil {
		return domain.SaveReceiptResponse{}, err
	}

	receipt := &entities.Receipt{
		CreatorID:    userID,
		Date:         req.Date,
		ShopParcelID: resolved.ParcelID,
		SumPrice:     req.Total,
	}

	if err := s.receiptRepository.CreateReceipt(ctx, receipt); err != nil {
		return domain.SaveReceiptResponse{}, domain.ErrReceiptWriteFailed
	}

	// Compensation log: index ids inserted during this attempt, so a later
	// failure can remove every row this save produced and nothing else.
	var insertedIndexIDs []uint
	var quantities []float64

	for _, item := range req.Items {
		if item.Quantity == 0 {
			// Non-purchased or returned line, nothing to record.
			continue
		}

		result, err := s.productService.Reconcile(ctx, item.Name, resolved.ShopID)
		if err != nil {
			return domain.SaveReceiptResponse{}, err
		}
		if result.ProductID == nil {
			log.Printf("warning: line %q saved without product reference", item.Name)
		}

		index := &entities.ReceiptIndex{
			Indeks:    item.Name,
			Price:     item.Price * item.Quantity,
			ProductID: result.ProductID,
			ShopID:    resolved.ShopID,
		}

		if err := s.receiptRepository.CreateReceiptIndex(ctx, index); err != nil {
			s.rollbackIndexes(ctx, insertedIndexIDs)
			s.rollbackReceipt(ctx, receipt.ID)
			return domain.SaveReceiptResponse{}, domain.ErrLineWriteFailed
		}

		insertedIndexIDs = append(insertedIndexIDs, index.ID)
		quantities = append(quantities, item.Quantity)
	}

	for i, indexID := range insertedIndexIDs {
		connect := &entities.ReceiptConnectIndex{
			ReceiptID:       receipt.ID,
			ReceiptIndeksID: indexID,
			Quantity:        quantities[i],
		}

		if err := s.receiptRepository.CreateReceiptConnect(ctx, connect); err != nil {
			s.rollbackConnects(ctx, receipt.ID)
			s.rollbackIndexes(ctx, insertedIndexIDs)
			s.rollbackReceipt(ctx, receipt.ID)
			return domain.SaveReceiptResponse{}, domain.ErrAssociationWriteFailed
		}
	}

	return domain.SaveReceiptResponse{
		ReceiptID: receipt.ID,
		Date:      receipt.Date,
		SumPrice:  receipt.SumPrice,
	}, nil
}

func (s *receiptService) rollbackConnects(ctx context.Context, receiptID uint) {
	if err := s.receiptRepository.DeleteReceiptConnects(ctx, receiptID); err != nil {
		log.Printf("warning: rollback of associations for receipt %d failed: %v", receiptID, err)
	}
}

func (s *receiptService) rollbackIndexes(ctx context.Context, ids []uint) {
	if err := s.receiptRepository.DeleteReceiptIndexes(ctx, ids); err != nil {
		log.Printf("warning: rollback of %d index rows failed: %v", len(ids), err)
	}
}

func (s *receiptService) rollbackReceipt(ctx context.Context, receiptID uint) {
	if _, err := s.receiptRepository.DeleteReceipt(ctx, receiptID); err != nil {
		log.Printf("warning: rollback of receipt %d failed: %v", receiptID, err)
	}
}

func (s *receiptService) buildReceiptResponse(ctx context.Context, receipt *entities.Receipt) domain.ReceiptResponse {
	response := domain.ReceiptResponse{
		ID:         receipt.ID,
		CreateDate: receipt.CreatedAt,
		Date:       receipt.Date,
		SumPrice:   receipt.SumPrice,
		PicPath:    receipt.PicPath,
	}

	if receipt.ShopParcel != nil {
		response.Location = receipt.ShopParcel.Location
		if receipt.ShopParcel.Shop != nil {
			response.ShopName = receipt.ShopParcel.Shop.Name
		}
	}

	lines, err := s.receiptRepository.GetReceiptLines(ctx, receipt.ID)
	if err != nil {
		log.Printf("warning: loading lines for receipt %d failed: %v", receipt.ID, err)
		lines = nil
	}

	for _, line := range lines {
		response.Items = append(response.Items, domain.ReceiptItemResponse{
			IndeksID:  line.IndeksID,
			Indeks:    line.Indeks,
			Quantity:  line.Quantity,
			Price:     line.Price,
			ProductID: line.ProductID,
		})
	}

	return response
}

func (s *receiptService) GetUserReceipts(ctx context.Context, userToken string, page, pageSize int, storeName string) (domain.ReceiptListResponse, error) {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return domain.ReceiptListResponse{}, err
	}

	receipts, count, err := s.receiptRepository.GetReceipts(ctx, userID, storeName, page, pageSize)
	if err != nil {
		return domain.ReceiptListResponse{}, err
	}

	response := domain.ReceiptListResponse{
		Receipts:   []domain.ReceiptResponse{},
		TotalCount: count,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (count + int64(pageSize) - 1) / int64(pageSize),
	}

	for _, receipt := range receipts {
		response.Receipts = append(response.Receipts, s.buildReceiptResponse(ctx, receipt))
	}

	return response, nil
}

// GetReceiptByID returns a receipt aggregate. A receipt owned by someone else
// is reported as not found, the same as a missing row.
func (s *receiptService) GetReceiptByID(ctx context.Context, id uint, userToken string) (domain.ReceiptResponse, error) {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return domain.ReceiptResponse{}, err
	}

	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
		}
		return domain.ReceiptResponse{}, err
	}

	if receipt.CreatorID != userID {
		return domain.ReceiptResponse{}, domain.ErrReceiptNotFound
	}

	return s.buildReceiptResponse(ctx, receipt), nil
}

func (s *receiptService) GetReceiptsByDateRange(ctx context.Context, userToken, startDate, endDate string) ([]domain.ReceiptResponse, error) {
	if startDate == "" || endDate == "" || startDate > endDate {
		return nil, domain.ErrInvalidDateRange
	}

	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepository.GetReceiptsByDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	response := []domain.ReceiptResponse{}
	for _, receipt := range receipts {
		response = append(response, s.buildReceiptResponse(ctx, receipt))
	}

	return response, nil
}

// DeleteReceipt removes a receipt's shares and line associations, then the
// header. Index and product rows are shared matching history and stay.
func (s *receiptService) DeleteReceipt(ctx context.Context, id uint, userToken string) error {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return err
	}

	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrReceiptNotFound
		}
		return err
	}

	if receipt.CreatorID != userID {
		return domain.ErrPermissionDenied
	}

	if err := s.receiptRepository.DeleteReceiptShares(ctx, id); err != nil {
		return err
	}
	if err := s.receiptRepository.DeleteReceiptConnects(ctx, id); err != nil {
		return err
	}

	deleted, err := s.receiptRepository.DeleteReceipt(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return domain.ErrReceiptNotFound
	}

	return nil
}

func (s *receiptService) ShareReceipt(ctx context.Context, id uint, userToken string, req domain.ShareReceiptRequest) error {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return err
	}

	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrReceiptNotFound
		}
		return err
	}

	if receipt.CreatorID != userID {
		return domain.ErrPermissionDenied
	}

	target, err := s.userService.ResolveUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	share := &entities.ReceiptShare{
		ReceiptID:    id,
		SharedWithID: target.ID,
	}
	if err := s.receiptRepository.CreateReceiptShare(ctx, share); err != nil {
		return err
	}

	shopName := ""
	if receipt.ShopParcel != nil && receipt.ShopParcel.Shop != nil {
		shopName = receipt.ShopParcel.Shop.Name
	}

	subject := "A receipt was shared with you"
	body := fmt.Sprintf(
		"<p>A receipt from <b>%s</b> dated %s (total %.2f) was shared with you on ScanNSave.</p>",
		shopName, receipt.Date, receipt.SumPrice,
	)
	if err := mailing.SendMail(req.Email, subject, body); err != nil {
		// The share row is already recorded, notification is best effort.
		log.Printf("warning: share notification to %s failed: %v", req.Email, err)
	}

	return nil
}

func (s *receiptService) UploadReceiptPicture(ctx context.Context, id uint, userToken string, req domain.UploadReceiptPictureRequest) (string, error) {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return "", err
	}

	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrReceiptNotFound
		}
		return "", err
	}

	if receipt.CreatorID != userID {
		return "", domain.ErrPermissionDenied
	}

	fileName := fmt.Sprintf("receipt-%d", receipt.ID)
	var objectKey string

	if receipt.PicPath != nil && *receipt.PicPath != "" {
		existingKey := s.s3.GetObjectKeyFromLink(*receipt.PicPath)
		if existingKey != "" {
			objectKey, err = s.s3.UpdateFile(existingKey, req.Picture, storage.AllowImage...)
		} else {
			objectKey, err = s.s3.UploadFile(fileName, req.Picture, "receipts", storage.AllowImage...)
		}
	} else {
		objectKey, err = s.s3.UploadFile(fileName, req.Picture, "receipts", storage.AllowImage...)
	}
	if err != nil {
		return "", err
	}

	picPath := s.s3.GetPublicLinkKey(objectKey)
	if err := s.receiptRepository.UpdateReceiptPicPath(ctx, receipt.ID, picPath); err != nil {
		return "", err
	}

	return picPath, nil
}
