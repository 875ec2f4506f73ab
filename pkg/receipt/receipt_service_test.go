package receipt

import (
	"context"
	"errors"
	"mime/multipart"
	"sort"
	"testing"

	"scannsave-backend/domain"
	"scannsave-backend/entities"
	"scannsave-backend/pkg/product"
	"scannsave-backend/pkg/shop"

	"gorm.io/gorm"
)

type fakeReceiptRepository struct {
	receipts map[uint]*entities.Receipt
	indexes  map[uint]*entities.ReceiptIndex
	connects []*entities.ReceiptConnectIndex
	shares   []*entities.ReceiptShare

	nextReceiptID uint
	nextIndexID   uint
	nextConnectID uint

	indexInserts   int
	failIndexAfter int // fail the nth CreateReceiptIndex call (1-based), 0 = never
	failConnect    bool
}

func newFakeReceiptRepository() *fakeReceiptRepository {
	return &fakeReceiptRepository{
		receipts:      map[uint]*entities.Receipt{},
		indexes:       map[uint]*entities.ReceiptIndex{},
		nextReceiptID: 1000,
		nextIndexID:   2000,
		nextConnectID: 3000,
	}
}

func (f *fakeReceiptRepository) CreateReceipt(_ context.Context, receipt *entities.Receipt) error {
	f.nextReceiptID++
	receipt.ID = f.nextReceiptID
	stored := *receipt
	f.receipts[receipt.ID] = &stored
	return nil
}

func (f *fakeReceiptRepository) GetReceiptByID(_ context.Context, id uint) (*entities.Receipt, error) {
	receipt, ok := f.receipts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *receipt
	return &copied, nil
}

func (f *fakeReceiptRepository) GetReceipts(_ context.Context, creatorID uint, storeName string, page, pageSize int) ([]*entities.Receipt, int64, error) {
	var owned []*entities.Receipt
	for _, receipt := range f.receipts {
		if receipt.CreatorID == creatorID {
			owned = append(owned, receipt)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID > owned[j].ID })

	count := int64(len(owned))
	offset := (page - 1) * pageSize
	if offset >= len(owned) {
		return nil, count, nil
	}
	end := offset + pageSize
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], count, nil
}

func (f *fakeReceiptRepository) GetReceiptsByDateRange(_ context.Context, creatorID uint, startDate, endDate string) ([]*entities.Receipt, error) {
	var matched []*entities.Receipt
	for _, receipt := range f.receipts {
		if receipt.CreatorID == creatorID && receipt.Date >= startDate && receipt.Date <= endDate {
			matched = append(matched, receipt)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date > matched[j].Date })
	return matched, nil
}

func (f *fakeReceiptRepository) DeleteReceipt(_ context.Context, id uint) (int64, error) {
	if _, ok := f.receipts[id]; !ok {
		return 0, nil
	}
	delete(f.receipts, id)
	return 1, nil
}

func (f *fakeReceiptRepository) UpdateReceiptPicPath(_ context.Context, id uint, picPath string) error {
	receipt, ok := f.receipts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	receipt.PicPath = &picPath
	return nil
}

func (f *fakeReceiptRepository) CreateReceiptIndex(_ context.Context, index *entities.ReceiptIndex) error {
	f.indexInserts++
	if f.failIndexAfter > 0 && f.indexInserts >= f.failIndexAfter {
		return errors.New("store unavailable")
	}
	f.nextIndexID++
	index.ID = f.nextIndexID
	stored := *index
	f.indexes[index.ID] = &stored
	return nil
}

func (f *fakeReceiptRepository) DeleteReceiptIndexes(_ context.Context, ids []uint) error {
	for _, id := range ids {
		delete(f.indexes, id)
	}
	return nil
}

func (f *fakeReceiptRepository) CreateReceiptConnect(_ context.Context, connect *entities.ReceiptConnectIndex) error {
	if f.failConnect {
		return errors.New("store unavailable")
	}
	f.nextConnectID++
	connect.ID = f.nextConnectID
	stored := *connect
	f.connects = append(f.connects, &stored)
	return nil
}

func (f *fakeReceiptRepository) DeleteReceiptConnects(_ context.Context, receiptID uint) error {
	var kept []*entities.ReceiptConnectIndex
	for _, connect := range f.connects {
		if connect.ReceiptID != receiptID {
			kept = append(kept, connect)
		}
	}
	f.connects = kept
	return nil
}

func (f *fakeReceiptRepository) GetReceiptLines(_ context.Context, receiptID uint) ([]ReceiptLineRow, error) {
	var lines []ReceiptLineRow
	for _, connect := range f.connects {
		if connect.ReceiptID != receiptID {
			continue
		}
		index, ok := f.indexes[connect.ReceiptIndeksID]
		if !ok {
			continue
		}
		lines = append(lines, ReceiptLineRow{
			IndeksID:  index.ID,
			Indeks:    index.Indeks,
			Price:     index.Price,
			ProductID: index.ProductID,
			Quantity:  connect.Quantity,
		})
	}
	return lines, nil
}

func (f *fakeReceiptRepository) CreateReceiptShare(_ context.Context, share *entities.ReceiptShare) error {
	stored := *share
	f.shares = append(f.shares, &stored)
	return nil
}

func (f *fakeReceiptRepository) DeleteReceiptShares(_ context.Context, receiptID uint) error {
	var kept []*entities.ReceiptShare
	for _, share := range f.shares {
		if share.ReceiptID != receiptID {
			kept = append(kept, share)
		}
	}
	f.shares = kept
	return nil
}

type stubUserService struct {
	usersByToken map[string]uint
	usersByEmail map[string]*entities.User
}

func (s *stubUserService) Register(context.Context, domain.RegisterUserRequest) (domain.RegisterUserResponse, error) {
	return domain.RegisterUserResponse{}, nil
}

func (s *stubUserService) Login(context.Context, domain.LoginUserRequest) (domain.LoginUserResponse, error) {
	return domain.LoginUserResponse{}, nil
}

func (s *stubUserService) ResolveUserID(_ context.Context, token string) (uint, error) {
	id, ok := s.usersByToken[token]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	return id, nil
}

func (s *stubUserService) ResolveUserByEmail(_ context.Context, email string) (*entities.User, error) {
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

type stubShopService struct {
	shopsByName map[string]shop.ResolvedShop
}

func (s *stubShopService) ResolveShopParcel(_ context.Context, shopName string, _ *string) (shop.ResolvedShop, error) {
	resolved, ok := s.shopsByName[shopName]
	if !ok {
		return shop.ResolvedShop{}, domain.ErrShopNotFound
	}
	return resolved, nil
}

func (s *stubShopService) GetShops(context.Context) ([]domain.ShopResponse, error) {
	return nil, nil
}

type stubProductService struct {
	productsByLabel map[string]uint
	nextID          uint
	created         []string
	softFail        bool
}

func (s *stubProductService) Reconcile(_ context.Context, rawLabel string, _ uint) (product.ReconcileResult, error) {
	if s.softFail {
		return product.ReconcileResult{}, nil
	}
	if id, ok := s.productsByLabel[rawLabel]; ok {
		return product.ReconcileResult{ProductID: &id, Matched: true}, nil
	}
	s.nextID++
	id := s.nextID
	if s.productsByLabel == nil {
		s.productsByLabel = map[string]uint{}
	}
	s.productsByLabel[rawLabel] = id
	s.created = append(s.created, rawLabel)
	return product.ReconcileResult{ProductID: &id, Matched: false}, nil
}

func (s *stubProductService) GetOrCreateProduct(_ context.Context, name string, _ *string) (uint, error) {
	s.nextID++
	return s.nextID, nil
}

type stubAwsS3 struct {
	uploads int
}

func (s *stubAwsS3) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	s.uploads++
	return folder + "/" + fileName, nil
}

func (s *stubAwsS3) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	s.uploads++
	return objectKey, nil
}

func (s *stubAwsS3) DeleteFile(string) error { return nil }

func (s *stubAwsS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.test.amazonaws.com/" + objectKey
}

func (s *stubAwsS3) GetObjectKeyFromLink(link string) string { return "" }

func newTestService(repo *fakeReceiptRepository) (ReceiptService, *stubProductService) {
	users := &stubUserService{
		usersByToken: map[string]uint{"firebase_uid_123": 123, "firebase_uid_456": 456},
		usersByEmail: map[string]*entities.User{},
	}
	shops := &stubShopService{
		shopsByName: map[string]shop.ResolvedShop{
			"Biedronka": {ShopID: 456, ParcelID: 789},
		},
	}
	products := &stubProductService{}
	return NewReceiptService(repo, users, shops, products, &stubAwsS3{}), products
}

func saveRequest() domain.SaveReceiptRequest {
	return domain.SaveReceiptRequest{
		StoreName: "Biedronka",
		Date:      "2024-01-01",
		Total:     9.00,
		Items: []domain.ReceiptItemRequest{
			{Name: "Mleko", Quantity: 2, Price: 3.50},
			{Name: "Chleb", Quantity: 1, Price: 2.00},
		},
	}
}

func TestSaveReceiptSuccess(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, _ := newTestService(repo)

	res, err := svc.SaveReceipt(context.Background(), saveRequest(), "firebase_uid_123")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if res.ReceiptID == 0 {
		t.Fatalf("expected a receipt id")
	}
	if len(repo.indexes) != 2 {
		t.Fatalf("expected 2 index rows, got %d", len(repo.indexes))
	}
	if len(repo.connects) != 2 {
		t.Fatalf("expected 2 association rows, got %d", len(repo.connects))
	}

	lines, _ := repo.GetReceiptLines(context.Background(), res.ReceiptID)
	quantities := map[string]float64{}
	prices := map[string]float64{}
	for _, line := range lines {
		quantities[line.Indeks] = line.Quantity
		prices[line.Indeks] = line.Price
		if line.ProductID == nil {
			t.Fatalf("line %q lost its product reference", line.Indeks)
		}
	}
	if quantities["Mleko"] != 2 || quantities["Chleb"] != 1 {
		t.Fatalf("unexpected quantities: %v", quantities)
	}
	// Index rows store the total line price, unit price times quantity.
	if prices["Mleko"] != 7.00 || prices["Chleb"] != 2.00 {
		t.Fatalf("unexpected line prices: %v", prices)
	}
}

func TestSaveReceiptSkipsZeroQuantityLines(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, _ := newTestService(repo)

	req := saveRequest()
	req.Items = append(req.Items, domain.ReceiptItemRequest{Name: "Zwrot", Quantity: 0, Price: 5.00})

	res, err := svc.SaveReceipt(context.Background(), req, "firebase_uid_123")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(repo.indexes) != 2 || len(repo.connects) != 2 {
		t.Fatalf("zero-quantity line must not produce rows: %d indexes, %d connects", len(repo.indexes), len(repo.connects))
	}

	lines, _ := repo.GetReceiptLines(context.Background(), res.ReceiptID)
	for _, line := range lines {
		if line.Indeks == "Zwrot" {
			t.Fatalf("zero-quantity line leaked into the receipt")
		}
	}
}

func TestSaveReceiptUnknownUser(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, _ := newTestService(repo)

	_, err := svc.SaveReceipt(context.Background(), saveRequest(), "unknown_uid")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(repo.receipts) != 0 {
		t.Fatalf("no rows may be written before user resolution")
	}
}

func TestSaveReceiptUnknownShopWritesNothing(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, _ := newTestService(repo)

	req := saveRequest()
	req.StoreName = "NieznanySklep"

	_, err := svc.SaveReceipt(context.Background(), req, "firebase_uid_123")
	if !errors.Is(err, domain.ErrShopNotFound) {
		t.Fatalf("expected ErrShopNotFound, got %v", err)
	}
	if len(repo.receipts) != 0 || len(repo.indexes) != 0 || len(repo.connects) != 0 {
		t.Fatalf("failed shop resolution must leave the store untouched")
	}
}

func TestSaveReceiptLineFailureRollsBackEverything(t *testing.T) {
	repo := newFakeReceiptRepository()
	repo.failIndexAfter = 2 // first line lands, second one fails
	svc, _ := newTestService(repo)

	_, err := svc.SaveReceipt(context.Background(), saveRequest(), "firebase_uid_123")
	if !errors.Is(err, domain.ErrLineWriteFailed) {
		t.Fatalf("expected ErrLineWriteFailed, got %v", err)
	}
	if len(repo.receipts) != 0 {
		t.Fatalf("header must be rolled back, got %d receipts", len(repo.receipts))
	}
	if len(repo.indexes) != 0 {
		t.Fatalf("index rows written during the attempt must be rolled back, got %d", len(repo.indexes))
	}

	_, err = svc.GetReceiptByID(context.Background(), 1001, "firebase_uid_123")
	if !errors.Is(err, domain.ErrReceiptNotFound) {
		t.Fatalf("rolled back receipt must read as not found, got %v", err)
	}
}

func TestSaveReceiptAssociationFailureRollsBackEverything(t *testing.T) {
	repo := newFakeReceiptRepository()
	repo.failConnect = true
	svc, _ := newTestService(repo)

	_, err := svc.SaveReceipt(context.Background(), saveRequest(), "firebase_uid_123")
	if !errors.Is(err, domain.ErrAssociationWriteFailed) {
		t.Fatalf("expected ErrAssociationWriteFailed, got %v", err)
	}
	if len(repo.receipts) != 0 || len(repo.indexes) != 0 || len(repo.connects) != 0 {
		t.Fatalf("association failure must remove every row of the attempt: %d receipts, %d indexes, %d connects",
			len(repo.receipts), len(repo.indexes), len(repo.connects))
	}
}

func TestSaveReceiptReconciliationSoftFailureDoesNotBlockSave(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, products := newTestService(repo)
	products.softFail = true

	res, err := svc.SaveReceipt(context.Background(), saveRequest(), "firebase_uid_123")
	if err != nil {
		t.Fatalf("reconciliation failure must not block the save: %v", err)
	}

	lines, _ := repo.GetReceiptLines(context.Background(), res.ReceiptID)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if line.ProductID != nil {
			t.Fatalf("expected nil product reference on soft failure")
		}
	}
}

func TestGetReceiptByIDHidesForeignReceipts(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, _ := newTestService(repo)

	res, err := svc.SaveReceipt(context.Background(), saveRequest(), "firebase_uid_123")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	_, err = svc.GetReceiptByID(context.Background(), res.ReceiptID, "firebase_uid_456")
	if !errors.Is(err, domain.ErrReceiptNotFound) {
		t.Fatalf("foreign receipt must read as not found, got %v", err)
	}

	// The owner still sees it.
	receipt, err := svc.GetReceiptByID(context.Background(), res.ReceiptID, "firebase_uid_123")
	if err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if receipt.ID != res.ReceiptID {
		t.Fatalf("expected receipt %d, got %d", res.ReceiptID, receipt.ID)
	}
}

func TestDeleteReceiptCascadeAndSecondDelete(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, _ := newTestService(repo)

	res, err := svc.SaveReceipt(context.Background(), saveRequest(), "firebase_uid_123")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := svc.DeleteReceipt(context.Background(), res.ReceiptID, "firebase_uid_123"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(repo.connects) != 0 {
		t.Fatalf("associations must be removed with the receipt")
	}
	if len(repo.indexes) != 2 {
		t.Fatalf("index rows are shared history and must survive deletion, got %d", len(repo.indexes))
	}

	err = svc.DeleteReceipt(context.Background(), res.ReceiptID, "firebase_uid_123")
	if !errors.Is(err, domain.ErrReceiptNotFound) {
		t.Fatalf("second delete must report not found, got %v", err)
	}
}

func TestDeleteReceiptForeignOwnerDenied(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, _ := newTestService(repo)

	res, err := svc.SaveReceipt(context.Background(), saveRequest(), "firebase_uid_123")
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	err = svc.DeleteReceipt(context.Background(), res.ReceiptID, "firebase_uid_456")
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(repo.receipts) != 1 {
		t.Fatalf("denied delete must leave the receipt in place")
	}
}

func TestGetUserReceiptsPagination(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, _ := newTestService(repo)

	for i := 0; i < 3; i++ {
		if _, err := svc.SaveReceipt(context.Background(), saveRequest(), "firebase_uid_123"); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	page1, err := svc.GetUserReceipts(context.Background(), "firebase_uid_123", 1, 2, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page1.TotalCount != 3 || page1.TotalPages != 2 {
		t.Fatalf("expected 3 receipts over 2 pages, got %d over %d", page1.TotalCount, page1.TotalPages)
	}
	if len(page1.Receipts) != 2 {
		t.Fatalf("expected 2 receipts on page 1, got %d", len(page1.Receipts))
	}

	page2, err := svc.GetUserReceipts(context.Background(), "firebase_uid_123", 2, 2, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page2.Receipts) != 1 {
		t.Fatalf("expected 1 receipt on page 2, got %d", len(page2.Receipts))
	}

	// Newest first.
	if page1.Receipts[0].ID < page1.Receipts[1].ID {
		t.Fatalf("expected descending order by creation")
	}
}

func TestGetReceiptsByDateRange(t *testing.T) {
	repo := newFakeReceiptRepository()
	svc, _ := newTestService(repo)

	req := saveRequest()
	req.Date = "2024-01-15"
	if _, err := svc.SaveReceipt(context.Background(), req, "firebase_uid_123"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	req.Date = "2024-03-02"
	if _, err := svc.SaveReceipt(context.Background(), req, "firebase_uid_123"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	receipts, err := svc.GetReceiptsByDateRange(context.Background(), "firebase_uid_123", "2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("date range failed: %v", err)
	}
	if len(receipts) != 1 || receipts[0].Date != "2024-01-15" {
		t.Fatalf("expected only the January receipt, got %+v", receipts)
	}

	if _, err := svc.GetReceiptsByDateRange(context.Background(), "firebase_uid_123", "2024-02-01", "2024-01-01"); !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}
