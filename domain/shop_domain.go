package domain

import "errors"

var (
	MessageSuccessGetShops = "shops retrieved successfully"
	MessageFailedGetShops  = "failed to retrieve shops"

	ErrShopNotFound       = errors.New("shop does not exist in the database")
	ErrShopParcelNotFound = errors.New("shop has no parcel in the database")
)

type (
	ShopResponse struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
)
