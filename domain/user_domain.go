package domain

import "errors"

var (
	MessageSuccessRegister = "user created successfully"
	MessageSuccessLogin    = "login successful"

	MessageFailedRegister = "failed to create user"
	MessageFailedLogin    = "failed to login"

	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this token already exists")
	ErrEmptyToken        = errors.New("token must not be empty")
)

type (
	RegisterUserRequest struct {
		Token string `json:"token" validate:"required"`
		Name  string `json:"name" validate:"required"`
		Email string `json:"email" validate:"omitempty,email"`
	}

	RegisterUserResponse struct {
		ID    uint   `json:"id"`
		Token string `json:"token"`
		Name  string `json:"name"`
	}

	LoginUserRequest struct {
		Token string `json:"token" validate:"required"`
	}

	LoginUserResponse struct {
		AccessToken string `json:"access_token"`
	}
)
