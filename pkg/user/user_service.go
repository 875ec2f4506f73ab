package user

import (
	"context"
	"errors"
	"strings"

	"scannsave-backend/domain"
	"scannsave-backend/entities"
	"scannsave-backend/pkg/jwt"

	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterUserRequest) (domain.RegisterUserResponse, error)
		Login(ctx context.Context, req domain.LoginUserRequest) (domain.LoginUserResponse, error)
		ResolveUserID(ctx context.Context, token string) (uint, error)
		ResolveUserByEmail(ctx context.Context, email string) (*entities.User, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterUserRequest) (domain.RegisterUserResponse, error) {
	if strings.TrimSpace(req.Token) == "" {
		return domain.RegisterUserResponse{}, domain.ErrEmptyToken
	}

	if _, err := s.userRepository.GetUserByToken(ctx, req.Token); err == nil {
		return domain.RegisterUserResponse{}, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RegisterUserResponse{}, err
	}

	user := &entities.User{
		Token: req.Token,
		Name:  req.Name,
		Email: req.Email,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterUserResponse{}, err
	}

	return domain.RegisterUserResponse{
		ID:    user.ID,
		Token: user.Token,
		Name:  user.Name,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginUserRequest) (domain.LoginUserResponse, error) {
	user, err := s.userRepository.GetUserByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginUserResponse{}, domain.ErrUserNotFound
		}
		return domain.LoginUserResponse{}, err
	}

	accessToken := s.jwtService.GenerateTokenUser(user.Token)
	return domain.LoginUserResponse{AccessToken: accessToken}, nil
}

// ResolveUserID maps an external provider token to the internal numeric
// identity. Users are resolved, never created, on the ingestion path.
func (s *userService) ResolveUserID(ctx context.Context, token string) (uint, error) {
	user, err := s.userRepository.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}
	return user.ID, nil
}

func (s *userService) ResolveUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
