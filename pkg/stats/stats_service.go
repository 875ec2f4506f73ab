package stats

import (
	"context"

	"scannsave-backend/domain"
	"scannsave-backend/pkg/user"
)

type (
	StatsService interface {
		ExpensesByCategory(ctx context.Context, userToken, startDate, endDate string) ([]domain.CategoryExpenseRow, error)
		ExpensesByShop(ctx context.Context, userToken, startDate, endDate string) ([]domain.ShopExpenseRow, error)
		ExpensesByMonth(ctx context.Context, userToken, startDate, endDate string) ([]domain.MonthExpenseRow, error)
		TotalExpenseSummary(ctx context.Context, userToken, startDate, endDate string) (domain.ExpenseSummaryRow, error)
	}

	statsService struct {
		statsRepository StatsRepository
		userService     user.UserService
	}
)

func NewStatsService(statsRepository StatsRepository, userService user.UserService) StatsService {
	return &statsService{
		statsRepository: statsRepository,
		userService:     userService,
	}
}

func (s *statsService) ExpensesByCategory(ctx context.Context, userToken, startDate, endDate string) ([]domain.CategoryExpenseRow, error) {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return nil, err
	}
	return s.statsRepository.ExpensesByCategory(ctx, userID, startDate, endDate)
}

func (s *statsService) ExpensesByShop(ctx context.Context, userToken, startDate, endDate string) ([]domain.ShopExpenseRow, error) {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return nil, err
	}
	return s.statsRepository.ExpensesByShop(ctx, userID, startDate, endDate)
}

func (s *statsService) ExpensesByMonth(ctx context.Context, userToken, startDate, endDate string) ([]domain.MonthExpenseRow, error) {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return nil, err
	}
	return s.statsRepository.ExpensesByMonth(ctx, userID, startDate, endDate)
}

func (s *statsService) TotalExpenseSummary(ctx context.Context, userToken, startDate, endDate string) (domain.ExpenseSummaryRow, error) {
	userID, err := s.userService.ResolveUserID(ctx, userToken)
	if err != nil {
		return domain.ExpenseSummaryRow{}, err
	}
	return s.statsRepository.TotalExpenseSummary(ctx, userID, startDate, endDate)
}
