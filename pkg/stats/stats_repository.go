package stats

import (
	"context"

	"scannsave-backend/domain"

	"gorm.io/gorm"
)

// Rollups live in SQL functions provisioned with the schema; this repository
// only invokes them and scans the rows.
type (
	StatsRepository interface {
		ExpensesByCategory(ctx context.Context, userID uint, startDate, endDate string) ([]domain.CategoryExpenseRow, error)
		ExpensesByShop(ctx context.Context, userID uint, startDate, endDate string) ([]domain.ShopExpenseRow, error)
		ExpensesByMonth(ctx context.Context, userID uint, startDate, endDate string) ([]domain.MonthExpenseRow, error)
		TotalExpenseSummary(ctx context.Context, userID uint, startDate, endDate string) (domain.ExpenseSummaryRow, error)
	}

	statsRepository struct {
		db *gorm.DB
	}
)

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) ExpensesByCategory(ctx context.Context, userID uint, startDate, endDate string) ([]domain.CategoryExpenseRow, error) {
	var rows []domain.CategoryExpenseRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM expenses_by_category(?, ?, ?)", userID, startDate, endDate).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) ExpensesByShop(ctx context.Context, userID uint, startDate, endDate string) ([]domain.ShopExpenseRow, error) {
	var rows []domain.ShopExpenseRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM expenses_by_shop(?, ?, ?)", userID, startDate, endDate).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) ExpensesByMonth(ctx context.Context, userID uint, startDate, endDate string) ([]domain.MonthExpenseRow, error) {
	var rows []domain.MonthExpenseRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM expenses_by_month(?, ?, ?)", userID, startDate, endDate).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *statsRepository) TotalExpenseSummary(ctx context.Context, userID uint, startDate, endDate string) (domain.ExpenseSummaryRow, error) {
	var row domain.ExpenseSummaryRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM total_expense_summary(?, ?, ?)", userID, startDate, endDate).
		Scan(&row).Error; err != nil {
		return domain.ExpenseSummaryRow{}, err
	}
	return row, nil
}
