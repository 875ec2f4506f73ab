package domain

var (
	MessageSuccessGetStats = "statistics retrieved successfully"
	MessageFailedGetStats  = "failed to retrieve statistics"
)

type (
	CategoryExpenseRow struct {
		CategoryName string  `json:"category_name"`
		Total        float64 `json:"total"`
	}

	ShopExpenseRow struct {
		ShopName string  `json:"shop_name"`
		Total    float64 `json:"total"`
	}

	MonthExpenseRow struct {
		Month string  `json:"month"`
		Total float64 `json:"total"`
	}

	ExpenseSummaryRow struct {
		Total        float64 `json:"total"`
		ReceiptCount int64   `json:"receipt_count"`
	}
)
