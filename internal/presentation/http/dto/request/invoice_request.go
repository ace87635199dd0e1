package request

// InvoiceFilterRequest represents invoice list filter parameters
type InvoiceFilterRequest struct {
	Search        string `form:"search"`
	Status        string `form:"status"`
	PaymentMethod string `form:"payment_method"`
	OrderType     string `form:"order_type"`
	CashierID     string `form:"cashier_id"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
	Cursor        string `form:"cursor"`
	Limit         int    `form:"limit"` // For cursor-based pagination
}

// SalesReportRequest represents sales report filter parameters. Dates are
// YYYY-MM-DD in the requested time zone; the range includes both days.
type SalesReportRequest struct {
	From            string `form:"from"`
	To              string `form:"to"`
	PaymentMethod   string `form:"payment_method"`
	OrderType       string `form:"order_type"`
	CashierID       string `form:"cashier_id"`
	IncludeRefunded *bool  `form:"include_refunded"`
	TZ              string `form:"tz"`
}

// ProductFilterRequest represents catalog filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	ActiveOnly *bool  `form:"active_only"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
