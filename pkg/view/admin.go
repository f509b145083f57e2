package view

import (
	"time"

	"github.com/kmoo25z/ameriduka/internal/modules/admin"
)

type Stats struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TodayRevenue     float64 `json:"today_revenue"`
	TotalOrders      int64   `json:"total_orders"`
	TodayOrders      int64   `json:"today_orders"`
	PendingOrders    int64   `json:"pending_orders"`
	TotalCustomers   int64   `json:"total_customers"`
	TotalProducts    int64   `json:"total_products"`
	LowStockProducts int64   `json:"low_stock_products"`
}

func FromStats(s admin.Stats) Stats {
	return Stats{
		TotalRevenue:     Dollars(s.TotalRevenueUSDCents),
		TodayRevenue:     Dollars(s.TodayRevenueUSDCents),
		TotalOrders:      s.TotalOrders,
		TodayOrders:      s.TodayOrders,
		PendingOrders:    s.PendingOrders,
		TotalCustomers:   s.TotalCustomers,
		TotalProducts:    s.TotalProducts,
		LowStockProducts: s.LowStockProducts,
	}
}

type Employee struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Role            string    `json:"role"`
	Department      string    `json:"department"`
	Salary          float64   `json:"salary"`
	CommissionRate  float64   `json:"commission_rate"`
	TotalSales      float64   `json:"total_sales"`
	TotalCommission float64   `json:"total_commission"`
	CreatedAt       time.Time `json:"created_at"`
}

func FromEmployee(e admin.Employee) Employee {
	return Employee{
		ID:              e.EmployeeID,
		UserID:          e.UserID,
		Email:           e.Email,
		Name:            e.Name,
		Phone:           e.Phone,
		Role:            e.Role,
		Department:      e.Department,
		Salary:          Dollars(e.SalaryCents),
		CommissionRate:  e.CommissionRate,
		TotalSales:      Dollars(e.TotalSalesCents),
		TotalCommission: Dollars(e.TotalCommissionCents),
		CreatedAt:       e.CreatedAt,
	}
}

func FromEmployees(es []admin.Employee) []Employee {
	out := make([]Employee, 0, len(es))
	for _, e := range es {
		out = append(out, FromEmployee(e))
	}
	return out
}

type Customer struct {
	User
	OrderCount int64   `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
}

func FromCustomer(c admin.CustomerSummary) Customer {
	return Customer{
		User:       FromUser(c.User),
		OrderCount: c.OrderCount,
		TotalSpent: Dollars(c.TotalSpentUSDCents),
	}
}

func FromCustomers(cs []admin.CustomerSummary) []Customer {
	out := make([]Customer, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromCustomer(c))
	}
	return out
}

type CustomerNote struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	AddedBy    string    `json:"added_by"`
	Note       string    `json:"note"`
	NoteType   string    `json:"note_type"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromCustomerNote(n admin.CustomerNote) CustomerNote {
	return CustomerNote{
		ID:         n.NoteID,
		CustomerID: n.CustomerID,
		AddedBy:    n.AddedBy,
		Note:       n.Note,
		NoteType:   n.NoteType,
		CreatedAt:  n.CreatedAt,
	}
}
