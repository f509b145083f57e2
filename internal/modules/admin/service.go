package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
	"github.com/kmoo25z/ameriduka/internal/modules/orders"
	"github.com/kmoo25z/ameriduka/internal/modules/payments"
	"github.com/kmoo25z/ameriduka/internal/modules/users"
)

type Service struct {
	db      *gorm.DB
	catalog *catalog.Repo
}

func NewService(db *gorm.DB, cat *catalog.Repo) *Service {
	return &Service{db: db, catalog: cat}
}

type Stats struct {
	TotalRevenueUSDCents int64
	TodayRevenueUSDCents int64
	TotalOrders          int64
	TodayOrders          int64
	PendingOrders        int64
	TotalCustomers       int64
	TotalProducts        int64
	LowStockProducts     int64
}

// Stats aggregates the dashboard numbers. Revenue counts only settled
// transactions; an initiated or failed attempt is not money.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	db := s.db.WithContext(ctx)
	startOfDay := time.Now().UTC().Truncate(24 * time.Hour)

	if err := db.Model(&payments.Transaction{}).
		Where("payment_status = ?", payments.StatusCompleted).
		Select("COALESCE(SUM(amount_usd_cents), 0)").
		Scan(&st.TotalRevenueUSDCents).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Model(&payments.Transaction{}).
		Where("payment_status = ? AND updated_at >= ?", payments.StatusCompleted, startOfDay).
		Select("COALESCE(SUM(amount_usd_cents), 0)").
		Scan(&st.TodayRevenueUSDCents).Error; err != nil {
		return Stats{}, err
	}

	if err := db.Model(&orders.Order{}).Count(&st.TotalOrders).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Model(&orders.Order{}).
		Where("created_at >= ?", startOfDay).
		Count(&st.TodayOrders).Error; err != nil {
		return Stats{}, err
	}
	if err := db.Model(&orders.Order{}).
		Where("status = ?", orders.StatusPending).
		Count(&st.PendingOrders).Error; err != nil {
		return Stats{}, err
	}

	if err := db.Model(&users.User{}).
		Where("role = ?", users.RoleCustomer).
		Count(&st.TotalCustomers).Error; err != nil {
		return Stats{}, err
	}

	var err error
	if st.TotalProducts, err = s.catalog.Count(ctx); err != nil {
		return Stats{}, err
	}
	if st.LowStockProducts, err = s.catalog.CountLowStock(ctx); err != nil {
		return Stats{}, err
	}
	return st, nil
}

type EmployeeInput struct {
	UserID         string
	Email          string
	Name           string
	Phone          string
	Role           string
	Department     string
	SalaryCents    int64
	CommissionRate float64
}

func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (Employee, error) {
	e := Employee{
		EmployeeID:     "emp_" + uuid.NewString()[:12],
		UserID:         in.UserID,
		Email:          in.Email,
		Name:           in.Name,
		Phone:          in.Phone,
		Role:           in.Role,
		Department:     in.Department,
		SalaryCents:    in.SalaryCents,
		CommissionRate: in.CommissionRate,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return Employee{}, err
	}
	return e, nil
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	var out []Employee
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

type CustomerSummary struct {
	users.User
	OrderCount         int64
	TotalSpentUSDCents int64
}

// ListCustomers enriches each customer with their order count and lifetime
// spend over paid orders.
func (s *Service) ListCustomers(ctx context.Context) ([]CustomerSummary, error) {
	var custs []users.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", users.RoleCustomer).
		Order("created_at DESC").
		Find(&custs).Error; err != nil {
		return nil, err
	}

	out := make([]CustomerSummary, 0, len(custs))
	for _, u := range custs {
		cs := CustomerSummary{User: u}
		if err := s.db.WithContext(ctx).Model(&orders.Order{}).
			Where("user_id = ?", u.UserID).
			Count(&cs.OrderCount).Error; err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(&orders.Order{}).
			Where("user_id = ? AND payment_status = ?", u.UserID, orders.PaymentCompleted).
			Select("COALESCE(SUM(total_usd_cents), 0)").
			Scan(&cs.TotalSpentUSDCents).Error; err != nil {
			return nil, err
		}
		out = append(out, cs)
	}
	return out, nil
}

type NoteInput struct {
	CustomerID string
	AddedBy    string
	Note       string
	NoteType   string
}

func (s *Service) AddCustomerNote(ctx context.Context, in NoteInput) (CustomerNote, error) {
	if in.NoteType == "" {
		in.NoteType = "general"
	}
	n := CustomerNote{
		NoteID:     "note_" + uuid.NewString()[:12],
		CustomerID: in.CustomerID,
		AddedBy:    in.AddedBy,
		Note:       in.Note,
		NoteType:   in.NoteType,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return CustomerNote{}, err
	}
	return n, nil
}

func (s *Service) ListCustomerNotes(ctx context.Context, customerID string) ([]CustomerNote, error) {
	var out []CustomerNote
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
