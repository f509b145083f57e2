package promos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("promo code not found")
	ErrInactive        = errors.New("promo code is not active")
	ErrExpired         = errors.New("promo code has expired")
	ErrExhausted       = errors.New("promo code usage limit reached")
	ErrInvalidDiscount = errors.New("discount must be between 1 and 100 percent")
	ErrCodeTaken       = errors.New("promo code already exists")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Code             string
	DiscountPercent  int
	MaxUses          int
	ValidUntil       time.Time
	MinOrderUSDCents int64
}

// Create registers a new code. Codes are stored uppercase so lookup is
// case-insensitive.
func (s *Service) Create(ctx context.Context, in CreateInput) (PromoCode, error) {
	if in.DiscountPercent < 1 || in.DiscountPercent > 100 {
		return PromoCode{}, ErrInvalidDiscount
	}

	p := PromoCode{
		PromoID:          "promo_" + uuid.NewString()[:12],
		Code:             strings.ToUpper(strings.TrimSpace(in.Code)),
		DiscountPercent:  in.DiscountPercent,
		MaxUses:          in.MaxUses,
		ValidUntil:       in.ValidUntil.UTC(),
		MinOrderUSDCents: in.MinOrderUSDCents,
		Active:           true,
		CreatedAt:        time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Create(&p).Error
	if err != nil {
		if msg := strings.ToLower(err.Error()); strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return PromoCode{}, ErrCodeTaken
		}
		return PromoCode{}, err
	}
	return p, nil
}

// Validate reports whether the code can currently be applied. It does not
// consume a use; Redeem does.
func (s *Service) Validate(ctx context.Context, code string) (PromoCode, error) {
	var p PromoCode
	err := s.db.WithContext(ctx).
		First(&p, "code = ?", strings.ToUpper(strings.TrimSpace(code))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return PromoCode{}, ErrNotFound
	}
	if err != nil {
		return PromoCode{}, err
	}

	switch {
	case !p.Active:
		return PromoCode{}, ErrInactive
	case time.Now().UTC().After(p.ValidUntil):
		return PromoCode{}, ErrExpired
	case p.MaxUses > 0 && p.UsesCount >= p.MaxUses:
		return PromoCode{}, ErrExhausted
	}
	return p, nil
}

// Redeem consumes one use with a conditional increment, so the max_uses cap
// holds under concurrent redemptions.
func (s *Service) Redeem(ctx context.Context, code string) error {
	if _, err := s.Validate(ctx, code); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Model(&PromoCode{}).
		Where("code = ? AND active = ? AND (max_uses = 0 OR uses_count < max_uses)",
			strings.ToUpper(strings.TrimSpace(code)), true).
		UpdateColumn("uses_count", gorm.Expr("uses_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrExhausted
	}
	return nil
}

// List returns all codes, newest first.
func (s *Service) List(ctx context.Context) ([]PromoCode, error) {
	var out []PromoCode
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}
