package reviews

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kmoo25z/ameriduka/internal/modules/catalog"
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrAlreadyExists  = errors.New("product already reviewed by this user")
	ErrUnknownProduct = catalog.ErrNotFound
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	ProductID string
	UserID    string
	UserName  string
	Rating    int
	Comment   string
}

// Create writes one review per user per product and folds the new rating
// into the product's aggregate in the same transaction, so the aggregate
// always equals the mean over the reviews table.
func (s *Service) Create(ctx context.Context, in CreateInput) (Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return Review{}, ErrInvalidRating
	}

	r := Review{
		ReviewID:  "rev_" + uuid.NewString()[:12],
		ProductID: in.ProductID,
		UserID:    in.UserID,
		UserName:  in.UserName,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p catalog.Product
		err := tx.WithContext(ctx).First(&p, "product_id = ?", in.ProductID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownProduct
		}
		if err != nil {
			return err
		}

		var count int64
		if err := tx.WithContext(ctx).Model(&Review{}).
			Where("product_id = ? AND user_id = ?", in.ProductID, in.UserID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}

		if err := tx.WithContext(ctx).Create(&r).Error; err != nil {
			return err
		}

		newCount := p.ReviewCount + 1
		newRating := (p.Rating*float64(p.ReviewCount) + float64(in.Rating)) / float64(newCount)
		return tx.WithContext(ctx).Model(&catalog.Product{}).
			Where("product_id = ?", in.ProductID).
			Updates(map[string]any{
				"rating":       newRating,
				"review_count": newCount,
			}).Error
	})
	if err != nil {
		return Review{}, err
	}
	return r, nil
}

// ListByProduct returns a product's reviews, newest first.
func (s *Service) ListByProduct(ctx context.Context, productID string) ([]Review, error) {
	var out []Review
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}
