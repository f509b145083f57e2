package view

import (
	"time"

	"github.com/kmoo25z/ameriduka/internal/modules/reviews"
)

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func FromReview(r reviews.Review) Review {
	return Review{
		ID:        r.ReviewID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func FromReviews(rs []reviews.Review) []Review {
	out := make([]Review, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromReview(r))
	}
	return out
}
