package storage

import (
	"context"

	"github.com/estebancatanoe/IngenieriaWeb/internal/models"

	"gorm.io/gorm"
)

// LoanStore only serves reads; loan rows are written by the hand-over desk,
// outside this service.
type LoanStore struct {
	db *gorm.DB
}

func NewLoanStore(db *gorm.DB) *LoanStore {
	return &LoanStore{db: db}
}

func (s *LoanStore) FindByReservation(ctx context.Context, reservationID uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := s.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("id asc").
		Find(&loans).Error
	if err != nil {
		return nil, err
	}
	return loans, nil
}
