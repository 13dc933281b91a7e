// internal/operator/operator_repo.go
package operator

import (
	"errors"

	"gorm.io/gorm"
)

// OperatorRepository defines the interface for operator account data operations.
type OperatorRepository interface {
	Create(op *Operator) error
	FindByUsername(username string) (*Operator, error)
	FindByID(id uint) (*Operator, error)
}

type operatorRepository struct {
	db *gorm.DB
}

// NewOperatorRepository creates a new instance of OperatorRepository.
func NewOperatorRepository(db *gorm.DB) OperatorRepository {
	return &operatorRepository{db: db}
}

func (r *operatorRepository) Create(op *Operator) error {
	return r.db.Create(op).Error
}

func (r *operatorRepository) FindByUsername(username string) (*Operator, error) {
	var op Operator
	if err := r.db.Where("username = ?", username).First(&op).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &op, nil
}

func (r *operatorRepository) FindByID(id uint) (*Operator, error) {
	var op Operator
	if err := r.db.First(&op, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &op, nil
}
