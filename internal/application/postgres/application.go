package postgres

import (
	"gorm.io/gorm"

	applicationpkg "github.com/frahmantamala/loanlink/internal/application"
	appDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/application"
)

// ApplicationRepository implements the application.Repository interface using GORM
type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) applicationpkg.Repository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(a *appDatamodel.Application) error {
	return r.db.Create(a).Error
}

func (r *ApplicationRepository) GetByID(id string) (*appDatamodel.Application, error) {
	var a appDatamodel.Application
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepository) GetByBorrower(email string) ([]*appDatamodel.Application, error) {
	var apps []*appDatamodel.Application
	err := r.db.Where("borrower_email = ?", email).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) GetPendingByBorrower(email string) ([]*appDatamodel.Application, error) {
	var apps []*appDatamodel.Application
	err := r.db.Where("borrower_email = ? AND status = ?", email, appDatamodel.StatusPending).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}
