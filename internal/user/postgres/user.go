package postgres

import (
	"time"

	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/loanlink/internal/core/datamodel/user"
	userpkg "github.com/frahmantamala/loanlink/internal/user"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) userpkg.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

// TouchLogin moves last_logged_in and nothing else.
func (r *UserRepository) TouchLogin(email string, at time.Time) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("email = ?", email).
		UpdateColumn("last_logged_in", at).Error
}

func (r *UserRepository) ListExcept(email string) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Where("email <> ?", email).
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateRole(email, role string) (int64, error) {
	res := r.db.Model(&userDatamodel.User{}).
		Where("email = ?", email).
		UpdateColumn("role", role)
	return res.RowsAffected, res.Error
}
