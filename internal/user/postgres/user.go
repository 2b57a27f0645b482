package postgres

import (
	"time"

	cartDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/cart"
	reviewDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/review"
	userDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/user"
	wishlistDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/wishlist"
	"github.com/frahmantamala/commerce-management/internal/user"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *userDatamodel.User) error {
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var u userDatamodel.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetAll(limit, offset int) ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) Update(u *userDatamodel.User) error {
	u.UpdatedAt = time.Now()
	return r.db.Save(u).Error
}

// Delete removes the user together with their cart, wishlist and reviews in
// one transaction so no orphaned rows survive.
func (r *UserRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var cart cartDatamodel.Cart
		err := tx.Where("user_id = ?", id).First(&cart).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return err
		}
		if err == nil {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&cartDatamodel.CartItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&cart).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&wishlistDatamodel.WishlistItem{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&reviewDatamodel.Review{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&userDatamodel.User{}).Error
	})
}
