package postgres

import (
	rbacDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/rbac"
	userDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RBACRepository struct {
	db *gorm.DB
}

func NewRBACRepository(db *gorm.DB) *RBACRepository {
	return &RBACRepository{db: db}
}

func (r *RBACRepository) CreateRole(role *rbacDatamodel.Role) error {
	return r.db.Create(role).Error
}

func (r *RBACRepository) GetRoleByID(id int64) (*rbacDatamodel.Role, error) {
	var role rbacDatamodel.Role
	if err := r.db.First(&role, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RBACRepository) GetRoleBySlug(slug string) (*rbacDatamodel.Role, error) {
	var role rbacDatamodel.Role
	if err := r.db.First(&role, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *RBACRepository) GetAllRoles() ([]*rbacDatamodel.Role, error) {
	var roles []*rbacDatamodel.Role
	if err := r.db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RBACRepository) UpdateRole(role *rbacDatamodel.Role) error {
	return r.db.Save(role).Error
}

// DeleteRole removes the role together with its user assignments and
// permission grants in one transaction.
func (r *RBACRepository) DeleteRole(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).Delete(&rbacDatamodel.UserRole{}).Error; err != nil {
			return err
		}
		if err := tx.Where("role_id = ?", id).Delete(&rbacDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&rbacDatamodel.Role{}, "id = ?", id).Error
	})
}

func (r *RBACRepository) CreatePermission(perm *rbacDatamodel.Permission) error {
	return r.db.Create(perm).Error
}

func (r *RBACRepository) GetPermissionByID(id int64) (*rbacDatamodel.Permission, error) {
	var perm rbacDatamodel.Permission
	if err := r.db.First(&perm, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &perm, nil
}

func (r *RBACRepository) GetPermissionBySlug(slug string) (*rbacDatamodel.Permission, error) {
	var perm rbacDatamodel.Permission
	if err := r.db.First(&perm, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &perm, nil
}

func (r *RBACRepository) GetAllPermissions() ([]*rbacDatamodel.Permission, error) {
	var perms []*rbacDatamodel.Permission
	if err := r.db.Order("id ASC").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}

func (r *RBACRepository) DeletePermission(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("permission_id = ?", id).Delete(&rbacDatamodel.RolePermission{}).Error; err != nil {
			return err
		}
		return tx.Delete(&rbacDatamodel.Permission{}, "id = ?", id).Error
	})
}

// AssignRoleToUser inserts the join row, ignoring conflicts so repeated
// assignment stays idempotent.
func (r *RBACRepository) AssignRoleToUser(userID, roleID int64) error {
	assignment := rbacDatamodel.UserRole{UserID: userID, RoleID: roleID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment).Error
}

func (r *RBACRepository) RevokeRoleFromUser(userID, roleID int64) error {
	return r.db.Where("user_id = ? AND role_id = ?", userID, roleID).
		Delete(&rbacDatamodel.UserRole{}).Error
}

func (r *RBACRepository) GetRolesForUser(userID int64) ([]*rbacDatamodel.Role, error) {
	var roles []*rbacDatamodel.Role
	err := r.db.
		Joins("JOIN user_roles ur ON ur.role_id = roles.id").
		Where("ur.user_id = ?", userID).
		Order("roles.id ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *RBACRepository) UserExists(userID int64) (bool, error) {
	var count int64
	if err := r.db.Model(&userDatamodel.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GrantPermissionToRole inserts the join row, ignoring conflicts so
// repeated grants stay idempotent.
func (r *RBACRepository) GrantPermissionToRole(roleID, permissionID int64) error {
	grant := rbacDatamodel.RolePermission{RoleID: roleID, PermissionID: permissionID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error
}

func (r *RBACRepository) RevokePermissionFromRole(roleID, permissionID int64) error {
	return r.db.Where("role_id = ? AND permission_id = ?", roleID, permissionID).
		Delete(&rbacDatamodel.RolePermission{}).Error
}

func (r *RBACRepository) GetPermissionsForRole(roleID int64) ([]*rbacDatamodel.Permission, error) {
	var perms []*rbacDatamodel.Permission
	err := r.db.
		Joins("JOIN role_permissions rp ON rp.permission_id = permissions.id").
		Where("rp.role_id = ?", roleID).
		Order("permissions.id ASC").
		Find(&perms).Error
	if err != nil {
		return nil, err
	}
	return perms, nil
}
