package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetPasswordForEmail(email string) (string, int64, error) {
	var passwordHash string
	var userID int64
	query := `SELECT id, password_hash FROM users WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&userID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, fmt.Errorf("user not found")
		}
		return "", 0, err
	}
	return passwordHash, userID, nil
}

func (r *Repository) GetAdminPasswordForEmail(email string) (string, int64, error) {
	var passwordHash string
	var adminID int64
	query := `SELECT id, password_hash FROM admins WHERE email = ?`

	row := r.db.Raw(query, email).Row()
	if err := row.Scan(&adminID, &passwordHash); err != nil {
		if err == sql.ErrNoRows {
			return "", 0, fmt.Errorf("admin not found")
		}
		return "", 0, err
	}
	return passwordHash, adminID, nil
}

func (r *Repository) GetUserBasic(userID int64) (int64, string, error) {
	var id int64
	var email string
	query := `SELECT id, email FROM users WHERE id = ?`

	row := r.db.Raw(query, userID).Row()
	if err := row.Scan(&id, &email); err != nil {
		if err == sql.ErrNoRows {
			return 0, "", fmt.Errorf("user not found")
		}
		return 0, "", err
	}
	return id, email, nil
}

func (r *Repository) GetAdminBasic(adminID int64) (int64, string, error) {
	var id int64
	var email string
	query := `SELECT id, email FROM admins WHERE id = ?`

	row := r.db.Raw(query, adminID).Row()
	if err := row.Scan(&id, &email); err != nil {
		if err == sql.ErrNoRows {
			return 0, "", fmt.Errorf("admin not found")
		}
		return 0, "", err
	}
	return id, email, nil
}

func (r *Repository) GetRoleSlugsForUser(userID int64) ([]string, error) {
	query := `SELECT r.slug
	          FROM roles r
	          JOIN user_roles ur ON r.id = ur.role_id
	          WHERE ur.user_id = ?`

	return r.scanSlugs(query, userID)
}

// Permissions are granted to roles, never directly to users, so the lookup
// walks user_roles then role_permissions.
func (r *Repository) GetPermissionSlugsForUser(userID int64) ([]string, error) {
	query := `SELECT DISTINCT p.slug
	          FROM permissions p
	          JOIN role_permissions rp ON p.id = rp.permission_id
	          JOIN user_roles ur ON rp.role_id = ur.role_id
	          WHERE ur.user_id = ?`

	return r.scanSlugs(query, userID)
}

func (r *Repository) scanSlugs(query string, userID int64) ([]string, error) {
	rows, err := r.db.Raw(query, userID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}
