package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlxDB.DB}), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			clearTables(db)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		adminEmail := "admin@mail.com"
		var exists int
		row := db.Raw("SELECT 1 FROM admins WHERE email = ?", adminEmail).Row()
		if err := row.Scan(&exists); err != nil {
			if err := db.Exec("INSERT INTO admins (email, fullname, password_hash, created_at) VALUES (?, ?, ?, now())", adminEmail, "Site Admin", string(hash)).Error; err != nil {
				log.Fatalf("failed to insert admin: %v", err)
			}
			fmt.Println("Seeded admin:", adminEmail)
		} else {
			fmt.Println("admin already exists")
		}

		users := []struct {
			Email string
			Name  string
		}{
			{"dina@mail.com", "Dina"},
			{"raka@mail.com", "Raka"},
			{"sari@mail.com", "Sari"},
		}

		for _, u := range users {
			row := db.Raw("SELECT 1 FROM users WHERE email = ?", u.Email).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO users (email, fullname, password_hash, created_at, updated_at) VALUES (?, ?, ?, now(), now())", u.Email, u.Name, string(hash)).Error; err != nil {
					log.Fatalf("failed to insert user %s: %v", u.Email, err)
				}
				fmt.Println("Seeded user:", u.Email)
			}
		}

		roles := []struct {
			Name string
			Slug string
			Desc string
		}{
			{"Client", "client", "regular customer"},
			{"Product Manager", "product-manager", "manages catalog, products and categories"},
			{"Order Manager", "order-manager", "views and updates customer orders"},
		}

		for _, r := range roles {
			row := db.Raw("SELECT 1 FROM roles WHERE slug = ?", r.Slug).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO roles (name, slug, description, created_at, updated_at) VALUES (?, ?, ?, now(), now())", r.Name, r.Slug, r.Desc).Error; err != nil {
					log.Fatalf("failed to insert role %s: %v", r.Slug, err)
				}
				fmt.Println("Seeded role:", r.Slug)
			}
		}

		permissions := []struct {
			Name string
			Slug string
			Desc string
		}{
			{"Create", "create", "Can create resources"},
			{"Read", "read", "Can read resources"},
			{"Update", "update", "Can update resources"},
			{"Delete", "delete", "Can delete resources"},
		}

		for _, p := range permissions {
			row := db.Raw("SELECT 1 FROM permissions WHERE slug = ?", p.Slug).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO permissions (name, slug, description, created_at) VALUES (?, ?, ?, now())", p.Name, p.Slug, p.Desc).Error; err != nil {
					log.Fatalf("failed to insert permission %s: %v", p.Slug, err)
				}
				fmt.Println("Seeded permission:", p.Slug)
			}
		}

		rolePermissions := map[string][]string{
			"client":          {"create", "read"},
			"product-manager": {"create", "read", "update", "delete"},
			"order-manager":   {"read", "update"},
		}

		for roleSlug, perms := range rolePermissions {
			var roleID int64
			if err := db.Raw("SELECT id FROM roles WHERE slug = ?", roleSlug).Row().Scan(&roleID); err != nil {
				log.Fatalf("role not found after insert %s: %v", roleSlug, err)
			}

			for _, permSlug := range perms {
				var permID int64
				if err := db.Raw("SELECT id FROM permissions WHERE slug = ?", permSlug).Row().Scan(&permID); err != nil {
					log.Fatalf("permission not found after insert %s: %v", permSlug, err)
				}

				if err := db.Raw("SELECT 1 FROM role_permissions WHERE role_id = ? AND permission_id = ?", roleID, permID).Row().Scan(&exists); err == nil {
					continue
				}

				if err := db.Exec("INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)", roleID, permID).Error; err != nil {
					log.Fatalf("failed to grant %s to role %s: %v", permSlug, roleSlug, err)
				}
			}
		}

		fmt.Println("Role permissions seeded")

		userRoles := map[string]string{
			"dina@mail.com": "client",
			"raka@mail.com": "product-manager",
			"sari@mail.com": "order-manager",
		}

		for email, roleSlug := range userRoles {
			var userID, roleID int64
			if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&userID); err != nil {
				log.Fatalf("user not found after insert %s: %v", email, err)
			}
			if err := db.Raw("SELECT id FROM roles WHERE slug = ?", roleSlug).Row().Scan(&roleID); err != nil {
				log.Fatalf("role not found %s: %v", roleSlug, err)
			}

			if err := db.Raw("SELECT 1 FROM user_roles WHERE user_id = ? AND role_id = ?", userID, roleID).Row().Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec("INSERT INTO user_roles (user_id, role_id) VALUES (?, ?)", userID, roleID).Error; err != nil {
				log.Fatalf("failed to assign role %s to %s: %v", roleSlug, email, err)
			}
			fmt.Printf("Assigned role %s to %s\n", roleSlug, email)
		}

		categories := []struct {
			Name string
			Slug string
		}{
			{"Electronics", "electronics"},
			{"Books", "books"},
			{"Apparel", "apparel"},
		}

		for _, c := range categories {
			row := db.Raw("SELECT 1 FROM categories WHERE slug = ?", c.Slug).Row()
			if err := row.Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO categories (name, slug, created_at, updated_at) VALUES (?, ?, now(), now())", c.Name, c.Slug).Error; err != nil {
					log.Fatalf("failed to insert category %s: %v", c.Slug, err)
				}
				fmt.Println("Seeded category:", c.Slug)
			}
		}

		products := []struct {
			Title        string
			Slug         string
			Desc         string
			Price        int64
			Stock        int64
			SKU          string
			CategorySlug string
		}{
			{"Wireless Keyboard", "wireless-keyboard", "low profile wireless keyboard", 450000, 25, "ELC-001", "electronics"},
			{"USB-C Hub", "usb-c-hub", "7-in-1 usb-c hub", 320000, 40, "ELC-002", "electronics"},
			{"The Go Programming Language", "the-go-programming-language", "donovan and kernighan", 550000, 12, "BKS-001", "books"},
			{"Plain White Tee", "plain-white-tee", "100% cotton", 95000, 100, "APL-001", "apparel"},
		}

		for _, p := range products {
			row := db.Raw("SELECT 1 FROM products WHERE slug = ?", p.Slug).Row()
			if err := row.Scan(&exists); err != nil {
				var categoryID int64
				if err := db.Raw("SELECT id FROM categories WHERE slug = ?", p.CategorySlug).Row().Scan(&categoryID); err != nil {
					log.Fatalf("category not found %s: %v", p.CategorySlug, err)
				}

				if err := db.Exec("INSERT INTO products (title, slug, description, price, stock, sku, category_id, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, true, now(), now())",
					p.Title, p.Slug, p.Desc, p.Price, p.Stock, p.SKU, categoryID).Error; err != nil {
					log.Fatalf("failed to insert product %s: %v", p.Slug, err)
				}
				fmt.Println("Seeded product:", p.Slug)
			}
		}

		fmt.Println("Database seeded successfully")
	},
}

// clearTables truncates seed-owned tables, child tables first.
func clearTables(db *gorm.DB) {
	tables := []string{
		"order_items", "orders",
		"cart_items", "carts",
		"reviews", "wishlists",
		"product_images", "products", "categories",
		"role_permissions", "user_roles", "permissions", "roles",
		"users", "admins",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", t, err)
		}
	}
	fmt.Println("Cleared existing data")
}
