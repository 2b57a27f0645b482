package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/commerce-management/internal/auth"
	"github.com/frahmantamala/commerce-management/internal/cart"
	"github.com/frahmantamala/commerce-management/internal/catalog"
	"github.com/frahmantamala/commerce-management/internal/order"
	"github.com/frahmantamala/commerce-management/internal/rbac"
	"github.com/frahmantamala/commerce-management/internal/review"
	"github.com/frahmantamala/commerce-management/internal/transport/middleware"
	"github.com/frahmantamala/commerce-management/internal/transport/swagger"
	"github.com/frahmantamala/commerce-management/internal/user"
	"github.com/frahmantamala/commerce-management/internal/wishlist"
	"github.com/go-chi/chi"
)

const (
	RoleClient         = "client"
	RoleProductManager = "product-manager"
	RoleOrderManager   = "order-manager"

	PermCreate = "create"
	PermRead   = "read"
	PermUpdate = "update"
	PermDelete = "delete"
)

type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	RBAC     *rbac.Handler
	Catalog  *catalog.Handler
	Cart     *cart.Handler
	Order    *order.Handler
	Review   *review.Handler
	Wishlist *wishlist.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)
	guard := auth.NewRBACAuthorization(logger)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogger)
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/admin/login", h.Auth.AdminLogin)
		})

		r.Post("/users/register", h.User.Register)

		// browsing is public
		r.Get("/categories", h.Catalog.GetCategories)
		r.Get("/products", h.Catalog.GetProducts)
		r.Get("/products/{id}", h.Catalog.GetProduct)
		r.Get("/products/{id}/reviews", h.Review.GetProductReviews)
		r.Get("/reviews/{id}", h.Review.GetReview)

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetProfile)

			pr.Route("/cart", func(cr chi.Router) {
				cr.Get("/", h.Cart.GetCart)
				cr.Post("/items", h.Cart.AddItem)
				cr.Put("/items/{productID}", h.Cart.SetItemQuantity)
				cr.Delete("/items/{productID}", h.Cart.RemoveItem)
				cr.Delete("/", h.Cart.ClearCart)
			})

			pr.Route("/orders", func(or chi.Router) {
				or.With(guard.RequireAccess(
					[]string{RoleClient, RoleOrderManager},
					[]string{PermCreate},
				)).Post("/", h.Order.PlaceOrder)
				or.Get("/", h.Order.GetMyOrders)
				or.Get("/{id}", h.Order.GetOrder)
				or.Post("/{id}/cancel", h.Order.CancelOrder)
			})

			pr.Post("/reviews", h.Review.CreateReview)
			pr.Put("/reviews/{id}", h.Review.UpdateReview)
			pr.Delete("/reviews/{id}", h.Review.DeleteReview)

			pr.Route("/wishlist", func(wr chi.Router) {
				wr.Get("/", h.Wishlist.GetWishlist)
				wr.Post("/", h.Wishlist.AddToWishlist)
				wr.Delete("/{productID}", h.Wishlist.RemoveFromWishlist)
			})

			// catalog management
			pr.Group(func(mr chi.Router) {
				mr.Use(guard.RequireRoles(RoleProductManager))

				mr.With(guard.RequirePermissions(PermCreate)).Post("/products", h.Catalog.CreateProduct)
				mr.With(guard.RequirePermissions(PermUpdate)).Put("/products/{id}", h.Catalog.UpdateProduct)
				mr.With(guard.RequirePermissions(PermDelete)).Delete("/products/{id}", h.Catalog.DeleteProduct)
				mr.With(guard.RequirePermissions(PermCreate)).Post("/products/{id}/images", h.Catalog.AddProductImage)
				mr.With(guard.RequirePermissions(PermDelete)).Delete("/products/{id}/images/{imageID}", h.Catalog.DeleteProductImage)
				mr.With(guard.RequirePermissions(PermCreate)).Post("/categories", h.Catalog.CreateCategory)
				mr.With(guard.RequirePermissions(PermUpdate)).Put("/categories/{id}", h.Catalog.UpdateCategory)
				mr.With(guard.RequirePermissions(PermDelete)).Delete("/categories/{id}", h.Catalog.DeleteCategory)
			})

			// order management
			pr.Group(func(mr chi.Router) {
				mr.Use(guard.RequireRoles(RoleOrderManager))

				mr.With(guard.RequirePermissions(PermRead)).Get("/admin/orders", h.Order.GetAllOrders)
				mr.With(guard.RequirePermissions(PermUpdate)).Put("/admin/orders/{id}/status", h.Order.UpdateOrderStatus)
			})

			// the roles/permissions graph itself is admin territory
			pr.Group(func(ar chi.Router) {
				ar.Use(guard.RequireAdmin())

				ar.Route("/admin/roles", func(rr chi.Router) {
					rr.Get("/", h.RBAC.GetRoles)
					rr.Post("/", h.RBAC.CreateRole)
					rr.Get("/{id}", h.RBAC.GetRole)
					rr.Put("/{id}", h.RBAC.UpdateRole)
					rr.Delete("/{id}", h.RBAC.DeleteRole)
					rr.Get("/{id}/permissions", h.RBAC.GetRolePermissions)
					rr.Post("/{id}/permissions", h.RBAC.GrantPermission)
					rr.Delete("/{id}/permissions/{permissionID}", h.RBAC.RevokePermission)
				})

				ar.Route("/admin/permissions", func(rr chi.Router) {
					rr.Get("/", h.RBAC.GetPermissions)
					rr.Post("/", h.RBAC.CreatePermission)
					rr.Delete("/{id}", h.RBAC.DeletePermission)
				})

				ar.Route("/admin/users", func(ur chi.Router) {
					ur.Get("/", h.User.GetUsers)
					ur.Get("/{id}", h.User.GetUser)
					ur.Put("/{id}", h.User.UpdateUser)
					ur.Delete("/{id}", h.User.DeleteUser)
					ur.Get("/{id}/roles", h.RBAC.GetUserRoles)
					ur.Post("/{id}/roles", h.RBAC.AssignRole)
					ur.Delete("/{id}/roles/{roleID}", h.RBAC.RevokeRole)
				})
			})
		})
	})
}
