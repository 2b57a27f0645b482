package postgres

import (
	"github.com/frahmantamala/commerce-management/internal"
	cartDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/cart"
	catalogDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/catalog"
	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
	"github.com/frahmantamala/commerce-management/internal/order"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetCartByUserID(userID int64) (*cartDatamodel.Cart, error) {
	var c cartDatamodel.Cart
	if err := r.db.First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func getCartLines(db *gorm.DB, cartID int64) ([]order.CartLine, error) {
	var lines []order.CartLine
	err := db.
		Table("cart_items ci").
		Select("ci.product_id AS product_id, ci.quantity AS quantity, p.price AS unit_price").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.cart_id = ?", cartID).
		Order("ci.created_at ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *OrderRepository) GetCartLines(cartID int64) ([]order.CartLine, error) {
	return getCartLines(r.db, cartID)
}

// PlaceOrder is the checkout transaction. The cart lines and product
// prices are read inside the transaction, so a quantity edit racing the
// checkout cannot leave a stale snapshot on the order. The conditional
// stock update is the concurrency guard: two checkouts racing for the
// last unit serialize on the row, and the loser matches zero rows. The
// cart-line delete count guards against the same cart being ordered
// twice.
func (r *OrderRepository) PlaceOrder(o *orderDatamodel.Order, cartID int64) ([]*orderDatamodel.OrderItem, error) {
	var items []*orderDatamodel.OrderItem
	err := r.db.Transaction(func(tx *gorm.DB) error {
		lines, err := getCartLines(tx, cartID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return internal.ErrEmptyCart
		}

		var total int64
		items = make([]*orderDatamodel.OrderItem, 0, len(lines))
		for _, line := range lines {
			total += line.UnitPrice * line.Quantity
			items = append(items, &orderDatamodel.OrderItem{
				ProductID:       line.ProductID,
				Quantity:        line.Quantity,
				PriceAtPurchase: line.UnitPrice,
			})
		}
		o.TotalAmount = total

		if err := tx.Create(o).Error; err != nil {
			return err
		}

		for _, item := range items {
			item.OrderID = o.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}

			res := tx.Model(&catalogDatamodel.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				Update("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return internal.ErrInsufficientStock
			}
		}

		res := tx.Where("cart_id = ?", cartID).Delete(&cartDatamodel.CartItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(items)) {
			return internal.ErrCartAlreadyOrdered
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CancelOrder restores stock from the item snapshot. The status-guarded
// update makes concurrent cancels of the same order safe: only one
// matches the pending row.
func (r *OrderRepository) CancelOrder(orderID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&orderDatamodel.Order{}).
			Where("id = ? AND status = ?", orderID, "pending").
			Update("status", "canceled")
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrInvalidTransition
		}

		var items []*orderDatamodel.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			err := tx.Model(&catalogDatamodel.Product{}).
				Where("id = ?", item.ProductID).
				Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// SetStatus is a compare-and-set out of pending, same guard as
// CancelOrder: a cancel that committed after the caller's read cannot
// be overwritten back into a live state.
func (r *OrderRepository) SetStatus(orderID int64, status string) error {
	res := r.db.Model(&orderDatamodel.Order{}).
		Where("id = ? AND status = ?", orderID, "pending").
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrInvalidTransition
	}
	return nil
}

func (r *OrderRepository) GetOrderByID(orderID int64) (*orderDatamodel.Order, error) {
	var o orderDatamodel.Order
	if err := r.db.First(&o, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(orderID, userID int64) (*orderDatamodel.Order, error) {
	var o orderDatamodel.Order
	if err := r.db.First(&o, "id = ? AND user_id = ?", orderID, userID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetItemsForOrder(orderID int64) ([]*orderDatamodel.OrderItem, error) {
	var items []*orderDatamodel.OrderItem
	if err := r.db.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *OrderRepository) GetOrdersForUser(userID int64) ([]*orderDatamodel.Order, error) {
	var orders []*orderDatamodel.Order
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) GetAllOrders(limit, offset int) ([]*orderDatamodel.Order, error) {
	var orders []*orderDatamodel.Order
	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
