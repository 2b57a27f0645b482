package postgres_test

import (
	"strconv"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/commerce-management/internal"
	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
	"github.com/frahmantamala/commerce-management/internal/order/postgres"
)

func TestOrderRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Order Repository Suite")
}

// SQLite-compatible models for testing; the production datamodels carry
// `default:now()` column defaults that SQLite cannot parse.
type SQLiteProduct struct {
	ID        int64     `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	Price     int64     `gorm:"not null"`
	Stock     int64     `gorm:"not null"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteProduct) TableName() string {
	return "products"
}

type SQLiteCart struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (SQLiteCart) TableName() string {
	return "carts"
}

type SQLiteCartItem struct {
	CartID    int64     `gorm:"column:cart_id;primaryKey"`
	ProductID int64     `gorm:"column:product_id;primaryKey"`
	Quantity  int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteCartItem) TableName() string {
	return "cart_items"
}

type SQLiteOrder struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null"`
	TotalAmount   int64     `gorm:"column:total_amount;not null"`
	Status        string    `gorm:"not null"`
	Address       string    `gorm:"not null"`
	PaymentMethod string    `gorm:"column:payment_method;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (SQLiteOrder) TableName() string {
	return "orders"
}

type SQLiteOrderItem struct {
	ID              int64 `gorm:"primaryKey"`
	OrderID         int64 `gorm:"column:order_id;not null;index"`
	ProductID       int64 `gorm:"column:product_id;not null"`
	Quantity        int64 `gorm:"not null"`
	PriceAtPurchase int64 `gorm:"column:price_at_purchase;not null"`
}

func (SQLiteOrderItem) TableName() string {
	return "order_items"
}

var _ = Describe("OrderRepository", func() {
	var (
		db   *gorm.DB
		repo *postgres.OrderRepository
	)

	const userID = int64(42)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&SQLiteProduct{},
			&SQLiteCart{},
			&SQLiteCartItem{},
			&SQLiteOrder{},
			&SQLiteOrderItem{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = postgres.NewOrderRepository(db)
	})

	seedProduct := func(id, price, stock int64) {
		Expect(db.Create(&SQLiteProduct{
			ID: id, Title: "p", Slug: slugFor(id), Price: price, Stock: stock, IsActive: true,
		}).Error).To(Succeed())
	}

	seedCart := func(items ...SQLiteCartItem) int64 {
		c := SQLiteCart{UserID: userID}
		Expect(db.Create(&c).Error).To(Succeed())
		for i := range items {
			items[i].CartID = c.ID
			Expect(db.Create(&items[i]).Error).To(Succeed())
		}
		return c.ID
	}

	productStock := func(id int64) int64 {
		var p SQLiteProduct
		Expect(db.First(&p, "id = ?", id).Error).To(Succeed())
		return p.Stock
	}

	newOrder := func() *orderDatamodel.Order {
		return &orderDatamodel.Order{
			UserID: userID, Status: "pending",
			Address: "1 Main St", PaymentMethod: "card",
		}
	}

	Describe("GetCartLines", func() {
		It("joins cart items with current product prices", func() {
			seedProduct(1, 1500, 10)
			seedProduct(2, 2500, 5)
			cartID := seedCart(
				SQLiteCartItem{ProductID: 1, Quantity: 2, CreatedAt: time.Now()},
				SQLiteCartItem{ProductID: 2, Quantity: 1, CreatedAt: time.Now().Add(time.Second)},
			)

			lines, err := repo.GetCartLines(cartID)
			Expect(err).NotTo(HaveOccurred())
			Expect(lines).To(HaveLen(2))
			Expect(lines[0].UnitPrice).To(Equal(int64(1500)))
			Expect(lines[1].UnitPrice).To(Equal(int64(2500)))
		})
	})

	Describe("PlaceOrder", func() {
		It("snapshots the cart, decrements stock and clears the lines", func() {
			seedProduct(1, 1500, 10)
			cartID := seedCart(SQLiteCartItem{ProductID: 1, Quantity: 2})

			o := newOrder()
			items, err := repo.PlaceOrder(o, cartID)
			Expect(err).NotTo(HaveOccurred())
			Expect(o.ID).NotTo(BeZero())
			Expect(o.TotalAmount).To(Equal(int64(3000)))

			Expect(productStock(1)).To(Equal(int64(8)))

			var remaining int64
			Expect(db.Model(&SQLiteCartItem{}).Where("cart_id = ?", cartID).Count(&remaining).Error).To(Succeed())
			Expect(remaining).To(BeZero())

			Expect(items).To(HaveLen(1))
			Expect(items[0].PriceAtPurchase).To(Equal(int64(1500)))

			stored, err := repo.GetItemsForOrder(o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(HaveLen(1))
		})

		It("rejects an empty cart without creating an order", func() {
			cartID := seedCart()

			_, err := repo.PlaceOrder(newOrder(), cartID)
			Expect(err).To(MatchError(internal.ErrEmptyCart))

			var orderCount int64
			Expect(db.Model(&SQLiteOrder{}).Count(&orderCount).Error).To(Succeed())
			Expect(orderCount).To(BeZero())
		})

		It("charges the quantities as of the transaction, not an earlier read", func() {
			seedProduct(1, 1500, 10)
			cartID := seedCart(SQLiteCartItem{ProductID: 1, Quantity: 2})

			// a caller's pre-read goes stale when the line is edited
			// before checkout commits
			stale, err := repo.GetCartLines(cartID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stale[0].Quantity).To(Equal(int64(2)))

			Expect(db.Model(&SQLiteCartItem{}).
				Where("cart_id = ? AND product_id = ?", cartID, 1).
				Update("quantity", 3).Error).To(Succeed())

			o := newOrder()
			items, err := repo.PlaceOrder(o, cartID)
			Expect(err).NotTo(HaveOccurred())
			Expect(items[0].Quantity).To(Equal(int64(3)))
			Expect(o.TotalAmount).To(Equal(int64(4500)))
			Expect(productStock(1)).To(Equal(int64(7)))
		})

		It("rolls back entirely when any line lacks stock", func() {
			seedProduct(1, 1500, 10)
			seedProduct(2, 2500, 1)
			cartID := seedCart(
				SQLiteCartItem{ProductID: 1, Quantity: 2},
				SQLiteCartItem{ProductID: 2, Quantity: 3},
			)

			_, err := repo.PlaceOrder(newOrder(), cartID)
			Expect(err).To(MatchError(internal.ErrInsufficientStock))

			// first line's decrement must have been rolled back
			Expect(productStock(1)).To(Equal(int64(10)))
			Expect(productStock(2)).To(Equal(int64(1)))

			var orderCount int64
			Expect(db.Model(&SQLiteOrder{}).Count(&orderCount).Error).To(Succeed())
			Expect(orderCount).To(BeZero())

			var remaining int64
			Expect(db.Model(&SQLiteCartItem{}).Where("cart_id = ?", cartID).Count(&remaining).Error).To(Succeed())
			Expect(remaining).To(Equal(int64(2)))
		})
	})

	Describe("CancelOrder", func() {
		place := func() *orderDatamodel.Order {
			seedProduct(1, 1500, 10)
			cartID := seedCart(SQLiteCartItem{ProductID: 1, Quantity: 4})
			o := newOrder()
			_, err := repo.PlaceOrder(o, cartID)
			Expect(err).NotTo(HaveOccurred())
			return o
		}

		It("flips the status and restores stock", func() {
			o := place()
			Expect(productStock(1)).To(Equal(int64(6)))

			Expect(repo.CancelOrder(o.ID)).To(Succeed())

			stored, err := repo.GetOrderByID(o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal("canceled"))
			Expect(productStock(1)).To(Equal(int64(10)))
		})

		It("restores stock exactly once across repeated cancels", func() {
			o := place()

			Expect(repo.CancelOrder(o.ID)).To(Succeed())
			Expect(repo.CancelOrder(o.ID)).To(MatchError(internal.ErrInvalidTransition))

			Expect(productStock(1)).To(Equal(int64(10)))
		})

		It("refuses to cancel a delivered order", func() {
			o := place()
			Expect(repo.SetStatus(o.ID, "delivered")).To(Succeed())

			Expect(repo.CancelOrder(o.ID)).To(MatchError(internal.ErrInvalidTransition))
			Expect(productStock(1)).To(Equal(int64(6)))
		})
	})

	Describe("SetStatus", func() {
		place := func() *orderDatamodel.Order {
			seedProduct(1, 1500, 10)
			cartID := seedCart(SQLiteCartItem{ProductID: 1, Quantity: 4})
			o := newOrder()
			_, err := repo.PlaceOrder(o, cartID)
			Expect(err).NotTo(HaveOccurred())
			return o
		}

		It("moves a pending order to delivered", func() {
			o := place()

			Expect(repo.SetStatus(o.ID, "delivered")).To(Succeed())

			stored, err := repo.GetOrderByID(o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal("delivered"))
		})

		It("refuses to deliver an order that was canceled in between", func() {
			o := place()
			Expect(repo.CancelOrder(o.ID)).To(Succeed())

			err := repo.SetStatus(o.ID, "delivered")
			Expect(err).To(MatchError(internal.ErrInvalidTransition))

			// the canceled order keeps its state and its restored stock
			stored, err := repo.GetOrderByID(o.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Status).To(Equal("canceled"))
			Expect(productStock(1)).To(Equal(int64(10)))
		})
	})

	Describe("queries", func() {
		It("scopes GetOrderForUser to the owner", func() {
			seedProduct(1, 100, 10)
			cartID := seedCart(SQLiteCartItem{ProductID: 1, Quantity: 1})
			o := newOrder()
			_, err := repo.PlaceOrder(o, cartID)
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.GetOrderForUser(o.ID, userID+1)
			Expect(err).To(MatchError(gorm.ErrRecordNotFound))

			found, err := repo.GetOrderForUser(o.ID, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.TotalAmount).To(Equal(int64(100)))
		})
	})
})

func slugFor(id int64) string {
	return "p-" + strconv.FormatInt(id, 10)
}
