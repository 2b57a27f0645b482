package review_test

import (
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/frahmantamala/commerce-management/internal"
	reviewDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/review"
	"github.com/frahmantamala/commerce-management/internal/review"
)

func TestReviewService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Review Service Suite")
}

type mockReviewRepository struct {
	reviews  map[int64]*reviewDatamodel.Review
	products map[int64]bool
	nextID   int64
}

func newMockReviewRepository() *mockReviewRepository {
	return &mockReviewRepository{
		reviews:  make(map[int64]*reviewDatamodel.Review),
		products: make(map[int64]bool),
		nextID:   1,
	}
}

func (m *mockReviewRepository) Create(r *reviewDatamodel.Review) error {
	r.ID = m.nextID
	m.nextID++
	copied := *r
	m.reviews[r.ID] = &copied
	return nil
}

func (m *mockReviewRepository) GetByID(id int64) (*reviewDatamodel.Review, error) {
	r, ok := m.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *mockReviewRepository) GetForProduct(productID int64) ([]*review.Review, error) {
	var out []*review.Review
	for _, r := range m.reviews {
		if r.ProductID == productID {
			out = append(out, review.FromDataModel(r))
		}
	}
	return out, nil
}

func (m *mockReviewRepository) Update(r *reviewDatamodel.Review) error {
	copied := *r
	m.reviews[r.ID] = &copied
	return nil
}

func (m *mockReviewRepository) Delete(id int64) error {
	delete(m.reviews, id)
	return nil
}

func (m *mockReviewRepository) ProductExists(productID int64) (bool, error) {
	return m.products[productID], nil
}

var _ = Describe("Review Service", func() {
	var (
		repo    *mockReviewRepository
		service *review.Service
	)

	const (
		authorID   = int64(7)
		strangerID = int64(8)
	)

	BeforeEach(func() {
		repo = newMockReviewRepository()
		repo.products[1] = true
		service = review.NewService(repo, slog.Default())
	})

	Describe("Create", func() {
		It("stores the review against an existing product", func() {
			created, err := service.Create(authorID, review.CreateReviewDTO{
				ProductID: 1,
				Rating:    4,
				Title:     "solid",
				Comment:   "does what it says",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeZero())
			Expect(created.Rating).To(Equal(4))
		})

		It("rejects a review for an unknown product", func() {
			_, err := service.Create(authorID, review.CreateReviewDTO{ProductID: 99, Rating: 5})
			Expect(err).To(MatchError(internal.ErrProductNotFound))
		})
	})

	Describe("GetForProduct", func() {
		It("returns only reviews for that product", func() {
			repo.products[2] = true
			_, err := service.Create(authorID, review.CreateReviewDTO{ProductID: 1, Rating: 5})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(authorID, review.CreateReviewDTO{ProductID: 2, Rating: 2})
			Expect(err).NotTo(HaveOccurred())

			reviews, err := service.GetForProduct(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(reviews).To(HaveLen(1))
			Expect(reviews[0].Rating).To(Equal(5))
		})

		It("rejects an unknown product", func() {
			_, err := service.GetForProduct(99)
			Expect(err).To(MatchError(internal.ErrProductNotFound))
		})
	})

	Describe("Update", func() {
		var reviewID int64

		BeforeEach(func() {
			created, err := service.Create(authorID, review.CreateReviewDTO{ProductID: 1, Rating: 3, Title: "ok"})
			Expect(err).NotTo(HaveOccurred())
			reviewID = created.ID
		})

		It("lets the author change the rating", func() {
			rating := 5
			updated, err := service.Update(reviewID, authorID, review.UpdateReviewDTO{Rating: &rating})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Rating).To(Equal(5))
			Expect(updated.Title).To(Equal("ok"))
		})

		It("refuses anyone who is not the author", func() {
			rating := 1
			_, err := service.Update(reviewID, strangerID, review.UpdateReviewDTO{Rating: &rating})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingPermission))
		})

		It("returns not found for a missing review", func() {
			rating := 1
			_, err := service.Update(999, authorID, review.UpdateReviewDTO{Rating: &rating})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeReviewNotFound))
		})
	})

	Describe("Delete", func() {
		It("is owner-only", func() {
			created, err := service.Create(authorID, review.CreateReviewDTO{ProductID: 1, Rating: 3})
			Expect(err).NotTo(HaveOccurred())

			err = service.Delete(created.ID, strangerID)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingPermission))

			Expect(service.Delete(created.ID, authorID)).To(Succeed())
			_, err = service.GetByID(created.ID)
			Expect(err).To(HaveOccurred())
		})
	})
})
