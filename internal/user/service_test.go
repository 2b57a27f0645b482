package user_test

import (
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/commerce-management/internal"
	userDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/user"
	"github.com/frahmantamala/commerce-management/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type mockUserRepository struct {
	users  map[int64]*userDatamodel.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*userDatamodel.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	u.ID = m.nextID
	m.nextID++
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepository) GetByID(id int64) (*userDatamodel.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepository) GetAll(limit, offset int) ([]*userDatamodel.User, error) {
	var out []*userDatamodel.User
	for _, u := range m.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User) error {
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	delete(m.users, id)
	return nil
}

type mockHasher struct{}

func (mockHasher) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		service *user.Service
	)

	BeforeEach(func() {
		repo = newMockUserRepository()
		service = user.NewService(repo, mockHasher{}, slog.Default())
	})

	Describe("Register", func() {
		It("hashes the password and stores the account", func() {
			registered, err := service.Register(user.RegisterDTO{
				FullName: "Dina",
				Email:    "dina@mail.com",
				Password: "supersecret",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(registered.ID).NotTo(BeZero())

			stored := repo.users[registered.ID]
			Expect(stored.PasswordHash).To(Equal("hashed:supersecret"))
		})

		It("rejects a duplicate email", func() {
			_, err := service.Register(user.RegisterDTO{FullName: "Dina", Email: "dina@mail.com", Password: "supersecret"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Register(user.RegisterDTO{FullName: "Other", Email: "dina@mail.com", Password: "supersecret"})
			Expect(err).To(MatchError(internal.ErrDuplicateEmail))
		})

		It("rejects a short password", func() {
			_, err := service.Register(user.RegisterDTO{FullName: "Dina", Email: "dina@mail.com", Password: "short"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})
	})

	Describe("Update", func() {
		var userID int64

		BeforeEach(func() {
			registered, err := service.Register(user.RegisterDTO{FullName: "Dina", Email: "dina@mail.com", Password: "supersecret"})
			Expect(err).NotTo(HaveOccurred())
			userID = registered.ID
		})

		It("changes only the provided fields", func() {
			name := "Dina Pratiwi"
			updated, err := service.Update(userID, user.UpdateDTO{FullName: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.FullName).To(Equal("Dina Pratiwi"))
			Expect(updated.Email).To(Equal("dina@mail.com"))
		})

		It("refuses an email already taken by someone else", func() {
			_, err := service.Register(user.RegisterDTO{FullName: "Raka", Email: "raka@mail.com", Password: "supersecret"})
			Expect(err).NotTo(HaveOccurred())

			taken := "raka@mail.com"
			_, err = service.Update(userID, user.UpdateDTO{Email: &taken})
			Expect(err).To(MatchError(internal.ErrDuplicateEmail))
		})

		It("re-hashes a new password", func() {
			password := "newpassword"
			_, err := service.Update(userID, user.UpdateDTO{Password: &password})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.users[userID].PasswordHash).To(Equal("hashed:newpassword"))
		})

		It("rejects an empty update", func() {
			_, err := service.Update(userID, user.UpdateDTO{})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("returns not found for a missing user", func() {
			name := "nobody"
			_, err := service.Update(999, user.UpdateDTO{FullName: &name})
			Expect(err).To(MatchError(internal.ErrUserNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes an existing user and rejects a second delete", func() {
			registered, err := service.Register(user.RegisterDTO{FullName: "Dina", Email: "dina@mail.com", Password: "supersecret"})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(registered.ID)).To(Succeed())
			Expect(service.Delete(registered.ID)).To(MatchError(internal.ErrUserNotFound))
		})
	})
})
