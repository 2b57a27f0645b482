package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/commerce-management/internal/auth"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockAuthRepository struct {
	userPasswords  map[string]string
	userIDs        map[string]int64
	adminPasswords map[string]string
	adminIDs       map[string]int64
	userEmails     map[int64]string
	adminEmails    map[int64]string
	userRoles      map[int64][]string
	userPerms      map[int64][]string
	lookupErr      error
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		userPasswords:  make(map[string]string),
		userIDs:        make(map[string]int64),
		adminPasswords: make(map[string]string),
		adminIDs:       make(map[string]int64),
		userEmails:     make(map[int64]string),
		adminEmails:    make(map[int64]string),
		userRoles:      make(map[int64][]string),
		userPerms:      make(map[int64][]string),
	}
}

func (m *mockAuthRepository) GetPasswordForEmail(email string) (string, int64, error) {
	hash, ok := m.userPasswords[email]
	if !ok {
		return "", 0, errors.New("user not found")
	}
	return hash, m.userIDs[email], nil
}

func (m *mockAuthRepository) GetAdminPasswordForEmail(email string) (string, int64, error) {
	hash, ok := m.adminPasswords[email]
	if !ok {
		return "", 0, errors.New("admin not found")
	}
	return hash, m.adminIDs[email], nil
}

func (m *mockAuthRepository) GetUserBasic(userID int64) (int64, string, error) {
	if m.lookupErr != nil {
		return 0, "", m.lookupErr
	}
	email, ok := m.userEmails[userID]
	if !ok {
		return 0, "", errors.New("user not found")
	}
	return userID, email, nil
}

func (m *mockAuthRepository) GetAdminBasic(adminID int64) (int64, string, error) {
	if m.lookupErr != nil {
		return 0, "", m.lookupErr
	}
	email, ok := m.adminEmails[adminID]
	if !ok {
		return 0, "", errors.New("admin not found")
	}
	return adminID, email, nil
}

func (m *mockAuthRepository) GetRoleSlugsForUser(userID int64) ([]string, error) {
	return m.userRoles[userID], nil
}

func (m *mockAuthRepository) GetPermissionSlugsForUser(userID int64) ([]string, error) {
	return m.userPerms[userID], nil
}

var _ = Describe("AuthService", func() {
	var (
		repo    *mockAuthRepository
		service *auth.Service
		logger  *slog.Logger
	)

	BeforeEach(func() {
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockAuthRepository()

		tokenGen := auth.NewJWTTokenGenerator("test-secret-at-least-32-characters!!", time.Minute)
		service = auth.NewService(repo, tokenGen, 10, logger)

		hash, err := auth.HashPassword("correct-password", 10)
		Expect(err).NotTo(HaveOccurred())

		repo.userPasswords["user@shop.test"] = hash
		repo.userIDs["user@shop.test"] = 7
		repo.userEmails[7] = "user@shop.test"

		repo.adminPasswords["root@shop.test"] = hash
		repo.adminIDs["root@shop.test"] = 1
		repo.adminEmails[1] = "root@shop.test"
	})

	Describe("Authenticate", func() {
		It("issues a token for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "user@shop.test",
				Password: "correct-password",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.SubjectID).To(Equal(int64(7)))
			Expect(claims.IsAdmin).To(BeFalse())
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "user@shop.test",
				Password: "wrong",
			})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects an unknown email", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "nobody@shop.test",
				Password: "correct-password",
			})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})

		It("rejects a malformed email before touching the store", func() {
			_, err := service.Authenticate(auth.LoginDTO{Email: "not-an-email", Password: "x"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("AuthenticateAdmin", func() {
		It("issues an admin-flagged token", func() {
			tokens, err := service.AuthenticateAdmin(auth.LoginDTO{
				Email:    "root@shop.test",
				Password: "correct-password",
			})
			Expect(err).NotTo(HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.IsAdmin).To(BeTrue())
		})

		It("does not authenticate a regular user as admin", func() {
			_, err := service.AuthenticateAdmin(auth.LoginDTO{
				Email:    "user@shop.test",
				Password: "correct-password",
			})
			Expect(err).To(Equal(auth.ErrInvalidCredentials))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("rejects an expired token", func() {
			shortGen := auth.NewJWTTokenGenerator("test-secret-at-least-32-characters!!", time.Nanosecond)
			token, err := shortGen.GenerateAccessToken(7, "user@shop.test", false)
			Expect(err).NotTo(HaveOccurred())

			time.Sleep(5 * time.Millisecond)

			_, err = shortGen.ValidateToken(token)
			Expect(err).To(Equal(auth.ErrTokenExpired))
		})

		It("rejects a token signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator("another-secret-also-32-characters!!!", time.Minute)
			token, err := otherGen.GenerateAccessToken(7, "user@shop.test", false)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)
			Expect(err).To(Equal(auth.ErrInvalidToken))
		})
	})

	Describe("ResolvePrincipal", func() {
		It("loads roles and permissions fresh from the graph", func() {
			repo.userRoles[7] = []string{"client"}
			repo.userPerms[7] = []string{"read", "create"}

			principal, err := service.ResolvePrincipal(context.Background(), &auth.Claims{SubjectID: 7})
			Expect(err).NotTo(HaveOccurred())
			Expect(principal.Roles).To(ConsistOf("client"))
			Expect(principal.Permissions).To(ConsistOf("read", "create"))
			Expect(principal.IsAdmin).To(BeFalse())
		})

		It("reflects a revocation on the next resolution", func() {
			repo.userRoles[7] = []string{"client"}

			first, err := service.ResolvePrincipal(context.Background(), &auth.Claims{SubjectID: 7})
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Roles).To(ConsistOf("client"))

			// revoke between requests
			repo.userRoles[7] = nil

			second, err := service.ResolvePrincipal(context.Background(), &auth.Claims{SubjectID: 7})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.Roles).To(BeEmpty())

			// the principal already resolved for the in-flight request is untouched
			Expect(first.Roles).To(ConsistOf("client"))
		})

		It("resolves admin claims against the admin identity class", func() {
			principal, err := service.ResolvePrincipal(context.Background(), &auth.Claims{SubjectID: 1, IsAdmin: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(principal.IsAdmin).To(BeTrue())
			Expect(principal.Roles).To(BeEmpty())
		})

		It("fails when the identity no longer exists", func() {
			_, err := service.ResolvePrincipal(context.Background(), &auth.Claims{SubjectID: 404})
			Expect(err).To(HaveOccurred())
		})
	})
})
