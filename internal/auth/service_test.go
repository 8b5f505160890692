package auth

import (
	"context"
	"testing"

	"fragranceapi/internal/admin"
	"fragranceapi/internal/platform/crypto"
	"fragranceapi/internal/session"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

type loginFixture struct {
	service     *Service
	creds       *MockCredentialRepository
	sessionRepo *session.MockRepository
	adminRepo   *admin.MockRepository
}

func newLoginFixture(t *testing.T) loginFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	creds := NewMockCredentialRepository(ctrl)
	sessionRepo := session.NewMockRepository(ctrl)
	adminRepo := admin.NewMockRepository(ctrl)

	svc := NewService(testSecret, creds,
		session.NewService(sessionRepo), admin.NewService(adminRepo))

	return loginFixture{service: svc, creds: creds, sessionRepo: sessionRepo, adminRepo: adminRepo}
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := crypto.HashPassword(password)
	assert.NoError(t, err)
	return h
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	const email = "admin@fragrance.local"

	t.Run("unknown email", func(t *testing.T) {
		f := newLoginFixture(t)
		f.creds.EXPECT().GetByEmail(ctx, email).Return(Credential{}, ErrCredentialNotFound)

		_, err := f.service.Login(ctx, email, "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newLoginFixture(t)
		f.creds.EXPECT().GetByEmail(ctx, email).Return(Credential{
			Email:        email,
			PasswordHash: hashed(t, "right-password"),
		}, nil)

		_, err := f.service.Login(ctx, email, "wrong-password")

		assert.ErrorIs(t, err, ErrInvalidCredentials,
			"wrong password and unknown email must be indistinguishable")
	})

	t.Run("authenticated but not an admin terminates the session", func(t *testing.T) {
		f := newLoginFixture(t)
		f.creds.EXPECT().GetByEmail(ctx, email).Return(Credential{
			Email:        email,
			PasswordHash: hashed(t, "pw"),
		}, nil)

		var createdJTI string
		f.sessionRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, s *session.Session) error {
				createdJTI = s.ID
				return nil
			})
		f.adminRepo.EXPECT().GetByEmail(ctx, email).Return(admin.AdminUser{}, admin.ErrNotFound)
		f.sessionRepo.EXPECT().DeleteByID(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, id string) error {
				assert.Equal(t, createdJTI, id, "the just-created session must be the one terminated")
				return nil
			})

		_, err := f.service.Login(ctx, email, "pw")

		assert.ErrorIs(t, err, ErrUnauthorizedAdmin)
	})

	t.Run("admin lookup failure also terminates the session", func(t *testing.T) {
		f := newLoginFixture(t)
		f.creds.EXPECT().GetByEmail(ctx, email).Return(Credential{
			Email:        email,
			PasswordHash: hashed(t, "pw"),
		}, nil)
		f.sessionRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		f.adminRepo.EXPECT().GetByEmail(ctx, email).Return(admin.AdminUser{}, context.DeadlineExceeded)
		f.sessionRepo.EXPECT().DeleteByID(ctx, gomock.Any()).Return(nil)

		_, err := f.service.Login(ctx, email, "pw")

		assert.ErrorIs(t, err, ErrUnauthorizedAdmin, "fail closed on service errors")
	})

	t.Run("full authorization", func(t *testing.T) {
		f := newLoginFixture(t)
		f.creds.EXPECT().GetByEmail(ctx, email).Return(Credential{
			Email:        email,
			PasswordHash: hashed(t, "pw"),
		}, nil)
		f.sessionRepo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		f.adminRepo.EXPECT().GetByEmail(ctx, email).Return(admin.AdminUser{
			Email:    email,
			Username: "admin",
		}, nil)
		f.adminRepo.EXPECT().TouchLastLogin(ctx, email, gomock.Any()).Return(nil)

		result, err := f.service.Login(ctx, email, "pw")

		assert.NoError(t, err)
		assert.Equal(t, "admin", result.Admin.Username)
		assert.Positive(t, result.ExpiresIn)

		claims, err := crypto.ParseToken(testSecret, result.Token)
		assert.NoError(t, err)
		assert.Equal(t, email, claims.Email)
	})
}

func TestLogout(t *testing.T) {
	f := newLoginFixture(t)
	f.sessionRepo.EXPECT().DeleteByID(gomock.Any(), "jti-1").Return(nil)

	assert.NoError(t, f.service.Logout(context.Background(), "jti-1"))
}
