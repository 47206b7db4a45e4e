package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"campusvolunteer/internal/domain"
)

type userFixture struct {
	store    *memStore
	userRepo *mockUserRepository
	email    *mockEmailService
	service  domain.UserService
}

func newUserFixture() *userFixture {
	store := newMemStore()
	f := &userFixture{
		store:    store,
		userRepo: &mockUserRepository{store: store},
		email:    &mockEmailService{},
	}
	f.service = NewUserService(f.userRepo, mockPasswordHasher{}, &mockTokenIssuer{}, time.Hour, f.email)
	return f
}

func TestUserService_Register(t *testing.T) {
	t.Run("creates a volunteer with avatar and token", func(t *testing.T) {
		f := newUserFixture()

		user, token, err := f.service.Register(context.Background(), "Farid Hakim", "Farid@siswa.UM.edu.my", "hunter22!", "")
		require.NoError(t, err)
		require.NotEmpty(t, user.ID)
		require.Equal(t, "farid@siswa.um.edu.my", user.Email)
		require.Equal(t, domain.RoleVolunteer, user.Role)
		require.Equal(t, "https://ui-avatars.com/api/?name=Farid+Hakim&color=fff&background=10b981", user.AvatarURL)
		require.Equal(t, "token-"+user.ID, token)
	})

	t.Run("accepts the organizer role", func(t *testing.T) {
		f := newUserFixture()
		user, _, err := f.service.Register(context.Background(), "Aina", "aina@um.edu.my", "password1", "Organizer")
		require.NoError(t, err)
		require.Equal(t, domain.RoleOrganizer, user.Role)
	})

	t.Run("unknown roles fall back to volunteer", func(t *testing.T) {
		f := newUserFixture()
		user, _, err := f.service.Register(context.Background(), "Aina", "aina@um.edu.my", "password1", "admin")
		require.NoError(t, err)
		require.Equal(t, domain.RoleVolunteer, user.Role)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		f := newUserFixture()
		_, _, err := f.service.Register(context.Background(), "Aina", "not-an-email", "password1", "")
		require.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		f := newUserFixture()
		_, _, err := f.service.Register(context.Background(), "Aina", "aina@um.edu.my", "short", "")
		require.Error(t, err)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		f := newUserFixture()
		_, _, err := f.service.Register(context.Background(), "   ", "aina@um.edu.my", "password1", "")
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newUserFixture()
		_, _, err := f.service.Register(context.Background(), "Aina", "aina@um.edu.my", "password1", "")
		require.NoError(t, err)
		_, _, err = f.service.Register(context.Background(), "Other Aina", "AINA@um.edu.my", "password2", "")
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestUserService_Login(t *testing.T) {
	f := newUserFixture()
	_, _, err := f.service.Register(context.Background(), "Farid", "farid@um.edu.my", "password1", "")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, token, err := f.service.Login(context.Background(), "FARID@um.edu.my", "password1")
		require.NoError(t, err)
		require.Equal(t, "farid@um.edu.my", user.Email)
		require.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := f.service.Login(context.Background(), "farid@um.edu.my", "wrong-pass")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from a wrong password", func(t *testing.T) {
		_, _, err := f.service.Login(context.Background(), "nobody@um.edu.my", "password1")
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestUserService_ToggleBookmark(t *testing.T) {
	f := newUserFixture()
	user, _, err := f.service.Register(context.Background(), "Farid", "farid@um.edu.my", "password1", "")
	require.NoError(t, err)

	bookmarks, err := f.service.ToggleBookmark(context.Background(), user.ID, "ev-1")
	require.NoError(t, err)
	require.Equal(t, []string{"ev-1"}, bookmarks)

	bookmarks, err = f.service.ToggleBookmark(context.Background(), user.ID, "ev-2")
	require.NoError(t, err)
	require.Equal(t, []string{"ev-1", "ev-2"}, bookmarks)

	// Toggling again removes it.
	bookmarks, err = f.service.ToggleBookmark(context.Background(), user.ID, "ev-1")
	require.NoError(t, err)
	require.Equal(t, []string{"ev-2"}, bookmarks)

	_, err = f.service.ToggleBookmark(context.Background(), "user-missing", "ev-1")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_RequestPasswordReset(t *testing.T) {
	f := newUserFixture()
	user, _, err := f.service.Register(context.Background(), "Farid", "farid@um.edu.my", "password1", "")
	require.NoError(t, err)

	require.NoError(t, f.service.RequestPasswordReset(context.Background(), "FARID@um.edu.my"))
	require.Len(t, f.email.sentResets, 1)
	require.Equal(t, user.Email, f.email.sentResets[0].Email)
	require.Equal(t, user.Name, f.email.sentResets[0].Name)

	err = f.service.RequestPasswordReset(context.Background(), "nobody@um.edu.my")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
