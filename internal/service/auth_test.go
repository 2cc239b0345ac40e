package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secura-qr/secura-qr/internal/domain"
	"github.com/secura-qr/secura-qr/internal/repository"
)

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user

	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func TestSignupAndLogin(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	created, err := svc.Signup(context.Background(), domain.User{
		Email:    "orga@example.com",
		Password: "password1",
		Name:     "Orga",
		Role:     "organizer",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "password1", created.Password, "password must be stored hashed")

	user, err := svc.Login(context.Background(), "orga@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Signup(context.Background(), domain.User{Email: "orga@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Email: "orga@example.com", Password: "password2"})
	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Signup(context.Background(), domain.User{Email: "orga@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "orga@example.com", "nope")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), "missing@example.com", "password1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
