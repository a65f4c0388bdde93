package user

import (
	"context"
	"testing"

	"job-board/internal/domain/user"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	users     map[uuid.UUID]user.User
	updates   []user.Changes
	updateErr error
}

func (m *memUserRepo) Create(context.Context, user.User) error { return nil }

func (m *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUserRepo) Update(_ context.Context, _ uuid.UUID, c user.Changes) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates = append(m.updates, c)
	return nil
}

type prefixHasher struct{}

func (prefixHasher) HashPassword(pw string) (string, error) { return "hashed:" + pw, nil }

func ptr(s string) *string { return &s }

func fixture() (*Service, *memUserRepo, user.User, user.User) {
	ann := user.User{ID: uuid.New(), Name: "Ann", Email: "ann@example.com", Role: user.RoleSeeker, PasswordHash: "x"}
	bob := user.User{ID: uuid.New(), Name: "Bob", Email: "bob@example.com", Role: user.RoleRecruiter, PasswordHash: "y"}
	repo := &memUserRepo{users: map[uuid.UUID]user.User{ann.ID: ann, bob.ID: bob}}
	return NewService(repo, prefixHasher{}), repo, ann, bob
}

func TestGetProfile(t *testing.T) {
	svc, _, ann, _ := fixture()

	p, err := svc.GetProfile(context.Background(), ann.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Profile{ID: ann.ID, Name: "Ann", Email: "ann@example.com", Role: user.RoleSeeker}, p)

	_, err = svc.GetProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestUpdateProfile_NoChanges(t *testing.T) {
	svc, repo, ann, _ := fixture()

	err := svc.UpdateProfile(context.Background(), ann.ID, UpdateProfileInput{})
	assert.ErrorIs(t, err, ErrNoChanges)

	err = svc.UpdateProfile(context.Background(), ann.ID, UpdateProfileInput{Name: ptr(""), Email: ptr("  "), Password: ptr("")})
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Empty(t, repo.updates)
}

func TestUpdateProfile_OnlySuppliedFields(t *testing.T) {
	svc, repo, ann, _ := fixture()

	err := svc.UpdateProfile(context.Background(), ann.ID, UpdateProfileInput{Name: ptr(" Ann B "), Password: ptr("newpass1")})
	require.NoError(t, err)
	require.Len(t, repo.updates, 1)

	c := repo.updates[0]
	require.NotNil(t, c.Name)
	assert.Equal(t, "Ann B", *c.Name)
	assert.Nil(t, c.Email)
	require.NotNil(t, c.PasswordHash)
	assert.Equal(t, "hashed:newpass1", *c.PasswordHash)
}

func TestUpdateProfile_WeakPassword(t *testing.T) {
	svc, repo, ann, _ := fixture()

	err := svc.UpdateProfile(context.Background(), ann.ID, UpdateProfileInput{Password: ptr("short")})
	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Empty(t, repo.updates)
}

func TestUpdateProfile_Email(t *testing.T) {
	svc, repo, ann, _ := fixture()
	ctx := context.Background()

	err := svc.UpdateProfile(ctx, ann.ID, UpdateProfileInput{Email: ptr("BOB@example.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	require.NoError(t, svc.UpdateProfile(ctx, ann.ID, UpdateProfileInput{Email: ptr("ANN@example.com")}))
	require.NoError(t, svc.UpdateProfile(ctx, ann.ID, UpdateProfileInput{Email: ptr("new@example.com")}))
	require.Len(t, repo.updates, 2)
	assert.Equal(t, "new@example.com", *repo.updates[1].Email)
}

func TestUpdateProfile_StoreErrors(t *testing.T) {
	svc, repo, ann, _ := fixture()
	ctx := context.Background()

	repo.updateErr = user.ErrEmailTaken
	err := svc.UpdateProfile(ctx, ann.ID, UpdateProfileInput{Email: ptr("racy@example.com")})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	repo.updateErr = errors.New("db down")
	err = svc.UpdateProfile(ctx, ann.ID, UpdateProfileInput{Name: ptr("X")})
	assert.True(t, errors.Is(err, ErrInternal), "want ErrInternal mark, got %v", err)
}
