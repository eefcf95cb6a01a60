package application

import (
	"context"
	"testing"

	userDomain "renthub/internal/domain/user"
	"renthub/internal/pkg/clock"
	"renthub/internal/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserService(repo *mockUserRepo) *UserService {
	return NewUserService(repo, clock.NewMockClock(testNow), zap.NewNop())
}

func TestCreateUser(t *testing.T) {
	repo := &mockUserRepo{}
	var saved *userDomain.User
	repo.SaveFunc = func(_ context.Context, u *userDomain.User) error {
		saved = u
		return nil
	}

	dto, err := newUserService(repo).CreateUser(context.Background(), CreateUserRequest{
		Name: "alice", Email: "alice@example.com",
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, "alice", dto.Name)
	assert.Equal(t, "alice@example.com", dto.Email)
	assert.Equal(t, saved.ID(), dto.ID)
}

func TestCreateUserInvalidEmail(t *testing.T) {
	repo := &mockUserRepo{}

	_, err := newUserService(repo).CreateUser(context.Background(), CreateUserRequest{
		Name: "alice", Email: "not-an-email",
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{}
	repo.SaveFunc = func(_ context.Context, _ *userDomain.User) error {
		return domain.NewConflictError("email already registered: alice@example.com")
	}

	_, err := newUserService(repo).CreateUser(context.Background(), CreateUserRequest{
		Name: "alice", Email: "alice@example.com",
	})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeConflict))
}

func TestUpdateUserPartial(t *testing.T) {
	existing := userDomain.Reconstruct(uuid.New(), "alice", "alice@example.com", testNow, testNow)
	repo := &mockUserRepo{}
	repo.FindByIDFunc = func(_ context.Context, _ uuid.UUID) (*userDomain.User, error) {
		return existing, nil
	}
	repo.UpdateFunc = func(_ context.Context, _ *userDomain.User) error {
		return nil
	}

	name := "alicia"
	dto, err := newUserService(repo).UpdateUser(context.Background(), existing.ID(), UpdateUserRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "alicia", dto.Name)
	assert.Equal(t, "alice@example.com", dto.Email, "unset fields stay unchanged")
}

func TestListUsersPagination(t *testing.T) {
	repo := &mockUserRepo{}
	var gotPage int
	repo.ListFunc = func(_ context.Context, page, limit int) ([]*userDomain.User, int64, error) {
		gotPage = page
		return nil, 0, nil
	}

	_, err := newUserService(repo).ListUsers(context.Background(), 20, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, gotPage)

	_, err = newUserService(repo).ListUsers(context.Background(), 0, 0)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}
