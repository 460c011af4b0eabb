package repository

import (
	"context"
	"testing"

	"matchmaker/pkg/db"
	"matchmaker/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *UserRepository {
	t.Helper()
	conn, err := db.ConnectSQLite(":memory:")
	require.NoError(t, err)

	repo := NewUserRepository(conn)
	require.NoError(t, repo.InitDB())
	return repo
}

func newUser(email string, interests ...string) *models.User {
	u := &models.User{Name: "Mina", Age: 25, Gender: "F", Email: email, City: "Seoul"}
	u.SetInterests(interests)
	return u
}

func TestInsertUserDuplicateInterest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.InsertUser(ctx, newUser("mina@example.com", "music", "music"))
	require.ErrorIs(t, err, ErrDuplicateInterest)
	assert.NotErrorIs(t, err, gorm.ErrDuplicatedKey)

	// 트랜잭션 롤백으로 유저도 저장되지 않음
	users, err := repo.GetUserList(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestInsertUserDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.InsertUser(ctx, newUser("mina@example.com", "music")))

	err := repo.InsertUser(ctx, newUser("mina@example.com", "travel"))
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NotErrorIs(t, err, ErrDuplicateInterest)
}

func TestInterestsAreCaseSensitive(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := newUser("mina@example.com", "Music", "music")
	require.NoError(t, repo.InsertUser(ctx, user))

	got, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Music", "music"}, got.InterestNames())
}

func TestUpdateUserDuplicateInterest(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := newUser("mina@example.com", "music")
	require.NoError(t, repo.InsertUser(ctx, user))

	_, err := repo.UpdateUser(ctx, user.ID, map[string]interface{}{"city": "Busan"}, []string{"go", "go"}, true)
	require.ErrorIs(t, err, ErrDuplicateInterest)

	got, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seoul", got.City)
	assert.Equal(t, []string{"music"}, got.InterestNames())
}
