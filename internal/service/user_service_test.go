package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/repo"
	"restaurant-admin/internal/repo/repotest"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := repotest.Open(t)
	return NewUserService(repo.NewUserRepo(db), "", zap.NewNop()), db
}

func isAdmin(t *testing.T, db *gorm.DB, id uint) bool {
	t.Helper()
	var u domain.User
	require.NoError(t, db.First(&u, id).Error)
	return u.IsAdmin
}

func TestToggleAdminFlipsOnce(t *testing.T) {
	svc, db := newUserService(t)
	u := domain.User{ID: 5, Email: "user5@example.com", IsAdmin: false}
	require.NoError(t, db.Create(&u).Error)

	got, err := svc.ToggleAdmin(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin)
	assert.True(t, isAdmin(t, db, 5))

	got, err = svc.ToggleAdmin(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, got.IsAdmin)
	assert.False(t, isAdmin(t, db, 5))
}

func TestToggleAdminProtectsRoot(t *testing.T) {
	svc, db := newUserService(t)
	root := domain.User{Email: "root@example.com", IsAdmin: true}
	require.NoError(t, db.Create(&root).Error)

	_, err := svc.ToggleAdmin(context.Background(), root.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)
	assert.EqualError(t, err, MsgRootProtected)
	assert.True(t, isAdmin(t, db, root.ID))
}

func TestToggleAdminMissing(t *testing.T) {
	svc, _ := newUserService(t)
	_, err := svc.ToggleAdmin(context.Background(), 42)
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, MsgUserNotFound)
}

func TestListUsers(t *testing.T) {
	svc, db := newUserService(t)
	require.NoError(t, db.Create(&[]domain.User{{Email: "a@example.com"}, {Email: "b@example.com"}}).Error)

	us, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, us, 2)
	assert.Equal(t, "a@example.com", us[0].Email)
}
