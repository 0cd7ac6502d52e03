package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"restaurant-admin/internal/domain"
	"restaurant-admin/internal/repo"
	"restaurant-admin/internal/repo/repotest"
)

func TestCategoryLifecycle(t *testing.T) {
	db := repotest.Open(t)
	svc := NewCategoryService(repo.NewCategoryRepo(db), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, " ")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.EqualError(t, err, MsgCategoryNameRequired)

	c, err := svc.Create(ctx, " Japanese ")
	require.NoError(t, err)
	assert.Equal(t, "Japanese", c.Name)

	_, err = svc.Update(ctx, c.ID, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.Update(ctx, c.ID+1, "Thai")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, c.ID, "Thai")
	require.NoError(t, err)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thai", got.Name)

	cs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cs, 1)
}
