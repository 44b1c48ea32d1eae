package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
)

func TestMemEmployeeRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemEmployeeRepo()

	a, err := r.Create(ctx, dom.Employee{Name: "Ada", Position: "Engineer"})
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)
	b, err := r.Create(ctx, dom.Employee{Name: "Grace"})
	require.NoError(t, err)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)

	upd, err := r.Update(ctx, a.ID, dom.EmployeeFields{Department: strPtr("R&D")})
	require.NoError(t, err)
	assert.Equal(t, "R&D", upd.Department)
	assert.Equal(t, "Engineer", upd.Position)
	assert.Equal(t, a.ID, upd.ID)

	require.NoError(t, r.Delete(ctx, a.ID))
	assert.ErrorIs(t, r.Delete(ctx, a.ID), dom.ErrNotFound)
	_, err = r.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	_, err = r.Update(ctx, a.ID, dom.EmployeeFields{})
	assert.ErrorIs(t, err, dom.ErrNotFound)

	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestMemUserRepo(t *testing.T) {
	ctx := context.Background()
	r := NewMemUserRepo()

	u, err := r.Create(ctx, "admin", "hash")
	require.NoError(t, err)

	_, err = r.Create(ctx, "admin", "other")
	assert.ErrorIs(t, err, dom.ErrUsernameTaken)

	got, err := r.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	r.Remove(u.ID)
	_, err = r.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, dom.ErrNotFound)
	_, err = r.GetByUsername(ctx, "admin")
	assert.ErrorIs(t, err, dom.ErrNotFound)
}
