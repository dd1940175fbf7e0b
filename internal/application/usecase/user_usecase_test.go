package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fleetflow-api/internal/application/dto"
	"github.com/jhoicas/fleetflow-api/internal/application/usecase"
	"github.com/jhoicas/fleetflow-api/internal/domain"
	"github.com/jhoicas/fleetflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/fleetflow-api/pkg/password"
)

func newUserUC() (*usecase.UserUseCase, *memory.UserRepo, *password.Hasher) {
	repo := memory.NewUserRepository()
	hasher := password.New(4)
	return usecase.NewUserUseCase(repo, hasher), repo, hasher
}

func createReq(name, email, role string) dto.CreateUserRequest {
	return dto.CreateUserRequest{FullName: name, Email: email, Password: "longenough1", Role: role}
}

func strPtr(s string) *string { return &s }

func TestCreateAsAdmin(t *testing.T) {
	uc, repo, hasher := newUserUC()
	ctx := context.Background()

	user, err := uc.CreateAsAdmin(ctx, createReq("Bob", " Bob@Ex.com ", "manager"))
	require.NoError(t, err)
	assert.Equal(t, "bob@ex.com", user.Email)
	assert.Equal(t, "manager", user.Role)

	// El password se persiste hasheado, nunca en claro.
	stored, err := repo.FindByEmail(ctx, "bob@ex.com")
	require.NoError(t, err)
	assert.NotEqual(t, "longenough1", stored.PasswordHash)
	assert.True(t, hasher.Verify("longenough1", stored.PasswordHash))

	// Email repetido: conflicto.
	_, err = uc.CreateAsAdmin(ctx, createReq("Bob 2", "bob@ex.com", "dispatcher"))
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestList_ExcluyeBorradosSalvoIncludeDeleted(t *testing.T) {
	uc, repo, _ := newUserUC()
	ctx := context.Background()

	a, err := uc.CreateAsAdmin(ctx, createReq("A", "a@ex.com", "dispatcher"))
	require.NoError(t, err)
	_, err = uc.CreateAsAdmin(ctx, createReq("B", "b@ex.com", "manager"))
	require.NoError(t, err)

	_, err = repo.SoftDelete(ctx, a.ID)
	require.NoError(t, err)

	visible, err := uc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "b@ex.com", visible[0].Email)

	all, err := uc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Orden de creación descendente: el más reciente primero.
	assert.Equal(t, "b@ex.com", all[0].Email)
	assert.Equal(t, "a@ex.com", all[1].Email)
}

func TestUpdateAsAdmin_CambiaRol(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()

	u, err := uc.CreateAsAdmin(ctx, createReq("A", "a@ex.com", "dispatcher"))
	require.NoError(t, err)

	updated, err := uc.UpdateAsAdmin(ctx, u.ID, dto.UpdateUserRequest{Role: strPtr("safety_officer")})
	require.NoError(t, err)
	assert.Equal(t, "safety_officer", updated.Role)

	_, err = uc.UpdateAsAdmin(ctx, u.ID, dto.UpdateUserRequest{Role: strPtr("emperor")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateAsSelf_IgnoraRol(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()

	u, err := uc.CreateAsAdmin(ctx, createReq("A", "a@ex.com", "dispatcher"))
	require.NoError(t, err)

	// Aunque el payload traiga role, el camino self nunca lo lee.
	updated, err := uc.UpdateAsSelf(ctx, u.ID, dto.UpdateUserRequest{
		FullName: strPtr("A. Updated"),
		Role:     strPtr("admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A. Updated", updated.FullName)
	assert.Equal(t, "dispatcher", updated.Role, "un self-update jamás escala el rol")
}

func TestUpdate_ValidaYNormalizaEmail(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()

	u, err := uc.CreateAsAdmin(ctx, createReq("A", "a@ex.com", "dispatcher"))
	require.NoError(t, err)
	_, err = uc.CreateAsAdmin(ctx, createReq("B", "b@ex.com", "manager"))
	require.NoError(t, err)

	updated, err := uc.UpdateAsSelf(ctx, u.ID, dto.UpdateUserRequest{Email: strPtr(" New@Ex.com ")})
	require.NoError(t, err)
	assert.Equal(t, "new@ex.com", updated.Email)

	_, err = uc.UpdateAsSelf(ctx, u.ID, dto.UpdateUserRequest{Email: strPtr("sin-arroba")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Colisión con el email de otro usuario: conflicto.
	_, err = uc.UpdateAsSelf(ctx, u.ID, dto.UpdateUserRequest{Email: strPtr("b@ex.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdate_RehashDePassword(t *testing.T) {
	uc, repo, hasher := newUserUC()
	ctx := context.Background()

	u, err := uc.CreateAsAdmin(ctx, createReq("A", "a@ex.com", "dispatcher"))
	require.NoError(t, err)

	_, err = uc.UpdateAsSelf(ctx, u.ID, dto.UpdateUserRequest{Password: strPtr("short")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateAsSelf(ctx, u.ID, dto.UpdateUserRequest{Password: strPtr("newlongenough")})
	require.NoError(t, err)

	stored, err := repo.FindByEmail(ctx, "a@ex.com")
	require.NoError(t, err)
	assert.True(t, hasher.Verify("newlongenough", stored.PasswordHash))
	assert.False(t, hasher.Verify("longenough1", stored.PasswordHash))
}

func TestUpdate_PatchVacioEsNoOp(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()

	u, err := uc.CreateAsAdmin(ctx, createReq("A", "a@ex.com", "dispatcher"))
	require.NoError(t, err)

	same, err := uc.UpdateAsSelf(ctx, u.ID, dto.UpdateUserRequest{})
	require.NoError(t, err)
	assert.Equal(t, u.ID, same.ID)
	assert.Equal(t, "A", same.FullName)
	assert.Equal(t, "a@ex.com", same.Email)
}

func TestUpdate_UsuarioInexistente(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()

	_, err := uc.UpdateAsAdmin(ctx, "00000000-0000-0000-0000-00000000dead", dto.UpdateUserRequest{FullName: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteYRestore(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()

	u, err := uc.CreateAsAdmin(ctx, createReq("A", "a@ex.com", "dispatcher"))
	require.NoError(t, err)

	deleted, err := uc.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.NotNil(t, deleted.DeletedAt)

	restored, err := uc.Restore(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Nil(t, restored.DeletedAt)

	_, err = uc.Delete(ctx, "00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = uc.Restore(ctx, "00000000-0000-0000-0000-00000000dead")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetByID(t *testing.T) {
	uc, _, _ := newUserUC()
	ctx := context.Background()

	u, err := uc.CreateAsAdmin(ctx, createReq("A", "a@ex.com", "dispatcher"))
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "a@ex.com", got.Email)

	missing, err := uc.GetByID(ctx, "00000000-0000-0000-0000-00000000dead")
	require.NoError(t, err)
	assert.Nil(t, missing, "ausencia se señala con nil; el handler decide el 404")
}
