package services

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourcraft/tourcraft-api/internal/apperrors"
	"github.com/tourcraft/tourcraft-api/internal/models"
	"github.com/tourcraft/tourcraft-api/internal/utils"
)

func setupUserService(t *testing.T) (*UserService, *memUserStore) {
	t.Helper()
	users := newMemUserStore()
	tokens := utils.NewJWTManager([]byte("test-secret"), time.Hour)
	return NewUserService(users, tokens), users
}

func registerReq(email string) *RegisterRequest {
	return &RegisterRequest{Name: "Asha Rao", Email: email, Password: "correct-horse"}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("asha@example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Empty(t, user.Password)

	token, loggedIn, err := svc.Login(ctx, "asha@example.com", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("asha@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerReq("asha@example.com"))
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus())
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{Email: "a@b.com", Password: "long-enough"})
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.Register(ctx, &RegisterRequest{Name: "A", Email: "a@b.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 8 characters", err.(*apperrors.Error).Message)
}

func TestLoginGenericFailures(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("asha@example.com"))
	require.NoError(t, err)

	// Unknown email and wrong password must be indistinguishable.
	_, _, errUnknown := svc.Login(ctx, "nobody@example.com", "correct-horse")
	_, _, errWrong := svc.Login(ctx, "asha@example.com", "wrong-password")

	for _, err := range []error{errUnknown, errWrong} {
		require.Error(t, err)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid credentials", appErr.Message)
		assert.Equal(t, http.StatusUnauthorized, appErr.HTTPStatus())
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("asha@example.com"))
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong-password", "new-password-1")
	require.Error(t, err)
	assert.Equal(t, "Old password is incorrect", err.(*apperrors.Error).Message)
	assert.Equal(t, http.StatusBadRequest, err.(*apperrors.Error).HTTPStatus())

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "correct-horse", "new-password-1"))

	_, _, err = svc.Login(ctx, "asha@example.com", "correct-horse")
	require.Error(t, err)
	_, _, err = svc.Login(ctx, "asha@example.com", "new-password-1")
	require.NoError(t, err)
}

func TestCreateFirstAdmin(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	admin, err := svc.CreateFirstAdmin(ctx, registerReq("admin@example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, err = svc.CreateFirstAdmin(ctx, registerReq("second@example.com"))
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Admin user already exists. Use the admin-protected endpoint.", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus())
}

func TestCreateFirstAdminConcurrent(t *testing.T) {
	svc, users := setupUserService(t)
	ctx := context.Background()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateFirstAdmin(ctx, &RegisterRequest{
				Name:     "Admin",
				Email:    "admin" + string(rune('a'+i)) + "@example.com",
				Password: "correct-horse",
			})
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t, apperrors.IsKind(err, apperrors.KindConflict), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)

	count, err := users.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateAdminAfterBootstrap(t *testing.T) {
	svc, users := setupUserService(t)
	ctx := context.Background()

	_, err := svc.CreateFirstAdmin(ctx, registerReq("admin@example.com"))
	require.NoError(t, err)

	// More admins are allowed through the protected endpoint.
	_, err = svc.CreateAdmin(ctx, registerReq("second@example.com"))
	require.NoError(t, err)

	count, err := users.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.CreateAdmin(ctx, registerReq("second@example.com"))
	require.Error(t, err)
	assert.Equal(t, "User already exists", err.(*apperrors.Error).Message)
	assert.Equal(t, http.StatusBadRequest, err.(*apperrors.Error).HTTPStatus())
}

func TestCreateUserByAdminRoleCollapses(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	user, err := svc.CreateUserByAdmin(ctx, registerReq("u@example.com"), "superuser")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)

	admin, err := svc.CreateUserByAdmin(ctx, registerReq("a@example.com"), models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}

func TestDeleteUserRefusesSelf(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	admin, err := svc.CreateFirstAdmin(ctx, registerReq("admin@example.com"))
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, admin.ID, admin.ID.Hex())
	require.Error(t, err)
	assert.Equal(t, "Cannot delete your own account", err.(*apperrors.Error).Message)

	user, err := svc.Register(ctx, registerReq("u@example.com"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteUser(ctx, admin.ID, user.ID.Hex()))

	err = svc.DeleteUser(ctx, admin.ID, user.ID.Hex())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	err = svc.DeleteUser(ctx, admin.ID, "not-a-hex-id")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestDeleteAllAdminsKeepsCaller(t *testing.T) {
	svc, users := setupUserService(t)
	ctx := context.Background()

	first, err := svc.CreateFirstAdmin(ctx, registerReq("admin@example.com"))
	require.NoError(t, err)
	_, err = svc.CreateAdmin(ctx, registerReq("a2@example.com"))
	require.NoError(t, err)
	_, err = svc.CreateAdmin(ctx, registerReq("a3@example.com"))
	require.NoError(t, err)

	deleted, err := svc.DeleteAllAdmins(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	count, err := users.CountAdmins(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProfile(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq("asha@example.com"))
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", profile.Email)
	assert.Empty(t, profile.Password)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Asha R.", "")
	require.NoError(t, err)
	assert.Equal(t, "Asha R.", updated.Name)
	assert.Equal(t, "asha@example.com", updated.Email)

	_, err = svc.UpdateProfile(ctx, user.ID, "", "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = svc.GetProfile(ctx, primitive.NewObjectID())
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	svc, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq("taken@example.com"))
	require.NoError(t, err)
	user, err := svc.Register(ctx, registerReq("asha@example.com"))
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, user.ID, "", "taken@example.com")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
}
