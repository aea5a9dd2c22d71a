package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tourcraft/tourcraft-api/internal/apperrors"
	"github.com/tourcraft/tourcraft-api/internal/models"
	"github.com/tourcraft/tourcraft-api/internal/store"
	"github.com/tourcraft/tourcraft-api/internal/utils"
)

const minPasswordLen = 8

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserService owns the credential flows: registration, login, password
// change, admin bootstrap and the admin roster operations.
type UserService struct {
	users  store.UserStore
	tokens *utils.JWTManager
}

func NewUserService(users store.UserStore, tokens *utils.JWTManager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// Register creates a regular user. Self-registration never grants a
// privileged role.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	return s.createUser(ctx, req, models.RoleUser, false, false)
}

// Login verifies credentials and issues a bearer token. The error is
// the same for an unknown email and a wrong password, so callers
// cannot probe which emails exist.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, apperrors.Validation("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, store.ErrNotFound) {
		return "", nil, apperrors.Unauthenticated("Invalid credentials")
	}
	if err != nil {
		return "", nil, apperrors.Internal("Failed to look up user", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", nil, apperrors.Unauthenticated("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		return "", nil, apperrors.Internal("Could not generate token", err)
	}
	user.Password = ""
	return token, user, nil
}

// ChangePassword replaces the caller's password hash after the old
// password verifies against the stored one.
func (s *UserService) ChangePassword(ctx context.Context, callerID primitive.ObjectID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, callerID)
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.NotFound("User not found")
	}
	if err != nil {
		return apperrors.Internal("Failed to look up user", err)
	}

	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		return apperrors.Validation("Old password is incorrect")
	}
	if len(newPassword) < minPasswordLen {
		return apperrors.Validation("Password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apperrors.Internal("Failed to hash password", err)
	}
	if err := s.users.UpdatePassword(ctx, callerID, hash); err != nil {
		return apperrors.Internal("Failed to change password", err)
	}
	return nil
}

// CreateFirstAdmin is the unauthenticated bootstrap: it succeeds only
// while no admin exists. The partial unique index on bootstrapAdmin
// makes the check-and-create single-winner under concurrency; the
// count pre-check just keeps the error message friendly.
func (s *UserService) CreateFirstAdmin(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	count, err := s.users.CountAdmins(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to check for existing admins", err)
	}
	if count > 0 {
		return nil, apperrors.ConflictBadRequest("Admin user already exists. Use the admin-protected endpoint.")
	}
	return s.createUser(ctx, req, models.RoleAdmin, true, true)
}

// CreateAdmin creates an additional administrator. Admin only.
func (s *UserService) CreateAdmin(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	return s.createUser(ctx, req, models.RoleAdmin, false, true)
}

// CreateUserByAdmin creates an identity with an explicit role. Any
// value other than "admin" collapses to "user".
func (s *UserService) CreateUserByAdmin(ctx context.Context, req *RegisterRequest, role models.Role) (*models.User, error) {
	if role != models.RoleAdmin {
		role = models.RoleUser
	}
	return s.createUser(ctx, req, role, false, true)
}

// DeleteUser removes an identity. Admin only; self-deletion is
// refused.
func (s *UserService) DeleteUser(ctx context.Context, callerID primitive.ObjectID, id string) error {
	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.Validation("Invalid user ID")
	}
	if userID == callerID {
		return apperrors.Validation("Cannot delete your own account")
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("Failed to delete user", err)
	}
	return nil
}

// DeleteAllAdmins removes every admin except the caller and reports
// how many were removed.
func (s *UserService) DeleteAllAdmins(ctx context.Context, callerID primitive.ObjectID) (int64, error) {
	count, err := s.users.DeleteAdminsExcept(ctx, callerID)
	if err != nil {
		return 0, apperrors.Internal("Failed to delete admin users", err)
	}
	return count, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve users", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *UserService) GetProfile(ctx context.Context, callerID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.Internal("Failed to retrieve profile", err)
	}
	user.Password = ""
	return user, nil
}

// UpdateProfile changes name and/or email. Passwords never travel
// through this path.
func (s *UserService) UpdateProfile(ctx context.Context, callerID primitive.ObjectID, name, email string) (*models.User, error) {
	if name == "" && email == "" {
		return nil, apperrors.Validation("No update fields provided")
	}
	if email != "" {
		email = strings.ToLower(strings.TrimSpace(email))
	}

	err := s.users.UpdateProfile(ctx, callerID, name, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, apperrors.NotFound("User not found")
	case errors.Is(err, store.ErrDuplicateEmail):
		return nil, apperrors.Conflict("An account with this email already exists")
	case err != nil:
		return nil, apperrors.Internal("Failed to update profile", err)
	}
	return s.GetProfile(ctx, callerID)
}

// adminCreated switches the duplicate-email response to the terse 400
// the admin endpoints report; self-registration keeps the 409.
func (s *UserService) createUser(ctx context.Context, req *RegisterRequest, role models.Role, bootstrap, adminCreated bool) (*models.User, error) {
	switch {
	case strings.TrimSpace(req.Name) == "":
		return nil, apperrors.Validation("name is required")
	case strings.TrimSpace(req.Email) == "":
		return nil, apperrors.Validation("email is required")
	case len(req.Password) < minPasswordLen:
		return nil, apperrors.Validation("Password must be at least 8 characters")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Password:       hash,
		Role:           role,
		BootstrapAdmin: bootstrap,
		CreatedAt:      time.Now(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrBootstrapTaken):
			return nil, apperrors.ConflictBadRequest("Admin user already exists. Use the admin-protected endpoint.")
		case errors.Is(err, store.ErrDuplicateEmail):
			if adminCreated {
				return nil, apperrors.ConflictBadRequest("User already exists")
			}
			return nil, apperrors.Conflict("An account with this email already exists")
		}
		return nil, apperrors.Internal("Failed to create user", err)
	}

	user.Password = ""
	return user, nil
}
