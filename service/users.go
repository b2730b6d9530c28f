package service

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/projectwalnut/backend/apperr"
	"github.com/projectwalnut/backend/auth"
	"github.com/projectwalnut/backend/config"
	"github.com/projectwalnut/backend/content"
	"github.com/projectwalnut/backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9\-_.+@]+$`)

const weakPasswordMsg = "password is too weak: it must be at least 8 characters long and contain an uppercase letter, a lowercase letter, a number, and a special character"

type UserService struct {
	Users      UserStore
	SiteConfig SiteConfigStore
	Cfg        *config.Config
	Log        *slog.Logger
}

type RegisterInput struct {
	Username        string `json:"username"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Register creates a new writer-level account, provided self-registration
// is enabled in the site configuration.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (primitive.ObjectID, error) {
	if in.Username == "" || in.Name == "" || in.Password == "" || in.ConfirmPassword == "" {
		return primitive.NilObjectID, apperr.Validation("", "one or more mandatory fields are missing")
	}
	if !usernamePattern.MatchString(in.Username) {
		return primitive.NilObjectID, apperr.Validation("username", "username can only contain letters, numbers, hyphens, underscores, dots, plus signs, and at-symbols")
	}
	existing, err := s.Users.UserByUsername(ctx, in.Username)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if existing != nil {
		return primitive.NilObjectID, apperr.ErrDuplicateUsername
	}
	if in.Password != in.ConfirmPassword {
		return primitive.NilObjectID, apperr.Validation("confirmPassword", "password and confirm password do not match")
	}
	if !auth.IsStrongPassword(in.Password) {
		return primitive.NilObjectID, apperr.Validation("password", weakPasswordMsg)
	}

	sc, err := s.SiteConfig.GetSiteConfig(ctx)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if sc == nil || !sc.IsRegistrationEnabled {
		s.Log.Warn("registration attempt while registration is disabled", "username", in.Username)
		return primitive.NilObjectID, apperr.ErrRegistrationDisabled
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return primitive.NilObjectID, err
	}
	now := time.Now()
	id, err := s.Users.CreateUser(ctx, &models.User{
		Username:     in.Username,
		Name:         in.Name,
		PasswordHash: hash,
		Privilege:    models.PrivilegeWriter,
		CreatedAt:    now,
		ModifiedAt:   now,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}
	s.Log.Info("user registered", "username", in.Username)
	return id, nil
}

// Authenticate verifies credentials and returns a signed session token plus
// the user. Unknown username and wrong password produce the same error so
// responses cannot be used to enumerate accounts. The reset-pending check
// runs after existence is confirmed and before password comparison.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (string, *models.User, error) {
	if username == "" || password == "" {
		return "", nil, apperr.Validation("", "username and password are mandatory")
	}
	user, err := s.Users.UserByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		s.Log.Warn("login attempt for unknown username", "username", username)
		return "", nil, apperr.ErrInvalidCredentials
	}
	if user.IsPasswordReset {
		s.Log.Warn("login attempt on reset-locked account", "username", username)
		return "", nil, apperr.ErrLoginDisabled
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.Log.Warn("login attempt with invalid password", "username", username)
		return "", nil, apperr.ErrInvalidCredentials
	}

	token, err := auth.IssueToken(user.ID.Hex(), []byte(s.Cfg.JWTSecret), s.Cfg.TokenTTL)
	if err != nil {
		return "", nil, err
	}
	s.Log.Info("login successful", "username", username)
	return token, user, nil
}

// AdminListUsers returns every account except the acting webmaster's own,
// for the webmaster panel.
func (s *UserService) AdminListUsers(ctx context.Context, actingID primitive.ObjectID) ([]models.User, error) {
	acting, err := s.requireUserManager(ctx, actingID, "list users")
	if err != nil {
		return nil, err
	}
	return s.Users.ListUsersExcept(ctx, acting.ID)
}

type AdminUpdateUserInput struct {
	Name string `json:"name"`
	// Privilege is optional; nil keeps the stored level.
	Privilege *int `json:"privilege"`
	// TempPassword, when set, starts the password-reset handshake: it is
	// strength-checked, hashed into adminTempPassword and login is disabled.
	TempPassword string `json:"tempPassword"`
}

// AdminUpdateUser edits a user's display name, privilege level and reset
// state. Webmaster only.
func (s *UserService) AdminUpdateUser(ctx context.Context, actingID, targetID primitive.ObjectID, in AdminUpdateUserInput) error {
	acting, err := s.requireUserManager(ctx, actingID, "edit user")
	if err != nil {
		return err
	}
	target, err := s.Users.UserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.ErrNotFound
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return apperr.Validation("name", "name is a required field")
	}
	sanitizedName := content.SanitizePlainText(name)
	if sanitizedName != name {
		s.Log.Warn("markup stripped from user display name", "editor", acting.Username, "target", target.Username)
	}

	if in.TempPassword != "" {
		temp := strings.TrimSpace(in.TempPassword)
		if !auth.IsStrongPassword(temp) {
			s.Log.Warn("weak temporary password rejected", "editor", acting.Username, "target", target.Username)
			return apperr.Validation("tempPassword", weakPasswordMsg)
		}
		tempHash, err := auth.HashPassword(temp)
		if err != nil {
			return err
		}
		target.BeginPasswordReset(tempHash)
	} else {
		target.IsPasswordReset = false
		target.AdminTempPassword = ""
	}

	if in.Privilege != nil {
		level := models.Privilege(*in.Privilege)
		if !level.Valid() {
			return apperr.Validation("privilege", "invalid privilege level")
		}
		target.Privilege = level
	}

	target.Name = sanitizedName
	target.ModifiedAt = time.Now()
	if err := s.Users.SaveUser(ctx, target); err != nil {
		return err
	}
	s.Log.Info("user updated", "editor", acting.Username, "target", target.Username)
	return nil
}

// AdminDeleteUser removes an account. Webmaster only; self-deletion fails
// with a distinct error and never touches storage.
func (s *UserService) AdminDeleteUser(ctx context.Context, actingID, targetID primitive.ObjectID) error {
	acting, err := s.requireUserManager(ctx, actingID, "delete user")
	if err != nil {
		return err
	}
	target, err := s.Users.UserByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return apperr.ErrNotFound
	}
	if acting.ID == target.ID {
		s.Log.Warn("webmaster attempted self-deletion", "username", acting.Username)
		return apperr.ErrSelfDelete
	}
	if err := s.Users.DeleteUser(ctx, targetID); err != nil {
		return err
	}
	s.Log.Info("user deleted", "requestedBy", acting.Username, "deleted", target.Username)
	return nil
}

type ResetPasswordInput struct {
	Username        string `json:"username"`
	TempPassword    string `json:"tempPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPassword completes the webmaster-initiated handshake: the account
// must be in the consistent reset-pending state, the temporary credential
// must verify, and the new password must be strong, confirmed, and different
// from the temporary one.
func (s *UserService) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	if in.Username == "" || in.TempPassword == "" || in.NewPassword == "" || in.ConfirmPassword == "" {
		return apperr.Validation("", "username, temporary password, new password and confirmation are all required")
	}
	username := content.SanitizePlainText(in.Username)
	user, err := s.Users.UserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.ErrNotFound
	}
	if !user.ResetPending() {
		return apperr.Validation("username", "user profile is not approved for reset by webmaster")
	}
	if in.NewPassword == in.TempPassword {
		return apperr.Validation("newPassword", "the temporary password cannot be reused as the new password")
	}
	if !auth.IsStrongPassword(in.NewPassword) {
		return apperr.Validation("newPassword", weakPasswordMsg)
	}
	if in.NewPassword != in.ConfirmPassword {
		return apperr.Validation("confirmPassword", "new password and confirm password do not match")
	}
	if !auth.VerifyPassword(in.TempPassword, user.AdminTempPassword) {
		s.Log.Warn("password reset with incorrect temporary password", "username", username)
		return apperr.ErrInvalidCredentials
	}

	newHash, err := auth.HashPassword(in.NewPassword)
	if err != nil {
		return err
	}
	user.CompletePasswordReset(newHash)
	user.ModifiedAt = time.Now()
	if err := s.Users.SaveUser(ctx, user); err != nil {
		return err
	}
	s.Log.Info("password reset completed", "username", username)
	return nil
}

func (s *UserService) requireUserManager(ctx context.Context, actingID primitive.ObjectID, action string) (*models.User, error) {
	acting, err := s.Users.UserByID(ctx, actingID)
	if err != nil {
		return nil, err
	}
	if acting == nil {
		return nil, apperr.ErrNotFound
	}
	if !acting.Privilege.CanManageUsers() {
		s.Log.Warn("unauthorized user management attempt", "username", acting.Username, "action", action)
		return nil, apperr.ErrForbidden
	}
	return acting, nil
}
