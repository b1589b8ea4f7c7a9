package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rdityo/nearbox/internal/helpers"
	"github.com/rdityo/nearbox/internal/models"
	"github.com/rdityo/nearbox/internal/notify"
	"go.mongodb.org/mongo-driver/bson"
)

// AuthService owns registration, credential verification and the
// password-reset token lifecycle. Hashing and token signing are invoked
// explicitly here, never as a side effect of persistence.
type AuthService struct {
	userRepo models.UserRepo
	notifier notify.Notifier
	secret   string
	baseURL  string
}

func NewAuthService(userRepo models.UserRepo, notifier notify.Notifier, secret, baseURL string) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		notifier: notifier,
		secret:   secret,
		baseURL:  baseURL,
	}
}

// Register creates an account and issues a token over its public
// projection. The presence checks run in a fixed order, first failure wins.
func (as *AuthService) Register(ctx context.Context, email, name, password string, phone []models.Phone) (string, models.UserInfo, error) {
	if email == "" {
		return "", models.UserInfo{}, models.NewFieldError("You must enter an email address.")
	}
	if name == "" {
		return "", models.UserInfo{}, models.NewFieldError("You must enter your name.")
	}
	if password == "" {
		return "", models.UserInfo{}, models.NewFieldError("You must enter a password.")
	}

	if _, err := as.userRepo.GetUserByEmail(ctx, email); err == nil {
		return "", models.UserInfo{}, models.ErrDuplicateEmail
	} else if !errors.Is(err, models.ErrNotFound) {
		return "", models.UserInfo{}, fmt.Errorf("failed to check email: %w", err)
	}

	user := &models.User{
		Email: email,
		Name:  name,
		Phone: phone,
	}
	if err := models.Validate.Struct(user); err != nil {
		return "", models.UserInfo{}, err
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return "", models.UserInfo{}, err
	}
	user.Password = hash

	created, err := as.userRepo.CreateUser(ctx, user)
	if err != nil {
		return "", models.UserInfo{}, err
	}

	info := models.SetUserInfo(created)
	token, err := helpers.GenerateToken(info, as.secret)
	if err != nil {
		return "", models.UserInfo{}, err
	}

	return token, info, nil
}

// Login verifies credentials against the stored hash and issues a token
// identical in shape to Register's. Any failure surfaces as bad credentials.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, models.UserInfo, error) {
	user, err := as.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", models.UserInfo{}, models.ErrBadCredentials
		}
		return "", models.UserInfo{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !helpers.CheckPassword(password, user.Password) {
		return "", models.UserInfo{}, models.ErrBadCredentials
	}

	info := models.SetUserInfo(user)
	token, err := helpers.GenerateToken(info, as.secret)
	if err != nil {
		return "", models.UserInfo{}, err
	}

	return token, info, nil
}

// ForgotPassword stores a fresh reset token with a one-hour expiry and sends
// the reset link. Generation, persistence and delivery are each checked;
// nothing is reported as sent unless all three succeeded.
func (as *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := as.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := helpers.GenerateResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(helpers.ResetTokenTTL)

	update := bson.M{"$set": bson.M{
		"resetPasswordToken":   token,
		"resetPasswordExpires": expires,
	}}
	if _, err := as.userRepo.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	subject, body := notify.ResetPasswordMessage(as.baseURL, token)
	if err := as.notifier.Notify(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send reset notification: %w", err)
	}

	return nil
}

// ResetPassword consumes a reset token: both reset fields are cleared in the
// same update that stores the new hash, so a token can never be replayed. An
// unknown or expired token returns before any mutation.
func (as *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := as.userRepo.GetUserByResetToken(ctx, token, time.Now())
	if err != nil {
		return err
	}

	if newPassword == "" {
		return models.NewFieldError("You must enter a password.")
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{"password": hash},
		"$unset": bson.M{
			"resetPasswordToken":   "",
			"resetPasswordExpires": "",
		},
	}
	if _, err := as.userRepo.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to save new password: %w", err)
	}

	subject, body := notify.PasswordChangedMessage()
	if err := as.notifier.Notify(user.Email, subject, body); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}

	return nil
}
