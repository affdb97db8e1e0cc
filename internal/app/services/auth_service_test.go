package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/models/dto"
	"github.com/campusworks/transcript-tracker/internal/pkg/apperrors"
	"github.com/campusworks/transcript-tracker/internal/pkg/auth"
)

type authFixture struct {
	users   *fakeUserRepo
	resets  *fakeResetRepo
	mailer  *fakeMailer
	service *AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		users:  newFakeUserRepo(),
		resets: newFakeResetRepo(),
		mailer: &fakeMailer{},
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "transcript-tracker-test",
	})
	f.service = NewAuthService(f.users, f.resets, jwtService, f.mailer, "http://localhost:3000", zerolog.Nop())
	return f
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	resp, err := f.service.Register(ctx, &dto.RegisterRequest{
		Email:    "John.Doe@School.edu",
		FullName: "John Doe",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.User.Role != string(models.RoleStudent) {
		t.Errorf("self-registration role = %s, want student", resp.User.Role)
	}
	if resp.User.Email != "john.doe@school.edu" {
		t.Errorf("email not normalized: %s", resp.User.Email)
	}
	if resp.Token.AccessToken == "" || resp.Token.TokenType != "Bearer" {
		t.Errorf("token response = %+v", resp.Token)
	}

	// Duplicate registration is rejected regardless of case
	_, err = f.service.Register(ctx, &dto.RegisterRequest{
		Email:    "john.doe@school.edu",
		FullName: "John Doe",
		Password: "secret123",
	})
	if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("duplicate registration: got %v, want email already exists", err)
	}

	if _, err := f.service.Login(ctx, &dto.LoginRequest{Email: "john.doe@school.edu", Password: "secret123"}); err != nil {
		t.Errorf("Login with correct password failed: %v", err)
	}
	if _, err := f.service.Login(ctx, &dto.LoginRequest{Email: "john.doe@school.edu", Password: "wrong-pass1"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want invalid credentials", err)
	}
	if _, err := f.service.Login(ctx, &dto.LoginRequest{Email: "nobody@school.edu", Password: "secret123"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want invalid credentials", err)
	}
}

func TestRegisterPasswordPolicy(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "ab1"},
		{"no digit", "abcdefgh"},
		{"no letter", "12345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Register(ctx, &dto.RegisterRequest{
				Email:    "new@school.edu",
				FullName: "New Student",
				Password: tc.password,
			})
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Errorf("got %v, want validation failure", err)
			}
		})
	}
}

func TestPasswordResetFlow(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	if _, err := f.service.Register(ctx, &dto.RegisterRequest{
		Email:    "john@school.edu",
		FullName: "John Doe",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := f.service.ForgotPassword(ctx, "john@school.edu"); err != nil {
		t.Fatalf("ForgotPassword failed: %v", err)
	}
	if len(f.mailer.sent) != 1 {
		t.Fatalf("sent %d reset emails, want 1", len(f.mailer.sent))
	}

	var token string
	for tok := range f.resets.resets {
		token = tok
	}
	if token == "" {
		t.Fatal("no reset token stored")
	}

	emailAddr, err := f.service.VerifyResetToken(ctx, token)
	if err != nil || emailAddr != "john@school.edu" {
		t.Fatalf("VerifyResetToken = %q, %v", emailAddr, err)
	}

	if err := f.service.ResetPassword(ctx, token, "newsecret9"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if _, err := f.service.Login(ctx, &dto.LoginRequest{Email: "john@school.edu", Password: "newsecret9"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}

	// Consumed tokens are gone
	if _, err := f.service.VerifyResetToken(ctx, token); !errors.Is(err, apperrors.ErrInvalidPasswordResetToken) {
		t.Errorf("consumed token: got %v, want invalid reset token", err)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	f := newAuthFixture()

	if err := f.service.ForgotPassword(context.Background(), "ghost@school.edu"); err != nil {
		t.Errorf("unknown email must not error, got %v", err)
	}
	if len(f.mailer.sent) != 0 {
		t.Errorf("sent %d emails for unknown address, want 0", len(f.mailer.sent))
	}
}

func TestResetTokenExpiry(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	user := f.users.add("John Doe", "john@school.edu", models.RoleStudent)
	expired := &models.PasswordReset{
		Token:     "expired-token",
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	if err := f.resets.Create(ctx, expired); err != nil {
		t.Fatalf("seeding token failed: %v", err)
	}

	if _, err := f.service.VerifyResetToken(ctx, "expired-token"); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("expired verify: got %v, want token expired", err)
	}
	if err := f.service.ResetPassword(ctx, "expired-token", "newsecret9"); !errors.Is(err, apperrors.ErrTokenExpired) {
		t.Errorf("expired reset: got %v, want token expired", err)
	}
}

func TestUserServiceCreateAndDelete(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, &fakeMailer{}, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &dto.CreateUserRequest{
		Email:    "Jane@School.edu",
		FullName: "Jane Smith",
		Password: "staffpass1",
		Role:     "staff",
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if created.Role != "staff" || created.Email != "jane@school.edu" {
		t.Errorf("created user = %+v", created)
	}

	// Admin provisioning cannot mint student accounts
	_, err = svc.CreateUser(ctx, &dto.CreateUserRequest{
		Email:    "s@school.edu",
		FullName: "Some Student",
		Password: "studpass1",
		Role:     "student",
	})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("student role: got %v, want validation failure", err)
	}

	admin := users.add("Ada Admin", "ada@school.edu", models.RoleAdmin)
	if err := svc.DeleteUser(ctx, admin.ID, admin.ID); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("self-delete: got %v, want validation failure", err)
	}
	if err := svc.DeleteUser(ctx, admin.ID, created.ID); err != nil {
		t.Errorf("delete failed: %v", err)
	}
}

func TestUserServiceResetPasswordEmailsUser(t *testing.T) {
	users := newFakeUserRepo()
	staff := users.add("Jane Smith", "jane@school.edu", models.RoleStaff)
	mailer := &fakeMailer{}
	svc := NewUserService(users, mailer, zerolog.Nop())
	ctx := context.Background()

	if err := svc.ResetPassword(ctx, staff.ID, "newstaffpass1"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(mailer.sent))
	}
	if mailer.sent[0].To != "jane@school.edu" || mailer.sent[0].Subject != "Your Password Has Been Reset" {
		t.Errorf("sent = %+v", mailer.sent[0])
	}

	// A dead mailer must not undo the reset itself
	mailer.fail = true
	if err := svc.ResetPassword(ctx, staff.ID, "anotherpass2"); err != nil {
		t.Errorf("ResetPassword with failing mailer: %v", err)
	}
}

func TestUserServiceListStaff(t *testing.T) {
	users := newFakeUserRepo()
	users.add("John Doe", "john@school.edu", models.RoleStudent)
	users.add("Jane Smith", "jane@school.edu", models.RoleStaff)
	users.add("Ada Admin", "ada@school.edu", models.RoleAdmin)
	svc := NewUserService(users, &fakeMailer{}, zerolog.Nop())

	roster, err := svc.ListStaff(context.Background())
	if err != nil {
		t.Fatalf("ListStaff failed: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("roster has %d entries, want 2 (staff + admin)", len(roster))
	}
	for _, u := range roster {
		if strings.EqualFold(u.Role, "student") {
			t.Errorf("student leaked into the staff roster: %+v", u)
		}
	}
}
