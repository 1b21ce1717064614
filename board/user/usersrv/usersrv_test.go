package usersrv

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jobpulse/jobpulse/board/user"
	"github.com/jobpulse/jobpulse/pkg/errx"
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

type fakeUserRepo struct {
	user.Repository

	byEmail map[kernel.Email]*user.User
	created []*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[kernel.Email]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if _, taken := r.byEmail[u.Email]; taken {
		return user.ErrEmailTaken()
	}
	r.byEmail[u.Email] = u
	r.created = append(r.created, u)
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email kernel.Email) (*user.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, user.ErrUserNotFound()
	}
	return u, nil
}

func newTestService(repo *fakeUserRepo) *UserService {
	return NewUserService(repo, auth.NewJWTService("test-secret", time.Hour, "test"))
}

func validRegisterRequest() user.RegisterRequest {
	return user.RegisterRequest{
		Email:    "dev@example.com",
		Password: "hunter2hunter2",
		FullName: "Dev Example",
		Role:     auth.RoleJobSeeker,
	}
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), validRegisterRequest())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if resp.Token == "" {
		t.Fatalf("expected a token on registration")
	}
	if !resp.User.IsActive {
		t.Fatalf("new accounts should be active")
	}
	if resp.User.PasswordHash == "hunter2hunter2" {
		t.Fatalf("password stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(resp.User.PasswordHash), []byte("hunter2hunter2")) != nil {
		t.Fatalf("stored hash does not verify the original password")
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeUserRepo())

	req := validRegisterRequest()
	req.Role = auth.RoleAdmin

	_, err := svc.Register(context.Background(), req)
	if !errx.IsCode(err, user.CodeInvalidRole) {
		t.Fatalf("admin accounts must not be self-service, got %v", err)
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeUserRepo())

	req := validRegisterRequest()
	req.Password = "short"

	_, err := svc.Register(context.Background(), req)
	if !errx.IsCode(err, user.CodeValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	_, err := svc.Register(context.Background(), validRegisterRequest())
	if !errx.IsCode(err, user.CodeEmailTaken) {
		t.Fatalf("expected email-taken conflict, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	resp, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "dev@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a token on login")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Wrong password and unknown email come back as the same error
	_, wrongPass := svc.Login(context.Background(), user.LoginRequest{
		Email:    "dev@example.com",
		Password: "not-the-password",
	})
	_, unknownEmail := svc.Login(context.Background(), user.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
	})

	if !errx.IsCode(wrongPass, user.CodeInvalidCredentials) {
		t.Fatalf("wrong password: expected invalid credentials, got %v", wrongPass)
	}
	if !errx.IsCode(unknownEmail, user.CodeInvalidCredentials) {
		t.Fatalf("unknown email: expected invalid credentials, got %v", unknownEmail)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), validRegisterRequest()); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	repo.byEmail["dev@example.com"].IsActive = false

	_, err := svc.Login(context.Background(), user.LoginRequest{
		Email:    "dev@example.com",
		Password: "hunter2hunter2",
	})
	if !errx.IsCode(err, user.CodeAccountDeactivated) {
		t.Fatalf("expected account-deactivated, got %v", err)
	}
}
