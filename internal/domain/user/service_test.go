package user

import (
	"context"
	"errors"
	"testing"
)

type fakeUsersRepo struct {
	users     map[string]*User
	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: make(map[string]*User)}
}

func (r *fakeUsersRepo) CreateUser(ctx context.Context, user *User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUsersRepo) GetUserByID(ctx context.Context, userID string) (*User, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func TestRegisterSuccess(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := NewService(repo, plainHasher{})

	user, err := svc.Register(context.Background(), RegisterInput{
		Email:        "  Alice@Example.com ",
		Name:         "Alice",
		MobileNumber: "5551234567",
		Password:     "correct-horse",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected id to be generated")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash != "hashed:correct-horse" {
		t.Fatalf("expected password to be hashed, got %q", user.PasswordHash)
	}
	if repo.users[user.ID] == nil {
		t.Fatalf("user not stored")
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.users["u-1"] = &User{ID: "u-1", Email: "alice@example.com", Name: "Alice"}
	svc := NewService(repo, plainHasher{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ALICE@example.com",
		Name:     "Alice Again",
		Password: "correct-horse",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterPropagatesStorageConflict(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.createErr = ErrEmailTaken
	svc := NewService(repo, plainHasher{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "correct-horse",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := NewService(newFakeUsersRepo(), plainHasher{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "bob@example.com",
		Name:     "Bob",
		Password: "short",
	})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUsersRepo()
	svc := NewService(repo, plainHasher{})

	registered, err := svc.Register(context.Background(), RegisterInput{
		Email:    "carol@example.com",
		Name:     "Carol",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	user, err := svc.Authenticate(context.Background(), "Carol@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected %s, got %s", registered.ID, user.ID)
	}

	if _, err := svc.Authenticate(context.Background(), "carol@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	svc := NewService(newFakeUsersRepo(), plainHasher{})

	if _, err := svc.GetUser(context.Background(), "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
