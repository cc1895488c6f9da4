package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/fastygo/taskspace/domain"
	"github.com/fastygo/taskspace/repository/memory"
)

type countingViews struct{ abandoned int }

func (c *countingViews) Abandon() { c.abandoned++ }

func newUseCase() (*UseCase, *countingViews) {
	views := &countingViews{}
	table := domain.CredentialTable{
		"sheraz": {Password: "admin123", Role: domain.RoleAdmin},
		"haris":  {Password: "user123", Role: domain.RoleUser},
	}
	return New(table, memory.NewSessionRepository(), views, nil), views
}

func TestLoginConfiguredUsers(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	tests := []struct {
		username, password string
		role               domain.Role
	}{
		{"sheraz", "admin123", domain.RoleAdmin},
		{"haris", "user123", domain.RoleUser},
	}
	for _, tt := range tests {
		session, err := uc.Login(ctx, tt.username, tt.password)
		if err != nil {
			t.Fatalf("Login(%s) failed: %v", tt.username, err)
		}
		if session.Role != tt.role || session.Username != tt.username {
			t.Errorf("Unexpected session %+v", session)
		}
		if current, ok := uc.Current(); !ok || current.Role != tt.role {
			t.Errorf("Expected current session with role %s, got %+v", tt.role, current)
		}
	}
}

func TestLoginRejectsUnknownAndMismatched(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()

	pairs := [][2]string{
		{"sheraz", "user123"},
		{"haris", "USER123"},
		{"HARIS", "user123"},
		{"mallory", "admin123"},
		{"", ""},
	}
	for _, p := range pairs {
		if _, err := uc.Login(ctx, p[0], p[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("Login(%q) expected ErrInvalidCredentials, got %v", p[0], err)
		}
		if _, ok := uc.Current(); ok {
			t.Fatalf("Failed login must leave the session empty")
		}
	}
}

func TestFailedLoginKeepsExistingSession(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	if _, err := uc.Login(ctx, "haris", "user123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := uc.Login(ctx, "sheraz", "wrong"); err == nil {
		t.Fatalf("Expected failure")
	}
	if current, _ := uc.Current(); current.Username != "haris" {
		t.Errorf("Expected haris to stay logged in, got %+v", current)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	uc, views := newUseCase()
	ctx := context.Background()
	if _, err := uc.Login(ctx, "sheraz", "admin123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	uc.Logout(ctx)
	uc.Logout(ctx)

	if _, err := uc.Require(); !errors.Is(err, domain.ErrNoSession) {
		t.Errorf("Expected ErrNoSession, got %v", err)
	}
	if len(uc.Menu()) != 0 {
		t.Errorf("Expected empty menu without a session")
	}
	if views.abandoned != 2 {
		t.Errorf("Expected each logout to abandon the view, got %d", views.abandoned)
	}
}

func TestMenuFollowsRole(t *testing.T) {
	uc, _ := newUseCase()
	if _, err := uc.Login(context.Background(), "haris", "user123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	menu := uc.Menu()
	if len(menu) != 1 || menu[0].View != domain.ViewTasks {
		t.Errorf("Expected only View Tasks, got %+v", menu)
	}
}
