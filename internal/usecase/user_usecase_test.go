package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

func TestStartOrGetUserIsIdempotent(t *testing.T) {
	users := &fakeUsers{}
	uc := NewUserUsecase(users)

	first, err := uc.StartOrGetUser(context.Background(), 42, "tester")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	second, err := uc.StartOrGetUser(context.Background(), 42, "tester")
	if err != nil {
		t.Fatalf("restart: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeated /start must not create a second user: %d vs %d", first.ID, second.ID)
	}
	if len(users.users) != 1 {
		t.Fatalf("users = %d, want 1", len(users.users))
	}
}

func TestStartOrGetUserDefaultsUsername(t *testing.T) {
	users := &fakeUsers{}
	uc := NewUserUsecase(users)

	user, err := uc.StartOrGetUser(context.Background(), 42, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if user.Username != "tg_42" {
		t.Fatalf("username = %q", user.Username)
	}
}

func TestStartOrGetUserLinksWebAccount(t *testing.T) {
	users := &fakeUsers{}
	web := &domain.User{Username: "tester", PasswordHash: "x"}
	if err := users.Create(context.Background(), web); err != nil {
		t.Fatalf("seed web user: %v", err)
	}

	uc := NewUserUsecase(users)
	linked, err := uc.StartOrGetUser(context.Background(), 42, "tester")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if linked.ID != web.ID {
		t.Fatalf("existing account must be linked, not duplicated: %d vs %d", linked.ID, web.ID)
	}
	if linked.NotificationTarget != "42" {
		t.Fatalf("target = %q", linked.NotificationTarget)
	}

	// The chat now resolves to the linked account.
	byChat, err := uc.GetByChat(context.Background(), 42)
	if err != nil {
		t.Fatalf("by chat: %v", err)
	}
	if byChat.ID != web.ID {
		t.Fatalf("chat lookup returned %d, want %d", byChat.ID, web.ID)
	}
}

func TestGetByChatUnregistered(t *testing.T) {
	uc := NewUserUsecase(&fakeUsers{})
	if _, err := uc.GetByChat(context.Background(), 42); !errors.Is(err, ErrUserNotRegistered) {
		t.Fatalf("expected ErrUserNotRegistered, got %v", err)
	}
}
