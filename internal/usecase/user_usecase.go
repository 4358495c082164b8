package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

var (
	ErrUserNotRegistered = errors.New("user not registered")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidTarget     = errors.New("invalid target price")
	ErrSymbolUnknown     = errors.New("symbol not listed")
	ErrHoldingNotFound   = errors.New("holding not found")
	ErrAlertNotFound     = errors.New("alert not found")
)

type UserUsecase struct {
	users domain.UserRepository
}

func NewUserUsecase(users domain.UserRepository) *UserUsecase {
	return &UserUsecase{users: users}
}

// StartOrGetUser registers the chat as a user, binding the chat id as
// the notification target alerts are delivered to. An account the web
// collaborator already created under the same username gets its chat
// linked instead of a duplicate row.
func (u *UserUsecase) StartOrGetUser(ctx context.Context, chatID int64, username string) (*domain.User, error) {
	target := chatTarget(chatID)

	user, err := u.users.GetByNotificationTarget(ctx, target)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if username == "" {
		username = fmt.Sprintf("tg_%d", chatID)
	}

	existing, err := u.users.GetByUsername(ctx, username)
	if err == nil {
		if err := u.users.SetNotificationTarget(ctx, existing.ID, target); err != nil {
			return nil, err
		}
		existing.NotificationTarget = target
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	newUser := &domain.User{
		Username:           username,
		NotificationTarget: target,
	}
	if err := u.users.Create(ctx, newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}

func (u *UserUsecase) GetByChat(ctx context.Context, chatID int64) (*domain.User, error) {
	return lookupUser(ctx, u.users, chatID)
}

func chatTarget(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func lookupUser(ctx context.Context, users domain.UserRepository, chatID int64) (*domain.User, error) {
	user, err := users.GetByNotificationTarget(ctx, chatTarget(chatID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotRegistered
		}
		return nil, err
	}
	return user, nil
}
