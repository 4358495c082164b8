package domain

import "time"

// User owns holdings and alerts. PasswordHash is written by the web
// collaborator only; NotificationTarget is the Telegram chat id used
// for alert delivery and is empty until the user links a chat.
type User struct {
	ID                 uint
	Username           string
	PasswordHash       string
	NotificationTarget string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasNotificationTarget reports whether alerts can be delivered to the user.
func (u *User) HasNotificationTarget() bool {
	return u.NotificationTarget != ""
}
