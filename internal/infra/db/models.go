package db

import "time"

// The schema is shared with the web front end, so table and column
// names are pinned explicitly and money lands as plain floats.

type userModel struct {
	ID                 uint    `gorm:"primaryKey"`
	Username           string  `gorm:"uniqueIndex;not null"`
	PasswordHash       string  `gorm:"column:password_hash"`
	NotificationTarget *string `gorm:"column:notification_target"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (userModel) TableName() string { return "users" }

type holdingModel struct {
	ID            uint      `gorm:"primaryKey"`
	OwnerID       uint      `gorm:"column:owner_id;index;not null"`
	Symbol        string    `gorm:"index;not null"`
	Quantity      float64   `gorm:"not null"`
	BuyPrice      float64   `gorm:"column:buy_price;not null"`
	CurrentPrice  float64   `gorm:"column:current_price;default:0"`
	PreviousClose float64   `gorm:"column:previous_close;default:0"`
	LastUpdated   time.Time `gorm:"column:last_updated"`
	CreatedAt     time.Time
}

func (holdingModel) TableName() string { return "holdings" }

type alertModel struct {
	ID            uint       `gorm:"primaryKey"`
	OwnerID       uint       `gorm:"column:owner_id;index:idx_alerts_owner_active,priority:1;not null"`
	Symbol        string     `gorm:"index;not null"`
	TargetPrice   float64    `gorm:"column:target_price;not null"`
	Condition     string     `gorm:"not null"`
	// No gorm-level default: a zero-value bool would be dropped from the
	// INSERT and silently come back true. Callers always set it.
	IsActive      bool       `gorm:"column:is_active;index:idx_alerts_owner_active,priority:2;not null"`
	LastTriggered *time.Time `gorm:"column:last_triggered"`
	CreatedAt     time.Time
}

func (alertModel) TableName() string { return "alerts" }
