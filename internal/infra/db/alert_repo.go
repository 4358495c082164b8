package db

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

type AlertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *domain.Alert) error {
	model := mapAlertToModel(*alert)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	alert.ID = model.ID
	alert.CreatedAt = model.CreatedAt
	return nil
}

func (r *AlertRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Alert, error) {
	var models []alertModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	alerts := make([]domain.Alert, 0, len(models))
	for _, model := range models {
		alerts = append(alerts, mapAlertToDomain(model))
	}
	return alerts, nil
}

func (r *AlertRepository) Delete(ctx context.Context, ownerID, alertID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", alertID, ownerID).Delete(&alertModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepository) SetActive(ctx context.Context, ownerID, alertID uint, active bool) error {
	result := r.db.WithContext(ctx).Model(&alertModel{}).Where("id = ? AND owner_id = ?", alertID, ownerID).Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// armedAlertRow is a flat scan target: gorm's Scan does not fill a
// plain-embedded model struct, so the joined columns are spelled out.
type armedAlertRow struct {
	ID                 uint       `gorm:"column:id"`
	OwnerID            uint       `gorm:"column:owner_id"`
	Symbol             string     `gorm:"column:symbol"`
	TargetPrice        float64    `gorm:"column:target_price"`
	Condition          string     `gorm:"column:condition"`
	IsActive           bool       `gorm:"column:is_active"`
	LastTriggered      *time.Time `gorm:"column:last_triggered"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	NotificationTarget string     `gorm:"column:notification_target"`
}

func (r *AlertRepository) ListArmed(ctx context.Context, symbol string) ([]domain.ArmedAlert, error) {
	var rows []armedAlertRow
	err := r.db.WithContext(ctx).
		Model(&alertModel{}).
		Select("alerts.*, users.notification_target").
		Joins("JOIN users ON users.id = alerts.owner_id").
		Where("alerts.symbol = ? AND alerts.is_active = ? AND users.notification_target IS NOT NULL AND users.notification_target != ''", symbol, true).
		Order("alerts.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	armed := make([]domain.ArmedAlert, 0, len(rows))
	for _, row := range rows {
		armed = append(armed, domain.ArmedAlert{
			Alert: domain.Alert{
				ID:            row.ID,
				OwnerID:       row.OwnerID,
				Symbol:        row.Symbol,
				TargetPrice:   decimal.NewFromFloat(row.TargetPrice),
				Condition:     domain.Condition(row.Condition),
				IsActive:      row.IsActive,
				LastTriggered: row.LastTriggered,
				CreatedAt:     row.CreatedAt,
			},
			NotificationTarget: row.NotificationTarget,
		})
	}
	return armed, nil
}

func (r *AlertRepository) MarkTriggered(ctx context.Context, alertID uint, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&alertModel{}).Where("id = ?", alertID).Update("last_triggered", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapAlertToDomain(model alertModel) domain.Alert {
	return domain.Alert{
		ID:            model.ID,
		OwnerID:       model.OwnerID,
		Symbol:        model.Symbol,
		TargetPrice:   decimal.NewFromFloat(model.TargetPrice),
		Condition:     domain.Condition(model.Condition),
		IsActive:      model.IsActive,
		LastTriggered: model.LastTriggered,
		CreatedAt:     model.CreatedAt,
	}
}

func mapAlertToModel(alert domain.Alert) alertModel {
	return alertModel{
		ID:            alert.ID,
		OwnerID:       alert.OwnerID,
		Symbol:        alert.Symbol,
		TargetPrice:   alert.TargetPrice.InexactFloat64(),
		Condition:     string(alert.Condition),
		IsActive:      alert.IsActive,
		LastTriggered: alert.LastTriggered,
	}
}
