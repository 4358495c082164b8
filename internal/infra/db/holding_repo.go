package db

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

type HoldingRepository struct {
	db *gorm.DB
}

func NewHoldingRepository(db *gorm.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

func (r *HoldingRepository) Create(ctx context.Context, holding *domain.Holding) error {
	model := mapHoldingToModel(*holding)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	holding.ID = model.ID
	holding.CreatedAt = model.CreatedAt
	return nil
}

func (r *HoldingRepository) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Holding, error) {
	var models []holdingModel
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	holdings := make([]domain.Holding, 0, len(models))
	for _, model := range models {
		holdings = append(holdings, mapHoldingToDomain(model))
	}
	return holdings, nil
}

func (r *HoldingRepository) Delete(ctx context.Context, ownerID, holdingID uint) error {
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", holdingID, ownerID).Delete(&holdingModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *HoldingRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&holdingModel{}).
		Distinct().
		Order("symbol").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

func (r *HoldingRepository) CountUnpriced(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&holdingModel{}).
		Where("current_price = 0").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *HoldingRepository) UpdateQuote(ctx context.Context, symbol string, current, previousClose decimal.Decimal, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&holdingModel{}).
		Where("symbol = ?", symbol).
		Updates(map[string]interface{}{
			"current_price":  current.InexactFloat64(),
			"previous_close": previousClose.InexactFloat64(),
			"last_updated":   at,
		}).Error
}

func mapHoldingToDomain(model holdingModel) domain.Holding {
	return domain.Holding{
		ID:            model.ID,
		OwnerID:       model.OwnerID,
		Symbol:        model.Symbol,
		Quantity:      decimal.NewFromFloat(model.Quantity),
		BuyPrice:      decimal.NewFromFloat(model.BuyPrice),
		CurrentPrice:  decimal.NewFromFloat(model.CurrentPrice),
		PreviousClose: decimal.NewFromFloat(model.PreviousClose),
		LastUpdated:   model.LastUpdated,
		CreatedAt:     model.CreatedAt,
	}
}

func mapHoldingToModel(holding domain.Holding) holdingModel {
	return holdingModel{
		ID:            holding.ID,
		OwnerID:       holding.OwnerID,
		Symbol:        holding.Symbol,
		Quantity:      holding.Quantity.InexactFloat64(),
		BuyPrice:      holding.BuyPrice.InexactFloat64(),
		CurrentPrice:  holding.CurrentPrice.InexactFloat64(),
		PreviousClose: holding.PreviousClose.InexactFloat64(),
		LastUpdated:   holding.LastUpdated,
	}
}
