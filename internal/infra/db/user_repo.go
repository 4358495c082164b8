package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/imRishabh-ofc/narad-muni/internal/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByNotificationTarget(ctx context.Context, target string) (*domain.User, error) {
	var model userModel
	if err := r.db.WithContext(ctx).Where("notification_target = ?", target).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapUserToDomain(model), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model userModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapUserToDomain(model), nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uint) (*domain.User, error) {
	var model userModel
	if err := r.db.WithContext(ctx).First(&model, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return mapUserToDomain(model), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	model := mapUserToModel(*user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}
	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *UserRepository) SetNotificationTarget(ctx context.Context, userID uint, target string) error {
	var value *string
	if target != "" {
		value = &target
	}
	result := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", userID).Update("notification_target", value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func mapUserToDomain(model userModel) *domain.User {
	target := ""
	if model.NotificationTarget != nil {
		target = *model.NotificationTarget
	}
	return &domain.User{
		ID:                 model.ID,
		Username:           model.Username,
		PasswordHash:       model.PasswordHash,
		NotificationTarget: target,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func mapUserToModel(user domain.User) userModel {
	model := userModel{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
	}
	if user.NotificationTarget != "" {
		target := user.NotificationTarget
		model.NotificationTarget = &target
	}
	return model
}
