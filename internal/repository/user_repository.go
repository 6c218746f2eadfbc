package repository

import (
	"errors"
	"time"

	"quiz_exam_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByPhone(phone string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("phone = ?", phone).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOrCreateByPhone 首次登录自动建档，已有用户只刷新最后登录时间
func (r *UserRepository) FindOrCreateByPhone(phone string) (*model.User, error) {
	user, err := r.FindByPhone(phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &model.User{Phone: phone, LastLogin: time.Now()}
		if err := r.DB.Create(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	user.LastLogin = time.Now()
	if err := r.DB.Model(user).Update("last_login", user.LastLogin).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) IsWhitelisted(phone string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.PhoneWhitelist{}).Where("phone = ?", phone).Count(&count).Error
	return count > 0, err
}
