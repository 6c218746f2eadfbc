package service

import (
	"regexp"

	"quiz_exam_backend/internal/config"
	"quiz_exam_backend/internal/model"
	"quiz_exam_backend/internal/repository"
	"quiz_exam_backend/internal/util"
)

var phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)

type AuthService struct {
	UserRepo *repository.UserRepository
	Progress *repository.ProgressRepository
	Cfg      *config.Live
}

func NewAuthService(userRepo *repository.UserRepository, progress *repository.ProgressRepository, cfg *config.Live) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Progress: progress,
		Cfg:      cfg,
	}
}

// Login 白名单校验通过后建档/更新用户，签发不透明令牌写入 Redis
func (s *AuthService) Login(phone string) (string, *model.User, error) {
	if !phonePattern.MatchString(phone) {
		return "", nil, util.ErrInvalidPhone
	}

	ok, err := s.UserRepo.IsWhitelisted(phone)
	if err != nil {
		return "", nil, err
	}
	if !ok {
		return "", nil, util.ErrPhoneNotWhitelisted
	}

	user, err := s.UserRepo.FindOrCreateByPhone(phone)
	if err != nil {
		return "", nil, err
	}

	token := util.GenerateToken()
	if err := s.Progress.SaveToken(token, &repository.Identity{
		UserID: user.ID,
		Phone:  user.Phone,
	}); err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (s *AuthService) Logout(token string) error {
	return s.Progress.DeleteToken(token)
}
