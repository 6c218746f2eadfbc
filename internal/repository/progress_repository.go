package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz_exam_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

// ProgressRepository 进度缓存与登录令牌，都存 Redis。
// 缓存只是加速层，关系库才是真相：读不到就回源重建。
type ProgressRepository struct {
	Redis       *redis.Client
	ctx         context.Context
	tokenTTL    time.Duration
	progressTTL time.Duration
}

func NewProgressRepository(rdb *redis.Client, tokenTTL, progressTTL time.Duration) *ProgressRepository {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	if progressTTL <= 0 {
		progressTTL = 24 * time.Hour
	}
	return &ProgressRepository{
		Redis:       rdb,
		ctx:         context.Background(),
		tokenTTL:    tokenTTL,
		progressTTL: progressTTL,
	}
}

// Identity 令牌映射出的登录身份
type Identity struct {
	UserID uint   `json:"userId"`
	Phone  string `json:"phone"`
}

// Progress 用户在进行中会话里的位置
type Progress struct {
	SessionID      uint           `json:"sessionId"`
	UserID         uint           `json:"userId"`
	Order          int            `json:"order"`
	QuestionID     uint           `json:"questionId"`
	TotalQuestions int            `json:"totalQuestions"`
	Mode           model.ExamMode `json:"mode"`
}

func tokenKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func progressKey(sessionID uint) string {
	return fmt.Sprintf("progress:%d", sessionID)
}

func (r *ProgressRepository) SaveToken(token string, id *Identity) error {
	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return r.Redis.Set(r.ctx, tokenKey(token), data, r.tokenTTL).Err()
}

// GetToken 未命中返回 (nil, nil)
func (r *ProgressRepository) GetToken(token string) (*Identity, error) {
	data, err := r.Redis.Get(r.ctx, tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (r *ProgressRepository) DeleteToken(token string) error {
	return r.Redis.Del(r.ctx, tokenKey(token)).Err()
}

func (r *ProgressRepository) SaveProgress(p *Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.Redis.Set(r.ctx, progressKey(p.SessionID), data, r.progressTTL).Err()
}

// GetProgress 未命中返回 (nil, nil)；调用方把任何错误当未命中处理
func (r *ProgressRepository) GetProgress(sessionID uint) (*Progress, error) {
	data, err := r.Redis.Get(r.ctx, progressKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) DeleteProgress(sessionID uint) error {
	return r.Redis.Del(r.ctx, progressKey(sessionID)).Err()
}
