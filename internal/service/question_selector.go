package service

import (
	"quiz_exam_backend/internal/config"
	"quiz_exam_backend/internal/model"
	"quiz_exam_backend/internal/repository"
)

// QuestionSelector 组卷引擎。默认配额 20 判断 + 20 单选 + 10 多选；
// 登录用户按答题历史做优先抽取，游客纯随机。
type QuestionSelector struct {
	QuestionRepo *repository.QuestionRepository
	Cfg          *config.Live
}

func NewQuestionSelector(questionRepo *repository.QuestionRepository, cfg *config.Live) *QuestionSelector {
	return &QuestionSelector{QuestionRepo: questionRepo, Cfg: cfg}
}

// Select 返回去重后的有序题目列表。overrideTotal > 0 时忽略配额，
// 直接在过滤后的题池里随机抽 overrideTotal 道；题池不够就少抽，不报错。
func (s *QuestionSelector) Select(userID uint, categoryBig, categorySmall string, overrideTotal int) ([]model.Question, error) {
	if overrideTotal > 0 {
		return s.QuestionRepo.SampleRandom("", categoryBig, categorySmall, overrideTotal, nil)
	}

	judgment, single, multiple := s.Cfg.Load().Quiz.DefaultQuotas()
	quotas := []struct {
		qType model.QuestionType
		count int
	}{
		{model.Judgment, judgment},
		{model.SingleChoice, single},
		{model.MultipleChoice, multiple},
	}
	target := judgment + single + multiple

	selected := make([]model.Question, 0, target)
	seen := make(map[uint]bool, target)

	for _, quota := range quotas {
		var (
			qs  []model.Question
			err error
		)
		if userID > 0 {
			qs, err = s.QuestionRepo.SampleByPriority(userID, quota.qType, categoryBig, categorySmall, quota.count)
		} else {
			qs, err = s.QuestionRepo.SampleRandom(quota.qType, categoryBig, categorySmall, quota.count, nil)
		}
		if err != nil {
			return nil, err
		}
		// 数据不一致时同一题可能落进多个题型桶，这里兜底去重
		for _, q := range qs {
			if !seen[q.ID] {
				seen[q.ID] = true
				selected = append(selected, q)
			}
		}
	}

	// 配额没抽满就随机补齐，直到达标或题池耗尽
	if len(selected) < target {
		exclude := make([]uint, 0, len(selected))
		for id := range seen {
			exclude = append(exclude, id)
		}
		extra, err := s.QuestionRepo.SampleRandom("", categoryBig, categorySmall, target-len(selected), exclude)
		if err != nil {
			return nil, err
		}
		for _, q := range extra {
			if !seen[q.ID] {
				seen[q.ID] = true
				selected = append(selected, q)
			}
		}
	}

	return selected, nil
}
