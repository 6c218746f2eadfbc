package repository

import (
	"fmt"

	"quiz_exam_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// randomExpr MySQL 用 RAND()，其它方言（测试用 sqlite）用 RANDOM()
func (r *QuestionRepository) randomExpr() string {
	if r.DB.Dialector.Name() == "mysql" {
		return "RAND()"
	}
	return "RANDOM()"
}

func (r *QuestionRepository) applyFilters(db *gorm.DB, qType model.QuestionType, categoryBig, categorySmall string) *gorm.DB {
	if qType != "" {
		db = db.Where("questions.type = ?", qType)
	}
	if categoryBig != "" {
		db = db.Where("questions.category_big = ?", categoryBig)
	}
	if categorySmall != "" {
		db = db.Where("questions.category_small = ?", categorySmall)
	}
	return db
}

// SampleRandom 均匀随机抽题，exclude 里的题不再出现
func (r *QuestionRepository) SampleRandom(qType model.QuestionType, categoryBig, categorySmall string, limit int, exclude []uint) ([]model.Question, error) {
	if limit <= 0 {
		return nil, nil
	}

	db := r.applyFilters(r.DB.Model(&model.Question{}), qType, categoryBig, categorySmall)
	if len(exclude) > 0 {
		db = db.Where("questions.id NOT IN ?", exclude)
	}

	var qs []model.Question
	err := db.Order(r.randomExpr()).Limit(limit).Find(&qs).Error
	return qs, err
}

// SampleByPriority 按答题历史优先抽题：没做过的 > 最近做错的 > 做对的
// （做对的按累计次数少者优先），同档内随机。近似间隔复习的效果。
func (r *QuestionRepository) SampleByPriority(userID uint, qType model.QuestionType, categoryBig, categorySmall string, limit int) ([]model.Question, error) {
	if limit <= 0 {
		return nil, nil
	}

	db := r.DB.Model(&model.Question{}).
		Select("questions.*").
		Joins("LEFT JOIN user_question_stats s ON s.question_id = questions.id AND s.user_id = ? AND s.deleted_at IS NULL", userID)
	db = r.applyFilters(db, qType, categoryBig, categorySmall)

	orderExpr := fmt.Sprintf(
		"CASE WHEN s.id IS NULL THEN 0 WHEN s.last_is_correct = %s THEN 1 ELSE 2 END ASC, "+
			"CASE WHEN s.id IS NOT NULL AND s.last_is_correct = %s THEN s.last_attempt_at END DESC, "+
			"s.total_attempts ASC, %s",
		r.falseExpr(), r.falseExpr(), r.randomExpr())

	var qs []model.Question
	err := db.Order(orderExpr).Limit(limit).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) falseExpr() string {
	// MySQL 的布尔列实际是 tinyint
	if r.DB.Dialector.Name() == "mysql" {
		return "0"
	}
	return "FALSE"
}

func (r *QuestionRepository) CountByFilters(qType model.QuestionType, categoryBig, categorySmall string) (int64, error) {
	var count int64
	db := r.applyFilters(r.DB.Model(&model.Question{}), qType, categoryBig, categorySmall)
	err := db.Count(&count).Error
	return count, err
}

// CategoryCount 分类下拉框数据
type CategoryCount struct {
	CategoryBig   string `json:"categoryBig"`
	CategorySmall string `json:"categorySmall"`
	Count         int64  `json:"count"`
}

func (r *QuestionRepository) ListCategories() ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.DB.Model(&model.Question{}).
		Select("category_big, category_small, COUNT(*) as count").
		Group("category_big, category_small").
		Order("category_big, category_small").
		Scan(&rows).Error
	return rows, err
}

func (r *QuestionRepository) ExistsByContent(qType model.QuestionType, content string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("type = ? AND content = ?", qType, content).
		Count(&count).Error
	return count > 0, err
}

func (r *QuestionRepository) CreateInBatches(qs []model.Question, batchSize int) error {
	if len(qs) == 0 {
		return nil
	}
	return r.DB.CreateInBatches(qs, batchSize).Error
}
