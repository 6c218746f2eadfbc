// 题库导入工具：读取解析脚本产出的 JSON，批量写入 questions 表。
// 用法: go run scripts/import_questions.go -file questions.json -config configs
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"quiz_exam_backend/internal/config"
	"quiz_exam_backend/internal/model"
	"quiz_exam_backend/internal/repository"
	"quiz_exam_backend/pkg/database"
)

type importedQuestion struct {
	Type          string            `json:"type"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	Answer        string            `json:"answer"`
	CategoryBig   string            `json:"category_big"`
	CategorySmall string            `json:"category_small"`
}

func main() {
	file := flag.String("file", "questions.json", "题目 JSON 文件路径")
	configPath := flag.String("config", "configs", "配置目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("init db: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	var items []importedQuestion
	if err := json.Unmarshal(data, &items); err != nil {
		log.Fatalf("parse %s: %v", *file, err)
	}

	repo := repository.NewQuestionRepository(db)

	var batch []model.Question
	skipped := 0
	for _, item := range items {
		qType := model.QuestionType(item.Type)
		if qType != model.Judgment && qType != model.SingleChoice && qType != model.MultipleChoice {
			log.Printf("skip unknown type %q: %s", item.Type, item.Question)
			skipped++
			continue
		}

		exists, err := repo.ExistsByContent(qType, item.Question)
		if err != nil {
			log.Fatalf("dedupe check: %v", err)
		}
		if exists {
			skipped++
			continue
		}

		var options json.RawMessage
		if len(item.Options) > 0 {
			options, _ = json.Marshal(item.Options)
		}

		batch = append(batch, model.Question{
			Type:          qType,
			Content:       item.Question,
			Options:       options,
			Answer:        item.Answer,
			CategoryBig:   item.CategoryBig,
			CategorySmall: item.CategorySmall,
		})
	}

	if err := repo.CreateInBatches(batch, 200); err != nil {
		log.Fatalf("insert: %v", err)
	}

	log.Printf("imported %d questions, skipped %d", len(batch), skipped)
}
