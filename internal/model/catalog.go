package model

import (
	"gorm.io/gorm"
)

// DifficultyLabel 规范化后的难度档位
type DifficultyLabel string

const (
	DifficultyVeryLow  DifficultyLabel = "very low"
	DifficultyLow      DifficultyLabel = "low"
	DifficultyAverage  DifficultyLabel = "average"
	DifficultyHigh     DifficultyLabel = "high"
	DifficultyVeryHigh DifficultyLabel = "very high"
)

// Activity 课程目录中的一个学习活动（模块/课时）
type Activity struct {
	gorm.Model
	ActivityID          string  `gorm:"size:255;uniqueIndex;not null" json:"activityId"` // 全目录唯一
	Title               string  `gorm:"size:255;not null" json:"title"`
	SectionID           uint    `gorm:"index" json:"-"`
	Difficulty          float64 `gorm:"default:0" json:"difficulty"`   // 连续值 0..1
	DifficultyText      string  `gorm:"size:20" json:"difficultyText"` // 部分目录直接给出档位标签
	InteractivityType   string  `gorm:"size:50" json:"interactivityType"`
	InteractivityLevel  string  `gorm:"size:50" json:"interactivityLevel"`
	SemanticDensity     string  `gorm:"size:50" json:"semanticDensity"`
	TypicalLearningTime string  `gorm:"size:50" json:"typicalLearningTime"` // ISO8601 时长串
	EstimatedDuration   int     `gorm:"default:0" json:"estimatedDuration"` // 分钟
	MediaURL            string  `gorm:"size:255" json:"mediaUrl,omitempty"`
	Order               int     `gorm:"default:0" json:"order"`
}

func (Activity) TableName() string {
	return "activities"
}

// Section 课程章节，按顺序包含若干活动，活动只属于一个章节
type Section struct {
	gorm.Model
	Title      string     `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Order      int        `gorm:"default:0" json:"order"`
	Activities []Activity `gorm:"foreignKey:SectionID" json:"activities"`
}

func (Section) TableName() string {
	return "sections"
}

// Catalog 整个课程目录，每个会话加载一次后只读使用
type Catalog struct {
	Sections []Section `json:"sections"`
}

// ActivityCount 目录中活动总数
func (c *Catalog) ActivityCount() int {
	n := 0
	for i := range c.Sections {
		n += len(c.Sections[i].Activities)
	}
	return n
}

// FindActivity 线性查找活动及其所属章节，找不到返回 nil
// 很多事件引用目录之外的ID，调用方必须容忍未命中
func (c *Catalog) FindActivity(activityID string) (*Activity, *Section) {
	for i := range c.Sections {
		sec := &c.Sections[i]
		for j := range sec.Activities {
			if sec.Activities[j].ActivityID == activityID {
				return &sec.Activities[j], sec
			}
		}
	}
	return nil, nil
}
