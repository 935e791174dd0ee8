package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Verb 学习行为动词（xAPI 动词的短名称形式）
type Verb string

const (
	VerbCompleted Verb = "completed"
	VerbPassed    Verb = "passed"
	VerbFailed    Verb = "failed"
	VerbScored    Verb = "scored"
	VerbRated     Verb = "rated"
	VerbExited    Verb = "exited"
	VerbLaunched  Verb = "launched"
	VerbAttempted Verb = "attempted"
)

// ActivityIDExtension 对象扩展字段中存放课程活动ID的键
// 事件的 objectId 是 LMS 内部地址，稳定的活动标识保存在该扩展键下
const ActivityIDExtension = "https://lrs.insight/extensions/activity-id"

// Score 事件携带的成绩信息
type Score struct {
	Raw    float64 `gorm:"default:0" json:"raw"`
	Min    float64 `gorm:"default:0" json:"min"`
	Max    float64 `gorm:"default:0" json:"max"`
	Scaled float64 `gorm:"default:0" json:"scaled"`
}

// Statement 一条学习活动事件（xAPI statement）
// 外部写入后不可变，同一 (actor, activity) 允许多条记录（重复尝试）
type Statement struct {
	gorm.Model
	StatementID      string            `gorm:"size:36;uniqueIndex" json:"statementId"`
	ActorID          string            `gorm:"size:100;index;not null" json:"actorId"`
	Verb             Verb              `gorm:"size:50;index;not null" json:"verb"`
	ObjectID         string            `gorm:"size:255;not null" json:"objectId"`
	ObjectExtensions map[string]string `gorm:"type:json" json:"objectExtensions"` // 扩展键 -> 活动ID 等
	Timestamp        time.Time         `gorm:"index" json:"timestamp"`
	HasScore         bool              `gorm:"default:false" json:"hasScore"`
	Score            Score             `gorm:"embedded;embeddedPrefix:score_" json:"score"`
	HasCompletion    bool              `gorm:"default:false" json:"hasCompletion"`
	Completion       bool              `gorm:"default:false" json:"completion"`
	Duration         string            `gorm:"size:50" json:"duration"` // ISO8601 时长串，可为空
}

func (Statement) TableName() string {
	return "statements"
}

func (s *Statement) BeforeCreate(tx *gorm.DB) (err error) {
	if s.StatementID == "" {
		s.StatementID = uuid.New().String()
	}
	return
}

// ActivityID 读取扩展字段中的活动ID，没有则回退到原始 objectId
// 回退值不保证能在课程目录中解析，仅用于按次数统计的场景
func (s *Statement) ActivityID() string {
	if id, ok := s.ObjectExtensions[ActivityIDExtension]; ok && id != "" {
		return id
	}
	return s.ObjectID
}
