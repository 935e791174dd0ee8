package model

import (
	"gorm.io/gorm"
)

// PersonaType 学习者行为画像，驱动推荐权重
type PersonaType string

const (
	PersonaStruggler PersonaType = "struggler"
	PersonaAverage   PersonaType = "average"
	PersonaSprinter  PersonaType = "sprinter"
	PersonaGritty    PersonaType = "gritty"
	PersonaCoaster   PersonaType = "coaster"
	PersonaOutlierA  PersonaType = "outlier_a"
	PersonaOutlierB  PersonaType = "outlier_b"
	PersonaOutlierC  PersonaType = "outlier_c"
	PersonaOutlierD  PersonaType = "outlier_d"
)

// LearnerProfile 学习者档案，会话内静态
type LearnerProfile struct {
	gorm.Model
	ActorID string      `gorm:"size:100;uniqueIndex;not null" json:"actorId"`
	Name    string      `gorm:"size:100" json:"name"`
	Persona PersonaType `gorm:"size:20;default:'average'" json:"persona"`
}

func (LearnerProfile) TableName() string {
	return "learner_profiles"
}
