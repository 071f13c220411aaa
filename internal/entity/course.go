package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	SkillLevelBeginner     = "beginner"
	SkillLevelIntermediate = "intermediate"
	SkillLevelAdvanced     = "advanced"
)

// Course is a training offering shown on the public site. Syllabus and
// testimonials are schema-flexible JSON columns; their shapes are validated
// at the write boundary (see the course DTOs) and trusted on read.
type Course struct {
	ID                uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title             string                      `gorm:"size:200;not null" json:"title"`
	Slug              string                      `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Description       string                      `gorm:"type:text" json:"description"`
	LongDescription   string                      `gorm:"type:text" json:"long_description"`
	Instructor        string                      `gorm:"size:100" json:"instructor"`
	Duration          string                      `gorm:"size:100" json:"duration"`
	SkillLevel        string                      `gorm:"size:20;default:'beginner'" json:"skill_level"`
	ThumbnailURL      string                      `gorm:"size:500" json:"thumbnail_url"`
	Syllabus          datatypes.JSON              `json:"syllabus"`
	LearningOutcomes  datatypes.JSONSlice[string] `json:"learning_outcomes"`
	Prerequisites     datatypes.JSONSlice[string] `json:"prerequisites"`
	IsPublished       bool                        `gorm:"default:false;index" json:"is_published"`
	Featured          bool                        `gorm:"default:false" json:"featured"`
	SessionsRunning   int                         `gorm:"default:0" json:"sessions_running"`
	SessionsCompleted int                         `gorm:"default:0" json:"sessions_completed"`
	NextBatchDate     *time.Time                  `json:"next_batch_date"`
	Location          string                      `gorm:"size:200" json:"location"`
	MaxStudents       int                         `gorm:"default:1" json:"max_students"`
	CurrentStudents   *int                        `json:"current_students"`
	Testimonials      datatypes.JSON              `json:"testimonials"`
	Price             float64                     `gorm:"default:0" json:"price"`
	Currency          string                      `gorm:"size:10;default:'NPR'" json:"currency"`
	CreatedAt         time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}
