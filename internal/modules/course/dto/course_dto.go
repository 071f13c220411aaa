package dto

import "time"

// SyllabusModule is the validated shape of one syllabus entry. The column
// itself is schema-flexible JSON; shapes are enforced here, on write.
type SyllabusModule struct {
	Title  string   `json:"title" binding:"required,max=200"`
	Topics []string `json:"topics" binding:"required,min=1,dive,max=200"`
}

type Testimonial struct {
	Author string `json:"author" binding:"required,max=100"`
	Role   string `json:"role" binding:"omitempty,max=100"`
	Quote  string `json:"quote" binding:"required,max=1000"`
}

type CreateCourseRequest struct {
	Title             string           `json:"title" binding:"required,min=2,max=200"`
	Slug              string           `json:"slug" binding:"omitempty,max=200"`
	Description       string           `json:"description" binding:"required,max=2000"`
	LongDescription   string           `json:"long_description" binding:"omitempty,max=20000"`
	Instructor        string           `json:"instructor" binding:"omitempty,max=100"`
	Duration          string           `json:"duration" binding:"omitempty,max=100"`
	SkillLevel        string           `json:"skill_level" binding:"required,oneof=beginner intermediate advanced"`
	ThumbnailURL      string           `json:"thumbnail_url" binding:"omitempty,url,max=500"`
	Syllabus          []SyllabusModule `json:"syllabus" binding:"omitempty,dive"`
	LearningOutcomes  []string         `json:"learning_outcomes" binding:"omitempty,dive,max=300"`
	Prerequisites     []string         `json:"prerequisites" binding:"omitempty,dive,max=300"`
	IsPublished       bool             `json:"is_published"`
	Featured          bool             `json:"featured"`
	SessionsRunning   int              `json:"sessions_running" binding:"omitempty,gte=0"`
	SessionsCompleted int              `json:"sessions_completed" binding:"omitempty,gte=0"`
	NextBatchDate     *time.Time       `json:"next_batch_date"`
	Location          string           `json:"location" binding:"omitempty,max=200"`
	MaxStudents       int              `json:"max_students" binding:"required,gte=1"`
	CurrentStudents   *int             `json:"current_students" binding:"omitempty,gte=0"`
	Testimonials      []Testimonial    `json:"testimonials" binding:"omitempty,dive"`
	Price             float64          `json:"price" binding:"gte=0"`
	Currency          string           `json:"currency" binding:"omitempty,max=10"`
}

// UpdateCourseRequest is the partial-update shape: every field optional,
// same per-field constraints when present.
type UpdateCourseRequest struct {
	Title             *string          `json:"title" binding:"omitempty,min=2,max=200"`
	Slug              *string          `json:"slug" binding:"omitempty,max=200"`
	Description       *string          `json:"description" binding:"omitempty,max=2000"`
	LongDescription   *string          `json:"long_description" binding:"omitempty,max=20000"`
	Instructor        *string          `json:"instructor" binding:"omitempty,max=100"`
	Duration          *string          `json:"duration" binding:"omitempty,max=100"`
	SkillLevel        *string          `json:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	ThumbnailURL      *string          `json:"thumbnail_url" binding:"omitempty,url,max=500"`
	Syllabus          []SyllabusModule `json:"syllabus" binding:"omitempty,dive"`
	LearningOutcomes  []string         `json:"learning_outcomes" binding:"omitempty,dive,max=300"`
	Prerequisites     []string         `json:"prerequisites" binding:"omitempty,dive,max=300"`
	IsPublished       *bool            `json:"is_published"`
	Featured          *bool            `json:"featured"`
	SessionsRunning   *int             `json:"sessions_running" binding:"omitempty,gte=0"`
	SessionsCompleted *int             `json:"sessions_completed" binding:"omitempty,gte=0"`
	NextBatchDate     *time.Time       `json:"next_batch_date"`
	Location          *string          `json:"location" binding:"omitempty,max=200"`
	MaxStudents       *int             `json:"max_students" binding:"omitempty,gte=1"`
	CurrentStudents   *int             `json:"current_students" binding:"omitempty,gte=0"`
	Testimonials      []Testimonial    `json:"testimonials" binding:"omitempty,dive"`
	Price             *float64         `json:"price" binding:"omitempty,gte=0"`
	Currency          *string          `json:"currency" binding:"omitempty,max=10"`
}

type CourseFilter struct {
	Featured   *bool  `form:"featured"`
	SkillLevel string `form:"skill_level" binding:"omitempty,oneof=beginner intermediate advanced"`
}
