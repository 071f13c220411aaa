package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

type JobPosting struct {
	ID                  uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Title               string                      `gorm:"size:200;not null" json:"title"`
	Slug                string                      `gorm:"size:200;uniqueIndex;not null" json:"slug"`
	Department          string                      `gorm:"size:100" json:"department"`
	Location            string                      `gorm:"size:200" json:"location"`
	EmploymentType      string                      `gorm:"size:20;default:'full_time'" json:"employment_type"`
	Description         string                      `gorm:"type:text" json:"description"`
	Requirements        datatypes.JSONSlice[string] `json:"requirements"`
	Responsibilities    datatypes.JSONSlice[string] `json:"responsibilities"`
	Benefits            datatypes.JSONSlice[string] `json:"benefits"`
	NiceToHave          datatypes.JSONSlice[string] `json:"nice_to_have"`
	Company             datatypes.JSON              `json:"company"`
	Contact             datatypes.JSON              `json:"contact"`
	SimilarJobs         datatypes.JSON              `json:"similar_jobs"`
	Salary              *string                     `gorm:"size:100" json:"salary"`
	PostedDate          time.Time                   `json:"posted_date"`
	ApplicationDeadline *time.Time                  `json:"application_deadline"`
	VisaRequirements    *string                     `gorm:"size:500" json:"visa_requirements"`
	IsPublished         bool                        `gorm:"default:false;index" json:"is_published"`
	CreatedAt           time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (j *JobPosting) BeforeCreate(tx *gorm.DB) (err error) {
	if j.ID == uuid.Nil {
		j.ID, err = uuid.NewV7()
	}
	if j.PostedDate.IsZero() {
		j.PostedDate = time.Now()
	}
	return
}
