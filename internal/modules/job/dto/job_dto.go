package dto

import "time"

type CompanyInfo struct {
	Name    string `json:"name" binding:"required,max=200"`
	About   string `json:"about" binding:"omitempty,max=2000"`
	Website string `json:"website" binding:"omitempty,url,max=500"`
}

type ContactInfo struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Phone string `json:"phone" binding:"omitempty,max=30"`
}

type SimilarJob struct {
	Title string `json:"title" binding:"required,max=200"`
	Slug  string `json:"slug" binding:"required,max=200"`
}

type CreateJobPostingRequest struct {
	Title               string       `json:"title" binding:"required,min=2,max=200"`
	Slug                string       `json:"slug" binding:"omitempty,max=200"`
	Department          string       `json:"department" binding:"omitempty,max=100"`
	Location            string       `json:"location" binding:"omitempty,max=200"`
	EmploymentType      string       `json:"employment_type" binding:"required,oneof=full_time part_time contract internship"`
	Description         string       `json:"description" binding:"required,max=20000"`
	Requirements        []string     `json:"requirements" binding:"omitempty,dive,max=500"`
	Responsibilities    []string     `json:"responsibilities" binding:"omitempty,dive,max=500"`
	Benefits            []string     `json:"benefits" binding:"omitempty,dive,max=500"`
	NiceToHave          []string     `json:"nice_to_have" binding:"omitempty,dive,max=500"`
	Company             *CompanyInfo `json:"company"`
	Contact             *ContactInfo `json:"contact"`
	SimilarJobs         []SimilarJob `json:"similar_jobs" binding:"omitempty,dive"`
	Salary              *string      `json:"salary" binding:"omitempty,max=100"`
	ApplicationDeadline *time.Time   `json:"application_deadline"`
	VisaRequirements    *string      `json:"visa_requirements" binding:"omitempty,max=500"`
	IsPublished         bool         `json:"is_published"`
}

type UpdateJobPostingRequest struct {
	Title               *string      `json:"title" binding:"omitempty,min=2,max=200"`
	Slug                *string      `json:"slug" binding:"omitempty,max=200"`
	Department          *string      `json:"department" binding:"omitempty,max=100"`
	Location            *string      `json:"location" binding:"omitempty,max=200"`
	EmploymentType      *string      `json:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
	Description         *string      `json:"description" binding:"omitempty,max=20000"`
	Requirements        []string     `json:"requirements" binding:"omitempty,dive,max=500"`
	Responsibilities    []string     `json:"responsibilities" binding:"omitempty,dive,max=500"`
	Benefits            []string     `json:"benefits" binding:"omitempty,dive,max=500"`
	NiceToHave          []string     `json:"nice_to_have" binding:"omitempty,dive,max=500"`
	Company             *CompanyInfo `json:"company"`
	Contact             *ContactInfo `json:"contact"`
	SimilarJobs         []SimilarJob `json:"similar_jobs" binding:"omitempty,dive"`
	Salary              *string      `json:"salary" binding:"omitempty,max=100"`
	ApplicationDeadline *time.Time   `json:"application_deadline"`
	VisaRequirements    *string      `json:"visa_requirements" binding:"omitempty,max=500"`
	IsPublished         *bool        `json:"is_published"`
}

type JobFilter struct {
	Department     string `form:"department"`
	EmploymentType string `form:"employment_type" binding:"omitempty,oneof=full_time part_time contract internship"`
}
