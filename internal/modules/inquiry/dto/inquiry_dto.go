package dto

// SubmitInquiryRequest is the public inquiry/consultation payload. Website
// is the honeypot field.
type SubmitInquiryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Email       string  `json:"email" binding:"required,email,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Message     string  `json:"message" binding:"required,min=10,max=2000"`
	InquiryType string  `json:"inquiry_type" binding:"required,oneof=general course career partnership"`
	CourseID    *string `json:"course_id" binding:"omitempty,uuid"`
	Website     string  `json:"website"`
}

type UpdateInquiryRequest struct {
	Status string `json:"status" binding:"required,oneof=new in_progress resolved"`
}

type InquiryFilter struct {
	Status      string `form:"status" binding:"omitempty,oneof=new in_progress resolved"`
	InquiryType string `form:"inquiry_type" binding:"omitempty,oneof=general course career partnership"`
}
