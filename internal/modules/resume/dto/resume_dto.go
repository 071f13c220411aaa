package dto

// SubmitResumeRequest is the multipart form for career applications. The file
// part is read separately by the handler. Website is the honeypot field.
type SubmitResumeRequest struct {
	Name           string  `form:"name" binding:"required,min=2,max=100"`
	Email          string  `form:"email" binding:"required,email,max=255"`
	RoleLookingFor string  `form:"role_looking_for" binding:"required,min=2,max=100"`
	CoverLetter    *string `form:"cover_letter" binding:"omitempty,max=5000"`
	Website        string  `form:"website"`
}

// UpdateResumeRequest changes the review status of a submission.
type UpdateResumeRequest struct {
	Status string `json:"status" binding:"required,oneof=pending reviewed contacted rejected"`
}

// ResumeFilter narrows the admin listing.
type ResumeFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=pending reviewed contacted rejected"`
}
