package dtos

import "github.com/justsurfingit/jobhunt/internal/models"

// RunRequest is the body of POST /runs and POST /jobs/extract.
type RunRequest struct {
	Link string `json:"link" binding:"required,url"`
	// Optional, falls back to the configured profile
	UserProfile string `json:"user_profile"`
}

type ExtractResponse struct {
	Success bool         `json:"success"`
	Jobs    []models.Job `json:"jobs"`
}

type RunResponse struct {
	Success bool              `json:"success"`
	Result  *models.RunResult `json:"result"`
	Error   string            `json:"error,omitempty"`
}
