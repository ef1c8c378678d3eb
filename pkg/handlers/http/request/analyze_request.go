package request

import (
	"fmt"
	"strings"
)

type AnalyzeRequest struct {
	Text     string `json:"text" binding:"required"`
	Language string `json:"language,omitempty"`
}

func (r *AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if len(r.Text) > maxContentLength {
		return fmt.Errorf("text exceeds maximum length of %d characters", maxContentLength)
	}
	return nil
}

const maxBatchSize = 100

type BatchAnalyzeRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

func (r *BatchAnalyzeRequest) Validate() error {
	if len(r.Texts) == 0 {
		return fmt.Errorf("texts must not be empty")
	}
	if len(r.Texts) > maxBatchSize {
		return fmt.Errorf("batch size exceeds maximum of %d texts", maxBatchSize)
	}
	return nil
}
