package request

import (
	"fmt"
	"strings"

	"github.com/veloxchat/sentinel/pkg/domain"
)

type AddBlacklistTermRequest struct {
	Term     string `json:"term" binding:"required"`
	Language string `json:"language" binding:"required"`
	Category string `json:"category,omitempty"`
	Severity string `json:"severity"`
	IsRegex  bool   `json:"is_regex"`
	AddedBy  string `json:"added_by,omitempty"`
}

func (r *AddBlacklistTermRequest) Validate() error {
	if strings.TrimSpace(r.Term) == "" {
		return fmt.Errorf("term is required")
	}
	if strings.TrimSpace(r.Language) == "" {
		return fmt.Errorf("language is required")
	}
	if r.Severity == "" {
		r.Severity = string(domain.SeverityMedium)
	}
	severity := domain.Severity(r.Severity)
	if !severity.IsValid() || severity == domain.SeverityNone {
		return fmt.Errorf("severity must be one of: low, medium, high")
	}
	if r.AddedBy == "" {
		r.AddedBy = "admin"
	}
	return nil
}
