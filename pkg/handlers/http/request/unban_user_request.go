package request

import (
	"fmt"
	"strings"
)

type UnbanUserRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	ChannelID    string `json:"channel_id" binding:"required"`
	UnbannedBy   string `json:"unbanned_by,omitempty"`
	Reason       string `json:"reason,omitempty"`
	ResetStrikes bool   `json:"reset_strikes"`
}

func (r *UnbanUserRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("user_id is required")
	}
	if strings.TrimSpace(r.ChannelID) == "" {
		return fmt.Errorf("channel_id is required")
	}
	return nil
}
