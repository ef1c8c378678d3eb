package request_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/veloxchat/sentinel/pkg/handlers/http/request"
)

func validModerateRequest() request.ModerateMessageRequest {
	return request.ModerateMessageRequest{
		MessageID: "msg-1",
		UserID:    "user-1",
		ChannelID: "channel-1",
		Content:   "hello",
	}
}

func TestModerateMessageRequest_Valid(t *testing.T) {
	req := validModerateRequest()
	assert.NoError(t, req.Validate())
}

func TestModerateMessageRequest_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*request.ModerateMessageRequest)
	}{
		{"missing message_id", func(r *request.ModerateMessageRequest) { r.MessageID = "" }},
		{"missing user_id", func(r *request.ModerateMessageRequest) { r.UserID = " " }},
		{"missing channel_id", func(r *request.ModerateMessageRequest) { r.ChannelID = "" }},
		{"missing content", func(r *request.ModerateMessageRequest) { r.Content = "   " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validModerateRequest()
			tc.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestModerateMessageRequest_ContentTooLong(t *testing.T) {
	req := validModerateRequest()
	req.Content = strings.Repeat("a", 10001)
	assert.Error(t, req.Validate())
}

func TestAddBlacklistTermRequest_Defaults(t *testing.T) {
	req := request.AddBlacklistTermRequest{Term: "badword", Language: "en"}

	assert.NoError(t, req.Validate())
	assert.Equal(t, "medium", req.Severity)
	assert.Equal(t, "admin", req.AddedBy)
}

func TestAddBlacklistTermRequest_InvalidSeverity(t *testing.T) {
	req := request.AddBlacklistTermRequest{Term: "badword", Language: "en", Severity: "extreme"}
	assert.Error(t, req.Validate())

	req.Severity = "none"
	assert.Error(t, req.Validate())
}

func TestBatchAnalyzeRequest_Limits(t *testing.T) {
	req := request.BatchAnalyzeRequest{}
	assert.Error(t, req.Validate())

	req.Texts = make([]string, 101)
	assert.Error(t, req.Validate())

	req.Texts = []string{"one", "two"}
	assert.NoError(t, req.Validate())
}
