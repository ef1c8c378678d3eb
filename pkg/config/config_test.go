package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validModeration() ModerationConfig {
	return ModerationConfig{
		ToxicityThresholdLow:    0.5,
		ToxicityThresholdMedium: 0.7,
		ToxicityThresholdHigh:   0.9,
		MaxStrikesTempBan:       3,
		MaxStrikesPermBan:       5,
		TempBanDuration:         24 * time.Hour,
		StrikeResetWindow:       30 * 24 * time.Hour,
	}
}

func TestModerationValidate_OK(t *testing.T) {
	m := validModeration()
	assert.NoError(t, m.Validate())
}

func TestModerationValidate_StrikeLadderMustAscend(t *testing.T) {
	m := validModeration()
	m.MaxStrikesTempBan = 5
	assert.Error(t, m.Validate())

	m.MaxStrikesTempBan = 6
	assert.Error(t, m.Validate())
}

func TestModerationValidate_ThresholdsMustAscend(t *testing.T) {
	m := validModeration()
	m.ToxicityThresholdMedium = 0.5
	assert.Error(t, m.Validate())

	m = validModeration()
	m.ToxicityThresholdHigh = 0.6
	assert.Error(t, m.Validate())
}
