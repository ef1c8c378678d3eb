package domain

// Severity is the ordinal seriousness of a violation.
type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var severityRank = map[Severity]int{
	SeverityNone:   0,
	SeverityLow:    1,
	SeverityMedium: 2,
	SeverityHigh:   3,
}

// Rank returns the ordering position of the severity. Unknown values
// rank below none so they never win a max comparison.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// Max returns the greater of two severities by rank.
func (s Severity) Max(other Severity) Severity {
	if other.Rank() > s.Rank() {
		return other
	}
	return s
}

func (s Severity) IsValid() bool {
	_, ok := severityRank[s]
	return ok
}

// BanType distinguishes temporary from permanent bans.
type BanType string

const (
	BanTypeTemporary BanType = "temporary"
	BanTypePermanent BanType = "permanent"
)

// Action is the outcome of moderating a single message.
type Action string

const (
	ActionApproved   Action = "approved"
	ActionWarning    Action = "warning"
	ActionTempBan    Action = "temp_ban"
	ActionPermBan    Action = "perm_ban"
	ActionUserBanned Action = "user_banned"

	// ActionMessageBlocked marks violation rows; live verdicts carry
	// one of the ladder actions above.
	ActionMessageBlocked Action = "message_blocked"
)
