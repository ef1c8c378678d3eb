package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Moderation
	ModerateMessageHandler Handler
	AnalyzeMessageHandler  Handler
	BatchAnalyzeHandler    Handler

	// Users
	GetUserStatusHandler      Handler
	ListUserViolationsHandler Handler
	ListBannedUsersHandler    Handler
	UnbanUserHandler          Handler

	// Blacklist
	AddBlacklistTermHandler    Handler
	RemoveBlacklistTermHandler Handler
	RefreshBlacklistHandler    Handler
	GetBlacklistStatsHandler   Handler
}
