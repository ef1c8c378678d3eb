package router

import (
	"github.com/gofiber/fiber/v2"

	handlers "github.com/veloxchat/sentinel/pkg/handlers/http"
	"github.com/veloxchat/sentinel/pkg/middleware"
)

type moderationRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewModerationRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &moderationRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *moderationRouter) BuildRoutes(router *fiber.App) error {
	v1 := router.Group("/api/v1")
	{
		if r.middlewareTransport != nil {
			v1.Use(r.middlewareTransport.GetMiddlewares()...)
		}

		mod := v1.Group("/moderation")
		{
			messages := mod.Group("/messages")
			{
				messages.Post("", r.handlerTransport.ModerateMessageHandler.Handle)
			}

			mod.Post("/analyze", r.handlerTransport.AnalyzeMessageHandler.Handle)
			mod.Post("/analyze/batch", r.handlerTransport.BatchAnalyzeHandler.Handle)

			users := mod.Group("/users")
			{
				users.Get("/:user_id/status", r.handlerTransport.GetUserStatusHandler.Handle)
				users.Get("/:user_id/violations", r.handlerTransport.ListUserViolationsHandler.Handle)
			}

			bans := mod.Group("/bans")
			{
				bans.Get("", r.handlerTransport.ListBannedUsersHandler.Handle)
				bans.Post("/unban", r.handlerTransport.UnbanUserHandler.Handle)
			}

			bl := mod.Group("/blacklist")
			{
				bl.Post("", r.handlerTransport.AddBlacklistTermHandler.Handle)
				bl.Get("/stats", r.handlerTransport.GetBlacklistStatsHandler.Handle)
				bl.Post("/refresh", r.handlerTransport.RefreshBlacklistHandler.Handle)
				bl.Delete("/:entry_id", r.handlerTransport.RemoveBlacklistTermHandler.Handle)
			}
		}
	}
	return nil
}
