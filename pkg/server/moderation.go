package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/veloxchat/sentinel/pkg/config"
	handlers "github.com/veloxchat/sentinel/pkg/handlers/http"
	"github.com/veloxchat/sentinel/pkg/middleware"
	"github.com/veloxchat/sentinel/pkg/server/router"
)

type (
	ModerationServerDI struct {
		MiddlewareTransport *middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	ModerationServer struct {
		*BaseServer
	}
)

func NewModerationServer(di ModerationServerDI) *ModerationServer {
	base := NewBaseServer(di.Config, di.Logger).
		WithRouters(router.NewModerationRouter(di.MiddlewareTransport, di.HandlerTransport))
	return &ModerationServer{BaseServer: base}
}

func (s *ModerationServer) Run() error {
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.Config.Server.Host, s.Config.Server.Port)
	s.Logger.WithField("addr", addr).Info("starting moderation server")
	return s.Router.Listen(addr)
}

func (s *ModerationServer) Shutdown() error {
	return s.Router.Shutdown()
}
