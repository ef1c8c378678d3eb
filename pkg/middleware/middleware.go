package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	PanicRecoverMiddleware  Middleware
	RequestLoggerMiddleware Middleware
}

func (t *Transport) GetMiddlewares() []interface{} {
	handlers := make([]interface{}, 0, 2)
	if t.PanicRecoverMiddleware != nil {
		handlers = append(handlers, t.PanicRecoverMiddleware.Middleware())
	}
	if t.RequestLoggerMiddleware != nil {
		handlers = append(handlers, t.RequestLoggerMiddleware.Middleware())
	}
	return handlers
}
