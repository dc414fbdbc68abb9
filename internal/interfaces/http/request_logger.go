package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/hospital-inventory/pkg/logger"
)

const (
	headerRequestID = "X-Request-ID"
	localLogger     = "logger"
)

// RequestLogging asigna un X-Request-ID (uuid si el cliente no envía uno), deja un sublogger
// con ese ID en c.Locals y registra método, ruta, estado y latencia al terminar.
func RequestLogging(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID := c.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(headerRequestID, reqID)
		reqLog := log.WithField("request_id", reqID)
		c.Locals(localLogger, reqLog)

		err := c.Next()

		ev := reqLog.Info()
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			ev = reqLog.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Int64("user_id", GetUserID(c)).
			Dur("latency", time.Since(start)).
			Msg("petición HTTP")
		return err
	}
}

// RequestLogger logger de la petición; Nop si RequestLogging no corrió.
func RequestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
