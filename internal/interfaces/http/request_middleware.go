package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/repuestos-api/pkg/logger"
	"github.com/jhoicas/repuestos-api/pkg/metrics"
)

// RequestLogger registra método, ruta, estado y latencia de cada petición y alimenta
// el histograma HTTP. log y m pueden ser nil.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler escriba la respuesta antes de leer el estado
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path
		m.ObserveHTTP(c.Method(), route, status, elapsed)
		if log != nil {
			ev := log.Info()
			if status >= fiber.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Dur("latency", elapsed).
				Msg("request")
		}
		return nil
	}
}
