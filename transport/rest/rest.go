package rest

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIdLocal = "request_id"

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Url     string `json:"url,omitempty"`
}

func requestLog(ctx *fiber.Ctx) *logrus.Entry {
	entry := logrus.
		WithField("remote_addr", ctx.Context().RemoteAddr()).
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path()).
		WithField("z_referer", string(ctx.Request().Header.Peek("Referer"))).
		WithField("z_user_agent", string(ctx.Request().Header.Peek("User-Agent"))).
		WithField("z_x_forwared_for", string(ctx.Request().Header.Peek("X-Forwarded-For")))
	if requestId, ok := ctx.Locals(requestIdLocal).(string); ok {
		entry = entry.WithField("request_id", requestId)
	}
	return entry
}

func ErrorHandler(ctx *fiber.Ctx, err error) error {
	setCorsHeaders(ctx)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, message := fe.Code, fe.Message
		// body limit of the http server
		if code == fiber.StatusRequestEntityTooLarge {
			code, message = fiber.StatusBadRequest, messageFileTooLarge
		}
		return ctx.
			Status(code).
			JSON(&Response{Success: false, Message: message})
	}
	requestLog(ctx).WithError(err).Errorln("Internal server error.")
	// keep internal server errors private. reply with generic error message.
	return ctx.
		Status(fiber.StatusInternalServerError).
		JSON(&Response{Success: false, Message: fiber.ErrInternalServerError.Message})
}

func LogHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestId := uuid.New().String()
		ctx.Locals(requestIdLocal, requestId)
		ctx.Set("X-Request-Id", requestId)
		requestLog(ctx).Infoln("Handling request.")
		return ctx.Next()
	}
}

func setCorsHeaders(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderAccessControlAllowOrigin, "*")
	ctx.Set(fiber.HeaderAccessControlAllowMethods, "POST, OPTIONS")
	ctx.Set(fiber.HeaderAccessControlAllowHeaders, fiber.HeaderContentType)
}

// CorsHandler allows any origin and answers preflight requests with 204.
func CorsHandler(ctx *fiber.Ctx) error {
	setCorsHeaders(ctx)
	if ctx.Method() == fiber.MethodOptions {
		ctx.Status(fiber.StatusNoContent)
		return nil
	}
	return ctx.Next()
}

func NotFoundHandler(ctx *fiber.Ctx) error {
	ctx.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return ctx.Status(fiber.StatusNotFound).SendString("Not Found")
}
