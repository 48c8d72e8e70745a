package crm

import (
	"encoding/json"

	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// WebhookResponse is returned for every webhook delivery.
type WebhookResponse struct {
	Status string `json:"status"`
	Stored int    `json:"stored,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Handler handles the WhatsApp webhook.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the webhook routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/webhook", h.HandleVerify)
	app.Post("/webhook", h.HandleMessage)
}

// HandleVerify answers the subscription handshake.
// @Summary Verify Webhook
// @Description Echoes hub.challenge when hub.verify_token matches the configured token.
// @Tags crm
// @Produce plain
// @Param hub.mode query string false "Subscription mode"
// @Param hub.verify_token query string true "Verify token"
// @Param hub.challenge query string true "Challenge to echo"
// @Success 200 {string} string "Challenge"
// @Failure 403 {string} string "Verification failed"
// @Router /webhook [get]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	if !h.service.VerifyToken(c.Query("hub.verify_token")) {
		logger.WithRayID(h.logger, c).Warn("Webhook verification rejected")
		return c.Status(fiber.StatusForbidden).SendString("Verification failed")
	}
	return c.Status(fiber.StatusOK).SendString(c.Query("hub.challenge"))
}

// HandleMessage stores inbound messages.
// Deliveries are always acknowledged with 200 so the sender does not retry forever.
// @Summary Receive Webhook
// @Description Stores inbound WhatsApp messages and links them to customers by phone.
// @Tags crm
// @Accept json
// @Produce json
// @Param payload body WebhookPayload true "Webhook payload"
// @Success 200 {object} WebhookResponse
// @Router /webhook [post]
func (h *Handler) HandleMessage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var payload WebhookPayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		l.Warn("Invalid webhook body", zap.Error(err))
		return c.JSON(WebhookResponse{Status: "error", Detail: "invalid JSON body"})
	}

	if len(payload.Inbound(h.service.now())) == 0 {
		return c.JSON(WebhookResponse{Status: "ignored"})
	}

	stored, err := h.service.Record(c.Context(), payload)
	if err != nil {
		l.Error("Failed to record webhook messages", zap.Error(err))
		return c.JSON(WebhookResponse{Status: "error", Stored: stored, Detail: err.Error()})
	}
	return c.JSON(WebhookResponse{Status: "ok", Stored: stored})
}
