package handler

import (
	"crypto/subtle"
	"log"
	"net/http"

	"darely/config"
	"darely/internal/domain"
	"darely/internal/repository"
	"darely/internal/service"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives payment provider callbacks for deposits and
// payouts. Every mutation is status-guarded in the repository so provider
// retries replay as no-ops.
type WebhookHandler struct {
	cfg            *config.Config
	paymentRepo    *repository.PaymentRepository
	withdrawalRepo *repository.WithdrawalRepository
	notify         *service.NotificationService
}

func NewWebhookHandler(cfg *config.Config, paymentRepo *repository.PaymentRepository, withdrawalRepo *repository.WithdrawalRepository, notify *service.NotificationService) *WebhookHandler {
	return &WebhookHandler{cfg: cfg, paymentRepo: paymentRepo, withdrawalRepo: withdrawalRepo, notify: notify}
}

func (h *WebhookHandler) verifySecret(c *gin.Context) bool {
	secret := h.cfg.Payment.WebhookSecret
	if secret == "" {
		return true
	}
	got := c.GetHeader("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return false
	}
	return true
}

type depositCallback struct {
	Reference string `json:"reference" binding:"required"`
	Status    string `json:"status" binding:"required"` // COMPLETED | FAILED
}

// DepositCallback credits the wallet when the provider confirms a top-up.
func (h *WebhookHandler) DepositCallback(c *gin.Context) {
	if !h.verifySecret(c) {
		return
	}
	var cb depositCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if cb.Status != "COMPLETED" {
		p, err := h.paymentRepo.GetByProviderRef(cb.Reference)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown reference"})
			return
		}
		p.Status = "FAILED"
		_ = h.paymentRepo.Update(p)
		c.JSON(http.StatusOK, gin.H{"status": "recorded"})
		return
	}
	p, err := h.paymentRepo.CompleteAndCredit(cb.Reference, domain.TxTypeDeposit)
	if err != nil {
		// Replays land here once the payment is no longer PENDING.
		log.Printf("[webhook] deposit confirm skipped: ref=%s err=%v", cb.Reference, err)
		c.JSON(http.StatusOK, gin.H{"status": "already processed"})
		return
	}
	if h.notify != nil {
		_ = h.notify.NotifyDepositConfirmed(p.UserID, p.AmountCents, p.ProviderRef)
	}
	c.JSON(http.StatusOK, gin.H{"status": "credited"})
}

type payoutCallback struct {
	OrderID   string `json:"order_id" binding:"required"`
	Reference string `json:"reference"`
	Status    string `json:"status" binding:"required"` // COMPLETED | FAILED
}

// PayoutCallback settles a withdrawal: marks it complete or refunds the
// debited amount on failure.
func (h *WebhookHandler) PayoutCallback(c *gin.Context) {
	if !h.verifySecret(c) {
		return
	}
	var cb payoutCallback
	if err := c.ShouldBindJSON(&cb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := h.withdrawalRepo.GetByOrderID(cb.OrderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown order"})
		return
	}
	switch cb.Status {
	case "COMPLETED":
		if err := h.withdrawalRepo.Complete(cb.OrderID, cb.Reference); err != nil {
			c.JSON(http.StatusOK, gin.H{"status": "already processed"})
			return
		}
		if h.notify != nil {
			_ = h.notify.NotifyPayout(w.UserID, w.AmountCents, "COMPLETED")
		}
	case "FAILED":
		if err := h.withdrawalRepo.Fail(cb.OrderID); err != nil {
			c.JSON(http.StatusOK, gin.H{"status": "already processed"})
			return
		}
		if h.notify != nil {
			_ = h.notify.NotifyPayout(w.UserID, w.AmountCents, "FAILED")
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}
