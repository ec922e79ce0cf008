package handler

import (
	"log"
	"net/http"

	"darely/internal/middleware"
	"darely/internal/models"
	"darely/internal/repository"
	"darely/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WithdrawalHandler struct {
	repo     *repository.WithdrawalRepository
	provider payment.Provider
}

func NewWithdrawalHandler(repo *repository.WithdrawalRepository, provider payment.Provider) *WithdrawalHandler {
	return &WithdrawalHandler{repo: repo, provider: provider}
}

type WithdrawRequest struct {
	AmountCents int64  `json:"amount_cents" binding:"required,min=500"`
	Destination string `json:"destination" binding:"required"`
}

// Create debits the wallet and pushes the payout to the provider. The debit
// happens first and atomically with the withdrawal row; a provider failure
// refunds through the webhook path.
func (h *WithdrawalHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w := &models.Withdrawal{
		UserID:      userID,
		OrderID:     uuid.NewString(),
		AmountCents: req.AmountCents,
		Status:      "PENDING",
	}
	if err := h.repo.CreateWithDebit(w); err != nil {
		if err == repository.ErrInsufficientBalance {
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient balance"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create withdrawal"})
		return
	}

	resp, err := h.provider.InitiatePayout(c.Request.Context(), payment.PayoutRequest{
		UserID:      userID,
		OrderID:     w.OrderID,
		AmountCents: w.AmountCents,
		Currency:    "USD",
		Destination: req.Destination,
	})
	if err != nil {
		// Refund the debit; the withdrawal row stays for audit as FAILED.
		log.Printf("[withdrawals] payout initiation failed: order=%s err=%v", w.OrderID, err)
		if ferr := h.repo.Fail(w.OrderID); ferr != nil {
			log.Printf("[withdrawals] refund failed: order=%s err=%v", w.OrderID, ferr)
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "payout provider unavailable"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"withdrawal": w, "provider_status": resp.Status})
}

func (h *WithdrawalHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	list, err := h.repo.ListByUserID(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list withdrawals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"withdrawals": list})
}
