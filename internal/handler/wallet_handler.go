package handler

import (
	"log"
	"net/http"

	"darely/config"
	"darely/internal/middleware"
	"darely/internal/models"
	"darely/internal/repository"
	"darely/pkg/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WalletHandler struct {
	cfg         *config.Config
	walletRepo  *repository.WalletRepository
	paymentRepo *repository.PaymentRepository
	provider    payment.Provider
}

func NewWalletHandler(cfg *config.Config, walletRepo *repository.WalletRepository, paymentRepo *repository.PaymentRepository, provider payment.Provider) *WalletHandler {
	return &WalletHandler{cfg: cfg, walletRepo: walletRepo, paymentRepo: paymentRepo, provider: provider}
}

func (h *WalletHandler) Balance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	w, err := h.walletRepo.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"wallet": w})
}

func (h *WalletHandler) Transactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	list, err := h.walletRepo.ListTransactions(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": list})
}

type DepositRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,min=100"`
}

// Deposit starts a wallet top-up with the payment provider. The wallet is
// credited only when the provider webhook confirms.
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		key = uuid.NewString()
	}

	resp, err := h.provider.InitiatePayment(c.Request.Context(), payment.PaymentRequest{
		UserID:         userID,
		AmountCents:    req.AmountCents,
		Currency:       "USD",
		IdempotencyKey: key,
		Description:    "Wallet top-up",
		ExpiresIn:      h.cfg.Payment.PaymentExpiry,
	})
	if err != nil {
		log.Printf("[wallet] deposit initiation failed: user=%d err=%v", userID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
		return
	}

	p := &models.Payment{
		UserID:         userID,
		AmountCents:    req.AmountCents,
		Currency:       "USD",
		Provider:       h.cfg.Payment.Provider,
		ProviderRef:    resp.Reference,
		Status:         "PENDING",
		IdempotencyKey: key,
		ExpiresAt:      &resp.ExpiresAt,
	}
	if err := h.paymentRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": p, "checkout_url": resp.CheckoutURL})
}
