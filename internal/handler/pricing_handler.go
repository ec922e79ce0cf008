package handler

import (
	"net/http"
	"strconv"

	"darely/internal/domain"
	"darely/internal/models"
	"darely/internal/repository"
	"darely/internal/service"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	settingRepo *repository.SettingRepository
	promptRepo  *repository.PromptRepository
	pricing     *service.PricingService
}

func NewPricingHandler(settingRepo *repository.SettingRepository, promptRepo *repository.PromptRepository, pricing *service.PricingService) *PricingHandler {
	return &PricingHandler{settingRepo: settingRepo, promptRepo: promptRepo, pricing: pricing}
}

// Prices is the public price list: effective tier prices and the custom
// request minimum, overrides applied.
func (h *PricingHandler) Prices(c *gin.Context) {
	tiers := gin.H{}
	for _, tier := range []string{domain.TierBronze, domain.TierSilver, domain.TierGold} {
		price := domain.DefaultTierPriceCents[tier]
		if v, err := h.settingRepo.Get(service.SettingTierPricePrefix + tier); err == nil {
			if cents, perr := strconv.ParseInt(v, 10, 64); perr == nil && cents > 0 {
				price = cents
			}
		}
		tiers[tier] = price
	}
	minimum := int64(domain.MinCustomAmountCents)
	if v, err := h.settingRepo.Get(service.SettingCustomMinimum); err == nil {
		if cents, perr := strconv.ParseInt(v, 10, 64); perr == nil && cents > 0 {
			minimum = cents
		}
	}
	c.JSON(http.StatusOK, gin.H{"tiers": tiers, "custom_minimum_cents": minimum})
}

type SetTierPriceRequest struct {
	Tier       string `json:"tier" binding:"required,oneof=BRONZE SILVER GOLD"`
	PriceCents int64  `json:"price_cents" binding:"required,min=1"`
}

// SetTierPrice lets an admin override a tier price.
func (h *PricingHandler) SetTierPrice(c *gin.Context) {
	var req SetTierPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settingRepo.Set(service.SettingTierPricePrefix+req.Tier, strconv.FormatInt(req.PriceCents, 10)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *PricingHandler) SetCustomMinimum(c *gin.Context) {
	var req struct {
		MinimumCents int64 `json:"minimum_cents" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.settingRepo.Set(service.SettingCustomMinimum, strconv.FormatInt(req.MinimumCents, 10)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Prompt administration

type PromptRequest struct {
	Kind     string `json:"kind" binding:"required,oneof=SYSTEM_TRUTH SYSTEM_DARE"`
	Tier     string `json:"tier" binding:"required,oneof=BRONZE SILVER GOLD"`
	Text     string `json:"text" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

func (h *PricingHandler) CreatePrompt(c *gin.Context) {
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.DarePrompt{Kind: req.Kind, Tier: req.Tier, Text: req.Text, IsActive: true}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.promptRepo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create prompt"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"prompt": p})
}

func (h *PricingHandler) ListPrompts(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.promptRepo.List(c.Query("kind"), c.Query("tier"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list prompts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompts": list})
}

func (h *PricingHandler) UpdatePrompt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prompt id"})
		return
	}
	var req PromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.DarePrompt{Kind: req.Kind, Tier: req.Tier, Text: req.Text, IsActive: true}
	p.ID = uint(id)
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := h.promptRepo.Update(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update prompt"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": p})
}

func (h *PricingHandler) DeletePrompt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid prompt id"})
		return
	}
	if err := h.promptRepo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete prompt"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
