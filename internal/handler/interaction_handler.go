package handler

import (
	"log"
	"net/http"
	"strconv"

	"darely/internal/domain"
	"darely/internal/middleware"
	"darely/internal/models"
	"darely/internal/repository"
	"darely/internal/service"
	"darely/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InteractionHandler struct {
	pricing    *service.PricingService
	settlement *service.SettlementService
	repo       *repository.InteractionRepository
	userRepo   *repository.UserRepository
	notify     *service.NotificationService
	hub        *ws.Hub
	roomHub    *ws.RoomHub
}

func NewInteractionHandler(
	pricing *service.PricingService,
	settlement *service.SettlementService,
	repo *repository.InteractionRepository,
	userRepo *repository.UserRepository,
	notify *service.NotificationService,
	hub *ws.Hub,
	roomHub *ws.RoomHub,
) *InteractionHandler {
	return &InteractionHandler{
		pricing:    pricing,
		settlement: settlement,
		repo:       repo,
		userRepo:   userRepo,
		notify:     notify,
		hub:        hub,
		roomHub:    roomHub,
	}
}

type SettleRequest struct {
	RoomID      uint   `json:"room_id" binding:"required"`
	Kind        string `json:"kind" binding:"required"`
	Tier        string `json:"tier"`
	Content     string `json:"content"`
	AmountCents int64  `json:"amount_cents"`
}

// Settle handles POST /interactions: prices the fan's action and runs the
// atomic wallet transfer. Clients should send an Idempotency-Key header so
// retries after a timeout never double-charge.
func (h *InteractionHandler) Settle(c *gin.Context) {
	fanID := middleware.GetUserID(c)
	var req SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !domain.ValidKind(req.Kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown kind"})
		return
	}
	key := c.GetHeader("Idempotency-Key")
	if key == "" {
		key = uuid.NewString()
	}

	amount, content, err := h.pricing.Resolve(service.ResolveInput{
		Kind:        req.Kind,
		Tier:        req.Tier,
		Content:     req.Content,
		AmountCents: req.AmountCents,
	})
	if err != nil {
		switch err {
		case service.ErrUnknownKind, service.ErrUnknownTier, service.ErrContentMissing, service.ErrInvalidAmount:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case service.ErrNoPrompts:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "pricing failed"})
		}
		return
	}

	settled, entry, err := h.settlement.Settle(c.Request.Context(), service.SettleInput{
		FanID:          fanID,
		RoomID:         req.RoomID,
		Kind:           req.Kind,
		Tier:           req.Tier,
		Content:        content,
		AmountCents:    amount,
		IdempotencyKey: key,
	})
	if err != nil {
		switch err {
		case service.ErrDuplicateRequest:
			// Retry of an already-settled request: report the original
			// outcome, no new charge happened.
			c.JSON(http.StatusOK, gin.H{"request": settled, "duplicate": true})
		case service.ErrInsufficientFunds:
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient balance"})
		case service.ErrCreatorUnresolvable:
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found or not live"})
		case service.ErrSelfSettlement, service.ErrInvalidAmount:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("[interactions] settle failed: fan=%d room=%d kind=%s err=%v", fanID, req.RoomID, req.Kind, err)
			// Outcome unknown to the client; the idempotency key makes the
			// retry safe either way.
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "settlement failed, retry with the same Idempotency-Key"})
		}
		return
	}

	h.fanOut(settled, entry)
	c.JSON(http.StatusCreated, gin.H{"request": settled, "queue_entry": entry})
}

// fanOut pushes realtime and push notifications after the settlement has
// committed. Best effort: a dropped event never unwinds the transfer.
func (h *InteractionHandler) fanOut(req *models.InteractionRequest, entry *models.QueueEntry) {
	fanName := "A fan"
	if u, err := h.userRepo.GetByID(req.FanID); err == nil {
		if u.DisplayName != "" {
			fanName = u.DisplayName
		} else {
			fanName = u.Username
		}
	}

	h.hub.BroadcastToUser(req.CreatorID, gin.H{
		"type":        "queue.new",
		"queue_entry": entry,
		"fan_name":    fanName,
	})
	if feed := h.roomHub.GetFeed(req.RoomID); feed != nil {
		feed.Broadcast(gin.H{
			"type":         "room.interaction",
			"kind":         req.Kind,
			"fan_name":     fanName,
			"amount_cents": req.AmountCents,
		})
	}

	if h.notify != nil {
		if req.Kind == domain.KindTip {
			_ = h.notify.NotifyTip(req.CreatorID, req.ID, fanName, req.AmountCents)
		} else {
			_ = h.notify.NotifyPaidRequest(req.CreatorID, req.ID, fanName, req.Kind, req.AmountCents)
		}
	}
}

// Status returns the settlement outcome for an idempotency key, so a client
// that timed out can discover what actually happened.
func (h *InteractionHandler) Status(c *gin.Context) {
	key := c.Param("key")
	req, err := h.settlement.Status(key)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no settlement for key"})
		return
	}
	if req.FanID != middleware.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your request"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"request": req})
}

// ListMine returns the caller's interaction history, fan side or creator
// side depending on role.
func (h *InteractionHandler) ListMine(c *gin.Context) {
	userID := middleware.GetUserID(c)
	limit, offset := pagination(c)
	var (
		list []models.InteractionRequest
		err  error
	)
	if middleware.GetRole(c) == domain.RoleCreator {
		list, err = h.repo.ListByCreatorID(userID, limit, offset)
	} else {
		list, err = h.repo.ListByFanID(userID, limit, offset)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list interactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"interactions": list})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
