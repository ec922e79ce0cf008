package handler

import (
	"net/http"
	"strconv"

	"darely/internal/domain"
	"darely/internal/middleware"
	"darely/internal/models"
	"darely/internal/repository"
	"darely/internal/service"
	"darely/internal/ws"

	"github.com/gin-gonic/gin"
)

type QueueHandler struct {
	repo     *repository.InteractionRepository
	userRepo *repository.UserRepository
	notify   *service.NotificationService
	hub      *ws.Hub
	roomHub  *ws.RoomHub
}

func NewQueueHandler(
	repo *repository.InteractionRepository,
	userRepo *repository.UserRepository,
	notify *service.NotificationService,
	hub *ws.Hub,
	roomHub *ws.RoomHub,
) *QueueHandler {
	return &QueueHandler{repo: repo, userRepo: userRepo, notify: notify, hub: hub, roomHub: roomHub}
}

// List returns the creator's queue, oldest first. Optional ?status= filter,
// defaults to the open states.
func (h *QueueHandler) List(c *gin.Context) {
	creatorID := middleware.GetUserID(c)
	statuses := []string{domain.RequestStatusPending, domain.RequestStatusActive}
	if s := c.Query("status"); s != "" {
		statuses = []string{s}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	list, err := h.repo.ListQueueByCreatorID(creatorID, statuses, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list queue"})
		return
	}
	pending, _ := h.repo.CountPendingByCreatorID(creatorID)
	c.JSON(http.StatusOK, gin.H{"queue": list, "pending_count": pending})
}

// Activate moves PENDING -> ACTIVE: the creator put the request on screen.
func (h *QueueHandler) Activate(c *gin.Context) {
	h.transition(c, domain.RequestStatusPending, domain.RequestStatusActive)
}

// Complete moves ACTIVE -> COMPLETED.
func (h *QueueHandler) Complete(c *gin.Context) {
	h.transition(c, domain.RequestStatusActive, domain.RequestStatusCompleted)
}

// Reject moves PENDING -> REJECTED. The settlement stands; rejection does
// not refund.
func (h *QueueHandler) Reject(c *gin.Context) {
	h.transition(c, domain.RequestStatusPending, domain.RequestStatusRejected)
}

func (h *QueueHandler) transition(c *gin.Context, from, to string) {
	creatorID := middleware.GetUserID(c)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || requestID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request id"})
		return
	}
	req, err := h.repo.GetByID(uint(requestID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	if req.CreatorID != creatorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your queue"})
		return
	}
	req, err = h.repo.Transition(uint(requestID), from, to)
	if err != nil {
		// The status guard lost: the request is not in the expected state.
		c.JSON(http.StatusConflict, gin.H{"error": "request is not " + from})
		return
	}

	h.afterTransition(req, to)
	c.JSON(http.StatusOK, gin.H{"request": req})
}

func (h *QueueHandler) afterTransition(req *models.InteractionRequest, to string) {
	creatorName := "The creator"
	if u, err := h.userRepo.GetByID(req.CreatorID); err == nil {
		if u.DisplayName != "" {
			creatorName = u.DisplayName
		} else {
			creatorName = u.Username
		}
	}

	h.hub.BroadcastToUser(req.FanID, gin.H{
		"type":    "request.status",
		"request": req,
	})
	if feed := h.roomHub.GetFeed(req.RoomID); feed != nil {
		feed.Broadcast(gin.H{
			"type":       "room.request_status",
			"request_id": req.ID,
			"kind":       req.Kind,
			"status":     to,
			"content":    req.Content,
		})
	}

	if h.notify == nil {
		return
	}
	switch to {
	case domain.RequestStatusActive:
		_ = h.notify.NotifyActivated(req.FanID, creatorName, req.ID)
	case domain.RequestStatusCompleted:
		_ = h.notify.NotifyCompleted(req.FanID, creatorName, req.ID)
	case domain.RequestStatusRejected:
		_ = h.notify.NotifyRejected(req.FanID, creatorName, req.ID)
	}
}
