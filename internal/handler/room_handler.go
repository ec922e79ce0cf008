package handler

import (
	"net/http"
	"strconv"
	"time"

	"darely/internal/domain"
	"darely/internal/middleware"
	"darely/internal/models"
	"darely/internal/repository"
	"darely/internal/ws"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	repo    *repository.RoomRepository
	roomHub *ws.RoomHub
}

func NewRoomHandler(repo *repository.RoomRepository, roomHub *ws.RoomHub) *RoomHandler {
	return &RoomHandler{repo: repo, roomHub: roomHub}
}

type CreateRoomRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	CoverURL string `json:"cover_url"`
}

// Create opens a live room for the creator. One live room per host.
func (h *RoomHandler) Create(c *gin.Context) {
	hostID := middleware.GetUserID(c)
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if existing, err := h.repo.GetLiveByHostID(hostID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already hosting a live room", "room": existing})
		return
	}
	room := &models.Room{
		HostID:    hostID,
		Title:     req.Title,
		CoverURL:  req.CoverURL,
		Status:    domain.RoomStatusLive,
		StartedAt: time.Now(),
	}
	if err := h.repo.Create(room); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
		return
	}
	h.roomHub.GetOrCreateFeed(room.ID, hostID)
	c.JSON(http.StatusCreated, gin.H{"room": room})
}

func (h *RoomHandler) ListLive(c *gin.Context) {
	limit, offset := pagination(c)
	list, err := h.repo.ListLive(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rooms"})
		return
	}
	for i := range list {
		list[i].ViewerCount = h.roomHub.ViewerCount(list[i].ID)
	}
	c.JSON(http.StatusOK, gin.H{"rooms": list})
}

func (h *RoomHandler) Get(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	room, err := h.repo.GetByID(uint(roomID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	room.ViewerCount = h.roomHub.ViewerCount(room.ID)
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// End closes the caller's live room and tears down its feed.
func (h *RoomHandler) End(c *gin.Context) {
	hostID := middleware.GetUserID(c)
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}
	if err := h.repo.End(uint(roomID), hostID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no live room to end"})
		return
	}
	if feed := h.roomHub.GetFeed(uint(roomID)); feed != nil {
		feed.Broadcast(gin.H{"type": "room.ended", "room_id": roomID})
	}
	h.roomHub.RemoveFeed(uint(roomID))
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}
