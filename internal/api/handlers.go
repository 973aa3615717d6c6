package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/mdlunited/arcade/internal/shop"
	"github.com/mdlunited/arcade/internal/storage"
	"github.com/mdlunited/arcade/internal/wallet"
)

const maxScoreLimit = 100

type handlers struct {
	shop    *shop.Service
	scores  ScoreReader
	logger  *log.Logger
	started time.Time
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "arcade-api",
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}

func (h *handlers) topScores(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxScoreLimit)
	}

	game := c.Param("game")
	entries, err := h.scores.TopScores(game, limit)
	if err != nil {
		h.logger.Error("failed to load scores", "game", game, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if entries == nil {
		entries = []storage.ScoreEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"game": game, "scores": entries})
}

func (h *handlers) storeItems(c *gin.Context) {
	cat := h.shop.Catalog()
	c.JSON(http.StatusOK, gin.H{"currency": cat.Currency(), "items": cat.Items()})
}

func (h *handlers) wallet(c *gin.Context) {
	user := currentUser(c)
	bal, err := h.shop.Balance(c.Request.Context(), user)
	if err != nil {
		h.fail(c, err)
		return
	}

	history, err := h.shop.History(c.Request.Context(), user, 20)
	if err != nil {
		h.fail(c, err)
		return
	}
	if history == nil {
		history = []wallet.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"user_id": user.ID, "balance": bal, "history": history})
}

func (h *handlers) purchase(c *gin.Context) {
	var req struct {
		ItemID string `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item_id required"})
		return
	}

	receipt, err := h.shop.Purchase(c.Request.Context(), currentUser(c), req.ItemID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *handlers) grantCoins(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
		Amount int64  `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	bal, err := h.shop.Grant(c.Request.Context(), currentUser(c), req.UserID, req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": req.UserID, "balance": bal})
}

// fail maps store errors onto HTTP statuses.
func (h *handlers) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shop.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	case errors.Is(err, shop.ErrInvalidAmount), errors.Is(err, wallet.ErrInvalidAmount), errors.Is(err, wallet.ErrInvalidUser):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case errors.Is(err, shop.ErrUnknownItem):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown item"})
	case errors.Is(err, wallet.ErrInsufficientFunds):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient funds"})
	default:
		h.logger.Error("store action failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func currentUser(c *gin.Context) shop.User {
	return shop.User{ID: c.GetString(ctxUserID), Name: c.GetString(ctxUserName)}
}
