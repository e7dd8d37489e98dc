package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"slotwise/models"
	"slotwise/services/booking"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// slotsCacheTTL bounds how stale a cached slot listing can get. The create
// path re-validates every slot, so a short window of staleness only risks a
// booker seeing a slot that is refused (and refunded) at checkout.
const slotsCacheTTL = 60 * time.Second

// AvailabilityHandler serves computed slot listings, cached in redis.
type AvailabilityHandler struct {
	Svc booking.BookingService
}

// NewAvailabilityHandler creates a new AvailabilityHandler instance.
func NewAvailabilityHandler(svc booking.BookingService) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// GetSlotsHandler returns the bookable slots for a provider on one date.
// GET /api/providers/:id/slots?date=2006-01-02
func (h *AvailabilityHandler) GetSlotsHandler(c *gin.Context) {
	providerID := c.Param("id")
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected ?date=YYYY-MM-DD")
		return
	}

	ctx := c.Request.Context()
	cache := utils.GetCacheClient()
	cacheKey := fmt.Sprintf("slots:%s:%s", providerID, date)

	if cached, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var slots []models.SlotWindow
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			c.JSON(http.StatusOK, gin.H{"providerId": providerID, "date": date, "slots": slots})
			return
		}
	}

	slots, err := h.Svc.AvailableSlots(ctx, providerID, date)
	if err != nil {
		if booking.HasCode(err, booking.CodeNotFound) {
			utils.JSONError(c, http.StatusNotFound, "provider not found", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute slots", err.Error())
		return
	}
	if slots == nil {
		slots = []models.SlotWindow{}
	}

	if data, err := json.Marshal(slots); err == nil {
		if err := cache.Set(ctx, cacheKey, data, slotsCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache slot listing",
				zap.String("key", cacheKey), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"providerId": providerID, "date": date, "slots": slots})
}

// invalidateSlotsCache drops every cached slot listing for a provider. Called
// after writes that change which windows are free or offered.
func invalidateSlotsCache(ctx context.Context, providerID string) {
	cache := utils.GetCacheClient()
	keys, err := cache.Keys(ctx, fmt.Sprintf("slots:%s:*", providerID)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := cache.Del(ctx, keys...).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate slot cache",
			zap.String("providerID", providerID), zap.Error(err))
	}
}
