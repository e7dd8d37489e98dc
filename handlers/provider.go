package handlers

import (
	"net/http"

	"slotwise/middleware"
	"slotwise/models"
	"slotwise/services/provider"
	"slotwise/utils"

	"github.com/gin-gonic/gin"
)

// ProviderHandler exposes provider profile and availability management.
type ProviderHandler struct {
	Svc provider.ProviderService
}

// NewProviderHandler creates a new ProviderHandler instance.
func NewProviderHandler(svc provider.ProviderService) *ProviderHandler {
	return &ProviderHandler{Svc: svc}
}

// RegisterProviderHandler creates a provider profile.
func (h *ProviderHandler) RegisterProviderHandler(c *gin.Context) {
	var p models.Provider
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.Register(c.Request.Context(), &p)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to register provider", err.Error())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetProviderHandler returns a provider's public profile.
func (h *ProviderHandler) GetProviderHandler(c *gin.Context) {
	p, err := h.Svc.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "provider not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpdateProviderHandler applies a patch-style profile update. Providers may
// only update their own profile.
func (h *ProviderHandler) UpdateProviderHandler(c *gin.Context) {
	id := c.Param("id")
	if middleware.CallerID(c) != id {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only update their own profile")
		return
	}

	var updates models.ProviderProfileUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	updated, err := h.Svc.UpdateProfile(c.Request.Context(), id, updates)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to update provider", err.Error())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddRuleHandler creates a recurring availability rule for the caller.
func (h *ProviderHandler) AddRuleHandler(c *gin.Context) {
	id := c.Param("id")
	if middleware.CallerID(c) != id {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only edit their own availability")
		return
	}

	var rule models.AvailabilityRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.AddRule(c.Request.Context(), id, rule)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create rule", err.Error())
		return
	}
	invalidateSlotsCache(c.Request.Context(), id)
	c.JSON(http.StatusCreated, created)
}

// DeleteRuleHandler removes one of the caller's recurring rules.
func (h *ProviderHandler) DeleteRuleHandler(c *gin.Context) {
	id := c.Param("id")
	if middleware.CallerID(c) != id {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only edit their own availability")
		return
	}

	if err := h.Svc.RemoveRule(c.Request.Context(), id, c.Param("ruleId")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to delete rule", err.Error())
		return
	}
	invalidateSlotsCache(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "rule deleted"})
}

// ListRulesHandler returns a provider's recurring rules.
func (h *ProviderHandler) ListRulesHandler(c *gin.Context) {
	rules, err := h.Svc.ListRules(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rules", err.Error())
		return
	}
	c.JSON(http.StatusOK, rules)
}

// AddExceptionHandler creates an exclusion date for the caller.
func (h *ProviderHandler) AddExceptionHandler(c *gin.Context) {
	id := c.Param("id")
	if middleware.CallerID(c) != id {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only edit their own availability")
		return
	}

	var exc models.AvailabilityException
	if err := c.ShouldBindJSON(&exc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	created, err := h.Svc.AddException(c.Request.Context(), id, exc)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to create exclusion date", err.Error())
		return
	}
	invalidateSlotsCache(c.Request.Context(), id)
	c.JSON(http.StatusCreated, created)
}

// DeleteExceptionHandler removes one of the caller's exclusion dates.
func (h *ProviderHandler) DeleteExceptionHandler(c *gin.Context) {
	id := c.Param("id")
	if middleware.CallerID(c) != id {
		utils.JSONError(c, http.StatusForbidden, "forbidden", "providers may only edit their own availability")
		return
	}

	if err := h.Svc.RemoveException(c.Request.Context(), id, c.Param("exceptionId")); err != nil {
		utils.JSONError(c, http.StatusNotFound, "failed to delete exclusion date", err.Error())
		return
	}
	invalidateSlotsCache(c.Request.Context(), id)
	c.JSON(http.StatusOK, gin.H{"message": "exclusion date deleted"})
}

// ListExceptionsHandler returns a provider's exclusion dates.
func (h *ProviderHandler) ListExceptionsHandler(c *gin.Context) {
	exceptions, err := h.Svc.ListExceptions(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list exclusion dates", err.Error())
		return
	}
	c.JSON(http.StatusOK, exceptions)
}
