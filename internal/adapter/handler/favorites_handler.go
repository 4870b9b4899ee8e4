package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/srgjo27/service_booking/internal/core/services"
)

type FavoritesHandler struct {
	svc    *services.FavoritesService
	logger *zap.Logger
}

func NewFavoritesHandler(svc *services.FavoritesService, logger *zap.Logger) *FavoritesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FavoritesHandler{svc: svc, logger: logger}
}

func (h *FavoritesHandler) Toggle(c *gin.Context) {
	userID, shopID := c.Param("userID"), c.Param("shopID")

	favorite, err := h.svc.Toggle(c.Request.Context(), userID, shopID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shop_id": shopID, "favorite": favorite})
}

func (h *FavoritesHandler) Get(c *gin.Context) {
	shopID := c.Param("shopID")

	favorite, err := h.svc.IsFavorite(c.Request.Context(), c.Param("userID"), shopID)
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shop_id": shopID, "favorite": favorite})
}

func (h *FavoritesHandler) List(c *gin.Context) {
	shopIDs, err := h.svc.List(c.Request.Context(), c.Param("userID"))
	if err != nil {
		handleError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shop_ids": shopIDs})
}
