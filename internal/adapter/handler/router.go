package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const slowRequestThreshold = 200 * time.Millisecond

func NewRouter(bookings *BookingHandler, favorites *FavoritesHandler, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	shops := r.Group("/shops/:shopID")
	{
		shops.GET("/catalog", bookings.GetCatalog)
		shops.POST("/quote", bookings.Quote)
		shops.POST("/bookings", bookings.CreateBooking)
	}

	r.POST("/bookings/:bookingID/confirm", bookings.ConfirmBooking)

	if favorites != nil {
		users := r.Group("/users/:userID/favorites")
		{
			users.GET("", favorites.List)
			users.GET("/:shopID", favorites.Get)
			users.PUT("/:shopID", favorites.Toggle)
		}
	}

	return r
}

// RequestLogger logs every request with its latency and flags slow ones.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
		}

		if latency > slowRequestThreshold {
			logger.Warn("slow request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}
