package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/service"
	"catalog-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AlertStore is the slice of the store the alert endpoints need
type AlertStore interface {
	OpenAlerts(ctx context.Context) ([]models.StockAlert, error)
	ResolveStockAlert(ctx context.Context, id string) (bool, error)
}

// Handler contains HTTP handlers
type Handler struct {
	inventory *service.InventoryService
	lifecycle *service.LifecycleService
	alerts    AlertStore
}

// NewHandler creates a new HTTP handler
func NewHandler(inventory *service.InventoryService, lifecycle *service.LifecycleService, alerts AlertStore) *Handler {
	return &Handler{
		inventory: inventory,
		lifecycle: lifecycle,
		alerts:    alerts,
	}
}

// SetupRoutes registers the source-compatible per-family routes plus
// alert and operational endpoints.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	for _, fam := range catalog.Families() {
		fam := fam
		v1.POST("/add"+fam.PathName, h.createListing(fam))
		v1.GET("/getAll"+fam.PluralPathName, h.listListings(fam))
		v1.GET("/get"+fam.PathName+"/:id", h.getListing(fam))
		v1.PUT("/update"+fam.PathName+"/:id", h.updateListing(fam))
		v1.PUT("/remove"+fam.PathName+"/:id", h.toggleListingStatus(fam))
		v1.DELETE("/delete"+fam.PathName+"/:id", h.deleteListing(fam))
		v1.PUT("/purchase"+fam.PathName+"/:id", h.purchaseVariant(fam))
	}

	v1.GET("/alerts", h.listAlerts)
	v1.PUT("/alerts/:id/resolve", h.resolveAlert)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) createListing(fam catalog.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "BAD_REQUEST",
				"message": "Invalid request body: " + err.Error(),
			})
			return
		}

		listing, err := h.lifecycle.Create(c.Request.Context(), fam, &req)
		if err != nil {
			h.respondError(c, fam, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"data":    listing,
			"message": fam.PathName + " created successfully",
		})
	}
}

func (h *Handler) listListings(fam catalog.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 20
		}

		filter := models.ListFilter{
			Status: c.Query("status"),
			Skip:   int64((page - 1) * limit),
			Limit:  int64(limit),
		}

		listings, total, err := h.lifecycle.List(c.Request.Context(), fam, filter)
		if err != nil {
			h.respondError(c, fam, err)
			return
		}

		totalPages := total / int64(limit)
		if total%int64(limit) != 0 {
			totalPages++
		}

		c.JSON(http.StatusOK, gin.H{
			"listings":    listings,
			"totalPages":  totalPages,
			"currentPage": page,
			"totalCount":  total,
		})
	}
}

func (h *Handler) getListing(fam catalog.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing, err := h.lifecycle.Get(c.Request.Context(), fam, c.Param("id"))
		if err != nil {
			h.respondError(c, fam, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":    listing,
			"message": fam.PathName + " fetched successfully",
		})
	}
}

func (h *Handler) updateListing(fam catalog.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ListingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "BAD_REQUEST",
				"message": "Invalid request body: " + err.Error(),
			})
			return
		}

		listing, err := h.lifecycle.Update(c.Request.Context(), fam, c.Param("id"), &req)
		if err != nil {
			h.respondError(c, fam, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":    listing,
			"message": fam.PathName + " updated successfully",
		})
	}
}

func (h *Handler) toggleListingStatus(fam catalog.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing, err := h.lifecycle.ToggleStatus(c.Request.Context(), fam, c.Param("id"))
		if err != nil {
			h.respondError(c, fam, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":    listing,
			"message": fam.PathName + " removed successfully",
		})
	}
}

func (h *Handler) deleteListing(fam catalog.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		listing, err := h.lifecycle.Delete(c.Request.Context(), fam, c.Param("id"))
		if err != nil {
			h.respondError(c, fam, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":    listing,
			"message": fam.PathName + " deleted successfully",
		})
	}
}

func (h *Handler) purchaseVariant(fam catalog.Family) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.PurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "BAD_REQUEST",
				"message": "Variant ID is required",
			})
			return
		}

		listing, err := h.inventory.Purchase(c.Request.Context(), fam, c.Param("id"), &req)
		if err != nil {
			h.respondError(c, fam, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data":    listing,
			"message": "Purchase successful, quantity updated",
		})
	}
}

func (h *Handler) listAlerts(c *gin.Context) {
	alerts, err := h.alerts.OpenAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Failed to fetch alerts",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"total":  len(alerts),
	})
}

func (h *Handler) resolveAlert(c *gin.Context) {
	found, err := h.alerts.ResolveStockAlert(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Failed to resolve alert",
		})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{
			"data":    []interface{}{},
			"message": "Alert not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert resolved"})
}

// respondError maps core errors onto the boundary convention: listing
// not found stays a 200 with an empty payload (source behavior), client
// faults are 400s with a code, everything else is a 500.
func (h *Handler) respondError(c *gin.Context, fam catalog.Family, err error) {
	switch {
	case errors.Is(err, models.ErrListingNotFound):
		c.JSON(http.StatusOK, gin.H{
			"data":    []interface{}{},
			"message": fam.PathName + " not found",
		})
	case errors.Is(err, models.ErrVariantNotFound):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VARIANT_NOT_FOUND",
			"message": "Variant not found",
		})
	case errors.Is(err, models.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INVALID_QUANTITY",
			"message": "Valid quantity to purchase is required",
		})
	case errors.Is(err, models.ErrInsufficientStock):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "INSUFFICIENT_STOCK",
			"message": "Not enough stock available",
		})
	case models.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "VALIDATION_ERROR",
			"message": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "INTERNAL_ERROR",
			"message": "Internal server error",
		})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
