package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/services"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type statusRequest struct {
	Status domain.BookingStatus `json:"status" binding:"required"`
}

type activeRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

type AdminHandler struct {
	auth          *services.AuthService
	bookings      *services.BookingService
	catalog       *services.CatalogService
	content       *services.ContentService
	imageMaxBytes int64
}

func NewAdminHandler(auth *services.AuthService, bookings *services.BookingService, catalog *services.CatalogService, content *services.ContentService, imageMaxBytes int64) *AdminHandler {
	return &AdminHandler{
		auth:          auth,
		bookings:      bookings,
		catalog:       catalog,
		content:       content,
		imageMaxBytes: imageMaxBytes,
	}
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	token, expiresAt, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookings.ListBookings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *AdminHandler) UpdateBookingStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "status is required")
		return
	}

	booking, err := h.bookings.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.bookings.DeleteBooking(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListPackages(c *gin.Context) {
	packages, err := h.catalog.AllPackages(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if packages == nil {
		packages = []domain.TourPackage{}
	}
	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

func (h *AdminHandler) CreatePackage(c *gin.Context) {
	var in domain.PackageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	pkg, err := h.catalog.CreatePackage(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"package": pkg})
}

func (h *AdminHandler) UpdatePackage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var in domain.PackageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	pkg, err := h.catalog.UpdatePackage(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"package": pkg})
}

func (h *AdminHandler) SetPackageActive(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req activeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "is_active is required")
		return
	}

	if err := h.catalog.SetPackageActive(c.Request.Context(), id, *req.IsActive); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "is_active": *req.IsActive})
}

func (h *AdminHandler) DeletePackage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.catalog.DeletePackage(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) CreateAttraction(c *gin.Context) {
	var in domain.AttractionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	attraction, err := h.content.CreateAttraction(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"attraction": attraction})
}

func (h *AdminHandler) UpdateAttraction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var in domain.AttractionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	attraction, err := h.content.UpdateAttraction(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attraction": attraction})
}

func (h *AdminHandler) UploadAttractionImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	data, ok := h.imageUpload(c)
	if !ok {
		return
	}

	attraction, err := h.content.UploadAttractionImage(c.Request.Context(), id, data)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attraction": attraction})
}

func (h *AdminHandler) DeleteAttraction(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.content.DeleteAttraction(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) SaveContent(c *gin.Context) {
	var content map[string]any
	if err := c.ShouldBindJSON(&content); err != nil {
		respondError(c, http.StatusBadRequest, "invalid json body")
		return
	}

	sc, err := h.content.SaveSection(c.Request.Context(), c.Param("section"), content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (h *AdminHandler) UploadHeroImage(c *gin.Context) {
	data, ok := h.imageUpload(c)
	if !ok {
		return
	}

	sc, err := h.content.UploadHeroImage(c.Request.Context(), data)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, sc)
}

func (h *AdminHandler) imageUpload(c *gin.Context) ([]byte, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return nil, false
	}

	data, err := readUpload(fh, h.imageMaxBytes)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	return data, true
}
