package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/srgjo27/park_booking/internal/core/crop"
	"github.com/srgjo27/park_booking/internal/core/domain"
	"github.com/srgjo27/park_booking/internal/core/services"
)

type submitBookingBody struct {
	FullName    string      `json:"fullName"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	TourPackage string      `json:"tourPackage"`
	NumGuests   json.Number `json:"numGuests"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
}

// BookingHandler serves the public site: booking submission and catalog reads.
type BookingHandler struct {
	bookings      *services.BookingService
	catalog       *services.CatalogService
	content       *services.ContentService
	photoMaxBytes int64
}

func NewBookingHandler(bookings *services.BookingService, catalog *services.CatalogService, content *services.ContentService, photoMaxBytes int64) *BookingHandler {
	return &BookingHandler{
		bookings:      bookings,
		catalog:       catalog,
		content:       content,
		photoMaxBytes: photoMaxBytes,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var form domain.BookingForm
	var photo *services.PhotoUpload

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBind(&form); err != nil {
			respondError(c, http.StatusBadRequest, "invalid form body")
			return
		}

		if fh, err := c.FormFile("photo"); err == nil {
			data, err := readUpload(fh, h.photoMaxBytes)
			if err != nil {
				h.respondSubmitError(c, err)
				return
			}

			var params crop.Params
			if err := c.ShouldBind(&params); err != nil {
				respondError(c, http.StatusBadRequest, "invalid crop parameters")
				return
			}
			photo = &services.PhotoUpload{Data: data, Crop: params}
		}
	} else {
		var body submitBookingBody
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, http.StatusBadRequest, "invalid json body")
			return
		}
		form = domain.BookingForm{
			FullName:    body.FullName,
			Email:       body.Email,
			Phone:       body.Phone,
			TourPackage: body.TourPackage,
			NumGuests:   body.NumGuests.String(),
			StartDate:   body.StartDate,
			EndDate:     body.EndDate,
		}
	}

	res, err := h.bookings.Submit(c.Request.Context(), form, photo)
	if err != nil {
		h.respondSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"submitted": res.Submitted,
		"booking":   res.Booking,
	})
}

func (h *BookingHandler) respondSubmitError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	var subErr *services.SubmissionError

	switch {
	case errors.As(err, &verr):
		respondValidation(c, verr)
	case errors.Is(err, domain.ErrPhotoTooLarge), errors.Is(err, crop.ErrImageTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "Photo is too large")
	case errors.Is(err, crop.ErrUnsupportedImage), errors.Is(err, crop.ErrDecode):
		respondError(c, http.StatusUnprocessableEntity, "Photo could not be read. Please upload a JPEG, PNG or WebP image")
	case errors.As(err, &subErr) && subErr.Step == domain.StateUploading:
		_ = c.Error(err)
		respondError(c, http.StatusBadGateway, "Failed to upload photo. Please try again")
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to submit booking. Please try again")
	}
}

func (h *BookingHandler) ListPackages(c *gin.Context) {
	packages, err := h.catalog.ActivePackages(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"packages": packages})
}

func (h *BookingHandler) ListAttractions(c *gin.Context) {
	attractions, err := h.content.Attractions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attractions": attractions})
}

func (h *BookingHandler) GetContent(c *gin.Context) {
	content, err := h.content.Section(c.Request.Context(), c.Param("section"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}
