package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/srgjo27/park_booking/internal/core/crop"
	"github.com/srgjo27/park_booking/internal/core/domain"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func respondValidation(c *gin.Context, verr *domain.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error":   verr.First().Message,
		"fields":  verr.Fields,
	})
}

// respondServiceError maps domain errors to status codes. Unknown errors are reported as 500
// without their detail.
func respondServiceError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondValidation(c, verr)
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrConflict):
		respondError(c, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrInvalidTransition):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrPhotoTooLarge), errors.Is(err, crop.ErrImageTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "Image is too large")
	case errors.Is(err, crop.ErrUnsupportedImage), errors.Is(err, crop.ErrDecode):
		respondError(c, http.StatusUnprocessableEntity, "Image could not be read")
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// readUpload reads a multipart file, refusing anything larger than maxBytes.
func readUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh.Size > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrPhotoTooLarge, fh.Size)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", domain.ErrPhotoTooLarge, maxBytes)
	}

	return data, nil
}
