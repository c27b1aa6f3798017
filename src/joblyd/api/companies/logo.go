package companies

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bitswalk/jobly/src/common/errors"
	"github.com/bitswalk/jobly/src/joblyd/api/common"
	"github.com/bitswalk/jobly/src/joblyd/storage"
	"github.com/gin-gonic/gin"
)

func logoURL(handle string) string {
	return "/companies/" + handle + "/logo"
}

// HandleUploadLogo stores a company logo and points logoUrl at it
// @Summary      Upload a company logo
// @Tags         Companies
// @Accept       multipart/form-data
// @Produce      json
// @Param        handle  path      string  true  "Company handle"
// @Param        logo    formData  file    true  "Logo image"
// @Success      200     {object}  CompanyResponse
// @Failure      400     {object}  common.ErrorResponse
// @Failure      401     {object}  common.ErrorResponse
// @Failure      404     {object}  common.ErrorResponse
// @Failure      503     {object}  common.ErrorResponse
// @Security     BearerAuth
// @Router       /companies/{handle}/logo [put]
func (h *Handler) HandleUploadLogo(c *gin.Context) {
	handle := c.Param("handle")

	if h.storage == nil {
		common.Error(c, errors.ErrStorageUnavailable.WithMessage("Storage backend not configured"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxLogoBytes+(64<<10))
	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		common.BadRequest(c, "No logo provided. Upload an image in the 'logo' form field.")
		return
	}
	defer file.Close()

	if header.Size > h.maxLogoBytes {
		common.BadRequest(c, fmt.Sprintf("Logo exceeds %d bytes", h.maxLogoBytes))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	previous, err := h.companies.LogoKey(ctx, handle)
	if err != nil {
		common.Error(c, err)
		return
	}

	key, _, err := storage.PutLogo(ctx, h.storage, handle, header.Filename, file, header.Size)
	if err != nil {
		common.Error(c, err)
		return
	}

	company, err := h.companies.SetLogo(ctx, handle, key, logoURL(handle))
	common.AuditLog(c, common.AuditEvent{
		Action:   "company.logo",
		Resource: "company:" + handle,
		Detail:   key,
		Success:  err == nil,
	})
	if err != nil {
		h.removeObject(ctx, key)
		common.Error(c, err)
		return
	}

	if previous != "" && previous != key {
		h.removeObject(ctx, previous)
	}

	c.JSON(http.StatusOK, CompanyResponse{Company: company})
}

// HandleGetLogo streams a company's uploaded logo
// @Summary      Get a company logo
// @Tags         Companies
// @Produce      image/png,image/jpeg,image/gif,image/webp,image/svg+xml
// @Param        handle  path      string  true  "Company handle"
// @Success      200     {file}    binary
// @Failure      404     {object}  common.ErrorResponse
// @Failure      503     {object}  common.ErrorResponse
// @Router       /companies/{handle}/logo [get]
func (h *Handler) HandleGetLogo(c *gin.Context) {
	handle := c.Param("handle")

	if h.storage == nil {
		common.Error(c, errors.ErrStorageUnavailable.WithMessage("Storage backend not configured"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	key, err := h.companies.LogoKey(ctx, handle)
	if err != nil {
		common.Error(c, err)
		return
	}
	if key == "" {
		common.Error(c, errors.ErrStorageNotFound.WithMessagef("No logo for company: %s", handle))
		return
	}

	logo, err := storage.OpenLogo(ctx, h.storage, key)
	if err != nil {
		common.Error(c, err)
		return
	}
	defer logo.Close()

	c.DataFromReader(http.StatusOK, logo.Info.Size, logo.Info.ContentType, logo, map[string]string{
		"Cache-Control": "public, max-age=3600",
		"ETag":          logo.Info.ETag,
	})
}
