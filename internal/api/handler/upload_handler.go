package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/api/middleware"
	"github.com/matchday/club-api/internal/api/response"
)

// Uploaded reports the files the upload gate stored for this request.
//
// @Summary      Upload images
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        type   path      string  true  "Category ([a-z0-9_-], at most 32 characters)"
// @Param        files  formData  file    true  "Images (JPEG, PNG, GIF or WebP; at most 5 files of 10 MiB)"
// @Success      201    {object}  uploadResponse
// @Failure      400    {object}  response.ErrorBody
// @Failure      401    {object}  response.ErrorBody
// @Router       /uploads/{type} [post]
func Uploaded(c echo.Context) error {
	return response.OK(c, http.StatusCreated, echo.Map{"files": middleware.StoredFilesFrom(c)})
}
