package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/api/middleware"
	"github.com/matchday/club-api/internal/api/response"
	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a supporter account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      409   {object}  response.ErrorBody
// @Failure      500   {object}  response.ErrorBody
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusCreated, echo.Map{"token": session.Token, "user": session.Principal})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      401   {object}  response.ErrorBody
// @Failure      403   {object}  response.ErrorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	session, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, echo.Map{"token": session.Token, "user": session.Principal})
}

// Me returns the caller's principal as resolved by the auth gate.
//
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  principalResponse
// @Failure      401  {object}  response.ErrorBody
// @Failure      403  {object}  response.ErrorBody
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"user": p})
}

// UpdateProfile edits the caller's name, email or phone.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  principalResponse
// @Failure      400   {object}  response.ErrorBody
// @Failure      401   {object}  response.ErrorBody
// @Failure      403   {object}  response.ErrorBody
// @Failure      409   {object}  response.ErrorBody
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	updated, err := h.authService.UpdateProfile(c.Request().Context(), p.ID, ports.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, echo.Map{"user": updated})
}

// UploadAvatar sets the caller's avatar to the first uploaded image.
//
// @Summary      Upload avatar
// @Tags         auth
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "Image (JPEG, PNG, GIF or WebP, at most 10 MiB)"
// @Success      200     {object}  principalResponse
// @Failure      400     {object}  response.ErrorBody
// @Failure      401     {object}  response.ErrorBody
// @Failure      403     {object}  response.ErrorBody
// @Router       /auth/avatar [post]
func (h *AuthHandler) UploadAvatar(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	files := middleware.StoredFilesFrom(c)
	if len(files) == 0 {
		return domain.Invalid(domain.ErrNoFiles, "no file uploaded")
	}

	updated, err := h.authService.SetAvatar(c.Request().Context(), p.ID, files[0].URL)
	if err != nil {
		return err
	}

	return response.OK(c, http.StatusOK, echo.Map{"user": updated})
}
