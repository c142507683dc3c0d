package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/api/middleware"
	"github.com/matchday/club-api/internal/api/response"
	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

// getOne, removeOne: shared bodies for the catalog read and delete routes.

func getOne[T any](c echo.Context, catalog ports.Catalog[T], key string) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	item, err := catalog.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{key: item})
}

func removeOne[T any](c echo.Context, catalog ports.Catalog[T], what string) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := catalog.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return response.Message(c, http.StatusOK, what+" deleted")
}

// ── Matches ───────────────────────────────────────────────────────────────────

type MatchHandler struct {
	service ports.MatchService
}

func NewMatchHandler(service ports.MatchService) *MatchHandler {
	return &MatchHandler{service: service}
}

// List returns fixtures. Signed-in users get has_ticket on each match.
//
// @Summary      List matches
// @Tags         matches
// @Produce      json
// @Param        page      query     int  false  "Page (1-based)"
// @Param        per_page  query     int  false  "Page size (max 100)"
// @Success      200       {object}  map[string]any
// @Router       /matches [get]
func (h *MatchHandler) List(c echo.Context) error {
	page := pageParams(c)
	matches, total, err := h.service.List(c.Request().Context(), middleware.PrincipalFrom(c), page)
	if err != nil {
		return err
	}
	return response.List(c, http.StatusOK, "matches", matches, page, total)
}

// Get returns one fixture.
//
// @Summary      Get a match
// @Tags         matches
// @Produce      json
// @Param        id   path      int  true  "Match ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  response.ErrorBody
// @Router       /matches/{id} [get]
func (h *MatchHandler) Get(c echo.Context) error {
	return getOne[domain.Match](c, h.service, "match")
}

// Create adds a fixture.
//
// @Summary      Create a match
// @Tags         matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      matchRequest  true  "Match"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Router       /matches [post]
func (h *MatchHandler) Create(c echo.Context) error {
	var req matchRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	m := req.toDomain()
	if err := h.service.Create(c.Request().Context(), m); err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, echo.Map{"match": m})
}

// Update replaces a fixture. An empty status keeps the current one.
//
// @Summary      Update a match
// @Tags         matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int           true  "Match ID"
// @Param        body  body      matchRequest  true  "Match"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /matches/{id} [put]
func (h *MatchHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req matchRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	current, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}

	m := req.toDomain()
	m.ID = id
	m.CreatedAt = current.CreatedAt
	if m.Status == "" {
		m.Status = current.Status
	}
	if err := h.service.Update(ctx, m); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"match": m})
}

// Delete removes a fixture. Fixtures with tickets sold cannot be deleted.
//
// @Summary      Delete a match
// @Tags         matches
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Match ID"
// @Success      200  {object}  response.MessageBody
// @Failure      404  {object}  response.ErrorBody
// @Failure      409  {object}  response.ErrorBody
// @Router       /matches/{id} [delete]
func (h *MatchHandler) Delete(c echo.Context) error {
	return removeOne[domain.Match](c, h.service, "match")
}

// ── Players ───────────────────────────────────────────────────────────────────

type PlayerHandler struct {
	service ports.PlayerService
}

func NewPlayerHandler(service ports.PlayerService) *PlayerHandler {
	return &PlayerHandler{service: service}
}

// List returns the roster ordered by shirt number.
//
// @Summary      List players
// @Tags         players
// @Produce      json
// @Param        page      query     int  false  "Page (1-based)"
// @Param        per_page  query     int  false  "Page size (max 100)"
// @Success      200       {object}  map[string]any
// @Router       /players [get]
func (h *PlayerHandler) List(c echo.Context) error {
	page := pageParams(c)
	players, total, err := h.service.List(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return response.List(c, http.StatusOK, "players", players, page, total)
}

// @Summary      Get a player
// @Tags         players
// @Produce      json
// @Param        id   path      int  true  "Player ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  response.ErrorBody
// @Router       /players/{id} [get]
func (h *PlayerHandler) Get(c echo.Context) error {
	return getOne[domain.Player](c, h.service, "player")
}

// @Summary      Create a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      playerRequest  true  "Player"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Router       /players [post]
func (h *PlayerHandler) Create(c echo.Context) error {
	var req playerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p := req.toDomain()
	if err := h.service.Create(c.Request().Context(), p); err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, echo.Map{"player": p})
}

// @Summary      Update a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Player ID"
// @Param        body  body      playerRequest  true  "Player"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /players/{id} [put]
func (h *PlayerHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req playerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	current, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}

	p := req.toDomain()
	p.ID = id
	p.CreatedAt = current.CreatedAt
	if err := h.service.Update(ctx, p); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"player": p})
}

// @Summary      Delete a player
// @Tags         players
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Player ID"
// @Success      200  {object}  response.MessageBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /players/{id} [delete]
func (h *PlayerHandler) Delete(c echo.Context) error {
	return removeOne[domain.Player](c, h.service, "player")
}

// ── Products ──────────────────────────────────────────────────────────────────

type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List returns shop items, optionally for one category.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Category filter"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        per_page  query     int     false  "Page size (max 100)"
// @Success      200       {object}  map[string]any
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	page := pageParams(c)
	products, total, err := h.service.List(c.Request().Context(), c.QueryParam("category"), page)
	if err != nil {
		return err
	}
	return response.List(c, http.StatusOK, "products", products, page, total)
}

// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  response.ErrorBody
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	return getOne[domain.Product](c, h.service, "product")
}

// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	p := req.toDomain()
	if err := h.service.Create(c.Request().Context(), p); err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, echo.Map{"product": p})
}

// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product ID"
// @Param        body  body      productRequest  true  "Product"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	current, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}

	p := req.toDomain()
	p.ID = id
	p.CreatedAt = current.CreatedAt
	if err := h.service.Update(ctx, p); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"product": p})
}

// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  response.MessageBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	return removeOne[domain.Product](c, h.service, "product")
}

// ── News ──────────────────────────────────────────────────────────────────────

type NewsHandler struct {
	service ports.NewsService
}

func NewNewsHandler(service ports.NewsService) *NewsHandler {
	return &NewsHandler{service: service}
}

// List returns published articles, newest first.
//
// @Summary      List news
// @Tags         news
// @Produce      json
// @Param        page      query     int  false  "Page (1-based)"
// @Param        per_page  query     int  false  "Page size (max 100)"
// @Success      200       {object}  map[string]any
// @Router       /news [get]
func (h *NewsHandler) List(c echo.Context) error {
	return h.list(c, true)
}

// ListAll returns every article including drafts.
//
// @Summary      List all news, drafts included
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page (1-based)"
// @Param        per_page  query     int  false  "Page size (max 100)"
// @Success      200       {object}  map[string]any
// @Router       /admin/news [get]
func (h *NewsHandler) ListAll(c echo.Context) error {
	return h.list(c, false)
}

func (h *NewsHandler) list(c echo.Context, publishedOnly bool) error {
	page := pageParams(c)
	articles, total, err := h.service.List(c.Request().Context(), publishedOnly, page)
	if err != nil {
		return err
	}
	return response.List(c, http.StatusOK, "news", articles, page, total)
}

// Get returns one published article. Drafts are reported as not found.
//
// @Summary      Get an article
// @Tags         news
// @Produce      json
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  response.ErrorBody
// @Router       /news/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	a, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !a.Published {
		return domain.ErrNotFound
	}
	return response.OK(c, http.StatusOK, echo.Map{"article": a})
}

// @Summary      Create an article
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newsRequest  true  "Article"
// @Success      201   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Router       /news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	author, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	var req newsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	a := req.toDomain()
	a.AuthorID = author.ID
	if err := h.service.Create(c.Request().Context(), a); err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, echo.Map{"article": a})
}

// Update replaces an article, keeping its author and first publication time.
//
// @Summary      Update an article
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Article ID"
// @Param        body  body      newsRequest  true  "Article"
// @Success      200   {object}  map[string]any
// @Failure      400   {object}  response.ErrorBody
// @Failure      404   {object}  response.ErrorBody
// @Router       /news/{id} [put]
func (h *NewsHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req newsRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	current, err := h.service.Get(ctx, id)
	if err != nil {
		return err
	}

	a := req.toDomain()
	a.ID = id
	a.AuthorID = current.AuthorID
	a.PublishedAt = current.PublishedAt
	a.CreatedAt = current.CreatedAt
	if err := h.service.Update(ctx, a); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, echo.Map{"article": a})
}

// @Summary      Delete an article
// @Tags         news
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Article ID"
// @Success      200  {object}  response.MessageBody
// @Failure      404  {object}  response.ErrorBody
// @Router       /news/{id} [delete]
func (h *NewsHandler) Delete(c echo.Context) error {
	return removeOne[domain.NewsArticle](c, h.service, "article")
}
