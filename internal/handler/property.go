package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mviller/propnest/internal/model"
	"github.com/mviller/propnest/internal/repository"
)

// PropertyHandler serves the listing endpoints. Reads are public;
// create requires authentication and update/delete additionally
// require ownership.
type PropertyHandler struct {
	Props PropertyStore
}

func NewPropertyHandler(props PropertyStore) *PropertyHandler {
	return &PropertyHandler{Props: props}
}

type createPropertyReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Type        string   `json:"type"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Area        float64  `json:"area"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	ZipCode     string   `json:"zipCode"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
}

func (r *createPropertyReq) validate() string {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return "Title is required"
	case strings.TrimSpace(r.Description) == "":
		return "Description is required"
	case r.Price <= 0:
		return "Price must be positive"
	case !model.ValidPropertyType(r.Type):
		return "Invalid property type"
	case r.Bedrooms < 0:
		return "Bedrooms must be 0 or more"
	case r.Bathrooms < 0:
		return "Bathrooms must be 0 or more"
	case r.Area <= 0:
		return "Area must be positive"
	case strings.TrimSpace(r.Address) == "":
		return "Address is required"
	case strings.TrimSpace(r.City) == "":
		return "City is required"
	case strings.TrimSpace(r.State) == "":
		return "State is required"
	case strings.TrimSpace(r.ZipCode) == "":
		return "Zip code is required"
	case len(r.Images) == 0:
		return "At least one image is required"
	}
	return ""
}

// validatePatch checks only the fields present in a partial update.
func validatePatch(p model.PropertyPatch) string {
	switch {
	case p.Title != nil && strings.TrimSpace(*p.Title) == "":
		return "Title is required"
	case p.Description != nil && strings.TrimSpace(*p.Description) == "":
		return "Description is required"
	case p.Price != nil && *p.Price <= 0:
		return "Price must be positive"
	case p.Type != nil && !model.ValidPropertyType(*p.Type):
		return "Invalid property type"
	case p.Status != nil && !model.ValidPropertyStatus(*p.Status):
		return "Invalid property status"
	case p.Bedrooms != nil && *p.Bedrooms < 0:
		return "Bedrooms must be 0 or more"
	case p.Bathrooms != nil && *p.Bathrooms < 0:
		return "Bathrooms must be 0 or more"
	case p.Area != nil && *p.Area <= 0:
		return "Area must be positive"
	case p.Address != nil && strings.TrimSpace(*p.Address) == "":
		return "Address is required"
	case p.City != nil && strings.TrimSpace(*p.City) == "":
		return "City is required"
	case p.State != nil && strings.TrimSpace(*p.State) == "":
		return "State is required"
	case p.ZipCode != nil && strings.TrimSpace(*p.ZipCode) == "":
		return "Zip code is required"
	case p.Images != nil && len(*p.Images) == 0:
		return "At least one image is required"
	}
	return ""
}

type pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// List handles GET /api/properties. It is world-readable and only
// ever returns AVAILABLE listings, newest first.
func (h *PropertyHandler) List(c echo.Context) error {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(c, "limit", 12)
	if limit < 1 {
		limit = 12
	}

	q := repository.SearchQuery{
		Query:    c.QueryParam("q"),
		Location: c.QueryParam("location"),
		Type:     c.QueryParam("type"),
		Page:     page,
		Limit:    limit,
	}
	if v := c.QueryParam("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MinPrice = &f
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q.MaxPrice = &f
		}
	}
	if v := c.QueryParam("bedrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Bedrooms = &n
		}
	}
	if v := c.QueryParam("bathrooms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Bathrooms = &n
		}
	}

	props, total, err := h.Props.Search(c.Request().Context(), q)
	if err != nil {
		c.Logger().Errorf("list properties: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	pages := (total + int64(limit) - 1) / int64(limit)
	return ok(c, http.StatusOK, echo.Map{
		"properties": props,
		"pagination": pagination{Page: page, Limit: limit, Total: total, Pages: pages},
	}, "")
}

// Get handles GET /api/properties/:id (public).
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := h.Props.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fail(c, http.StatusNotFound, "Property not found")
		}
		c.Logger().Errorf("get property: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return ok(c, http.StatusOK, p, "")
}

// Create handles POST /api/properties. Any authenticated user may
// list a property; the creator becomes the owner. Role is not
// checked here.
func (h *PropertyHandler) Create(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	var req createPropertyReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := req.validate(); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	p, err := h.Props.Create(c.Request().Context(), uid, model.Property{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Type:        req.Type,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Area:        req.Area,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		ZipCode:     req.ZipCode,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Images:      req.Images,
		Amenities:   req.Amenities,
	})
	if err != nil {
		c.Logger().Errorf("create property: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    p,
		Message: "Property created successfully",
	})
}

// Update handles PUT /api/properties/:id. The existence check runs
// before the ownership check so a non-owner probing an unknown ID
// gets the same 404 as everyone else. The payload is an explicit
// partial-update structure; unknown keys are rejected.
func (h *PropertyHandler) Update(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	id := c.Param("id")

	existing, err := h.Props.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fail(c, http.StatusNotFound, "Property not found")
		}
		c.Logger().Errorf("update property: lookup: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if existing.OwnerID != uid {
		return fail(c, http.StatusForbidden, "Unauthorized")
	}

	var patch model.PropertyPatch
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&patch); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	if msg := validatePatch(patch); msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	p, err := h.Props.Update(c.Request().Context(), id, patch)
	if err != nil {
		c.Logger().Errorf("update property: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, response{
		Success: true,
		Data:    p,
		Message: "Property updated successfully",
	})
}

// Delete handles DELETE /api/properties/:id with the same 404-before-
// 403 ordering as Update.
func (h *PropertyHandler) Delete(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return fail(c, http.StatusUnauthorized, "Authentication required")
	}
	id := c.Param("id")

	existing, err := h.Props.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fail(c, http.StatusNotFound, "Property not found")
		}
		c.Logger().Errorf("delete property: lookup: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	if existing.OwnerID != uid {
		return fail(c, http.StatusForbidden, "Unauthorized")
	}

	if err := h.Props.Delete(c.Request().Context(), id); err != nil {
		c.Logger().Errorf("delete property: %v", err)
		return fail(c, http.StatusInternalServerError, "Internal server error")
	}
	return c.JSON(http.StatusOK, response{
		Success: true,
		Message: "Property deleted successfully",
	})
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
