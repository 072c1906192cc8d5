package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roomly/backend/internal/domain"
	"github.com/roomly/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog         *usecase.CatalogService
	recommendations *usecase.RecommendationService
	activity        *usecase.ActivityService
	rooms           *usecase.RoomService
	cart            *usecase.CartService
	auth            *usecase.AuthService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *usecase.CatalogService,
	recommendations *usecase.RecommendationService,
	activity *usecase.ActivityService,
	rooms *usecase.RoomService,
	cart *usecase.CartService,
	auth *usecase.AuthService,
) *Handler {
	return &Handler{
		catalog:         catalog,
		recommendations: recommendations,
		activity:        activity,
		rooms:           rooms,
		cart:            cart,
		auth:            auth,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "roomly-backend",
		"version": "1.0.0",
	})
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, domain.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, domain.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrCatalogUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// --- Products and search ---

// ListProducts returns the merged product catalog
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct returns a single product and records the view
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.activity.RecordView(c.Request.Context(), *product)
	c.JSON(http.StatusOK, product)
}

type smartSearchRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

// SmartSearch runs an AI-assisted product search
func (h *Handler) SmartSearch(c *gin.Context) {
	var req smartSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	products, err := h.catalog.SmartSearch(c.Request.Context(), req.Query, req.Category, req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

type compareRequest struct {
	FirstID  string `json:"productId1"`
	SecondID string `json:"productId2"`
}

// CompareProducts returns an AI comparison of two products
func (h *Handler) CompareProducts(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	comparison, err := h.catalog.CompareProducts(c.Request.Context(), req.FirstID, req.SecondID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

// AnalyzeRoom accepts a room photo upload and returns a style analysis
func (h *Handler) AnalyzeRoom(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	analysis, err := h.catalog.AnalyzeRoomImage(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// --- Recommendations ---

// Recommendations returns products ranked for a room profile
func (h *Handler) Recommendations(c *gin.Context) {
	roomID := c.Query("roomId")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roomId is required"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	scored, err := h.recommendations.RecommendForRoom(c.Request.Context(), roomID, c.Query("category"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": scored})
}

// --- Activity ---

type recordSearchRequest struct {
	Query string `json:"query"`
}

// RecordSearch logs a search query. Always returns 204; activity tracking
// never fails a user request.
func (h *Handler) RecordSearch(c *gin.Context) {
	var req recordSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	h.activity.RecordSearch(c.Request.Context(), req.Query)
	c.Status(http.StatusNoContent)
}

// RecordView logs a product view
func (h *Handler) RecordView(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	h.activity.RecordView(c.Request.Context(), product)
	c.Status(http.StatusNoContent)
}

// RecordClick logs a product click
func (h *Handler) RecordClick(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.Status(http.StatusNoContent)
		return
	}
	h.activity.RecordClick(c.Request.Context(), product)
	c.Status(http.StatusNoContent)
}

// RecentlyViewed returns deduplicated recently viewed products
func (h *Handler) RecentlyViewed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	records := h.activity.RecentlyViewed(c.Request.Context(), limit)
	c.JSON(http.StatusOK, gin.H{"products": records})
}

// RecentSearches returns deduplicated recent search queries
func (h *Handler) RecentSearches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	records := h.activity.RecentSearches(c.Request.Context(), limit)
	c.JSON(http.StatusOK, gin.H{"searches": records})
}

// ActivitySummary returns aggregate activity statistics
func (h *Handler) ActivitySummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.activity.Summary(c.Request.Context()))
}

// --- Rooms ---

// ListRooms returns all room profiles
func (h *Handler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.rooms.List(c.Request.Context())})
}

// GetRoom returns a room by ID
func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.rooms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// CreateRoom stores a new room profile
func (h *Handler) CreateRoom(c *gin.Context) {
	var room domain.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.rooms.Create(c.Request.Context(), room)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateRoom replaces a room profile
func (h *Handler) UpdateRoom(c *gin.Context) {
	var room domain.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.rooms.Update(c.Request.Context(), c.Param("id"), room)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteRoom removes a room profile
func (h *Handler) DeleteRoom(c *gin.Context) {
	if err := h.rooms.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Cart ---

// GetCart returns the cart lines and totals
func (h *Handler) GetCart(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"items":  h.cart.Items(ctx),
		"totals": h.cart.Totals(ctx),
	})
}

// AddCartItem adds a product to the cart
func (h *Handler) AddCartItem(c *gin.Context) {
	var item domain.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.cart.AddItem(c.Request.Context(), item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.cart.Items(c.Request.Context())})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem sets the quantity of a cart line
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.cart.SetQuantity(c.Request.Context(), c.Param("productId"), req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": h.cart.Items(c.Request.Context())})
}

// RemoveCartItem deletes a cart line
func (h *Handler) RemoveCartItem(c *gin.Context) {
	if err := h.cart.RemoveItem(c.Request.Context(), c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ClearCart empties the cart
func (h *Handler) ClearCart(c *gin.Context) {
	h.cart.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// --- Discounts ---

// ListDiscounts returns the per-product discount map
func (h *Handler) ListDiscounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"discounts": h.cart.Discounts(c.Request.Context())})
}

type setDiscountRequest struct {
	Fraction float64 `json:"fraction"`
}

// SetDiscount sets a product's discount fraction
func (h *Handler) SetDiscount(c *gin.Context) {
	var req setDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.cart.SetDiscount(c.Request.Context(), c.Param("productId"), req.Fraction); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"discounts": h.cart.Discounts(c.Request.Context())})
}

// RemoveDiscount clears a product's discount
func (h *Handler) RemoveDiscount(c *gin.Context) {
	h.cart.RemoveDiscount(c.Request.Context(), c.Param("productId"))
	c.Status(http.StatusNoContent)
}

// --- Admin products ---

// AddCustomProduct stores an admin-added product
func (h *Handler) AddCustomProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.catalog.AddCustomProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// RemoveCustomProduct deletes an admin-added product
func (h *Handler) RemoveCustomProduct(c *gin.Context) {
	if err := h.catalog.RemoveCustomProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Register creates a user account
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a session token
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated user's profile
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetString(contextUserIDKey)
	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
