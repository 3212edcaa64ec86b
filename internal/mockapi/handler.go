package mockapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/chemstack/chemconsole/internal/materials"
	"github.com/chemstack/chemconsole/internal/permission"
	"github.com/chemstack/chemconsole/internal/production"
	"github.com/chemstack/chemconsole/internal/products"
	"github.com/chemstack/chemconsole/internal/purchases"
	"github.com/chemstack/chemconsole/internal/sales"
	"github.com/chemstack/chemconsole/internal/transport"
	"github.com/chemstack/chemconsole/pkg/logger"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// Handler exposes the backend over HTTP. Every mutating route is guarded by
// the same role/resource/verb table the console gates its affordances with,
// so hiding a button is never the only line of defense.
type Handler struct {
	*transport.BaseHandler
	service *Service
	tokens  *JWTTokenGenerator
	perms   permission.Checker
}

func NewHandler(service *Service, tokens *JWTTokenGenerator, perms permission.Checker) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		service:     service,
		tokens:      tokens,
		perms:       perms,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, role, err := h.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.WriteError(w, http.StatusUnauthorized, "invalid username or password")
			return
		}
		h.Logger.Error("authentication failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, loginResponse{Token: token, Username: req.Username, Role: role})
}

// AuthMiddleware validates the bearer token and stores its claims for the
// permission check downstream.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.tokens.ValidateToken(token)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		ctx = logger.With(ctx, "username", claims.Username, "role", claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var methodVerbs = map[string]permission.Verb{
	http.MethodGet:    permission.VerbGet,
	http.MethodPost:   permission.VerbPost,
	http.MethodPut:    permission.VerbPut,
	http.MethodDelete: permission.VerbDelete,
}

// RequirePermission enforces the capability table server-side: the request
// method maps to a verb, the route carries the resource.
func (h *Handler) RequirePermission(resource permission.Resource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(claimsContextKey).(*Claims)
			if !ok {
				h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
				return
			}

			role, ok := permission.ParseRole(claims.Role)
			verb, verbOK := methodVerbs[r.Method]
			if !ok || !verbOK || !h.perms.Allowed(role, resource, verb) {
				logger.From(r.Context()).Warn("request denied by role table",
					"resource", resource, "method", r.Method)
				h.WriteError(w, http.StatusForbidden, "permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	var stockErr ErrStock
	switch {
	case errors.Is(err, ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "record not found")
	case errors.As(err, &stockErr):
		h.WriteError(w, http.StatusBadRequest, stockErr.Error())
	default:
		h.Logger.Error("request failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListMaterials()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	m, err := h.service.GetMaterial(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var in materials.MaterialInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.service.CreateMaterial(in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "material created")
}

func (h *Handler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in materials.MaterialInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.service.UpdateMaterial(id, in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "material updated")
}

func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteMaterial(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "material deleted")
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListProducts()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	p, err := h.service.GetProduct(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in products.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.service.CreateProduct(in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "product created")
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in products.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.service.UpdateProduct(id, in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "product updated")
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteProduct(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "product deleted")
}

func (h *Handler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListPurchases()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.service.GetPurchase(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) GetPurchaseMaterials(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	items, err := h.service.PurchaseMaterials(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var in purchases.PurchaseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(in.Materials) == 0 {
		h.WriteError(w, http.StatusBadRequest, "materials must not be empty")
		return
	}
	if err := h.service.CreatePurchase(in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "purchase record created")
}

func (h *Handler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeletePurchase(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "purchase record deleted")
}

func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListSales()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.service.GetSale(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) GetSaleProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	items, err := h.service.SaleProducts(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var in sales.SaleInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(in.Products) == 0 {
		h.WriteError(w, http.StatusBadRequest, "products must not be empty")
		return
	}
	if err := h.service.CreateSale(in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "sale record created")
}

func (h *Handler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteSale(id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "sale record deleted")
}

func (h *Handler) ListProduction(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListProduction()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetProduction(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	detail, err := h.service.GetProduction(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, detail)
}

func (h *Handler) GetProductionMaterials(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	items, err := h.service.ProductionMaterials(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateProduction(w http.ResponseWriter, r *http.Request) {
	var in production.ProductionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(in.Materials) == 0 {
		h.WriteError(w, http.StatusBadRequest, "materials must not be empty")
		return
	}
	if err := h.service.CreateProduction(in); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteMessage(w, http.StatusCreated, "production record created")
}
