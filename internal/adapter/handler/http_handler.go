package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/moodify-shop/moodify/internal/core/domain"
	"github.com/moodify-shop/moodify/internal/core/service"
	"github.com/moodify-shop/moodify/internal/port"
)

// HTTPHandler exposes the storefront API. The cart owner comes from the
// X-Cart-Owner header, falling back to the session user, falling back to the
// shared guest cart.
type HTTPHandler struct {
	carts    *service.CartManager
	catalog  *service.CatalogService
	checkout *service.CheckoutService
	auth     *service.AuthService
	sink     port.NotificationSink
}

func NewHTTPHandler(
	carts *service.CartManager,
	catalog *service.CatalogService,
	checkout *service.CheckoutService,
	auth *service.AuthService,
	sink port.NotificationSink,
) *HTTPHandler {
	return &HTTPHandler{carts: carts, catalog: catalog, checkout: checkout, auth: auth, sink: sink}
}

func (h *HTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	r.HandleFunc("/api/moods", h.ListMoods).Methods(http.MethodGet)
	r.HandleFunc("/api/products", h.ListProducts).Methods(http.MethodGet)
	r.HandleFunc("/api/exercises", h.ListExercises).Methods(http.MethodGet)

	r.HandleFunc("/api/cart", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", h.ClearCart).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart/items", h.AddItem).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{id}", h.SetQuantity).Methods(http.MethodPut)
	r.HandleFunc("/api/cart/items/{id}/decrement", h.DecrementItem).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{id}", h.RemoveItem).Methods(http.MethodDelete)
	r.HandleFunc("/api/cart/open", h.OpenCart).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/close", h.CloseCart).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/toggle", h.ToggleCart).Methods(http.MethodPost)

	r.HandleFunc("/api/checkout/quote", h.QuoteCheckout).Methods(http.MethodPost)
	r.HandleFunc("/api/checkout", h.PlaceOrder).Methods(http.MethodPost)

	r.HandleFunc("/api/auth/signup", h.SignUp).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/signin", h.SignIn).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/signout", h.SignOut).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", h.Me).Methods(http.MethodGet)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) ListMoods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Moods())
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if mood := r.URL.Query().Get("mood"); mood != "" {
		writeJSON(w, http.StatusOK, h.catalog.ByMood(mood))
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.Products())
}

func (h *HTTPHandler) ListExercises(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.ExercisesByMood(r.URL.Query().Get("mood")))
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	writeJSON(w, http.StatusOK, store.Snapshot())
}

type addItemRequest struct {
	Item *domain.Product `json:"item,omitempty"`
	ID   string          `json:"id,omitempty"`
	Qty  int             `json:"qty"`
}

// AddItem accepts either a full product snapshot or a catalog id. Items
// without a resolvable id degrade to a no-op snapshot, mirroring the store's
// contract.
func (h *HTTPHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	var item domain.Product
	switch {
	case req.Item != nil:
		item = *req.Item
	case req.ID != "":
		p, ok := h.catalog.ByID(req.ID)
		if !ok {
			http.Error(w, "unknown product", http.StatusNotFound)
			return
		}
		item = p
	}

	store := h.store(r)
	snap := store.Add(r.Context(), item, req.Qty)
	if !item.ID.IsZero() {
		name := item.Name
		if name == "" {
			name = "Item"
		}
		h.toast(r.Context(), domain.Notification{
			Message: fmt.Sprintf("Added “%s”", name),
			Kind:    domain.NotifyInfo,
		})
	}
	writeJSON(w, http.StatusOK, snap)
}

type setQuantityRequest struct {
	Qty int `json:"qty"`
}

func (h *HTTPHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	store := h.store(r)
	writeJSON(w, http.StatusOK, store.SetQuantity(r.Context(), mux.Vars(r)["id"], req.Qty))
}

func (h *HTTPHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	writeJSON(w, http.StatusOK, store.Decrement(r.Context(), mux.Vars(r)["id"]))
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	writeJSON(w, http.StatusOK, store.Remove(r.Context(), mux.Vars(r)["id"]))
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	writeJSON(w, http.StatusOK, store.Clear(r.Context()))
}

func (h *HTTPHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	writeJSON(w, http.StatusOK, store.Open(r.Context()))
}

func (h *HTTPHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	writeJSON(w, http.StatusOK, store.Close(r.Context()))
}

func (h *HTTPHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	writeJSON(w, http.StatusOK, store.Toggle(r.Context()))
}

type quoteRequest struct {
	Promo string `json:"promo"`
}

func (h *HTTPHandler) QuoteCheckout(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	store := h.store(r)
	writeJSON(w, http.StatusOK, service.PriceQuote(store.Lines(), req.Promo))
}

type placeOrderRequest struct {
	service.CheckoutForm
	Promo string `json:"promo"`
}

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	store := h.store(r)
	order, err := h.checkout.PlaceOrder(r.Context(), store, req.CheckoutForm, req.Promo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidForm):
			h.toast(r.Context(), domain.Notification{
				Message: "Please complete required fields",
				Kind:    domain.NotifyWarning,
			})
			http.Error(w, "incomplete checkout form", http.StatusBadRequest)
		case errors.Is(err, service.ErrNothingToPay):
			http.Error(w, "cart is empty", http.StatusConflict)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			// client went away mid-processing; nothing was committed
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type signUpRequest struct {
	First    string `json:"first"`
	Last     string `json:"last"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

func (h *HTTPHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	user, token, err := h.auth.SignUp(r.Context(), req.First, req.Last, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrMissingEmail) {
			http.Error(w, "email required", http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

type signInRequest struct {
	Email string `json:"email"`
}

func (h *HTTPHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	user, token, err := h.auth.SignIn(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrMissingEmail) {
			http.Error(w, "email required", http.StatusBadRequest)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

func (h *HTTPHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "missing token", http.StatusBadRequest)
		return
	}
	if err := h.auth.SignOut(r.Context(), token); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *HTTPHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	user, err := h.auth.Current(r.Context(), token)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			http.Error(w, "unknown session", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *HTTPHandler) store(r *http.Request) *service.CartStore {
	return h.carts.Store(r.Context(), h.owner(r))
}

func (h *HTTPHandler) owner(r *http.Request) string {
	if o := r.Header.Get("X-Cart-Owner"); o != "" {
		return o
	}
	if token := bearerToken(r); token != "" {
		if user, err := h.auth.Current(r.Context(), token); err == nil {
			return user.ID
		}
	}
	return ""
}

func (h *HTTPHandler) toast(ctx context.Context, n domain.Notification) {
	if h.sink == nil {
		return
	}
	if err := h.sink.Publish(ctx, n); err != nil {
		log.Printf("handler: notification dropped: %v", err)
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
