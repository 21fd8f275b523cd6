package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/identityx/identityx-api/internal/logger"
	"github.com/identityx/identityx-api/internal/model"
)

// AddressService covers the address operations.
type AddressService interface {
	List(ctx context.Context, userID int64) ([]model.Address, error)
	Create(ctx context.Context, userID int64, address model.Address) (model.Address, error)
}

// Address serves the address endpoints.
type Address struct {
	addresses      AddressService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAddress creates a new address handler.
func NewAddress(addresses AddressService, contextManager model.ContextManager, l *logger.Logger) *Address {
	return &Address{addresses: addresses, contextManager: contextManager, logger: l}
}

type addressRequest struct {
	Type        string `json:"type"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber"`
	IsPrimary   bool   `json:"isPrimary"`
}

type addressResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber"`
	IsPrimary   bool   `json:"isPrimary"`
}

// List returns the authenticated user's addresses.
func (h *Address) List(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	addresses, err := h.addresses.List(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	out := make([]addressResponse, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, toAddressResponse(a))
	}

	WriteSuccess(w, http.StatusOK, "Addresses retrieved", out)
}

// Create stores a new address owned by the authenticated user.
func (h *Address) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		WriteError(w, r, http.StatusUnauthorized, "authentication required")
		return
	}

	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Street == "" || req.City == "" || req.Country == "" {
		WriteError(w, r, http.StatusBadRequest, "street, city and country are required")
		return
	}

	saved, err := h.addresses.Create(r.Context(), user.ID, model.Address{
		Type:        req.Type,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Country:     req.Country,
		PhoneNumber: req.PhoneNumber,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, "Address created", toAddressResponse(saved))
}

func toAddressResponse(a model.Address) addressResponse {
	return addressResponse{
		ID:          a.ID,
		Type:        a.Type,
		Street:      a.Street,
		City:        a.City,
		State:       a.State,
		PostalCode:  a.PostalCode,
		Country:     a.Country,
		PhoneNumber: a.PhoneNumber,
		IsPrimary:   a.IsPrimary,
	}
}
