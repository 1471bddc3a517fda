package admin

import (
	"errors"
	"net/http"

	"autolot-service/internal/domain/vehicle"
	xerrors "autolot-service/internal/pkg/errors"
	"autolot-service/internal/pkg/response"
	service "autolot-service/internal/service/inventory"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the dashboard: full-inventory views and the
// add/update/close-out mutations.
type AdminHandler struct {
	inventory *service.Service
}

func NewAdminHandler(inventory *service.Service) *AdminHandler {
	return &AdminHandler{inventory: inventory}
}

// ListAllVehicles returns every listing regardless of status.
func (h *AdminHandler) ListAllVehicles(c *gin.Context) {
	vehicles := h.inventory.Vehicles()
	response.Success(c, http.StatusOK, "vehicles retrieved", gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// CreateVehicle adds a new listing to the inventory.
func (h *AdminHandler) CreateVehicle(c *gin.Context) {
	var req vehicle.NewVehicleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	v := h.inventory.AddVehicle(c.Request.Context(), &req)
	response.Success(c, http.StatusCreated, "vehicle created", v)
}

// UpdateVehicle merges the supplied fields into an existing listing.
func (h *AdminHandler) UpdateVehicle(c *gin.Context) {
	id := c.Param("id")

	var req vehicle.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	v, err := h.inventory.UpdateVehicle(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "vehicle not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update vehicle", err)
		return
	}

	response.Success(c, http.StatusOK, "vehicle updated", v)
}

type closeOutRequest struct {
	Outcome vehicle.Status `json:"outcome" binding:"required"`
	Amount  float64        `json:"amount"`
	Notes   string         `json:"notes"`
}

// CloseOutVehicle transitions a listing to sold, exchanged or deleted,
// recording a transaction for paid outcomes.
func (h *AdminHandler) CloseOutVehicle(c *gin.Context) {
	id := c.Param("id")

	var req closeOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	v, txn, err := h.inventory.CloseOutVehicle(c.Request.Context(), id, req.Outcome, req.Amount, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, xerrors.ErrNotFound):
			response.NotFound(c, "vehicle not found")
		case errors.Is(err, xerrors.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, "invalid close-out outcome", err)
		default:
			response.Error(c, http.StatusInternalServerError, "failed to close out vehicle", err)
		}
		return
	}

	response.Success(c, http.StatusOK, "vehicle closed out", gin.H{
		"vehicle":     v,
		"transaction": txn,
	})
}

// ListTransactions returns the transaction log.
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	txns := h.inventory.Transactions()
	response.Success(c, http.StatusOK, "transactions retrieved", gin.H{
		"transactions": txns,
		"count":        len(txns),
	})
}

// GetSummary returns the aggregates behind the dashboard front page.
func (h *AdminHandler) GetSummary(c *gin.Context) {
	summary := h.inventory.Summary()
	vehicles := h.inventory.Vehicles()

	available := 0
	for _, v := range vehicles {
		if v.Status == vehicle.StatusAvailable {
			available++
		}
	}

	response.Success(c, http.StatusOK, "summary retrieved", gin.H{
		"transactions": summary,
		"vehicles":     len(vehicles),
		"available":    available,
	})
}
