package vehicle

import (
	"net/http"

	"autolot-service/internal/domain/vehicle"
	"autolot-service/internal/pkg/response"
	service "autolot-service/internal/service/inventory"

	"github.com/gin-gonic/gin"
)

// VehicleHandler serves the public inventory pages: listing with filters,
// featured highlights and the detail view. Only available vehicles are
// ever returned here.
type VehicleHandler struct {
	inventory *service.Service
}

func NewVehicleHandler(inventory *service.Service) *VehicleHandler {
	return &VehicleHandler{inventory: inventory}
}

// ListVehicles returns the available listings matching the query criteria.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	var filters vehicle.Filters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	vehicles := h.inventory.VehiclesMatching(filters)
	response.Success(c, http.StatusOK, "vehicles retrieved", gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// GetFeaturedVehicles returns the available listings flagged for the home
// page highlight strip.
func (h *VehicleHandler) GetFeaturedVehicles(c *gin.Context) {
	vehicles := h.inventory.FeaturedVehicles()
	response.Success(c, http.StatusOK, "featured vehicles retrieved", gin.H{
		"vehicles": vehicles,
		"count":    len(vehicles),
	})
}

// GetVehicle returns one listing by identifier, any status. The detail
// modal reuses it for recently closed listings too.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id := c.Param("id")

	v, ok := h.inventory.GetVehicleByID(id)
	if !ok {
		response.NotFound(c, "vehicle not found")
		return
	}

	response.Success(c, http.StatusOK, "vehicle retrieved", v)
}

// GetFilterOptions returns the distinct brands and colors the search form
// offers.
func (h *VehicleHandler) GetFilterOptions(c *gin.Context) {
	response.Success(c, http.StatusOK, "filter options retrieved", h.inventory.Options())
}
