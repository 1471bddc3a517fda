package contact

import (
	"net/http"

	"autolot-service/internal/pkg/response"
	service "autolot-service/internal/service/contact"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactService *service.Service
}

func NewContactHandler(contactService *service.Service) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit accepts a contact-form message from the public site.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req service.Message
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	h.contactService.Submit(&req)
	response.Success(c, http.StatusAccepted, "mensagem recebida", nil)
}
