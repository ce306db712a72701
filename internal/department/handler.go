package department

import (
	"net/http"

	"github.com/hcmteam/personnel-management/internal/transport"
)

type ServiceAPI interface {
	GetAll() ([]*Department, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetDepartments handles GET /departments. Form-rendering callers need the
// list to offer a department picker.
func (h *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.GetAll()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, departments)
}
