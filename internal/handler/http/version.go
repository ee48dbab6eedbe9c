package http

import (
	"net/http"

	"github.com/MKhiriev/go-request-pipeline/internal/utils"
)

// getServerVersion writes the build metadata of the running server.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) error {
	_, err := utils.WriteJSON(w, h.appInfo.VersionResponse(), http.StatusOK)
	return err
}
