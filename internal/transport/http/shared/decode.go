package shared

import (
	"encoding/json"
	"net/http"

	"github.com/datainventdev-eng/hr-management/internal/requestctx"
	"github.com/datainventdev-eng/hr-management/internal/transport/http/api"
)

// DecodeJSON reads the request body into dst and writes a 400 on failure.
// Returns false when the response has already been written.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid json payload", requestctx.GetRequestID(r.Context()))
		return false
	}
	return true
}
