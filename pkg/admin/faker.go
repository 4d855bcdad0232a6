package admin

import (
	"net/http"

	"github.com/mockario/mockario/pkg/faker"
	"github.com/mockario/mockario/pkg/httputil"
	"github.com/mockario/mockario/pkg/value"
)

// MaxGenerateCount caps POST /api/generate. Larger counts are clamped.
const MaxGenerateCount = 1000

type generateRequest struct {
	Keys  []string `json:"keys" validate:"required,min=1,dive,required"`
	Count *int     `json:"count,omitempty"`
}

func (a *API) handleListFakerMethods(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, faker.Methods())
}

// handleFakerPreview returns the posted value with every placeholder
// substituted.
func (a *API) handleFakerPreview(w http.ResponseWriter, r *http.Request) {
	var v value.Value
	if err := decodeJSONBody(w, r, &v); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}
	httputil.WriteOK(w, a.svc.Templates.Process(v))
}

func (a *API) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}
	if len(req.Keys) == 0 {
		httputil.WriteBadRequest(w, ErrMsgKeysRequired)
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, validationMessage(err))
		return
	}
	count := 1
	if req.Count != nil {
		count = min(max(*req.Count, 1), MaxGenerateCount)
	}
	httputil.WriteOK(w, a.svc.Templates.Faker().Records(req.Keys, count))
}
