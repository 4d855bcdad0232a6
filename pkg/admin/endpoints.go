package admin

import (
	"net/http"
	"strings"

	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/httputil"
	"github.com/mockario/mockario/pkg/value"
)

// endpointRequest is the body of POST /api/endpoints.
type endpointRequest struct {
	Path         string                `json:"path" validate:"required"`
	Method       string                `json:"method" validate:"required"`
	Response     value.Value           `json:"response"`
	Delay        int                   `json:"delay"`
	AuthRequired bool                  `json:"authRequired"`
	RequestBody  *endpoint.RequestBody `json:"requestBody,omitempty"`
	ResponseType string                `json:"responseType,omitempty" validate:"omitempty,oneof=json ts"`
	SchemaRef    *endpoint.SchemaRef   `json:"schemaRef,omitempty"`
	StoredData   []value.Value         `json:"storedData,omitempty"`
	ResponseKeys []string              `json:"responseKeys,omitempty"`
}

func (req endpointRequest) input() endpoint.Input {
	return endpoint.Input{
		Path:         req.Path,
		Method:       req.Method,
		Response:     req.Response,
		Delay:        req.Delay,
		AuthRequired: req.AuthRequired,
		RequestBody:  req.RequestBody,
		ResponseType: req.ResponseType,
		SchemaRef:    req.SchemaRef,
		StoredData:   req.StoredData,
		ResponseKeys: req.ResponseKeys,
	}
}

func (a *API) handleListEndpoints(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, a.svc.Endpoints.FindAll())
}

func (a *API) handleGetEndpoint(w http.ResponseWriter, r *http.Request) {
	ep, ok := a.svc.Endpoints.FindByID(r.PathValue("id"))
	if !ok {
		httputil.WriteNotFound(w, ErrMsgEndpointMissing)
		return
	}
	httputil.WriteOK(w, ep)
}

func (a *API) handleCreateEndpoint(w http.ResponseWriter, r *http.Request) {
	var req endpointRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}
	req.Method = strings.ToUpper(req.Method)
	if req.Path == "" || req.Method == "" || req.Response.IsNull() {
		httputil.WriteBadRequest(w, ErrMsgMissingFields)
		return
	}
	if !endpoint.ValidMethod(req.Method) {
		httputil.WriteBadRequest(w, ErrMsgInvalidMethod)
		return
	}
	if err := validate.Struct(req); err != nil {
		httputil.WriteBadRequest(w, validationMessage(err))
		return
	}

	ep, created := a.svc.Endpoints.CreateIfAbsent(req.input())
	if !created {
		httputil.WriteConflict(w, ErrMsgDuplicate)
		return
	}
	a.log.Info("endpoint created", "id", ep.ID, "method", ep.Method, "path", ep.Path)
	httputil.WriteCreated(w, ep)
}

func (a *API) handleUpdateEndpoint(w http.ResponseWriter, r *http.Request) {
	var patch endpoint.Patch
	if err := decodeOptionalJSONBody(w, r, &patch); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}
	if patch.Method != nil {
		m := strings.ToUpper(*patch.Method)
		if !endpoint.ValidMethod(m) {
			httputil.WriteBadRequest(w, ErrMsgInvalidMethod)
			return
		}
		patch.Method = &m
	}
	if patch.Path != nil && *patch.Path == "" {
		httputil.WriteBadRequest(w, ErrMsgMissingFields)
		return
	}

	ep, ok := a.svc.Endpoints.Update(r.PathValue("id"), patch)
	if !ok {
		httputil.WriteNotFound(w, ErrMsgEndpointMissing)
		return
	}
	httputil.WriteOK(w, ep)
}

func (a *API) handleDeleteEndpoint(w http.ResponseWriter, r *http.Request) {
	if !a.svc.Endpoints.Delete(r.PathValue("id")) {
		httputil.WriteNotFound(w, ErrMsgEndpointMissing)
		return
	}
	httputil.WriteNoContent(w)
}
