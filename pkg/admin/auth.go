package admin

import (
	"net/http"

	"github.com/mockario/mockario/pkg/auth"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/httputil"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	User *auth.Identity `json:"user"`
}

// settingsResponse flattens the settings next to the redacted user list.
type settingsResponse struct {
	auth.Settings
	Users []auth.User `json:"users"`
}

func (a *API) handleGetAuthSettings(w http.ResponseWriter, r *http.Request) {
	users := a.svc.Auth.Users().List()
	if users == nil {
		users = []auth.User{}
	}
	httputil.WriteOK(w, settingsResponse{Settings: a.svc.Auth.Settings(), Users: users})
}

func (a *API) handleUpdateAuthSettings(w http.ResponseWriter, r *http.Request) {
	var patch auth.SettingsPatch
	if err := decodeOptionalJSONBody(w, r, &patch); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}
	if err := validate.Struct(patch); err != nil {
		httputil.WriteBadRequest(w, auth.ErrInvalidType.Error())
		return
	}
	settings, err := a.svc.Auth.UpdateSettings(patch)
	if err != nil {
		a.writeAuthError(w, err)
		return
	}
	httputil.WriteOK(w, settings)
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentialsRequest
	if err := decodeOptionalJSONBody(w, r, &creds); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}
	res, err := a.svc.Auth.Login(creds.Username, creds.Password)
	if err != nil {
		a.writeAuthError(w, err)
		return
	}
	httputil.WriteOK(w, res)
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentialsRequest
	if err := decodeOptionalJSONBody(w, r, &creds); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}
	u, err := a.svc.Auth.Register(creds.Username, creds.Password)
	if err != nil {
		a.writeAuthError(w, err)
		return
	}
	id := u.Identity()
	httputil.WriteCreated(w, userResponse{User: &id})
}

func (a *API) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users := a.svc.Auth.Users().List()
	if users == nil {
		users = []auth.User{}
	}
	httputil.WriteOK(w, users)
}

func (a *API) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var creds credentialsRequest
	if err := decodeOptionalJSONBody(w, r, &creds); err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return
	}
	u, err := a.svc.Auth.Users().Create(creds.Username, creds.Password)
	if err != nil {
		a.writeAuthError(w, err)
		return
	}
	id := u.Identity()
	httputil.WriteCreated(w, userResponse{User: &id})
}

func (a *API) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if !a.svc.Auth.Users().Delete(r.PathValue("id")) {
		httputil.WriteNotFound(w, ErrMsgUserMissing)
		return
	}
	httputil.WriteNoContent(w)
}

func (a *API) handleListAuthEndpoints(w http.ResponseWriter, r *http.Request) {
	eps := a.svc.Auth.AuthEndpoints()
	if eps == nil {
		eps = []endpoint.Endpoint{}
	}
	httputil.WriteOK(w, eps)
}

// handleMe authenticates the management request itself with the active
// auth type.
func (a *API) handleMe(w http.ResponseWriter, r *http.Request) {
	if !a.svc.Auth.Enabled() {
		httputil.WriteForbidden(w, ErrMsgAuthDisabled)
		return
	}
	id, err := a.svc.Auth.Authenticate(r)
	if err != nil {
		a.writeAuthError(w, err)
		return
	}
	httputil.WriteOK(w, userResponse{User: id})
}

func (a *API) writeAuthError(w http.ResponseWriter, err error) {
	if _, ok := auth.ClientMessage(err); !ok {
		a.log.Error("auth operation failed", "error", err)
	}
	auth.WriteError(w, err)
}
