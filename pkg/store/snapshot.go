package store

import (
	"github.com/mockario/mockario/pkg/auth"
	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/schema"
)

// Capture builds a snapshot of the given services. Users keep their
// password hashes so they can log in after a restore.
func Capture(endpoints *endpoint.Registry, authMgr *auth.Manager, schemas *schema.Store) *Snapshot {
	return &Snapshot{
		Version:   SnapshotVersion,
		Endpoints: endpoints.FindAll(),
		Users:     authMgr.Users().Snapshot(),
		Auth:      authMgr.Settings(),
		Schemas:   schemas.List(),
	}
}

// Restore loads snap into the services without running the auth
// enable/disable transition: the saved endpoints already contain whatever
// built-ins were provisioned.
func Restore(snap *Snapshot, endpoints *endpoint.Registry, authMgr *auth.Manager, schemas *schema.Store) {
	if snap == nil {
		return
	}
	authMgr.Restore(snap.Auth)
	authMgr.Users().Restore(snap.Users)
	endpoints.Restore(snap.Endpoints)
	schemas.Restore(snap.Schemas)
}
