// Package version reports recs build information.
//
// Version, commit and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/recskit/version.Version=1.0.0" ./cmd/recs
//
// Values left unset fall back to the module's embedded VCS settings.
package version
