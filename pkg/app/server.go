package app

import (
	"context"
	"net"

	"github.com/shashiranjanraj/nexus/internal/server"
)

// Serve listens on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (a *Application) Serve(ctx context.Context) error {
	return server.Run(ctx, net.JoinHostPort("", a.Config.AppPort), a.Handler())
}
