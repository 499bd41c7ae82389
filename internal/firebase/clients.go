package firebase

import (
	"context"
	"fmt"

	"quadras/web/internal/config"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// Clients bundles the Firebase + GCP clients the web server needs.
// Storage is nil unless uploads go to a GCS bucket.
type Clients struct {
	App     *firebase.App
	Auth    *auth.Client
	Storage *storage.Client
}

func NewClients(ctx context.Context, cfg config.Config) (*Clients, error) {
	out := &Clients{}

	if cfg.AuthProvider == config.AuthFirebase {
		app, err := NewApp(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("firebase app: %w", err)
		}
		authClient, err := NewAuthClient(ctx, app)
		if err != nil {
			return nil, fmt.Errorf("firebase auth: %w", err)
		}
		out.App = app
		out.Auth = authClient
	}

	if cfg.ImageHost == config.ImageHostGCS {
		st, err := storage.NewClient(ctx, ClientOptions(cfg)...)
		if err != nil {
			return nil, fmt.Errorf("storage client: %w", err)
		}
		out.Storage = st
	}

	return out, nil
}

func (c *Clients) Close() {
	if c == nil || c.Storage == nil {
		return
	}
	_ = c.Storage.Close()
}
