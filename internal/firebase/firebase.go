package firebase

import (
	"context"

	"quadras/web/internal/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// ClientOptions returns the Google credentials options shared by every client.
// GOOGLE_APPLICATION_CREDENTIALS is honoured by the SDKs themselves; a raw
// service account JSON in FIREBASE_SERVICE_ACCOUNT_JSON takes precedence.
func ClientOptions(cfg config.Config) []option.ClientOption {
	opts := []option.ClientOption{}
	if cfg.ServiceAccountJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	}
	return opts
}

func NewApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	appCfg := &firebase.Config{}
	if cfg.ProjectID != "" {
		appCfg.ProjectID = cfg.ProjectID
	}
	return firebase.NewApp(ctx, appCfg, ClientOptions(cfg)...)
}

func NewAuthClient(ctx context.Context, app *firebase.App) (*auth.Client, error) {
	return app.Auth(ctx)
}
