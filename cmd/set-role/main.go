package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"quadras/web/internal/config"
	"quadras/web/internal/firebase"
	"quadras/web/internal/session"

	"github.com/spf13/cobra"
)

var projectID string

var rootCmd = &cobra.Command{
	Use:          "set-role",
	Short:        "Manage the role claims read by the quadras web server",
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().StringVar(&projectID, "project", os.Getenv("FIREBASE_PROJECT_ID"), "Firebase project id")
	rootCmd.AddCommand(grantCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func authClient(ctx context.Context) (*firebase.Clients, error) {
	cfg := config.Config{
		AuthProvider:       config.AuthFirebase,
		ProjectID:          projectID,
		ServiceAccountJSON: os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"),
	}
	return firebase.NewClients(ctx, cfg)
}

func grantCmd() *cobra.Command {
	var uid, role, arenaID string

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Set the role (and owned arena) custom claims of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := buildClaims(uid, role, arenaID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			clients, err := authClient(ctx)
			if err != nil {
				return err
			}
			defer clients.Close()

			if err := clients.Auth.SetCustomUserClaims(ctx, uid, claims); err != nil {
				return fmt.Errorf("SetCustomUserClaims: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %v set for %s\n", claims, uid)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "target firebase uid")
	cmd.Flags().StringVar(&role, "role", "", "ARENA, ATLETA or ADMIN")
	cmd.Flags().StringVar(&arenaID, "arena", "", "arena owned by the user (ARENA only)")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func showCmd() *cobra.Command {
	var uid string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the custom claims of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			clients, err := authClient(ctx)
			if err != nil {
				return err
			}
			defer clients.Close()

			u, err := clients.Auth.GetUser(ctx, uid)
			if err != nil {
				return fmt.Errorf("GetUser: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %v\n", u.UID, u.Email, u.CustomClaims)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "target firebase uid")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}

// tokenCmd signs a session token for AUTH_PROVIDER=jwt setups.
func tokenCmd() *cobra.Command {
	var uid, role, arenaID, email string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an HS256 session token with SESSION_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("SESSION_SECRET")
			if len(secret) < 32 {
				return fmt.Errorf("SESSION_SECRET must have at least 32 bytes")
			}
			p, err := buildPrincipal(uid, role, arenaID)
			if err != nil {
				return err
			}
			p.Email = email
			tok, err := session.NewJWTVerifier([]byte(secret), ttl).Issue(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "subject of the token")
	cmd.Flags().StringVar(&role, "role", "", "ARENA, ATLETA or ADMIN")
	cmd.Flags().StringVar(&arenaID, "arena", "", "arena owned by the user (ARENA only)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("uid")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func buildPrincipal(uid, role, arenaID string) (session.Principal, error) {
	if uid == "" {
		return session.Principal{}, fmt.Errorf("uid is required")
	}
	r, ok := session.ParseRole(role)
	if !ok {
		return session.Principal{}, fmt.Errorf("unknown role %q (want ARENA, ATLETA or ADMIN)", role)
	}
	if r != session.RoleArena && arenaID != "" {
		return session.Principal{}, fmt.Errorf("--arena only applies to ARENA users")
	}
	return session.Principal{UID: uid, Role: r, ArenaID: arenaID}, nil
}

func buildClaims(uid, role, arenaID string) (map[string]any, error) {
	p, err := buildPrincipal(uid, role, arenaID)
	if err != nil {
		return nil, err
	}
	return session.RoleClaims(p.Role, p.ArenaID), nil
}
