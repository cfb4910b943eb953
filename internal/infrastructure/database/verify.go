package database

import (
	"context"
	"fmt"

	"healthsystem/internal/domain/entity"

	"golang.org/x/sync/errgroup"
)

// VerifyCredentials opens one connection per role concurrently and runs a
// trivial statement on each, so a bad credential fails startup instead of the
// first request for that role.
func VerifyCredentials(ctx context.Context, registry *Registry, opener Opener) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, role := range entity.Roles {
		creds := registry.Resolve(role)
		g.Go(func() error {
			conn, err := opener.Open(ctx, creds)
			if err != nil {
				return fmt.Errorf("role %s: %w", role, err)
			}
			defer conn.Close(context.WithoutCancel(ctx))

			if _, err := conn.Query(ctx, "SELECT 1"); err != nil {
				return fmt.Errorf("role %s: %w", role, err)
			}
			return nil
		})
	}

	return g.Wait()
}
