// catalogoctl tareas de operación sobre la base de datos: migraciones y aprovisionamiento de usuarios.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "catalogoctl",
	Short:         "Operación del catálogo: migraciones y usuarios",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
}

// bootDB carga la configuración y abre el pool. Solo tiene sentido con STORE_DRIVER=postgres.
func bootDB(ctx context.Context) (*config.Config, *pgxpool.Pool, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return nil, nil, nil, fmt.Errorf("catalogoctl requiere STORE_DRIVER=%s (actual: %s)", config.StoreDriverPostgres, cfg.Store.Driver)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, pool, log, nil
}
