// migrate aplica las migraciones de goose embebidas en el binario.
//
// Uso: go run ./cmd/migrate -cmd up|down|status|redo|version [-version N]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/repuestos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/repuestos-api/pkg/config"
	"github.com/jhoicas/repuestos-api/pkg/logger"
)

func main() {
	cmd := flag.String("cmd", "up", "comando: up|down|status|redo|version")
	version := flag.String("version", "", "versión destino para -cmd=version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level}).Component("migrate")

	db, err := postgres.OpenSQL(cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer db.Close()

	ctx := context.Background()
	switch *cmd {
	case "up", "down", "status", "redo":
		err = postgres.Migrate(ctx, db, *cmd)
	case "version":
		target, perr := strconv.ParseInt(*version, 10, 64)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "versión inválida %q: %v\n", *version, perr)
			os.Exit(1)
		}
		err = postgres.MigrateToVersion(ctx, db, target)
	default:
		fmt.Fprintln(os.Stderr, "comando desconocido:", *cmd)
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migración fallida")
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
