// seed carga datos en el libro usando la misma configuración que la API.
//
// Uso:
//
//	go run ./cmd/seed --sample
//	go run ./cmd/seed --kind products --file productos.csv --encoding latin1
//	go run ./cmd/seed --kind locations --file ubicaciones.csv
package main

import (
	"context"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/jhoicas/Inventario-ledger/internal/app"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/Inventario-ledger/internal/seed"
	"github.com/jhoicas/Inventario-ledger/pkg/config"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

func main() {
	sample := flag.BoolP("sample", "s", false, "cargar productos, ubicaciones y movimientos de ejemplo")
	kind := flag.StringP("kind", "k", "", "catálogo a importar desde CSV: products | locations")
	file := flag.StringP("file", "f", "", "ruta del CSV (con cabecera)")
	encoding := flag.String("encoding", "utf8", "codificación del CSV: utf8 | latin1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()
	svc := app.NewServices(store, cfg.App.Name)

	switch {
	case *sample:
		if _, err := seed.Sample(ctx, svc, log); err != nil {
			log.Fatal().Err(err).Msg("datos de ejemplo")
		}
	case *kind != "" && *file != "":
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
		}
		defer f.Close()

		var res seed.ImportResult
		switch *kind {
		case "products":
			res, err = seed.ImportProducts(ctx, svc, f, *encoding, log)
		case "locations":
			res, err = seed.ImportLocations(ctx, svc, f, *encoding, log)
		default:
			log.Fatal().Str("kind", *kind).Msg("kind debe ser products o locations")
		}
		if err != nil {
			log.Fatal().Err(err).Msg("importar CSV")
		}
		log.Info().
			Str("kind", *kind).
			Int("created", res.Created).
			Int("duplicates", res.Duplicates).
			Int("skipped", res.Skipped).
			Msg("importación terminada")
	default:
		flag.Usage()
		os.Exit(2)
	}
}
