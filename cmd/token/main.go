// token emite un JWT para operar las rutas de escritura de la API.
//
// Uso: go run ./cmd/token --sub maria --role bodeguero
package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/jhoicas/Inventario-ledger/pkg/config"
	"github.com/jhoicas/Inventario-ledger/pkg/jwt"
)

func main() {
	sub := flag.String("sub", "", "identificador del operador")
	role := flag.String("role", "bodeguero", "rol: admin | bodeguero")
	flag.Parse()

	if *sub == "" {
		flag.Usage()
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *sub, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
