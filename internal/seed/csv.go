package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Inventario-ledger/internal/app"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// ImportResult resultado de una importación CSV.
type ImportResult struct {
	Created    int
	Duplicates int
	Skipped    int // filas inválidas
}

// decode envuelve r según la codificación del archivo ("utf8" o "latin1").
func decode(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: codificación %q no soportada", domain.ErrInvalidInput, encoding)
	}
}

// ImportProducts lee product_id,name,description,unit_price (con cabecera) y crea cada producto.
// Los duplicados se cuentan y se omiten.
func ImportProducts(ctx context.Context, svc *app.Services, r io.Reader, encoding string, log *logger.Logger) (ImportResult, error) {
	return importRows(ctx, r, encoding, log, func(rec []string) error {
		if len(rec) < 2 {
			return fmt.Errorf("%w: se esperan al menos 2 columnas", domain.ErrInvalidInput)
		}
		in := dto.CreateProductRequest{ProductID: rec[0], Name: rec[1], UnitPrice: decimal.Zero}
		if len(rec) > 2 {
			in.Description = rec[2]
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			price, err := decimal.NewFromString(strings.TrimSpace(rec[3]))
			if err != nil {
				return fmt.Errorf("%w: unit_price %q", domain.ErrInvalidInput, rec[3])
			}
			in.UnitPrice = price
		}
		_, err := svc.Products.Create(ctx, in)
		return err
	})
}

// ImportLocations lee location_id,name,address,manager (con cabecera) y crea cada ubicación.
func ImportLocations(ctx context.Context, svc *app.Services, r io.Reader, encoding string, log *logger.Logger) (ImportResult, error) {
	return importRows(ctx, r, encoding, log, func(rec []string) error {
		if len(rec) < 2 {
			return fmt.Errorf("%w: se esperan al menos 2 columnas", domain.ErrInvalidInput)
		}
		in := dto.CreateLocationRequest{LocationID: rec[0], Name: rec[1]}
		if len(rec) > 2 {
			in.Address = rec[2]
		}
		if len(rec) > 3 {
			in.Manager = rec[3]
		}
		_, err := svc.Locations.Create(ctx, in)
		return err
	})
}

func importRows(ctx context.Context, r io.Reader, encoding string, log *logger.Logger, create func([]string) error) (ImportResult, error) {
	var res ImportResult
	src, err := decode(r, encoding)
	if err != nil {
		return res, err
	}
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Cabecera
	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		return res, fmt.Errorf("leer cabecera: %w", err)
	}

	line := 1
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return res, fmt.Errorf("leer línea %d: %w", line, err)
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		err = create(rec)
		switch {
		case err == nil:
			res.Created++
		case errors.Is(err, domain.ErrDuplicate):
			res.Duplicates++
		case errors.Is(err, domain.ErrInvalidInput):
			res.Skipped++
			log.Warn().Int("line", line).Err(err).Msg("csv: fila omitida")
		default:
			return res, fmt.Errorf("línea %d: %w", line, err)
		}
	}
	return res, nil
}
