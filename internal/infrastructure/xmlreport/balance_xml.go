// Package xmlreport exporta el reporte de balance como XML (etree).
package xmlreport

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
)

var _ ledger.BalanceRenderer = (*BalanceRenderer)(nil)

// BalanceRenderer serializa el balance como:
//
//	<BalanceReport generatedAt="..." lines="n">
//	  <Line productId="P1" locationId="WH" qty="30" value="36000">
//	    <Product name="..." unitPrice="..."/>   (ausente si el producto ya no existe)
//	    <Location name="..."/>                  (ausente si la ubicación ya no existe)
//	  </Line>
//	  <Totals qty="..." value="..."/>
//	</BalanceReport>
type BalanceRenderer struct{}

// NewBalanceRenderer construye el renderer.
func NewBalanceRenderer() *BalanceRenderer { return &BalanceRenderer{} }

// ContentType del documento generado.
func (r *BalanceRenderer) ContentType() string { return "application/xml" }

// Render genera el XML indentado.
func (r *BalanceRenderer) Render(_ context.Context, report *dto.BalanceReportDTO) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("BalanceReport")
	root.CreateAttr("generatedAt", report.GeneratedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("lines", strconv.Itoa(len(report.Lines)))

	for _, l := range report.Lines {
		el := root.CreateElement("Line")
		el.CreateAttr("productId", l.ProductID)
		el.CreateAttr("locationId", l.LocationID)
		el.CreateAttr("qty", strconv.FormatInt(l.Qty, 10))
		el.CreateAttr("value", l.Value.String())
		if l.Product != nil {
			p := el.CreateElement("Product")
			p.CreateAttr("name", l.Product.Name)
			p.CreateAttr("unitPrice", l.Product.UnitPrice.String())
		}
		if l.Location != nil {
			loc := el.CreateElement("Location")
			loc.CreateAttr("name", l.Location.Name)
		}
	}

	totals := root.CreateElement("Totals")
	totals.CreateAttr("qty", strconv.FormatInt(report.TotalQty, 10))
	totals.CreateAttr("value", report.TotalValue.String())

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar reporte: %w", err)
	}
	return out, nil
}
