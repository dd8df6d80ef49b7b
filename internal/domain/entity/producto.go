package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa una prenda del catálogo de la tienda.
// ID y los timestamps los asigna el almacén remoto; el cliente nunca los envía.
// Los tags json siguen las columnas de la tabla `productos` en PostgREST.
type Producto struct {
	ID          int64           `json:"id"`
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria"`
	Talla       string          `json:"talla"`
	Color       string          `json:"color"`
	Material    string          `json:"material"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	SKU         string          `json:"sku"`
	Descripcion string          `json:"descripcion,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// NivelStock categoría presentacional del stock. Se recalcula en cada render,
// nunca se persiste.
type NivelStock string

const (
	// StockAgotado sin unidades.
	StockAgotado NivelStock = "agotado"
	// StockBajo por debajo del umbral de reposición.
	StockBajo NivelStock = "bajo"
	// StockOK nivel normal.
	StockOK NivelStock = "ok"

	umbralStockBajo = 10
)

// Nivel devuelve la categoría de stock del producto.
func (p Producto) Nivel() NivelStock {
	switch {
	case p.Stock == 0:
		return StockAgotado
	case p.Stock < umbralStockBajo:
		return StockBajo
	default:
		return StockOK
	}
}
