package entity

import "github.com/shopspring/decimal"

// DatosProducto es la carga de escritura de un producto: los campos que el
// cliente puede enviar al almacén. ID, created_at y updated_at quedan fuera
// porque los asigna el servidor.
type DatosProducto struct {
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria"`
	Talla       string          `json:"talla"`
	Color       string          `json:"color"`
	Material    string          `json:"material"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	SKU         string          `json:"sku"`
	Descripcion string          `json:"descripcion,omitempty"`
}
