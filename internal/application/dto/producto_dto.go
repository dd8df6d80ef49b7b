package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/tienda-ropa/internal/domain"
	"github.com/tu-usuario/tienda-ropa/internal/domain/entity"
)

// ProductoRequest entrada del formulario de producto (alta y edición usan el
// mismo documento completo). Los límites de nombre vienen del formulario
// original: 2 a 50 caracteres.
type ProductoRequest struct {
	Nombre      string          `json:"nombre" validate:"required,min=2,max=50"`
	Categoria   string          `json:"categoria" validate:"required"`
	Talla       string          `json:"talla" validate:"required"`
	Color       string          `json:"color" validate:"required"`
	Material    string          `json:"material" validate:"required"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock" validate:"gte=0"`
	SKU         string          `json:"sku" validate:"required"`
	Descripcion string          `json:"descripcion"`
}

// Validar aplica las reglas de los tags más las que el validador no cubre
// (decimal.Decimal no es numérico para validator).
func (r ProductoRequest) Validar(v *validator.Validate) error {
	if err := v.Struct(r); err != nil {
		return err
	}
	if r.Precio.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// ADatos convierte la entrada en la carga de escritura del almacén.
func (r ProductoRequest) ADatos() entity.DatosProducto {
	return entity.DatosProducto{
		Nombre:      r.Nombre,
		Categoria:   r.Categoria,
		Talla:       r.Talla,
		Color:       r.Color,
		Material:    r.Material,
		Precio:      r.Precio,
		Stock:       r.Stock,
		SKU:         r.SKU,
		Descripcion: r.Descripcion,
	}
}

// ProductoResponse fila de la tabla de productos. NivelStock se deriva en
// cada render.
type ProductoResponse struct {
	ID          int64             `json:"id"`
	Nombre      string            `json:"nombre"`
	Categoria   string            `json:"categoria"`
	Talla       string            `json:"talla"`
	Color       string            `json:"color"`
	Material    string            `json:"material"`
	Precio      decimal.Decimal   `json:"precio"`
	Stock       int               `json:"stock"`
	NivelStock  entity.NivelStock `json:"nivel_stock"`
	SKU         string            `json:"sku"`
	Descripcion string            `json:"descripcion,omitempty"`
	CreatedAt   time.Time         `json:"created_at,omitempty"`
	UpdatedAt   time.Time         `json:"updated_at,omitempty"`
}

// AProductoResponse arma la fila de respuesta desde la entidad.
func AProductoResponse(p entity.Producto) ProductoResponse {
	return ProductoResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Categoria:   p.Categoria,
		Talla:       p.Talla,
		Color:       p.Color,
		Material:    p.Material,
		Precio:      p.Precio,
		Stock:       p.Stock,
		NivelStock:  p.Nivel(),
		SKU:         p.SKU,
		Descripcion: p.Descripcion,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ListaProductosResponse vista filtrada de la tabla.
type ListaProductosResponse struct {
	Items []ProductoResponse `json:"items"`
	Total int                `json:"total"`
}

// AListaResponse arma la vista de tabla desde la colección filtrada.
func AListaResponse(productos []entity.Producto) ListaProductosResponse {
	items := make([]ProductoResponse, 0, len(productos))
	for _, p := range productos {
		items = append(items, AProductoResponse(p))
	}
	return ListaProductosResponse{Items: items, Total: len(items)}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MensajeResponse resultado de una acción de UI: el mensaje ya traducido que
// la capa de notificaciones también mostró.
type MensajeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
