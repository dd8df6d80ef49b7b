package repository

import (
	"context"

	"github.com/tu-usuario/tienda-ropa/internal/domain/entity"
)

// ResultadoLista resultado uniforme de un listado. Data siempre es utilizable:
// en fallo viene vacía, nunca nil con Success true.
type ResultadoLista struct {
	Success bool
	Data    []entity.Producto
	Count   int
	Message string
}

// ResultadoProducto resultado uniforme de una lectura individual.
// Data es nil en cualquier fallo, incluido "no encontrado".
type ResultadoProducto struct {
	Success bool
	Data    *entity.Producto
	Message string
}

// ResultadoMutacion resultado uniforme de crear/actualizar/eliminar.
type ResultadoMutacion struct {
	Success bool
	Message string
}

// ProductoRepository define el puerto de acceso al catálogo remoto (DIP).
// Ninguna operación propaga errores: cada fallo llega como Success=false con
// un mensaje ya traducido para el usuario.
type ProductoRepository interface {
	// ListAll trae el catálogo completo ordenado por nombre ascendente.
	ListAll(ctx context.Context) ResultadoLista
	// GetByID trae un producto por su id.
	GetByID(ctx context.Context, id int64) ResultadoProducto
	// ExistsBySKU indica si ya hay un producto con ese SKU. Un fallo de
	// transporte se reporta como false: la verificación es consultiva y el
	// constraint único del almacén es la autoridad final.
	ExistsBySKU(ctx context.Context, sku string) bool
	// Create inserta un producto nuevo tras verificar el SKU.
	Create(ctx context.Context, datos entity.DatosProducto) ResultadoMutacion
	// Update reemplaza el documento completo del producto id (last write wins).
	Update(ctx context.Context, id int64, datos entity.DatosProducto) ResultadoMutacion
	// Delete elimina el producto id. Borrar un id inexistente cuenta como éxito.
	Delete(ctx context.Context, id int64) ResultadoMutacion
}
