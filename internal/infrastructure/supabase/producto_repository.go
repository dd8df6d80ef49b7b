package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tu-usuario/tienda-ropa/internal/domain/entity"
	"github.com/tu-usuario/tienda-ropa/internal/domain/repository"
	"github.com/tu-usuario/tienda-ropa/pkg/logger"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación del puerto ProductoRepository sobre la API REST
// de Supabase. Traduce la taxonomía de errores del cliente a mensajes para el
// usuario; ningún método propaga errores.
type ProductoRepo struct {
	client *Client
	tabla  string
	log    *logger.Logger
}

// NewProductoRepository construye el adaptador del catálogo remoto.
func NewProductoRepository(client *Client, tabla string, log *logger.Logger) *ProductoRepo {
	return &ProductoRepo{client: client, tabla: tabla, log: log}
}

// ListAll trae el catálogo completo ordenado por nombre ascendente.
// Toda rama de fallo devuelve Success=false con Data vacía, nunca nil panics:
// el llamador trata ese estado como "nada que mostrar".
func (r *ProductoRepo) ListAll(ctx context.Context) repository.ResultadoLista {
	res := r.client.List(ctx, r.tabla, "nombre")
	if !res.OK {
		return repository.ResultadoLista{
			Success: false,
			Data:    []entity.Producto{},
			Message: r.mensajeLista(res),
		}
	}

	var productos []entity.Producto
	if err := json.Unmarshal(res.Value, &productos); err != nil {
		r.log.Error().Err(err).Msg("decodificar listado de productos")
		return repository.ResultadoLista{
			Success: false,
			Data:    []entity.Producto{},
			Message: "Error al cargar productos: respuesta ilegible del almacén",
		}
	}
	if productos == nil {
		productos = []entity.Producto{}
	}

	count := res.Count
	if count == 0 {
		count = len(productos)
	}
	return repository.ResultadoLista{
		Success: true,
		Data:    productos,
		Count:   count,
		Message: "Productos cargados correctamente",
	}
}

func (r *ProductoRepo) mensajeLista(res Resultado) string {
	switch res.Kind {
	case KindRelacionAusente:
		return fmt.Sprintf("La tabla %q no existe. Necesitas ejecutar el SQL en Supabase primero.", r.tabla)
	case KindTimeout:
		return "La base de datos tarda demasiado en responder. Verifica que la tabla exista."
	case KindNoInicializado:
		return "Supabase no inicializado"
	default:
		return "Error al cargar productos: " + res.Message
	}
}

// GetByID trae un producto. Cualquier fallo, incluido "no encontrado", llega
// como Success=false con Data nil.
func (r *ProductoRepo) GetByID(ctx context.Context, id int64) repository.ResultadoProducto {
	res := r.client.GetByID(ctx, r.tabla, id)
	if !res.OK {
		return repository.ResultadoProducto{
			Success: false,
			Message: "Error al cargar producto: " + res.Message,
		}
	}

	var p entity.Producto
	if err := json.Unmarshal(res.Value, &p); err != nil {
		r.log.Error().Err(err).Int64("id", id).Msg("decodificar producto")
		return repository.ResultadoProducto{
			Success: false,
			Message: "Error al cargar producto: respuesta ilegible del almacén",
		}
	}
	return repository.ResultadoProducto{
		Success: true,
		Data:    &p,
		Message: "Producto cargado correctamente",
	}
}

// ExistsBySKU consulta si el SKU ya está tomado. Un fallo de transporte se
// reporta como false: se prefiere dejar pasar la escritura y que el
// constraint único del almacén tenga la última palabra.
func (r *ProductoRepo) ExistsBySKU(ctx context.Context, sku string) bool {
	res := r.client.ExistsByField(ctx, r.tabla, "sku", sku)
	if !res.OK {
		r.log.Warn().Str("sku", sku).Str("detalle", res.Message).Msg("no se pudo verificar el SKU; se asume libre")
		return false
	}
	var filas []json.RawMessage
	if err := json.Unmarshal(res.Value, &filas); err != nil {
		return false
	}
	return len(filas) > 0
}

// Create inserta un producto nuevo. Si el SKU ya existe (por la verificación
// previa o por la carrera perdida contra otra escritura, 23505) responde el
// mismo mensaje de SKU duplicado sin tocar el almacén más de lo necesario.
func (r *ProductoRepo) Create(ctx context.Context, datos entity.DatosProducto) repository.ResultadoMutacion {
	if datos.SKU != "" && r.ExistsBySKU(ctx, datos.SKU) {
		return repository.ResultadoMutacion{
			Success: false,
			Message: fmt.Sprintf("El SKU %q ya existe en la base de datos. Usa un SKU único.", datos.SKU),
		}
	}

	res := r.client.Insert(ctx, r.tabla, datos)
	if !res.OK {
		if res.Kind == KindViolacionUnica {
			return repository.ResultadoMutacion{
				Success: false,
				Message: "SKU duplicado. Asegúrate de usar un SKU único.",
			}
		}
		return repository.ResultadoMutacion{
			Success: false,
			Message: "Error al crear producto: " + res.Message,
		}
	}
	return repository.ResultadoMutacion{Success: true, Message: "Producto creado exitosamente"}
}

// Update reemplaza el documento completo del producto id (sin diffing de
// campos ni token de concurrencia: last write wins).
func (r *ProductoRepo) Update(ctx context.Context, id int64, datos entity.DatosProducto) repository.ResultadoMutacion {
	res := r.client.Update(ctx, r.tabla, id, datos)
	if !res.OK {
		return repository.ResultadoMutacion{
			Success: false,
			Message: "Error al actualizar producto: " + res.Message,
		}
	}
	return repository.ResultadoMutacion{Success: true, Message: "Producto actualizado exitosamente"}
}

// Delete elimina por id. Un id inexistente no se distingue de un borrado real
// (semántica idempotente); solo un error del almacén se reporta como fallo.
func (r *ProductoRepo) Delete(ctx context.Context, id int64) repository.ResultadoMutacion {
	res := r.client.Delete(ctx, r.tabla, id)
	if !res.OK {
		return repository.ResultadoMutacion{
			Success: false,
			Message: "Error al eliminar producto: " + res.Message,
		}
	}
	return repository.ResultadoMutacion{Success: true, Message: "Producto eliminado exitosamente"}
}
