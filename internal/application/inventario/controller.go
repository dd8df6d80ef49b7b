package inventario

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tu-usuario/tienda-ropa/internal/application/dto"
	"github.com/tu-usuario/tienda-ropa/internal/application/notify"
	"github.com/tu-usuario/tienda-ropa/internal/domain/entity"
	"github.com/tu-usuario/tienda-ropa/internal/domain/repository"
	"github.com/tu-usuario/tienda-ropa/pkg/logger"
)

const (
	// cargaTimeout acota la carga completa del catálogo; corre en paralelo al
	// timeout de listado del cliente y gana el que venza primero.
	cargaTimeout = 10 * time.Second

	// debounceBusqueda espera entre teclas antes de recalcular la vista.
	debounceBusqueda = 300 * time.Millisecond
)

// Controller es el dueño de la colección autoritativa de productos y de la
// vista filtrada derivada. Orquesta cargar/crear/editar/eliminar contra el
// repositorio, secuencia las notificaciones y media entre los eventos de UI
// y el catálogo remoto.
//
// Tras una mutación exitosa la colección solo se refresca con una carga
// explícita; nunca se parchea localmente de forma especulativa.
type Controller struct {
	repo      repository.ProductoRepository
	notif     *notify.Queue
	valid     *validator.Validate
	log       *logger.Logger
	debouncer *Debouncer

	mu             sync.Mutex
	productos      []entity.Producto
	filtrados      []entity.Producto
	termino        string
	editTargetID   int64 // 0 = sin edición abierta
	edicion        *entity.Producto
	deleteTargetID int64 // 0 = sin eliminación pendiente

	// Banderas de operación en curso: un disparo solapado de la misma acción
	// se rechaza en vez de correr en paralelo.
	cargando   bool
	creando    bool
	editando   bool
	eliminando bool
}

// NewController construye el controlador con sus dependencias explícitas.
func NewController(repo repository.ProductoRepository, notif *notify.Queue, log *logger.Logger) *Controller {
	return &Controller{
		repo:      repo,
		notif:     notif,
		valid:     validator.New(),
		log:       log,
		debouncer: NewDebouncer(debounceBusqueda),
		productos: []entity.Producto{},
		filtrados: []entity.Producto{},
	}
}

// Cargar reemplaza la colección autoritativa con el catálogo remoto completo
// y recalcula la vista filtrada con el término vigente. En fallo deja ambas
// colecciones vacías y notifica el mensaje del repositorio: mejor mostrar
// nada que mostrar datos viejos. No hay reintentos; el operador puede volver
// a refrescar.
func (c *Controller) Cargar(ctx context.Context) repository.ResultadoMutacion {
	if !c.adquirir(&c.cargando) {
		return c.rechazoEnCurso("carga")
	}
	defer c.liberar(&c.cargando)

	ctx, cancel := context.WithTimeout(ctx, cargaTimeout)
	defer cancel()

	res := c.repo.ListAll(ctx)

	c.mu.Lock()
	if res.Success {
		c.productos = res.Data
		c.filtrados = Filtrar(c.productos, c.termino)
		c.mu.Unlock()
		c.notif.Encolar(fmt.Sprintf("%d productos cargados", res.Count), notify.TipoInfo)
		c.log.Info().Int("count", res.Count).Msg("catálogo cargado")
		return repository.ResultadoMutacion{Success: true, Message: res.Message}
	}
	c.productos = []entity.Producto{}
	c.filtrados = []entity.Producto{}
	c.mu.Unlock()
	c.notif.Encolar(res.Message, notify.TipoError)
	c.log.Warn().Str("detalle", res.Message).Msg("fallo al cargar el catálogo")
	return repository.ResultadoMutacion{Success: false, Message: res.Message}
}

// CrearProducto valida la entrada y la envía al repositorio. En éxito notifica
// y dispara una carga; en fallo solo notifica el mensaje, sin efectos sobre la
// colección.
func (c *Controller) CrearProducto(ctx context.Context, in dto.ProductoRequest) repository.ResultadoMutacion {
	if err := in.Validar(c.valid); err != nil {
		msg := "Datos del producto inválidos"
		c.log.Debug().Err(err).Msg(msg)
		c.notif.Encolar(msg, notify.TipoError)
		return repository.ResultadoMutacion{Success: false, Message: msg}
	}
	if !c.adquirir(&c.creando) {
		return c.rechazoEnCurso("creación")
	}
	defer c.liberar(&c.creando)

	res := c.repo.Create(ctx, in.ADatos())
	if !res.Success {
		c.notif.Encolar(res.Message, notify.TipoError)
		return res
	}
	c.notif.Encolar(res.Message, notify.TipoSuccess)
	c.Cargar(ctx)
	return res
}

// AbrirEdicion carga el producto id y lo deja como objetivo del formulario de
// edición. Un fallo notifica y no abre la edición.
func (c *Controller) AbrirEdicion(ctx context.Context, id int64) repository.ResultadoProducto {
	res := c.repo.GetByID(ctx, id)
	if !res.Success || res.Data == nil {
		c.notif.Encolar("Error al cargar datos del producto", notify.TipoError)
		return repository.ResultadoProducto{Success: false, Message: res.Message}
	}
	c.mu.Lock()
	c.editTargetID = id
	c.edicion = res.Data
	c.mu.Unlock()
	return res
}

// EnviarEdicion actualiza el producto en edición con el documento completo.
// Sin edición abierta falla rápido con error de validación y no toca la red.
func (c *Controller) EnviarEdicion(ctx context.Context, in dto.ProductoRequest) repository.ResultadoMutacion {
	c.mu.Lock()
	id := c.editTargetID
	c.mu.Unlock()
	if id == 0 {
		msg := "Error: ID de producto no válido"
		c.notif.Encolar(msg, notify.TipoError)
		return repository.ResultadoMutacion{Success: false, Message: msg}
	}
	if err := in.Validar(c.valid); err != nil {
		msg := "Datos del producto inválidos"
		c.log.Debug().Err(err).Msg(msg)
		c.notif.Encolar(msg, notify.TipoError)
		return repository.ResultadoMutacion{Success: false, Message: msg}
	}
	if !c.adquirir(&c.editando) {
		return c.rechazoEnCurso("edición")
	}
	defer c.liberar(&c.editando)

	res := c.repo.Update(ctx, id, in.ADatos())
	if !res.Success {
		c.notif.Encolar(res.Message, notify.TipoError)
		return res
	}
	c.CerrarEdicion()
	c.notif.Encolar(res.Message, notify.TipoSuccess)
	c.Cargar(ctx)
	return res
}

// CerrarEdicion descarta la edición abierta sin llamada de red.
func (c *Controller) CerrarEdicion() {
	c.mu.Lock()
	c.editTargetID = 0
	c.edicion = nil
	c.mu.Unlock()
}

// EdicionActual devuelve una copia del producto en edición, si hay.
func (c *Controller) EdicionActual() (*entity.Producto, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.edicion == nil {
		return nil, false
	}
	p := *c.edicion
	return &p, true
}

// SolicitarEliminacion registra el objetivo de borrado y abre la
// confirmación. Primera fase: sin llamada de red.
func (c *Controller) SolicitarEliminacion(id int64) {
	c.mu.Lock()
	c.deleteTargetID = id
	c.mu.Unlock()
}

// ConfirmarEliminacion ejecuta el borrado del objetivo registrado. Sin
// objetivo previo es un no-op que solo notifica el error de validación.
func (c *Controller) ConfirmarEliminacion(ctx context.Context) repository.ResultadoMutacion {
	c.mu.Lock()
	id := c.deleteTargetID
	c.mu.Unlock()
	if id == 0 {
		msg := "Error: ID de producto no válido"
		c.notif.Encolar(msg, notify.TipoError)
		return repository.ResultadoMutacion{Success: false, Message: msg}
	}
	if !c.adquirir(&c.eliminando) {
		return c.rechazoEnCurso("eliminación")
	}
	defer c.liberar(&c.eliminando)

	res := c.repo.Delete(ctx, id)
	if !res.Success {
		c.notif.Encolar(res.Message, notify.TipoError)
		return res
	}
	c.CancelarEliminacion()
	c.notif.Encolar(res.Message, notify.TipoSuccess)
	c.Cargar(ctx)
	return res
}

// CancelarEliminacion limpia el objetivo de borrado sin llamada de red.
func (c *Controller) CancelarEliminacion() {
	c.mu.Lock()
	c.deleteTargetID = 0
	c.mu.Unlock()
}

// ObjetivoEliminacion devuelve el id pendiente de confirmación (0 si ninguno).
func (c *Controller) ObjetivoEliminacion() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deleteTargetID
}

// Buscar registra el término en el borde de eventos con debounce de 300 ms:
// las teclas rápidas no recalculan la vista cada una.
func (c *Controller) Buscar(termino string) {
	c.debouncer.Ejecutar(func() { c.AplicarBusqueda(termino) })
}

// AplicarBusqueda fija el término vigente y recalcula la vista filtrada de
// inmediato.
func (c *Controller) AplicarBusqueda(termino string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.termino = strings.ToLower(strings.TrimSpace(termino))
	c.filtrados = Filtrar(c.productos, c.termino)
}

// Productos devuelve una copia de la colección autoritativa.
func (c *Controller) Productos() []entity.Producto {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Producto(nil), c.productos...)
}

// Filtrados devuelve una copia de la vista filtrada vigente.
func (c *Controller) Filtrados() []entity.Producto {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]entity.Producto(nil), c.filtrados...)
}

// adquirir toma la bandera de acción si está libre.
func (c *Controller) adquirir(flag *bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if *flag {
		return false
	}
	*flag = true
	return true
}

// liberar suelta la bandera de acción pase lo que pase con la operación.
func (c *Controller) liberar(flag *bool) {
	c.mu.Lock()
	*flag = false
	c.mu.Unlock()
}

func (c *Controller) rechazoEnCurso(accion string) repository.ResultadoMutacion {
	msg := "Ya hay una operación de " + accion + " en curso"
	c.notif.Encolar(msg, notify.TipoError)
	return repository.ResultadoMutacion{Success: false, Message: msg}
}
