package inventario

import (
	"strings"
	"sync"
	"time"

	"github.com/tu-usuario/tienda-ropa/internal/domain/entity"
)

// Filtrar calcula la vista filtrada del catálogo: quedan los productos cuyo
// texto de búsqueda (nombre, categoría, color y SKU concatenados) contiene el
// término en minúsculas. Término vacío devuelve la colección completa.
// Función pura: conserva el orden de entrada y no muta la colección.
func Filtrar(productos []entity.Producto, termino string) []entity.Producto {
	termino = strings.ToLower(strings.TrimSpace(termino))
	if termino == "" {
		return append([]entity.Producto(nil), productos...)
	}

	filtrados := make([]entity.Producto, 0, len(productos))
	for _, p := range productos {
		texto := strings.ToLower(p.Nombre + " " + p.Categoria + " " + p.Color + " " + p.SKU)
		if strings.Contains(texto, termino) {
			filtrados = append(filtrados, p)
		}
	}
	return filtrados
}

// Debouncer pospone la ejecución hasta que pase el retraso sin nuevas
// llamadas; cada llamada descarta la anterior pendiente. Evita que cada tecla
// del buscador recalcule la vista completa.
type Debouncer struct {
	mu      sync.Mutex
	retraso time.Duration
	timer   *time.Timer
}

// NewDebouncer construye el debouncer con el retraso indicado.
func NewDebouncer(retraso time.Duration) *Debouncer {
	return &Debouncer{retraso: retraso}
}

// Ejecutar programa fn y cancela cualquier ejecución pendiente previa.
func (d *Debouncer) Ejecutar(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.retraso, fn)
}
