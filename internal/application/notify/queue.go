package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/tienda-ropa/pkg/logger"
)

// Tipo clase de notificación.
type Tipo string

const (
	TipoSuccess Tipo = "success"
	TipoError   Tipo = "error"
	TipoInfo    Tipo = "info"
)

// Notificacion mensaje transitorio de estado. Aparece al encolarse y se
// retira sola al vencer su duración.
type Notificacion struct {
	ID       string    `json:"id"`
	Mensaje  string    `json:"mensaje"`
	Tipo     Tipo      `json:"tipo"`
	CreadaEn time.Time `json:"creada_en"`
}

// Queue cola de notificaciones no bloqueante. Cada notificación se temporiza
// por separado; pueden convivir varias a la vez y no hay deduplicación ni
// tope de pendientes.
type Queue struct {
	mu       sync.Mutex
	duracion time.Duration
	activas  []Notificacion
	log      *logger.Logger
}

// NewQueue construye la cola. Con duración cero o negativa usa 4 s.
func NewQueue(duracion time.Duration, log *logger.Logger) *Queue {
	if duracion <= 0 {
		duracion = 4 * time.Second
	}
	return &Queue{duracion: duracion, log: log}
}

// Encolar agrega una notificación visible y programa su retiro. No bloquea a
// quien encola ni a operaciones posteriores.
func (q *Queue) Encolar(mensaje string, tipo Tipo) Notificacion {
	n := Notificacion{
		ID:       uuid.New().String(),
		Mensaje:  mensaje,
		Tipo:     tipo,
		CreadaEn: time.Now(),
	}

	q.mu.Lock()
	q.activas = append(q.activas, n)
	q.mu.Unlock()

	q.log.Debug().Str("tipo", string(tipo)).Str("id", n.ID).Msg(mensaje)
	time.AfterFunc(q.duracion, func() { q.retirar(n.ID) })
	return n
}

// Activas devuelve una copia de las notificaciones visibles, en orden de llegada.
func (q *Queue) Activas() []Notificacion {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notificacion, len(q.activas))
	copy(out, q.activas)
	return out
}

func (q *Queue) retirar(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, n := range q.activas {
		if n.ID == id {
			q.activas = append(q.activas[:i], q.activas[i+1:]...)
			return
		}
	}
}
