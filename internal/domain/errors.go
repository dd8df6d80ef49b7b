package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cubren la taxonomía de
// fallos del almacén remoto más los errores de validación locales.
var (
	ErrNoInicializado   = errors.New("conexión con el almacén no inicializada")
	ErrRelacionAusente  = errors.New("la tabla de productos no existe en el almacén")
	ErrSKUDuplicado     = errors.New("el SKU ya existe")
	ErrTimeout          = errors.New("el almacén tardó demasiado en responder")
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrOperacionEnCurso = errors.New("ya hay una operación en curso")
)
