package supabase_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/tienda-ropa/internal/domain/entity"
	"github.com/tu-usuario/tienda-ropa/internal/infrastructure/supabase"
	"github.com/tu-usuario/tienda-ropa/pkg/config"
	"github.com/tu-usuario/tienda-ropa/pkg/logger"
)

func nuevoRepo(t *testing.T, handler http.Handler) *supabase.ProductoRepo {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := supabase.NewClient(config.SupabaseConfig{
		URL:     srv.URL,
		AnonKey: anonKeyPrueba,
		Tabla:   "productos",
	}, logger.Nop())
	return supabase.NewProductoRepository(client, "productos", logger.Nop())
}

// TestListAll_Exito: las filas del almacén llegan decodificadas con el conteo
// exacto y el precio como decimal.
func TestListAll_Exito(t *testing.T) {
	repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "0-1/2")
		w.Write([]byte(`[
			{"id":1,"nombre":"Camisa","categoria":"Camisas","talla":"M","color":"Azul","material":"Algodon","precio":49.90,"stock":0,"sku":"A1","created_at":"2024-05-01T10:00:00+00:00","updated_at":"2024-05-01T10:00:00+00:00"},
			{"id":2,"nombre":"Pantalon","categoria":"Pantalones","talla":"L","color":"Negro","material":"Mezclilla","precio":89.50,"stock":5,"sku":"B2","created_at":"2024-05-02T10:00:00+00:00","updated_at":"2024-05-02T10:00:00+00:00"}
		]`))
	}))

	res := repo.ListAll(context.Background())

	require.True(t, res.Success)
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "Camisa", res.Data[0].Nombre)
	assert.True(t, res.Data[0].Precio.Equal(decimal.NewFromFloat(49.90)))
	assert.Equal(t, int64(2), res.Data[1].ID)
}

// TestListAll_RelacionAusente: la tabla faltante se traduce a una guía
// accionable para el operador y una lista vacía utilizable.
func TestListAll_RelacionAusente(t *testing.T) {
	repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"42P01","message":"relation \"public.productos\" does not exist"}`))
	}))

	res := repo.ListAll(context.Background())

	assert.False(t, res.Success)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Contains(t, res.Message, "no existe")
	assert.Contains(t, res.Message, "SQL en Supabase")
}

// TestListAll_Timeout: el almacén lento produce el mensaje de timeout con la
// lista vacía, dentro de una ventana acotada.
func TestListAll_Timeout(t *testing.T) {
	repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(400 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res := repo.ListAll(ctx)

	assert.False(t, res.Success)
	assert.Empty(t, res.Data)
	assert.Contains(t, res.Message, "tarda demasiado")
}

// TestGetByID_NoEncontrado: cualquier fallo de lectura individual, incluido
// "no encontrado", llega como Success=false con Data nil.
func TestGetByID_NoEncontrado(t *testing.T) {
	repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotAcceptable)
		w.Write([]byte(`{"code":"PGRST116","message":"JSON object requested, multiple (or no) rows returned"}`))
	}))

	res := repo.GetByID(context.Background(), 99)

	assert.False(t, res.Success)
	assert.Nil(t, res.Data)
	assert.Contains(t, res.Message, "Error al cargar producto")
}

// TestExistsBySKU: tomado cuando el almacén devuelve una fila, libre con el
// arreglo vacío, y libre también ante fallo de transporte (política
// conservadora: el constraint único decide al escribir).
func TestExistsBySKU(t *testing.T) {
	t.Run("tomado", func(t *testing.T) {
		repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "eq.A1", r.URL.Query().Get("sku"))
			w.Write([]byte(`[{"id":1}]`))
		}))
		assert.True(t, repo.ExistsBySKU(context.Background(), "A1"))
	})

	t.Run("libre", func(t *testing.T) {
		repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		assert.False(t, repo.ExistsBySKU(context.Background(), "C3"))
	})

	t.Run("fallo de transporte se asume libre", func(t *testing.T) {
		repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
		}))
		assert.False(t, repo.ExistsBySKU(context.Background(), "A1"))
	})
}

func datosConSKU(sku string) entity.DatosProducto {
	return entity.DatosProducto{
		Nombre:    "Camisa",
		Categoria: "Camisas",
		Talla:     "M",
		Color:     "Azul",
		Material:  "Algodón",
		Precio:    decimal.NewFromFloat(49.90),
		Stock:     5,
		SKU:       sku,
	}
}

// TestCreate_VerificacionPrevia: con el SKU ya tomado la creación se corta
// antes del insert; el POST nunca llega al almacén.
func TestCreate_VerificacionPrevia(t *testing.T) {
	postRecibido := false
	repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			postRecibido = true
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"id":1}]`))
	}))

	res := repo.Create(context.Background(), datosConSKU("A1"))

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, `"A1"`)
	assert.Contains(t, res.Message, "ya existe")
	assert.False(t, postRecibido, "la verificación previa debe evitar el insert")
}

// TestCreate_CarreraPerdida: si otra escritura gana entre la verificación y el
// insert, el 23505 del almacén produce el mismo mensaje de SKU duplicado.
func TestCreate_CarreraPerdida(t *testing.T) {
	repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"code":"23505","message":"duplicate key value violates unique constraint \"productos_sku_key\""}`))
			return
		}
		w.Write([]byte(`[]`)) // la verificación no lo ve tomado
	}))

	res := repo.Create(context.Background(), datosConSKU("A1"))

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "SKU duplicado")
}

// TestCreate_Exito: con el SKU libre el insert pasa y el mensaje es el de
// éxito.
func TestCreate_Exito(t *testing.T) {
	repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`[{"id":7,"sku":"C3"}]`))
			return
		}
		w.Write([]byte(`[]`))
	}))

	res := repo.Create(context.Background(), datosConSKU("C3"))

	require.True(t, res.Success)
	assert.Contains(t, res.Message, "creado")
}

// TestUpdate_Fallo: el error del almacén se traduce con el texto subyacente.
func TestUpdate_Fallo(t *testing.T) {
	repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))

	res := repo.Update(context.Background(), 3, datosConSKU("A1"))

	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Error al actualizar producto")
	assert.Contains(t, res.Message, "boom")
}

// TestDelete_Idempotente: borrar un id inexistente no se distingue de un
// borrado real; solo un error del almacén es fallo.
func TestDelete_Idempotente(t *testing.T) {
	repo := nuevoRepo(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent) // cero filas afectadas
	}))

	res := repo.Delete(context.Background(), 404)

	assert.True(t, res.Success)
	assert.Contains(t, res.Message, "eliminado")
}
