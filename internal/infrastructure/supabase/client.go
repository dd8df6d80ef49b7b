package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tu-usuario/tienda-ropa/pkg/config"
	"github.com/tu-usuario/tienda-ropa/pkg/logger"
)

// ErrorKind clasifica los fallos del almacén remoto en una taxonomía cerrada.
type ErrorKind string

const (
	KindNoInicializado  ErrorKind = "no_inicializado"
	KindRelacionAusente ErrorKind = "relacion_ausente"
	KindViolacionUnica  ErrorKind = "violacion_unicidad"
	KindTimeout         ErrorKind = "timeout"
	KindDesconocido     ErrorKind = "desconocido"
)

const (
	// listTimeout acota el listado completo; independiente del timeout de 10 s
	// que impone el controlador sobre la carga (gana el primero que venza).
	listTimeout = 5 * time.Second

	// networkTimeout es el tope duro de red por petición, por encima de
	// cualquier deadline de contexto.
	networkTimeout = 25 * time.Second
)

// Resultado es la forma uniforme de respuesta del cliente: o bien OK con el
// cuerpo crudo (y count si el almacén lo reporta), o bien un ErrorKind con
// mensaje. Ningún fallo escapa de esta forma.
type Resultado struct {
	OK      bool
	Value   json.RawMessage
	Count   int
	Kind    ErrorKind
	Message string
}

// Client habla con la API REST de Supabase (PostgREST): filtros por fila en el
// query string, escrituras JSON, errores con código PostgreSQL en el cuerpo.
type Client struct {
	restURL      string
	apiKey       string
	httpClient   *http.Client
	log          *logger.Logger
	inicializado bool
}

// pgError cuerpo de error que devuelve PostgREST.
type pgError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// NewClient construye el cliente. Sin URL o key el cliente queda sin
// inicializar y cada operación responde KindNoInicializado en vez de fallar
// en la construcción, igual que la página original seguía levantando la tabla
// vacía sin conexión.
func NewClient(cfg config.SupabaseConfig, log *logger.Logger) *Client {
	c := &Client{
		restURL:    cfg.RestURL(),
		apiKey:     cfg.AnonKey,
		httpClient: &http.Client{Timeout: networkTimeout},
		log:        log,
	}
	if cfg.URL == "" || cfg.AnonKey == "" {
		log.Warn().Msg("configuración de Supabase incompleta; el cliente queda sin inicializar")
		return c
	}
	c.inicializado = true
	c.inspeccionarAnonKey()
	return c
}

// Inicializado indica si el cliente tiene URL y key.
func (c *Client) Inicializado() bool {
	return c.inicializado
}

// inspeccionarAnonKey lee los claims de la anon key sin verificar la firma
// (la firma pertenece al servidor) para registrar el proyecto y avisar si la
// key está por vencer.
func (c *Client) inspeccionarAnonKey() {
	token, _, err := jwt.NewParser().ParseUnverified(c.apiKey, jwt.MapClaims{})
	if err != nil {
		c.log.Warn().Err(err).Msg("la anon key no es un JWT legible")
		return
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return
	}
	ref, _ := claims["ref"].(string)
	ev := c.log.Info().Str("ref", ref)
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ev = ev.Time("expira", exp.Time)
		if restante := time.Until(exp.Time); restante < 30*24*time.Hour {
			c.log.Warn().Dur("restante", restante).Msg("la anon key de Supabase vence pronto")
		}
	}
	ev.Msg("conexión con Supabase inicializada")
}

// Probar verifica la conexión con una consulta de conteo sin filas. Un fallo
// solo se registra como advertencia: el cliente sigue operativo.
func (c *Client) Probar(ctx context.Context, tabla string) {
	if !c.inicializado {
		return
	}
	res := c.hacer(ctx, http.MethodHead, c.urlTabla(tabla, "select=id&limit=1"), nil, map[string]string{
		"Prefer": "count=exact",
	})
	if !res.OK {
		c.log.Warn().Str("kind", string(res.Kind)).Str("detalle", res.Message).Msg("advertencia al verificar la conexión")
		return
	}
	c.log.Info().Int("productos", res.Count).Msg("conexión a la base de datos verificada")
}

// List trae todas las filas de la tabla ordenadas por el campo indicado
// (ascendente, colación del almacén). Acotado por listTimeout.
func (c *Client) List(ctx context.Context, tabla, ordenarPor string) Resultado {
	if !c.inicializado {
		return c.fallo(KindNoInicializado, "Supabase no inicializado")
	}
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := fmt.Sprintf("select=*&order=%s.asc", ordenarPor)
	return c.hacer(ctx, http.MethodGet, c.urlTabla(tabla, query), nil, map[string]string{
		"Prefer": "count=exact",
	})
}

// GetByID trae una sola fila; el Accept de objeto único hace que PostgREST
// devuelva error si no hay exactamente una coincidencia.
func (c *Client) GetByID(ctx context.Context, tabla string, id int64) Resultado {
	if !c.inicializado {
		return c.fallo(KindNoInicializado, "Supabase no inicializado")
	}
	query := fmt.Sprintf("select=*&id=eq.%d", id)
	return c.hacer(ctx, http.MethodGet, c.urlTabla(tabla, query), nil, map[string]string{
		"Accept": "application/vnd.pgrst.object+json",
	})
}

// ExistsByField consulta si existe alguna fila con campo=valor. El Value del
// resultado es el arreglo crudo (vacío o con un id).
func (c *Client) ExistsByField(ctx context.Context, tabla, campo, valor string) Resultado {
	if !c.inicializado {
		return c.fallo(KindNoInicializado, "Supabase no inicializado")
	}
	query := fmt.Sprintf("select=id&%s=eq.%s&limit=1", campo, url.QueryEscape(valor))
	return c.hacer(ctx, http.MethodGet, c.urlTabla(tabla, query), nil, nil)
}

// Insert inserta una fila (el cuerpo viaja como arreglo de uno, formato PostgREST).
func (c *Client) Insert(ctx context.Context, tabla string, fila any) Resultado {
	if !c.inicializado {
		return c.fallo(KindNoInicializado, "Supabase no inicializado")
	}
	body, err := json.Marshal([]any{fila})
	if err != nil {
		return c.fallo(KindDesconocido, "serializar fila: "+err.Error())
	}
	return c.hacer(ctx, http.MethodPost, c.urlTabla(tabla, ""), bytes.NewReader(body), map[string]string{
		"Prefer": "return=representation",
	})
}

// Update reemplaza los campos de la fila id con el documento completo recibido.
func (c *Client) Update(ctx context.Context, tabla string, id int64, fila any) Resultado {
	if !c.inicializado {
		return c.fallo(KindNoInicializado, "Supabase no inicializado")
	}
	body, err := json.Marshal(fila)
	if err != nil {
		return c.fallo(KindDesconocido, "serializar fila: "+err.Error())
	}
	query := fmt.Sprintf("id=eq.%d", id)
	return c.hacer(ctx, http.MethodPatch, c.urlTabla(tabla, query), bytes.NewReader(body), nil)
}

// Delete elimina la fila id. Cero filas afectadas no es error.
func (c *Client) Delete(ctx context.Context, tabla string, id int64) Resultado {
	if !c.inicializado {
		return c.fallo(KindNoInicializado, "Supabase no inicializado")
	}
	query := fmt.Sprintf("id=eq.%d", id)
	return c.hacer(ctx, http.MethodDelete, c.urlTabla(tabla, query), nil, nil)
}

func (c *Client) urlTabla(tabla, query string) string {
	u := c.restURL + "/" + tabla
	if query != "" {
		u += "?" + query
	}
	return u
}

// hacer ejecuta la petición y normaliza toda falla (red, timeout, error
// PostgREST) a un Resultado. Nunca propaga errores.
func (c *Client) hacer(ctx context.Context, metodo, url string, body io.Reader, headers map[string]string) Resultado {
	req, err := http.NewRequestWithContext(ctx, metodo, url, body)
	if err != nil {
		return c.fallo(KindDesconocido, "construir petición: "+err.Error())
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return c.fallo(KindTimeout, "Timeout: tabla no accesible")
		}
		return c.fallo(KindDesconocido, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return c.fallo(KindTimeout, "Timeout: tabla no accesible")
		}
		return c.fallo(KindDesconocido, "leer respuesta: "+err.Error())
	}

	if resp.StatusCode >= 400 {
		return c.normalizarError(resp.StatusCode, raw)
	}

	return Resultado{
		OK:    true,
		Value: raw,
		Count: parseCount(resp.Header.Get("Content-Range")),
	}
}

// normalizarError traduce el cuerpo de error de PostgREST a la taxonomía.
// 42P01 = undefined_table, 23505 = unique_violation.
func (c *Client) normalizarError(status int, raw []byte) Resultado {
	var pe pgError
	_ = json.Unmarshal(raw, &pe)

	msg := pe.Message
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", status)
	}
	c.log.Error().Int("status", status).Str("code", pe.Code).Str("detalle", pe.Details).Str("hint", pe.Hint).Msg(msg)

	switch {
	case pe.Code == "42P01" || strings.Contains(msg, "relation") || strings.Contains(msg, "no existe"):
		return c.fallo(KindRelacionAusente, msg)
	case pe.Code == "23505" || strings.Contains(strings.ToLower(pe.Details), "duplicate"):
		return c.fallo(KindViolacionUnica, msg)
	default:
		return c.fallo(KindDesconocido, msg)
	}
}

func (c *Client) fallo(kind ErrorKind, message string) Resultado {
	return Resultado{OK: false, Kind: kind, Message: message, Value: nil}
}

// parseCount extrae el total de un Content-Range estilo "0-9/25".
func parseCount(contentRange string) int {
	_, total, ok := strings.Cut(contentRange, "/")
	if !ok || total == "*" {
		return 0
	}
	n, err := strconv.Atoi(total)
	if err != nil {
		return 0
	}
	return n
}
