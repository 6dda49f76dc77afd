package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT y tokens
	ErrInvalidSigningMethod = fmt.Errorf("método de firma del token no válido")
	ErrInvalidToken         = fmt.Errorf("token no válido")
	ErrTokenExpired         = fmt.Errorf("el token ha expirado")
	ErrTokenIsNotRefresh    = fmt.Errorf("el token no es un refresh token")
	ErrTokenIsNotAccess     = fmt.Errorf("el token no es un access token")

	// Autenticación
	ErrEmptyAuthHeader    = fmt.Errorf("falta el encabezado de autorización")
	ErrInvalidAuthHeader  = fmt.Errorf("formato de encabezado de autorización no válido")
	ErrInvalidCredentials = fmt.Errorf("credenciales incorrectas")
	ErrAccountLocked      = fmt.Errorf("cuenta bloqueada temporalmente por intentos fallidos")
	ErrUserInactive       = fmt.Errorf("el usuario está desactivado")
	ErrUnauthorized       = fmt.Errorf("no autenticado")
	ErrForbidden          = fmt.Errorf("acceso denegado")

	// Contexto
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID no encontrado en el contexto de la petición")
	ErrUserNotFound            = fmt.Errorf("usuario no encontrado")

	// Generales
	ErrNotFound   = fmt.Errorf("registro no encontrado")
	ErrBadRequest = fmt.Errorf("petición no válida")
	ErrConflict   = fmt.Errorf("la operación entra en conflicto con el estado actual")

	// Tickets
	ErrTicketCerrado            = fmt.Errorf("el ticket está cerrado y no admite modificaciones")
	ErrTransicionInvalida       = fmt.Errorf("transición de estado no permitida")
	ErrJustificacionRequerida   = fmt.Errorf("la eliminación de un ticket requiere justificación")
	ErrAsignadoNoEsTecnico      = fmt.Errorf("el ticket solo puede asignarse a un técnico o administrador")
	ErrEdicionReservadaATecnico = fmt.Errorf("solo un técnico o administrador puede modificar estos campos")
)

// HttpError transporta el código HTTP junto al mensaje para el cliente.
// Err guarda la causa interna; nunca se serializa en la respuesta.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string { return e.Message }

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

// NewValidationError construye un 422 con detalle por campo.
func NewValidationError(message string, details interface{}) *HttpError {
	return &HttpError{Code: http.StatusUnprocessableEntity, Message: message, Details: details}
}

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// ErrorList mapea errores sentinela a códigos HTTP para las respuestas.
var ErrorList = map[error]int{
	ErrInvalidToken:             http.StatusUnauthorized,
	ErrTokenExpired:             http.StatusUnauthorized,
	ErrTokenIsNotRefresh:        http.StatusUnauthorized,
	ErrTokenIsNotAccess:         http.StatusUnauthorized,
	ErrEmptyAuthHeader:          http.StatusUnauthorized,
	ErrInvalidAuthHeader:        http.StatusUnauthorized,
	ErrInvalidCredentials:       http.StatusUnauthorized,
	ErrUnauthorized:             http.StatusUnauthorized,
	ErrAccountLocked:            http.StatusTooManyRequests,
	ErrUserInactive:             http.StatusForbidden,
	ErrForbidden:                http.StatusForbidden,
	ErrUserIDNotFoundInContext:  http.StatusUnauthorized,
	ErrUserNotFound:             http.StatusNotFound,
	ErrNotFound:                 http.StatusNotFound,
	ErrBadRequest:               http.StatusBadRequest,
	ErrConflict:                 http.StatusConflict,
	ErrTicketCerrado:            http.StatusConflict,
	ErrTransicionInvalida:       http.StatusConflict,
	ErrJustificacionRequerida:   http.StatusBadRequest,
	ErrAsignadoNoEsTecnico:      http.StatusUnprocessableEntity,
	ErrEdicionReservadaATecnico: http.StatusForbidden,
}
