package dto

// ErrorResponse cuerpo de error HTTP. Error es el mensaje legible que exige
// el contrato de la API; Code es un identificador estable para clientes.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
