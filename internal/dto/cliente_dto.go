package dto

type CrearClienteRequest struct {
	Identificacion string  `json:"identificacion" validate:"required,min=5,max=20"`
	Nombre         string  `json:"nombre"         validate:"required,min=2"`
	Apellido       string  `json:"apellido"       validate:"required,min=2"`
	Email          *string `json:"email"          validate:"omitempty,email"`
	Telefono       *string `json:"telefono"`
	Direccion      *string `json:"direccion"`
}

type ActualizarClienteRequest struct {
	Nombre    *string `json:"nombre"    validate:"omitempty,min=2"`
	Apellido  *string `json:"apellido"  validate:"omitempty,min=2"`
	Email     *string `json:"email"     validate:"omitempty,email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
}

type ClienteResponse struct {
	ID                 string  `json:"id"`
	Identificacion     string  `json:"identificacion"`
	Nombre             string  `json:"nombre"`
	Apellido           string  `json:"apellido"`
	Email              *string `json:"email"`
	Telefono           *string `json:"telefono"`
	Direccion          *string `json:"direccion"`
	PuntosFidelizacion int     `json:"puntos_fidelizacion"`
	Activo             bool    `json:"activo"`
	CreatedAt          string  `json:"created_at"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
