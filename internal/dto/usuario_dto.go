package dto

type CrearUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=3"`
	Nombre   string  `json:"nombre"   validate:"required,min=2"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8"`
	RolID    string  `json:"rol_id"   validate:"required,uuid"`
}

type ActualizarUsuarioRequest struct {
	Nombre   *string `json:"nombre"   validate:"omitempty,min=2"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	RolID    *string `json:"rol_id"   validate:"omitempty,uuid"`
}

type UsuarioResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Nombre   string   `json:"nombre"`
	Email    *string  `json:"email,omitempty"`
	Rol      string   `json:"rol"`
	Permisos []string `json:"permisos"`
	Activo   bool     `json:"activo"`
}

type RolRequest struct {
	Nombre      string   `json:"nombre"      validate:"required,min=3"`
	Descripcion *string  `json:"descripcion"`
	Permisos    []string `json:"permisos"    validate:"required,min=1,dive,contains=."`
}

type RolResponse struct {
	ID          string   `json:"id"`
	Nombre      string   `json:"nombre"`
	Descripcion *string  `json:"descripcion"`
	Permisos    []string `json:"permisos"`
}
