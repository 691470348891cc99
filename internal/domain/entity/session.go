package entity

// Session datos de la sesión del usuario que se pasan explícitamente a los casos de uso
// (empresa actual, usuario y token de acceso a la API remota).
type Session struct {
	CompanyID   string
	UserID      string
	AccessToken string
}

// Valid informa si la sesión tiene empresa y usuario.
func (s Session) Valid() bool {
	return s.CompanyID != "" && s.UserID != ""
}
