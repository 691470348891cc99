package entity

// Shop representa una tienda/sucursal (branch) de una empresa.
type Shop struct {
	ID        string `json:"id,omitempty"`
	LegacyID  string `json:"_id,omitempty"`
	CompanyID string `json:"companyId,omitempty"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
}

// Key devuelve el identificador preferido de la tienda.
func (s Shop) Key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.LegacyID
}

// HasID informa si id coincide con "id" o "_id" de la tienda.
func (s Shop) HasID(id string) bool {
	return id != "" && (s.ID == id || s.LegacyID == id)
}
