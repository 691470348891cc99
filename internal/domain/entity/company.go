package entity

import (
	"bytes"
	"encoding/json"
)

// Company representa una empresa tal como la expone la API remota.
// La API mezcla identificadores "id" y "_id" según el recurso; ambos se conservan.
type Company struct {
	ID          string       `json:"id,omitempty"`
	LegacyID    string       `json:"_id,omitempty"`
	Name        string       `json:"name"`
	Category    *CategoryRef `json:"category,omitempty"`
	CategoryIDs []string     `json:"category_ids,omitempty"`
}

// Key devuelve el identificador preferido de la empresa.
func (c Company) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.LegacyID
}

// HasID informa si id coincide con "id" o "_id" de la empresa.
func (c Company) HasID(id string) bool {
	return id != "" && (c.ID == id || c.LegacyID == id)
}

// HasCategory informa si category_ids contiene categoryID.
func (c Company) HasCategory(categoryID string) bool {
	for _, id := range c.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

// CategoryRef categoría de una empresa. La API la envía como string o como objeto
// con alguno de los campos id, _id o level2.
type CategoryRef struct {
	ID       string `json:"id,omitempty"`
	LegacyID string `json:"_id,omitempty"`
	Level2   string `json:"level2,omitempty"`
}

// Resolve devuelve el primer identificador no vacío (id, _id, level2).
func (r *CategoryRef) Resolve() string {
	if r == nil {
		return ""
	}
	switch {
	case r.ID != "":
		return r.ID
	case r.LegacyID != "":
		return r.LegacyID
	default:
		return r.Level2
	}
}

// UnmarshalJSON acepta "cat-1" o {"id": "cat-1"}.
func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = CategoryRef{ID: s}
		return nil
	}
	type plain CategoryRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = CategoryRef(p)
	return nil
}
