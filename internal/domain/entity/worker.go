package entity

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Worker empleado de una empresa (quien ejecuta los traslados).
type Worker struct {
	ID        string `json:"id,omitempty"`
	LegacyID  string `json:"_id,omitempty"`
	UserID    string `json:"userId,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role,omitempty"`
}

// HasID informa si id coincide con cualquiera de los identificadores del empleado.
func (w Worker) HasID(id string) bool {
	return id != "" && (w.ID == id || w.LegacyID == id || w.UserID == id)
}

// FullName devuelve "nombre apellido" sin espacios sobrantes.
func (w Worker) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(w.FirstName) + " " + strings.TrimSpace(w.LastName))
}

// ActorRef referencia a quien ejecutó un traslado: un id plano o un objeto
// con userId, _id o id.
type ActorRef struct {
	UserID   string `json:"userId,omitempty"`
	LegacyID string `json:"_id,omitempty"`
	ID       string `json:"id,omitempty"`
}

// Resolve devuelve el primer identificador no vacío (userId, _id, id).
func (a ActorRef) Resolve() string {
	switch {
	case a.UserID != "":
		return a.UserID
	case a.LegacyID != "":
		return a.LegacyID
	default:
		return a.ID
	}
}

// UnmarshalJSON acepta "u-1", null o {"userId": "u-1"}.
func (a *ActorRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ActorRef{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = ActorRef{ID: s}
		return nil
	}
	type plain ActorRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = ActorRef(p)
	return nil
}
