package transfer

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	"golang.org/x/text/unicode/norm"
)

// FilterAll valor que desactiva un filtro de selección.
const FilterAll = "all"

// Direcciones del listado respecto a la tienda filtrada.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Paginación por defecto del listado.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Filters filtros del listado de traslados tal como los envía la vista.
type Filters struct {
	Search    string `json:"search" query:"search"`
	Direction string `json:"direction" query:"direction"` // all | inbound | outbound
	Type      string `json:"type" query:"type"`           // all | intra_company | cross_company
	Shop      string `json:"shop" query:"shop"`           // id o all
	Worker    string `json:"worker" query:"worker"`       // id o all
	StartDate string `json:"start_date" query:"start_date"`
	EndDate   string `json:"end_date" query:"end_date"`
}

// DefaultFilters filtros iniciales (todo en "all").
func DefaultFilters() Filters {
	return Filters{Direction: FilterAll, Type: FilterAll, Shop: FilterAll, Worker: FilterAll}
}

// Normalize recorta espacios, lleva los vacíos a "all" y normaliza el texto de búsqueda (NFC).
func (f Filters) Normalize() Filters {
	orAll := func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return FilterAll
		}
		return s
	}
	return Filters{
		Search:    norm.NFC.String(strings.TrimSpace(f.Search)),
		Direction: strings.ToLower(orAll(f.Direction)),
		Type:      strings.ToLower(orAll(f.Type)),
		Shop:      orAll(f.Shop),
		Worker:    orAll(f.Worker),
		StartDate: strings.TrimSpace(f.StartDate),
		EndDate:   strings.TrimSpace(f.EndDate),
	}
}

// Query parámetros de getTransfers. Los campos vacíos no se envían.
type Query struct {
	Page              int
	Limit             int
	Search            string
	TransferType      string
	PerformedBy       string
	StartDate         string
	EndDate           string
	SourceShopID      string
	DestinationShopID string
	Direction         string
}

// BuildQuery traduce filtros y página a parámetros remotos.
//   - shop != all: sourceShopId (outbound) o destinationShopId (resto); no se envía direction.
//   - si no, direction != all: se envía direction; no se envían llaves de tienda.
//   - type y worker solo cuando no son "all".
func BuildQuery(f Filters, page, limit int) Query {
	f = f.Normalize()
	q := Query{
		Page:      page,
		Limit:     limit,
		Search:    f.Search,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}

	switch {
	case f.Shop != FilterAll:
		if f.Direction == DirectionOutbound {
			q.SourceShopID = f.Shop
		} else {
			q.DestinationShopID = f.Shop
		}
	case f.Direction != FilterAll:
		q.Direction = f.Direction
	}

	if f.Type != FilterAll {
		q.TransferType = f.Type
	}
	if f.Worker != FilterAll {
		q.PerformedBy = f.Worker
	}
	return q
}

// Values codifica la consulta para la URL remota.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("search", q.Search)
	set("transferType", q.TransferType)
	set("performedBy", q.PerformedBy)
	set("startDate", q.StartDate)
	set("endDate", q.EndDate)
	set("sourceShopId", q.SourceShopID)
	set("destinationShopId", q.DestinationShopID)
	set("direction", q.Direction)
	return v
}

// ValidType informa si t es un filtro de tipo reconocido.
func ValidType(t string) bool {
	switch entity.TransferMode(t) {
	case FilterAll, entity.TransferModeIntra, entity.TransferModeCross:
		return true
	}
	return false
}

// ValidDirection informa si d es una dirección reconocida.
func ValidDirection(d string) bool {
	return d == FilterAll || d == DirectionInbound || d == DirectionOutbound
}

// ListingState estado de filtros y página de la vista de listado.
// Cualquier cambio de filtros vuelve a la página 1; solo GoToPage cambia de página.
type ListingState struct {
	Filters Filters
	Page    int
	Limit   int
}

// NewListingState crea el estado inicial.
func NewListingState(limit int) *ListingState {
	if limit < 1 {
		limit = DefaultPageLimit
	}
	return &ListingState{Filters: DefaultFilters(), Page: 1, Limit: limit}
}

// ApplyFilters reemplaza los filtros y reinicia la página.
func (s *ListingState) ApplyFilters(f Filters) {
	s.Filters = f.Normalize()
	s.Page = 1
}

// GoToPage navegación explícita de página.
func (s *ListingState) GoToPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}

// Query construye la consulta remota del estado actual.
func (s *ListingState) Query() Query {
	return BuildQuery(s.Filters, s.Page, s.Limit)
}
