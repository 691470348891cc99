package transfer

import "github.com/jhoicas/Inventario-transfers/internal/domain/entity"

// SourceCategoryID resuelve la categoría de la empresa origen: primero Category
// (id, _id, level2) y luego category_ids[0]. Devuelve "" si no se puede resolver.
func SourceCategoryID(source entity.Company) string {
	if id := source.Category.Resolve(); id != "" {
		return id
	}
	if len(source.CategoryIDs) > 0 {
		return source.CategoryIDs[0]
	}
	return ""
}

// EligibleCompanies devuelve las empresas que pueden recibir un traslado entre empresas:
// las que comparten la categoría de la empresa origen, sin incluir a la propia origen.
// Si la categoría origen no se puede resolver devuelve una lista vacía (nunca "todas").
// Se respeta el orden de entrada.
func EligibleCompanies(source entity.Company, all []entity.Company) []entity.Company {
	eligible := make([]entity.Company, 0)
	categoryID := SourceCategoryID(source)
	if categoryID == "" {
		return eligible
	}
	for _, c := range all {
		if isSameCompany(source, c) {
			continue
		}
		if c.HasCategory(categoryID) {
			eligible = append(eligible, c)
		}
	}
	return eligible
}

func isSameCompany(a, b entity.Company) bool {
	return a.HasID(b.ID) || a.HasID(b.LegacyID)
}
