package http

import (
	"github.com/gofiber/fiber/v2"
	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
)

// CompanyHandler consulta de tiendas destino (protegido).
type CompanyHandler struct {
	targets *apptransfer.TargetsUseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(targets *apptransfer.TargetsUseCase) *CompanyHandler {
	return &CompanyHandler{targets: targets}
}

// Branches godoc
// @Summary      Tiendas de una empresa
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la empresa (propia o destino)"
// @Success      200  {array}   dto.ShopResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/branches [get]
func (h *CompanyHandler) Branches(c *fiber.Ctx) error {
	if !requireSession(c) {
		return unauthorized(c)
	}
	out, err := h.targets.Branches(c.UserContext(), GetSession(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
