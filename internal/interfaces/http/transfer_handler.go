package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-transfers/internal/application/dto"
	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
)

// TransferHandler maneja las peticiones HTTP de traslados (protegido).
type TransferHandler struct {
	submit   *apptransfer.SubmitUseCase
	listing  *apptransfer.ListingUseCase
	targets  *apptransfer.TargetsUseCase
	attempts *apptransfer.AttemptsUseCase
}

// NewTransferHandler construye el handler. attempts puede ser nil (registro deshabilitado).
func NewTransferHandler(submit *apptransfer.SubmitUseCase, listing *apptransfer.ListingUseCase, targets *apptransfer.TargetsUseCase, attempts *apptransfer.AttemptsUseCase) *TransferHandler {
	return &TransferHandler{submit: submit, listing: listing, targets: targets, attempts: attempts}
}

// Create godoc
// @Summary      Ejecutar traslado (venta + traslado)
// @Description  Registra la venta del traslado y luego el traslado. Si el traslado falla la venta
//
//	queda registrada (orphan_sale=true); no hay compensación ni reintento automático.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "mode, source_shop_id, target_company_id (cross_company), target_shop_id, reason, items"
// @Success      201   {object}  dto.TransferConfirmationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.TransferFailureResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	if !requireSession(c) {
		return unauthorized(c)
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.submit.Submit(c.UserContext(), GetSession(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Workflow godoc
// @Summary      Estado del traslado en curso
// @Description  phase: idle | validating | creating_sale | creating_transfer | succeeded | failed.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  apptransfer.Status
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/transfers/workflow [get]
func (h *TransferHandler) Workflow(c *fiber.Ctx) error {
	if !requireSession(c) {
		return unauthorized(c)
	}
	st := h.submit.Status(GetSession(c))
	return c.JSON(fiber.Map{
		"phase":        st.Phase,
		"pending":      st.Pending(),
		"failed_stage": st.FailedStage,
		"message":      st.Message,
		"confirmation": st.Confirmation,
	})
}

// CloseWorkflow godoc
// @Summary      Cerrar la vista de traslado
// @Description  Las llamadas en curso no se cancelan; su resultado ya no cambia el estado.
// @Tags         transfers
// @Security     Bearer
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/transfers/workflow [delete]
func (h *TransferHandler) CloseWorkflow(c *fiber.Ctx) error {
	if !requireSession(c) {
		return unauthorized(c)
	}
	h.submit.Close(GetSession(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listado de traslados
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        search      query  string  false  "Texto libre"
// @Param        direction   query  string  false  "all | inbound | outbound"
// @Param        type        query  string  false  "all | intra_company | cross_company"
// @Param        shop        query  string  false  "ID de tienda o all"
// @Param        worker      query  string  false  "ID de empleado o all"
// @Param        start_date  query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Fecha final (YYYY-MM-DD)"
// @Param        page        query  int     false  "Página (desde 1)"
// @Param        limit       query  int     false  "Tamaño de página (máx. 100)"
// @Success      200  {object}  dto.TransferListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	if !requireSession(c) {
		return unauthorized(c)
	}
	var f domaintransfer.Filters
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	f = f.Normalize()
	if !domaintransfer.ValidDirection(f.Direction) || !domaintransfer.ValidType(f.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "direction o type no soportado"})
	}
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", domaintransfer.DefaultPageLimit)

	out, err := h.listing.List(c.UserContext(), GetSession(c), f, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EligibleCompanies godoc
// @Summary      Empresas destino elegibles (cross_company)
// @Description  Empresas de la misma categoría que la empresa de la sesión, excluyéndola.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CompanyResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/transfers/eligible-companies [get]
func (h *TransferHandler) EligibleCompanies(c *fiber.Ctx) error {
	if !requireSession(c) {
		return unauthorized(c)
	}
	out, err := h.targets.EligibleCompanies(c.UserContext(), GetSession(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Attempts godoc
// @Summary      Registro local de intentos de traslado
// @Description  status=orphaned lista las ventas registradas cuyo traslado falló.
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "succeeded | sale_failed | orphaned"
// @Param        limit   query  int     false  "Límite (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.TransferAttemptListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/transfers/attempts [get]
func (h *TransferHandler) Attempts(c *fiber.Ctx) error {
	if !requireSession(c) {
		return unauthorized(c)
	}
	if h.attempts == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "LEDGER_DISABLED", Message: "registro de intentos deshabilitado"})
	}
	out, err := h.attempts.List(c.UserContext(), GetCompanyID(c), c.Query("status"), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
