package transfer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
	"github.com/rs/zerolog"
)

// Phase estado del orquestador.
type Phase string

// Estados del flujo venta → traslado.
const (
	PhaseIdle             Phase = "idle"
	PhaseValidating       Phase = "validating"
	PhaseCreatingSale     Phase = "creating_sale"
	PhaseCreatingTransfer Phase = "creating_transfer"
	PhaseSucceeded        Phase = "succeeded"
	PhaseFailed           Phase = "failed"
)

// Pending informa si hay una secuencia en curso (el botón de envío debe estar deshabilitado).
func (p Phase) Pending() bool {
	return p == PhaseValidating || p == PhaseCreatingSale || p == PhaseCreatingTransfer
}

// GenericFailureMessage mensaje mostrado cuando el error remoto no trae texto propio.
const GenericFailureMessage = "no se pudo completar el traslado, intente de nuevo"

// Confirmation datos de la confirmación mostrada tras un traslado exitoso.
type Confirmation struct {
	TargetName string              `json:"target_name"`
	Mode       entity.TransferMode `json:"mode"`
	SaleID     string              `json:"sale_id,omitempty"`
	TransferID string              `json:"transfer_id,omitempty"`
}

// Status estado observable del orquestador.
// Un error de validación deja Phase en idle con FailedStage "validation" y el mensaje en línea.
type Status struct {
	Phase        Phase         `json:"phase"`
	FailedStage  string        `json:"failed_stage,omitempty"`
	Message      string        `json:"message,omitempty"`
	Confirmation *Confirmation `json:"confirmation,omitempty"`
}

// Pending informa si hay una secuencia en curso.
func (s Status) Pending() bool { return s.Phase.Pending() }

// Orchestrator ejecuta el flujo de traslado en dos llamadas remotas dependientes:
//
//	validación → sellProduct → transferToShop | transferToCompany
//
// Las llamadas nunca se hacen en paralelo: el traslado solo se envía cuando la venta ya existe.
// No hay atomicidad entre ambas: si el traslado falla, la venta queda registrada (venta huérfana)
// y no se emite ninguna llamada de compensación.
type Orchestrator struct {
	sales     SaleCreator
	transfers TransferSubmitter
	attempts  AttemptRecorder // opcional
	namer     TargetNamer     // opcional
	log       zerolog.Logger
	now       func() time.Time

	mu        sync.Mutex
	status    Status
	closed    bool
	onSuccess func(Confirmation)
}

// NewOrchestrator construye el orquestador. attempts puede ser nil.
func NewOrchestrator(sales SaleCreator, transfers TransferSubmitter, attempts AttemptRecorder, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		sales:     sales,
		transfers: transfers,
		attempts:  attempts,
		log:       log,
		now:       time.Now,
		status:    Status{Phase: PhaseIdle},
	}
}

// TargetNamer resuelve el nombre visible del destino para la confirmación.
// Se invoca solo con el formulario ya validado y la guarda de envío tomada.
type TargetNamer func(ctx context.Context, sess entity.Session, form *Form) string

// WithTargetNamer registra la resolución del nombre destino (si el formulario no lo trae).
func (o *Orchestrator) WithTargetNamer(fn TargetNamer) *Orchestrator {
	o.namer = fn
	return o
}

// WithClock reemplaza el reloj (tests).
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// OnSuccess registra el callback de confirmación.
func (o *Orchestrator) OnSuccess(fn func(Confirmation)) {
	o.mu.Lock()
	o.onSuccess = fn
	o.mu.Unlock()
}

// Status devuelve una copia del estado actual.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Close desacopla la vista. Las llamadas en curso no se cancelan; sus respuestas
// ya no modifican el estado, ni limpian la selección, ni disparan la confirmación.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	o.closed = true
	o.mu.Unlock()
}

// Closed informa si la vista ya se cerró.
func (o *Orchestrator) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// Submit valida el formulario y ejecuta la secuencia venta → traslado.
//   - Mientras haya una secuencia en curso devuelve domain.ErrSubmissionInFlight.
//   - Un error de validación no hace ninguna llamada remota.
//   - Un error de venta devuelve *domain.StageError{Stage: sale}; el traslado no se invoca.
//   - Un error de traslado devuelve *domain.StageError{Stage: transfer, SaleID}; la venta no se revierte.
//
// El id de pago solo depende de la hora: reenviar tras un fallo crea otra venta.
func (o *Orchestrator) Submit(ctx context.Context, sess entity.Session, form *Form) (*Confirmation, error) {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil, domain.ErrConflict
	}
	if o.status.Pending() {
		o.mu.Unlock()
		return nil, domain.ErrSubmissionInFlight
	}
	o.status = Status{Phase: PhaseValidating}
	o.mu.Unlock()

	payloads, err := domaintransfer.Build(form.input(sess, o.now()))
	if err != nil {
		o.setStatus(Status{Phase: PhaseIdle, FailedStage: domain.StageValidation, Message: err.Error()})
		return nil, err
	}

	if form.TargetName == "" && o.namer != nil {
		form.TargetName = o.namer(ctx, sess, form)
	}

	log := o.log.With().
		Str("company_id", sess.CompanyID).
		Str("user_id", sess.UserID).
		Str("payment_id", payloads.Sale.PaymentID).
		Str("mode", string(form.Mode)).
		Logger()

	// 1. Venta
	o.setStatus(Status{Phase: PhaseCreatingSale})
	sale, err := o.sales.SellProduct(ctx, sess, payloads.Sale)
	if err != nil {
		stageErr := &domain.StageError{Stage: domain.StageSale, Err: err}
		log.Warn().Err(err).Msg("venta del traslado rechazada")
		o.setStatus(Status{Phase: PhaseFailed, FailedStage: domain.StageSale, Message: UserMessage(err)})
		o.record(ctx, sess, form, payloads, entity.AttemptStatusSaleFailed, stageErr, nil)
		return nil, stageErr
	}
	if sale == nil {
		sale = &entity.SaleRecord{}
	}
	saleID := sale.Key()

	// 2. Traslado (solo con la venta ya creada)
	o.setStatus(Status{Phase: PhaseCreatingTransfer})
	rec, err := o.submitTransfer(ctx, sess, form.SourceShopID, payloads.Transfer)
	if err != nil {
		stageErr := &domain.StageError{Stage: domain.StageTransfer, SaleID: saleID, Err: err}
		log.Error().Err(err).Str("sale_id", saleID).Msg("traslado fallido con venta ya registrada (venta huérfana)")
		o.setStatus(Status{Phase: PhaseFailed, FailedStage: domain.StageTransfer, Message: UserMessage(err)})
		o.record(ctx, sess, form, payloads, entity.AttemptStatusOrphaned, stageErr, sale)
		return nil, stageErr
	}
	if rec == nil {
		rec = &entity.TransferRecord{}
	}

	conf := Confirmation{
		TargetName: form.TargetName,
		Mode:       form.Mode,
		SaleID:     saleID,
		TransferID: rec.Key(),
	}
	if conf.TargetName == "" {
		conf.TargetName = form.TargetShopID
	}

	o.mu.Lock()
	closed := o.closed
	if !closed {
		o.status = Status{Phase: PhaseSucceeded, Confirmation: &conf}
	}
	cb := o.onSuccess
	o.mu.Unlock()

	if !closed {
		form.complete()
		if cb != nil {
			cb(conf)
		}
	}
	log.Info().Str("sale_id", saleID).Str("transfer_id", conf.TransferID).Msg("traslado completado")
	o.recordSuccess(ctx, sess, form, payloads, sale, rec)
	return &conf, nil
}

func (o *Orchestrator) submitTransfer(ctx context.Context, sess entity.Session, sourceShopID string, p domaintransfer.TransferPayload) (*entity.TransferRecord, error) {
	switch tp := p.(type) {
	case domaintransfer.IntraCompanyPayload:
		return o.transfers.TransferToShop(ctx, sess, sess.CompanyID, sourceShopID, tp)
	case domaintransfer.CrossCompanyPayload:
		return o.transfers.TransferToCompany(ctx, sess, sess.CompanyID, sourceShopID, tp)
	}
	return nil, domain.ErrInvalidInput
}

// setStatus ignora escrituras después de Close.
func (o *Orchestrator) setStatus(s Status) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.status = s
}

func (o *Orchestrator) recordSuccess(ctx context.Context, sess entity.Session, form *Form, p *domaintransfer.Payloads, sale *entity.SaleRecord, rec *entity.TransferRecord) {
	if o.attempts == nil {
		return
	}
	a := o.newAttempt(sess, form, p, entity.AttemptStatusSucceeded)
	a.SaleID = sale.Key()
	a.TransferID = rec.Key()
	o.persist(ctx, a)
}

func (o *Orchestrator) record(ctx context.Context, sess entity.Session, form *Form, p *domaintransfer.Payloads, status string, stageErr *domain.StageError, sale *entity.SaleRecord) {
	if o.attempts == nil {
		return
	}
	a := o.newAttempt(sess, form, p, status)
	a.FailedStage = stageErr.Stage
	a.ErrorMessage = stageErr.Err.Error()
	if sale != nil {
		a.SaleID = sale.Key()
	}
	o.persist(ctx, a)
}

func (o *Orchestrator) newAttempt(sess entity.Session, form *Form, p *domaintransfer.Payloads, status string) *entity.TransferAttempt {
	return &entity.TransferAttempt{
		ID:              uuid.New().String(),
		CompanyID:       sess.CompanyID,
		UserID:          sess.UserID,
		Mode:            form.Mode,
		PaymentID:       p.Sale.PaymentID,
		SourceShopID:    form.SourceShopID,
		TargetCompanyID: p.Sale.TransferTarget.TargetCompanyID,
		TargetShopID:    p.Sale.TransferTarget.TargetShopID,
		TotalAmount:     p.Sale.TotalAmount.Decimal,
		AmountPaidNow:   p.Sale.AmountPaidNow.Decimal,
		IsDebt:          p.Sale.IsDebt,
		Status:          status,
		CreatedAt:       o.now(),
	}
}

// persist guarda el intento aunque el contexto de la petición ya se haya cancelado.
// Un fallo aquí solo se registra en el log.
func (o *Orchestrator) persist(ctx context.Context, a *entity.TransferAttempt) {
	if err := o.attempts.Create(context.WithoutCancel(ctx), a); err != nil {
		o.log.Warn().Err(err).Str("payment_id", a.PaymentID).Str("status", a.Status).Msg("no se pudo registrar el intento de traslado")
	}
}

// publicMessager lo implementan los errores remotos que traen un mensaje para el usuario.
type publicMessager interface {
	PublicMessage() string
}

// UserMessage arma el único mensaje visible para el usuario: el texto de validación,
// el mensaje del payload remoto si existe, o un texto genérico.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if domain.IsValidation(err) || errors.Is(err, domain.ErrSubmissionInFlight) {
		return err.Error()
	}
	var pm publicMessager
	if errors.As(err, &pm) {
		if msg := strings.TrimSpace(pm.PublicMessage()); msg != "" {
			return msg
		}
	}
	return GenericFailureMessage
}
