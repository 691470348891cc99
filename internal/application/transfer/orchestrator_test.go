package transfer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newOrchestrator(remote *spyRemote, attempts apptransfer.AttemptRecorder) *apptransfer.Orchestrator {
	return apptransfer.NewOrchestrator(remote, remote, attempts, zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })
}

// crossForm: A qty 2 @ 1000, B qty 1 @ 500 → total 2500, destino C2/S9.
func crossForm(t *testing.T) *apptransfer.Form {
	t.Helper()
	f := apptransfer.NewForm("S1")
	f.Mode = entity.TransferModeCross
	f.TargetCompanyID = "C2"
	f.TargetShopID = "S9"
	f.TargetName = "Tienda Norte"
	f.Reason = "restock"
	require.NoError(t, f.Selection.Set(domaintransfer.SelectionItem{ProductID: "A", Name: "Arroz", Quantity: dec("2"), UnitPrice: dec("1000"), CostPrice: dec("800")}))
	require.NoError(t, f.Selection.Set(domaintransfer.SelectionItem{ProductID: "B", Name: "Café", Quantity: dec("1"), UnitPrice: dec("500"), CostPrice: dec("350")}))
	return f
}

func intraForm(t *testing.T) *apptransfer.Form {
	t.Helper()
	f := crossForm(t)
	f.Mode = entity.TransferModeIntra
	f.TargetCompanyID = ""
	f.Notes = "  urgente "
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Éxito
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_CrossCompany_VentaLuegoTraslado(t *testing.T) {
	remote := &spyRemote{}
	attempts := &spyAttempts{}
	o := newOrchestrator(remote, attempts)

	var confirmations []apptransfer.Confirmation
	o.OnSuccess(func(c apptransfer.Confirmation) { confirmations = append(confirmations, c) })

	form := crossForm(t)
	conf, err := o.Submit(context.Background(), testSession, form)
	require.NoError(t, err)

	assert.Equal(t, []string{"sellProduct", "transferToCompany"}, remote.Calls())

	require.Len(t, remote.sales, 1)
	sale := remote.sales[0]
	assert.Equal(t, "S1", sale.ShopID)
	assert.Equal(t, "TRF-1741946400000", sale.PaymentID)
	assert.True(t, sale.TotalAmount.Equal(dec("2500")))
	assert.True(t, sale.AmountPaidNow.Equal(dec("2500")))
	assert.True(t, sale.IsTransfer)
	assert.Equal(t, "C2", sale.TransferTarget.TargetCompanyID)

	require.Len(t, remote.cross, 1)
	assert.Equal(t, "C2", remote.cross[0].ToCompanyID)
	assert.Equal(t, "S9", remote.cross[0].ToShopID)
	assert.Equal(t, "U1", remote.cross[0].UserID)

	require.NotNil(t, conf)
	assert.Equal(t, "Tienda Norte", conf.TargetName)
	assert.Equal(t, entity.TransferModeCross, conf.Mode)
	assert.Equal(t, "sale-1", conf.SaleID)
	assert.Equal(t, "trf-1", conf.TransferID)

	require.Len(t, confirmations, 1, "la confirmación se dispara una sola vez")
	assert.Equal(t, *conf, confirmations[0])

	assert.Equal(t, 0, form.Selection.Len(), "la selección se limpia tras el éxito")
	assert.True(t, form.Dismissed())

	st := o.Status()
	assert.Equal(t, apptransfer.PhaseSucceeded, st.Phase)
	assert.False(t, st.Pending())
	require.NotNil(t, st.Confirmation)

	require.Len(t, attempts.attempts, 1)
	assert.Equal(t, entity.AttemptStatusSucceeded, attempts.attempts[0].Status)
	assert.Equal(t, "sale-1", attempts.attempts[0].SaleID)
	assert.Equal(t, "trf-1", attempts.attempts[0].TransferID)
}

func TestSubmit_IntraCompany_UsaTransferToShop(t *testing.T) {
	remote := &spyRemote{}
	o := newOrchestrator(remote, nil)

	_, err := o.Submit(context.Background(), testSession, intraForm(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"sellProduct", "transferToShop"}, remote.Calls())
	require.Len(t, remote.intra, 1)
	assert.Equal(t, "S9", remote.intra[0].ToShopID)
	assert.Equal(t, "urgente", remote.intra[0].Notes)
	assert.Empty(t, remote.sales[0].TransferTarget.TargetCompanyID)
}

func TestSubmit_SinNombreDestino_UsaIDTienda(t *testing.T) {
	remote := &spyRemote{}
	o := newOrchestrator(remote, nil)
	form := intraForm(t)
	form.TargetName = ""

	conf, err := o.Submit(context.Background(), testSession, form)
	require.NoError(t, err)
	assert.Equal(t, "S9", conf.TargetName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_ValidacionFallida_SinLlamadasRemotas(t *testing.T) {
	remote := &spyRemote{}
	attempts := &spyAttempts{}
	o := newOrchestrator(remote, attempts)
	form := crossForm(t)
	form.Reason = "   "

	_, err := o.Submit(context.Background(), testSession, form)
	require.ErrorIs(t, err, domain.ErrReasonRequired)

	assert.Empty(t, remote.Calls())
	assert.Empty(t, attempts.attempts)
	assert.Equal(t, 2, form.Selection.Len())

	st := o.Status()
	assert.Equal(t, apptransfer.PhaseIdle, st.Phase)
	assert.Equal(t, domain.StageValidation, st.FailedStage)
	assert.Equal(t, domain.ErrReasonRequired.Error(), st.Message)
}

func TestSubmit_ValidacionEmpresaAntesQueTienda(t *testing.T) {
	remote := &spyRemote{}
	o := newOrchestrator(remote, nil)
	form := crossForm(t)
	form.TargetCompanyID = ""
	form.TargetShopID = ""
	form.Reason = ""

	_, err := o.Submit(context.Background(), testSession, form)
	assert.ErrorIs(t, err, domain.ErrSelectCompany)
	assert.Empty(t, remote.Calls())
}

func TestSubmit_DeudaMontoValido(t *testing.T) {
	remote := &spyRemote{}
	o := newOrchestrator(remote, nil)
	form := crossForm(t)
	form.SetDebt(true)
	require.NoError(t, form.SetAmountPaidNow(dec("1000")))

	_, err := o.Submit(context.Background(), testSession, form)
	require.NoError(t, err)
	assert.True(t, remote.sales[0].IsDebt)
	assert.True(t, remote.sales[0].AmountPaidNow.Equal(dec("1000")))
}

func TestSubmit_DeudaSeleccionReducida_MontoExcedeTotal(t *testing.T) {
	remote := &spyRemote{}
	o := newOrchestrator(remote, nil)
	form := crossForm(t)
	form.SetDebt(true)
	require.NoError(t, form.SetAmountPaidNow(dec("2400")))
	form.Selection.Remove("A") // total baja a 500

	_, err := o.Submit(context.Background(), testSession, form)
	assert.ErrorIs(t, err, domain.ErrAmountExceedsTotal)
	assert.Empty(t, remote.Calls())
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos remotos
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_FalloVenta_NoInvocaTraslado(t *testing.T) {
	remote := &spyRemote{saleErr: &remoteAPIError{msg: "Stock insuficiente"}}
	attempts := &spyAttempts{}
	o := newOrchestrator(remote, attempts)
	fired := false
	o.OnSuccess(func(apptransfer.Confirmation) { fired = true })
	form := crossForm(t)

	_, err := o.Submit(context.Background(), testSession, form)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSaleCreation)
	assert.NotErrorIs(t, err, domain.ErrTransferSubmission)

	var stageErr *domain.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, domain.StageSale, stageErr.Stage)
	assert.False(t, stageErr.OrphanSale())

	assert.Equal(t, []string{"sellProduct"}, remote.Calls())
	assert.False(t, fired)
	assert.Equal(t, 2, form.Selection.Len(), "la selección se conserva")
	assert.False(t, form.Dismissed())

	st := o.Status()
	assert.Equal(t, apptransfer.PhaseFailed, st.Phase)
	assert.Equal(t, domain.StageSale, st.FailedStage)
	assert.Equal(t, "Stock insuficiente", st.Message)

	require.Len(t, attempts.attempts, 1)
	assert.Equal(t, entity.AttemptStatusSaleFailed, attempts.attempts[0].Status)
	assert.Empty(t, attempts.attempts[0].SaleID)
}

func TestSubmit_FalloTraslado_VentaHuerfanaSinCompensacion(t *testing.T) {
	remote := &spyRemote{transferErr: errors.New("timeout")}
	attempts := &spyAttempts{}
	o := newOrchestrator(remote, attempts)
	fired := false
	o.OnSuccess(func(apptransfer.Confirmation) { fired = true })
	form := crossForm(t)

	_, err := o.Submit(context.Background(), testSession, form)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransferSubmission)

	var stageErr *domain.StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, "sale-1", stageErr.SaleID)
	assert.True(t, stageErr.OrphanSale())

	// Ninguna tercera llamada: la venta no se revierte.
	assert.Equal(t, []string{"sellProduct", "transferToCompany"}, remote.Calls())
	assert.False(t, fired)
	assert.Equal(t, 2, form.Selection.Len())

	st := o.Status()
	assert.Equal(t, apptransfer.PhaseFailed, st.Phase)
	assert.Equal(t, domain.StageTransfer, st.FailedStage)
	assert.Equal(t, apptransfer.GenericFailureMessage, st.Message)

	require.Len(t, attempts.attempts, 1)
	a := attempts.attempts[0]
	assert.Equal(t, entity.AttemptStatusOrphaned, a.Status)
	assert.Equal(t, "sale-1", a.SaleID)
	assert.Equal(t, domain.StageTransfer, a.FailedStage)
	assert.Equal(t, "TRF-1741946400000", a.PaymentID)
}

func TestSubmit_ReintentoTrasFallo_CreaSegundaVenta(t *testing.T) {
	remote := &spyRemote{transferErr: errors.New("timeout")}
	clock := fixedNow
	o := apptransfer.NewOrchestrator(remote, remote, nil, zerolog.Nop()).
		WithClock(func() time.Time { return clock })
	form := crossForm(t)

	_, err := o.Submit(context.Background(), testSession, form)
	require.Error(t, err)

	remote.transferErr = nil
	clock = clock.Add(1500 * time.Millisecond)
	_, err = o.Submit(context.Background(), testSession, form)
	require.NoError(t, err)

	assert.Equal(t, []string{"sellProduct", "transferToCompany", "sellProduct", "transferToCompany"}, remote.Calls())
	require.Len(t, remote.sales, 2)
	assert.Equal(t, "TRF-1741946400000", remote.sales[0].PaymentID)
	assert.Equal(t, "TRF-1741946401500", remote.sales[1].PaymentID)
}

func TestSubmit_FalloRegistroIntento_NoAfectaResultado(t *testing.T) {
	remote := &spyRemote{}
	attempts := &spyAttempts{err: errors.New("db down")}
	o := newOrchestrator(remote, attempts)

	conf, err := o.Submit(context.Background(), testSession, crossForm(t))
	require.NoError(t, err)
	assert.NotNil(t, conf)
	assert.Len(t, attempts.attempts, 1)
}

func TestSubmit_RegistroIntento_IgnoraCancelacionDelContexto(t *testing.T) {
	remote := &spyRemote{saleErr: errors.New("boom")}
	attempts := &spyAttempts{}
	o := newOrchestrator(remote, attempts)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Submit(ctx, testSession, crossForm(t))
	require.Error(t, err)
	require.Len(t, attempts.attempts, 1)
	assert.NoError(t, attempts.ctxErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia y cierre de la vista
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_EnCurso_RechazaSegundoEnvio(t *testing.T) {
	remote := &spyRemote{saleEntered: make(chan struct{}), saleGate: make(chan struct{})}
	o := newOrchestrator(remote, nil)
	first, second := crossForm(t), crossForm(t)

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), testSession, first)
		done <- err
	}()
	<-remote.saleEntered

	st := o.Status()
	assert.Equal(t, apptransfer.PhaseCreatingSale, st.Phase)
	assert.True(t, st.Pending())

	_, err := o.Submit(context.Background(), testSession, second)
	assert.ErrorIs(t, err, domain.ErrSubmissionInFlight)

	close(remote.saleGate)
	require.NoError(t, <-done)
	assert.Equal(t, []string{"sellProduct", "transferToCompany"}, remote.Calls())
}

func TestClose_DuranteEnvio_DescartaResultado(t *testing.T) {
	remote := &spyRemote{saleEntered: make(chan struct{}), saleGate: make(chan struct{})}
	o := newOrchestrator(remote, nil)
	fired := false
	o.OnSuccess(func(apptransfer.Confirmation) { fired = true })
	form := crossForm(t)

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), testSession, form)
		done <- err
	}()
	<-remote.saleEntered
	o.Close()
	close(remote.saleGate)
	require.NoError(t, <-done, "las llamadas en curso no se cancelan")

	assert.Equal(t, []string{"sellProduct", "transferToCompany"}, remote.Calls())
	assert.False(t, fired)
	assert.Equal(t, 2, form.Selection.Len())
	assert.False(t, form.Dismissed())
	assert.Equal(t, apptransfer.PhaseCreatingSale, o.Status().Phase, "el estado no cambia después de Close")
}

func TestSubmit_OrquestadorCerrado(t *testing.T) {
	remote := &spyRemote{}
	o := newOrchestrator(remote, nil)
	o.Close()

	_, err := o.Submit(context.Background(), testSession, crossForm(t))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, remote.Calls())
}

// ──────────────────────────────────────────────────────────────────────────────
// Mensajes para el usuario
// ──────────────────────────────────────────────────────────────────────────────

func TestUserMessage(t *testing.T) {
	assert.Empty(t, apptransfer.UserMessage(nil))
	assert.Equal(t, domain.ErrSelectShop.Error(), apptransfer.UserMessage(domain.ErrSelectShop))
	assert.Equal(t, "Stock insuficiente", apptransfer.UserMessage(
		&domain.StageError{Stage: domain.StageSale, Err: &remoteAPIError{msg: "Stock insuficiente"}}))
	assert.Equal(t, apptransfer.GenericFailureMessage, apptransfer.UserMessage(&remoteAPIError{msg: "  "}))
	assert.Equal(t, apptransfer.GenericFailureMessage, apptransfer.UserMessage(errors.New("dial tcp: refused")))
}
