package transfer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
	"github.com/jhoicas/Inventario-transfers/internal/application/dto"
	"github.com/jhoicas/Inventario-transfers/internal/domain"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
)

func TestForm_SinDeuda_MontoEsElTotal(t *testing.T) {
	f := crossForm(t)
	assert.False(t, f.IsDebt())
	assert.True(t, f.AmountPaidNow().Equal(dec("2500")))

	// Sin deuda el monto no se puede editar.
	require.NoError(t, f.SetAmountPaidNow(dec("10")))
	assert.True(t, f.AmountPaidNow().Equal(dec("2500")))
}

func TestForm_ActivarDeuda_MontoEnCero(t *testing.T) {
	f := crossForm(t)
	f.SetDebt(true)
	assert.True(t, f.IsDebt())
	assert.True(t, f.AmountPaidNow().IsZero())
}

func TestForm_MontoMayorQueTotal_SeRechazaSinRecortar(t *testing.T) {
	f := crossForm(t)
	f.SetDebt(true)
	require.NoError(t, f.SetAmountPaidNow(dec("1200")))

	err := f.SetAmountPaidNow(dec("2500.01"))
	assert.ErrorIs(t, err, domain.ErrAmountExceedsTotal)
	assert.True(t, f.AmountPaidNow().Equal(dec("1200")), "el valor anterior se conserva")

	err = f.SetAmountPaidNow(dec("-1"))
	assert.ErrorIs(t, err, domain.ErrAmountExceedsTotal)
	assert.True(t, f.AmountPaidNow().Equal(dec("1200")))

	require.NoError(t, f.SetAmountPaidNow(dec("2500")), "el total exacto es válido")
}

func TestForm_NuevoFormulario(t *testing.T) {
	f := apptransfer.NewForm("S1")
	assert.Equal(t, entity.TransferModeIntra, f.Mode)
	assert.Equal(t, "S1", f.SourceShopID)
	assert.Equal(t, 0, f.Selection.Len())
	assert.False(t, f.Dismissed())
	assert.True(t, f.Total().IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// FormFromRequest
// ──────────────────────────────────────────────────────────────────────────────

func validRequest() dto.CreateTransferRequest {
	return dto.CreateTransferRequest{
		Mode:            "cross_company",
		SourceShopID:    "S1",
		TargetCompanyID: "C2",
		TargetShopID:    "S9",
		Reason:          "restock",
		Items: []dto.TransferItemRequest{
			{ProductID: "A", Name: "Arroz", Quantity: dec("2"), UnitPrice: dec("1000"), CostPrice: dec("800")},
			{ProductID: "B", Name: "Café", Quantity: dec("1"), UnitPrice: dec("500"), CostPrice: dec("350")},
		},
	}
}

func TestFormFromRequest_Valido(t *testing.T) {
	f, err := apptransfer.FormFromRequest(validRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.TransferModeCross, f.Mode)
	assert.Equal(t, 2, f.Selection.Len())
	assert.True(t, f.Total().Equal(dec("2500")))
}

func TestFormFromRequest_ModoVacio_EsIntra(t *testing.T) {
	req := validRequest()
	req.Mode = ""
	f, err := apptransfer.FormFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferModeIntra, f.Mode)
}

func TestFormFromRequest_ModoInvalido(t *testing.T) {
	req := validRequest()
	req.Mode = "teleport"
	_, err := apptransfer.FormFromRequest(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormFromRequest_SinTiendaOrigen(t *testing.T) {
	req := validRequest()
	req.SourceShopID = " "
	_, err := apptransfer.FormFromRequest(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormFromRequest_ItemInvalido(t *testing.T) {
	req := validRequest()
	req.Items[1].Quantity = dec("0")
	_, err := apptransfer.FormFromRequest(req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormFromRequest_DeudaConservaMontoExcedido(t *testing.T) {
	req := validRequest()
	req.IsDebt = true
	req.AmountPaidNow = dec("9999")
	f, err := apptransfer.FormFromRequest(req)
	require.NoError(t, err)
	assert.True(t, f.AmountPaidNow().Equal(dec("9999")), "la validación lo reporta al enviar")
}
