package transfer_test

import (
	"context"
	"errors"
	"sync"
	"time"

	apptransfer "github.com/jhoicas/Inventario-transfers/internal/application/transfer"
	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	domaintransfer "github.com/jhoicas/Inventario-transfers/internal/domain/transfer"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de prueba de la API remota
// ──────────────────────────────────────────────────────────────────────────────

var (
	testSession = entity.Session{CompanyID: "C1", UserID: "U1", AccessToken: "tok"}
	fixedNow    = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// remoteAPIError imita el error remoto con mensaje para el usuario.
type remoteAPIError struct{ msg string }

func (e *remoteAPIError) Error() string         { return "remote: " + e.msg }
func (e *remoteAPIError) PublicMessage() string { return e.msg }

// spyRemote registra el orden de llamadas de venta y traslado.
type spyRemote struct {
	mu    sync.Mutex
	calls []string

	saleErr     error
	transferErr error

	sales []domaintransfer.SalePayload
	intra []domaintransfer.IntraCompanyPayload
	cross []domaintransfer.CrossCompanyPayload

	// Si saleGate no es nil, SellProduct avisa en saleEntered y espera a que se cierre saleGate.
	saleEntered chan struct{}
	saleGate    chan struct{}
}

var (
	_ apptransfer.SaleCreator       = (*spyRemote)(nil)
	_ apptransfer.TransferSubmitter = (*spyRemote)(nil)
)

func (s *spyRemote) SellProduct(_ context.Context, _ entity.Session, p domaintransfer.SalePayload) (*entity.SaleRecord, error) {
	s.mu.Lock()
	s.calls = append(s.calls, "sellProduct")
	s.sales = append(s.sales, p)
	n := len(s.sales)
	s.mu.Unlock()

	if s.saleGate != nil {
		s.saleEntered <- struct{}{}
		<-s.saleGate
	}
	if s.saleErr != nil {
		return nil, s.saleErr
	}
	return &entity.SaleRecord{ID: "sale-" + string(rune('0'+n)), PaymentID: p.PaymentID, TotalAmount: p.TotalAmount.Decimal}, nil
}

func (s *spyRemote) TransferToShop(_ context.Context, _ entity.Session, _, _ string, p domaintransfer.IntraCompanyPayload) (*entity.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "transferToShop")
	s.intra = append(s.intra, p)
	if s.transferErr != nil {
		return nil, s.transferErr
	}
	return &entity.TransferRecord{ID: "trf-1", TransferType: entity.TransferModeIntra}, nil
}

func (s *spyRemote) TransferToCompany(_ context.Context, _ entity.Session, _, _ string, p domaintransfer.CrossCompanyPayload) (*entity.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, "transferToCompany")
	s.cross = append(s.cross, p)
	if s.transferErr != nil {
		return nil, s.transferErr
	}
	return &entity.TransferRecord{ID: "trf-1", TransferType: entity.TransferModeCross}, nil
}

func (s *spyRemote) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// spyAttempts guarda los intentos registrados.
type spyAttempts struct {
	mu       sync.Mutex
	attempts []*entity.TransferAttempt
	err      error
	ctxErr   error
}

func (s *spyAttempts) Create(ctx context.Context, a *entity.TransferAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctxErr = ctx.Err()
	s.attempts = append(s.attempts, a)
	return s.err
}

func (s *spyAttempts) ListByCompany(_ context.Context, companyID, status string, limit, offset int) ([]*entity.TransferAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.TransferAttempt
	for _, a := range s.attempts {
		if a.CompanyID == companyID && (status == "" || a.Status == status) {
			out = append(out, a)
		}
	}
	if offset >= len(out) {
		return nil, s.err
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, s.err
}

func (s *spyAttempts) CountByCompany(_ context.Context, companyID, status string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, a := range s.attempts {
		if a.CompanyID == companyID && (status == "" || a.Status == status) {
			n++
		}
	}
	return n, s.err
}

// fakeDirectory tablas de referencia en memoria.
type fakeDirectory struct {
	mu        sync.Mutex
	companies []entity.Company
	branches  map[string][]entity.Shop
	workers   []entity.Worker

	branchesErr  error
	workersErr   error
	companiesErr error

	calls []string
}

var _ apptransfer.CompanyDirectory = (*fakeDirectory)(nil)

func (d *fakeDirectory) record(call string) {
	d.mu.Lock()
	d.calls = append(d.calls, call)
	d.mu.Unlock()
}

func (d *fakeDirectory) GetCompanyDetails(_ context.Context, _ entity.Session, companyID string) (*entity.Company, error) {
	d.record("getCompanyDetails:" + companyID)
	for _, c := range d.companies {
		if c.HasID(companyID) {
			c := c
			return &c, nil
		}
	}
	return nil, errors.New("company not found")
}

func (d *fakeDirectory) GetAllCompanies(_ context.Context, _ entity.Session) ([]entity.Company, error) {
	d.record("getAllCompanies")
	if d.companiesErr != nil {
		return nil, d.companiesErr
	}
	return d.companies, nil
}

func (d *fakeDirectory) GetBranches(_ context.Context, _ entity.Session, companyID string) ([]entity.Shop, error) {
	d.record("getBranches:" + companyID)
	if d.branchesErr != nil {
		return nil, d.branchesErr
	}
	return d.branches[companyID], nil
}

func (d *fakeDirectory) GetWorkers(_ context.Context, _ entity.Session, companyID string) ([]entity.Worker, error) {
	d.record("getWorkers:" + companyID)
	if d.workersErr != nil {
		return nil, d.workersErr
	}
	return d.workers, nil
}

func (d *fakeDirectory) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.calls...)
}

// fakeLister devuelve una página fija y guarda la última consulta.
type fakeLister struct {
	page      *apptransfer.TransferPage
	err       error
	lastQuery domaintransfer.Query
}

func (l *fakeLister) GetTransfers(_ context.Context, _ entity.Session, _ string, q domaintransfer.Query) (*apptransfer.TransferPage, error) {
	l.lastQuery = q
	if l.err != nil {
		return nil, l.err
	}
	return l.page, nil
}
