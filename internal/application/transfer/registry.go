package transfer

import (
	"sync"

	"github.com/jhoicas/Inventario-transfers/internal/domain/entity"
	"github.com/rs/zerolog"
)

// Registry mantiene un orquestador por usuario (empresa + usuario), de modo que la
// guarda de envío en curso aplique entre peticiones HTTP distintas del mismo usuario.
type Registry struct {
	sales     SaleCreator
	transfers TransferSubmitter
	attempts  AttemptRecorder
	log       zerolog.Logger

	mu    sync.Mutex
	namer TargetNamer
	items map[string]*Orchestrator
}

// NewRegistry construye el registro. attempts puede ser nil.
func NewRegistry(sales SaleCreator, transfers TransferSubmitter, attempts AttemptRecorder, log zerolog.Logger) *Registry {
	return &Registry{
		sales:     sales,
		transfers: transfers,
		attempts:  attempts,
		log:       log,
		items:     make(map[string]*Orchestrator),
	}
}

func registryKey(sess entity.Session) string {
	return sess.CompanyID + ":" + sess.UserID
}

// SetTargetNamer aplica fn a los orquestadores que se creen desde ahora.
func (r *Registry) SetTargetNamer(fn TargetNamer) {
	r.mu.Lock()
	r.namer = fn
	r.mu.Unlock()
}

// Get devuelve el orquestador del usuario, creándolo si no existe o si el anterior se cerró.
func (r *Registry) Get(sess entity.Session) *Orchestrator {
	key := registryKey(sess)
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.items[key]; ok && !o.Closed() {
		return o
	}
	o := NewOrchestrator(r.sales, r.transfers, r.attempts, r.log).WithTargetNamer(r.namer)
	r.items[key] = o
	return o
}

// Peek devuelve el orquestador del usuario sin crearlo.
func (r *Registry) Peek(sess entity.Session) (*Orchestrator, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[registryKey(sess)]
	return o, ok
}

// Close cierra y descarta el orquestador del usuario. Las llamadas en curso terminan
// pero ya no actualizan el estado.
func (r *Registry) Close(sess entity.Session) {
	key := registryKey(sess)
	r.mu.Lock()
	o, ok := r.items[key]
	delete(r.items, key)
	r.mu.Unlock()
	if ok {
		o.Close()
	}
}
