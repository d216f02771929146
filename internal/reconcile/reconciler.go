package reconcile

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/addissalvage/elv-tracking/internal/db"
	"github.com/addissalvage/elv-tracking/internal/models"
	"github.com/addissalvage/elv-tracking/internal/rules"
	"github.com/addissalvage/elv-tracking/internal/validate"
)

// Reconciler applies a batch of offline client mutations in deterministic
// order. It holds no state between batches; all mutable state lives in the
// store. There is no atomicity across mutations: partial application of a
// batch is expected and representable in the result list, so callers can
// resubmit only the failed entries.
type Reconciler struct {
	store  db.Store
	engine *rules.Engine
	now    func() time.Time
}

// NewReconciler creates a reconciler over the given store and rule engine.
func NewReconciler(store db.Store, engine *rules.Engine) *Reconciler {
	return &Reconciler{store: store, engine: engine, now: time.Now}
}

// Reconcile sorts the batch by client timestamp (stable, so equal timestamps
// keep their submitted order) and applies each mutation one after another.
// Later mutations may depend on earlier ones having landed in the store, so
// there is no internal parallelism. A submitted batch always runs to
// completion; the returned server time is taken at completion.
func (r *Reconciler) Reconcile(ctx context.Context, mutations []models.Mutation) ([]models.MutationResult, time.Time) {
	sorted := make([]models.Mutation, len(mutations))
	copy(sorted, mutations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ClientTimestamp.Before(sorted[j].ClientTimestamp)
	})

	results := make([]models.MutationResult, 0, len(sorted))
	for _, m := range sorted {
		results = append(results, r.apply(ctx, m))
	}
	return results, r.now()
}

func (r *Reconciler) apply(ctx context.Context, m models.Mutation) models.MutationResult {
	res := models.MutationResult{Op: m.Op}
	switch m.Op {
	case models.OpCreateVehicle:
		doc, err := validate.Vehicle(m.Data)
		if err != nil {
			return r.failed(res, m, err)
		}
		id, err := r.store.Insert(ctx, db.VehicleCollection, doc)
		if err != nil {
			return r.failed(res, m, err)
		}
		res.Status = models.MutationOK
		res.ID = id
	case models.OpLogEvent:
		doc, err := validate.Event(m.Data, r.now())
		if err != nil {
			return r.failed(res, m, err)
		}
		id, err := r.store.Insert(ctx, db.EventCollection, doc)
		if err != nil {
			return r.failed(res, m, err)
		}
		if err := r.engine.Apply(ctx, doc); err != nil {
			// The event has landed; surface the side-effect failure so
			// the client can resubmit and converge.
			return r.failed(res, m, err)
		}
		res.Status = models.MutationOK
		res.ID = id
	case models.OpRegisterPart:
		doc, err := validate.Part(m.Data)
		if err != nil {
			return r.failed(res, m, err)
		}
		id, err := r.store.Insert(ctx, db.PartCollection, doc)
		if err != nil {
			return r.failed(res, m, err)
		}
		res.Status = models.MutationOK
		res.ID = id
	default:
		// Unknown ops are tolerated for forward compatibility with newer
		// client versions; the batch keeps going.
		res.Status = models.MutationIgnored
		res.Reason = "unknown op"
	}
	return res
}

func (r *Reconciler) failed(res models.MutationResult, m models.Mutation, err error) models.MutationResult {
	log.WithFields(log.Fields{
		"op":        m.Op,
		"client_id": m.ClientID,
	}).WithError(err).Warn("mutation failed")
	res.Status = models.MutationError
	res.Error = err.Error()
	return res
}
