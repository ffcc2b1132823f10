package sync

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/claimsight/dealersync/internal/metrics"
	"github.com/claimsight/dealersync/pkg/config"
	"github.com/claimsight/dealersync/pkg/source"
	"github.com/claimsight/dealersync/pkg/warehouse"
	"github.com/claimsight/dealersync/pkg/warehouse/dao"
)

// Source defines the document store reads the engine needs.
type Source interface {
	Dealers(ctx context.Context) ([]source.DealerDoc, error)
	Agreements(ctx context.Context) ([]source.AgreementDoc, error)
	Claims(ctx context.Context) ([]source.ClaimDoc, error)
	Subclaims(ctx context.Context) ([]source.SubclaimDoc, error)
	SubclaimParts(ctx context.Context) ([]source.SubclaimPartDoc, error)
	SurchargePrices(ctx context.Context) ([]source.SurchargePriceDoc, error)
}

// Store defines the warehouse operations the engine needs.
type Store interface {
	DealerKeys(ctx context.Context) (map[string]string, error)
	InsertNewDealers(ctx context.Context, rows []dao.DealerDao) error

	ClaimCheckpoints(ctx context.Context) (map[string]time.Time, error)
	HashCheckpoints(ctx context.Context, entityType string) (map[string]string, error)
	UpsertClaimCheckpoints(ctx context.Context, rows []dao.ClaimCheckpointDao) error
	UpsertHashCheckpoints(ctx context.Context, rows []dao.HashCheckpointDao) error

	UpsertClaims(ctx context.Context, rows []dao.ClaimDao) error
	UpsertAgreements(ctx context.Context, rows []dao.AgreementDao) error
	UpsertSubclaims(ctx context.Context, rows []dao.SubclaimDao) error
	UpsertSubclaimParts(ctx context.Context, rows []dao.SubclaimPartDao) error
	UpsertSurchargePrices(ctx context.Context, rows []dao.SurchargePriceDao) error

	AgreementIDs(ctx context.Context) ([]string, error)
	DeactivateAgreements(ctx context.Context, ids []string) (int64, error)
}

// Engine runs one full synchronization pass: dealers, claims, subclaims,
// subclaim parts, agreements, surcharge prices, then the reconciliation
// sweep. Phases run strictly sequentially; a failed phase never aborts the
// remaining ones.
type Engine struct {
	source Source
	store  Store
	cfg    config.SyncConfig
	logger *zap.Logger
}

// NewEngine creates a sync engine.
func NewEngine(cfg config.SyncConfig, src Source, store Store, logger *zap.Logger) *Engine {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	return &Engine{
		source: src,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Run executes a single synchronization pass and reports per-phase results.
func (e *Engine) Run(ctx context.Context) *RunReport {
	report := &RunReport{RunID: uuid.New(), StartedAt: time.Now()}
	logger := e.logger.With(zap.String("run_id", report.RunID.String()))

	logger.Info("Starting synchronization run",
		zap.Int("batch_size", e.cfg.BatchSize))

	dealerKeys, dealerRes := e.syncDealers(ctx, logger)
	report.add(dealerRes)

	report.add(e.syncClaims(ctx, logger))
	report.add(e.syncSubclaims(ctx, logger))
	report.add(e.syncSubclaimParts(ctx, logger))

	snapshot, agreementRes := e.syncAgreements(ctx, logger, dealerKeys)
	report.add(agreementRes)

	report.add(e.syncSurchargePrices(ctx, logger))
	report.add(e.reconcile(ctx, logger, snapshot))

	report.Duration = time.Since(report.StartedAt)
	logger.Info("Synchronization run finished",
		zap.String("outcome", string(report.Outcome())),
		zap.Duration("duration", report.Duration))

	return report
}

// syncDealers resolves dealer keys and writes new dealers. It returns the
// payee-to-key map consumed by the agreement phase; on read failure the map
// is empty and agreements fall back to the default dealer.
func (e *Engine) syncDealers(ctx context.Context, logger *zap.Logger) (map[string]string, PhaseResult) {
	const entity = "dealers"
	start := time.Now()
	res := PhaseResult{Entity: entity}
	defer func() { metrics.PhaseDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds()) }()

	docs, err := e.source.Dealers(ctx)
	if err != nil {
		logger.Error("Failed to read source dealers", zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return map[string]string{}, res.finish(start)
	}

	existing, err := e.store.DealerKeys(ctx)
	if err != nil {
		logger.Error("Failed to read warehouse dealer keys", zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return map[string]string{}, res.finish(start)
	}

	rows, keys := ResolveDealers(docs, existing)
	res.Selected = len(rows)
	res.Skipped = len(docs) - len(rows)
	metrics.RecordsSkipped.WithLabelValues(entity).Add(float64(res.Skipped))

	upserted, failed, errs := writeBatches(ctx, logger, entity, e.cfg.BatchSize, rows,
		e.store.InsertNewDealers, nil)
	res.Upserted, res.FailedBatches, res.Errs = upserted, failed, append(res.Errs, errs...)

	logger.Info("Dealer phase complete",
		zap.Int("source_documents", len(docs)),
		zap.Int("new_dealers", res.Upserted),
		zap.Int("failed_batches", res.FailedBatches))

	return keys, res.finish(start)
}

func (e *Engine) syncClaims(ctx context.Context, logger *zap.Logger) PhaseResult {
	const entity = "claims"
	start := time.Now()
	res := PhaseResult{Entity: entity}
	defer func() { metrics.PhaseDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds()) }()

	docs, err := e.source.Claims(ctx)
	if err != nil {
		logger.Error("Failed to read source claims", zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return res.finish(start)
	}

	checkpoints, err := e.store.ClaimCheckpoints(ctx)
	if err != nil {
		logger.Error("Failed to read claim checkpoints", zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return res.finish(start)
	}

	changed := ChangedClaims(docs, checkpoints)
	res.Selected = len(changed)
	res.Skipped = len(docs) - len(changed)
	metrics.RecordsSkipped.WithLabelValues(entity).Add(float64(res.Skipped))

	rows := make([]dao.ClaimDao, len(changed))
	for i, doc := range changed {
		rows[i] = buildClaimRow(logger, doc)
	}

	upserted, failed, errs := writeBatches(ctx, logger, entity, e.cfg.BatchSize, rows,
		e.store.UpsertClaims,
		func(ctx context.Context, batch []dao.ClaimDao) error {
			checkpoints := make([]dao.ClaimCheckpointDao, len(batch))
			for i, row := range batch {
				checkpoints[i] = dao.ClaimCheckpointDao{ClaimID: row.ClaimID, LastModified: row.LastModified}
			}
			return e.store.UpsertClaimCheckpoints(ctx, checkpoints)
		})
	res.Upserted, res.FailedBatches, res.Errs = upserted, failed, append(res.Errs, errs...)

	logger.Info("Claim phase complete",
		zap.Int("source_documents", len(docs)),
		zap.Int("upserted", res.Upserted),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed_batches", res.FailedBatches))

	return res.finish(start)
}

func (e *Engine) syncSubclaims(ctx context.Context, logger *zap.Logger) PhaseResult {
	start := time.Now()
	entity := warehouse.EntitySubclaims
	res := PhaseResult{Entity: entity}
	defer func() { metrics.PhaseDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds()) }()

	docs, err := e.source.Subclaims(ctx)
	if err != nil {
		logger.Error("Failed to read source subclaims", zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return res.finish(start)
	}

	changed, err := selectByHash(ctx, e, logger, entity, docs, &res)
	if err != nil {
		return res.finish(start)
	}

	rows := make([]dao.SubclaimDao, len(changed))
	for i, doc := range changed {
		rows[i] = buildSubclaimRow(logger, doc)
	}

	upserted, failed, errs := writeBatches(ctx, logger, entity, e.cfg.BatchSize, rows,
		e.store.UpsertSubclaims,
		hashCheckpointWriter(e, entity, func(row dao.SubclaimDao) (string, string) { return row.ID, row.Hash }))
	res.Upserted, res.FailedBatches, res.Errs = upserted, failed, append(res.Errs, errs...)

	logger.Info("Subclaim phase complete",
		zap.Int("source_documents", len(docs)),
		zap.Int("upserted", res.Upserted),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed_batches", res.FailedBatches))

	return res.finish(start)
}

func (e *Engine) syncSubclaimParts(ctx context.Context, logger *zap.Logger) PhaseResult {
	start := time.Now()
	entity := warehouse.EntitySubclaimParts
	res := PhaseResult{Entity: entity}
	defer func() { metrics.PhaseDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds()) }()

	docs, err := e.source.SubclaimParts(ctx)
	if err != nil {
		logger.Error("Failed to read source subclaim parts", zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return res.finish(start)
	}

	changed, err := selectByHash(ctx, e, logger, entity, docs, &res)
	if err != nil {
		return res.finish(start)
	}

	rows := make([]dao.SubclaimPartDao, len(changed))
	for i, doc := range changed {
		rows[i] = buildSubclaimPartRow(logger, doc)
	}

	upserted, failed, errs := writeBatches(ctx, logger, entity, e.cfg.BatchSize, rows,
		e.store.UpsertSubclaimParts,
		hashCheckpointWriter(e, entity, func(row dao.SubclaimPartDao) (string, string) { return row.ID, row.Hash }))
	res.Upserted, res.FailedBatches, res.Errs = upserted, failed, append(res.Errs, errs...)

	logger.Info("Subclaim part phase complete",
		zap.Int("source_documents", len(docs)),
		zap.Int("upserted", res.Upserted),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed_batches", res.FailedBatches))

	return res.finish(start)
}

// syncAgreements collapses raw revisions, resolves dealer keys and writes
// changed agreements. It returns the set of agreement identifiers present in
// the collapsed snapshot, consumed by the reconciliation sweep; the set is
// nil when the phase failed to read, in which case reconciliation is skipped.
func (e *Engine) syncAgreements(ctx context.Context, logger *zap.Logger, dealerKeys map[string]string) (map[string]struct{}, PhaseResult) {
	start := time.Now()
	entity := warehouse.EntityAgreements
	res := PhaseResult{Entity: entity}
	defer func() { metrics.PhaseDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds()) }()

	docs, err := e.source.Agreements(ctx)
	if err != nil {
		logger.Error("Failed to read source agreements", zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return nil, res.finish(start)
	}

	collapsed := SelectLatestRevisions(docs)
	snapshot := make(map[string]struct{}, len(collapsed))
	for _, doc := range collapsed {
		snapshot[doc.AgreementID] = struct{}{}
	}

	changed, err := selectByHash(ctx, e, logger, entity, collapsed, &res)
	if err != nil {
		return nil, res.finish(start)
	}

	defaultKey := e.defaultDealerKey(dealerKeys)
	rows := make([]dao.AgreementDao, len(changed))
	for i, doc := range changed {
		rows[i] = buildAgreementRow(logger, doc, dealerKeys, defaultKey)
	}

	upserted, failed, errs := writeBatches(ctx, logger, entity, e.cfg.BatchSize, rows,
		e.store.UpsertAgreements,
		hashCheckpointWriter(e, entity, func(row dao.AgreementDao) (string, string) { return row.AgreementID, row.Hash }))
	res.Upserted, res.FailedBatches, res.Errs = upserted, failed, append(res.Errs, errs...)

	logger.Info("Agreement phase complete",
		zap.Int("raw_revisions", len(docs)),
		zap.Int("collapsed", len(collapsed)),
		zap.Int("upserted", res.Upserted),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed_batches", res.FailedBatches))

	return snapshot, res.finish(start)
}

func (e *Engine) syncSurchargePrices(ctx context.Context, logger *zap.Logger) PhaseResult {
	start := time.Now()
	entity := warehouse.EntitySurchargePrices
	res := PhaseResult{Entity: entity}
	defer func() { metrics.PhaseDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds()) }()

	docs, err := e.source.SurchargePrices(ctx)
	if err != nil {
		logger.Error("Failed to read source surcharge prices", zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return res.finish(start)
	}

	changed, err := selectByHash(ctx, e, logger, entity, docs, &res)
	if err != nil {
		return res.finish(start)
	}

	rows := make([]dao.SurchargePriceDao, len(changed))
	for i, doc := range changed {
		rows[i] = buildSurchargePriceRow(logger, doc)
	}

	upserted, failed, errs := writeBatches(ctx, logger, entity, e.cfg.BatchSize, rows,
		e.store.UpsertSurchargePrices,
		hashCheckpointWriter(e, entity, func(row dao.SurchargePriceDao) (string, string) { return row.ID, row.Hash }))
	res.Upserted, res.FailedBatches, res.Errs = upserted, failed, append(res.Errs, errs...)

	logger.Info("Surcharge price phase complete",
		zap.Int("source_documents", len(docs)),
		zap.Int("upserted", res.Upserted),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed_batches", res.FailedBatches))

	return res.finish(start)
}

// reconcile marks warehouse agreements absent from the source snapshot as
// inactive. It adds inactive markers only; reactivation happens through the
// normal agreement upsert path.
func (e *Engine) reconcile(ctx context.Context, logger *zap.Logger, snapshot map[string]struct{}) PhaseResult {
	const entity = "reconciliation"
	start := time.Now()
	res := PhaseResult{Entity: entity}
	defer func() { metrics.PhaseDuration.WithLabelValues(entity).Observe(time.Since(start).Seconds()) }()

	if snapshot == nil {
		// Without a source snapshot the sweep would deactivate everything
		logger.Warn("Skipping reconciliation: no agreement snapshot from this run")
		res.Outcome = OutcomeFailed
		return res.finish(start)
	}

	ids, err := e.store.AgreementIDs(ctx)
	if err != nil {
		logger.Error("Failed to read warehouse agreement ids", zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return res.finish(start)
	}

	var missing []string
	for _, id := range ids {
		if _, ok := snapshot[id]; !ok {
			missing = append(missing, id)
		}
	}
	res.Selected = len(missing)
	res.Skipped = len(ids) - len(missing)

	if len(missing) == 0 {
		logger.Info("Reconciliation complete, nothing to deactivate",
			zap.Int("warehouse_agreements", len(ids)))
		return res.finish(start)
	}

	deactivated, err := e.store.DeactivateAgreements(ctx, missing)
	if err != nil {
		logger.Error("Failed to deactivate agreements", zap.Error(err))
		res.Outcome = OutcomePartial
		res.Errs = append(res.Errs, err)
		return res.finish(start)
	}
	res.Upserted = int(deactivated)
	metrics.AgreementsDeactivated.Add(float64(deactivated))

	logger.Info("Reconciliation complete",
		zap.Int("warehouse_agreements", len(ids)),
		zap.Int64("deactivated", deactivated))

	return res.finish(start)
}

// selectByHash loads the hash checkpoints for an entity and filters the
// documents down to those requiring upsert. On checkpoint read failure the
// phase result is marked failed and a non-nil error returned; the phase
// writes nothing rather than re-upserting the full snapshot blind.
func selectByHash[T HashTracked](ctx context.Context, e *Engine, logger *zap.Logger, entity string, docs []T, res *PhaseResult) ([]T, error) {
	recorded, err := e.store.HashCheckpoints(ctx, entity)
	if err != nil {
		logger.Error("Failed to read hash checkpoints",
			zap.String("entity", entity),
			zap.Error(err))
		res.Outcome = OutcomeFailed
		res.Errs = append(res.Errs, err)
		return nil, err
	}

	changed := ChangedByHash(docs, recorded)
	res.Selected = len(changed)
	res.Skipped = len(docs) - len(changed)
	metrics.RecordsSkipped.WithLabelValues(entity).Add(float64(res.Skipped))
	return changed, nil
}

// hashCheckpointWriter returns a checkpoint callback that records the hash
// of every row in a successfully written batch.
func hashCheckpointWriter[R any](e *Engine, entity string, identity func(R) (id, hash string)) func(context.Context, []R) error {
	return func(ctx context.Context, batch []R) error {
		rows := make([]dao.HashCheckpointDao, len(batch))
		for i, row := range batch {
			id, hash := identity(row)
			rows[i] = dao.HashCheckpointDao{EntityType: entity, EntityID: id, Hash: hash}
		}
		return e.store.UpsertHashCheckpoints(ctx, rows)
	}
}

func (e *Engine) defaultDealerKey(dealerKeys map[string]string) string {
	if key, ok := dealerKeys[normalizePayee(e.cfg.DefaultPayeeNumber)]; ok {
		return key
	}
	return e.cfg.DefaultPayeeNumber
}

// writeBatches writes rows in fixed-size batches. A failed batch is logged
// and skipped; subsequent batches proceed, and no checkpoint is recorded
// for the failed batch.
func writeBatches[R any](
	ctx context.Context,
	logger *zap.Logger,
	entity string,
	batchSize int,
	rows []R,
	write func(context.Context, []R) error,
	checkpoint func(context.Context, []R) error,
) (upserted, failedBatches int, errs []error) {
	for lo := 0; lo < len(rows); lo += batchSize {
		hi := min(lo+batchSize, len(rows))
		batch := rows[lo:hi]

		if err := write(ctx, batch); err != nil {
			logger.Error("Batch write failed, continuing with next batch",
				zap.String("entity", entity),
				zap.Int("offset", lo),
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			metrics.BatchesFailed.WithLabelValues(entity).Inc()
			failedBatches++
			errs = append(errs, err)
			continue
		}
		upserted += len(batch)
		metrics.RecordsUpserted.WithLabelValues(entity).Add(float64(len(batch)))

		if checkpoint == nil {
			continue
		}
		if err := checkpoint(ctx, batch); err != nil {
			// Safe to retry next run: the records re-upsert idempotently
			logger.Error("Checkpoint write failed",
				zap.String("entity", entity),
				zap.Int("offset", lo),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	return upserted, failedBatches, errs
}
