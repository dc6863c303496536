package validation

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"crudeval/internal/aggregate"
	"crudeval/internal/canon"
	"crudeval/internal/classify"
	"crudeval/internal/deviation"
	"crudeval/internal/faults"
	"crudeval/internal/logging"
	"crudeval/internal/pairing"
	"crudeval/internal/thresholds"
)

// Runner executes validation runs against a Source.
type Runner struct {
	source  Source
	aliases *canon.Aliases
	params  classify.Params
	logger  *slog.Logger
}

// NewRunner wires a Runner. A nil aliases table uses canon.DefaultAliases.
func NewRunner(source Source, aliases *canon.Aliases, params classify.Params, logger *slog.Logger) *Runner {
	if aliases == nil {
		aliases = canon.DefaultAliases()
	}
	return &Runner{
		source:  source,
		aliases: aliases,
		params:  params,
		logger:  logging.NewComponentLogger(logger, "validation"),
	}
}

// Thresholds loads and builds the threshold matrix named by path.
func (r *Runner) Thresholds(path string) (*thresholds.Matrix, thresholds.Stats, error) {
	table, err := r.source.Load(path)
	if err != nil {
		return nil, thresholds.Stats{}, faults.Wrap(faults.ErrConfiguration, "validation", "load thresholds", path, err)
	}
	return thresholds.NewBuilder(r.aliases, r.logger).Build(table)
}

// Pair lists both directories and matches their files.
func (r *Runner) Pair(referenceDir, candidateDir string) (pairing.Result, error) {
	refs, err := r.source.List(referenceDir)
	if err != nil {
		return pairing.Result{}, faults.Wrap(faults.ErrConfiguration, "validation", "list reference files", referenceDir, err)
	}
	cands, err := r.source.List(candidateDir)
	if err != nil {
		return pairing.Result{}, faults.Wrap(faults.ErrConfiguration, "validation", "list candidate files", candidateDir, err)
	}
	result := pairing.Match(refs, cands)
	r.logPairing(result)
	return result, nil
}

// Run performs a complete validation. The returned error is non-nil only for
// fatal problems; per-entity failures are reported in Result.Failures.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	runID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))

	matrix, stats, err := r.Thresholds(req.ThresholdFile)
	if err != nil {
		return nil, err
	}

	paired, err := r.Pair(req.ReferenceDir, req.CandidateDir)
	if err != nil {
		return nil, err
	}
	if len(paired.Pairs) == 0 {
		return nil, faults.Wrap(faults.ErrConfiguration, "validation", "pair files",
			fmt.Sprintf("no reference/candidate pairs (%d unpaired references, %d unpaired candidates)",
				len(paired.UnpairedReferences), len(paired.UnpairedCandidates)), nil)
	}

	result := &Result{
		RunID:          runID,
		Params:         r.params,
		ThresholdStats: stats,
		Thresholds:     matrix,
		Pairing:        paired,
	}
	acc := aggregate.NewAccumulator(r.params)

	logger.Info("validation started",
		logging.Int("pairs", len(paired.Pairs)),
		logging.Int("thresholds", matrix.Len()),
	)

	for _, pair := range paired.Pairs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entityLogger := logger.With(logging.String(logging.FieldEntity, pair.Key))

		entity, err := r.gradeEntity(req, pair, matrix, entityLogger)
		if err != nil {
			logging.ErrorWithContext(entityLogger, "entity skipped", "entity_failed",
				logging.String("reference", pair.Reference),
				logging.String("candidate", pair.Candidate),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check that both files have a Property column and cut columns"),
			)
			result.Failures = append(result.Failures, EntityFailure{
				Key:       pair.Key,
				Reference: pair.Reference,
				Candidate: pair.Candidate,
				Message:   err.Error(),
				Err:       err,
			})
			continue
		}

		verdicts := make([]aggregate.PropertyVerdict, 0, len(entity.Rows))
		for _, row := range entity.Rows {
			verdicts = append(verdicts, aggregate.PropertyVerdict{Property: row.Property, Verdict: row.Verdict})
		}
		entity.Global = acc.Add(entity.Key, verdicts)
		result.Entities = append(result.Entities, *entity)

		entityLogger.Info("entity graded",
			logging.String("global", string(entity.Global)),
			logging.Int("properties", len(entity.Rows)),
			logging.Int("cuts", len(entity.Cuts)),
		)
	}

	result.Summary = acc.Summary()
	logger.Info("validation finished",
		logging.Int("entities", len(result.Entities)),
		logging.Int("failures", len(result.Failures)),
	)
	return result, nil
}

func (r *Runner) gradeEntity(req Request, pair pairing.Pair, matrix *thresholds.Matrix, logger *slog.Logger) (*EntityResult, error) {
	ref, err := r.source.Load(filepath.Join(req.ReferenceDir, pair.Reference))
	if err != nil {
		return nil, faults.Wrap(faults.ErrValidation, "validation", "load reference", pair.Reference, err)
	}
	cand, err := r.source.Load(filepath.Join(req.CandidateDir, pair.Candidate))
	if err != nil {
		return nil, faults.Wrap(faults.ErrValidation, "validation", "load candidate", pair.Candidate, err)
	}

	dev, err := deviation.Compute(ref, cand, r.aliases)
	if err != nil {
		return nil, err
	}

	entity := &EntityResult{
		Key:       pair.Key,
		Reference: pair.Reference,
		Candidate: pair.Candidate,
		Cuts:      dev.Cuts,
		Rows:      make([]DetailRow, 0, len(dev.Rows)),
	}
	seen := make(map[string]string, len(dev.Rows))
	for _, row := range dev.Rows {
		if first, dup := seen[row.Property]; dup {
			logging.WarnWithContext(logger, "duplicate property row", "duplicate_property",
				logging.String(logging.FieldProperty, row.Property),
				logging.String("label", row.Label),
				logging.String("first_label", first),
				logging.String(logging.FieldImpact, "summary uses the first row; detail keeps both"),
				logging.String(logging.FieldErrorHint, "merge or rename the repeated property rows"),
			)
		} else {
			seen[row.Property] = row.Label
		}

		graded := classify.Classify(row.Property, row.Cells, matrix, r.params)
		entity.Rows = append(entity.Rows, DetailRow{Label: row.Label, PropertyResult: graded})

		attrs := append([]logging.Attr{logging.String(logging.FieldProperty, row.Property)},
			logging.DecisionAttrs("property_verdict", string(graded.Verdict), verdictReason(graded))...)
		logger.Debug("property graded", logging.Args(attrs...)...)
	}
	return entity, nil
}

func verdictReason(r classify.PropertyResult) string {
	c := r.Counts
	switch r.Verdict {
	case classify.VerdictEmpty:
		return "no numeric values"
	case classify.VerdictNA:
		if c.Valid == 0 {
			return "no cut has a threshold"
		}
		return "property missing from threshold matrix"
	}
	if r.HardRed {
		return fmt.Sprintf("cut %s above three times its threshold", r.WorstCut)
	}
	return fmt.Sprintf("%d green, %d yellow, %d red of %d graded cuts", c.Green, c.Yellow, c.Red, c.Valid)
}

func (r *Runner) logPairing(result pairing.Result) {
	for _, id := range result.UnpairedReferences {
		logging.WarnWithContext(r.logger, "reference file has no candidate", "unpaired_reference",
			logging.String(logging.FieldFile, id),
			logging.String(logging.FieldImpact, "entity is not graded"),
			logging.String(logging.FieldErrorHint, "add a candidate file with the same base identifier"),
		)
	}
	for _, id := range result.UnpairedCandidates {
		logging.WarnWithContext(r.logger, "candidate file has no reference", "unpaired_candidate",
			logging.String(logging.FieldFile, id),
			logging.String(logging.FieldImpact, "entity is not graded"),
			logging.String(logging.FieldErrorHint, "add a reference file with the same base identifier"),
		)
	}
	for _, dup := range result.Duplicates {
		logging.WarnWithContext(r.logger, "duplicate base identifier", "duplicate_identifier",
			logging.String(logging.FieldFile, dup.Identifier),
			logging.String("kept", dup.KeptAs),
			logging.String("side", dup.Side),
			logging.String(logging.FieldImpact, "only the first file is graded"),
			logging.String(logging.FieldErrorHint, "remove or rename one of the files"),
		)
	}
	for _, id := range result.UnidentifiedEntries {
		logging.WarnWithContext(r.logger, "file name yields no identifier", "unidentified_file",
			logging.String(logging.FieldFile, id),
			logging.String(logging.FieldImpact, "file is ignored"),
			logging.String(logging.FieldErrorHint, "name the file after the crude"),
		)
	}
	r.logger.Info("files paired",
		logging.Int("pairs", len(result.Pairs)),
		logging.Int("unpaired_references", len(result.UnpairedReferences)),
		logging.Int("unpaired_candidates", len(result.UnpairedCandidates)),
	)
}
