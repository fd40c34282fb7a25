package ports

import (
	"context"

	"GrainIntel/internal/domain"
)

// ItemSource supplies the complete raw batch for one pipeline run.
type ItemSource interface {
	Fetch(ctx context.Context) ([]domain.RawItem, error)
}

// RelevanceJudge evaluates a single item against the domain rubric.
// Implementations may call external services; any error they return is
// recovered by the caller via the deterministic rule-based fallback.
type RelevanceJudge interface {
	Judge(ctx context.Context, item domain.RawItem) (domain.Judgement, error)
}

// RunRepository persists completed curation runs for audit/history.
type RunRepository interface {
	SaveRun(ctx context.Context, result domain.CurationResult) error
}

// ResultWriter serializes the curated list to a persisted artifact.
type ResultWriter interface {
	Write(result domain.CurationResult) error
}

// Notifier streams digests of curated items to outbound channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func()) error
	Stop(ctx context.Context) error
}
