// Package workflow owns project entities: storage, stage transitions,
// evidence and approval lineage, and dashboard aggregation.
package workflow

import (
	"context"
	"errors"

	"github.com/oversightlabs/approval-service/types"
)

var (
	// ErrNotFound signals an unknown project id.
	ErrNotFound = errors.New("project not found")
	// ErrNoNextStage signals an advance request on the last workflow stage.
	ErrNoNextStage = errors.New("no next stage")
	// ErrInvalidStage signals a target stage outside the catalog enumeration.
	ErrInvalidStage = errors.New("invalid stage")
	// ErrEvidenceVerified signals an attempt to re-verify sealed evidence.
	ErrEvidenceVerified = errors.New("evidence already verified")
	// ErrApprovalDecided signals a decision on a non-pending approval.
	ErrApprovalDecided = errors.New("approval already decided")
)

// Store is the persistence boundary for projects. Implementations must
// return data the caller can mutate freely without affecting stored state.
type Store interface {
	Create(ctx context.Context, p *types.Project) error
	Get(ctx context.Context, id string) (*types.Project, error)
	List(ctx context.Context) ([]*types.Project, error)
	Update(ctx context.Context, p *types.Project) error
	Ping(ctx context.Context) error
}
