package quota

import (
	"context"

	"github.com/contentloom/contentloom/internal/domain/credit"
)

// ResourceCounter answers "how many X does team T currently have". The
// counting itself is the data layer's responsibility; the guard never
// counts.
type ResourceCounter interface {
	Count(ctx context.Context, teamID int64, resource Resource) (int64, error)
}

// Guard decides whether one more unit of a resource may be created or
// consumed. Purely read-and-decide; it performs no writes.
type Guard interface {
	// CanPerform checks a content-credit ceiling against a caller-supplied
	// usage count.
	CanPerform(ctx context.Context, teamID int64, kind credit.Kind, currentUsage int64) (Decision, error)

	// CanAddMembers checks the member ceiling against the current count
	CanAddMembers(ctx context.Context, teamID int64) (Decision, error)

	// CanCreateBrand checks the brand ceiling against the current count
	CanCreateBrand(ctx context.Context, teamID int64) (Decision, error)

	// CanCreatePersona checks the persona ceiling against the current count
	CanCreatePersona(ctx context.Context, teamID int64) (Decision, error)

	// CanCreateTheme checks the theme ceiling against the current count
	CanCreateTheme(ctx context.Context, teamID int64) (Decision, error)
}
