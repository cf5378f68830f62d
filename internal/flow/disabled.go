package flow

import (
	"context"
	"fmt"
)

// Disabled is the Generator used when no model credentials are configured.
// Every call fails; persistence and CRUD surfaces keep working.
type Disabled struct{}

// GenerateJSON always fails with ErrGenerationFailed.
func (Disabled) GenerateJSON(_ context.Context, _ ModelRequest) ([]byte, Usage, error) {
	return nil, Usage{}, fmt.Errorf("%w: no generation model configured", ErrGenerationFailed)
}
