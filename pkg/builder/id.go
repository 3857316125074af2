package builder

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"

	"github.com/kode4food/sluice/pkg/api"
)

const idSuffixLen = 6

// NewFlowID derives a flow ID from a human-readable name. The name is
// slugged and a short random suffix keeps repeated builds distinct
func NewFlowID(name string) api.FlowID {
	id := uuid.New()
	suffix := hex.EncodeToString(id[:])[:idSuffixLen]
	return api.FlowID(slug(name) + "-" + suffix)
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
