// Package prompt composes the per-tenant system prompt sent to the
// completion service.
package prompt

import (
	"fmt"
	"strings"

	"github.com/NapaConcierge/concierge-api/internal/types"
)

// Build is a pure function of the business record: shared base knowledge,
// then a tenant-identity paragraph, then the tenant's custom knowledge
// verbatim when present. Custom knowledge is trusted tenant input and is
// injected into the instruction context unvalidated.
func Build(business *types.Business) string {
	var sb strings.Builder
	sb.WriteString(baseKnowledge)

	sb.WriteString("\n\n## Your Host\n")
	fmt.Fprintf(&sb, "You are the concierge for guests of %s", business.Name)
	if business.BusinessType != "" {
		fmt.Fprintf(&sb, ", a %s in Napa Valley", business.BusinessType)
	}
	sb.WriteString(". Greet guests on their behalf and tailor recommendations to their stay.")

	if business.CustomKnowledge != "" {
		sb.WriteString("\n\n## Property-Specific Knowledge\n")
		sb.WriteString(business.CustomKnowledge)
	}

	return sb.String()
}
