package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NapaConcierge/concierge-api/internal/types"
)

func TestBuildIncludesBaseKnowledge(t *testing.T) {
	business := &types.Business{Name: "The Vineyard Inn", BusinessType: "hotel"}

	got := Build(business)

	assert.True(t, strings.HasPrefix(got, baseKnowledge))
	assert.Contains(t, got, "The Vineyard Inn")
	assert.Contains(t, got, "a hotel in Napa Valley")
	assert.NotContains(t, got, "Property-Specific Knowledge")
}

func TestBuildAppendsCustomKnowledge(t *testing.T) {
	business := &types.Business{
		Name:            "Acme Hotel",
		BusinessType:    "hotel",
		CustomKnowledge: "Pool closes at 9pm. Breakfast is complimentary.",
	}

	got := Build(business)

	assert.Contains(t, got, "Property-Specific Knowledge")
	assert.Contains(t, got, "Pool closes at 9pm. Breakfast is complimentary.")
	// Custom knowledge goes in verbatim, after the identity paragraph.
	assert.Greater(t, strings.Index(got, "Pool closes"), strings.Index(got, "Acme Hotel"))
}

func TestBuildIsDeterministic(t *testing.T) {
	business := &types.Business{Name: "Calistoga Lodge", BusinessType: "winery", CustomKnowledge: "We pour estate Zinfandel."}

	assert.Equal(t, Build(business), Build(business))
}

func TestBuildWithoutBusinessType(t *testing.T) {
	business := &types.Business{Name: "Solo Stay"}

	got := Build(business)

	assert.Contains(t, got, "Solo Stay")
	assert.NotContains(t, got, "a  in Napa Valley")
}
