package prio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationTier(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"Pathogenic", TierPathogenic},
		{"Likely pathogenic", TierLikelyPathogenic},
		{"Vus H", TierVUSHigh},
		{"VUS_H", TierVUSHigh},
		{"VUS M", TierVUSMedium},
		{"VUS_M", TierVUSMedium},
		{"VUS c", TierVUSCold},
		{"VUS", TierVUS},
		{"Uncertain significance", TierVUS},
		{"Likely benign", TierLikelyBenign},
		{"Benign", TierBenign},
		{"UNK", TierUnknown},
		{"", TierUnknown},
		{".", TierUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassificationTier(tt.label))
		})
	}
}

func TestClassificationTier_CaseInsensitive(t *testing.T) {
	assert.Equal(t, TierPathogenic, ClassificationTier("PATHOGENIC"))
	assert.Equal(t, TierPathogenic, ClassificationTier("pathogenic"))
	assert.Equal(t, TierLikelyBenign, ClassificationTier("LIKELY BENIGN"))
	assert.Equal(t, ClassificationTier("benign"), ClassificationTier("BENIGN"))
}

func TestClassificationTier_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, TierPathogenic, ClassificationTier("  Pathogenic  "))
	assert.Equal(t, TierUnknown, ClassificationTier("   "))
}

func TestClassificationTier_VUSFallback(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"vus hot", TierVUSHigh},
		{"VUS (high)", TierVUSHigh},
		{"vus medium", TierVUSMedium},
		{"vus cold", TierVUSCold},
		{"vus-x", TierVUS},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassificationTier(tt.label))
		})
	}
}

func TestClassificationTier_Unrecognized(t *testing.T) {
	assert.Equal(t, TierUnknown, ClassificationTier("Foo"))
	assert.Equal(t, TierUnknown, ClassificationTier("not a label"))
}

func TestClassificationTier_TierRange(t *testing.T) {
	labels := []string{
		"Pathogenic", "Likely pathogenic", "VUS H", "VUS M", "VUS C",
		"VUS", "Likely benign", "Benign", "UNK", "", ".", "Foo", "vus warm",
	}
	for _, l := range labels {
		tier := ClassificationTier(l)
		assert.GreaterOrEqual(t, tier, TierPathogenic, "label %q", l)
		assert.LessOrEqual(t, tier, TierUnknown, "label %q", l)
	}
}
