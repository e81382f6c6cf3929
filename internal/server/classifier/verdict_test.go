package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantKind   VerdictKind
		wantReward int
	}{
		{
			name:       "tree with reason",
			text:       "TYPE: TREE\nREASON: fresh soil",
			wantKind:   VerdictTree,
			wantReward: 3,
		},
		{
			name:       "plant",
			text:       "TYPE: PLANT\nREASON: young seedling in a pot",
			wantKind:   VerdictPlant,
			wantReward: 1,
		},
		{
			name:       "explicit no",
			text:       "TYPE: NO\nREASON: no plant visible",
			wantKind:   VerdictNone,
			wantReward: 0,
		},
		{
			name:       "lowercase tree",
			text:       "type: tree\nreason: looks freshly planted",
			wantKind:   VerdictTree,
			wantReward: 3,
		},
		{
			name:       "mixed case plant",
			text:       "Type: Plant",
			wantKind:   VerdictPlant,
			wantReward: 1,
		},
		{
			name:       "tree wins over plant regardless of order",
			text:       "TYPE: PLANT maybe, but really TYPE: TREE",
			wantKind:   VerdictTree,
			wantReward: 3,
		},
		{
			name:       "surrounding prose ignored",
			text:       "Sure! Here is my assessment.\n\nTYPE: TREE\nREASON: sapling with fresh soil\nHope this helps.",
			wantKind:   VerdictTree,
			wantReward: 3,
		},
		{
			name:       "free text without marker",
			text:       "I can see a bicycle in this image.",
			wantKind:   VerdictNone,
			wantReward: 0,
		},
		{
			name:       "empty response",
			text:       "",
			wantKind:   VerdictNone,
			wantReward: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ParseVerdict(tt.text)
			assert.Equal(t, tt.wantKind, v.Kind)
			assert.Equal(t, tt.wantReward, v.Reward())
			assert.Equal(t, tt.wantReward > 0, v.Accepted())
		})
	}
}

func TestParseVerdict_Reason(t *testing.T) {
	v := ParseVerdict("TYPE: TREE\nREASON: fresh soil around the trunk\nextra line")
	assert.Equal(t, "fresh soil around the trunk", v.Reason)

	v = ParseVerdict("TYPE: NO")
	assert.Equal(t, "", v.Reason)

	v = ParseVerdict("reason:   trailing spaces   ")
	assert.Equal(t, "trailing spaces", v.Reason)
}
