package classifier

import "strings"

// VerdictKind is the three-way decision derived from classifier text.
type VerdictKind string

const (
	VerdictTree  VerdictKind = "TREE"
	VerdictPlant VerdictKind = "PLANT"
	VerdictNone  VerdictKind = "NONE"
)

// Rewards granted per accepted verdict.
const (
	rewardTree  = 3
	rewardPlant = 1
)

// Verdict is the parsed planting-verification outcome.
type Verdict struct {
	Kind   VerdictKind
	Reason string
}

// Accepted reports whether the verdict grants a reward.
func (v Verdict) Accepted() bool {
	return v.Kind == VerdictTree || v.Kind == VerdictPlant
}

// Reward returns the reward amount for the verdict (0 for NONE).
func (v Verdict) Reward() int {
	switch v.Kind {
	case VerdictTree:
		return rewardTree
	case VerdictPlant:
		return rewardPlant
	default:
		return 0
	}
}

// ParseVerdict extracts a verdict from raw model output. Matching is a
// case-insensitive substring search; TREE takes precedence over PLANT, and
// anything else is NONE. Surrounding prose is ignored.
func ParseVerdict(text string) Verdict {
	upper := strings.ToUpper(text)

	v := Verdict{Kind: VerdictNone, Reason: parseReason(text)}
	switch {
	case strings.Contains(upper, "TYPE: TREE"):
		v.Kind = VerdictTree
	case strings.Contains(upper, "TYPE: PLANT"):
		v.Kind = VerdictPlant
	}

	return v
}

// parseReason returns the text following the first "REASON:" marker,
// trimmed to the end of its line. Empty when no marker is present.
func parseReason(text string) string {
	upper := strings.ToUpper(text)
	i := strings.Index(upper, "REASON:")
	if i < 0 {
		return ""
	}

	rest := text[i+len("REASON:"):]
	if j := strings.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}
