package domain

type NarrativeCategory string

const (
	NarrativeInsights NarrativeCategory = "insights"
	NarrativeRisks    NarrativeCategory = "risks"
	NarrativeActions  NarrativeCategory = "actions"
	NarrativeMethod   NarrativeCategory = "method"
)

// NarrativeCategories lists the block categories in presentation order.
var NarrativeCategories = []NarrativeCategory{
	NarrativeInsights,
	NarrativeRisks,
	NarrativeActions,
	NarrativeMethod,
}

type NarrativeBlock struct {
	Category NarrativeCategory
	Lines    []string
}

// Narrative is the full set of blocks keyed by category.
type Narrative struct {
	Insights NarrativeBlock
	Risks    NarrativeBlock
	Actions  NarrativeBlock
	Method   NarrativeBlock
}

func (n Narrative) Block(category NarrativeCategory) NarrativeBlock {
	switch category {
	case NarrativeInsights:
		return n.Insights
	case NarrativeRisks:
		return n.Risks
	case NarrativeActions:
		return n.Actions
	case NarrativeMethod:
		return n.Method
	}
	return NarrativeBlock{Category: category}
}
