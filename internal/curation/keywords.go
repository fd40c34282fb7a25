package curation

import "strings"

// KeywordTable holds the weighted keyword sets driving the rule-based
// scorer. All sets are lowercased at construction and read-only after.
type KeywordTable struct {
	Technology []string // +20 per distinct match, capped at +60
	Industry   []string // +5 per distinct match, capped at +20
	Negative   []string // -10 per match, uncapped
}

// NewKeywordTable lowercases and trims every term.
func NewKeywordTable(technology, industry, negative []string) KeywordTable {
	return KeywordTable{
		Technology: lowerAll(technology),
		Industry:   lowerAll(industry),
		Negative:   lowerAll(negative),
	}
}

func lowerAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			out = append(out, term)
		}
	}
	return out
}

// DefaultEntities mirrors the tracked company/product registry of the
// grain-tech landscape.
func DefaultEntities() []Entity {
	return []Entity{
		{ID: "agsure", Aliases: []string{"AgSure"}},
		{ID: "cgrain", Aliases: []string{"Cgrain"}},
		{ID: "cropify", Aliases: []string{"Cropify"}},
		{ID: "deimos", Aliases: []string{"Deimos Laboratory"}},
		{ID: "easyodm", Aliases: []string{"EasyODM"}},
		{ID: "foss", Aliases: []string{"FOSS", "EyeFoss"}},
		{ID: "gomicro", Aliases: []string{"GoMicro"}},
		{ID: "grain-discovery", Aliases: []string{"Grain Discovery"}},
		{ID: "grainkart", Aliases: []string{"Grainkart", "GrainScope"}},
		{ID: "grainsense", Aliases: []string{"GrainSense"}},
		{ID: "ground-truth-ag", Aliases: []string{"Ground Truth Ag"}},
		{ID: "inarix", Aliases: []string{"Inarix", "PocketLab"}},
		{ID: "keyetech", Aliases: []string{"Keyetech"}},
		{ID: "nebulaa", Aliases: []string{"Nebulaa", "MATT Grain"}},
		{ID: "platypus-vision", Aliases: []string{"Platypus Vision"}},
		{ID: "qualysense", Aliases: []string{"QualySense", "QSorter"}},
		{ID: "shandong-hongsheng", Aliases: []string{"Shandong Hongsheng"}},
		{ID: "supergeo", Aliases: []string{"SuperGeo"}},
		{ID: "upjao", Aliases: []string{"Upjao"}},
		{ID: "vibe-imaging", Aliases: []string{"Vibe Imaging"}},
		{ID: "videometer", Aliases: []string{"Videometer", "SeedLab"}},
		{ID: "zeutec", Aliases: []string{"Zeutec", "SpectraAlyzer"}},
		{ID: "zoomagri", Aliases: []string{"ZoomAgri"}},
	}
}

// DefaultKeywords seeds the scoring table with the grain-tech terms the
// digest tracks.
func DefaultKeywords() KeywordTable {
	return NewKeywordTable(
		[]string{
			"grain grading", "grain quality", "grain inspection",
			"wheat testing", "barley testing", "NIR analysis",
			"machine vision", "kernel analysis", "grain sorting",
			"cereal inspection", "grain analyzer", "seed analysis",
		},
		[]string{
			"grain industry", "grain technology", "agriculture AI",
			"crop quality", "protein content", "moisture testing",
			"grain storage", "grain handling", "Canadian Grain Commission",
			"grain trade", "harvest quality", "wheat", "barley", "oats",
			"canola", "pulse crops", "oilseeds", "harvest",
			"farming technology",
		},
		[]string{
			"wood grain", "film grain", "grain leather",
			"grain of salt", "grain of truth", "against the grain",
			"recipe", "horoscope", "cryptocurrency", "casino",
		},
	)
}

// DefaultTrustedSources lists feeds considered authoritative for the
// vertical; matching earns the source-trust bonus.
func DefaultTrustedSources() []string {
	return []string{
		"GrainsWest", "Grain Central", "Ag Funder News", "Future Farming",
		"World Grain", "Protein Industries Canada",
	}
}

// DefaultCompanyCategory is the category label earning the category bonus.
const DefaultCompanyCategory = "company"
