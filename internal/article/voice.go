package article

// DefaultBrandVoice is the fallback marketing context consulted when a brief
// carries no brand voice of its own. There is exactly one fallback table;
// agents must not define their own literals.
var DefaultBrandVoice = BrandVoice{
	ToneTraits: []string{"Professional", "Clear", "Helpful"},
	Audience:   "General business readers",
}
