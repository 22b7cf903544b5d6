package tmtheme

// StripBackground returns a copy of doc without a theme-wide background,
// so the caller's own background stays authoritative. A global rule left
// with no settings is dropped. Scoped rules keep their backgrounds.
func StripBackground(doc *Document) *Document {
	out := doc.Clone()
	rules := out.Rules[:0]
	for _, rule := range out.Rules {
		if rule.IsGlobal() {
			delete(rule.Settings, KeyBackground)
			if len(rule.Settings) == 0 {
				continue
			}
		}
		rules = append(rules, rule)
	}
	out.Rules = rules
	return out
}

// HasBackground reports whether any global rule declares a background.
func HasBackground(doc *Document) bool {
	for _, rule := range doc.Rules {
		if !rule.IsGlobal() {
			continue
		}
		if _, ok := rule.Settings[KeyBackground]; ok {
			return true
		}
	}
	return false
}
