package article

import (
	"net/url"
	"strings"
)

type readerFilterRuleSet struct {
	skipParagraphContains []string
	skipParagraphEquals   []string
	endBeforeContains     []string
	endBeforeEquals       []string
	replaceAll            map[string]string
}

// Cleanup drops boilerplate paragraphs that known sites append to their feed
// bodies. Paragraphs are the runs of lines between spacers.
func Cleanup(lines []Line, articleURL string) []Line {
	if len(lines) == 0 {
		return nil
	}
	rules := readerFilterRules(articleURL)
	if rules.empty() {
		return lines
	}
	if len(rules.replaceAll) > 0 {
		lines = replaceInSegments(lines, rules.replaceAll)
	}
	paragraphs := paragraphsFromLines(lines)
	if len(paragraphs) == 0 {
		return nil
	}
	kept := make([][]Line, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		plain := normalizeRuleText(paragraphText(paragraph))
		if plain == "" {
			continue
		}
		if matchesAnyContains(plain, rules.endBeforeContains) || matchesAnyEquals(plain, rules.endBeforeEquals) {
			break
		}
		if matchesAnyContains(plain, rules.skipParagraphContains) || matchesAnyEquals(plain, rules.skipParagraphEquals) {
			continue
		}
		kept = append(kept, paragraph)
	}
	if len(kept) == 0 {
		return nil
	}
	out := make([]Line, 0, len(lines))
	for _, p := range kept {
		out = append(out, p...)
		out = append(out, Line{Spacer: true})
	}
	return out
}

func readerFilterRules(articleURL string) readerFilterRuleSet {
	host := strings.ToLower(strings.TrimSpace(articleURL))
	if parsed, err := url.Parse(articleURL); err == nil && parsed.Host != "" {
		host = strings.ToLower(parsed.Hostname())
	}
	rules := readerFilterRuleSet{}
	switch {
	case strings.Contains(host, "wikipedia.org"):
		rules.replaceAll = map[string]string{"[edit]": ""}
		rules.endBeforeEquals = []string{"references", "footnotes", "see also", "notes"}
	case strings.Contains(host, "nytimes.com"):
		rules.skipParagraphContains = []string{"credit:", "this is a developing story. check back for updates."}
		rules.skipParagraphEquals = []string{"credit", "image"}
	case strings.Contains(host, "wired.com"), strings.Contains(host, "wired.co.uk"):
		rules.skipParagraphContains = []string{"read more:", "do you use social media regularly? take our short survey."}
		rules.endBeforeEquals = []string{"more great wired stories"}
	case strings.Contains(host, "theguardian.com"):
		rules.skipParagraphContains = []string{"photograph:"}
	case strings.Contains(host, "arstechnica.com"):
		rules.skipParagraphContains = []string{"enlarge/", "this story originally appeared on"}
	case strings.Contains(host, "axios.com"):
		rules.skipParagraphContains = []string{
			"sign up for our daily briefing",
			"download for free.",
			"sign up for free.",
			"axios on your phone",
		}
	}
	return rules
}

func (r readerFilterRuleSet) empty() bool {
	return len(r.skipParagraphContains) == 0 && len(r.skipParagraphEquals) == 0 &&
		len(r.endBeforeContains) == 0 && len(r.endBeforeEquals) == 0 && len(r.replaceAll) == 0
}

func replaceInSegments(lines []Line, replacements map[string]string) []Line {
	out := make([]Line, len(lines))
	for i, line := range lines {
		if line.Spacer {
			out[i] = line
			continue
		}
		segments := make([]Segment, 0, len(line.Segments))
		for _, seg := range line.Segments {
			for old, newVal := range replacements {
				seg.Text = strings.ReplaceAll(seg.Text, old, newVal)
			}
			segments = append(segments, seg)
		}
		out[i] = Line{Segments: segments}
	}
	return out
}

func paragraphsFromLines(lines []Line) [][]Line {
	paragraphs := make([][]Line, 0, 8)
	current := make([]Line, 0, 4)
	for _, line := range lines {
		if line.Spacer || strings.TrimSpace(line.Text()) == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, current)
				current = make([]Line, 0, 4)
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, current)
	}
	return paragraphs
}

func paragraphText(paragraph []Line) string {
	parts := make([]string, 0, len(paragraph))
	for _, line := range paragraph {
		parts = append(parts, line.Text())
	}
	return strings.Join(parts, " ")
}

func normalizeRuleText(s string) string {
	s = strings.ToLower(s)
	for _, prefix := range []string{"•", "-", "—", ">", "#"} {
		s = strings.TrimLeft(s, " ")
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

func matchesAnyContains(text string, needles []string) bool {
	for _, needle := range needles {
		if needle == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(strings.TrimSpace(needle))) {
			return true
		}
	}
	return false
}

func matchesAnyEquals(text string, candidates []string) bool {
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if text == strings.ToLower(strings.TrimSpace(candidate)) {
			return true
		}
	}
	return false
}
