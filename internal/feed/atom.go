package feed

import (
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"
)

// contributorKey holds an Atom entry's first contributor in gofeed.Item.Custom.
const contributorKey = "remy:contributor"

// atomTranslator keeps the first contributor of each Atom entry, which the
// default translation drops.
type atomTranslator struct {
	gofeed.DefaultAtomTranslator
}

func (t *atomTranslator) Translate(feed interface{}) (*gofeed.Feed, error) {
	out, err := t.DefaultAtomTranslator.Translate(feed)
	if err != nil {
		return nil, err
	}
	af, ok := feed.(*atom.Feed)
	if !ok || len(af.Entries) != len(out.Items) {
		return out, nil
	}
	for i, entry := range af.Entries {
		item := out.Items[i]
		if entry == nil || item == nil {
			continue
		}
		name := firstContributor(entry.Contributors)
		if name == "" {
			continue
		}
		if item.Custom == nil {
			item.Custom = make(map[string]string, 1)
		}
		item.Custom[contributorKey] = name
	}
	return out, nil
}

func firstContributor(people []*atom.Person) string {
	for _, p := range people {
		if p == nil {
			continue
		}
		if name := strings.TrimSpace(p.Name); name != "" {
			return name
		}
	}
	return ""
}

func newParser() *gofeed.Parser {
	p := gofeed.NewParser()
	p.AtomTranslator = &atomTranslator{}
	return p
}
