package article

import "strings"

type tagClass uint8

const (
	classBlock tagClass = 1 << iota
	classList
	classListItem
	classSpaced
	classPreserve
	classBreak
)

// tagClasses drives line breaking. Tags missing from the table are inline
// wrappers.
var tagClasses = map[string]tagClass{
	"p":          classBlock | classSpaced,
	"h1":         classBlock | classSpaced,
	"h2":         classBlock | classSpaced,
	"h3":         classBlock | classSpaced,
	"h4":         classBlock,
	"h5":         classBlock,
	"h6":         classBlock,
	"blockquote": classBlock | classSpaced,
	"pre":        classBlock | classSpaced | classPreserve,
	"ul":         classBlock | classList,
	"ol":         classBlock | classList,
	"li":         classBlock | classListItem,
	"div":        classBlock,
	"section":    classBlock,
	"article":    classBlock,
	"header":     classBlock,
	"footer":     classBlock,
	"nav":        classBlock,
	"main":       classBlock,
	"aside":      classBlock,
	"figure":     classBlock,
	"figcaption": classBlock,
	"address":    classBlock,
	"details":    classBlock,
	"summary":    classBlock,
	"dl":         classBlock,
	"dt":         classBlock,
	"dd":         classBlock,
	"table":      classBlock,
	"tr":         classBlock,
	"hr":         classBlock,
	"code":       classPreserve,
	"br":         classBreak,
}

func classify(tag string) tagClass {
	return tagClasses[strings.ToLower(tag)]
}

func (c tagClass) has(flag tagClass) bool {
	return c&flag != 0
}

func preserving(stack []string) bool {
	for _, tag := range stack {
		if classify(tag).has(classPreserve) {
			return true
		}
	}
	return false
}

const bullet = "• "

// listItemPrefix indents two spaces per open list.
func listItemPrefix(depth int) string {
	return strings.Repeat("  ", depth) + bullet
}
