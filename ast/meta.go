package ast

import (
	"fmt"
	"strings"
)

type MetaKey uint8

const (
	MetaName MetaKey = iota + 1
	MetaTitle
	MetaFontFamily
	MetaFontSize
	MetaFontColor
	MetaBackgroundColor
	MetaAllowHTML
	MetaTextFontSize
	MetaTextColor
	MetaH1FontSize
	MetaH1Color
	MetaH2FontSize
	MetaH2Color
	MetaH3FontSize
	MetaH3Color
	MetaH4FontSize
	MetaH4Color
)

// MetaValue says which field of a MetaProperty a key uses.
type MetaValue uint8

const (
	MetaText MetaValue = iota
	MetaSize
	MetaColor
	MetaBool
)

type metaKeyInfo struct {
	name  string
	value MetaValue
}

var metaKeys = map[MetaKey]metaKeyInfo{
	MetaName:            {"name", MetaText},
	MetaTitle:           {"title", MetaText},
	MetaFontFamily:      {"font-family", MetaText},
	MetaFontSize:        {"font-size", MetaSize},
	MetaFontColor:       {"font-color", MetaColor},
	MetaBackgroundColor: {"background-color", MetaColor},
	MetaAllowHTML:       {"allow-html", MetaBool},
	MetaTextFontSize:    {"text-font-size", MetaSize},
	MetaTextColor:       {"text-color", MetaColor},
	MetaH1FontSize:      {"h1-font-size", MetaSize},
	MetaH1Color:         {"h1-color", MetaColor},
	MetaH2FontSize:      {"h2-font-size", MetaSize},
	MetaH2Color:         {"h2-color", MetaColor},
	MetaH3FontSize:      {"h3-font-size", MetaSize},
	MetaH3Color:         {"h3-color", MetaColor},
	MetaH4FontSize:      {"h4-font-size", MetaSize},
	MetaH4Color:         {"h4-color", MetaColor},
}

var metaKeysByName = func() map[string]MetaKey {
	m := make(map[string]MetaKey, len(metaKeys))
	for k, info := range metaKeys {
		m[info.name] = k
	}
	return m
}()

func LookupMetaKey(name string) (MetaKey, bool) {
	k, ok := metaKeysByName[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

func (k MetaKey) String() string {
	if info, ok := metaKeys[k]; ok {
		return info.name
	}
	return fmt.Sprintf("MetaKey(%d)", k)
}

func (k MetaKey) Value() MetaValue {
	return metaKeys[k].value
}

// MetaProperty is a document level setting; only the field matching
// Key.Value() is meaningful.
type MetaProperty struct {
	Key   MetaKey
	Text  string
	Size  uint8
	Color Color
	Flag  bool
}

var cssUnsafe = strings.NewReplacer("<", "", ">", "", "{", "", "}", "", ";", "")

func styleTag(selector, rule string) string {
	return fmt.Sprintf("<style>%s { %s; }</style>", selector, rule)
}

// HTML renders the head fragment for the property. Name and allow-html
// produce nothing.
func (m MetaProperty) HTML() string {
	switch m.Key {
	case MetaTitle:
		return "<title>" + escape(m.Text) + "</title>"
	case MetaFontFamily:
		return styleTag("*", "font-family: "+cssUnsafe.Replace(m.Text))
	case MetaFontSize:
		return styleTag("span", fmt.Sprintf("font-size: %dpx", m.Size))
	case MetaFontColor:
		return styleTag("span", "color: "+m.Color.String())
	case MetaBackgroundColor:
		return styleTag("html, body, main", "background-color: "+m.Color.String())
	case MetaTextFontSize:
		return styleTag("body", fmt.Sprintf("font-size: %dpx !important", m.Size))
	case MetaTextColor:
		return styleTag("body", "color: "+m.Color.String())
	case MetaH1FontSize, MetaH2FontSize, MetaH3FontSize, MetaH4FontSize:
		return styleTag(headingClass(m.Key), fmt.Sprintf("font-size: %dpx !important", m.Size))
	case MetaH1Color, MetaH2Color, MetaH3Color, MetaH4Color:
		return styleTag(headingClass(m.Key), "color: "+m.Color.String())
	default:
		return ""
	}
}

func headingClass(k MetaKey) string {
	switch k {
	case MetaH1FontSize, MetaH1Color:
		return ".h1size"
	case MetaH2FontSize, MetaH2Color:
		return ".h2size"
	case MetaH3FontSize, MetaH3Color:
		return ".h3size"
	default:
		return ".h4size"
	}
}
