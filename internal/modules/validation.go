package modules

import "strings"

// ValidationName is the registry key of the validation module.
const ValidationName = "validation"

// Validation knows which HTML elements and attributes are obsolete and which
// elements may appear only once per document.
type Validation struct {
	obsoleteElements   map[string]bool
	obsoleteAttributes map[string]map[string]bool
	uniqueElements     []string
}

// NewValidation returns the validation module with the WHATWG obsolete lists.
func NewValidation() *Validation {
	v := &Validation{
		obsoleteElements:   make(map[string]bool),
		obsoleteAttributes: make(map[string]map[string]bool),
		uniqueElements:     []string{"title", "main"},
	}

	for _, el := range []string{
		"applet", "acronym", "bgsound", "dir", "frame", "frameset", "noframes",
		"isindex", "keygen", "listing", "menuitem", "nextid", "noembed",
		"plaintext", "rb", "rtc", "strike", "xmp", "basefont", "big", "blink",
		"center", "font", "marquee", "multicol", "nobr", "spacer", "tt",
	} {
		v.obsoleteElements[el] = true
	}

	obsolete := map[string][]string{
		"*":        {"align", "bgcolor"},
		"a":        {"charset", "coords", "name", "rev", "shape"},
		"body":     {"alink", "background", "link", "text", "vlink"},
		"br":       {"clear"},
		"html":     {"version"},
		"iframe":   {"frameborder", "longdesc", "marginheight", "marginwidth", "scrolling"},
		"img":      {"border", "hspace", "longdesc", "lowsrc", "name", "vspace"},
		"link":     {"charset", "rev", "target"},
		"meta":     {"scheme"},
		"script":   {"charset", "language"},
		"table":    {"border", "cellpadding", "cellspacing", "frame", "rules", "summary", "width"},
		"td":       {"abbr", "axis", "height", "nowrap", "scope", "valign", "width"},
		"th":       {"axis", "height", "nowrap", "valign", "width"},
		"tr":       {"char", "charoff", "valign"},
		"ul":       {"compact", "type"},
		"hr":       {"noshade", "size", "width"},
		"object":   {"archive", "classid", "code", "codebase", "codetype", "declare", "standby"},
		"head":     {"profile"},
		"param":    {"type", "valuetype"},
		"area":     {"nohref"},
		"col":      {"char", "charoff", "valign", "width"},
		"colgroup": {"char", "charoff", "valign", "width"},
	}
	for el, attrs := range obsolete {
		set := make(map[string]bool, len(attrs))
		for _, a := range attrs {
			set[a] = true
		}
		v.obsoleteAttributes[el] = set
	}
	return v
}

// Name implements Module.
func (v *Validation) Name() string {
	return ValidationName
}

// IsObsoleteElement reports whether tag is obsolete or non-conforming.
func (v *Validation) IsObsoleteElement(tag string) bool {
	return v.obsoleteElements[strings.ToLower(tag)]
}

// IsObsoleteAttribute reports whether attr is obsolete on tag.
// Attributes obsolete on every element are listed under "*".
func (v *Validation) IsObsoleteAttribute(tag, attr string) bool {
	tag, attr = strings.ToLower(tag), strings.ToLower(attr)
	return v.obsoleteAttributes["*"][attr] || v.obsoleteAttributes[tag][attr]
}

// UniqueElements returns the elements that may appear at most once.
func (v *Validation) UniqueElements() []string {
	return append([]string(nil), v.uniqueElements...)
}
