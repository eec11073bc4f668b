package backlog

import (
	"strconv"
	"strings"
	"time"

	"bkl/internal/pattern"
)

// Parse turns raw markdown into a Backlog tree. It is total and pure: any
// input produces a document, malformed constructs degrade to raw/overflow
// content instead of failing, and no input byte is dropped — every line ends
// up in the header, the TOC, an entry's structured fields, or a verbatim
// block.
func Parse(src string) *Backlog {
	lines := splitKeepEnds(src)
	doc := &Backlog{}

	idx := 0

	// Preamble: everything before the first "##" heading.
	var header strings.Builder

	for idx < len(lines) && !isSectionHeader(lines[idx].text) {
		header.WriteString(lines[idx].raw)
		idx++
	}

	doc.Header = header.String()

	for idx < len(lines) {
		headerLine := lines[idx]
		idx++

		start := idx
		for idx < len(lines) && !isSectionHeader(lines[idx].text) {
			idx++
		}

		body := lines[start:idx]

		m := pattern.SectionHeader.FindStringSubmatch(headerLine.text)
		title := strings.TrimSpace(pattern.TypeComment.ReplaceAllString(m[2], ""))

		if doc.TableOfContents == "" && len(doc.Sections) == 0 && pattern.IsTOCTitle(title) {
			doc.TableOfContents = headerLine.raw + joinRaw(body)
			continue
		}

		section := Section{
			Title:     title,
			RawHeader: strings.TrimRight(headerLine.text, " \t"),
		}
		if m[1] != "" {
			section.ID, _ = strconv.Atoi(m[1])
		}

		if pattern.IsRawSectionTitle(title) {
			section.Entries = []Entry{&RawSection{Title: title, Content: joinRaw(body)}}
		} else {
			section.Entries = parseEntries(body)
		}

		doc.Sections = append(doc.Sections, section)
	}

	return doc
}

// parseEntries splits a section body at item headers. Content before the
// first header is preserved as an anonymous RawSection entry.
func parseEntries(body []line) []Entry {
	var entries []Entry

	add := func(e Entry) {
		switch v := e.(type) {
		case *Item:
			v.SectionIndex = len(entries)
		case *TableGroup:
			v.SectionIndex = len(entries)
		case *RawSection:
			v.SectionIndex = len(entries)
		}

		entries = append(entries, e)
	}

	idx := 0

	start := idx
	for idx < len(body) && !isItemHeader(body[idx].text) {
		idx++
	}

	if preamble := joinRaw(body[start:idx]); strings.TrimSpace(preamble) != "" {
		add(&RawSection{Content: preamble})
	}

	for idx < len(body) {
		headerLine := body[idx]
		idx++

		start = idx
		for idx < len(body) && !isItemHeader(body[idx].text) {
			idx++
		}

		itemBody := body[start:idx]
		raw := headerLine.raw + joinRaw(itemBody)

		m := pattern.ItemHeader.FindStringSubmatch(headerLine.text)
		if m[3] != "" {
			add(parseTableGroup(m, itemBody, raw))
		} else {
			add(parseItem(m, itemBody, raw))
		}
	}

	return entries
}

// Body-scanning modes: which list field a plain bullet currently feeds.
const (
	modeDescription = "description"
	modeUserStory   = "userStory"
	modeSpecs       = "specs"
	modeRepro       = "reproduction"
	modeDeps        = "dependencies"
	modeConstraints = "constraints"
	modeScreens     = "screens"
	modeCriteria    = "criteria"
	modeNone        = ""
)

// parseItem builds one Item from its header match and body lines.
// Prose directly under the header is the description; metadata keys switch
// the target field for subsequent bullets; anything unrecognized lands in
// the overflow bucket.
func parseItem(m []string, body []line, raw string) *Item {
	item := &Item{
		ID:          m[1] + "-" + m[2],
		Type:        m[1],
		RawMarkdown: raw,
	}
	item.Number, _ = strconv.Atoi(m[2])
	item.Emoji, item.Title = splitLeadingEmoji(m[4])

	var description, story []string

	mode := modeDescription

	for _, ln := range body {
		text := ln.text
		if strings.TrimSpace(text) == "" {
			continue
		}

		if shots := pattern.Screenshot.FindAllStringSubmatch(text, -1); shots != nil {
			for _, s := range shots {
				item.Screenshots = append(item.Screenshots, screenshotRef(s[1], s[2]))
			}

			continue
		}

		if km := pattern.Metadata.FindStringSubmatch(text); km != nil {
			mode = applyMetadata(item, km[1], km[2], &description, &story)
			continue
		}

		if cb := pattern.Checkbox.FindStringSubmatch(text); cb != nil {
			item.Criteria = append(item.Criteria, Criterion{
				Text:    cb[2],
				Checked: cb[1] == "x" || cb[1] == "X",
			})

			continue
		}

		if bq := pattern.Blockquote.FindStringSubmatch(text); bq != nil {
			story = append(story, bq[1])
			continue
		}

		if li := pattern.ListItem.FindStringSubmatch(text); li != nil {
			if target := listTarget(item, mode); target != nil {
				*target = append(*target, li[1])
			} else {
				item.Overflow = append(item.Overflow, text)
			}

			continue
		}

		if mode == modeDescription {
			description = append(description, strings.TrimSpace(text))
			continue
		}

		item.Overflow = append(item.Overflow, text)
	}

	if item.Description == "" {
		item.Description = strings.Join(description, "\n")
	} else if len(description) > 0 {
		item.Description += "\n" + strings.Join(description, "\n")
	}

	item.UserStory = strings.TrimSpace(strings.Join(story, "\n"))

	return item
}

// applyMetadata routes one "**Key:** value" line into the item and returns
// the list mode subsequent bullets should feed. Values failing an enum check
// go to overflow rather than poisoning the field.
func applyMetadata(item *Item, key, value string, description, story *[]string) string {
	switch foldKey(key) {
	case "description":
		if value != "" {
			*description = append(*description, value)
		}

		return modeDescription
	case "user story", "story":
		if value != "" {
			*story = append(*story, value)
		}

		return modeUserStory
	case "composant", "component", "module":
		item.Component = value
		return modeNone
	case "severite", "severity":
		sev := strings.ToUpper(value)
		if pattern.Severity.MatchString(sev) {
			item.Severity = sev
		} else {
			item.Overflow = append(item.Overflow, "**"+key+":** "+value)
		}

		return modeNone
	case "priorite", "priority":
		if p, ok := canonicalPriority(value); ok {
			item.Priority = p
		} else {
			item.Overflow = append(item.Overflow, "**"+key+":** "+value)
		}

		return modeNone
	case "effort", "estimation":
		if e, ok := canonicalEffort(value); ok {
			item.Effort = e
		} else {
			item.Overflow = append(item.Overflow, "**"+key+":** "+value)
		}

		return modeNone
	case "specs", "spec", "specifications":
		appendNonEmpty(&item.Specs, value)
		return modeSpecs
	case "reproduction", "repro", "etapes de reproduction":
		appendNonEmpty(&item.Reproduction, value)
		return modeRepro
	case "dependances", "dependencies":
		appendNonEmpty(&item.Dependencies, value)
		return modeDeps
	case "contraintes", "constraints":
		appendNonEmpty(&item.Constraints, value)
		return modeConstraints
	case "ecrans", "ecran", "screens":
		appendNonEmpty(&item.Screens, value)
		return modeScreens
	case "criteres d'acceptation", "criteres", "criteria", "acceptance criteria":
		return modeCriteria
	default:
		item.Overflow = append(item.Overflow, "**"+key+":** "+value)
		return modeNone
	}
}

// listTarget maps a scanning mode to the list field bullets feed, nil when
// bullets are not expected.
func listTarget(item *Item, mode string) *[]string {
	switch mode {
	case modeSpecs:
		return &item.Specs
	case modeRepro:
		return &item.Reproduction
	case modeDeps:
		return &item.Dependencies
	case modeConstraints:
		return &item.Constraints
	case modeScreens:
		return &item.Screens
	default:
		return nil
	}
}

// parseTableGroup builds a TableGroup from a ranged header and the markdown
// table beneath it. Rows whose first cell is a well-formed id also become
// compact items.
func parseTableGroup(m []string, body []line, raw string) *TableGroup {
	group := &TableGroup{
		Type:        m[1],
		RawMarkdown: raw,
	}
	group.FromNum, _ = strconv.Atoi(m[2])
	group.ToNum, _ = strconv.Atoi(m[3])
	_, group.Title = splitLeadingEmoji(m[4])

	for _, ln := range body {
		if !pattern.TableRow.MatchString(ln.text) {
			continue
		}

		if pattern.TableSeparator.MatchString(ln.text) {
			continue
		}

		cells := splitCells(ln.text)
		if group.Columns == nil {
			group.Columns = cells
			continue
		}

		group.Rows = append(group.Rows, cells)

		if it, ok := compactItem(cells, ln.raw); ok {
			group.Items = append(group.Items, it)
		}
	}

	return group
}

// compactItem derives an Item from a table row when the first cell is a
// well-formed id.
func compactItem(cells []string, raw string) (Item, bool) {
	if len(cells) == 0 {
		return Item{}, false
	}

	id := strings.TrimSpace(strings.Trim(cells[0], "`"))

	code, numStr, ok := strings.Cut(id, "-")
	if !ok || !pattern.TypeCode.MatchString(code) {
		return Item{}, false
	}

	num, err := strconv.Atoi(numStr)
	if err != nil {
		return Item{}, false
	}

	item := Item{
		ID:          id,
		Type:        code,
		Number:      num,
		RawMarkdown: raw,
	}
	if len(cells) > 1 {
		item.Emoji, item.Title = splitLeadingEmoji(cells[1])
	}

	return item, true
}

func splitCells(text string) []string {
	inner := strings.TrimSpace(text)
	inner = strings.TrimPrefix(inner, "|")
	inner = strings.TrimSuffix(inner, "|")

	parts := strings.Split(inner, "|")
	cells := make([]string, len(parts))

	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}

	return cells
}

// screenshotRef builds a Screenshot, recovering a capture timestamp from the
// filename when one is embedded.
func screenshotRef(alt, file string) Screenshot {
	shot := Screenshot{File: file, Alt: alt}

	if sm := pattern.ScreenshotStamp.FindStringSubmatch(file); sm != nil {
		if ts, err := time.Parse("2006-01-02 15-04-05", sm[1]+" "+sm[2]); err == nil {
			shot.Taken = ts
		}
	}

	return shot
}

func splitLeadingEmoji(title string) (emoji, rest string) {
	title = strings.TrimSpace(title)
	if m := pattern.LeadingEmoji.FindStringSubmatch(title); m != nil {
		return m[1], strings.TrimSpace(title[len(m[0]):])
	}

	return "", title
}

func canonicalPriority(value string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "haute":
		return "Haute", true
	case "moyenne":
		return "Moyenne", true
	case "faible":
		return "Faible", true
	default:
		return "", false
	}
}

func canonicalEffort(value string) (string, bool) {
	upper := strings.ToUpper(strings.TrimSpace(value))
	switch upper {
	case "XS", "S", "M", "L", "XL":
		return upper, true
	default:
		return "", false
	}
}

func appendNonEmpty(list *[]string, value string) {
	if value != "" {
		*list = append(*list, value)
	}
}

// foldKey normalizes a metadata key for matching: lowercase, diacritics
// stripped, surrounding space trimmed. Hand-edited files mix "Sévérité",
// "Severite" and "severity"; they all mean the same field.
func foldKey(key string) string {
	lower := strings.ToLower(strings.TrimSpace(key))

	return strings.Map(func(r rune) rune {
		switch r {
		case 'à', 'â', 'ä':
			return 'a'
		case 'é', 'è', 'ê', 'ë':
			return 'e'
		case 'î', 'ï':
			return 'i'
		case 'ô', 'ö':
			return 'o'
		case 'ù', 'û', 'ü':
			return 'u'
		case 'ç':
			return 'c'
		default:
			return r
		}
	}, lower)
}

// line pairs a verbatim source line (terminator included) with its trimmed
// text for matching, so raw slices can be re-emitted byte-identically.
type line struct {
	raw  string
	text string
}

// splitKeepEnds splits src into lines, each keeping its own terminator.
// Both LF and CRLF survive untouched in raw; text has the terminator
// stripped.
func splitKeepEnds(src string) []line {
	var lines []line

	for len(src) > 0 {
		end := strings.IndexByte(src, '\n')
		if end < 0 {
			lines = append(lines, line{raw: src, text: strings.TrimRight(src, "\r")})
			break
		}

		raw := src[:end+1]
		lines = append(lines, line{raw: raw, text: strings.TrimRight(raw, "\r\n")})
		src = src[end+1:]
	}

	return lines
}

func joinRaw(lines []line) string {
	var b strings.Builder
	for _, ln := range lines {
		b.WriteString(ln.raw)
	}

	return b.String()
}

func isSectionHeader(text string) bool {
	return pattern.SectionHeader.MatchString(text)
}

func isItemHeader(text string) bool {
	return pattern.ItemHeader.MatchString(text)
}
