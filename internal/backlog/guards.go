package backlog

// Type guards discriminating the Entry union. Downstream consumers branch on
// entry shape through these instead of ad-hoc type assertions, so extending
// the union has one obvious place to stay exhaustive.

// AsItem returns the entry as an *Item when it is one.
func AsItem(e Entry) (*Item, bool) {
	it, ok := e.(*Item)
	return it, ok
}

// AsTableGroup returns the entry as a *TableGroup when it is one.
func AsTableGroup(e Entry) (*TableGroup, bool) {
	tg, ok := e.(*TableGroup)
	return tg, ok
}

// AsRawSection returns the entry as a *RawSection when it is one.
func AsRawSection(e Entry) (*RawSection, bool) {
	rs, ok := e.(*RawSection)
	return rs, ok
}
