package mailscout

// EmailRow is one (site, email) pair, the flattened unit of output.
type EmailRow struct {
	Website string `json:"website"`
	Email   string `json:"email"`
}

// SiteEmailMap maps site URLs to the addresses found on them.
// Sites keep the order in which they were first set. A site with an empty
// set is never present.
type SiteEmailMap struct {
	order []string
	sets  map[string]EmailSet
}

// NewSiteEmailMap returns an empty map.
func NewSiteEmailMap() *SiteEmailMap {
	return &SiteEmailMap{sets: make(map[string]EmailSet)}
}

// Set records the addresses found on site. An empty set is ignored.
// Setting a site again replaces its set but keeps its position.
func (m *SiteEmailMap) Set(site string, emails EmailSet) {
	if emails.Len() == 0 {
		return
	}
	if _, ok := m.sets[site]; !ok {
		m.order = append(m.order, site)
	}
	m.sets[site] = emails
}

// Get returns the addresses recorded for site.
func (m *SiteEmailMap) Get(site string) (EmailSet, bool) {
	s, ok := m.sets[site]
	return s, ok
}

// Sites returns the sites in insertion order.
func (m *SiteEmailMap) Sites() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of sites.
func (m *SiteEmailMap) Len() int {
	return len(m.order)
}

// Rows flattens the map into one row per (site, email) pair. Sites appear in
// insertion order and each site's addresses in lexical order.
func (m *SiteEmailMap) Rows() []EmailRow {
	var rows []EmailRow
	for _, site := range m.order {
		for _, email := range m.sets[site].Sorted() {
			rows = append(rows, EmailRow{Website: site, Email: email})
		}
	}
	return rows
}
