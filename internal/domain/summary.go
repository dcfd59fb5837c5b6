package domain

// Field names in the JSON tags follow the legacy FocoZero boletim
// vocabulary; the mobile front-end still consumes them verbatim.

// TypeCounts per-property-type counters (visits or properties).
// r=residência, c=comércio, tb=terreno baldio, pe=ponto estratégico,
// out=outros.
type TypeCounts struct {
	R   int `json:"r"`
	C   int `json:"c"`
	TB  int `json:"tb"`
	PE  int `json:"pe"`
	Out int `json:"out"`
}

// Add increments the counter for the given property type.
func (t *TypeCounts) Add(ptype string, n int) {
	switch ptype {
	case PropertyTypeResidence:
		t.R += n
	case PropertyTypeCommerce:
		t.C += n
	case PropertyTypeTerrain:
		t.TB += n
	case PropertyTypePOI:
		t.PE += n
	default:
		t.Out += n
	}
}

// Merge adds other into t element-wise.
func (t *TypeCounts) Merge(other TypeCounts) {
	t.R += other.R
	t.C += other.C
	t.TB += other.TB
	t.PE += other.PE
	t.Out += other.Out
}

// Total sums every type counter.
func (t TypeCounts) Total() int {
	return t.R + t.C + t.TB + t.PE + t.Out
}

// DepositCounts inspection counters for the 7 fixed deposit categories
// of the national guidelines (a1, a2, b, c, d1, d2, e).
type DepositCounts struct {
	A1 int `json:"a1"`
	A2 int `json:"a2"`
	B  int `json:"b"`
	C  int `json:"c"`
	D1 int `json:"d1"`
	D2 int `json:"d2"`
	E  int `json:"e"`
}

// Merge adds other into d element-wise.
func (d *DepositCounts) Merge(other DepositCounts) {
	d.A1 += other.A1
	d.A2 += other.A2
	d.B += other.B
	d.C += other.C
	d.D1 += other.D1
	d.D2 += other.D2
	d.E += other.E
}

// Summary the aggregate block embedded in daily logs, weekly logs and
// cycle reports. Category totals are exact sums over the contributing
// visit set; nothing here is sampled or approximated.
type Summary struct {
	// Quarteiroes distinct block IDs worked (daily logs only; derived
	// from property→block identity, never from the worked-block list).
	Quarteiroes []string `json:"quarteiroes,omitempty"`

	TotalQuarteiroes      int           `json:"totalQuarteiroes"`
	TotalVisitas          int           `json:"totalVisitas"`
	TotalVisitasTipo      TypeCounts    `json:"totalVisitasTipo"`
	TotalDepInspecionados DepositCounts `json:"totalDepInspecionados"`
	TotalDepEliminados    int           `json:"totalDepEliminados"`
	TotalImoveisLarvicida int           `json:"totalImoveisLarvicida"`
	TotalQtdLarvicida     float64       `json:"totalQtdLarvicida"`
	TotalDepLarvicida     int           `json:"totalDepLarvicida"`
	ImoveisComFoco        int           `json:"imoveisComFoco"`
	TotalFocos            int           `json:"totalFocos"`

	// IdsVisitas the visit IDs that produced this summary (daily logs
	// only), kept so detail views can resolve the exact visit set
	// without re-querying by date range.
	IdsVisitas []string `json:"idsVisitas,omitempty"`
}

// WeeklySummary the weekly-log variant: the shared Summary scalars plus
// the deduplicated worked-block list in its legacy printed form.
type WeeklySummary struct {
	Summary

	// QuarteiroesTrabalhados comma-joined, deduplicated, sorted block
	// numbers. A display format kept for front-end compatibility; the
	// rollup builds it from an ordered set and only serializes here.
	QuarteiroesTrabalhados      string `json:"quarteiroesTrabalhados"`
	TotalQuarteiroesTrabalhados int    `json:"totalQuarteiroesTrabalhados"`
}

// StatusCounts property totals per status.
type StatusCounts struct {
	Fechado  int `json:"fechado"`
	Visitado int `json:"visitado"`
	Recusa   int `json:"recusa"`
}

// CycleSummary campaign-wide completion statistics.
type CycleSummary struct {
	ImoveisPorStatus StatusCounts `json:"imoveisPorStatus"`
	VisitadosPorTipo TypeCounts   `json:"visitadosPorTipo"`

	// PorArea rollup of the weekly-log summaries not yet linked to a
	// closed cycle, keyed by area name (area ID when the area no longer
	// exists), with the agent dimension folded away.
	PorArea map[string]WeeklySummary `json:"porArea"`
}
