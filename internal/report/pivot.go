package report

import "sort"

const totalLabel = "TOPLAM"

// Pivot: Amir x Depo kırılım tablosu. Columns depo adları + TOPLAM,
// son satır kolon toplamlarıdır; sağ alt hücre genel toplam.
type Pivot struct {
	Columns []string   `json:"columns"`
	Rows    []PivotRow `json:"rows"`
}

type PivotRow struct {
	Label  string `json:"label"`
	Values []int  `json:"values"`
}

// BuildPivot: detay satırlarından kırılım tablosu üretir. Satır ve kolonlar
// ada göre sıralıdır; aynı girdi her zaman aynı çıktıyı verir.
func BuildPivot(rows []DetailRow) Pivot {
	sums := make(map[string]map[string]int)
	depotSet := make(map[string]bool)

	for _, r := range rows {
		if sums[r.VardiyaAmiri] == nil {
			sums[r.VardiyaAmiri] = make(map[string]int)
		}
		sums[r.VardiyaAmiri][r.Depo] += r.KoliSayisi
		depotSet[r.Depo] = true
	}

	leaders := make([]string, 0, len(sums))
	for l := range sums {
		leaders = append(leaders, l)
	}
	sort.Strings(leaders)

	depots := make([]string, 0, len(depotSet))
	for d := range depotSet {
		depots = append(depots, d)
	}
	sort.Strings(depots)

	p := Pivot{Columns: append(append([]string{}, depots...), totalLabel)}

	colTotals := make([]int, len(depots))
	grand := 0

	for _, leader := range leaders {
		values := make([]int, 0, len(depots)+1)
		rowTotal := 0
		for i, depot := range depots {
			v := sums[leader][depot]
			values = append(values, v)
			rowTotal += v
			colTotals[i] += v
		}
		values = append(values, rowTotal)
		grand += rowTotal
		p.Rows = append(p.Rows, PivotRow{Label: leader, Values: values})
	}

	p.Rows = append(p.Rows, PivotRow{Label: totalLabel, Values: append(append([]int{}, colTotals...), grand)})

	return p
}

// GrandTotal: sağ alt hücre; boş pivotta 0.
func (p Pivot) GrandTotal() int {
	if len(p.Rows) == 0 {
		return 0
	}
	last := p.Rows[len(p.Rows)-1]
	if len(last.Values) == 0 {
		return 0
	}
	return last.Values[len(last.Values)-1]
}
