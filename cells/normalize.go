package cells

import "fmt"

// Normalize maps the 4G and 5G tables onto canonical records, 4G rows first,
// derives each record's radius and colour, and keeps only Macro, Micro and
// IBS sites.
func Normalize(fourG, fiveG *Table) ([]Record, error) {
	if fourG == nil || fiveG == nil {
		return nil, fmt.Errorf("normalize: both 4G and 5G tables are required")
	}
	lte, err := Schema4G.Records(fourG)
	if err != nil {
		return nil, err
	}
	nr, err := Schema5G.Records(fiveG)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(lte)+len(nr))
	for _, rec := range append(lte, nr...) {
		if rec.SiteType == SiteOther {
			continue
		}
		rec.RadiusM, rec.ColorName = DeriveRadiusColor(rec.EARFCN, rec.SiteType)
		out = append(out, rec)
	}
	return out, nil
}
