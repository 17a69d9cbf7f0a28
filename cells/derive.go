package cells

type appearance struct {
	radius float64
	color  string
}

// EARFCN → default sector radius (metres) and outline colour.
var earfcnAppearance = map[int]appearance{
	9610:   {250, "blue"},
	425:    {200, "red"},
	450:    {200, "red"},
	2155:   {200, "red"},
	550:    {175, "purple"},
	40140:  {150, "lime"},
	623334: {100, "yellow"},
	633334: {80, "orange"},
}

const (
	microRadiusM = 50
	microColor   = "cyan"
)

// DeriveRadiusColor picks the sector radius and colour for a cell. Micro
// sites always get the micro style; everything else is looked up by EARFCN
// and yields (nil, "") for unknown channels.
func DeriveRadiusColor(earfcn int, st SiteType) (*float64, string) {
	if st == SiteMicro {
		r := float64(microRadiusM)
		return &r, microColor
	}
	a, ok := earfcnAppearance[earfcn]
	if !ok {
		return nil, ""
	}
	r := a.radius
	return &r, a.color
}
