package metrics

// gpaBand maps an inclusive lower percent bound to a 4.0-scale grade point.
type gpaBand struct {
	floor int
	gpa   float64
}

// Standard letter-grade bands, A through D, with F below 65.
var gpaBands = []gpaBand{
	{93, 4.0},
	{90, 3.7},
	{87, 3.3},
	{83, 3.0},
	{80, 2.7},
	{77, 2.3},
	{73, 2.0},
	{70, 1.7},
	{67, 1.3},
	{65, 1.0},
}

// GPAForPercent converts a rounded percent grade to its 4.0-scale value via
// the fixed step table.
func GPAForPercent(percent int) float64 {
	for _, band := range gpaBands {
		if percent >= band.floor {
			return band.gpa
		}
	}
	return 0.0
}
