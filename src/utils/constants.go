package utils

const ShortSlashDateLayout = "2006/01/02"
const ShortDashDateLayout = "2006-01-02"
const CompactDateLayout = "20060102"
const CompactMonthLayout = "200601"

// ChartColors is the palette used for per-asset-type slices on the dashboard chart.
var ChartColors = []string{
	"#ffa366", // Light Orange
	"#ff8080", // Light Red
	"#80b3ff", // Light Blue
	"#a3d977", // Light Green
	"#c285ff", // Light Purple
	"#80e6d4", // Light Teal
}

// GetChartColor returns a color from the chart color palette
// If the index exceeds the palette size, it cycles back to the beginning
func GetChartColor(index int) string {
	return ChartColors[index%len(ChartColors)]
}
