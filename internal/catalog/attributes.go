package catalog

import "strings"

// ColorMap maps catalog color names to display hex values.
var ColorMap = map[string]string{
	"Black":             "#000000",
	"White":             "#FFFFFF",
	"Navy":              "#000080",
	"Dark Grey Heather": "#333333",
	"Sport Grey":        "#808080",
	"Blue":              "#0000FF",
	"Red":               "#FF0000",
	"Green":             "#008000",
	"Light":             "#F0F0F0",
	"Dark":              "#1A1A1A",
	"Heather":           "#999999",
	"Royal":             "#4169E1",
	"Orange":            "#FFA500",
	"Purple":            "#800080",
	"Pink":              "#FFC0CB",
	"Soft Pink":         "#FFB6C1",
	"Yellow":            "#FFFF00",
	"Gold":              "#FFD700",
	"Charcoal":          "#36454F",
	"Grey":              "#808080",
	"Gray":              "#808080",
	"Athletic Heather":  "#B0B0B0",
	"Black Heather":     "#2B2B2B",
	"Heather Emerald":   "#00A86B",
	"Heather Navy":      "#1B2E4A",
	"Military Green":    "#4B5320",
	"Heather Slate":     "#708090",
	"Cranberry":         "#9B1B30",
	"Green Camo":        "#4B6F44",
}

// OptionValue returns the value of the named attribute, matching the
// name case-insensitively. Empty string when absent.
func OptionValue(attrs []Attribute, optionName string) string {
	for _, a := range attrs {
		if strings.EqualFold(a.Name, optionName) {
			return a.Value
		}
	}
	return ""
}

// AttributeHex returns the hex swatch for the named attribute, falling
// back to ColorMap by value when the attribute carries no hex of its own.
func AttributeHex(attrs []Attribute, optionName string) string {
	for _, a := range attrs {
		if !strings.EqualFold(a.Name, optionName) {
			continue
		}
		if a.Hex != nil {
			return *a.Hex
		}
		return ColorMap[a.Value]
	}
	return ""
}
