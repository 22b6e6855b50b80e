package stitchchart

var dmcSwatch = []ReferenceEntry{
	{"310", "Black", Color{0, 0, 0}, FamilyRegular},
	{"B5200", "Snow White", Color{255, 255, 255}, FamilyRegular},
	{"762", "Pearl Gray", Color{236, 236, 236}, FamilyRegular},
	{"318", "Steel Gray Lt", Color{171, 171, 171}, FamilyRegular},
	{"414", "Steel Gray Dk", Color{140, 140, 140}, FamilyRegular},
	{"535", "Ash Gray V Dk", Color{99, 100, 100}, FamilyRegular},
	{"321", "Red", Color{199, 43, 59}, FamilyRegular},
	{"666", "Bright Red", Color{227, 29, 66}, FamilyRegular},
	{"606", "Bright Orange", Color{250, 50, 3}, FamilyRegular},
	{"742", "Tangerine Lt", Color{255, 191, 87}, FamilyRegular},
	{"744", "Yellow Pale", Color{255, 233, 173}, FamilyRegular},
	{"727", "Topaz V Lt", Color{255, 241, 175}, FamilyRegular},
	{"704", "Chartreuse Br", Color{123, 181, 71}, FamilyRegular},
	{"703", "Chartreuse", Color{85, 160, 75}, FamilyRegular},
	{"702", "Kelly Green", Color{71, 167, 47}, FamilyRegular},
	{"699", "Green", Color{5, 101, 23}, FamilyRegular},
	{"3810", "Turquoise Dk", Color{72, 142, 154}, FamilyRegular},
	{"807", "Peacock Blue", Color{100, 171, 186}, FamilyRegular},
	{"809", "Delft Blue", Color{148, 180, 206}, FamilyRegular},
	{"799", "Delft Blue Md", Color{116, 163, 202}, FamilyRegular},
	{"797", "Royal Blue", Color{19, 71, 125}, FamilyRegular},
	{"796", "Royal Blue Dk", Color{17, 65, 109}, FamilyRegular},
	{"550", "Violet V Dk", Color{92, 24, 78}, FamilyRegular},
	{"553", "Violet Md", Color{163, 99, 139}, FamilyRegular},
	{"552", "Violet Md Dk", Color{128, 58, 107}, FamilyRegular},
	{"3837", "Lavender U Dk", Color{108, 58, 110}, FamilyRegular},
	{"3712", "Salmon Md", Color{241, 135, 135}, FamilyRegular},
	{"3716", "Dusty Rose V Lt", Color{255, 189, 189}, FamilyRegular},
	{"761", "Salmon Lt", Color{255, 201, 187}, FamilyRegular},
	{"951", "Tawny Lt", Color{255, 226, 207}, FamilyRegular},
	{"945", "Tawny", Color{251, 213, 187}, FamilyRegular},
	{"738", "Tan V Lt", Color{236, 204, 158}, FamilyRegular},
	{"840", "Beige Brown Md", Color{154, 124, 92}, FamilyRegular},
	{"838", "Beige Brown V Dk", Color{89, 73, 55}, FamilyRegular},
	{"3371", "Black Brown", Color{30, 17, 8}, FamilyRegular},
}

// DefaultReferenceTable returns the built-in 35-color DMC swatch.
func DefaultReferenceTable() *ReferenceTable {
	return NewReferenceTable(dmcSwatch)
}
