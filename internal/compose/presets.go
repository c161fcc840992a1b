package compose

// filterPresets maps a project file's named filter onto one filter stage.
// Unknown names resolve to the identity stage so a stale project still
// renders.
var filterPresets = map[string]FilterOp{
	"grayscale": {Brightness: 1, Contrast: 1, Saturate: 0},
	"sepia":     {Brightness: 1, Contrast: 1, Saturate: 1, Sepia: 1},
	"vintage":   {Brightness: 1.05, Contrast: 0.9, Saturate: 0.75, Sepia: 0.35},
	"noir":      {Brightness: 0.95, Contrast: 1.35, Saturate: 0},
	"vivid":     {Brightness: 1.05, Contrast: 1.15, Saturate: 1.45},
	"warm":      {Brightness: 1.05, Contrast: 1, Saturate: 1.15, HueRotate: -12},
	"cool":      {Brightness: 1, Contrast: 1, Saturate: 1.05, HueRotate: 14},
	"dramatic":  {Brightness: 0.9, Contrast: 1.4, Saturate: 1.1},
	"faded":     {Brightness: 1.1, Contrast: 0.8, Saturate: 0.7},
	"dreamy":    {Brightness: 1.1, Contrast: 0.9, Saturate: 1.1, Blur: 1.5},
}

func presetFilter(name string) (FilterOp, bool) {
	op, ok := filterPresets[name]
	return op, ok
}
