package export

// batchSteps maps canvas pixel counts onto batch sizes, largest first. Bigger
// frames mean fewer decoded frames held in memory at once.
var batchSteps = []struct {
	minPixels int
	size      int
}{
	{8_000_000, 5},
	{3_500_000, 10},
	{2_000_000, 15},
}

const defaultBatchSize = 30

// BatchSize returns how many frames are rendered per batch for the given
// canvas pixel count. The result is non-increasing in pixel count and always
// at least 1.
func BatchSize(pixels int) int {
	for _, step := range batchSteps {
		if pixels >= step.minPixels {
			return step.size
		}
	}
	return defaultBatchSize
}
