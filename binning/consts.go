package binning

const (
	// MinNumBins is one inner bin plus the two outlier buckets.
	MinNumBins = 3

	MinQuantile = 0.0
	MaxQuantile = 1.0
)
