package binning

import "github.com/procmine/caseduration-binning/model"

// potentialExtraBins builds up to numBins candidate bins of width binWidth
// on each side of the already laid out core [lowerEnd, upperEndWithin],
// nearest the core first. Candidates stop before reaching the sample
// extremes; the outlier buckets cover the remainder.
func potentialExtraBins(lowerEnd, upperEndWithin, binWidth int64, numBins int,
	minVal, maxVal int64) ([]model.Interval, []model.Interval) {
	potentialLowers := []model.Interval{}
	potentialUppers := []model.Interval{}

	for i := int64(1); i <= int64(numBins); i++ {
		if lowerEnd-i*binWidth > minVal {
			potentialLowers = append(potentialLowers,
				model.NewInterval(lowerEnd-i*binWidth, lowerEnd-(i-1)*binWidth-1))
		}
		if upperEndWithin+i*binWidth < maxVal {
			potentialUppers = append(potentialUppers,
				model.NewInterval(upperEndWithin+1+(i-1)*binWidth, upperEndWithin+i*binWidth))
		}
	}

	return potentialLowers, potentialUppers
}

// chooseExtraBins picks up to numBins bins from the candidate pools,
// alternating between the upper and the lower pool starting with the upper
// one. Both pools are consumed nearest the core first so the chosen bins
// stay contiguous with it; once one pool runs out the remaining picks all
// come from the other side. Returned slices are in ascending interval
// order.
func chooseExtraBins(potentialLowers, potentialUppers []model.Interval,
	numBins int) ([]model.Interval, []model.Interval) {
	extraLowers := []model.Interval{}
	extraUppers := []model.Interval{}

	takeFromUpper := true
	for i := 0; i < numBins; i++ {
		if len(potentialLowers) == 0 && len(potentialUppers) == 0 {
			break
		}
		if len(potentialLowers) > 0 && (len(potentialUppers) == 0 || !takeFromUpper) {
			extraLowers = append([]model.Interval{potentialLowers[0]}, extraLowers...)
			potentialLowers = potentialLowers[1:]
			takeFromUpper = true
		} else {
			extraUppers = append(extraUppers, potentialUppers[0])
			potentialUppers = potentialUppers[1:]
			takeFromUpper = false
		}
	}

	return extraLowers, extraUppers
}
