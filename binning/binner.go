package binning

import (
	"context"
	"math"

	"github.com/procmine/caseduration-binning/common"
	"github.com/procmine/caseduration-binning/model"
	"github.com/procmine/caseduration-binning/utils"
	"go.uber.org/zap"
)

// DurationSource gives read access to a case duration sample without
// materializing it here. Implementations answer two questions: the value
// at a quantile and the number of values inside each of a list of
// intervals. Both calls are expected to be idempotent; errors are
// returned to the caller unchanged and never retried.
type DurationSource interface {
	// Quantiles returns the sample value at each requested quantile,
	// aligned with qs. Quantiles are in [0, 1].
	Quantiles(ctx context.Context, qs []float64) ([]float64, error)

	// CountInRanges returns the number of sample values inside each
	// interval, aligned with intervals. Empty intervals count zero.
	CountInRanges(ctx context.Context, intervals []model.Interval) ([]int64, error)
}

// ComputeCaseDurationBins bins a case duration sample into exactly numBins
// contiguous bins for histogram display. Inner bins have equal width and
// cover the central mass of the distribution; the first and last bins are
// wide outlier buckets absorbing the extremes. The binning is done with
// two queries against src: one for the quantiles bounding the core region
// and one counting the cases per bin.
//
// numBins must be at least MinNumBins. unit only scales the values src is
// expected to serve and labels the result; it defaults to days.
func ComputeCaseDurationBins(ctx context.Context, src DurationSource, numBins int,
	unit model.TimeUnit) (res *model.BinningResult, err error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("ComputeCaseDurationBins recover panic error!", zap.Any("err", r),
				zap.String("panic info", utils.GetPanicInfo()), zap.Int("numBins", numBins))
			res, err = nil, common.ErrorInvalidValue
		}
	}()

	if numBins < MinNumBins {
		logger.Error("bin count too small", zap.Int("numBins", numBins),
			zap.Int("minNumBins", MinNumBins))
		return nil, common.ErrorInvalidConfiguration
	}
	if unit == "" {
		unit = model.TimeUnitDays
	}

	lowerQuantile := 1.0 / float64(2*numBins)
	upperQuantile := 1.0 - lowerQuantile

	qvals, err := src.Quantiles(ctx, []float64{lowerQuantile, upperQuantile, MinQuantile, MaxQuantile})
	if err != nil {
		logger.Error("quantile query failed", zap.Error(err))
		return nil, err
	}
	if len(qvals) != 4 {
		logger.Error("quantile query returned wrong arity", zap.Int("cnt", len(qvals)))
		return nil, common.ErrorInvalidValue
	}

	lowerEnd, upperEnd := int64(qvals[0]), int64(qvals[1])
	minVal, maxVal := int64(qvals[2]), int64(qvals[3])
	if minVal > maxVal || lowerEnd > upperEnd || lowerEnd < minVal || upperEnd > maxVal {
		logger.Error("quantiles are not monotone", zap.Int64("minVal", minVal),
			zap.Int64("lowerEnd", lowerEnd), zap.Int64("upperEnd", upperEnd),
			zap.Int64("maxVal", maxVal))
		return nil, common.ErrorInvalidValue
	}

	intervals := layoutIntervals(numBins, minVal, maxVal, lowerEnd, upperEnd)

	counts, err := src.CountInRanges(ctx, intervals)
	if err != nil {
		logger.Error("count query failed", zap.Error(err))
		return nil, err
	}
	if len(counts) != len(intervals) {
		logger.Error("count query returned wrong arity",
			zap.Int("cnt", len(counts)), zap.Int("intervalCnt", len(intervals)))
		return nil, common.ErrorInvalidValue
	}

	bins := make([]model.Bin, len(intervals))
	for i := range intervals {
		bins[i] = model.Bin{Interval: intervals[i], Cases: counts[i]}
	}

	return &model.BinningResult{TimeUnit: unit, Bins: bins}, nil
}

// layoutIntervals computes the bin layout from the sample extremes and the
// core region bounds. Pure, no queries.
//
// The core [lowerEnd, upperEnd] is covered by equal width bins sized so
// that roughly numBins-2 of them fit. Any shortfall against the target is
// filled with extra bins of the same width growing outward from the core,
// and the two outlier buckets close the range off at minVal and maxVal.
func layoutIntervals(numBins int, minVal, maxVal, lowerEnd, upperEnd int64) []model.Interval {
	binWidth := int64(math.Ceil(float64(upperEnd-lowerEnd) / float64(numBins-2)))
	if binWidth < 1 {
		binWidth = 1
	}
	// widen the bin count when the overall range is narrow relative to
	// the requested number of bins
	if (maxVal-minVal+1)/binWidth < int64(numBins) && binWidth > 1 {
		binWidth--
	}

	binsWithin := (upperEnd - lowerEnd + 1) / binWidth
	if binsWithin > int64(numBins-2) {
		binsWithin = int64(numBins - 2)
	}

	core := make([]model.Interval, 0, binsWithin)
	for i := int64(0); i < binsWithin; i++ {
		core = append(core, model.NewInterval(lowerEnd+i*binWidth, lowerEnd+(i+1)*binWidth-1))
	}

	diffBins := numBins - 2 - int(binsWithin)
	upperEndWithin := lowerEnd + binWidth*binsWithin - 1

	potentialLowers, potentialUppers := potentialExtraBins(
		lowerEnd, upperEndWithin, binWidth, diffBins, minVal, maxVal)
	extraLowers, extraUppers := chooseExtraBins(potentialLowers, potentialUppers, diffBins)

	minInner := lowerEnd
	if len(extraLowers) > 0 {
		minInner = extraLowers[0].Low
	}
	maxInner := upperEndWithin
	if len(extraUppers) > 0 {
		maxInner = extraUppers[len(extraUppers)-1].High
	}

	intervals := make([]model.Interval, 0, numBins)
	intervals = append(intervals, model.NewInterval(minVal, minInner-1))
	intervals = append(intervals, extraLowers...)
	intervals = append(intervals, core...)
	intervals = append(intervals, extraUppers...)
	// both candidate pools can run dry on a narrow sample; pad with empty
	// intervals so the result always has exactly numBins entries
	for len(intervals) < numBins-1 {
		intervals = append(intervals, model.NewInterval(maxInner+1, maxInner))
	}
	intervals = append(intervals, model.NewInterval(maxInner+1, maxVal))

	return intervals
}
