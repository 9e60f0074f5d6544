package jetimage

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places about NSuggestedTicks labelled ticks on steps of
// 1, 2, 3, 4, 5, 6 or 8 times a power of ten, with unlabelled minor ticks
// in between. Labels keep only the digits the step needs.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	nTicks := t.NSuggestedTicks
	if nTicks < 2 {
		nTicks = 4
	}
	if !(max > min) {
		return []plot.Tick{{Value: min, Label: formatFloatTick(min, -1)}}
	}

	span := max - min
	tens := math.Pow10(int(math.Floor(math.Log10(span))))
	for span/tens < float64(nTicks-1) {
		tens /= 10
	}

	mult := int(span / tens / float64(nTicks-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	major := float64(mult) * tens

	var ticks []plot.Tick
	last := min
	for v := math.Ceil(min/major) * major; v <= max; v += major {
		last = v
		ticks = append(ticks, plot.Tick{Value: v})
	}
	prec := int(math.Ceil(math.Log10(math.Abs(last)+major)) - math.Floor(math.Log10(major)))
	for i := range ticks {
		ticks[i].Value = round(ticks[i].Value, prec)
		ticks[i].Label = formatFloatTick(ticks[i].Value, -1)
	}

	minor := major / 2
	switch mult {
	case 3, 6:
		minor = major / 3
	case 5:
		minor = major / 5
	}
	nMajor := len(ticks)
	for v := math.Ceil(min/minor) * minor; v <= max; v += minor {
		if !hasTick(ticks[:nMajor], v, minor/100) {
			ticks = append(ticks, plot.Tick{Value: v})
		}
	}
	return ticks
}

// LogTicks labels every power of ten in range and adds minor ticks at 2-9
// times each power. Non-positive bounds are raised to Floor.
type LogTicks struct {
	Floor float64
}

func (t LogTicks) Ticks(min, max float64) []plot.Tick {
	min, max = clampLog(min, max, t.Floor)

	var ticks []plot.Tick
	for e := math.Floor(math.Log10(min)); e <= math.Ceil(math.Log10(max)); e++ {
		decade := math.Pow10(int(e))
		for m := 1.0; m < 10; m++ {
			v := m * decade
			if v < min*(1-1e-9) || v > max*(1+1e-9) {
				continue
			}
			tick := plot.Tick{Value: v}
			if m == 1 {
				tick.Label = formatFloatTick(v, -1)
			}
			ticks = append(ticks, tick)
		}
	}
	return ticks
}

// LogScale is plot.LogScale that tolerates empty histogram bins: values
// and bounds at or below zero are raised to Floor instead of panicking.
type LogScale struct {
	Floor float64
}

func (s LogScale) Normalize(min, max, x float64) float64 {
	min, max = clampLog(min, max, s.Floor)
	x = math.Max(x, min)
	logMin := math.Log(min)
	return (math.Log(x) - logMin) / (math.Log(max) - logMin)
}

func clampLog(min, max, floor float64) (float64, float64) {
	if floor <= 0 {
		floor = 0.1
	}
	if min < floor {
		min = floor
	}
	if max <= min {
		max = min * 10
	}
	return min, max
}

func hasTick(ticks []plot.Tick, v, tol float64) bool {
	for _, t := range ticks {
		if math.Abs(t.Value-v) < tol {
			return true
		}
	}
	return false
}

func round(x float64, prec int) float64 {
	if x == 0 {
		return 0
	}
	if math.IsInf(x*math.Pow10(prec), 0) {
		return x
	}
	pow := math.Pow10(prec)
	v := math.Round(x*pow) / pow
	if v == 0 {
		// no negative zero
		return 0
	}
	return v
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}
