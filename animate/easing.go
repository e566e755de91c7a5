package animate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ease maps normalized time in [0, 1] to progress. Progress may overshoot.
type Ease func(t float64) float64

// Linear is the identity ease.
func Linear(t float64) float64 { return t }

// PowerInOut returns the symmetric polynomial ease of the given power, where
// power 1 is quadratic, 2 cubic and 3 quartic.
func PowerInOut(power int) Ease {
	exp := float64(power + 1)
	in := func(t float64) float64 { return math.Pow(t, exp) }
	return func(t float64) float64 {
		if t < 0.5 {
			return in(t*2) / 2
		}
		return 1 - in((1-t)*2)/2
	}
}

// ElasticInOut returns a spring ease that overshoots at both ends.
// amplitude below 1 is treated as 1.
func ElasticInOut(amplitude, period float64) Ease {
	a := math.Max(amplitude, 1)
	p := period / math.Min(amplitude, 1)
	shift := p / (2 * math.Pi) * math.Asin(1/a)
	angular := 2 * math.Pi / p

	out := func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		return a*math.Pow(2, -10*t)*math.Sin((t-shift)*angular) + 1
	}
	return func(t float64) float64 {
		if t < 0.5 {
			return (1 - out(1-t*2)) / 2
		}
		return 0.5 + out((t-0.5)*2)/2
	}
}

// ParseEase understands "linear", "powerN.inOut" and
// "elastic.inOut(amplitude, period)" with optional arguments.
func ParseEase(spec string) (Ease, error) {
	spec = strings.TrimSpace(spec)
	name, args, _ := strings.Cut(spec, "(")
	var params []float64
	if args != "" {
		args = strings.TrimSuffix(strings.TrimSpace(args), ")")
		for _, a := range strings.Split(args, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
			if err != nil {
				return nil, fmt.Errorf("parsing ease %q: %w", spec, err)
			}
			params = append(params, v)
		}
	}

	switch name {
	case "", "linear", "none":
		return Linear, nil
	case "power1.inOut":
		return PowerInOut(1), nil
	case "power2.inOut":
		return PowerInOut(2), nil
	case "power3.inOut":
		return PowerInOut(3), nil
	case "elastic.inOut":
		amp, period := 1.0, 0.45
		if len(params) > 0 {
			amp = params[0]
		}
		if len(params) > 1 {
			period = params[1]
		}
		if amp <= 0 || period <= 0 {
			return nil, fmt.Errorf("ease %q: amplitude and period must be positive", spec)
		}
		return ElasticInOut(amp, period), nil
	}
	return nil, fmt.Errorf("unknown ease %q", spec)
}
