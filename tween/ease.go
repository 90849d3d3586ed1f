package tween

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Ease maps linear progress in [0, 1] to eased progress.
type Ease func(t float64) float64

var ErrUnknownEase = errors.New("tween: unknown ease")

func Linear(t float64) float64 { return t }

func Power1Out(t float64) float64 { return 1 - math.Pow(1-t, 2) }

func Power2Out(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func Power3Out(t float64) float64 { return 1 - math.Pow(1-t, 4) }

func Power1InOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// DefaultEase is used when a tween does not name one.
var DefaultEase Ease = Power1Out

var eases = map[string]Ease{
	"none":           Linear,
	"linear":         Linear,
	"power1.out":     Power1Out,
	"power1.inout":   Power1InOut,
	"power2.out":     Power2Out,
	"power3.out":     Power3Out,
	"power3.easeout": Power3Out,
}

// ScriptLoader returns the source of a named ease script.
type ScriptLoader func(name string) ([]byte, error)

const scriptPrefix = "script:"

// Resolve looks up a named ease. Names prefixed with "script:" are loaded
// through load and compiled as tengo scripts. An empty name resolves to
// DefaultEase.
func Resolve(name string, load ScriptLoader) (Ease, error) {
	trimmed := strings.TrimSpace(name)
	key := strings.ToLower(trimmed)
	if key == "" {
		return DefaultEase, nil
	}
	if strings.HasPrefix(key, scriptPrefix) {
		if load == nil {
			return nil, fmt.Errorf("%w: %s (no script loader)", ErrUnknownEase, name)
		}
		path := strings.TrimSpace(trimmed[len(scriptPrefix):])
		src, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("tween: load ease script %s: %w", path, err)
		}
		return NewScriptEase(src)
	}
	if e, ok := eases[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEase, name)
}
