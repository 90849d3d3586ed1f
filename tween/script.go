package tween

import (
	"fmt"
	"math"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// The script must define `ease := func(t) { ... }`.
const easeDispatchScript = `
__out := ease(__t)
`

// NewScriptEase compiles a tengo ease script. The compiled script is
// probed at 0 and 1 so broken scripts fail at load time rather than
// mid-animation.
func NewScriptEase(src []byte) (Ease, error) {
	full := string(src) + "\n" + easeDispatchScript
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__t", 0.0)
	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("tween: compile ease script: %w", err)
	}

	eval := func(t float64) (float64, error) {
		if err := compiled.Set("__t", t); err != nil {
			return 0, err
		}
		if err := compiled.Run(); err != nil {
			return 0, err
		}
		out := compiled.Get("__out")
		if out == nil || out.IsUndefined() {
			return 0, fmt.Errorf("ease returned undefined")
		}
		v := out.Float()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("ease returned %v", v)
		}
		return v, nil
	}

	for _, probe := range []float64{0, 1} {
		if _, err := eval(probe); err != nil {
			return nil, fmt.Errorf("tween: run ease script at %v: %w", probe, err)
		}
	}

	return func(t float64) float64 {
		v, err := eval(t)
		if err != nil {
			return t
		}
		return v
	}, nil
}
