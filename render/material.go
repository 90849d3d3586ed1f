package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/redact/scene"
)

// Material pairs the redact shader with the question texture.
type Material struct {
	Shader  *ebiten.Shader
	Texture *ebiten.Image
}

func NewMaterial(tex *ebiten.Image, shaderSrc []byte) (*Material, error) {
	if tex == nil {
		return nil, fmt.Errorf("render: material needs a texture")
	}
	m := &Material{Texture: tex}
	if err := m.Recompile(shaderSrc); err != nil {
		return nil, err
	}
	return m, nil
}

// Recompile swaps in a new shader. On error the current shader stays.
func (m *Material) Recompile(src []byte) error {
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return fmt.Errorf("render: compile shader: %w", err)
	}
	if m.Shader != nil {
		m.Shader.Deallocate()
	}
	m.Shader = sh
	return nil
}

// UniformMap converts the scene uniforms into the shader's uniform names.
func UniformMap(u scene.Uniforms) map[string]any {
	return map[string]any{
		"Alpha":  float32(u.Alpha),
		"Offset": []float32{float32(u.Offset.X), float32(u.Offset.Y)},
		"Time":   float32(u.Time),
		"Redact": float32(u.Redact),
	}
}
