package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadSpec decodes a prefab YAML file on top of base. Fields the file
// leaves out keep their base values.
func LoadSpec[T any](filename string, base T) (T, error) {
	data, err := Load(filename)
	if err != nil {
		return base, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := base
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return base, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

var ErrInvalidSpec = errors.New("prefabs: invalid scene spec")

// SceneSpec holds every tunable of the question scene.
type SceneSpec struct {
	Name       string         `yaml:"name"`
	Image      string         `yaml:"image"`
	Shader     string         `yaml:"shader"`
	Background YAMLColor      `yaml:"background"`
	Camera     CameraSpec     `yaml:"camera"`
	Controls   ControlsSpec   `yaml:"controls"`
	Plane      PlaneSpec      `yaml:"plane"`
	Parallax   ParallaxSpec   `yaml:"parallax"`
	Pointer    PointerSpec    `yaml:"pointer"`
	Glitch     GlitchSpec     `yaml:"glitch"`
	Redact     RedactSpec     `yaml:"redact"`
	Intro      IntroSpec      `yaml:"intro"`
	Scroll     ScrollSpec     `yaml:"scroll"`
	Trigger    TriggerSpec    `yaml:"trigger"`
	Light      LightSpec      `yaml:"light"`
	Cursor     CursorSpec     `yaml:"cursor"`
}

type CameraSpec struct {
	FOV    float64 `yaml:"fov"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
	GroupZ float64 `yaml:"group_z"`
}

type ControlsSpec struct {
	Enabled       bool    `yaml:"enabled"`
	Damping       bool    `yaml:"damping"`
	DampingFactor float64 `yaml:"damping_factor"`
	MaxPolarAngle float64 `yaml:"max_polar_angle"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
	RotateSpeed   float64 `yaml:"rotate_speed"`
}

type PlaneSpec struct {
	PixelsPerUnit    float64       `yaml:"pixels_per_unit"`
	PixelsPerSegment float64       `yaml:"pixels_per_segment"`
	DropHeight       float64       `yaml:"drop_height"`
	DropDuration     time.Duration `yaml:"drop_duration"`
	Bob              float64       `yaml:"bob"`
	Tilt             float64       `yaml:"tilt"`
}

type ParallaxSpec struct {
	GainX   float64 `yaml:"gain_x"`
	GainY   float64 `yaml:"gain_y"`
	Aspect  float64 `yaml:"aspect"`
	Lerp    float64 `yaml:"lerp"`
	RotateX float64 `yaml:"rotate_x"`
	RotateY float64 `yaml:"rotate_y"`
}

type PointerSpec struct {
	Idle time.Duration `yaml:"idle"`
}

type GlitchSpec struct {
	Spread  float64       `yaml:"spread"`
	OutMin  time.Duration `yaml:"out_min"`
	OutMax  time.Duration `yaml:"out_max"`
	BackMin time.Duration `yaml:"back_min"`
	BackMax time.Duration `yaml:"back_max"`
	RestMin time.Duration `yaml:"rest_min"`
	RestMax time.Duration `yaml:"rest_max"`
	Ease    string        `yaml:"ease"`
}

type RedactSpec struct {
	Duration       time.Duration `yaml:"duration"`
	Ease           string        `yaml:"ease"`
	Settle         time.Duration `yaml:"settle"`
	CameraDuration time.Duration `yaml:"camera_duration"`
	ResetDuration  time.Duration `yaml:"reset_duration"`
}

type IntroSpec struct {
	CameraAt       time.Duration `yaml:"camera_at"`
	CameraDuration time.Duration `yaml:"camera_duration"`
	QuestionInAt   time.Duration `yaml:"question_in_at"`
}

type ScrollSpec struct {
	Damping    float64       `yaml:"damping"`
	WheelSpeed float64       `yaml:"wheel_speed"`
	SnapDelay  time.Duration `yaml:"snap_delay"`
	Sections   []SectionSpec `yaml:"sections"`
}

type SectionSpec struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
}

type TriggerSpec struct {
	Section         string  `yaml:"section"`
	SectionDistance float64 `yaml:"section_distance"`
	RotationAngle   float64 `yaml:"rotation_angle"`
	Snap            float64 `yaml:"snap"`
	Scrub           bool    `yaml:"scrub"`
}

type LightSpec struct {
	Color     YAMLColor `yaml:"color"`
	Intensity float64   `yaml:"intensity"`
}

type CursorSpec struct {
	Radius float64   `yaml:"radius"`
	Color  YAMLColor `yaml:"color"`
}

// DefaultSceneSpec mirrors scene.yaml. Fields missing from a YAML file keep
// these values.
func DefaultSceneSpec() SceneSpec {
	return SceneSpec{
		Name:       "question",
		Image:      "question.png",
		Shader:     "shaders/redact.kage",
		Background: YAMLColor{Color: color.NRGBA{R: 0xf8, G: 0xf0, B: 0xe3, A: 0xff}},
		Camera:     CameraSpec{FOV: 45, Near: 0.1, Far: 100, GroupZ: 15},
		Controls: ControlsSpec{
			Damping:       true,
			DampingFactor: 0.05,
			MaxPolarAngle: 1.5707963267948966,
			MinDistance:   12,
			MaxDistance:   80,
			RotateSpeed:   1,
		},
		Plane: PlaneSpec{
			PixelsPerUnit:    75,
			PixelsPerSegment: 10,
			DropHeight:       20,
			DropDuration:     2 * time.Second,
			Bob:              0.1,
			Tilt:             0.05,
		},
		Parallax: ParallaxSpec{
			GainX:   0.001,
			GainY:   0.001,
			Aspect:  16.0 / 9.0,
			Lerp:    0.05,
			RotateX: 0.5,
			RotateY: 1,
		},
		Pointer: PointerSpec{Idle: 100 * time.Millisecond},
		Glitch: GlitchSpec{
			Spread:  5,
			OutMin:  25 * time.Millisecond,
			OutMax:  100 * time.Millisecond,
			BackMax: 100 * time.Millisecond,
			RestMin: 2500 * time.Millisecond,
			RestMax: 7500 * time.Millisecond,
			Ease:    "power1.out",
		},
		Redact: RedactSpec{
			Duration:       time.Second,
			Ease:           "power3.out",
			Settle:         100 * time.Millisecond,
			CameraDuration: 100 * time.Millisecond,
			ResetDuration:  500 * time.Millisecond,
		},
		Intro: IntroSpec{
			CameraAt:       2 * time.Second,
			CameraDuration: 250 * time.Millisecond,
			QuestionInAt:   2250 * time.Millisecond,
		},
		Scroll: ScrollSpec{
			Damping:    0.1,
			WheelSpeed: 120,
			SnapDelay:  150 * time.Millisecond,
			Sections: []SectionSpec{
				{ID: "section0", Title: "Question"},
				{ID: "section1", Title: "Answer"},
				{ID: "section2", Title: ""},
			},
		},
		Trigger: TriggerSpec{
			Section:         "section1",
			SectionDistance: 15,
			RotationAngle:   0,
			Snap:            1,
			Scrub:           true,
		},
		Light:  LightSpec{Color: YAMLColor{Color: color.NRGBA{R: 0xaa, G: 0x00, B: 0xff, A: 0xff}}, Intensity: 0.1},
		Cursor: CursorSpec{Radius: 10, Color: YAMLColor{Color: color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}}},
	}
}

// LoadSceneSpec reads a scene spec on top of the defaults and validates it.
func LoadSceneSpec(name string) (*SceneSpec, error) {
	if strings.TrimSpace(name) == "" {
		name = "scene.yaml"
	}
	spec, err := LoadSpec(name, DefaultSceneSpec())
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func ParseSceneSpec(data []byte) (*SceneSpec, error) {
	spec := DefaultSceneSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	switch {
	case s.Camera.FOV <= 0 || s.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera fov %v", ErrInvalidSpec, s.Camera.FOV)
	case s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near:
		return fmt.Errorf("%w: camera near/far %v/%v", ErrInvalidSpec, s.Camera.Near, s.Camera.Far)
	case s.Plane.PixelsPerUnit <= 0 || s.Plane.PixelsPerSegment <= 0:
		return fmt.Errorf("%w: plane scale", ErrInvalidSpec)
	case s.Parallax.Lerp <= 0 || s.Parallax.Lerp > 1:
		return fmt.Errorf("%w: parallax lerp %v", ErrInvalidSpec, s.Parallax.Lerp)
	case s.Glitch.OutMin < 0 || s.Glitch.BackMin < 0 || s.Glitch.RestMin < 0:
		return fmt.Errorf("%w: negative glitch duration", ErrInvalidSpec)
	case s.Glitch.OutMax < s.Glitch.OutMin || s.Glitch.BackMax < s.Glitch.BackMin || s.Glitch.RestMax < s.Glitch.RestMin:
		return fmt.Errorf("%w: glitch ranges", ErrInvalidSpec)
	case s.Scroll.Damping <= 0 || s.Scroll.Damping > 1:
		return fmt.Errorf("%w: scroll damping %v", ErrInvalidSpec, s.Scroll.Damping)
	case len(s.Scroll.Sections) == 0:
		return fmt.Errorf("%w: no page sections", ErrInvalidSpec)
	}
	if s.SectionIndex(s.Trigger.Section) < 0 {
		return fmt.Errorf("%w: trigger section %q not found", ErrInvalidSpec, s.Trigger.Section)
	}
	return nil
}

// SectionIndex returns the position of the section with the given id, or -1.
func (s *SceneSpec) SectionIndex(id string) int {
	for i, sec := range s.Scroll.Sections {
		if sec.ID == id {
			return i
		}
	}
	return -1
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
