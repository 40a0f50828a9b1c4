package shutter

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Scene is a transform hierarchy plus the render request it is resolved
// for. Scenes are usually loaded from YAML with LoadScene; the format exists
// for tools and tests, real exporters build Nodes from their cache reader.
//
//	frame: 12
//	fps: 24
//	shutter: {open: -0.25, close: 0.25}
//	nodes:
//	  - name: world
//	    sampling: {kind: uniform, start: 0, step: 0.0416667}
//	    tween:
//	      samples: 48
//	      easing: inOutQuad
//	      from: {translate: [0, 0, 0]}
//	      to: {translate: [10, 0, 0], rotate: [0, 0, 1.57]}
//	    children:
//	      - name: arm
//	        times: [0, 0.5, 1.25]
//	        keys:
//	          - {translate: [1, 0, 0]}
//	          - {translate: [1, 1, 0]}
//	          - {translate: [1, 2, 0]}
type Scene struct {
	Frame        float64
	FPS          float64
	ShutterOpen  float64
	ShutterClose float64
	Roots        []*Node
}

// Window returns the render window the scene describes.
func (s *Scene) Window() Window {
	return NewWindow(s.Frame, s.FPS, s.ShutterOpen, s.ShutterClose)
}

// FindNode returns the node at a slash-separated path such as
// "/world/arm", or nil.
func (s *Scene) FindNode(path string) *Node {
	var found *Node
	for _, root := range s.Roots {
		walk(root, func(n *Node) bool {
			if n.Path() == path {
				found = n
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}
	return nil
}

// walk visits n and its descendants in pre-order until fn returns false.
func walk(n *Node, fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

type sceneFile struct {
	Frame   float64     `yaml:"frame"`
	FPS     float64     `yaml:"fps"`
	Shutter shutterSpec `yaml:"shutter"`
	Nodes   []nodeSpec  `yaml:"nodes"`
}

type shutterSpec struct {
	Open  float64 `yaml:"open"`
	Close float64 `yaml:"close"`
}

type samplingSpec struct {
	Kind         string    `yaml:"kind"`
	Start        float64   `yaml:"start"`
	Step         float64   `yaml:"step"`
	TimePerCycle float64   `yaml:"timePerCycle"`
	Times        []float64 `yaml:"times"`
}

type trsSpec struct {
	Translate []float64 `yaml:"translate"`
	Rotate    []float64 `yaml:"rotate"`
	Scale     []float64 `yaml:"scale"`
}

type tweenSpec struct {
	Samples int     `yaml:"samples"`
	Easing  string  `yaml:"easing"`
	From    trsSpec `yaml:"from"`
	To      trsSpec `yaml:"to"`
}

type nodeSpec struct {
	Name     string        `yaml:"name"`
	Inherits *bool         `yaml:"inherits"`
	Sampling *samplingSpec `yaml:"sampling"`
	Times    []float64     `yaml:"times"`
	Matrices [][]float64   `yaml:"matrices"`
	Keys     []trsSpec     `yaml:"keys"`
	Tween    *tweenSpec    `yaml:"tween"`
	Children []nodeSpec    `yaml:"children"`
}

// LoadSceneFile reads and parses a YAML scene file.
func LoadSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("shutter: read scene: %w", err)
	}
	return LoadScene(data)
}

// LoadScene parses a YAML scene. A missing fps defaults to 24.
func LoadScene(data []byte) (*Scene, error) {
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("shutter: failed to parse scene YAML: %w", err)
	}
	if f.FPS == 0 {
		f.FPS = 24
	}
	if f.FPS < 0 {
		return nil, fmt.Errorf("shutter: scene fps must be positive, got %v", f.FPS)
	}
	if len(f.Nodes) == 0 {
		return nil, fmt.Errorf("shutter: scene has no nodes")
	}

	s := &Scene{
		Frame:        f.Frame,
		FPS:          f.FPS,
		ShutterOpen:  f.Shutter.Open,
		ShutterClose: f.Shutter.Close,
	}
	for i := range f.Nodes {
		n, err := buildNode(&f.Nodes[i])
		if err != nil {
			return nil, err
		}
		s.Roots = append(s.Roots, n)
	}
	return s, nil
}

func buildNode(spec *nodeSpec) (*Node, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("shutter: scene node without a name")
	}
	src, err := buildSource(spec)
	if err != nil {
		return nil, fmt.Errorf("shutter: node %q: %w", spec.Name, err)
	}
	n := NewNode(spec.Name, src)
	if spec.Inherits != nil {
		n.InheritsTransform = *spec.Inherits
	}
	for i := range spec.Children {
		child, err := buildNode(&spec.Children[i])
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

// buildSource returns nil, not a typed nil *Track, for nodes without samples.
func buildSource(spec *nodeSpec) (TransformSource, error) {
	sources := 0
	for _, set := range []bool{len(spec.Matrices) > 0, len(spec.Keys) > 0, spec.Tween != nil} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, fmt.Errorf("matrices, keys and tween are mutually exclusive")
	}
	if sources == 0 {
		return nil, nil
	}

	ts, err := buildSampling(spec)
	if err != nil {
		return nil, err
	}

	switch {
	case len(spec.Matrices) > 0:
		samples := make([]mgl64.Mat4, len(spec.Matrices))
		for i, m := range spec.Matrices {
			if len(m) != 16 {
				return nil, fmt.Errorf("matrix %d has %d values, want 16", i, len(m))
			}
			copy(samples[i][:], m)
		}
		return NewTrack(ts, samples), nil
	case len(spec.Keys) > 0:
		keys := make([]TRS, len(spec.Keys))
		for i := range spec.Keys {
			k, err := spec.Keys[i].trs()
			if err != nil {
				return nil, fmt.Errorf("key %d: %w", i, err)
			}
			keys[i] = k
		}
		return KeyTrack(ts, keys), nil
	default:
		fn, err := Easing(spec.Tween.Easing)
		if err != nil {
			return nil, err
		}
		from, err := spec.Tween.From.trs()
		if err != nil {
			return nil, fmt.Errorf("tween from: %w", err)
		}
		to, err := spec.Tween.To.trs()
		if err != nil {
			return nil, fmt.Errorf("tween to: %w", err)
		}
		samples := spec.Tween.Samples
		if samples == 0 && len(spec.Times) > 0 {
			samples = len(spec.Times)
		}
		return TweenTrack(from, to, ts, samples, fn), nil
	}
}

func buildSampling(spec *nodeSpec) (TimeSampling, error) {
	if spec.Sampling == nil {
		if len(spec.Times) > 0 {
			return NewSampling(spec.Times), nil
		}
		return UniformSampling{Step: 1}, nil
	}
	sp := spec.Sampling
	switch sp.Kind {
	case "", "uniform":
		if sp.Step <= 0 {
			return nil, fmt.Errorf("uniform sampling needs a positive step")
		}
		return UniformSampling{Start: sp.Start, Step: sp.Step}, nil
	case "cyclic":
		if sp.TimePerCycle <= 0 || len(sp.Times) == 0 {
			return nil, fmt.Errorf("cyclic sampling needs timePerCycle and times")
		}
		return CyclicSampling{TimePerCycle: sp.TimePerCycle, Times: sp.Times}, nil
	case "acyclic":
		if len(sp.Times) == 0 {
			return nil, fmt.Errorf("acyclic sampling needs times")
		}
		return AcyclicSampling{Times: sp.Times}, nil
	default:
		return nil, fmt.Errorf("unknown sampling kind %q", sp.Kind)
	}
}

func (t trsSpec) trs() (TRS, error) {
	out := IdentityTRS
	for _, f := range []struct {
		name string
		in   []float64
		out  *mgl64.Vec3
	}{
		{"translate", t.Translate, &out.Translate},
		{"rotate", t.Rotate, &out.Rotate},
		{"scale", t.Scale, &out.Scale},
	} {
		if f.in == nil {
			continue
		}
		if len(f.in) != 3 {
			return TRS{}, fmt.Errorf("%s has %d values, want 3", f.name, len(f.in))
		}
		copy(f.out[:], f.in)
	}
	return out, nil
}
