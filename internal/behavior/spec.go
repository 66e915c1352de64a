package behavior

import (
	"errors"
	"fmt"

	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/vec"
)

var ErrUnknownKind = errors.New("behavior: unknown kind")

type Kind string

const (
	KindConstant    Kind = "constant"
	KindGravity     Kind = "gravity"
	KindGravitation Kind = "gravitation"
	KindWander      Kind = "wander"
	KindEdgeBounce  Kind = "bounce"
	KindEdgeWrap    Kind = "wrap"
	KindDrag        Kind = "drag"
)

var Kinds = []Kind{KindConstant, KindGravity, KindGravitation, KindWander, KindEdgeBounce, KindEdgeWrap, KindDrag}

// Spec is the declarative form of a behavior used by scene files. Only the
// fields relevant to Kind are read.
type Spec struct {
	Kind      Kind     `yaml:"kind"`
	X         float64  `yaml:"x,omitempty"`
	Y         float64  `yaml:"y,omitempty"`
	Strength  float64  `yaml:"strength,omitempty"`
	MinRadius float64  `yaml:"min_radius,omitempty"`
	Insanity  float64  `yaml:"insanity,omitempty"`
	Speed     float64  `yaml:"speed,omitempty"`
	Retained  *float64 `yaml:"retained,omitempty"`
	Friction  float64  `yaml:"friction,omitempty"`
	Follow    bool     `yaml:"follow,omitempty"`
}

// Env carries the collaborators a Spec may need when it is built.
type Env struct {
	Bounds  Bounds
	Rand    Source
	Pointer Vector
}

// Retain returns a pointer for Spec.Retained. Unset means elastic.
func Retain(v float64) *float64 { return &v }

func FromSpec(s Spec, env Env) (body.Behavior, error) {
	point := ConstVec(vec.New(s.X, s.Y))
	switch s.Kind {
	case KindConstant:
		return NewConstantForce(point), nil
	case KindGravity:
		return NewGravity(point), nil
	case KindGravitation:
		pos := point
		if s.Follow && env.Pointer != nil {
			pos = env.Pointer
		}
		return NewGravitation(pos, Const(s.Strength), Const(s.MinRadius)), nil
	case KindWander:
		if env.Rand == nil {
			return nil, fmt.Errorf("behavior: wander needs a random source")
		}
		return NewWander(Const(s.Insanity), Const(s.Speed), env.Rand), nil
	case KindEdgeBounce:
		if env.Bounds == nil {
			return nil, fmt.Errorf("behavior: bounce needs bounds")
		}
		if s.Retained == nil {
			return NewEdgeBounce(env.Bounds), nil
		}
		return NewLossyEdgeBounce(env.Bounds, Const(*s.Retained)), nil
	case KindEdgeWrap:
		if env.Bounds == nil {
			return nil, fmt.Errorf("behavior: wrap needs bounds")
		}
		return NewEdgeWrap(env.Bounds), nil
	case KindDrag:
		return NewDrag(point, Const(s.Friction)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, s.Kind)
	}
}
