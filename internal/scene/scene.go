// Package scene installs a scene description into an engine.
package scene

import (
	"fmt"
	"time"

	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/config"
	"github.com/san-kum/roundphysics/internal/engine"
	"github.com/san-kum/roundphysics/internal/integrator"
	"github.com/san-kum/roundphysics/internal/random"
)

// Build replaces the engine's bodies and environment with those of cfg and
// returns the seed that was used. The engine's bounds should match the
// scene's viewport.
func Build(cfg *config.Scene, eng *engine.Engine) (int64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := random.New(seed)

	if err := eng.ChangeIntegrator(integrator.Kind(cfg.Integrator)); err != nil {
		return 0, err
	}
	background := cfg.Background
	if background == "" {
		background = config.DefaultBackground
	}
	eng.ChangeBackground(background)

	eng.ClearBodies()
	eng.ClearEnvironment()
	if !cfg.Gravity.IsZero() {
		eng.SetEnvironmentForce(behavior.NewGravity(behavior.ConstVec(cfg.Gravity)))
	}
	if cfg.DragFriction > 0 {
		eng.SetEnvironmentForce(behavior.NewDrag(behavior.ConstVec(cfg.Wind), behavior.Const(cfg.DragFriction)))
	}

	for i, bc := range cfg.Bodies {
		color := bc.Color
		if color == "" {
			color = rnd.Color()
		}
		b, err := eng.AddBody(bc.Mass, bc.Radius, color, bc.X, bc.Y)
		if err != nil {
			return 0, fmt.Errorf("scene: body %d: %w", i, err)
		}
		b.Vel.SetXY(bc.VX, bc.VY)
		if err := attach(b, bc.Behaviors, cfg, eng, rnd.Fork()); err != nil {
			return 0, fmt.Errorf("scene: body %d: %w", i, err)
		}
	}

	for i := 0; i < cfg.RandomBodies; i++ {
		if _, err := AddRandomBody(cfg, eng, rnd); err != nil {
			return 0, fmt.Errorf("scene: random body %d: %w", i, err)
		}
	}

	return seed, nil
}

func attach(b *body.Body, specs []behavior.Spec, cfg *config.Scene, eng *engine.Engine, rnd *random.Random) error {
	env := behavior.Env{
		Bounds:  eng.Bounds(),
		Rand:    rnd,
		Pointer: eng.Pointer,
	}
	for _, s := range specs {
		if s.Kind == behavior.KindEdgeBounce && s.Retained == nil {
			s.Retained = cfg.EnergyRetained
		}
		bh, err := behavior.FromSpec(s, env)
		if err != nil {
			return err
		}
		b.AddBehavior(bh)
	}
	return nil
}

// AddRandomBody adds one random body carrying the scene's random behaviors.
func AddRandomBody(cfg *config.Scene, eng *engine.Engine, rnd *random.Random) (*body.Body, error) {
	b := rnd.Body(eng.Bounds())
	if err := attach(b, cfg.RandomBehaviors, cfg, eng, rnd.Fork()); err != nil {
		return nil, err
	}
	if err := eng.Add(b); err != nil {
		return nil, err
	}
	return b, nil
}
