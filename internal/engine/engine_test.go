package engine_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/roundphysics/internal/behavior"
	"github.com/san-kum/roundphysics/internal/body"
	"github.com/san-kum/roundphysics/internal/clock"
	"github.com/san-kum/roundphysics/internal/engine"
	"github.com/san-kum/roundphysics/internal/integrator"
	"github.com/san-kum/roundphysics/internal/vec"
)

type recordingRenderer struct {
	draws       int
	backgrounds []string
	lastCount   int
}

func (r *recordingRenderer) Draw(background string, bodies []*body.Body) {
	r.draws++
	r.backgrounds = append(r.backgrounds, background)
	r.lastCount = len(bodies)
}

type fixedInput struct {
	p  vec.Vec2
	ok bool
}

func (f *fixedInput) Pointer() (vec.Vec2, bool) { return f.p, f.ok }

type rendererFunc func(background string, bodies []*body.Body)

func (f rendererFunc) Draw(background string, bodies []*body.Body) { f(background, bodies) }

var _ = Describe("Engine", func() {
	var (
		clk      *clock.Manual
		renderer *recordingRenderer
		eng      *engine.Engine
	)

	BeforeEach(func() {
		clk = clock.NewManual()
		renderer = &recordingRenderer{}
		eng = engine.New(clk, renderer, engine.WithBackground("navy"))
	})

	Describe("construction", func() {
		It("rejects non-positive mass and radius", func() {
			_, err := eng.AddBody(0, 10, "red", 0, 0)
			Expect(err).To(MatchError(body.ErrInvalidMass))

			_, err = eng.AddBody(1, -1, "red", 0, 0)
			Expect(err).To(MatchError(body.ErrInvalidRadius))

			Expect(eng.Bodies()).To(BeEmpty())
		})

		It("removes the first structurally equal body", func() {
			a, _ := eng.AddBody(1, 10, "red", 0, 0)
			_, _ = eng.AddBody(2, 10, "red", 0, 0)
			_, _ = eng.AddBody(1, 10, "red", 100, 100)

			match, err := body.New(1, 10, "red", 500, 500)
			Expect(err).NotTo(HaveOccurred())

			Expect(eng.RemoveBody(match)).To(BeTrue())
			Expect(eng.Bodies()).To(HaveLen(2))
			Expect(eng.Bodies()).NotTo(ContainElement(a))

			Expect(eng.RemoveBody(match)).To(BeTrue())
			Expect(eng.RemoveBody(match)).To(BeFalse())
			Expect(eng.Bodies()).To(HaveLen(1))
		})

		It("removes an exact body by identity", func() {
			first, _ := eng.AddBody(1, 10, "red", 0, 0)
			last, _ := eng.AddBody(1, 10, "red", 100, 100)
			Expect(eng.Select(vec.New(100, 100))).To(BeTrue())

			Expect(eng.Remove(last)).To(BeTrue())
			Expect(eng.Bodies()).To(ConsistOf(first))
			Expect(eng.Selected()).To(BeNil())

			Expect(eng.Remove(last)).To(BeFalse())
		})

		It("replaces environment forces of the same kind", func() {
			eng.SetEnvironmentForce(behavior.NewGravity(behavior.ConstVec(vec.New(0, 10))))
			eng.SetEnvironmentForce(behavior.NewDrag(behavior.ConstVec(vec.New(1, 0)), behavior.Const(0.1)))
			eng.SetEnvironmentForce(behavior.NewGravity(behavior.ConstVec(vec.New(0, 20))))

			env := eng.Environment()
			Expect(env).To(HaveLen(2))
			Expect(env[0].Name()).To(Equal("gravity(0.0000, 20.0000)"))

			eng.ClearEnvironment()
			Expect(eng.Environment()).To(BeEmpty())
		})

		It("rejects unknown integrators", func() {
			Expect(eng.ChangeIntegrator("rk4")).To(MatchError(integrator.ErrUnknown))
			Expect(eng.ChangeIntegrator(integrator.KindVerlet)).To(Succeed())
			Expect(eng.Integrator().Name()).To(Equal("verlet"))
		})
	})

	Describe("lifecycle", func() {
		It("starts idle and refuses a second start", func() {
			Expect(eng.State()).To(Equal(engine.Idle))
			Expect(eng.Start(context.Background())).To(Succeed())
			Expect(eng.State()).To(Equal(engine.Running))
			Expect(eng.Start(context.Background())).To(MatchError(engine.ErrRunning))
			Expect(clk.Pending()).To(BeTrue())
		})

		It("keeps scheduling frames while running", func() {
			Expect(eng.Start(context.Background())).To(Succeed())
			Expect(clk.Run(5, 16)).To(Equal(5))
			Expect(renderer.draws).To(Equal(5))
			Expect(renderer.backgrounds).To(HaveEach("navy"))
			Expect(eng.Stats().Frame).To(Equal(5))
		})

		It("does not run the pending frame after Stop", func() {
			Expect(eng.Start(context.Background())).To(Succeed())
			clk.Run(2, 16)

			eng.Stop()
			Expect(eng.State()).To(Equal(engine.Stopped))
			Eventually(eng.Done()).Should(BeClosed())

			clk.Advance(clk.Now() + 16)
			Expect(renderer.draws).To(Equal(2))
			Expect(clk.Pending()).To(BeFalse())
		})

		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			Expect(eng.Start(ctx)).To(Succeed())
			clk.Run(3, 16)

			cancel()
			clk.Advance(clk.Now() + 16)

			Expect(renderer.draws).To(Equal(3))
			Expect(eng.State()).To(Equal(engine.Stopped))
			Expect(eng.Done()).To(BeClosed())
		})

		It("lets an observer stop the loop mid-frame", func() {
			eng.AddObserver(engine.ObserverFunc(func(frame int, t float64, bodies []*body.Body) {
				if frame == 3 {
					eng.Stop()
				}
			}))
			Expect(eng.Start(context.Background())).To(Succeed())

			Expect(clk.Run(10, 16)).To(Equal(3))
			Expect(renderer.draws).To(Equal(3))
		})

		It("lets observers and renderers read the engine during a frame", func() {
			_, _ = eng.AddBody(1, 10, "red", 50, 50)

			var seen engine.Stats
			eng.AddObserver(engine.ObserverFunc(func(frame int, t float64, bodies []*body.Body) {
				seen = eng.Stats()
				Expect(eng.Bodies()).To(HaveLen(len(bodies)))
				Expect(eng.Selected()).To(BeNil())
				Expect(eng.Integrator().Name()).To(Equal("euler"))
			}))

			var drawnOn string
			var drawing *engine.Engine
			drawing = engine.New(clk, rendererFunc(func(background string, bodies []*body.Body) {
				drawnOn = drawing.Background()
				_ = drawing.Stats()
			}), engine.WithBackground("teal"))

			done := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				defer close(done)
				eng.Frame(16)
				drawing.Frame(16)
			}()
			Eventually(done, "2s").Should(BeClosed())

			Expect(seen.Frame).To(Equal(1))
			Expect(seen.Bodies).To(Equal(1))
			Expect(drawnOn).To(Equal("teal"))
		})

		It("restarts with a fresh timestep history", func() {
			b, _ := eng.AddBody(1, 10, "red", 50, 50)
			b.AddBehavior(behavior.NewConstantForce(behavior.ConstVec(vec.New(0, 10))))

			Expect(eng.Start(context.Background())).To(Succeed())
			clk.Run(3, 100)
			eng.Stop()

			Expect(eng.Start(context.Background())).To(Succeed())
			clk.Advance(clk.Now() + 100)
			Expect(eng.Stats().Dt).To(BeZero())
		})
	})

	Describe("frame timing", func() {
		It("moves nothing on the first frame and integrates from the second", func() {
			b, err := eng.AddBody(1, 10, "red", 50, 50)
			Expect(err).NotTo(HaveOccurred())
			b.AddBehavior(behavior.NewConstantForce(behavior.ConstVec(vec.New(0, 10))))

			Expect(eng.Start(context.Background())).To(Succeed())

			clk.Advance(1000)
			Expect(b.Pos).To(Equal(vec.New(50, 50)))
			Expect(b.Acc.IsZero()).To(BeTrue())

			clk.Advance(2000)
			Expect(b.Vel.X).To(BeNumerically("~", 0, 1e-12))
			Expect(b.Vel.Y).To(BeNumerically("~", 10, 1e-12))
			Expect(b.Pos.Y).To(BeNumerically("~", 55, 1e-12))
		})

		It("waits for two positive deltas under Verlet", func() {
			Expect(eng.ChangeIntegrator(integrator.KindVerlet)).To(Succeed())
			b, _ := eng.AddBody(1, 10, "red", 100, 100)
			b.AddBehavior(behavior.NewConstantForce(behavior.ConstVec(vec.New(0, 1000))))

			Expect(eng.Start(context.Background())).To(Succeed())

			clk.Advance(1000)
			Expect(b.Pos.Y).To(Equal(100.0))

			clk.Advance(1016)
			Expect(b.Pos.Y).To(Equal(100.0))

			clk.Advance(1032)
			Expect(b.Pos.Y).To(BeNumerically(">", 100))
		})

		It("treats a repeated timestamp as a zero step", func() {
			b, _ := eng.AddBody(1, 10, "red", 50, 50)
			b.Vel = vec.New(10, 0)

			eng.Frame(1000)
			eng.Frame(1100)
			x := b.Pos.X
			eng.Frame(1100)

			Expect(b.Pos.X).To(Equal(x))
			Expect(eng.Stats().Dt).To(BeZero())
		})

		It("accumulates simulated time from positive steps only", func() {
			eng.Frame(500)
			eng.Frame(750)
			eng.Frame(700)
			eng.Frame(1000)
			Expect(eng.Stats().Time).To(BeNumerically("~", 0.55, 1e-12))
		})
	})

	Describe("environment forces", func() {
		It("apply to every body before its own behaviors", func() {
			light, _ := eng.AddBody(1, 5, "red", 100, 100)
			heavy, _ := eng.AddBody(4, 5, "blue", 200, 100)
			eng.SetEnvironmentForce(behavior.NewGravity(behavior.ConstVec(vec.New(0, 9.8))))

			eng.Frame(1000)
			eng.Frame(2000)

			Expect(light.Vel.Y).To(BeNumerically("~", 9.8, 1e-9))
			Expect(heavy.Vel.Y).To(BeNumerically("~", 9.8, 1e-9))
		})
	})

	Describe("pointer drag", func() {
		var input *fixedInput

		BeforeEach(func() {
			input = &fixedInput{}
			eng = engine.New(clk, renderer,
				engine.WithInput(input),
				engine.WithBounds(behavior.FixedBounds{W: 400, H: 300}),
			)
		})

		It("selects the nearest body containing the point", func() {
			_, _ = eng.AddBody(1, 50, "red", 100, 100)
			near, _ := eng.AddBody(1, 50, "blue", 130, 100)

			Expect(eng.Select(vec.New(125, 100))).To(BeTrue())
			Expect(eng.Selected()).To(BeIdenticalTo(near))
			Expect(eng.Select(vec.New(390, 290))).To(BeFalse())
			Expect(eng.Selected()).To(BeNil())
		})

		It("pins the selected body to the clamped pointer", func() {
			b, _ := eng.AddBody(1, 20, "red", 100, 100)
			b.Vel = vec.New(30, 30)
			Expect(eng.Select(vec.New(100, 100))).To(BeTrue())

			input.p, input.ok = vec.New(1000, 150), true
			eng.Frame(16)

			Expect(b.Pos).To(Equal(vec.New(380, 150)))
			Expect(b.Vel.IsZero()).To(BeTrue())

			eng.Deselect()
			input.p = vec.New(10, 10)
			eng.Frame(32)
			Expect(b.Pos).To(Equal(vec.New(380, 150)))
		})

		It("leaves the body alone when the pointer is off the surface", func() {
			b, _ := eng.AddBody(1, 20, "red", 100, 100)
			Expect(eng.Select(vec.New(100, 100))).To(BeTrue())

			input.p, input.ok = vec.New(200, 200), false
			eng.Frame(16)
			Expect(b.Pos).To(Equal(vec.New(100, 100)))
		})
	})

	Describe("parallel behaviors", func() {
		It("matches the serial result", func() {
			build := func(opts ...engine.Option) *engine.Engine {
				e := engine.New(clock.NewManual(), nil, opts...)
				for i := 0; i < 300; i++ {
					b, _ := e.AddBody(1+float64(i%5), 5, "red", float64(i), float64(2*i))
					b.AddBehavior(behavior.NewGravitation(
						behavior.ConstVec(vec.New(400, 300)), behavior.Const(50), behavior.Const(10)))
				}
				return e
			}

			serial := build()
			parallel := build(engine.WithParallel(4))
			for _, ts := range []float64{16, 32, 48, 64} {
				serial.Frame(ts)
				parallel.Frame(ts)
			}

			s, p := serial.Bodies(), parallel.Bodies()
			Expect(p).To(HaveLen(len(s)))
			for i := range s {
				Expect(p[i].Pos).To(Equal(s[i].Pos))
			}
		})
	})
})
