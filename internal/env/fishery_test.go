package env_test

import (
	"github.com/go-logr/logr/funcr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fishsim/internal/dynamo"
	"github.com/san-kum/fishsim/internal/env"
)

func benchmarkParams() env.Params {
	p := env.DefaultParams()
	p.InitState = 0.5
	p.GrowthRate = 1.0
	p.CarryingCapacity = 1.0
	p.ExtinctionThreshold = 0.1
	return p
}

func newFishery(p env.Params) *env.Fishery {
	f, err := env.New(p, env.WithLogger(GinkgoLogr))
	Expect(err).NotTo(HaveOccurred())
	return f
}

var _ = Describe("Fishery", func() {
	var (
		p env.Params
		f *env.Fishery
	)

	BeforeEach(func() {
		p = benchmarkParams()
		f = newFishery(p)
	})

	Describe("spaces", func() {
		It("declares one-dimensional unit boxes", func() {
			for _, b := range []env.Box{f.ObservationSpace(), f.ActionSpace()} {
				Expect(b.Dim()).To(Equal(1))
				Expect(b.Low()).To(Equal(dynamo.State{0}))
				Expect(b.High()).To(Equal(dynamo.State{1}))
			}
		})
	})

	Describe("Reset", func() {
		It("starts ready to use", func() {
			Expect(f.Phase()).To(Equal(env.Active))
			Expect(f.TimeStep()).To(Equal(0))
			Expect(f.Population()).To(Equal(dynamo.State{0.5}))
		})

		It("returns exactly the initial state regardless of history", func() {
			for i := 0; i < 17; i++ {
				f.Step(dynamo.Control{0.05})
			}
			obs := f.Reset(99, env.Options{"render": true})
			Expect(obs).To(Equal(dynamo.State{p.InitState}))
			Expect(f.TimeStep()).To(Equal(0))
			Expect(f.Phase()).To(Equal(env.Active))
		})

		It("is idempotent", func() {
			first := f.Reset(1, nil)
			second := f.Reset(2, nil)
			Expect(second).To(Equal(first))
		})

		It("revives a terminated episode", func() {
			_, _, done, _ := f.Step(dynamo.Control{1.0})
			Expect(done).To(BeTrue())
			Expect(f.Phase()).To(Equal(env.Terminated))

			f.Reset(0, nil)
			Expect(f.Phase()).To(Equal(env.Active))
			Expect(f.Collapsed()).To(BeFalse())
		})

		It("returns a copy of the state", func() {
			obs := f.Reset(0, nil)
			obs[0] = 0.9
			Expect(f.Population()).To(Equal(dynamo.State{0.5}))
		})
	})

	Describe("Step", func() {
		It("follows N' = N + rN(1 - N/K) - a", func() {
			obs, reward, done, info := f.Step(dynamo.Control{0.1})
			Expect(obs[0]).To(BeNumerically("~", 0.5+0.5*(1-0.5)-0.1, 1e-12))
			Expect(reward).To(BeNumerically("~", 0.1, 1e-12))
			Expect(done).To(BeFalse())
			Expect(info).To(BeEmpty())
			Expect(f.TimeStep()).To(Equal(1))
		})

		It("clips out-of-range actions", func() {
			obs, reward, _, _ := f.Step(dynamo.Control{-0.3})
			Expect(reward).To(Equal(0.0))
			Expect(obs[0]).To(BeNumerically("~", 0.75, 1e-12))

			f.Reset(0, nil)
			_, reward, done, _ := f.Step(dynamo.Control{4.2})
			Expect(done).To(BeTrue())
			Expect(reward).To(BeNumerically("~", 1.0-200.0, 1e-9))
		})

		It("treats a missing action component as no harvest", func() {
			obs, reward, _, _ := f.Step(nil)
			Expect(reward).To(Equal(0.0))
			Expect(obs[0]).To(BeNumerically("~", 0.75, 1e-12))
		})

		It("never returns a negative observation", func() {
			actions := []float64{-5, 0, 0.3, 1, 7, 0.9, 0.2}
			for _, a := range actions {
				f.Reset(0, nil)
				for i := 0; i < p.TMax; i++ {
					obs, _, done, _ := f.Step(dynamo.Control{a})
					Expect(obs[0]).To(BeNumerically(">=", 0))
					Expect(obs[0]).To(BeNumerically("<=", 1))
					if done {
						break
					}
				}
			}
		})

		It("terminates exactly at t_max without collapse", func() {
			for i := 1; i <= p.TMax; i++ {
				_, reward, done, _ := f.Step(dynamo.Control{0})
				Expect(reward).To(Equal(0.0))
				if i < p.TMax {
					Expect(done).To(BeFalse(), "step %d", i)
				} else {
					Expect(done).To(BeTrue())
				}
			}
			Expect(f.Collapsed()).To(BeFalse())
			Expect(f.TimeStep()).To(Equal(p.TMax))
		})

		It("converges toward the carrying capacity with no harvest", func() {
			var obs dynamo.State
			for i := 0; i < 30; i++ {
				var done bool
				obs, _, done, _ = f.Step(dynamo.Control{0})
				Expect(done).To(BeFalse())
				Expect(obs[0]).To(BeNumerically(">=", p.ExtinctionThreshold))
			}
			Expect(obs[0]).To(BeNumerically("~", p.CarryingCapacity, 1e-6))
		})

		It("collapses quickly under full harvest", func() {
			var (
				reward float64
				done   bool
				steps  int
			)
			for !done && steps < 5 {
				_, reward, done, _ = f.Step(dynamo.Control{1.0})
				steps++
			}
			Expect(done).To(BeTrue())
			Expect(f.Collapsed()).To(BeTrue())
			Expect(f.Population()).To(Equal(dynamo.State{0}))
			Expect(reward).To(BeNumerically("~", 1.0-200.0/float64(steps), 1e-9))
		})

		It("ignores steps after termination", func() {
			f.Step(dynamo.Control{1.0})
			obs, reward, done, info := f.Step(dynamo.Control{0.5})
			Expect(done).To(BeTrue())
			Expect(reward).To(Equal(0.0))
			Expect(obs).To(Equal(dynamo.State{0}))
			Expect(info).To(BeEmpty())
			Expect(f.TimeStep()).To(Equal(1))
		})
	})

	DescribeTable("collapse from below the threshold",
		func(n float64) {
			p.InitState = n
			f = newFishery(p)

			_, reward, done, _ := f.Step(dynamo.Control{0})
			Expect(done).To(BeTrue())
			Expect(f.Collapsed()).To(BeTrue())
			Expect(reward).To(BeNumerically("~", -200.0, 1e-9))
		},
		Entry("empty", 0.0),
		Entry("tiny", 0.01),
		Entry("half threshold", 0.05),
		Entry("just below", 0.0999),
	)

	Describe("penalty", func() {
		collapseAt := func(steps int) float64 {
			// Hold the population at 0.5 (growth 0.25) then take it all.
			var reward float64
			for i := 0; i < steps-1; i++ {
				_, _, done, _ := f.Step(dynamo.Control{0.25})
				Expect(done).To(BeFalse())
			}
			_, reward, done, _ := f.Step(dynamo.Control{1.0})
			Expect(done).To(BeTrue())
			return reward
		}

		It("punishes early collapses more than late ones", func() {
			early := collapseAt(2)
			f.Reset(0, nil)
			late := collapseAt(100)
			Expect(early).To(BeNumerically("~", 1.0-100.0, 1e-9))
			Expect(late).To(BeNumerically("~", 1.0-2.0, 1e-9))
			Expect(early).To(BeNumerically("<", late))
		})

		It("supports a constant penalty", func() {
			p.Penalty = env.Penalty{Kind: env.PenaltyConstant, Scale: 10}
			f = newFishery(p)
			Expect(collapseAt(3)).To(BeNumerically("~", 1.0-10.0, 1e-9))
		})

		It("supports no penalty", func() {
			p.Penalty = env.Penalty{Kind: env.PenaltyNone}
			f = newFishery(p)
			Expect(collapseAt(1)).To(BeNumerically("~", 1.0, 1e-9))
		})
	})

	Describe("effort actions", func() {
		It("harvests a fraction of the population", func() {
			p.ActionMode = env.ActionEffort
			f = newFishery(p)

			obs, reward, done, _ := f.Step(dynamo.Control{0.5})
			Expect(reward).To(BeNumerically("~", 0.25, 1e-12))
			Expect(obs[0]).To(BeNumerically("~", 0.75-0.25, 1e-12))
			Expect(done).To(BeFalse())
		})
	})

	Describe("reset noise", func() {
		BeforeEach(func() {
			p.ResetSigma = 0.05
			f = newFishery(p)
		})

		It("is reproducible for a given seed", func() {
			a := f.Reset(7, nil)
			b := f.Reset(7, nil)
			Expect(a).To(Equal(b))
		})

		It("varies across seeds and stays in the observation space", func() {
			distinct := map[float64]bool{}
			for seed := uint64(1); seed <= 20; seed++ {
				obs := f.Reset(seed, nil)
				Expect(f.ObservationSpace().Contains(obs)).To(BeTrue())
				distinct[obs[0]] = true
			}
			Expect(len(distinct)).To(BeNumerically(">", 1))
		})
	})

	Describe("drift", func() {
		It("changes the trajectory relative to a stationary run", func() {
			p.Drift = map[string]float64{"r": -0.01}
			drifting := newFishery(p)

			var a, b dynamo.State
			for i := 0; i < 10; i++ {
				a, _, _, _ = f.Step(dynamo.Control{0.2})
				b, _, _, _ = drifting.Step(dynamo.Control{0.2})
			}
			Expect(b[0]).To(BeNumerically("<", a[0]))
		})
	})

	Describe("rk4 stepping", func() {
		It("stays within the unit interval", func() {
			p.Integrator = "rk4"
			f = newFishery(p)
			for i := 0; i < 50; i++ {
				obs, _, _, _ := f.Step(dynamo.Control{0.1})
				Expect(f.ObservationSpace().Contains(obs)).To(BeTrue())
			}
		})
	})

	Describe("var_bound", func() {
		It("rejects a carrying capacity above the bound", func() {
			p.CarryingCapacity = 2
			_, err := env.New(p)
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})

		It("lets the population grow to a carrying capacity above one", func() {
			p.CarryingCapacity = 2
			p.VarBound = 2
			f = newFishery(p)

			var obs dynamo.State
			for i := 0; i < 60; i++ {
				obs, _, _, _ = f.Step(dynamo.Control{0})
			}
			Expect(f.Population()[0]).To(BeNumerically("~", 2, 1e-9))
			Expect(obs[0]).To(BeNumerically("~", 1, 1e-9))
		})

		It("observes the population scaled into the unit interval", func() {
			p.CarryingCapacity = 2
			p.VarBound = 2
			p.InitState = 1
			f = newFishery(p)
			Expect(f.Reset(0, nil)).To(Equal(dynamo.State{0.5}))

			obs, reward, done, _ := f.Step(dynamo.Control{0.5})
			Expect(done).To(BeFalse())
			Expect(reward).To(Equal(0.5))
			Expect(f.Population()).To(Equal(dynamo.State{1}))
			Expect(obs).To(Equal(dynamo.State{0.5}))
		})
	})

	Describe("LastHarvest", func() {
		It("reports the clipped harvest of the last step", func() {
			Expect(f.LastHarvest()).To(Equal(dynamo.Control{0}))
			f.Step(dynamo.Control{0.2})
			Expect(f.LastHarvest()).To(Equal(dynamo.Control{0.2}))
		})

		It("reports effort harvests as masses", func() {
			p.ActionMode = env.ActionEffort
			f = newFishery(p)
			f.Step(dynamo.Control{1.5})
			Expect(f.LastHarvest()).To(Equal(dynamo.Control{0.5}))
		})

		It("is zero for a step on a terminated episode", func() {
			_, _, done, _ := f.Step(dynamo.Control{1})
			Expect(done).To(BeTrue())
			Expect(f.LastHarvest()).To(Equal(dynamo.Control{1}))

			_, reward, done, _ := f.Step(dynamo.Control{1})
			Expect(done).To(BeTrue())
			Expect(reward).To(BeZero())
			Expect(f.LastHarvest()).To(Equal(dynamo.Control{0}))
		})
	})

	Describe("terminated episodes", func() {
		It("log ErrTerminated when stepped again", func() {
			var lines []string
			log := funcr.New(func(prefix, args string) {
				lines = append(lines, args)
			}, funcr.Options{Verbosity: 1})

			f, err := env.New(p, env.WithLogger(log))
			Expect(err).NotTo(HaveOccurred())
			_, _, done, _ := f.Step(dynamo.Control{1})
			Expect(done).To(BeTrue())
			Expect(lines).NotTo(ContainElement(ContainSubstring(dynamo.ErrTerminated.Error())))

			f.Step(dynamo.Control{0})
			Expect(lines).To(ContainElement(ContainSubstring(dynamo.ErrTerminated.Error())))
		})
	})

	Describe("Factory", func() {
		It("builds independent instances", func() {
			factory := env.Factory(p)
			a, err := factory()
			Expect(err).NotTo(HaveOccurred())
			b, err := factory()
			Expect(err).NotTo(HaveOccurred())

			a.Step(dynamo.Control{1.0})
			obs, _, done, _ := b.Step(dynamo.Control{0})
			Expect(done).To(BeFalse())
			Expect(obs[0]).To(BeNumerically("~", 0.75, 1e-12))
		})

		It("reports invalid params", func() {
			p.TMax = 0
			_, err := env.Factory(p)()
			Expect(err).To(MatchError(dynamo.ErrParameterBounds))
		})
	})
})
