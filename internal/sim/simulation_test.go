package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/sim"
)

func orbitPair() []physics.Body {
	return []physics.Body{
		{ID: "1", Mass: 1e7, Radius: 50},
		{ID: "2", Mass: 100, Pos: r2.Vec{X: 100}, Vel: r2.Vec{Y: physics.CircularSpeed(1e7, 100)}, Radius: 10},
	}
}

type countMetric struct {
	observed int
	resets   int
}

func (c *countMetric) Name() string                        { return "count" }
func (c *countMetric) Observe(_ []physics.Body, _ float64) { c.observed++ }
func (c *countMetric) Value() float64                      { return float64(c.observed) }

func (c *countMetric) Reset() {
	c.observed = 0
	c.resets++
}

var _ = Describe("Simulation", func() {
	Describe("construction", func() {
		DescribeTable("rejects invalid time steps",
			func(dt float64) {
				s, err := sim.New(orbitPair(), dt, nil)
				Expect(s).To(BeNil())
				Expect(err).To(MatchError(physics.ErrNonPositiveTimeStep))

				var ce *physics.ConstructionError
				Expect(errors.As(err, &ce)).To(BeTrue())
			},
			Entry("zero", 0.0),
			Entry("negative", -3600.0),
			Entry("NaN", math.NaN()),
			Entry("infinite", math.Inf(1)),
		)

		It("rejects a body with non-positive mass", func() {
			bodies := orbitPair()
			bodies[1].Mass = 0

			_, err := sim.New(bodies, 1, nil)
			Expect(err).To(MatchError(physics.ErrNonPositiveMass))

			var ce *physics.ConstructionError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect(ce.Body).To(Equal("2"))
		})

		It("rejects duplicate identifiers", func() {
			bodies := orbitPair()
			bodies[1].ID = "1"

			_, err := sim.New(bodies, 1, nil)
			Expect(err).To(MatchError(physics.ErrDuplicateID))
		})

		It("names anonymous bodies after their index", func() {
			bodies := orbitPair()
			bodies[0].ID, bodies[1].ID = "", ""

			s, err := sim.New(bodies, 1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Bodies()[0].ID).To(Equal("0"))
			Expect(s.Bodies()[1].ID).To(Equal("1"))
		})

		It("copies the input so the caller cannot mutate it", func() {
			bodies := orbitPair()
			s, err := sim.New(bodies, 1, nil)
			Expect(err).NotTo(HaveOccurred())

			bodies[1].Pos.X = 1e9
			Expect(s.Bodies()[1].Pos.X).To(Equal(100.0))
		})
	})

	Describe("Step", func() {
		var s *sim.Simulation

		BeforeEach(func() {
			var err error
			s, err = sim.New(orbitPair(), 3600, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("advances exactly one tick", func() {
			bodies, err := s.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Tick()).To(Equal(1))
			Expect(s.Time()).To(Equal(3600.0))
			Expect(bodies).To(HaveLen(2))
			Expect(bodies[1].Pos.X).To(BeNumerically("<", 100))
			Expect(bodies[1].Pos.Y).To(BeNumerically(">", 0))
		})

		It("hands out copies of the bodies", func() {
			bodies, err := s.Step()
			Expect(err).NotTo(HaveOccurred())

			bodies[0].Mass = -1
			Expect(s.Bodies()[0].Mass).To(Equal(1e7))
		})

		It("keeps the separation close to the initial radius", func() {
			bodies, err := s.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(physics.Separation(bodies[0], bodies[1])).To(BeNumerically("~", 100, 1.0))
		})

		It("is deterministic from a saved snapshot", func() {
			for i := 0; i < 10; i++ {
				_, err := s.Step()
				Expect(err).NotTo(HaveOccurred())
			}
			snap := s.Snapshot()

			first, err := s.Step()
			Expect(err).NotTo(HaveOccurred())

			s.Restore(snap)
			Expect(s.Tick()).To(Equal(10))

			second, err := s.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("notifies observers with the committed tick", func() {
			var ticks []int
			s.AddObserver(sim.ObserverFunc(func(tick int, t float64, bodies []physics.Body) {
				ticks = append(ticks, tick)
				Expect(t).To(Equal(float64(tick) * 3600))
			}))

			for i := 0; i < 3; i++ {
				_, err := s.Step()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(ticks).To(Equal([]int{1, 2, 3}))
		})
	})

	Describe("collisions", func() {
		var (
			s      *sim.Simulation
			before []physics.Body
		)

		BeforeEach(func() {
			bodies := []physics.Body{
				{ID: "far", Mass: 1, Pos: r2.Vec{X: 1000}, Vel: r2.Vec{Y: 2}},
				{ID: "left", Mass: 5, Pos: r2.Vec{X: 3, Y: 4}, Vel: r2.Vec{X: 1}},
				{ID: "right", Mass: 7, Pos: r2.Vec{X: 3, Y: 4}, Vel: r2.Vec{X: -1}},
			}
			var err error
			s, err = sim.New(bodies, 10, nil)
			Expect(err).NotTo(HaveOccurred())
			before = s.Bodies()
		})

		It("fails the tick and names both bodies", func() {
			bodies, err := s.Step()
			Expect(bodies).To(BeNil())
			Expect(err).To(MatchError(physics.ErrCollision))

			var te *sim.TickError
			Expect(errors.As(err, &te)).To(BeTrue())
			Expect(te.Tick).To(Equal(0))

			var ce *physics.CollisionError
			Expect(errors.As(err, &ce)).To(BeTrue())
			Expect([]string{ce.A, ce.B}).To(ConsistOf("left", "right"))
		})

		It("commits nothing", func() {
			_, err := s.Step()
			Expect(err).To(HaveOccurred())
			Expect(s.Tick()).To(Equal(0))
			Expect(s.Bodies()).To(Equal(before))
		})

		It("stops Run at the failing tick", func() {
			res, err := s.Run(context.Background(), 50)
			Expect(err).To(MatchError(physics.ErrCollision))
			Expect(res.Ticks).To(Equal(0))
			Expect(res.Final).To(Equal(before))
		})
	})

	Describe("Run", func() {
		It("steps the requested number of ticks and collects metrics", func() {
			s, err := sim.New(orbitPair(), 60, nil)
			Expect(err).NotTo(HaveOccurred())

			m := &countMetric{}
			s.AddMetric(m)

			res, err := s.Run(context.Background(), 25)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Ticks).To(Equal(25))
			Expect(res.Time).To(Equal(25 * 60.0))
			Expect(res.Metrics).To(HaveKeyWithValue("count", 26.0))
			Expect(m.resets).To(Equal(1))
		})

		It("honours a cancelled context between ticks", func() {
			s, err := sim.New(orbitPair(), 60, nil)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			res, err := s.Run(ctx, 100)
			Expect(err).To(MatchError(context.Canceled))
			Expect(res.Ticks).To(Equal(0))
		})

		It("keeps a single body at rest in place", func() {
			s, err := sim.New([]physics.Body{{ID: "solo", Mass: 42, Pos: r2.Vec{X: 7, Y: 8}}}, 1e6, nil)
			Expect(err).NotTo(HaveOccurred())

			res, err := s.Run(context.Background(), 1000)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Final[0].Pos).To(Equal(r2.Vec{X: 7, Y: 8}))
			Expect(res.Final[0].Vel).To(Equal(r2.Vec{}))
		})
	})
})

var _ = Describe("Ensemble", func() {
	It("runs independent simulations and reports errors per run", func() {
		good, err := sim.New(orbitPair(), 60, nil)
		Expect(err).NotTo(HaveOccurred())
		other, err := sim.New(orbitPair(), 120, nil)
		Expect(err).NotTo(HaveOccurred())
		bad, err := sim.New([]physics.Body{
			{ID: "a", Mass: 1},
			{ID: "b", Mass: 1},
		}, 1, nil)
		Expect(err).NotTo(HaveOccurred())

		results, errs := sim.NewEnsemble([]*sim.Simulation{good, bad, other}, 2).Run(context.Background(), 40)
		Expect(results).To(HaveLen(3))
		Expect(errs[0]).NotTo(HaveOccurred())
		Expect(errs[1]).To(MatchError(physics.ErrCollision))
		Expect(errs[2]).NotTo(HaveOccurred())

		Expect(results[0].Time).To(Equal(40 * 60.0))
		Expect(results[2].Time).To(Equal(40 * 120.0))
	})

	It("matches sequential runs bit for bit", func() {
		seq, err := sim.New(orbitPair(), 600, nil)
		Expect(err).NotTo(HaveOccurred())
		want, err := seq.Run(context.Background(), 100)
		Expect(err).NotTo(HaveOccurred())

		sims := make([]*sim.Simulation, 4)
		for i := range sims {
			sims[i], err = sim.New(orbitPair(), 600, nil)
			Expect(err).NotTo(HaveOccurred())
		}

		results, errs := sim.NewEnsemble(sims, 0).Run(context.Background(), 100)
		for i := range results {
			Expect(errs[i]).NotTo(HaveOccurred())
			Expect(results[i].Final).To(Equal(want.Final))
		}
	})

	It("runs each simulation for the same simulated time", func() {
		fine, err := sim.New(orbitPair(), 30, nil)
		Expect(err).NotTo(HaveOccurred())
		coarse, err := sim.New(orbitPair(), 120, nil)
		Expect(err).NotTo(HaveOccurred())

		results, errs := sim.NewEnsemble([]*sim.Simulation{fine, coarse}, 0).RunDuration(context.Background(), 3600)
		Expect(errs[0]).NotTo(HaveOccurred())
		Expect(errs[1]).NotTo(HaveOccurred())
		Expect(results[0].Ticks).To(Equal(120))
		Expect(results[1].Ticks).To(Equal(30))
		Expect(results[0].Time).To(Equal(results[1].Time))
	})
})
