package engine

import (
	"gonum.org/v1/gonum/spatial/r3"

	"orrery/internal/domain"
)

// minSeparation floors pair distances so coincident nodes cannot divide by
// zero; they just push apart at the capped force.
const minSeparation = 0.01

// step advances the layout by one tick. The phase order is fixed: velocity
// reset, pairwise repulsion, edge springs, speed clamp, unit-timestep Euler
// integration, z clamp. Velocities are fully re-derived each tick; the
// simulation carries no momentum across frames. It never converges and has
// no termination condition; the host decides when to stop ticking.
func step(s *domain.Store, o Options) {
	nodes := s.Nodes()

	for _, n := range nodes {
		if n.Fixed {
			continue
		}
		n.Vel = r3.Vec{}
	}

	// Inverse-square repulsion over all unordered pairs. O(n^2), fine for
	// the few hundred nodes this is built for.
	for i, a := range nodes {
		for _, b := range nodes[i+1:] {
			delta := r3.Sub(a.Pos, b.Pos)
			dist := r3.Norm(delta)
			if dist < minSeparation {
				dist = minSeparation
			}

			mag := o.RepulsionForce / (dist * dist)
			push := r3.Scale(mag/dist, delta)
			if !a.Fixed {
				a.Vel = r3.Add(a.Vel, push)
			}
			if !b.Fixed {
				b.Vel = r3.Sub(b.Vel, push)
			}
		}
	}

	// Piecewise-linear springs per edge: dead inside
	// [MinDistance, DesiredDistance], linear pull beyond, linear push below.
	for _, e := range s.Edges() {
		delta := r3.Sub(e.Target.Pos, e.Source.Pos)
		dist := r3.Norm(delta)
		if dist < minSeparation {
			dist = minSeparation
		}

		var mag float64
		switch {
		case dist > o.DesiredDistance:
			mag = o.SpringConstant * (dist - o.DesiredDistance)
		case dist < o.MinDistance:
			mag = -o.SpringConstant * (o.MinDistance - dist)
		default:
			continue
		}

		pull := r3.Scale(mag/dist, delta)
		if !e.Source.Fixed {
			e.Source.Vel = r3.Add(e.Source.Vel, pull)
		}
		if !e.Target.Fixed {
			e.Target.Vel = r3.Sub(e.Target.Vel, pull)
		}
	}

	zFloor := -o.ProjectionDistance + o.MinProjectionDenominator
	for _, n := range nodes {
		if n.Fixed {
			continue
		}

		if speed := r3.Norm(n.Vel); speed > o.MaxNodeSpeed {
			n.Vel = r3.Scale(o.MaxNodeSpeed/speed, n.Vel)
		}

		n.Pos = r3.Add(n.Pos, n.Vel)

		// Keep the projection denominator strictly positive.
		if n.Pos.Z < zFloor {
			n.Pos.Z = zFloor
		}
	}
}
