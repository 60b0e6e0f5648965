package arena

// Multipliers scale the pursuit distance per enemy type.
// A larger multiplier divides the step more, so that type closes in slower.
type Multipliers struct {
	Weak   float64
	Medium float64
	Strong float64
}

// DefaultMultipliers returns the classic 1.8 / 1.5 / 1.2 set.
func DefaultMultipliers() Multipliers {
	return Multipliers{Weak: 1.8, Medium: 1.5, Strong: 1.2}
}

// For returns the multiplier for t, or 1 for an unknown type.
func (m Multipliers) For(t EnemyType) float64 {
	var v float64
	switch t {
	case Weak:
		v = m.Weak
	case Medium:
		v = m.Medium
	case Strong:
		v = m.Strong
	}
	if v <= 0 {
		return 1
	}
	return v
}

// ResolveAbility fires caster's action at the nearest target within range.
// Ties keep the first target found. The hit target loses Magnitude hp.
// Returns the index of the hit target, or ok=false when nothing was in range.
func ResolveAbility(caster Object, targets []Object) (hit int, ok bool) {
	switch caster.Action.Type {
	case ActionProjectile:
	default:
		return 0, false
	}

	reach := caster.Action.Range()
	best := 0.0
	hit = -1
	from := caster.Pos()
	for i := range targets {
		d := from.Dist(targets[i].Pos())
		if d > reach {
			continue
		}
		if hit < 0 || d < best {
			hit, best = i, d
		}
	}
	if hit < 0 {
		return 0, false
	}
	targets[hit].HP -= caster.Action.Magnitude
	return hit, true
}

// Collides reports whether a corner of either box lies strictly inside the
// other. Boxes that overlap without any corner inside the other box are
// not detected.
func Collides(a, b Object) bool {
	ab, bb := a.Box(), b.Box()
	return ab.CornerInside(bb) || bb.CornerInside(ab)
}

// StepEnemy moves enemy toward player by (delta / d) where d is the
// distance scaled by the type multiplier, floored at minDistance.
// speed scales the resulting step; 1 keeps the classic pace.
func StepEnemy(enemy *Object, player Object, mult Multipliers, minDistance, speed float64) {
	if minDistance <= 0 {
		minDistance = 1
	}
	d := enemy.Pos().Dist(player.Pos()) * mult.For(enemy.Enemy)
	if d < minDistance {
		d = minDistance
	}
	enemy.X += (player.X - enemy.X) / d * speed
	enemy.Y += (player.Y - enemy.Y) / d * speed
}

// PurgeDead removes every object with hp <= 0, keeping the survivors in
// order. It reuses the backing array and returns the shortened slice and
// the number of removed objects.
func PurgeDead(objs []Object) ([]Object, int) {
	kept := objs[:0]
	for _, o := range objs {
		if !o.Dead() {
			kept = append(kept, o)
		}
	}
	removed := len(objs) - len(kept)
	// Zero the tail so dropped objects are not retained
	clear(objs[len(kept):])
	return kept, removed
}
