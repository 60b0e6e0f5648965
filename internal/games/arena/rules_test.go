package arena

import (
	"math"
	"testing"
)

func enemyAt(x, y, size, hp float64) Object {
	return NewEnemy(Weak, x, y, size, hp, Projectile(0.5))
}

func TestResolveAbilityRadius(t *testing.T) {
	caster := NewPlayer(0, 0, 10, 20, Projectile(2.0))
	targets := []Object{
		enemyAt(10, 0, 10, 5),
		enemyAt(30, 0, 10, 5),
	}

	hit, ok := ResolveAbility(caster, targets)
	if !ok || hit != 0 {
		t.Fatalf("ResolveAbility() = (%d, %v), expected (0, true)", hit, ok)
	}
	if targets[0].HP != 3 {
		t.Errorf("near target hp = %v, expected 3", targets[0].HP)
	}
	if targets[1].HP != 5 {
		t.Errorf("far target hp = %v, expected 5 (untouched)", targets[1].HP)
	}
}

func TestResolveAbilitySelection(t *testing.T) {
	caster := NewPlayer(0, 0, 10, 20, Projectile(2.0))

	tests := []struct {
		name    string
		targets []Object
		hit     int
		ok      bool
	}{
		{
			name:    "nearest wins regardless of order",
			targets: []Object{enemyAt(20, 0, 10, 5), enemyAt(5, 0, 10, 5)},
			hit:     1,
			ok:      true,
		},
		{
			name:    "tie keeps first",
			targets: []Object{enemyAt(10, 0, 10, 5), enemyAt(0, 10, 10, 5)},
			hit:     0,
			ok:      true,
		},
		{
			name:    "range boundary is inclusive",
			targets: []Object{enemyAt(22.5, 0, 10, 5)},
			hit:     0,
			ok:      true,
		},
		{
			name:    "nothing in range",
			targets: []Object{enemyAt(100, 0, 10, 5), enemyAt(0, -40, 10, 5)},
			ok:      false,
		},
		{
			name: "no targets",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := make([]float64, len(tt.targets))
			for i, o := range tt.targets {
				before[i] = o.HP
			}

			hit, ok := ResolveAbility(caster, tt.targets)
			if ok != tt.ok {
				t.Fatalf("ok = %v, expected %v", ok, tt.ok)
			}
			for i, o := range tt.targets {
				want := before[i]
				if ok && i == tt.hit {
					want -= 2.0
				}
				if o.HP != want {
					t.Errorf("target %d hp = %v, expected %v", i, o.HP, want)
				}
			}
			if ok && hit != tt.hit {
				t.Errorf("hit = %d, expected %d", hit, tt.hit)
			}
		})
	}
}

func TestCollides(t *testing.T) {
	player := NewPlayer(100, 100, 10, 20, Projectile(2))

	tests := []struct {
		name  string
		other Object
		want  bool
	}{
		{"small enemy inside player", enemyAt(103, 103, 4, 5), true},
		{"far enemy", enemyAt(200, 200, 4, 5), false},
		{"corner overlap", enemyAt(108, 108, 10, 5), true},
		{"touching edges", enemyAt(110, 100, 10, 5), false},
		{"identical boxes share only edges", enemyAt(100, 100, 10, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(player, tt.other); got != tt.want {
				t.Errorf("Collides() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestStepEnemy(t *testing.T) {
	player := NewPlayer(0, 0, 10, 20, Projectile(2))
	mult := DefaultMultipliers()

	tests := []struct {
		name  string
		typ   EnemyType
		x     float64
		wantX float64
	}{
		{"weak divides by 1.8", Weak, 10, 10 - 10.0/18},
		{"medium divides by 1.5", Medium, 10, 10 - 10.0/15},
		{"strong divides by 1.2", Strong, 10, 10 - 10.0/12},
		{"near distance is clamped", Weak, 0.5, 0},
		{"zero distance stays put", Weak, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEnemy(tt.typ, tt.x, 0, 10, 5, Projectile(0.5))
			StepEnemy(&e, player, mult, 1.0, 1.0)
			if math.IsNaN(e.X) || math.IsNaN(e.Y) {
				t.Fatalf("position became NaN")
			}
			if math.Abs(e.X-tt.wantX) > 1e-9 {
				t.Errorf("x = %v, expected %v", e.X, tt.wantX)
			}
			if e.Y != 0 {
				t.Errorf("y = %v, expected 0", e.Y)
			}
		})
	}
}

func TestStepEnemySpeedScale(t *testing.T) {
	player := NewPlayer(0, 0, 10, 20, Projectile(2))
	e := enemyAt(10, 0, 10, 5)
	StepEnemy(&e, player, DefaultMultipliers(), 1.0, 2.0)

	want := 10 - 2*10.0/18
	if math.Abs(e.X-want) > 1e-9 {
		t.Errorf("x = %v, expected %v", e.X, want)
	}
}

func TestPurgeDead(t *testing.T) {
	objs := []Object{
		enemyAt(1, 0, 10, 5),
		enemyAt(2, 0, 10, 0),
		enemyAt(3, 0, 10, -1),
		enemyAt(4, 0, 10, 2),
	}

	kept, removed := PurgeDead(objs)
	if removed != 2 {
		t.Errorf("removed = %d, expected 2", removed)
	}
	if len(kept) != 2 {
		t.Fatalf("len = %d, expected 2", len(kept))
	}
	if kept[0].X != 1 || kept[1].X != 4 {
		t.Errorf("order not preserved: got x=%v,%v", kept[0].X, kept[1].X)
	}
}

func TestPurgeAfterLethalAbility(t *testing.T) {
	caster := NewPlayer(0, 0, 10, 20, Projectile(2.0))
	targets := []Object{enemyAt(10, 0, 10, 2), enemyAt(15, 0, 10, 5)}

	if _, ok := ResolveAbility(caster, targets); !ok {
		t.Fatal("expected a hit")
	}
	if targets[0].HP != 0 {
		t.Fatalf("hp = %v, expected 0", targets[0].HP)
	}

	kept, removed := PurgeDead(targets)
	if removed != 1 || len(kept) != 1 || kept[0].X != 15 {
		t.Errorf("purge left %+v, expected only the x=15 enemy", kept)
	}
}

func TestMultipliersFor(t *testing.T) {
	m := Multipliers{Weak: 2, Medium: 0, Strong: 1.2}
	if got := m.For(Weak); got != 2 {
		t.Errorf("For(Weak) = %v, expected 2", got)
	}
	if got := m.For(Medium); got != 1 {
		t.Errorf("For(Medium) with zero = %v, expected 1", got)
	}
	if got := m.For(EnemyType(7)); got != 1 {
		t.Errorf("For(unknown) = %v, expected 1", got)
	}
}

func TestMoveDiagonal(t *testing.T) {
	o := NewPlayer(50, 50, 10, 20, Projectile(2))
	MoveDiagonal(&o, Up, Left, 5)
	if o.X != 45 || o.Y != 45 {
		t.Errorf("up-left = (%v, %v), expected (45, 45)", o.X, o.Y)
	}
	MoveDiagonal(&o, Down, Right, 5)
	if o.X != 50 || o.Y != 50 {
		t.Errorf("down-right = (%v, %v), expected (50, 50)", o.X, o.Y)
	}
}
