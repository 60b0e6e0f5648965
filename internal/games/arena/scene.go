package arena

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/vovakirdan/overlay-arena/internal/config"
	"github.com/vovakirdan/overlay-arena/internal/core"
)

// StepResult describes one simulation tick.
type StepResult struct {
	GameOver  bool   // The player touched an enemy this tick
	Purged    int    // Enemies removed this tick
	Remaining int    // Enemies left after the purge
	Tick      uint64 // Tick counter after this step
	Clipped   int    // Overlay pixels that fell outside the canvas
}

// Snapshot is a copy of the scene taken under the lock.
type Snapshot struct {
	Player  Object
	Enemies []Object
	Kills   int
	Ticks   uint64
}

// Scene owns the player and the enemy list. One mutex guards both, so
// input handling and the render worker never observe a half-applied tick.
type Scene struct {
	mu sync.Mutex

	player  Object
	enemies []Object
	kills   int
	ticks   uint64

	width, height int
	step          float64
	mult          Multipliers
	minDistance   float64
	difficulty    *config.DifficultyManager
	renderer      *Renderer
}

// NewScene spawns the player at the canvas center and the enemy batch on
// the wrapped diagonal described by cfg.Enemies.
func NewScene(cfg config.ArenaConfig, r *Renderer) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("arena: nil renderer")
	}

	w, h := cfg.Canvas.Width, cfg.Canvas.Height
	s := &Scene{
		width:       w,
		height:      h,
		step:        cfg.Player.Step,
		minDistance: cfg.Enemies.MinDistance,
		mult: Multipliers{
			Weak:   cfg.Enemies.Multipliers.Weak,
			Medium: cfg.Enemies.Multipliers.Medium,
			Strong: cfg.Enemies.Multipliers.Strong,
		},
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		renderer:   r,
	}

	s.player = NewPlayer(float64(w/2), float64(h/2), cfg.Player.Size, cfg.Player.MaxHP, Projectile(cfg.Player.Magnitude))

	mix := make([]EnemyType, 0, len(cfg.Enemies.Mix))
	for _, name := range cfg.Enemies.Mix {
		t, err := ParseEnemyType(name)
		if err != nil {
			return nil, err
		}
		mix = append(mix, t)
	}
	if len(mix) == 0 {
		mix = append(mix, Weak)
	}

	s.enemies = make([]Object, 0, cfg.Enemies.Count)
	for n := 0; n < cfg.Enemies.Count; n++ {
		i := cfg.Enemies.FirstIndex + n
		offset := float64(i+1) * cfg.Enemies.Spacing
		x := math.Mod(float64(w/2)+offset, float64(w))
		y := math.Mod(float64(h/2)+offset, float64(h))
		s.enemies = append(s.enemies, NewEnemy(mix[n%len(mix)], x, y, cfg.Enemies.Size, cfg.Enemies.MaxHP, Projectile(cfg.Enemies.Magnitude)))
	}

	return s, nil
}

// Size returns the canvas dimensions.
func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// Apply handles a movement or ability command. Returns false for commands
// the scene does not act on (exit, none).
func (s *Scene) Apply(cmd core.Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cmd == core.CommandAbility {
		ResolveAbility(s.player, s.enemies)
		return true
	}
	return ApplyCommand(&s.player, cmd, s.step)
}

// Step advances every enemy by one tick and purges the dead.
func (s *Scene) Step() StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stepLocked()
}

func (s *Scene) stepLocked() StepResult {
	var res StepResult
	speed := s.difficulty.SpeedScale(s.kills, s.ticks)

	// Collision is checked against the position the frame before showed
	for i := range s.enemies {
		if Collides(s.player, s.enemies[i]) {
			res.GameOver = true
		}
		StepEnemy(&s.enemies[i], s.player, s.mult, s.minDistance, speed)
	}

	s.enemies, res.Purged = PurgeDead(s.enemies)
	s.kills += res.Purged
	s.ticks++

	res.Remaining = len(s.enemies)
	res.Tick = s.ticks
	return res
}

// Render draws the current state onto dst without stepping.
func (s *Scene) Render(dst *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.renderer.Draw(dst, s.player, s.enemies, s.kills)
	return err
}

// Tick steps the scene and renders the result while holding the lock, so
// the frame always reflects a fully stepped tick.
func (s *Scene) Tick(dst *image.RGBA) (StepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.stepLocked()
	stats, err := s.renderer.Draw(dst, s.player, s.enemies, s.kills)
	res.Clipped = stats.Clipped
	return res, err
}

// NewCanvas allocates a canvas of the scene's size in the background color.
func (s *Scene) NewCanvas() *image.RGBA {
	return s.renderer.Canvas(s.width, s.height)
}

// Snapshot copies the scene state.
func (s *Scene) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	enemies := make([]Object, len(s.enemies))
	copy(enemies, s.enemies)
	return Snapshot{
		Player:  s.player,
		Enemies: enemies,
		Kills:   s.kills,
		Ticks:   s.ticks,
	}
}

// Kills returns the number of enemies purged so far.
func (s *Scene) Kills() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kills
}
