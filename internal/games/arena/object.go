// Package arena implements the arena simulation: a player and a batch of
// pursuing enemies on a fixed canvas, stepped once per rendered frame.
package arena

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/overlay-arena/internal/core"
)

// Kind identifies the role of a scene object.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// EnemyType selects an enemy's pursuit multiplier and sprite.
type EnemyType int

const (
	Weak EnemyType = iota
	Medium
	Strong
)

// String returns the enemy type name.
func (t EnemyType) String() string {
	switch t {
	case Weak:
		return "weak"
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	default:
		return fmt.Sprintf("enemy(%d)", int(t))
	}
}

// ParseEnemyType maps a config name to an EnemyType.
func ParseEnemyType(s string) (EnemyType, error) {
	switch strings.ToLower(s) {
	case "weak":
		return Weak, nil
	case "medium":
		return Medium, nil
	case "strong":
		return Strong, nil
	}
	return Weak, fmt.Errorf("arena: unknown enemy type %q", s)
}

// ActionType is the capability an object fires with the ability command.
type ActionType int

const (
	ActionProjectile ActionType = iota
)

// Action is an ability with its magnitude.
type Action struct {
	Type      ActionType
	Magnitude float64
}

// Projectile returns a projectile action dealing magnitude damage.
func Projectile(magnitude float64) Action {
	return Action{Type: ActionProjectile, Magnitude: magnitude}
}

// Range returns the distance within which the action can hit.
func (a Action) Range() float64 {
	switch a.Type {
	case ActionProjectile:
		return a.Magnitude*1.5 + 19.5
	default:
		return 0
	}
}

// Object is a player or enemy on the canvas.
type Object struct {
	Kind     Kind
	Enemy    EnemyType // Meaningful only for KindEnemy
	X, Y     float64   // Center, top-left canvas origin
	Size     float64   // Side of the square footprint
	Action   Action
	Recharge float64 // Reserved; always 0
	HP       float64 // May drop below zero until the next purge
	MaxHP    float64
}

// NewPlayer creates a player at full health.
func NewPlayer(x, y, size, maxHP float64, action Action) Object {
	return Object{Kind: KindPlayer, X: x, Y: y, Size: size, Action: action, HP: maxHP, MaxHP: maxHP}
}

// NewEnemy creates an enemy of the given type at full health.
func NewEnemy(t EnemyType, x, y, size, maxHP float64, action Action) Object {
	return Object{Kind: KindEnemy, Enemy: t, X: x, Y: y, Size: size, Action: action, HP: maxHP, MaxHP: maxHP}
}

// Pos returns the object's center.
func (o Object) Pos() core.Vec2 {
	return core.Vec2{X: o.X, Y: o.Y}
}

// Box returns the object's square footprint.
func (o Object) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Size)
}

// Dead reports whether the object should be purged.
func (o Object) Dead() bool {
	return o.HP <= 0
}

// Direction is one of the four cardinal movement directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Move shifts the object by amount in one cardinal direction.
func Move(o *Object, dir Direction, amount float64) {
	switch dir {
	case Up:
		o.Y -= amount
	case Down:
		o.Y += amount
	case Left:
		o.X -= amount
	case Right:
		o.X += amount
	}
}

// MoveDiagonal applies two cardinal moves in sequence.
func MoveDiagonal(o *Object, vertical, horizontal Direction, amount float64) {
	Move(o, vertical, amount)
	Move(o, horizontal, amount)
}

// ApplyCommand moves the object for a movement command.
// Returns false for commands that are not movements.
func ApplyCommand(o *Object, cmd core.Command, amount float64) bool {
	switch cmd {
	case core.CommandUp:
		Move(o, Up, amount)
	case core.CommandDown:
		Move(o, Down, amount)
	case core.CommandLeft:
		Move(o, Left, amount)
	case core.CommandRight:
		Move(o, Right, amount)
	case core.CommandUpLeft:
		MoveDiagonal(o, Up, Left, amount)
	case core.CommandUpRight:
		MoveDiagonal(o, Up, Right, amount)
	case core.CommandDownLeft:
		MoveDiagonal(o, Down, Left, amount)
	case core.CommandDownRight:
		MoveDiagonal(o, Down, Right, amount)
	default:
		return false
	}
	return true
}
