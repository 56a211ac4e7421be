package game

import "fmt"

// Move is an immutable move descriptor. Src is the acting unit or city slot,
// Dst the target tile and Arg a kind-specific payload (unit type, ability,
// technology, structure, reward or capture target).
type Move struct {
	Kind MoveKind
	Src  int
	Dst  int
	Arg  int
}

// Capture targets carried in Move.Arg.
const (
	CaptureVillage = iota
	CaptureRuins
	CaptureCity
)

func EndTurn() Move { return Move{Kind: EndTurnMove, Src: -1, Dst: -1} }

func Step(unit, tile int) Move { return Move{Kind: StepMove, Src: unit, Dst: tile} }

func Attack(unit, tile int) Move { return Move{Kind: AttackMove, Src: unit, Dst: tile} }

func Capture(unit, tile, target int) Move {
	return Move{Kind: CaptureMove, Src: unit, Dst: tile, Arg: target}
}

func Summon(city, tile int, unit UnitType) Move {
	return Move{Kind: SummonMove, Src: city, Dst: tile, Arg: int(unit)}
}

// Ability is performed by a unit, or by the tribe on its territory when
// unit is -1.
func Ability(unit, tile int, ability AbilityType) Move {
	return Move{Kind: AbilityMove, Src: unit, Dst: tile, Arg: int(ability)}
}

func Research(tech TechType) Move {
	return Move{Kind: ResearchMove, Src: -1, Dst: -1, Arg: int(tech)}
}

func Build(tile int, structure StructureType) Move {
	return Move{Kind: BuildMove, Src: -1, Dst: tile, Arg: int(structure)}
}

func Harvest(tile int) Move { return Move{Kind: HarvestMove, Src: -1, Dst: tile} }

func Reward(city, tile int, reward RewardType) Move {
	return Move{Kind: RewardMove, Src: city, Dst: tile, Arg: int(reward)}
}

func (m Move) String() string {
	switch m.Kind {
	case EndTurnMove:
		return "end-turn"
	case ResearchMove:
		return fmt.Sprintf("research(%d)", m.Arg)
	case StepMove, AttackMove, HarvestMove:
		return fmt.Sprintf("%s(%d→%d)", m.Kind, m.Src, m.Dst)
	default:
		return fmt.Sprintf("%s(%d→%d:%d)", m.Kind, m.Src, m.Dst, m.Arg)
	}
}

// PolicyIndex maps the move onto a fixed-width policy vector of
// MoveKinds*tiles entries.
func (m Move) PolicyIndex(tiles int) int {
	target := m.Dst
	if target < 0 {
		target = m.Arg
	}
	if target < 0 {
		target = 0
	}
	return int(m.Kind)*tiles + target%tiles
}

// Priority is the static ordering weight of a move. Higher is searched first.
func Priority(m Move) int {
	switch m.Kind {
	case CaptureMove:
		if m.Arg == CaptureCity {
			return 20
		}
		return 10
	case AbilityMove:
		return 9
	case AttackMove:
		return 8
	case StepMove:
		return 7
	case HarvestMove, BuildMove, SummonMove, ResearchMove:
		return 5
	case RewardMove:
		return 4
	default:
		return 1
	}
}
