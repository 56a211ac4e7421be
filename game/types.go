package game

type TerrainType uint8

const (
	NoTerrain TerrainType = iota
	Field
	Forest
	Mountain
	Water
	Ocean
	Ice
	terrainCount
)

type StructureType uint8

const (
	NoStructure StructureType = iota
	Village
	Ruins
	Farm
	Mine
	LumberHut
	Port
	Sawmill
	Windmill
	Forge
	Temple
	structureCount
)

type ResourceType uint8

const (
	NoResource ResourceType = iota
	Fruit
	Crop
	WildAnimal
	Fish
	Metal
	resourceCount
)

type UnitType uint8

const (
	NoUnit UnitType = iota
	Warrior
	Rider
	Archer
	Defender
	Swordsman
	Catapult
	Knight
	Giant
	Scout
	Raft
	MindBender
	Shaman
	Hexapod
	Mooni
	Dragon
	Pirate
	unitCount
)

type TechType uint8

const (
	NoTech TechType = iota
	Riding
	Organization
	Climbing
	Fishing
	Hunting
	Archery
	Forestry
	Farming
	Strategy
	Mining
	Meditation
	Sailing
	Aquatism
	FreeSpirit
	Chivalry
	Smithery
	Construction
	Mathematics
	Navigation
	Spiritualism
	Philosophy
	techCount
)

type SkillType uint8

const (
	DashSkill SkillType = iota
	FortifySkill
	EscapeSkill
	PersistSkill
	ScoutSkill
	CarrySkill
	FloatSkill
	FlySkill
	CreepSkill
	SkateSkill
	NavigateSkill
	HealSkill
	BoostSkill
	FreezeAreaSkill
	StaticSkill
	StiffSkill
	SurpriseSkill
	InfiltrateSkill
	SplashSkill
)

// Skills is a bit set of SkillType.
type Skills uint32

func SkillSet(skills ...SkillType) Skills {
	var s Skills
	for _, sk := range skills {
		s |= 1 << sk
	}
	return s
}

func (s Skills) Has(skill SkillType) bool {
	return s&(1<<skill) != 0
}

// Any reports whether at least one of skills is set.
func (s Skills) Any(skills ...SkillType) bool {
	for _, sk := range skills {
		if s.Has(sk) {
			return true
		}
	}
	return false
}

type EffectType uint8

const (
	Boosted EffectType = iota
	Frozen
	Poisoned
	effectCount
)

// Effects is a bit set of EffectType.
type Effects uint8

func (e Effects) Has(effect EffectType) bool {
	return e&(1<<effect) != 0
}

func (e Effects) With(effect EffectType) Effects {
	return e | 1<<effect
}

func (e Effects) Without(effect EffectType) Effects {
	return e &^ (1 << effect)
}

type RewardType uint8

const (
	NoReward RewardType = iota
	WorkshopReward
	ExplorerReward
	CityWallReward
	ResourcesReward
	PopulationGrowthReward
	BorderGrowthReward
	ParkReward
	SuperUnitReward
)

type AbilityType uint8

const (
	NoAbility AbilityType = iota
	RecoverAbility
	HealOthersAbility
	DisbandAbility
	PromoteAbility
	ClearForestAbility
	BurnForestAbility
	GrowForestAbility
	DestroyAbility
	FreezeAreaAbility
	BoostAbility
)

type MoveKind uint8

const (
	EndTurnMove MoveKind = iota
	StepMove
	AttackMove
	CaptureMove
	SummonMove
	AbilityMove
	ResearchMove
	BuildMove
	HarvestMove
	RewardMove
	moveKindCount
)

var moveKindNames = [...]string{
	EndTurnMove:  "end-turn",
	StepMove:     "step",
	AttackMove:   "attack",
	CaptureMove:  "capture",
	SummonMove:   "summon",
	AbilityMove:  "ability",
	ResearchMove: "research",
	BuildMove:    "build",
	HarvestMove:  "harvest",
	RewardMove:   "reward",
}

func (k MoveKind) String() string {
	if int(k) < len(moveKindNames) {
		return moveKindNames[k]
	}
	return "unknown"
}

// MoveKinds is the number of move kinds (the width of a per-tile policy block).
const MoveKinds = int(moveKindCount)
