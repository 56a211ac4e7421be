package game

import (
	"polyfish/meta"
	"polyfish/zobrist"
)

// MaxCityLevel is the highest city level tracked by the fingerprint.
const MaxCityLevel = 16

type UnitSettings struct {
	Attack   float64
	Defense  float64
	Movement int
	Range    int
	Health   int // in tens of hit points
	Cost     int
	Skills   Skills
	Tech     TechType // technology that unlocks summoning; NoTech for starting units
	Super    bool
}

type TechSettings struct {
	Tier      int
	Requires  TechType
	Unit      UnitType
	Structure StructureType
	Harvest   ResourceType
	Abilities []AbilityType
}

type StructureSettings struct {
	Cost       int
	Tech       TechType
	Terrain    []TerrainType
	Resource   ResourceType  // resource consumed on the tile, if any
	Adjacent   StructureType // population counts adjacent structures of this type
	Population int
	PerCity    bool // at most one per city territory
}

type ResourceSettings struct {
	Cost       int
	Tech       TechType
	Population int
	Structure  StructureType // harvested by building instead of directly
}

// Content is the read-only rule data shared by every world state.
type Content struct {
	Units      []UnitSettings
	Techs      []TechSettings
	Structures []StructureSettings
	Resources  []ResourceSettings
}

func skills(s ...SkillType) Skills { return SkillSet(s...) }

// DefaultContent returns the standard rule tables.
func DefaultContent() *Content {
	units := make([]UnitSettings, unitCount)
	units[Warrior] = UnitSettings{Attack: 2, Defense: 2, Movement: 1, Range: 1, Health: 10, Cost: 2, Skills: skills(DashSkill, FortifySkill)}
	units[Rider] = UnitSettings{Attack: 2, Defense: 1, Movement: 2, Range: 1, Health: 10, Cost: 3, Skills: skills(DashSkill, EscapeSkill, FortifySkill), Tech: Riding}
	units[Archer] = UnitSettings{Attack: 2, Defense: 1, Movement: 1, Range: 2, Health: 10, Cost: 3, Skills: skills(DashSkill, FortifySkill), Tech: Archery}
	units[Defender] = UnitSettings{Attack: 1, Defense: 3, Movement: 1, Range: 1, Health: 15, Cost: 3, Skills: skills(FortifySkill), Tech: Strategy}
	units[Swordsman] = UnitSettings{Attack: 3, Defense: 3, Movement: 1, Range: 1, Health: 15, Cost: 5, Skills: skills(DashSkill), Tech: Smithery}
	units[Catapult] = UnitSettings{Attack: 4, Defense: 0, Movement: 1, Range: 3, Health: 10, Cost: 8, Skills: skills(StiffSkill), Tech: Mathematics}
	units[Knight] = UnitSettings{Attack: 3.5, Defense: 1, Movement: 3, Range: 1, Health: 10, Cost: 8, Skills: skills(DashSkill, PersistSkill, FortifySkill), Tech: Chivalry}
	units[Giant] = UnitSettings{Attack: 5, Defense: 4, Movement: 1, Range: 1, Health: 40, Cost: 10, Super: true}
	units[Scout] = UnitSettings{Attack: 1, Defense: 1, Movement: 2, Range: 1, Health: 5, Cost: 2, Skills: skills(DashSkill, ScoutSkill), Tech: Hunting}
	units[Raft] = UnitSettings{Attack: 0, Defense: 1, Movement: 2, Range: 1, Cost: 0, Skills: skills(CarrySkill, FloatSkill, StaticSkill)}
	units[MindBender] = UnitSettings{Attack: 0, Defense: 1, Movement: 1, Range: 1, Health: 10, Cost: 5, Skills: skills(HealSkill, StiffSkill), Tech: Philosophy}
	units[Shaman] = UnitSettings{Attack: 1, Defense: 1, Movement: 1, Range: 1, Health: 10, Cost: 4, Skills: skills(BoostSkill, StiffSkill), Tech: Meditation}
	units[Hexapod] = UnitSettings{Attack: 3, Defense: 1, Movement: 2, Range: 1, Health: 5, Cost: 3, Skills: skills(DashSkill, EscapeSkill, CreepSkill), Tech: Forestry}
	units[Mooni] = UnitSettings{Attack: 0, Defense: 2, Movement: 1, Range: 1, Health: 10, Cost: 5, Skills: skills(SkateSkill, FreezeAreaSkill, StiffSkill), Tech: Aquatism}
	units[Dragon] = UnitSettings{Attack: 4, Defense: 3, Movement: 3, Range: 2, Health: 20, Cost: 10, Skills: skills(FlySkill, SplashSkill), Tech: Spiritualism}
	units[Pirate] = UnitSettings{Attack: 2, Defense: 1, Movement: 2, Range: 1, Health: 10, Cost: 4, Skills: skills(NavigateSkill, DashSkill, SurpriseSkill), Tech: Navigation}

	techs := make([]TechSettings, techCount)
	techs[Riding] = TechSettings{Tier: 1}
	techs[Organization] = TechSettings{Tier: 1, Harvest: Fruit}
	techs[Climbing] = TechSettings{Tier: 1}
	techs[Fishing] = TechSettings{Tier: 1, Harvest: Fish, Structure: Port}
	techs[Hunting] = TechSettings{Tier: 1, Harvest: WildAnimal, Unit: Scout}
	techs[Archery] = TechSettings{Tier: 2, Requires: Hunting, Unit: Archer}
	techs[Forestry] = TechSettings{Tier: 2, Requires: Hunting, Structure: LumberHut, Abilities: []AbilityType{ClearForestAbility}}
	techs[Farming] = TechSettings{Tier: 2, Requires: Organization, Structure: Farm}
	techs[Strategy] = TechSettings{Tier: 2, Requires: Organization, Unit: Defender}
	techs[Mining] = TechSettings{Tier: 2, Requires: Climbing, Structure: Mine}
	techs[Meditation] = TechSettings{Tier: 2, Requires: Climbing, Unit: Shaman}
	techs[Sailing] = TechSettings{Tier: 2, Requires: Fishing}
	techs[Aquatism] = TechSettings{Tier: 2, Requires: Fishing}
	techs[FreeSpirit] = TechSettings{Tier: 2, Requires: Riding, Structure: Temple, Abilities: []AbilityType{DisbandAbility}}
	techs[Chivalry] = TechSettings{Tier: 3, Requires: FreeSpirit, Unit: Knight, Abilities: []AbilityType{DestroyAbility}}
	techs[Smithery] = TechSettings{Tier: 3, Requires: Mining, Unit: Swordsman, Structure: Forge}
	techs[Construction] = TechSettings{Tier: 3, Requires: Farming, Structure: Windmill, Abilities: []AbilityType{BurnForestAbility}}
	techs[Mathematics] = TechSettings{Tier: 3, Requires: Forestry, Unit: Catapult, Structure: Sawmill}
	techs[Navigation] = TechSettings{Tier: 3, Requires: Sailing}
	techs[Spiritualism] = TechSettings{Tier: 3, Requires: Archery, Abilities: []AbilityType{GrowForestAbility}}
	techs[Philosophy] = TechSettings{Tier: 3, Requires: Meditation, Unit: MindBender}

	structures := make([]StructureSettings, structureCount)
	structures[Farm] = StructureSettings{Cost: 5, Tech: Farming, Terrain: []TerrainType{Field}, Resource: Crop, Population: 2}
	structures[Mine] = StructureSettings{Cost: 5, Tech: Mining, Terrain: []TerrainType{Mountain}, Resource: Metal, Population: 2}
	structures[LumberHut] = StructureSettings{Cost: 3, Tech: Forestry, Terrain: []TerrainType{Forest}, Population: 1}
	structures[Port] = StructureSettings{Cost: 7, Tech: Fishing, Terrain: []TerrainType{Water}, Population: 1}
	structures[Sawmill] = StructureSettings{Cost: 5, Tech: Mathematics, Terrain: []TerrainType{Field}, Adjacent: LumberHut, Population: 1, PerCity: true}
	structures[Windmill] = StructureSettings{Cost: 5, Tech: Construction, Terrain: []TerrainType{Field}, Adjacent: Farm, Population: 1, PerCity: true}
	structures[Forge] = StructureSettings{Cost: 5, Tech: Smithery, Terrain: []TerrainType{Field}, Adjacent: Mine, Population: 2, PerCity: true}
	structures[Temple] = StructureSettings{Cost: 10, Tech: FreeSpirit, Terrain: []TerrainType{Field}, Population: 1}

	resources := make([]ResourceSettings, resourceCount)
	resources[Fruit] = ResourceSettings{Cost: 2, Tech: Organization, Population: 1}
	resources[WildAnimal] = ResourceSettings{Cost: 2, Tech: Hunting, Population: 1}
	resources[Fish] = ResourceSettings{Cost: 2, Tech: Fishing, Population: 1}
	resources[Crop] = ResourceSettings{Structure: Farm}
	resources[Metal] = ResourceSettings{Structure: Mine}

	return &Content{
		Units:      units,
		Techs:      techs,
		Structures: structures,
		Resources:  resources,
	}
}

// Dims returns the key table dimensions needed for a world of the given size.
func (c *Content) Dims(tiles, tribes, maxTurns int) zobrist.Dims {
	return zobrist.Dims{
		Tiles:      tiles,
		Tribes:     tribes,
		MaxTurns:   maxTurns,
		Terrains:   int(terrainCount),
		Structures: len(c.Structures),
		Resources:  len(c.Resources),
		Units:      len(c.Units),
		Techs:      len(c.Techs),
		Effects:    int(effectCount),
		Levels:     MaxCityLevel,
	}
}

// Validate checks the cross references of the tables and that they fit the
// fixed enumerations.
func (c *Content) Validate() error {
	checks := []struct {
		table string
		value int
		limit int
	}{
		{"content units", len(c.Units) - 1, int(unitCount)},
		{"content techs", len(c.Techs) - 1, int(techCount)},
		{"content structures", len(c.Structures) - 1, int(structureCount)},
		{"content resources", len(c.Resources) - 1, int(resourceCount)},
	}
	for _, ch := range checks {
		if err := meta.CheckRange(ch.table, ch.value, ch.limit); err != nil {
			return err
		}
	}

	for _, u := range c.Units {
		if err := meta.CheckRange("unit tech", int(u.Tech), len(c.Techs)); err != nil {
			return err
		}
	}
	for _, t := range c.Techs {
		refs := []struct {
			table string
			value int
			limit int
		}{
			{"tech requires", int(t.Requires), len(c.Techs)},
			{"tech unit", int(t.Unit), len(c.Units)},
			{"tech structure", int(t.Structure), len(c.Structures)},
			{"tech harvest", int(t.Harvest), len(c.Resources)},
		}
		for _, r := range refs {
			if err := meta.CheckRange(r.table, r.value, r.limit); err != nil {
				return err
			}
		}
	}
	for _, s := range c.Structures {
		if err := meta.CheckRange("structure tech", int(s.Tech), len(c.Techs)); err != nil {
			return err
		}
	}
	return nil
}

// Unit returns the settings of a unit type.
func (c *Content) Unit(t UnitType) *UnitSettings {
	return &c.Units[t]
}
