package game

// Evaluate scores a state between -1 and 1 indicating how favorable it is to
// the tribe whose turn it is.
type Evaluate func(*WorldState) float64

// Evaluators names the evaluation functions for configuration files.
var Evaluators = map[string]Evaluate{
	"economy":  EvaluateEconomy,
	"army":     EvaluateArmy,
	"balanced": EvaluateBalanced,
}

// EvaluateEconomy compares score, stars and income, city population and
// technology against the strongest opponent on each count.
func EvaluateEconomy(s *WorldState) float64 {
	if v, done := decided(s); done {
		return v
	}
	pov := s.Settings.Pov
	score := compare(s, pov, func(t *Tribe) float64 { return float64(t.Score) })
	stars := compare(s, pov, func(t *Tribe) float64 { return float64(t.Stars + 3*s.income(t)) })
	cities := compare(s, pov, func(t *Tribe) float64 {
		total := 0.0
		for _, id := range t.Cities {
			c := &s.Cities[id]
			total += float64(c.Level*3 + c.Progress)
		}
		return total
	})
	tech := compare(s, pov, func(t *Tribe) float64 { return float64(len(t.Tech)) })
	return (score + stars + cities + tech) / 4
}

// EvaluateArmy compares the health-weighted strength of every living unit.
func EvaluateArmy(s *WorldState) float64 {
	if v, done := decided(s); done {
		return v
	}
	return compare(s, s.Settings.Pov, func(t *Tribe) float64 {
		total := 0.0
		for _, id := range t.Units {
			u := &s.Units[id]
			st := s.unitStats(u)
			if hp := s.MaxHealth(u); hp > 0 {
				total += (st.Attack + st.Defense) * float64(u.Health) / float64(hp)
			}
		}
		return total
	})
}

// EvaluateBalanced averages the economic and military evaluations.
func EvaluateBalanced(s *WorldState) float64 {
	if v, done := decided(s); done {
		return v
	}
	return (EvaluateEconomy(s) + EvaluateArmy(s)) / 2
}

func decided(s *WorldState) (float64, bool) {
	if s.Settings.GameOver {
		return Outcome(s, s.Settings.Pov), true
	}
	if !s.PovTribe().Alive() {
		return -1, true
	}
	return 0, false
}

func (s *WorldState) income(t *Tribe) int {
	total := 0
	for _, id := range t.Cities {
		if c := &s.Cities[id]; !c.Riot && !s.enemyOccupied(c) {
			total += c.Production
		}
	}
	return total
}

// compare normalizes the pov tribe's value against the best living opponent.
func compare(s *WorldState, pov int, value func(*Tribe) float64) float64 {
	mine := max(value(s.Tribe(pov)), 0)
	best := 0.0
	for i := range s.Tribes {
		t := &s.Tribes[i]
		if t.Owner == pov || !t.Alive() {
			continue
		}
		best = max(best, value(t))
	}
	return normalize(mine, best)
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
