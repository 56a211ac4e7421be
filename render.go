package main

import (
	"fmt"
	"io"
	"strings"

	"polyfish/game"
	"polyfish/searcher"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
)

var tribeColors = []string{"#e06c75", "#61afef", "#98c379", "#e5c07b", "#c678dd", "#56b6c2"}

var terrainGlyphs = map[game.TerrainType]string{
	game.Field:    ".",
	game.Forest:   "f",
	game.Mountain: "^",
	game.Water:    "~",
	game.Ocean:    "=",
	game.Ice:      "*",
}

// renderMap draws one character per tile: cities as '#', units as the owner
// id, terrain otherwise. Tiles are tinted by owner.
func renderMap(w io.Writer, s *game.WorldState) string {
	out := termenv.NewOutput(w)
	var b strings.Builder
	fmt.Fprintf(&b, "turn %d, tribe %d to move\n", s.Settings.Turn, s.Settings.Pov)
	for y := range s.Height {
		for x := range s.Width {
			i := s.Index(x, y)
			t := &s.Tiles[i]
			glyph := terrainGlyphs[t.Terrain]
			owner := t.Owner
			switch {
			case s.CityAt(i) != nil:
				glyph = "#"
				owner = s.CityAt(i).Owner
			case s.UnitAt(i) != nil:
				owner = s.UnitAt(i).Owner
				glyph = fmt.Sprint(owner)
			case t.Structure == game.Village:
				glyph = "v"
			case t.Structure == game.Ruins:
				glyph = "r"
			}
			style := out.String(glyph + " ")
			if owner != game.Nobody {
				style = style.Foreground(out.Color(tribeColors[(owner-1)%len(tribeColors)]))
				if s.UnitAt(i) != nil || s.CityAt(i) != nil {
					style = style.Bold()
				}
			}
			b.WriteString(style.String())
		}
		b.WriteByte('\n')
	}
	for i := range s.Tribes {
		t := &s.Tribes[i]
		fmt.Fprintf(&b, "tribe %d: %d stars, score %s, %d cities, %d units\n",
			t.Owner, t.Stars, humanize.Comma(int64(t.Score)), len(t.Cities), len(t.Units))
	}
	return b.String()
}

// renderVisits lists the root moves by visit count.
func renderVisits(res searcher.Result) string {
	var b strings.Builder
	total := 0
	for _, v := range res.Visits {
		total += v.N
	}
	best, _ := res.Best()
	for _, v := range res.Visits {
		if v.N == 0 {
			continue
		}
		marker := " "
		if v.Move == best {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-28s N=%-6s %5.1f%%  Q=%+.3f  P=%.3f\n",
			marker, v.Move, humanize.Comma(int64(v.N)), 100*float64(v.N)/float64(max(total, 1)), v.Q, v.P)
	}
	if len(res.Sequence) > 0 {
		moves := make([]string, len(res.Sequence))
		for i, m := range res.Sequence {
			moves[i] = m.String()
		}
		fmt.Fprintf(&b, "line: %s (score %+.3f)\n", strings.Join(moves, " "), res.Score)
	}
	return b.String()
}
