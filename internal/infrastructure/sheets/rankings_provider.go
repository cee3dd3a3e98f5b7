package sheets

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/openfairway/one-and-done/internal/domain/rankings"
)

const rankingsWorkbook = "GolfRankings.xlsx"

type RankingsProvider struct {
	dir string
}

func NewRankingsProvider(dir string) *RankingsProvider {
	return &RankingsProvider{dir: dir}
}

func (p *RankingsProvider) ListPlayers(_ context.Context) ([]rankings.Player, error) {
	rows, err := readFirstSheet(filepath.Join(p.dir, rankingsWorkbook))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("rankings workbook is empty")
	}

	index := headerIndex(rows[0])
	rankCol, ok := columnFor(index, "owgr", "rank")
	if !ok {
		return nil, fmt.Errorf("rankings workbook is missing an OWGR column")
	}
	nameCol, ok := columnFor(index, "player", "name")
	if !ok {
		return nil, fmt.Errorf("rankings workbook is missing a Player column")
	}
	countryCol, _ := columnFor(index, "country")
	tourCol, _ := columnFor(index, "tour")
	availabilityCol, _ := columnFor(index, "availability")

	out := make([]rankings.Player, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, nameCol)
		if name == "" {
			continue
		}
		rank, _ := strconv.Atoi(cell(row, rankCol))
		availability := 1
		if availabilityCol >= 0 {
			if parsed, err := strconv.Atoi(cell(row, availabilityCol)); err == nil {
				availability = parsed
			}
		}
		out = append(out, rankings.Player{
			Rank:         rank,
			Name:         name,
			Country:      cell(row, countryCol),
			Tour:         cell(row, tourCol),
			Availability: availability,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank < out[j].Rank
	})
	return out, nil
}
