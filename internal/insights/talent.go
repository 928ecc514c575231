// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package insights

import (
	"sort"

	"github.com/tomtom215/cinefolio/internal/models"
)

const (
	// billedCastConsidered is how many top-billed cast members count per title.
	billedCastConsidered = 10
	// TopTalentLimit caps each talent list.
	TopTalentLimit = 10
)

// tally counts people by ID while remembering first-encounter order.
type tally struct {
	order []int
	byID  map[int]*models.Talent
}

func newTally() *tally {
	return &tally{byID: make(map[int]*models.Talent)}
}

func (t *tally) add(id int, name, profilePath string) {
	entry, ok := t.byID[id]
	if !ok {
		entry = &models.Talent{ID: id, Name: name, ProfilePath: profilePath}
		t.byID[id] = entry
		t.order = append(t.order, id)
	}
	entry.Count++
}

func (t *tally) top(n int) []models.Talent {
	out := make([]models.Talent, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.byID[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ComputeTopTalent counts actors among each title's first ten billed cast
// members and crew credited as "Director". People without a profile image
// are ignored. Titles without credits contribute nothing.
func ComputeTopTalent(history []models.ListEntry) models.TopTalent {
	actors := newTally()
	directors := newTally()

	for i := range history {
		credits := history[i].Credits
		if credits == nil {
			continue
		}

		cast := credits.Cast
		if len(cast) > billedCastConsidered {
			cast = cast[:billedCastConsidered]
		}
		for _, actor := range cast {
			if actor.ProfilePath != "" {
				actors.add(actor.ID, actor.Name, actor.ProfilePath)
			}
		}

		for _, member := range credits.Crew {
			if member.Job == "Director" && member.ProfilePath != "" {
				directors.add(member.ID, member.Name, member.ProfilePath)
			}
		}
	}

	return models.TopTalent{
		Actors:    actors.top(TopTalentLimit),
		Directors: directors.top(TopTalentLimit),
	}
}
