// Package session keeps the state of one game: who plays, which actors
// they own, what day it is and what has been collected.
package session

import (
	"errors"
	"fmt"

	"github.com/samdwyer/wayfarer/internal/entity"
	"github.com/samdwyer/wayfarer/internal/world"
)

const (
	DaysPerWeek  = 7
	DaysPerMonth = 28
)

var (
	ErrUnknownOwner   = errors.New("unknown owner")
	ErrDuplicateOwner = errors.New("owner already registered")
)

// Owner is one side of the game.
type Owner struct {
	ID    int
	Name  string
	Human bool
	Color string
}

// Session is not safe for concurrent use.
type Session struct {
	day      int
	owners   []Owner
	rosters  map[int][]*entity.Actor
	treasury map[int]map[string]int
}

// New creates a session on day 1 with no owners.
func New() *Session {
	return &Session{
		day:      1,
		rosters:  make(map[int][]*entity.Actor),
		treasury: make(map[int]map[string]int),
	}
}

// AddOwner registers a side. Turn order follows registration order.
func (s *Session) AddOwner(o Owner) error {
	if _, ok := s.rosters[o.ID]; ok {
		return fmt.Errorf("owner %d: %w", o.ID, ErrDuplicateOwner)
	}
	s.owners = append(s.owners, o)
	s.rosters[o.ID] = nil
	s.treasury[o.ID] = make(map[string]int)
	return nil
}

// Owner returns the side with the given id.
func (s *Session) Owner(id int) (Owner, bool) {
	for _, o := range s.owners {
		if o.ID == id {
			return o, true
		}
	}
	return Owner{}, false
}

// Owners returns owner ids in turn order.
func (s *Session) Owners() []int {
	ids := make([]int, len(s.owners))
	for i, o := range s.owners {
		ids[i] = o.ID
	}
	return ids
}

// AddActor puts a onto its owner's roster.
func (s *Session) AddActor(a *entity.Actor) error {
	roster, ok := s.rosters[a.OwnerID()]
	if !ok {
		return fmt.Errorf("actor %s owner %d: %w", a.Name, a.OwnerID(), ErrUnknownOwner)
	}
	s.rosters[a.OwnerID()] = append(roster, a)
	return nil
}

// RemoveActor takes the actor with the given id out of play.
func (s *Session) RemoveActor(id string) bool {
	for owner, roster := range s.rosters {
		for i, a := range roster {
			if a.ID() == id {
				s.rosters[owner] = append(roster[:i:i], roster[i+1:]...)
				return true
			}
		}
	}
	return false
}

// ActorsForOwner returns a copy of the owner's roster in the order actors
// were added.
func (s *Session) ActorsForOwner(owner int) []*entity.Actor {
	return append([]*entity.Actor(nil), s.rosters[owner]...)
}

// Actors returns every actor, grouped by owner in turn order.
func (s *Session) Actors() []*entity.Actor {
	var out []*entity.Actor
	for _, o := range s.owners {
		out = append(out, s.rosters[o.ID]...)
	}
	return out
}

// EntitiesAt reports the actors standing on c, so the world can list them
// alongside its own objects.
func (s *Session) EntitiesAt(c world.Cell) []world.Entity {
	var out []world.Entity
	for _, a := range s.Actors() {
		if a.Position() == c {
			out = append(out, a)
		}
	}
	return out
}

// Day returns the current day, starting at 1.
func (s *Session) Day() int { return s.day }

// Week returns the current week, starting at 1.
func (s *Session) Week() int { return (s.day-1)/DaysPerWeek + 1 }

// Month returns the current month, starting at 1.
func (s *Session) Month() int { return (s.day-1)/DaysPerMonth + 1 }

// AdvanceDay moves to the next day and returns it.
func (s *Session) AdvanceDay() int {
	s.day++
	return s.day
}

// IsWeekStart reports whether day is the first day of a week.
func IsWeekStart(day int) bool {
	return day%DaysPerWeek == 1
}

// WeekOf returns the week number containing day.
func WeekOf(day int) int {
	return (day-1)/DaysPerWeek + 1
}

// Credit adds amount of resource to the owner's stock.
func (s *Session) Credit(owner int, resource string, amount int) error {
	stock, ok := s.treasury[owner]
	if !ok {
		return fmt.Errorf("credit owner %d: %w", owner, ErrUnknownOwner)
	}
	stock[resource] += amount
	return nil
}

// Treasury returns a copy of the owner's collected resources.
func (s *Session) Treasury(owner int) map[string]int {
	out := make(map[string]int, len(s.treasury[owner]))
	for k, v := range s.treasury[owner] {
		out[k] = v
	}
	return out
}
