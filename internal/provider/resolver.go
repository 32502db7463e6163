package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// ErrAmbiguousFixture is returned when several fixtures on a day match the
// same pair of team names.
var ErrAmbiguousFixture = errors.New("ambiguous fixture")

// FixtureLister lists fixtures by day.
type FixtureLister interface {
	FixturesByDate(ctx context.Context, date string) ([]FixtureSummary, error)
}

// Resolution identifies the fixture a slip row was written against.
// Swapped is set when the row named the teams in away/home order.
type Resolution struct {
	FixtureID int64
	Swapped   bool
}

// Resolver maps team names and a date to a fixture id by exact name match.
type Resolver struct {
	lister FixtureLister
	logger *zap.Logger
}

// NewResolver creates a new fixture resolver.
func NewResolver(lister FixtureLister, logger *zap.Logger) (*Resolver, error) {
	if lister == nil {
		return nil, errors.New("lister cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Resolver{lister: lister, logger: logger}, nil
}

// Resolve finds the fixture between home and away played on date. A fixture
// matched with the names reversed is returned with Swapped set.
func (r *Resolver) Resolve(ctx context.Context, home, away, date string) (Resolution, error) {
	wantHome, wantAway := normalizeTeam(home), normalizeTeam(away)
	if wantHome == "" || wantAway == "" {
		return Resolution{}, errors.New("team names cannot be empty")
	}

	fixtures, err := r.lister.FixturesByDate(ctx, date)
	if err != nil {
		ResolverLookupsTotal.WithLabelValues("error").Inc()
		return Resolution{}, fmt.Errorf("list fixtures for %s: %w", date, err)
	}

	var matches []Resolution
	for _, f := range fixtures {
		gotHome, gotAway := normalizeTeam(f.HomeTeam), normalizeTeam(f.AwayTeam)
		switch {
		case gotHome == wantHome && gotAway == wantAway:
			matches = append(matches, Resolution{FixtureID: f.ID})
		case gotHome == wantAway && gotAway == wantHome:
			matches = append(matches, Resolution{FixtureID: f.ID, Swapped: true})
		}
	}

	switch len(matches) {
	case 0:
		ResolverLookupsTotal.WithLabelValues("not-found").Inc()
		return Resolution{}, fmt.Errorf("%s vs %s on %s: %w", home, away, date, ErrFixtureNotFound)
	case 1:
		ResolverLookupsTotal.WithLabelValues("resolved").Inc()
		r.logger.Debug("fixture-resolved",
			zap.String("home", home),
			zap.String("away", away),
			zap.String("date", date),
			zap.Int64("fixture-id", matches[0].FixtureID),
			zap.Bool("swapped", matches[0].Swapped))
		return matches[0], nil
	default:
		ResolverLookupsTotal.WithLabelValues("ambiguous").Inc()
		return Resolution{}, fmt.Errorf("%s vs %s on %s matched %d fixtures: %w",
			home, away, date, len(matches), ErrAmbiguousFixture)
	}
}

// normalizeTeam lowercases a team name and collapses punctuation and spacing.
func normalizeTeam(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.Join(fields, " ")
}
