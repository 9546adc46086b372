// Package github fetches user activity statistics from the GitHub GraphQL
// API and shapes them into the pipeline's RawStats input.
package github

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gitaura/gitaura/internal/domain/stats"
)

// Fetch shape constants.
const (
	defaultLookback = 365 * 24 * time.Hour

	// languagesPerRepo and reposPerQuery bound the language aggregation;
	// commitHistoryDepth and historyRepos bound the hour histogram scan.
	languagesPerRepo   = 10
	reposPerQuery      = 100
	commitHistoryDepth = 50
	historyRepos       = 10
)

// Client fetches statistics over the GitHub GraphQL v4 API.
type Client struct {
	gql      *githubv4.Client
	lookback time.Duration
	now      func() time.Time
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithLookback sets the activity window; defaults to one year.
func WithLookback(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.lookback = d
		}
	}
}

// NewClient builds a Client authenticated with the given token.
func NewClient(ctx context.Context, token string, opts ...Option) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	c := &Client{
		gql:      githubv4.NewClient(oauth2.NewClient(ctx, src)),
		lookback: defaultLookback,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// statsQuery covers commit totals, the contribution calendar and the
// per-repository language breakdown in one round trip.
type statsQuery struct {
	User struct {
		DatabaseID              int64
		ContributionsCollection struct {
			TotalCommitContributions int
			ContributionCalendar     struct {
				Weeks []struct {
					ContributionDays []struct {
						ContributionCount int
						Date              string
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
		Repositories struct {
			Nodes []struct {
				Languages struct {
					Edges []languageEdge
				} `graphql:"languages(first: 10, orderBy: {field: SIZE, direction: DESC})"`
			}
		} `graphql:"repositories(first: 100, ownerAffiliations: OWNER, orderBy: {field: UPDATED_AT, direction: DESC})"`
	} `graphql:"user(login: $login)"`
}

type languageEdge struct {
	Size int
	Node struct {
		Name  string
		Color string
	}
}

// historyQuery samples recent commit timestamps for the hour histogram.
// GraphQL does not expose commit times directly, so this walks the default
// branches of the most recently contributed-to repositories.
type historyQuery struct {
	User struct {
		ContributionsCollection struct {
			CommitContributionsByRepository []struct {
				Repository struct {
					DefaultBranchRef *struct {
						Target struct {
							Commit struct {
								History struct {
									Nodes []commitNode
								} `graphql:"history(first: 50)"`
							} `graphql:"... on Commit"`
						}
					}
				}
			} `graphql:"commitContributionsByRepository(maxRepositories: 10)"`
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

type commitNode struct {
	CommittedDate time.Time
	Author        struct {
		User *struct {
			Login string
		}
	}
}

// Stats fetches and shapes the statistics for a login.
func (c *Client) Stats(ctx context.Context, login string) (stats.RawStats, error) {
	now := c.now().UTC()
	from := now.Add(-c.lookback)
	vars := map[string]interface{}{
		"login": githubv4.String(login),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: now},
	}

	var q statsQuery
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		if strings.Contains(err.Error(), "Could not resolve to a User") {
			return stats.RawStats{}, fmt.Errorf("%w: %s", ErrUserNotFound, login)
		}
		return stats.RawStats{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	var dayCounts []int
	for _, week := range q.User.ContributionsCollection.ContributionCalendar.Weeks {
		for _, day := range week.ContributionDays {
			dayCounts = append(dayCounts, day.ContributionCount)
		}
	}

	var edges []languageEdge
	for _, repo := range q.User.Repositories.Nodes {
		edges = append(edges, repo.Languages.Edges...)
	}

	return stats.RawStats{
		Login:         login,
		UserID:        q.User.DatabaseID,
		TotalCommits:  q.User.ContributionsCollection.TotalCommitContributions,
		LongestStreak: longestStreak(dayCounts),
		HourHistogram: c.hourHistogram(ctx, login, vars),
		Languages:     aggregateLanguages(edges),
	}, nil
}

// hourHistogram fetches recent commit timestamps and buckets them by hour.
// Commit history can be unavailable (empty repos, restricted branches), in
// which case a uniform histogram keeps turbulence at its neutral value.
func (c *Client) hourHistogram(ctx context.Context, login string, vars map[string]interface{}) [stats.HourBuckets]int {
	var q historyQuery
	if err := c.gql.Query(ctx, &q, vars); err != nil {
		return uniformHistogram()
	}

	var times []time.Time
	for _, contrib := range q.User.ContributionsCollection.CommitContributionsByRepository {
		ref := contrib.Repository.DefaultBranchRef
		if ref == nil {
			continue
		}
		for _, commit := range ref.Target.Commit.History.Nodes {
			if commit.Author.User == nil || !strings.EqualFold(commit.Author.User.Login, login) {
				continue
			}
			times = append(times, commit.CommittedDate)
		}
	}
	if len(times) == 0 {
		return uniformHistogram()
	}
	return bucketByHour(times)
}

// longestStreak scans chronologically ordered daily contribution counts for
// the longest run of consecutive active days.
func longestStreak(dayCounts []int) int {
	var longest, current int
	for _, n := range dayCounts {
		if n > 0 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}

// bucketByHour counts commits per UTC hour of day.
func bucketByHour(times []time.Time) [stats.HourBuckets]int {
	var hist [stats.HourBuckets]int
	for _, t := range times {
		hist[t.UTC().Hour()]++
	}
	return hist
}

// uniformHistogram is the neutral fallback when commit times are unknown.
func uniformHistogram() [stats.HourBuckets]int {
	var hist [stats.HourBuckets]int
	for i := range hist {
		hist[i] = 1
	}
	return hist
}

// aggregateLanguages sums byte sizes per language across repositories and
// returns them ordered by weight descending, name ascending on ties. The
// first color GitHub reports for a language wins.
func aggregateLanguages(edges []languageEdge) []stats.Language {
	totals := make(map[string]*stats.Language)
	var order []string
	for _, e := range edges {
		lang, ok := totals[e.Node.Name]
		if !ok {
			lang = &stats.Language{Name: e.Node.Name, Hex: e.Node.Color}
			totals[e.Node.Name] = lang
			order = append(order, e.Node.Name)
		}
		lang.Weight += float64(e.Size)
	}

	out := make([]stats.Language, 0, len(order))
	for _, name := range order {
		out = append(out, *totals[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Name < out[j].Name
	})
	return out
}
