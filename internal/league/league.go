// Package league holds the MLS club and conference lookup tables.
package league

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Conference groups clubs for filtering. Declaration order is display
// order.
type Conference struct {
	Name  string
	Teams []string
}

// Conferences lists both MLS conferences.
var Conferences = []Conference{
	{
		Name: "Eastern Conference",
		Teams: []string{
			"Atlanta United",
			"CF Montréal",
			"Charlotte FC",
			"Chicago Fire FC",
			"Columbus Crew",
			"D.C. United",
			"FC Cincinnati",
			"Inter Miami CF",
			"Nashville SC",
			"New England Revolution",
			"New York City FC",
			"New York Red Bulls",
			"Orlando City",
			"Philadelphia Union",
			"Toronto FC",
		},
	},
	{
		Name: "Western Conference",
		Teams: []string{
			"Austin FC",
			"Colorado Rapids",
			"FC Dallas",
			"Houston Dynamo FC",
			"LA Galaxy",
			"Los Angeles FC",
			"Minnesota United",
			"Portland Timbers",
			"Real Salt Lake",
			"San Diego FC",
			"San Jose Earthquakes",
			"Seattle Sounders FC",
			"Sporting Kansas City",
			"St. Louis City SC",
			"Vancouver Whitecaps FC",
		},
	},
}

// AllConference is the pseudo-conference selecting every club. It is
// always first in selection lists.
const AllConference = "All MLS"

// AllTeams is the pseudo-entry selecting every team in team pickers.
const AllTeams = "All teams"

// ConferenceNames returns the selectable conference names,
// AllConference first.
func ConferenceNames() []string {
	names := make([]string, 0, len(Conferences)+1)
	names = append(names, AllConference)
	for _, c := range Conferences {
		names = append(names, c.Name)
	}
	return names
}

// TeamsFor returns the clubs a conference name selects, sorted.
// AllConference selects every club. Unknown names select nothing.
func TeamsFor(name string) []string {
	var teams []string
	for _, c := range Conferences {
		if name == AllConference || name == c.Name {
			teams = append(teams, c.Teams...)
		}
	}
	SortTeams(teams)
	return teams
}

// Contains reports whether a team is selected by a conference filter.
// AllConference admits any team name, including clubs missing from the
// lookup table; unknown conference names admit none.
func Contains(conference, team string) bool {
	if conference == AllConference {
		return true
	}
	for _, c := range Conferences {
		if c.Name != conference {
			continue
		}
		for _, t := range c.Teams {
			if t == team {
				return true
			}
		}
		return false
	}
	return false
}

// SortTeams orders team names alphabetically in place. Collation is
// English so accented names such as CF Montréal order naturally.
func SortTeams(teams []string) {
	collate.New(language.English).SortStrings(teams)
}
