package providers

// ESPN API response structures. Only the fields the service reads are
// declared; everything else in the payloads is ignored by the decoder.

type espnScoreboardResponse struct {
	Events []espnEvent `json:"events"`
}

type espnEvent struct {
	ID           string            `json:"id"`
	Date         string            `json:"date"`
	Name         string            `json:"name"`
	Status       espnStatus        `json:"status"`
	Competitions []espnCompetition `json:"competitions"`
}

type espnStatus struct {
	Type struct {
		Description string `json:"description"`
		ShortDetail string `json:"shortDetail"`
		Completed   bool   `json:"completed"`
	} `json:"type"`
}

type espnCompetition struct {
	ID          string           `json:"id"`
	Competitors []espnCompetitor `json:"competitors"`
	Venue       struct {
		FullName string `json:"fullName"`
	} `json:"venue"`
	Broadcasts []struct {
		Names []string `json:"names"`
	} `json:"broadcasts"`
}

type espnCompetitor struct {
	ID       string `json:"id"`
	HomeAway string `json:"homeAway"`
	Score    string `json:"score"`
	// College scoreboards carry the poll rank as an object; 99 means
	// unranked.
	CuratedRank struct {
		Current int `json:"current"`
	} `json:"curatedRank"`
	Team    espnTeam `json:"team"`
	Records []struct {
		Summary string `json:"summary"`
		Type    string `json:"type"`
	} `json:"records"`
}

type espnTeam struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Abbreviation     string `json:"abbreviation"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Nickname         string `json:"nickname"`
	Location         string `json:"location"`
}

type espnTeamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team espnTeam `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

type espnRosterResponse struct {
	Team struct {
		ID           string `json:"id"`
		Abbreviation string `json:"abbreviation"`
		DisplayName  string `json:"displayName"`
		Athletes     []struct {
			ID          string `json:"id"`
			FullName    string `json:"fullName"`
			DisplayName string `json:"displayName"`
			Position    struct {
				Abbreviation string `json:"abbreviation"`
				Name         string `json:"name"`
			} `json:"position"`
		} `json:"athletes"`
	} `json:"team"`
}

type espnNewsResponse struct {
	Articles []struct {
		Headline    string `json:"headline"`
		Description string `json:"description"`
		Published   string `json:"published"`
		Links       struct {
			Web struct {
				Href string `json:"href"`
			} `json:"web"`
		} `json:"links"`
	} `json:"articles"`
}

type espnRankingsResponse struct {
	Rankings []struct {
		Name  string `json:"name"`
		Ranks []struct {
			Current int `json:"current"`
			Team    struct {
				Nickname string `json:"nickname"`
				Name     string `json:"name"`
				Location string `json:"location"`
			} `json:"team"`
		} `json:"ranks"`
	} `json:"rankings"`
}

type espnSearchResponse struct {
	Results []struct {
		Type     string `json:"type"`
		Contents []struct {
			ID          string `json:"id"`
			UID         string `json:"uid"`
			DisplayName string `json:"displayName"`
			Description string `json:"description"`
			Sport       string `json:"sport"`
			DefaultLeagueSlug string `json:"defaultLeagueSlug"`
		} `json:"contents"`
	} `json:"results"`
}

type espnAthleteResponse struct {
	Athlete struct {
		ID          string  `json:"id"`
		DisplayName string  `json:"displayName"`
		Age         int     `json:"age"`
		DisplayHeight string `json:"displayHeight"`
		DisplayWeight string `json:"displayWeight"`
		DebutYear   int     `json:"debutYear"`
		Position    struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"position"`
		Team struct {
			ID           string `json:"id"`
			Abbreviation string `json:"abbreviation"`
			DisplayName  string `json:"displayName"`
		} `json:"team"`
		College struct {
			Name string `json:"name"`
		} `json:"college"`
		DisplayDraft string `json:"displayDraft"`
		Statistics   struct {
			DisplayName string `json:"displayName"`
			Splits      struct {
				Categories []struct {
					Name         string   `json:"name"`
					DisplayName  string   `json:"displayName"`
					Labels       []string `json:"labels"`
					Names        []string `json:"names"`
					DisplayNames []string `json:"displayNames"`
					Statistics   []struct {
						Name         string `json:"name"`
						DisplayName  string `json:"displayName"`
						DisplayValue string `json:"displayValue"`
						Value        float64 `json:"value"`
					} `json:"statistics"`
					Stats []struct {
						Name         string  `json:"name"`
						DisplayName  string  `json:"displayName"`
						DisplayValue string  `json:"displayValue"`
						Value        float64 `json:"value"`
					} `json:"stats"`
				} `json:"categories"`
			} `json:"splits"`
		} `json:"statistics"`
	} `json:"athlete"`
}
