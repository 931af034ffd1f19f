package apidto

import (
	"time"

	"github.com/Asjdnnc/hackzilla/pkg/team"
)

type Member struct {
	Name        string `json:"name"`
	CollegeName string `json:"collegeName"`
	IsFromIIITS bool   `json:"isFromIIITS"`
}

type FoodStatus struct {
	Lunch  string `json:"lunch"`
	Dinner string `json:"dinner"`
	Snacks string `json:"snacks"`
}

type Team struct {
	ID          uint32     `json:"id"`
	TeamID      string     `json:"teamId"`
	Name        string     `json:"name"`
	Leader      string     `json:"leader"`
	Members     []Member   `json:"members"`
	Status      string     `json:"status"`
	FoodStatus  FoodStatus `json:"foodStatus"`
	Allotment   string     `json:"allotment"`
	LunchCount  int        `json:"lunchcount"`
	DinnerCount int        `json:"dinnercount"`
	SnacksCount int        `json:"snackscount"`
	QRData      string     `json:"qrData"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func FromTeam(t *team.Team) Team {
	if t == nil {
		return Team{}
	}
	members := make([]Member, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, Member{
			Name:        m.Name,
			CollegeName: m.CollegeName,
			IsFromIIITS: m.IsFromIIITS,
		})
	}
	return Team{
		ID:      t.ID,
		TeamID:  t.TeamID,
		Name:    t.Name,
		Leader:  t.Leader,
		Members: members,
		Status:  string(t.Status),
		FoodStatus: FoodStatus{
			Lunch:  string(t.FoodStatus.Lunch),
			Dinner: string(t.FoodStatus.Dinner),
			Snacks: string(t.FoodStatus.Snacks),
		},
		Allotment:   string(t.Allotment),
		LunchCount:  t.LunchCount,
		DinnerCount: t.DinnerCount,
		SnacksCount: t.SnacksCount,
		QRData:      t.QRData,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func FromTeams(teams []*team.Team) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, FromTeam(t))
	}
	return out
}
