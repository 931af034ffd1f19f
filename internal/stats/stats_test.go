package stats_test

import (
	"testing"

	"github.com/Asjdnnc/hackzilla/internal/stats"
	"github.com/Asjdnnc/hackzilla/pkg/team"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type listOnlyRepo struct {
	teams []*team.Team
}

func (r *listOnlyRepo) Create(t *team.Team) (*team.Team, error) { return t, nil }
func (r *listOnlyRepo) GetByTeamID(teamID string) (*team.Team, error) {
	return nil, team.ErrTeamNotFound
}
func (r *listOnlyRepo) List() ([]*team.Team, error)           { return r.teams, nil }
func (r *listOnlyRepo) Save(t *team.Team) (*team.Team, error) { return t, nil }
func (r *listOnlyRepo) Delete(id uint32) error                { return team.ErrTeamNotFound }

func newService(teams ...*team.Team) *stats.Service {
	return stats.NewService(zap.NewNop().Sugar(), &listOnlyRepo{teams: teams})
}

func TestOverall(t *testing.T) {
	svc := newService(
		&team.Team{
			TeamID:  "2501",
			Status:  team.StatusValid,
			Members: []team.Member{{Name: "a"}, {Name: "b"}},
		},
		&team.Team{
			TeamID:  "2502",
			Status:  team.StatusInvalid,
			Members: []team.Member{{Name: "c"}, {Name: "d"}, {Name: "e"}},
		},
	)

	got, err := svc.Overall()
	require.NoError(t, err)
	require.Equal(t, &stats.Overall{
		TotalTeams:        2,
		ApprovedTeams:     1,
		PendingTeams:      1,
		TotalParticipants: 5,
	}, got)
}

func TestOverall_Empty(t *testing.T) {
	got, err := newService().Overall()
	require.NoError(t, err)
	require.Equal(t, &stats.Overall{}, got)
}

func TestFood(t *testing.T) {
	lunchServed := team.NewFoodStatus()
	lunchServed.Lunch = team.StatusValid

	svc := newService(
		&team.Team{TeamID: "2501", Status: team.StatusValid, FoodStatus: lunchServed},
		&team.Team{TeamID: "2502", Status: team.StatusInvalid, FoodStatus: team.NewFoodStatus()},
	)

	got, err := svc.Food()
	require.NoError(t, err)
	require.Equal(t, &stats.Food{
		// no breakfast field backs the bucket, so served is always zero
		Breakfast: stats.Meal{Total: 2, Served: 0},
		Lunch:     stats.Meal{Total: 2, Served: 1},
		Dinner:    stats.Meal{Total: 2, Served: 0},
		Snacks:    stats.Meal{Total: 2, Served: 0},
	}, got)
}
