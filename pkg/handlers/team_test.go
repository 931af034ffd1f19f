package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Asjdnnc/hackzilla/internal/handlers/apierr"
	"github.com/Asjdnnc/hackzilla/pkg/handlers"
	"github.com/Asjdnnc/hackzilla/pkg/team"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTeamsRepo struct {
	created *team.Team
	saved   *team.Team
	stored  *team.Team
}

func (r *stubTeamsRepo) Create(t *team.Team) (*team.Team, error) {
	r.created = t
	t.TeamID = "2501"
	return t, nil
}

func (r *stubTeamsRepo) GetByTeamID(teamID string) (*team.Team, error) {
	if r.stored == nil || r.stored.TeamID != teamID {
		return nil, team.ErrTeamNotFound
	}
	cp := *r.stored
	return &cp, nil
}

func (r *stubTeamsRepo) List() ([]*team.Team, error) { return nil, nil }

func (r *stubTeamsRepo) Save(t *team.Team) (*team.Team, error) {
	r.saved = t
	cp := *t
	r.stored = &cp
	return t, nil
}

func (r *stubTeamsRepo) Delete(id uint32) error { return nil }

func newTeamRouter(repo team.TeamsRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewTeamHandler(zap.NewNop().Sugar(), repo)

	router := gin.New()
	router.POST("/teams", h.CreateTeam)
	router.PUT("/teams/:teamId", h.UpdateTeam)
	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func storedTeam() *team.Team {
	return &team.Team{
		ID:         1,
		TeamID:     "2501",
		Name:       "null pointers",
		Leader:     "asha",
		Status:     team.StatusValid,
		FoodStatus: team.NewFoodStatus(),
		Allotment:  team.StatusInvalid,
	}
}

func TestCreateTeam_BlankFieldsRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "whitespace team name",
			body: `{"name":"   ","leader":"asha","members":[{"name":"a","collegeName":"b"}]}`,
		},
		{
			name: "whitespace leader",
			body: `{"name":"null pointers","leader":"\t ","members":[{"name":"a","collegeName":"b"}]}`,
		},
		{
			name: "whitespace member name",
			body: `{"name":"null pointers","leader":"asha","members":[{"name":"   ","collegeName":"b"}]}`,
		},
		{
			name: "whitespace member college",
			body: `{"name":"null pointers","leader":"asha","members":[{"name":"a","collegeName":"  "}]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubTeamsRepo{}
			router := newTeamRouter(repo)

			w := doJSON(router, http.MethodPost, "/teams", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Nil(t, repo.created, "repo must not see an invalid team")

			var resp apierr.ErrResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.False(t, resp.Success)
			require.Equal(t, apierr.BadRequest, resp.Error)
		})
	}
}

func TestCreateTeam_TrimsFields(t *testing.T) {
	repo := &stubTeamsRepo{}
	router := newTeamRouter(repo)

	body := `{"name":"  null pointers ","leader":" asha ","members":[{"name":" asha ","collegeName":" IIIT Sri City ","isFromIIITS":true}]}`
	w := doJSON(router, http.MethodPost, "/teams", body)
	require.Equal(t, http.StatusCreated, w.Code)

	require.NotNil(t, repo.created)
	require.Equal(t, "null pointers", repo.created.Name)
	require.Equal(t, "asha", repo.created.Leader)
	require.Equal(t, []team.Member{
		{Name: "asha", CollegeName: "IIIT Sri City", IsFromIIITS: true},
	}, repo.created.Members)
}

func TestUpdateTeam_BlankFieldsRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "whitespace team name",
			body: `{"name":"   ","leader":"asha"}`,
		},
		{
			name: "whitespace leader",
			body: `{"name":"null pointers","leader":"   "}`,
		},
		{
			name: "whitespace member college",
			body: `{"name":"null pointers","leader":"asha","members":[{"name":"a","collegeName":"   "}]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubTeamsRepo{stored: storedTeam()}
			router := newTeamRouter(repo)

			w := doJSON(router, http.MethodPut, "/teams/2501", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Nil(t, repo.saved, "repo must not see an invalid update")

			var resp apierr.ErrResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Equal(t, apierr.BadRequest, resp.Error)
		})
	}
}

func TestUpdateTeam_StatusFlipMovesGauge(t *testing.T) {
	repo := &stubTeamsRepo{stored: storedTeam()}
	router := newTeamRouter(repo)

	before := checkedInGauge(t)

	w := doJSON(router, http.MethodPut, "/teams/2501",
		`{"name":"null pointers","leader":"asha","status":"invalid"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, before-1, checkedInGauge(t))

	w = doJSON(router, http.MethodPut, "/teams/2501",
		`{"name":"null pointers","leader":"asha","status":"valid"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, before, checkedInGauge(t))

	// no status in the body leaves the gauge alone
	w = doJSON(router, http.MethodPut, "/teams/2501",
		`{"name":"null pointers","leader":"asha"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, before, checkedInGauge(t))
}

func checkedInGauge(t *testing.T) float64 {
	t.Helper()

	mfs, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() == "checked_in_teams" {
			return mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return 0
}
