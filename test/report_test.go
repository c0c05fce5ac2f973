package test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/personalplanner/planner/internal/reports"
)

func (s *IntegrationTestSuite) TestVersionWithoutToken() {
	resp, body := doRequest(context.Background(), s.T(), http.MethodGet, "/version", "")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("test-version-info", string(body))
}

func (s *IntegrationTestSuite) TestEvolution() {
	ctx := context.Background()

	resp, body := doRequest(ctx, s.T(), http.MethodGet, "/students/s-1/evolution", testTrainerToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var evolutionResp reports.EvolutionResponse
	s.Require().NoError(json.Unmarshal(body, &evolutionResp))
	s.Require().Len(evolutionResp.View.Points, 2)
	s.Equal("-4.0 kg", evolutionResp.View.DeltaText)
	s.Equal("reduction", evolutionResp.GoalType.String())

	resp, _ = doRequest(ctx, s.T(), http.MethodGet, "/students/s-2/evolution", testTrainerToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	resp, _ = doRequest(ctx, s.T(), http.MethodGet, "/students/s-1/evolution", "unknown-token")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestReport() {
	ctx := context.Background()

	resp, body := doRequest(ctx, s.T(), http.MethodGet, "/students/s-1/report", testTrainerToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/pdf", resp.Header.Get("Content-Type"))
	s.Contains(resp.Header.Get("Content-Disposition"), `filename="relatorio_Ana_Souza_`)
	s.Empty(resp.Header.Get(reports.MissingCollectionsHeader))
	s.Equal("%PDF-", string(body[:5]))

	metricsResp, err := http.Get("http://127.0.0.1:9091/metrics")
	s.Require().NoError(err)
	defer metricsResp.Body.Close()
	metricsBody, err := io.ReadAll(metricsResp.Body)
	s.Require().NoError(err)
	s.Contains(string(metricsBody), `planner_main_reports_rendered`)
	s.Contains(string(metricsBody), `pgxpool_`)
}

func (s *IntegrationTestSuite) TestReportOfOtherTrainersStudent() {
	ctx := context.Background()

	// the limit is 3 per minute and the rejected lookups count too
	for i := 0; i < 3; i++ {
		resp, _ := doRequest(ctx, s.T(), http.MethodGet, "/students/s-1/report", otherTrainerToken)
		s.Equal(http.StatusNotFound, resp.StatusCode)
	}

	resp, body := doRequest(ctx, s.T(), http.MethodGet, "/students/s-1/report", otherTrainerToken)
	s.Equal(http.StatusTooEarly, resp.StatusCode)
	s.Contains(string(body), "retry after")
}

func (s *IntegrationTestSuite) TestLogoutForgetsSession() {
	ctx := context.Background()

	resp, _ := doRequest(ctx, s.T(), http.MethodGet, "/students/s-2/evolution", testTrainerToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	lookups := s.identity.lookups.Load()

	// cached session, no new lookup
	resp, _ = doRequest(ctx, s.T(), http.MethodGet, "/students/s-2/evolution", testTrainerToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(lookups, s.identity.lookups.Load())

	resp, body := doRequest(ctx, s.T(), http.MethodPost, "/session/logout", testTrainerToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("logged-out", string(body))

	resp, _ = doRequest(ctx, s.T(), http.MethodGet, "/students/s-2/evolution", testTrainerToken)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Greater(s.identity.lookups.Load(), lookups)
}
