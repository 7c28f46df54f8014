package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mauv0809/swiss-tournament/internal/config"
	"github.com/mauv0809/swiss-tournament/internal/database"
	"github.com/mauv0809/swiss-tournament/internal/metrics"
	"github.com/mauv0809/swiss-tournament/internal/notifier"
	"github.com/mauv0809/swiss-tournament/internal/processor"
	"github.com/mauv0809/swiss-tournament/internal/pubsub"
	"github.com/mauv0809/swiss-tournament/internal/tournament"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

type testServer struct {
	*Server
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
}

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, cfg config.Config) (*testServer, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	store := tournament.New(database.NewConnector(db), metricsSvc)
	n := notifier.NewMock()
	ps := pubsub.NewMock()
	proc := processor.New(store, n, ps)

	server := NewServer(store, proc, metrics.NewMetricsHandler(reg), cfg)
	return &testServer{Server: server, notifier: n, pubsub: ps}, dbTeardown
}

func (s *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) register(t *testing.T, name string) int64 {
	t.Helper()
	rr := s.do(t, "POST", "/players", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp registerPlayerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.ID
}

func pushBody(t *testing.T, payload any) string {
	t.Helper()
	raw, err := msgpack.Marshal(payload)
	require.NoError(t, err)
	var req pubsub.PushRequest
	req.Subscription = "projects/test/subscriptions/announce"
	req.Message.Data = base64.StdEncoding.EncodeToString(raw)
	body, err := json.Marshal(req)
	require.NoError(t, err)
	return string(body)
}

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	rr := server.do(t, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestRegisterAndCountPlayers(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	assert.Equal(t, int64(1), server.register(t, "Twilight Sparkle"))
	assert.Equal(t, int64(2), server.register(t, "Fluttershy"))

	rr := server.do(t, "GET", "/players/count", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"count":2}`, rr.Body.String())

	rr = server.do(t, "DELETE", "/players", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = server.do(t, "GET", "/players/count", nil)
	assert.JSONEq(t, `{"count":0}`, rr.Body.String())
}

func TestRegisterPlayerHandler_Validation(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{"},
		{"missing name", `{}`},
		{"blank name", `{"name":"   "}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := server.do(t, "POST", "/players", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestMatchesStandingsAndPairings(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	a := server.register(t, "A")
	b := server.register(t, "B")
	c := server.register(t, "C")
	d := server.register(t, "D")

	rr := server.do(t, "POST", "/matches", reportMatchRequest{Winner: a, Loser: b})
	require.Equal(t, http.StatusCreated, rr.Code)
	rr = server.do(t, "POST", "/matches", reportMatchRequest{Winner: c, Loser: d})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = server.do(t, "GET", "/standings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var standings []tournament.Standing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	require.Len(t, standings, 4)
	assert.Equal(t, []int64{a, c, b, d}, []int64{standings[0].ID, standings[1].ID, standings[2].ID, standings[3].ID})

	rr = server.do(t, "GET", "/pairings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var pairings []tournament.Pairing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pairings))
	assert.Equal(t, []tournament.Pairing{
		{ID1: a, Name1: "A", ID2: c, Name2: "C"},
		{ID1: b, Name1: "B", ID2: d, Name2: "D"},
	}, pairings)
	assert.Empty(t, server.pubsub.SendMessageCalls, "plain pairings request must not publish")

	rr = server.do(t, "DELETE", "/matches", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = server.do(t, "GET", "/standings", nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	for _, st := range standings {
		assert.Zero(t, st.Matches)
	}
}

func TestReportMatchHandler_Errors(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	a := server.register(t, "A")

	rr := server.do(t, "POST", "/matches", `{"winner":1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = server.do(t, "POST", "/matches", "not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = server.do(t, "POST", "/matches", reportMatchRequest{Winner: a, Loser: 404})
	assert.Equal(t, http.StatusInternalServerError, rr.Code, "unknown players fail the foreign key")
}

func TestReportByeHandler(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	a := server.register(t, "A")
	server.register(t, "B")
	c := server.register(t, "C")

	rr := server.do(t, "GET", "/pairings", nil)
	var pairings []tournament.Pairing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pairings))
	require.Len(t, pairings, 2)
	assert.True(t, pairings[1].Bye)
	assert.Equal(t, c, pairings[1].ID1)

	rr = server.do(t, "POST", "/byes", reportByeRequest{PlayerID: c})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = server.do(t, "POST", "/byes", `{"player_id":0}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = server.do(t, "GET", "/standings", nil)
	var standings []tournament.Standing
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &standings))
	assert.Equal(t, tournament.Standing{ID: c, Name: "C", Wins: 1, Matches: 1}, standings[0])
	assert.Equal(t, a, standings[1].ID)
}

func TestPairingsHandler_Announce(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	server.register(t, "A")
	server.register(t, "B")

	rr := server.do(t, "GET", "/pairings?announce=true", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	require.Len(t, server.pubsub.SendMessageCalls, 1)
	call := server.pubsub.SendMessageCalls[0]
	assert.Equal(t, pubsub.EventPairingsGenerated, call.Topic)
	event, ok := call.Data.(processor.PairingsEvent)
	require.True(t, ok)
	assert.Len(t, event.Pairings, 1)
}

func TestAnnounceStandingsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	server.register(t, "A")

	rr := server.do(t, "POST", "/announce/standings", nil)
	require.Equal(t, http.StatusAccepted, rr.Code)

	var resp announceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.EventID)
	require.Len(t, server.pubsub.SendMessageCalls, 1)
	assert.Equal(t, pubsub.EventStandingsPublished, server.pubsub.SendMessageCalls[0].Topic)
}

func TestPushHandlers(t *testing.T) {
	slackCfg := config.Config{Slack: config.SlackConfig{Token: "xoxb-test", ChannelID: "C1"}}

	t.Run("pairings are announced", func(t *testing.T) {
		server, teardown := setupTestServer(t, slackCfg)
		defer teardown()

		event := processor.PairingsEvent{ID: "evt", Pairings: []tournament.Pairing{{ID1: 1, Name1: "A", ID2: 2, Name2: "B"}}}
		rr := server.do(t, "POST", "/pubsub/pairings", pushBody(t, event))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "OK", rr.Body.String())

		require.Len(t, server.notifier.SendPairingsCalls, 1)
		assert.Equal(t, event.Pairings, server.notifier.SendPairingsCalls[0])
		assert.Equal(t, []bool{false}, server.notifier.DryRuns)
	})

	t.Run("dry_run is honoured", func(t *testing.T) {
		server, teardown := setupTestServer(t, slackCfg)
		defer teardown()

		event := processor.StandingsEvent{ID: "evt", Standings: []tournament.Standing{{ID: 1, Name: "A"}}}
		rr := server.do(t, "POST", "/pubsub/standings?dry_run=true", pushBody(t, event))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []bool{true}, server.notifier.DryRuns)
	})

	t.Run("slack not configured forces dry run", func(t *testing.T) {
		server, teardown := setupTestServer(t, config.Config{})
		defer teardown()

		rr := server.do(t, "POST", "/pubsub/standings", pushBody(t, processor.StandingsEvent{ID: "evt"}))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []bool{true}, server.notifier.DryRuns)
	})

	t.Run("malformed envelope", func(t *testing.T) {
		server, teardown := setupTestServer(t, slackCfg)
		defer teardown()

		rr := server.do(t, "POST", "/pubsub/pairings", "{")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Empty(t, server.notifier.SendPairingsCalls)
	})

	t.Run("undecodable payload", func(t *testing.T) {
		server, teardown := setupTestServer(t, slackCfg)
		defer teardown()

		server.pubsub.ProcessMessageFunc = func(data []byte, returnValue any) error {
			return errors.New("msgpack: invalid code")
		}
		rr := server.do(t, "POST", "/pubsub/pairings", pushBody(t, processor.PairingsEvent{ID: "evt"}))
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.Empty(t, server.notifier.SendPairingsCalls)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	server.register(t, "A")
	server.do(t, "GET", "/pairings", nil)

	rr := server.do(t, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "tournament_players_registered_total 1"), body)
	assert.Contains(t, body, "tournament_pairings_generated_total 1")
}

func TestMethodNotAllowed(t *testing.T) {
	server, teardown := setupTestServer(t, config.Config{})
	defer teardown()

	rr := server.do(t, "PUT", "/players", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
