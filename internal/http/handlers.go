package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/swiss-tournament/internal/pubsub"
	"github.com/mauv0809/swiss-tournament/internal/tournament"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) CountPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := s.Store.CountPlayers(r.Context())
		if err != nil {
			http.Error(w, "Failed to count players", http.StatusInternalServerError)
			log.Error("Failed to count players", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{Count: count})
	}
}

func (s *Server) RegisterPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerPlayerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			log.Warn("Failed to decode register request", "error", err)
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			http.Error(w, "name is required", http.StatusBadRequest)
			return
		}

		id, err := s.Store.RegisterPlayer(r.Context(), name)
		if err != nil {
			http.Error(w, "Failed to register player", http.StatusInternalServerError)
			log.Error("Failed to register player", "error", err, "name", name)
			return
		}
		writeJSON(w, http.StatusCreated, registerPlayerResponse{ID: id, Name: name})
	}
}

func (s *Server) DeletePlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to delete all players")
		if err := s.Store.DeletePlayers(r.Context()); err != nil {
			http.Error(w, "Failed to delete players", http.StatusInternalServerError)
			log.Error("Failed to delete players", "error", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ReportMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reportMatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			log.Warn("Failed to decode match report", "error", err)
			return
		}
		if req.Winner <= 0 || req.Loser <= 0 {
			http.Error(w, "winner and loser must be player ids", http.StatusBadRequest)
			return
		}

		if err := s.Store.ReportMatch(r.Context(), req.Winner, req.Loser); err != nil {
			http.Error(w, "Failed to report match", http.StatusInternalServerError)
			log.Error("Failed to report match", "error", err, "winner", req.Winner, "loser", req.Loser)
			return
		}
		writeJSON(w, http.StatusCreated, req)
	}
}

func (s *Server) DeleteMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to delete all matches")
		if err := s.Store.DeleteMatches(r.Context()); err != nil {
			http.Error(w, "Failed to delete matches", http.StatusInternalServerError)
			log.Error("Failed to delete matches", "error", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ReportByeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reportByeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			log.Warn("Failed to decode bye report", "error", err)
			return
		}
		if req.PlayerID <= 0 {
			http.Error(w, "player_id must be a player id", http.StatusBadRequest)
			return
		}

		if err := s.Store.ReportBye(r.Context(), req.PlayerID); err != nil {
			http.Error(w, "Failed to report bye", http.StatusInternalServerError)
			log.Error("Failed to report bye", "error", err, "player", req.PlayerID)
			return
		}
		writeJSON(w, http.StatusCreated, req)
	}
}

func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := s.Store.PlayerStandings(r.Context())
		if err != nil {
			http.Error(w, "Failed to get standings", http.StatusInternalServerError)
			log.Error("Failed to get standings from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

// PairingsHandler returns the next round. With announce=true the round is
// also published for a Slack announcement.
func (s *Server) PairingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		announce := r.URL.Query().Get("announce") == "true"

		var (
			pairings []tournament.Pairing
			err      error
		)
		if announce {
			pairings, err = s.Processor.PublishPairings(r.Context())
		} else {
			pairings, err = s.Store.SwissPairings(r.Context())
		}
		if err != nil {
			http.Error(w, "Failed to get pairings", http.StatusInternalServerError)
			log.Error("Failed to get pairings", "error", err, "announce", announce)
			return
		}
		writeJSON(w, http.StatusOK, pairings)
	}
}

func (s *Server) AnnounceStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := s.Processor.PublishStandings(r.Context())
		if err != nil {
			http.Error(w, "Failed to publish standings", http.StatusInternalServerError)
			log.Error("Failed to publish standings", "error", err)
			return
		}
		writeJSON(w, http.StatusAccepted, announceResponse{EventID: eventID})
	}
}

func (s *Server) PairingsPushHandler() http.HandlerFunc {
	return s.pushHandler("pairings", s.Processor.HandlePairingsMessage)
}

func (s *Server) StandingsPushHandler() http.HandlerFunc {
	return s.pushHandler("standings", s.Processor.HandleStandingsMessage)
}

// pushHandler unwraps a Pub/Sub push request and hands the payload to handle.
// A non-2xx reply makes Pub/Sub redeliver, so only delivery failures return 500.
func (s *Server) pushHandler(kind string, handle func(data []byte, dryRun bool) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received push message", "kind", kind, "body", string(bodyBytes))

		rawData, err := pubsub.DecodePush(bodyBytes)
		if err != nil {
			log.Error("Failed to decode push message", "kind", kind, "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}

		if err := handle(rawData, s.isDryRun(r)); err != nil {
			log.Error("Failed to handle push message", "kind", kind, "error", err)
			http.Error(w, "Failed to handle message", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

// isDryRun is true when the request asks for it or Slack is not configured.
func (s *Server) isDryRun(r *http.Request) bool {
	return isDryRunFromContext(r) || !s.Cfg.Slack.Enabled()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
