package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"commentary-service/models"
	"commentary-service/services"
)

// parseRequest POST /api/parse 请求体
type parseRequest struct {
	MatchID   string                   `json:"match_id"`
	OurTeam   string                   `json:"our_team,omitempty"`
	Text      string                   `json:"text"`
	TeamStats *models.TeamStatsPayload `json:"team_stats,omitempty"`
	Persist   bool                     `json:"persist,omitempty"`
}

// handleParse 同步解析一份解说文档并返回完整报告
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Text == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if req.MatchID == "" {
		req.MatchID = "adhoc-" + time.Now().UTC().Format("20060102150405")
	}

	ourTeam := req.OurTeam
	if ourTeam == "" {
		ourTeam = s.config.OurTeam
	}

	doc := models.CommentaryDocument{
		MatchID:    req.MatchID,
		OurTeam:    ourTeam,
		Text:       req.Text,
		Source:     "api",
		ReceivedAt: time.Now().UTC(),
	}

	report, err := s.parser.ParseReport(doc)
	if err != nil {
		var lineupErr *services.LineupResolutionError
		if errors.As(err, &lineupErr) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// 外部球队统计只合并,不参与解析
	if req.TeamStats != nil {
		services.MergeTeamStats(report.Memory, req.TeamStats)
	}

	if req.Persist {
		if err := s.matchStore.SaveDocument(doc); err != nil {
			log.Printf("Failed to save document %s: %v", doc.MatchID, err)
		}
		if err := s.matchStore.SaveReport(report); err != nil {
			log.Printf("Failed to save report %s: %v", doc.MatchID, err)
		}

		s.wsHub.Broadcast(map[string]interface{}{
			"type":      "match_parsed",
			"match_id":  report.MatchID,
			"our_team":  report.OurTeam,
			"mode":      report.BiasMode,
			"timestamp": time.Now().Unix(),
			"data": map[string]interface{}{
				"scoreline":   report.Stats.Scoreline,
				"event_count": len(report.Events),
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
