package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"lunchbot/internal/models"
	"lunchbot/internal/service"
)

// handleListGroups returns the names of every group the user belongs to.
//
//	GET /api/groups?user_id=U
func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		badRequest(w, "user_id is required")
		return
	}

	names, err := s.groups.MembershipsOf(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": names})
}

type createGroupRequest struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// handleCreateGroup creates a group with the caller as its only member.
// Unlike the conversational flow, the API rejects duplicate names.
//
//	POST /api/groups
func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.Name == "" || req.Password == "" {
		badRequest(w, "user_id, name and password are required")
		return
	}

	if err := s.groups.Create(r.Context(), req.Name, req.Password, req.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"group": models.NormalizeGroupName(req.Name),
	})
}

// handleJoinGroup adds the caller to an existing group.
//
//	POST /api/groups/join
func (s *Server) handleJoinGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.Name == "" || req.Password == "" {
		badRequest(w, "user_id, name and password are required")
		return
	}

	if err := s.groups.Join(r.Context(), req.Name, req.Password, req.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"group": models.NormalizeGroupName(req.Name),
	})
}

type createEventRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Group    string `json:"group"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location"`
}

// handleCreateEvent persists an event under a group.
//
//	POST /api/events
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" || req.Group == "" || req.Start == "" || req.End == "" || req.Location == "" {
		badRequest(w, "user_id, group, start, end and location are required")
		return
	}

	start, err := parseTimestamp(req.Start)
	if err != nil {
		badRequest(w, "start is not a valid timestamp")
		return
	}
	end, err := parseTimestamp(req.End)
	if err != nil {
		badRequest(w, "end is not a valid timestamp")
		return
	}

	id, err := s.events.Add(r.Context(), req.Group, &models.Event{
		CreatorID:   req.UserID,
		CreatorName: req.UserName,
		Start:       start,
		End:         end,
		Location:    req.Location,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleDeleteEvent removes one event by id.
//
//	DELETE /api/events/{id}?group=G
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	if group == "" {
		badRequest(w, "group is required")
		return
	}
	id := chi.URLParam(r, "id")

	if err := s.events.Delete(r.Context(), group, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// handleListEvents returns a group's events, filtered by mode.
// Visibility is gated by membership: the requesting user must belong to
// the group.
//
//	GET /api/events?user_id=U&group=G&filter=current|history
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID := q.Get("user_id")
	group := q.Get("group")
	if userID == "" || group == "" {
		badRequest(w, "user_id and group are required")
		return
	}

	mode := service.ModeCurrent
	if f := q.Get("filter"); f != "" {
		var err error
		mode, err = service.ParseMode(f)
		if err != nil {
			badRequest(w, "filter must be 'current' or 'history'")
			return
		}
	}

	member, err := s.groups.IsMember(r.Context(), group, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !member {
		writeJSON(w, http.StatusForbidden, errorBody("not a member of this group"))
		return
	}

	events, err := s.events.Query(r.Context(), group, mode)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]eventJSON, len(events))
	for i, ev := range events {
		out[i] = toEventJSON(ev)
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": out})
}

type chatRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Text     string `json:"text"`
}

// handleChat delivers one conversational turn to the state machine.
//
//	POST /api/chat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	reply := s.chat.Handle(r.Context(), req.UserID, req.UserName, req.Text)
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

// eventJSON is the wire form of an event: raw instants plus the
// display-ready parts the formatter produces.
type eventJSON struct {
	ID          string `json:"id"`
	Group       string `json:"group"`
	CreatorID   string `json:"creator_id"`
	CreatorName string `json:"creator_name"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toEventJSON(ev models.Event) eventJSON {
	date, start, end := service.FormatEvent(ev)
	out := eventJSON{
		ID:          ev.ID,
		Group:       ev.Group,
		CreatorID:   ev.CreatorID,
		CreatorName: ev.CreatorName,
		Location:    ev.Location,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		CreatedAt:   ev.CreatedAt.Format(time.RFC3339),
	}
	if !ev.Start.IsZero() {
		out.Start = ev.Start.Format(time.RFC3339)
	}
	if !ev.End.IsZero() {
		out.End = ev.End.Format(time.RFC3339)
	}
	return out
}

// parseTimestamp accepts RFC 3339 or a naive local "2006-01-02 15:04".
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, time.Local)
}
