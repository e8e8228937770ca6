package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"mascotd/internal/keeper"
	"mascotd/internal/pet"
)

// petView is the JSON shape of a pet snapshot.
type petView struct {
	GuildID    int64  `json:"guild_id"`
	Name       string `json:"name"`
	Form       string `json:"form"`
	Stage      string `json:"stage"`
	SpriteKey  string `json:"sprite_key"`
	Hunger     int    `json:"hunger"`
	Happiness  int    `json:"happiness"`
	Hygiene    int    `json:"hygiene"`
	Sleep      int    `json:"sleep"`
	CareScore  int    `json:"care_score"`
	BornAt     string `json:"born_at"`
	AgeDays    int    `json:"age_days"`
	FeedsToday int    `json:"feeds_today"`
	LoveToday  int    `json:"love_today"`
	Dead       bool   `json:"dead"`
	DeadUntil  string `json:"dead_until,omitempty"`
	LastWords  string `json:"last_words,omitempty"`
	Line       string `json:"line,omitempty"`

	// Transitions triggered by the decay applied on this request.
	JustDied    bool `json:"just_died,omitempty"`
	JustHatched bool `json:"just_hatched,omitempty"`
}

func viewOf(st *keeper.Status) petView {
	p := st.Pet
	v := petView{
		GuildID:    p.GuildID,
		Name:       p.Name,
		Form:       string(p.Form),
		Stage:      p.EvolutionStage(),
		SpriteKey:  st.SpriteKey,
		Hunger:     p.Hunger,
		Happiness:  p.Happiness,
		Hygiene:    p.Hygiene,
		Sleep:      p.Sleep,
		CareScore:  pet.CareScore(p.Vitals()),
		BornAt:     p.BornAt.Format(time.RFC3339),
		AgeDays:    p.AgeDays(time.Now().UTC()),
		FeedsToday: p.FeedsToday,
		LoveToday:  p.LoveToday,
		Dead:       st.Dead,
		LastWords:  p.LastWords,
		Line:       st.Line,

		JustDied:    st.Result.Died,
		JustHatched: st.Result.Hatched,
	}
	if p.DeadUntil != nil {
		v.DeadUntil = p.DeadUntil.UTC().Format(time.RFC3339)
	}
	return v
}

func guildID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
	return id, err == nil && id > 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := guildID(r)
	if !ok {
		http.Error(w, `{"error":"invalid guild id"}`, http.StatusBadRequest)
		return
	}

	st, err := s.keeper.Status(id)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

func (s *Server) handleCare(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := guildID(r)
		if !ok {
			http.Error(w, `{"error":"invalid guild id"}`, http.StatusBadRequest)
			return
		}

		var req struct {
			UserID int64 `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
			return
		}
		if req.UserID <= 0 {
			http.Error(w, `{"error":"user_id required"}`, http.StatusBadRequest)
			return
		}

		st, err := s.keeper.Care(id, req.UserID, kind)
		if err == keeper.ErrPetDead {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "pet is dead"})
			return
		}
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(st))
	}
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	id, ok := guildID(r)
	if !ok {
		http.Error(w, `{"error":"invalid guild id"}`, http.StatusBadRequest)
		return
	}

	var req struct {
		UserID int64  `json:"user_id"`
		Name   string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, `{"error":"name required"}`, http.StatusBadRequest)
		return
	}

	st, err := s.keeper.Rename(id, req.UserID, req.Name)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := guildID(r)
	if !ok {
		http.Error(w, `{"error":"invalid guild id"}`, http.StatusBadRequest)
		return
	}

	var req struct {
		BornAt     *string `json:"born_at"`
		Checkpoint *int    `json:"checkpoint"`
		Form       *string `json:"form"`
		Hunger     *int    `json:"hunger"`
		Happiness  *int    `json:"happiness"`
		Hygiene    *int    `json:"hygiene"`
		Sleep      *int    `json:"sleep"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid json"}`, http.StatusBadRequest)
		return
	}

	o := keeper.Override{
		Checkpoint: req.Checkpoint,
		Form:       req.Form,
		Hunger:     req.Hunger,
		Happiness:  req.Happiness,
		Hygiene:    req.Hygiene,
		Sleep:      req.Sleep,
	}
	if req.BornAt != nil {
		t, err := time.Parse(time.RFC3339, *req.BornAt)
		if err != nil {
			http.Error(w, `{"error":"born_at must be RFC3339"}`, http.StatusBadRequest)
			return
		}
		o.BornAt = &t
	}

	st, err := s.keeper.Admin(id, o)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

func (s *Server) handleCaretakers(w http.ResponseWriter, r *http.Request) {
	id, ok := guildID(r)
	if !ok {
		http.Error(w, `{"error":"invalid guild id"}`, http.StatusBadRequest)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	ranks, err := s.keeper.TopCaretakers(id, limit)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	type row struct {
		UserID int64 `json:"user_id"`
		Feeds  int   `json:"feeds"`
		Plays  int   `json:"plays"`
		Total  int   `json:"total"`
	}
	out := make([]row, 0, len(ranks))
	for _, c := range ranks {
		out = append(out, row{UserID: c.UserID, Feeds: c.Feeds, Plays: c.Plays, Total: c.Total})
	}
	writeJSON(w, http.StatusOK, map[string]any{"caretakers": out})
}

func (s *Server) handleDeaths(w http.ResponseWriter, r *http.Request) {
	id, ok := guildID(r)
	if !ok {
		http.Error(w, `{"error":"invalid guild id"}`, http.StatusBadRequest)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	killers, err := s.keeper.TopKillers(id, limit)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}

	type row struct {
		UserID int64 `json:"user_id"`
		Deaths int   `json:"deaths"`
	}
	out := make([]row, 0, len(killers))
	for _, k := range killers {
		out = append(out, row{UserID: k.UserID, Deaths: k.Deaths})
	}
	writeJSON(w, http.StatusOK, map[string]any{"deaths": out})
}
