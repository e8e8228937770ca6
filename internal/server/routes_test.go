package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mascotd/internal/keeper"
	"mascotd/internal/pet"
	"mascotd/internal/store"
)

func testServer(t *testing.T) (*Server, *store.DB) {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	k := keeper.New(db, pet.DefaultRules(), nil)
	return New(k, db, "test"), db
}

func TestHealth(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != "ok" || resp["version"] != "test" {
		t.Errorf("health = %v", resp)
	}
	if resp["db"] != true {
		t.Errorf("db = %v, want true", resp["db"])
	}
}

func TestPetStatusCreates(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest("GET", "/api/guilds/42/pet", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["form"] != "egg" {
		t.Errorf("form = %v, want egg", resp["form"])
	}
	if resp["name"] != pet.DefaultName {
		t.Errorf("name = %v", resp["name"])
	}
	if resp["dead"] != false {
		t.Errorf("dead = %v", resp["dead"])
	}
}

func TestPetStatusBadGuildID(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest("GET", "/api/guilds/nope/pet", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestFeed(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"user_id":1001}`
	req := httptest.NewRequest("POST", "/api/guilds/42/pet/feed", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["hunger"] != float64(pet.MaxVital) {
		t.Errorf("hunger = %v", resp["hunger"])
	}
	if resp["feeds_today"] != float64(1) {
		t.Errorf("feeds_today = %v", resp["feeds_today"])
	}
}

func TestFeedMissingUser(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest("POST", "/api/guilds/42/pet/feed", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCareOnDeadPetConflicts(t *testing.T) {
	srv, db := testServer(t)

	now := time.Now().UTC()
	p := pet.New(42, now)
	until := now.Add(30 * time.Minute)
	p.DeadUntil = &until
	if err := db.SavePet(p); err != nil {
		t.Fatalf("SavePet: %v", err)
	}

	body := `{"user_id":1001}`
	req := httptest.NewRequest("POST", "/api/guilds/42/pet/play", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusConflict, w.Body.String())
	}
}

func TestRenameRoute(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"user_id":1001,"name":"Mochi"}`
	req := httptest.NewRequest("POST", "/api/guilds/42/pet/name", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["name"] != "Mochi" {
		t.Errorf("name = %v", resp["name"])
	}
}

func TestAdminRoute(t *testing.T) {
	srv, _ := testServer(t)

	// Create, then force a checkpoint and drain hunger.
	req := httptest.NewRequest("GET", "/api/guilds/42/pet", nil)
	srv.ServeHTTP(httptest.NewRecorder(), req)

	body := `{"checkpoint":1,"form":"day1","hunger":-60}`
	req = httptest.NewRequest("POST", "/api/guilds/42/pet/admin", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["form"] != "day1" {
		t.Errorf("form = %v", resp["form"])
	}
	if resp["hunger"] != float64(pet.MaxVital-60) {
		t.Errorf("hunger = %v", resp["hunger"])
	}
}

func TestAdminBadBornAt(t *testing.T) {
	srv, _ := testServer(t)

	body := `{"born_at":"yesterday"}`
	req := httptest.NewRequest("POST", "/api/guilds/42/pet/admin", strings.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCaretakersRoute(t *testing.T) {
	srv, db := testServer(t)

	db.RecordCareAction(42, 1001, store.ActionFeed)
	db.RecordCareAction(42, 1001, store.ActionPlay)
	db.RecordCareAction(42, 1002, store.ActionFeed)

	req := httptest.NewRequest("GET", "/api/guilds/42/caretakers?limit=5", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Caretakers []struct {
			UserID int64 `json:"user_id"`
			Total  int   `json:"total"`
		} `json:"caretakers"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Caretakers) != 2 {
		t.Fatalf("caretakers = %+v", resp.Caretakers)
	}
	if resp.Caretakers[0].UserID != 1001 || resp.Caretakers[0].Total != 2 {
		t.Errorf("top caretaker = %+v", resp.Caretakers[0])
	}
}

func TestDeathsRoute(t *testing.T) {
	srv, db := testServer(t)

	db.RecordDeath(42, 1001)
	db.RecordDeath(42, 1001)

	req := httptest.NewRequest("GET", "/api/guilds/42/deaths", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Deaths []struct {
			UserID int64 `json:"user_id"`
			Deaths int   `json:"deaths"`
		} `json:"deaths"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Deaths) != 1 || resp.Deaths[0].Deaths != 2 {
		t.Errorf("deaths = %+v", resp.Deaths)
	}
}
