package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"StockWatch/internal/model"
)

func TestClient_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/watchList" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`[{"id":1,"name":"Apple Inc.","symbol":"AAPL","price":190.5,"currentChange":1.2}]`))
	}))
	defer srv.Close()

	entries, err := NewClient(srv.URL + "/").List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != 1 || entries[0].Symbol != "AAPL" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestClient_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		var d model.WatchlistDraft
		if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if d.Symbol != "TSLA" || d.Price != 250 {
			t.Errorf("unexpected draft: %+v", d)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(d.Entry(42))
	}))
	defer srv.Close()

	entry, err := NewClient(srv.URL).Create(context.Background(), model.WatchlistDraft{Name: "Tesla", Symbol: "TSLA", Price: 250})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if entry.ID != 42 {
		t.Errorf("expected id 42, got %d", entry.ID)
	}
}

func TestClient_DeleteAndPatch(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPatch {
			var e model.WatchlistEntry
			json.NewDecoder(r.Body).Decode(&e)
			if e.Price != 3 {
				t.Errorf("expected full entry in patch body, got %+v", e)
			}
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if err := c.Patch(context.Background(), model.WatchlistEntry{ID: 8, Symbol: "X", Price: 3}); err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	if len(got) != 2 || got[0] != "DELETE /watchList/7" || got[1] != "PATCH /watchList/8" {
		t.Errorf("unexpected requests: %v", got)
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).List(context.Background()); err == nil {
		t.Errorf("expected error on 500")
	}
}
