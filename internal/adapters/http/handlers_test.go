package httpadapter

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"svw.info/sudoku-board/internal/domain"
	"svw.info/sudoku-board/internal/render"
	"svw.info/sudoku-board/internal/usecase"
	"svw.info/sudoku-board/internal/validator"
)

const startBoard = `{"board":[
	[5,3,0,0,7,0,0,0,0],
	[6,0,0,1,9,5,0,0,0],
	[0,9,8,0,0,0,0,6,0],
	[8,0,0,0,6,0,0,0,3],
	[4,0,0,8,0,3,0,0,1],
	[7,0,0,0,2,0,0,0,6],
	[0,6,0,0,0,0,2,8,0],
	[0,0,0,4,1,9,0,0,5],
	[0,0,0,0,8,0,0,7,9]]}`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	uc := usecase.NewService(nil, validator.New(), zerolog.Nop())
	h := New(uc, render.New(), zerolog.Nop())
	e := gin.New()
	h.Register(e)
	return e
}

func do(t *testing.T, e *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, e *gin.Engine) domain.Session {
	t.Helper()
	w := do(t, e, http.MethodPost, "/api/v1/sessions", startBoard)
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: status %d body %s", w.Code, w.Body.String())
	}
	var sn domain.Session
	if err := json.Unmarshal(w.Body.Bytes(), &sn); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return sn
}

func TestCreateAndGetSession(t *testing.T) {
	e := newTestRouter(t)
	sn := createSession(t, e)

	w := do(t, e, http.MethodGet, "/api/v1/sessions/"+sn.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get session: status %d", w.Code)
	}
	var got domain.Session
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Grid[0][0] != 5 || got.Editable[0][0] {
		t.Fatalf("session state wrong: %+v", got.Grid[0])
	}

	if w := do(t, e, http.MethodGet, "/api/v1/sessions/unknown", ""); w.Code != http.StatusNotFound {
		t.Fatalf("unknown session: status %d", w.Code)
	}
}

func TestCreateRejectsMalformedBoards(t *testing.T) {
	e := newTestRouter(t)
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json"},
		{"missing board", `{}`},
		{"short grid", `{"board":[[1,2,3]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, e, http.MethodPost, "/api/v1/sessions", tt.body); w.Code != http.StatusBadRequest {
				t.Fatalf("status %d, want 400", w.Code)
			}
		})
	}
}

func TestPlayStatusMapping(t *testing.T) {
	e := newTestRouter(t)
	sn := createSession(t, e)
	path := "/api/v1/sessions/" + sn.ID + "/moves"

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"legal move", `{"row":0,"col":2,"value":4}`, http.StatusOK, ""},
		{"conflict", `{"row":0,"col":3,"value":5}`, http.StatusConflict, "conflict"},
		{"fixed cell", `{"row":0,"col":0,"value":1}`, http.StatusUnprocessableEntity, "fixed_cell"},
		{"value range", `{"row":0,"col":5,"value":12}`, http.StatusUnprocessableEntity, "value_range"},
		{"out of bounds", `{"row":9,"col":0,"value":1}`, http.StatusBadRequest, "out_of_bounds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, e, http.MethodPost, path, tt.body)
			if w.Code != tt.status {
				t.Fatalf("status %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
			if tt.code == "" {
				return
			}
			var resp struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Error != tt.code {
				t.Fatalf("error code %q, want %q", resp.Error, tt.code)
			}
			if resp.Message == "" {
				t.Fatal("error response has no message")
			}
		})
	}
}

func TestRenderEndpoint(t *testing.T) {
	e := newTestRouter(t)
	sn := createSession(t, e)

	w := do(t, e, http.MethodGet, "/api/v1/sessions/"+sn.ID+"/render", "")
	if w.Code != http.StatusOK {
		t.Fatalf("render: status %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("content type %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "| 5 | 3 | 0 |") {
		t.Fatalf("unexpected render output: %q", w.Body.String())
	}
}

func TestValidateEndpoint(t *testing.T) {
	e := newTestRouter(t)
	body := `{"board":[
		[1,0,0,0,0,0,0,0,1],
		[0,0,0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0,0,0],
		[0,0,0,0,0,0,0,0,0]]}`
	w := do(t, e, http.MethodPost, "/api/v1/validate", body)
	if w.Code != http.StatusOK {
		t.Fatalf("validate: status %d", w.Code)
	}
	var resp struct {
		OK        bool               `json:"ok"`
		Conflicts []domain.CellCoord `json:"conflicts"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.OK || len(resp.Conflicts) != 1 {
		t.Fatalf("resp = %+v, want one conflict", resp)
	}
}

func TestHealth(t *testing.T) {
	e := newTestRouter(t)
	if w := do(t, e, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("health: status %d", w.Code)
	}
}
