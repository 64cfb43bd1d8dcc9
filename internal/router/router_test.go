package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dogwalks/internal/router"
)

func TestHTTP_EndToEnd_WalkLifecycle(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := registerUser(t, ts.URL, "ana", "owner")
	walker1 := registerUser(t, ts.URL, "bruno", "walker")
	walker2 := registerUser(t, ts.URL, "carla", "walker")

	// 1) Owner registra su perro y crea la solicitud
	dogID := createDog(t, ts.URL, ownerID, map[string]any{"name": "Rocky", "size": "medium"})
	reqID := createWalk(t, ts.URL, ownerID, dogID)

	// 2) La solicitud arranca en open
	assertWalkStatus(t, ts.URL, ownerID, reqID, "open")

	// 3) Primera postulación: la solicitud pasa a pending
	app1 := applyToWalk(t, ts.URL, walker1, reqID)
	assertWalkStatus(t, ts.URL, ownerID, reqID, "pending")

	app2 := applyToWalk(t, ts.URL, walker2, reqID)

	// 4) Postularse dos veces => conflict
	{
		st, _ := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/applications", walker1, "walker", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on duplicate apply, got %d", st)
		}
	}

	// 5) Solo el dueño lista las postulaciones
	{
		st, _ := doReq(t, ts.URL, "GET", "/walks/"+reqID+"/applications", walker1, "walker", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 listing applications as walker, got %d", st)
		}

		st, body := doReq(t, ts.URL, "GET", "/walks/"+reqID+"/applications", ownerID, "owner", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing applications, got %d body=%s", st, string(body))
		}
		var apps []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &apps)
		if len(apps) != 2 {
			t.Fatalf("expected 2 applications, got %d", len(apps))
		}
	}

	// 6) El owner acepta la primera; la segunda queda rechazada
	{
		st, body := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/applications/"+app1+"/accept", ownerID, "owner", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 accept, got %d body=%s", st, string(body))
		}
	}
	assertWalkStatus(t, ts.URL, ownerID, reqID, "accepted")
	{
		_, body := doReq(t, ts.URL, "GET", "/walks/"+reqID+"/applications", ownerID, "owner", nil)
		var apps []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &apps)
		for _, a := range apps {
			want := "rejected"
			if a.ID == app1 {
				want = "accepted"
			}
			if a.Status != want {
				t.Fatalf("application %s: expected %s, got %s", a.ID, want, a.Status)
			}
		}
	}

	// 7) Aceptar la segunda después => conflict
	{
		st, _ := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/applications/"+app2+"/accept", ownerID, "owner", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on late accept, got %d", st)
		}
	}

	// 8) Postularse con la solicitud ya accepted => conflict (estado inválido)
	{
		st, _ := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/applications", walker2, "walker", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 applying to accepted request, got %d", st)
		}
	}

	// 9) Calificar antes de completar => conflict
	{
		st, _ := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/rating", ownerID, "owner", map[string]any{"rating": 5})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 rating before completion, got %d", st)
		}
	}

	// 10) Completar y calificar
	{
		st, body := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/complete", ownerID, "owner", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
		}
	}
	assertWalkStatus(t, ts.URL, ownerID, reqID, "completed")
	{
		st, body := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/rating", ownerID, "owner", map[string]any{
			"rating":  5,
			"comment": "impecable",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 rating, got %d body=%s", st, string(body))
		}
		var resp struct {
			WalkerID string `json:"walker_id"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.WalkerID != walker1 {
			t.Fatalf("expected rating attributed to %s, got %s", walker1, resp.WalkerID)
		}
	}

	// 11) Segunda calificación del mismo paseo => conflict
	{
		st, _ := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/rating", ownerID, "owner", map[string]any{"rating": 3})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on second rating, got %d", st)
		}
	}

	// 12) Resumen del ganador: 1 calificación, promedio 5, 1 paseo completado
	{
		sum := getSummary(t, ts.URL, ownerID, walker1)
		if sum.TotalRatings != 1 || sum.CompletedWalks != 1 {
			t.Fatalf("walker1 summary: got %+v", sum)
		}
		if sum.AverageRating == nil || *sum.AverageRating != 5.0 {
			t.Fatalf("walker1 summary: expected average 5.0, got %v", sum.AverageRating)
		}
	}

	// 13) El perdedor sigue sin historial y su promedio es null
	{
		sum := getSummary(t, ts.URL, ownerID, walker2)
		if sum.TotalRatings != 0 || sum.CompletedWalks != 0 {
			t.Fatalf("walker2 summary: got %+v", sum)
		}
		if sum.AverageRating != nil {
			t.Fatalf("walker2 summary: expected null average, got %v", *sum.AverageRating)
		}
	}

	// 14) Listado global: ambos walkers, nunca el owner
	{
		st, body := doReq(t, ts.URL, "GET", "/walkers/summary", ownerID, "owner", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 listing summaries, got %d body=%s", st, string(body))
		}
		var sums []walkerSummary
		_ = json.Unmarshal(body, &sums)
		if len(sums) != 2 {
			t.Fatalf("expected 2 walker summaries, got %d", len(sums))
		}
	}
}

func TestHTTP_Cancel_ClosesRequestForWalkers(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := registerUser(t, ts.URL, "diego", "owner")
	walkerID := registerUser(t, ts.URL, "elena", "walker")

	dogID := createDog(t, ts.URL, ownerID, map[string]any{"name": "Luna", "size": "small"})
	reqID := createWalk(t, ts.URL, ownerID, dogID)

	applicationID := applyToWalk(t, ts.URL, walkerID, reqID)

	// Solo el dueño puede cancelar
	{
		st, _ := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/cancel", walkerID, "walker", nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 cancel by walker, got %d", st)
		}
	}

	{
		st, body := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/cancel", ownerID, "owner", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 cancel, got %d body=%s", st, string(body))
		}
	}
	assertWalkStatus(t, ts.URL, ownerID, reqID, "cancelled")

	// La postulación pendiente quedó rechazada en el mismo paso
	{
		_, body := doReq(t, ts.URL, "GET", "/walks/"+reqID+"/applications", ownerID, "owner", nil)
		var apps []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &apps)
		if len(apps) != 1 || apps[0].ID != applicationID || apps[0].Status != "rejected" {
			t.Fatalf("expected rejected application after cancel, got %+v", apps)
		}
	}

	// Postularse a una solicitud cancelada => conflict
	{
		st, _ := doReq(t, ts.URL, "POST", "/walks/"+reqID+"/applications", walkerID, "walker", nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 applying to cancelled request, got %d", st)
		}
	}

	// Y el feed del walker ya no la muestra
	{
		st, body := doReq(t, ts.URL, "GET", "/walks", walkerID, "walker", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 feed, got %d body=%s", st, string(body))
		}
		var items []struct {
			RequestID string `json:"request_id"`
		}
		_ = json.Unmarshal(body, &items)
		for _, it := range items {
			if it.RequestID == reqID {
				t.Fatalf("cancelled request still in feed")
			}
		}
	}
}

func TestHTTP_Feed_OwnerSeesOnlyTheirOwn(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	owner1 := registerUser(t, ts.URL, "fede", "owner")
	owner2 := registerUser(t, ts.URL, "gala", "owner")
	walkerID := registerUser(t, ts.URL, "hugo", "walker")

	dog1 := createDog(t, ts.URL, owner1, map[string]any{"name": "Max", "size": "large"})
	dog2 := createDog(t, ts.URL, owner2, map[string]any{"name": "Nina", "size": "small"})
	createWalk(t, ts.URL, owner1, dog1)
	createWalk(t, ts.URL, owner2, dog2)

	feedLen := func(userID, role string) int {
		st, body := doReq(t, ts.URL, "GET", "/walks", userID, role, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 feed, got %d body=%s", st, string(body))
		}
		var items []json.RawMessage
		_ = json.Unmarshal(body, &items)
		return len(items)
	}

	if n := feedLen(owner1, "owner"); n != 1 {
		t.Fatalf("owner1 feed: expected 1 item, got %d", n)
	}
	if n := feedLen(owner2, "owner"); n != 1 {
		t.Fatalf("owner2 feed: expected 1 item, got %d", n)
	}
	if n := feedLen(walkerID, "walker"); n != 2 {
		t.Fatalf("walker feed: expected 2 items, got %d", n)
	}
}

type walkerSummary struct {
	WalkerID       string   `json:"walker_id"`
	TotalRatings   int      `json:"total_ratings"`
	AverageRating  *float64 `json:"average_rating"`
	CompletedWalks int      `json:"completed_walks"`
}

func registerUser(t *testing.T, baseURL, username, role string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/users", "", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"role":     role,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register user, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("register user: missing id body=%s", string(body))
	}
	return resp.ID
}

func createDog(t *testing.T, baseURL, ownerID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/dogs", ownerID, "owner", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dog, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create dog: missing id body=%s", string(body))
	}
	return resp.ID
}

func createWalk(t *testing.T, baseURL, ownerID, dogID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/walks", ownerID, "owner", map[string]any{
		"dog_id":           dogID,
		"requested_time":   time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"duration_minutes": 45,
		"location":         "Parque Centenario",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create walk, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create walk: missing id body=%s", string(body))
	}
	return resp.ID
}

func applyToWalk(t *testing.T, baseURL, walkerID, requestID string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/walks/"+requestID+"/applications", walkerID, "walker", nil)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 apply, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("apply: missing id body=%s", string(body))
	}
	return resp.ID
}

func getSummary(t *testing.T, baseURL, asUserID, walkerID string) walkerSummary {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/walkers/"+walkerID+"/summary", asUserID, "owner", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 summary, got %d body=%s", st, string(body))
	}

	var sum walkerSummary
	_ = json.Unmarshal(body, &sum)
	return sum
}

func assertWalkStatus(t *testing.T, baseURL, userID, requestID, want string) {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/walks/"+requestID, userID, "owner", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get walk, got %d body=%s", st, string(body))
	}

	var resp struct {
		Status string `json:"status"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Status != want {
		t.Fatalf("walk %s: expected status %s, got %s", requestID, want, resp.Status)
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID, debugRole string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
		req.Header.Set("X-Debug-User-Role", debugRole)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
