package httpapi

import (
	"bytes"
	"encoding/csv"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"efazi/internal/rod"
)

func newTestServer() *Server {
	return NewServer(rod.NewPipeline(rod.DefaultThresholds()), 0)
}

func multipartBody(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, content := range files {
		fw, err := w.CreateFormFile(field, field+".csv")
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}
	return &body, w.FormDataContentType()
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer()

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "Efazi Robot is online and healthy!" {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestBuildReportEndToEnd(t *testing.T) {
	s := newTestServer()

	body, contentType := multipartBody(t, map[string]string{
		"base":    "order_id,captain\nH1,Ali\n",
		"source1": "order_id,order_date,order_process,delivery_ended_at\nH1,2024-03-01 09:00:00,2024-03-01 09:05:00,2024-03-01 09:10:00\n",
		"source2": "order_id,shipped_qty,store_name\nH1,2,North\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/rod/report", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected 200, got %d: %s", resp.StatusCode, raw)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "Careem_ROD_Final.csv") {
		t.Errorf("Unexpected disposition: %q", cd)
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		t.Fatalf("Response is not CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 row, got %d", len(rows))
	}
	if rows[1][0] != "H1" || rows[1][5] != "On time" {
		t.Errorf("Unexpected report row: %v", rows[1])
	}
}

func TestBuildReportRejectsMissingUpload(t *testing.T) {
	s := newTestServer()

	body, contentType := multipartBody(t, map[string]string{
		"base": "order_id\nH1\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/rod/report", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestBuildReportRejectsEmptySource(t *testing.T) {
	s := newTestServer()

	body, contentType := multipartBody(t, map[string]string{
		"base":    "order_id\n", // header only
		"source1": "order_id\nH1\n",
		"source2": "order_id\nH1\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/rod/report", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestBuildReportRejectsUnknownFormat(t *testing.T) {
	s := newTestServer()

	body, contentType := multipartBody(t, map[string]string{
		"base":    "order_id\nH1\n",
		"source1": "order_id\nH1\n",
		"source2": "order_id\nH1\n",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/rod/report?format=pdf", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", resp.StatusCode)
	}
}
