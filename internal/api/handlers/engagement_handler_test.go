package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/auth"
	"github.com/CategoryLeaders/productlobby-sub003/internal/api/middleware"
	"github.com/CategoryLeaders/productlobby-sub003/internal/engagement"
	"github.com/CategoryLeaders/productlobby-sub003/internal/models"
	"github.com/gorilla/mux"
)

type fakeCampaignRepo struct {
	campaigns map[string]*models.Campaign
}

func (f *fakeCampaignRepo) Create(c *models.Campaign) error { return nil }

func (f *fakeCampaignRepo) GetByIdentifier(identifier string) (*models.Campaign, error) {
	return f.campaigns[identifier], nil
}

func (f *fakeCampaignRepo) GetByID(id uint) (*models.Campaign, error)  { return nil, nil }
func (f *fakeCampaignRepo) Update(c *models.Campaign) error            { return nil }
func (f *fakeCampaignRepo) List(o, l int) ([]*models.Campaign, error)  { return nil, nil }
func (f *fakeCampaignRepo) ListByCreator(uint) ([]*models.Campaign, error) {
	return nil, nil
}

type fakeActivitySource struct {
	records []engagement.ActivityRecord
}

func (f *fakeActivitySource) ListByCampaign(uint) ([]engagement.ActivityRecord, error) {
	return f.records, nil
}

func (f *fakeActivitySource) PlatformActivityCount() (int64, error) { return int64(len(f.records)), nil }
func (f *fakeActivitySource) CountUsers() (int64, error)            { return 1, nil }

func newEngagementRig() (*mux.Router, *fakeCampaignRepo) {
	repo := &fakeCampaignRepo{campaigns: map[string]*models.Campaign{}}
	repo.campaigns["widget-lobby"] = &models.Campaign{
		BaseModel: models.BaseModel{ID: 7},
		Slug:      "widget-lobby",
		CreatorID: 42,
	}

	source := &fakeActivitySource{records: []engagement.ActivityRecord{
		{
			User:       engagement.UserProfile{UserID: 1, Handle: "ada"},
			Type:       engagement.ActivityLobby,
			OccurredAt: time.Now(),
			CampaignID: 7,
		},
	}}

	handler := NewEngagementHandler(engagement.NewService(source), repo)

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/campaigns/{id}/engagement", handler.Report).Methods("GET")
	return r, repo
}

func doEngagementRequest(t *testing.T, router *mux.Router, path string, claims *auth.Claims) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if claims != nil {
		ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestEngagementReportRequiresAuth(t *testing.T) {
	router, _ := newEngagementRig()

	rec := doEngagementRequest(t, router, "/api/v1/campaigns/widget-lobby/engagement", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["success"] != false {
		t.Errorf("expected success=false, got %v", body["success"])
	}
}

func TestEngagementReportRejectsNonCreator(t *testing.T) {
	router, _ := newEngagementRig()

	claims := &auth.Claims{UserID: 99}
	rec := doEngagementRequest(t, router, "/api/v1/campaigns/widget-lobby/engagement", claims)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestEngagementReportUnknownCampaign(t *testing.T) {
	router, _ := newEngagementRig()

	claims := &auth.Claims{UserID: 42}
	rec := doEngagementRequest(t, router, "/api/v1/campaigns/no-such-campaign/engagement", claims)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEngagementReportForCreator(t *testing.T) {
	router, _ := newEngagementRig()

	claims := &auth.Claims{UserID: 42}
	rec := doEngagementRequest(t, router, "/api/v1/campaigns/widget-lobby/engagement", claims)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Success bool              `json:"success"`
		Data    engagement.Report `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if !body.Success {
		t.Error("expected success=true")
	}
	if body.Data.TotalSupporters != 1 {
		t.Errorf("expected 1 supporter, got %d", body.Data.TotalSupporters)
	}
	if body.Data.AverageEngagementScore != 1.1 {
		t.Errorf("expected average 1.1 for a single lobby, got %v", body.Data.AverageEngagementScore)
	}
	if len(body.Data.TopSupporters) != 1 {
		t.Fatalf("expected 1 top supporter, got %d", len(body.Data.TopSupporters))
	}
	if body.Data.TopSupporters[0].Handle != "ada" {
		t.Errorf("expected handle ada, got %q", body.Data.TopSupporters[0].Handle)
	}
}
