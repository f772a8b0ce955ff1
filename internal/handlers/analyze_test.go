package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutrigo/internal/ai"
	"nutrigo/internal/nutrition"
	"nutrigo/internal/vision"
)

type fakeAnalyzer struct {
	calls     int
	lastImage []byte
	result    ai.MealImageResult
	err       error
}

func (f *fakeAnalyzer) AnalyzeMealImage(_ context.Context, img []byte) (ai.MealImageResult, error) {
	f.calls++
	f.lastImage = img
	return f.result, f.err
}

func testJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

type analyzeTestResponse struct {
	Foods       []vision.AnalyzedFood `json:"foods"`
	Suggestions []string              `json:"suggestions"`
	Cached      bool                  `json:"cached"`
}

func TestAnalyzeImageWithoutAnalyzer(t *testing.T) {
	withHandlerDeps(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(testJPEG(t)))
	w := httptest.NewRecorder()
	AnalyzeImage(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503 without analyzer, got %d", w.Code)
	}
}

func TestAnalyzeImageRejectsUndecodableBody(t *testing.T) {
	fa := &fakeAnalyzer{}
	withHandlerDeps(t, nil, fa, vision.NewAnalysisCache(time.Hour, 10))

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader([]byte("definitely not an image")))
	w := httptest.NewRecorder()
	AnalyzeImage(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for garbage body, got %d", w.Code)
	}
	if fa.calls != 0 {
		t.Fatalf("expected no analyzer call for an invalid image, got %d", fa.calls)
	}
}

func TestAnalyzeImageMethodNotAllowed(t *testing.T) {
	withHandlerDeps(t, nil, &fakeAnalyzer{}, vision.NewAnalysisCache(time.Hour, 10))

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	w := httptest.NewRecorder()
	AnalyzeImage(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", w.Code)
	}
}

func TestAnalyzeImageAnnotatesDetections(t *testing.T) {
	fa := &fakeAnalyzer{
		result: ai.MealImageResult{
			Foods: []ai.DetectedFood{
				{
					Name:              "Grilled Paneer",
					Calories:          265,
					Protein:           18,
					Carbs:             4,
					Fat:               20,
					Category:          nutrition.CategoryDairy,
					Confidence:        85,
					EstimatedQuantity: "1 medium portion (150g)",
				},
			},
			Suggestions: []string{"Add a side of vegetables"},
		},
	}
	withHandlerDeps(t, nil, fa, vision.NewAnalysisCache(time.Hour, 10))

	payload := testJPEG(t)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	AnalyzeImage(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if fa.calls != 1 {
		t.Fatalf("expected exactly one analyzer call, got %d", fa.calls)
	}
	if len(fa.lastImage) == 0 {
		t.Fatal("expected the analyzer to receive image bytes")
	}

	var resp analyzeTestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Cached {
		t.Fatal("expected first analysis to be uncached")
	}
	if len(resp.Foods) != 1 {
		t.Fatalf("expected one analyzed food, got %d", len(resp.Foods))
	}

	food := resp.Foods[0].Food
	if food.Source != nutrition.SourceGenerated {
		t.Fatalf("expected generated source, got %q", food.Source)
	}
	if want := nutrition.GeneratedID(vision.Fingerprint(payload), 0); food.ID != want {
		t.Fatalf("expected deterministic id %d, got %d", want, food.ID)
	}
	if food.AccuracyTier == "" {
		t.Fatal("expected an accuracy tier to be assigned")
	}
	if food.DefaultUnit != "1 medium portion (150g)" {
		t.Fatalf("expected estimated quantity as default unit, got %q", food.DefaultUnit)
	}
	if resp.Foods[0].Confidence != 85 {
		t.Fatalf("expected confidence 85, got %v", resp.Foods[0].Confidence)
	}
	if len(resp.Suggestions) != 1 {
		t.Fatalf("expected suggestions to pass through, got %v", resp.Suggestions)
	}
}

func TestAnalyzeImageServesRepeatFromCache(t *testing.T) {
	fa := &fakeAnalyzer{
		result: ai.MealImageResult{
			Foods: []ai.DetectedFood{{Name: "Dal Tadka", Calories: 120, Category: nutrition.CategoryLegumes}},
		},
	}
	withHandlerDeps(t, nil, fa, vision.NewAnalysisCache(time.Hour, 10))

	payload := testJPEG(t)
	for i, wantCached := range []bool{false, true} {
		req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(payload))
		w := httptest.NewRecorder()
		AnalyzeImage(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, w.Code)
		}
		var resp analyzeTestResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("request %d: failed to decode response: %v", i, err)
		}
		if resp.Cached != wantCached {
			t.Fatalf("request %d: expected cached=%v, got %v", i, wantCached, resp.Cached)
		}
	}

	if fa.calls != 1 {
		t.Fatalf("expected the repeat image to skip the analyzer, got %d calls", fa.calls)
	}
}

func TestAnalyzeImageAnalyzerFailure(t *testing.T) {
	fa := &fakeAnalyzer{err: errors.New("upstream unavailable")}
	cache := vision.NewAnalysisCache(time.Hour, 10)
	withHandlerDeps(t, nil, fa, cache)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(testJPEG(t)))
	w := httptest.NewRecorder()
	AnalyzeImage(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502 on analyzer failure, got %d", w.Code)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected nothing cached after a failure, got %d entries", cache.Len())
	}
}

func TestAnalyzeImageAcceptsMultipartUpload(t *testing.T) {
	fa := &fakeAnalyzer{
		result: ai.MealImageResult{
			Foods: []ai.DetectedFood{{Name: "Masala Omelette", Calories: 154, Category: nutrition.CategoryProtein}},
		},
	}
	withHandlerDeps(t, nil, fa, vision.NewAnalysisCache(time.Hour, 10))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "meal.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(testJPEG(t)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	AnalyzeImage(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 for multipart upload, got %d", w.Code)
	}

	var resp analyzeTestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Foods) != 1 || resp.Foods[0].Food.Name != "Masala Omelette" {
		t.Fatalf("unexpected analysis payload: %+v", resp.Foods)
	}
}
