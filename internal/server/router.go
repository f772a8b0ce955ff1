package server

import (
	"context"
	"net/http"

	"nutrigo/internal/handlers"
	applog "nutrigo/internal/log"
)

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/api/foods/search", handlers.SearchFoods)
	applog.Debug(context.Background(), "route registered", "path", "/api/foods/search")
	mux.HandleFunc("/api/foods/portion", handlers.GetPortion)
	applog.Debug(context.Background(), "route registered", "path", "/api/foods/portion")
	mux.HandleFunc("/api/analyze", handlers.AnalyzeImage)
	applog.Debug(context.Background(), "route registered", "path", "/api/analyze")
	return mux
}
