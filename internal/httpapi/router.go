package httpapi

import "net/http"

// NewMux wires every route. Handler wraps it with the standard middleware.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{Analysis: d.Analysis, Hub: d.Hub}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Reports
	rh := ReportsHandler{Analysis: d.Analysis}
	mux.HandleFunc("/market", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Market,
	}))
	mux.HandleFunc("/locations", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Location,
	}))
	mux.HandleFunc("/companies/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.CompanyByPath, // expects /companies/{name}
	}))

	// LLM analysis
	ah := AnalyzeHandler{Analysis: d.Analysis, Log: d.Log}
	mux.HandleFunc("/analyze/market", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Market,
	}))
	mux.HandleFunc("/analyze/company", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Company,
	}))
	mux.HandleFunc("/analyze/location", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Location,
	}))

	// Collect
	coh := CollectHandler{Status: d.CollectStatus, Refresh: d.Refresh, Log: d.Log}
	mux.HandleFunc("/collect/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: coh.StatusJSON,
	}))
	mux.HandleFunc("/collect/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: coh.Run,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets
	sh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/", methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetByPath,
		http.MethodDelete: sh.DeleteByPath,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	if d.ShutdownToken != "" && d.Shutdown != nil {
		mux.HandleFunc("/shutdown", methodMux(map[string]http.HandlerFunc{
			http.MethodPost: shutdownHandler(d.ShutdownToken, d.Shutdown),
		}))
	}

	return mux
}

func Handler(d Deps) http.Handler {
	return Chain(NewMux(d), RequestID, Recover(d.Log), AccessLog(d.Log), Cors)
}
