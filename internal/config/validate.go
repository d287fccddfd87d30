package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" || seen[x] {
				continue
			}
			seen[x] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Collect.SnapshotIDs = trimList(out.Collect.SnapshotIDs)
	out.Collect.APIURL = strings.TrimRight(strings.TrimSpace(out.Collect.APIURL), "/")
	out.Collect.Format = strings.ToLower(strings.TrimSpace(out.Collect.Format))
	out.Data.Path = strings.TrimSpace(out.Data.Path)
	out.App.Env = strings.ToLower(strings.TrimSpace(out.App.Env))
	out.LLM.Model = strings.TrimSpace(out.LLM.Model)

	// ---- app ----
	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Data.Path == "" {
		res.addErr("data.path is required")
	}

	// ---- collect ----
	if out.Collect.APIURL == "" {
		res.addErr("collect.api_url is required")
	} else if u, err := url.Parse(out.Collect.APIURL); err != nil || u.Scheme == "" || u.Host == "" {
		res.addErr("collect.api_url is not an absolute URL: %q", out.Collect.APIURL)
	}
	if out.Collect.Format != "" && out.Collect.Format != "json" {
		res.addErr("collect.format must be json, got %q", out.Collect.Format)
	}
	if len(out.Collect.SnapshotIDs) == 0 {
		res.addWarn("collect.snapshot_ids is empty; collect will have nothing to download.")
	}
	if out.Collect.ReqPerSec <= 0 {
		res.addErr("collect.req_per_sec must be > 0")
	}
	if out.Collect.Burst <= 0 {
		res.addErr("collect.burst must be > 0")
	}
	if out.Collect.TimeoutSeconds <= 0 {
		res.addErr("collect.timeout_seconds must be > 0")
	}
	if out.Collect.RefreshMinutes < 0 {
		res.addErr("collect.refresh_minutes must be >= 0")
	} else if out.Collect.RefreshMinutes > 0 && out.Collect.RefreshMinutes < 5 {
		res.addWarn("collect.refresh_minutes is very low (%d) and may exhaust the dataset quota.", out.Collect.RefreshMinutes)
	}

	// ---- llm ----
	if out.LLM.Model == "" {
		res.addWarn("llm.model is empty; set it here or via MODEL_NAME.")
	}
	if out.LLM.Temperature < 0 || out.LLM.Temperature > 2 {
		res.addErr("llm.temperature must be 0..2")
	}
	if out.LLM.TopP < 0 || out.LLM.TopP > 1 {
		res.addErr("llm.top_p must be 0..1")
	}
	if out.LLM.TopK < 0 {
		res.addErr("llm.top_k must be >= 0")
	}
	if out.LLM.MaxOutputTokens <= 0 {
		res.addErr("llm.max_output_tokens must be > 0")
	}

	return out, res
}
