// Shadow-compares the Go API against the legacy Next.js endpoints during the
// migration. Runs the same request against both bases and diffs status and
// body; JSON bodies are compared structurally with volatile fields stripped,
// everything else (robots.txt, sitemap XML) byte-wise after trimming.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string   `json:"method"`
	Path     string   `json:"path"`
	Critical bool     `json:"critical"`
	Ignore   []string `json:"ignore,omitempty"`
}

type config struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy Next.js base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "shadow_compare", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		comparisons  []comparison
		breaking     int
		optionalDiff int
	)

	for _, t := range targets {
		comp := compareTarget(client, goBase, legacyBase, t)
		differs := comp.Error != nil || !comp.StatusMatch || !comp.BodyMatch
		if differs {
			if t.Critical {
				breaking++
			} else {
				optionalDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optionalDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return cfg.Targets, nil
}

func compareTarget(client *http.Client, goBase, legacyBase string, tgt target) comparison {
	comp := comparison{Target: tgt}

	goStatus, goBody, goDur, err := performRequest(client, goBase, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("go request failed: %w", err)
		return comp
	}
	legacyStatus, legacyBody, legacyDur, err := performRequest(client, legacyBase, tgt)
	if err != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}

	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur
	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.StatusMatch = goStatus == legacyStatus
	comp.BodyMatch = bodiesEqual(goBody, legacyBody, tgt.Ignore)

	return comp
}

func performRequest(client *http.Client, base string, tgt target) (int, []byte, time.Duration, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return 0, nil, 0, err
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

func bodiesEqual(a, b []byte, ignore []string) bool {
	var aj, bj interface{}
	if json.Unmarshal(a, &aj) != nil || json.Unmarshal(b, &bj) != nil {
		// Non-JSON documents (robots.txt, sitemaps) compare byte-wise.
		return bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b))
	}

	normalize(&aj, ignore)
	normalize(&bj, ignore)
	return reflect.DeepEqual(aj, bj)
}

// normalize strips ignored keys (timestamps, generated ids) and collapses
// whole-number floats so both sides compare structurally.
func normalize(v *interface{}, ignore []string) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for _, key := range ignore {
			delete(val, key)
		}
		for k, v2 := range val {
			normalize(&v2, ignore)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2, ignore)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []comparison) {
	fmt.Println("Shadow Compare Report")
	fmt.Println("======================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Go Status: %d (%s)\n", res.GoStatus, res.DurationGo)
		fmt.Printf("  Legacy Status: %d (%s)\n", res.LegacyStatus, res.DurationLegacy)
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
