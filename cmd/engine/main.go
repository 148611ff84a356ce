package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/analytics"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/config"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/engine"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/policy"
	"github.com/danielpatrickdp/behavior-fusion/go-engine/internal/telemetry"
)

// #region input

// inputLine is one JSONL request on stdin: a session id plus the flattened
// telemetry snapshot fields.
type inputLine struct {
	SessionID string `json:"session_id"`
	telemetry.Snapshot
}

// outputLine is the JSONL response: the evaluation plus the intervention plan.
type outputLine struct {
	SessionID    string `json:"session_id"`
	EvaluationID string `json:"evaluation_id,omitempty"`
	engine.EngagementResult
	Intervene  bool   `json:"intervene"`
	Tone       string `json:"tone,omitempty"`
	PromptHint string `json:"prompt_hint,omitempty"`
}

// #endregion input

// #region main

func main() {
	dbPath := envOr("FUSION_DB", "engagement.db")
	calPath := envOr("FUSION_CALIBRATION", "calibration.toml")

	cfg, err := config.Load(calPath)
	if err != nil {
		log.Fatalf("[ENGINE] calibration: %v", err)
	}

	store, err := analytics.NewStore(dbPath)
	if err != nil {
		log.Fatalf("[ENGINE] failed to open store: %v", err)
	}
	defer store.Close()

	var mu sync.Mutex
	eng := engine.New(cfg)

	watcher, err := config.NewWatcher(calPath,
		func(next engine.Config) {
			mu.Lock()
			eng = engine.New(next)
			mu.Unlock()
			log.Printf("[ENGINE] calibration reloaded from %s", calPath)
		},
		func(err error) {
			log.Printf("[ENGINE] calibration reload rejected: %v", err)
		},
	)
	if err != nil {
		log.Printf("[ENGINE] calibration watch disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	log.Printf("[ENGINE] ready db=%s calibration=%s", dbPath, calPath)

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	out := json.NewEncoder(os.Stdout)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var in inputLine
		if err := json.Unmarshal([]byte(line), &in); err != nil {
			log.Printf("[ENGINE] bad input: %v", err)
			continue
		}
		if in.SessionID == "" {
			log.Printf("[ENGINE] bad input: missing session_id")
			continue
		}

		mu.Lock()
		current := eng
		mu.Unlock()

		result, err := current.Evaluate(in.Snapshot)
		if err != nil {
			log.Printf("[ENGINE] session=%s rejected: %v", in.SessionID, err)
			continue
		}

		plan := policy.Decide(result.CognitiveState, result.IterationState)
		resp := outputLine{
			SessionID:        in.SessionID,
			EngagementResult: result,
			Intervene:        plan.Intervene,
		}
		if plan.Intervene {
			resp.Tone = string(plan.Tone)
			resp.PromptHint = plan.PromptHint
			if concern := policy.ProvenanceConcern(result.ProvenanceState); concern != "" {
				resp.PromptHint = fmt.Sprintf("%s %s", resp.PromptHint, concern)
			}
		}

		rec, err := store.RecordEvaluation(in.SessionID, in.Snapshot, result)
		if err != nil {
			log.Printf("[ENGINE] persist error: %v", err)
		} else {
			resp.EvaluationID = rec.EvaluationID
		}

		if err := out.Encode(resp); err != nil {
			log.Printf("[ENGINE] encode error: %v", err)
		}

		log.Printf("[ENGINE] session=%s score=%.4f label=%q provenance=%s cognitive=%s iteration=%s flags=%d",
			in.SessionID, result.CESScore, result.CESClassification,
			result.ProvenanceState, result.CognitiveState, result.IterationState, len(result.Flags))
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("[ENGINE] stdin: %v", err)
	}
}

// #endregion main

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
// #endregion helpers
