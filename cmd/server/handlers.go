package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/groentetuin/internal/harvest"
	"github.com/Simplici0/groentetuin/internal/report"
	"github.com/Simplici0/groentetuin/internal/store"
)

const maxBodyBytes = 1 << 20

func (s *server) handleCropsList(w http.ResponseWriter, r *http.Request) {
	crops, err := s.store.ListCrops()
	if err != nil {
		log.Printf("list crops: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load crops")
		return
	}

	payload := make([]cropPayload, 0, len(crops))
	for _, crop := range crops {
		payload = append(payload, newCropPayload(crop))
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *server) handleCropGet(w http.ResponseWriter, r *http.Request) {
	crop, ok := s.loadCrop(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCropPayload(crop))
}

func (s *server) handleCropPut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var payload cropPayload
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Name != "" && payload.Name != name {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("body name %q does not match %q", payload.Name, name))
		return
	}
	payload.Name = name

	crop := payload.crop()
	if err := crop.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.UpsertCrop(crop)
	if err != nil {
		log.Printf("upsert crop %q: %v", name, err)
		writeError(w, http.StatusInternalServerError, "failed to save crop")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, newCropPayload(crop))
}

func (s *server) handleCropYield(w http.ResponseWriter, r *http.Request) {
	calc, ok := s.calculatorFor(w, r)
	if !ok {
		return
	}
	crop, ok := s.loadCrop(w, chi.URLParam(r, "name"))
	if !ok {
		return
	}

	env := environmentFromQuery(r.URL.Query())
	value, err := calc.YieldForPlant(crop, env)
	s.writeCalculation(w, "plant_yield", calc.Mode(), env, value, err)
}

func (s *server) handleFarmCreate(w http.ResponseWriter, r *http.Request) {
	var req createFarmRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	batches := make([]store.BatchRef, 0, len(req.Batches))
	for i, batch := range req.Batches {
		if batch.NumCrops < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("batches[%d].numCrops must be 0 or greater", i))
			return
		}
		batches = append(batches, store.BatchRef{Crop: batch.Crop, NumCrops: batch.NumCrops})
	}

	id, err := s.store.CreateFarm(req.Name, batches)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Printf("create farm %q: %v", req.Name, err)
		writeError(w, http.StatusInternalServerError, "failed to create farm")
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/farms/%d", id))
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *server) handleFarmsList(w http.ResponseWriter, r *http.Request) {
	farms, err := s.store.ListFarms()
	if err != nil {
		log.Printf("list farms: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load farms")
		return
	}
	writeJSON(w, http.StatusOK, farms)
}

func (s *server) handleFarmGet(w http.ResponseWriter, r *http.Request) {
	summary, farm, ok := s.loadFarm(w, r)
	if !ok {
		return
	}

	payload := farmPayload{FarmSummary: summary, Batches: make([]batchRefPayload, 0, len(farm.Crops))}
	for _, batch := range farm.Crops {
		payload.Batches = append(payload.Batches, batchRefPayload{Crop: batch.Crop.Name, NumCrops: batch.NumCrops})
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *server) handleFarmYield(w http.ResponseWriter, r *http.Request) {
	calc, ok := s.calculatorFor(w, r)
	if !ok {
		return
	}
	_, farm, ok := s.loadFarm(w, r)
	if !ok {
		return
	}

	value, err := calc.TotalYield(farm)
	s.writeCalculation(w, "total_yield", calc.Mode(), nil, value, err)
}

func (s *server) handleFarmProfit(w http.ResponseWriter, r *http.Request) {
	calc, ok := s.calculatorFor(w, r)
	if !ok {
		return
	}
	_, farm, ok := s.loadFarm(w, r)
	if !ok {
		return
	}

	env := environmentFromQuery(r.URL.Query())
	value, err := calc.TotalProfit(farm, env)
	s.writeCalculation(w, "total_profit", calc.Mode(), env, value, err)
}

func (s *server) handleFarmReport(w http.ResponseWriter, r *http.Request) {
	calc, ok := s.calculatorFor(w, r)
	if !ok {
		return
	}
	summary, farm, ok := s.loadFarm(w, r)
	if !ok {
		return
	}

	env := environmentFromQuery(r.URL.Query())
	result, err := report.Calculate(calc, farm, env)
	s.metrics.observe("report", calc.Mode(), result.Totals.Profit, err)
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := report.WriteText(w, summary.Name, result, s.currency); err != nil {
			log.Printf("warning: write report text: %v", err)
		}
		return
	}

	payload := newReportPayload(calc.Mode(), result)
	payload.Farm = &summary
	writeJSON(w, http.StatusOK, payload)
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	farm := harvest.Farm{Crops: make([]harvest.Batch, 0, len(req.Farm.Crops))}
	for i, batch := range req.Farm.Crops {
		crop := batch.Crop.crop()
		if crop.Name == "" {
			// Names are labels here; stored crops still require one.
			crop.Name = fmt.Sprintf("crops[%d]", i)
		}
		if err := crop.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("farm.crops[%d]: %v", i, err))
			return
		}
		if batch.NumCrops < 0 {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("farm.crops[%d].numCrops must be 0 or greater", i))
			return
		}
		farm.Crops = append(farm.Crops, harvest.Batch{Crop: crop, NumCrops: batch.NumCrops})
	}

	mode := s.mode
	if req.Strict != nil {
		mode = modeFor(*req.Strict)
	}
	calc := harvest.NewCalculator(mode)

	env := environmentFromMap(req.Environment)
	result, err := report.Calculate(calc, farm, env)
	s.metrics.observe("calculate", mode, result.Totals.Profit, err)
	if err != nil {
		writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newReportPayload(mode, result))
}

func (s *server) loadCrop(w http.ResponseWriter, name string) (harvest.Crop, bool) {
	crop, err := s.store.GetCrop(name)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return harvest.Crop{}, false
	}
	if err != nil {
		log.Printf("get crop %q: %v", name, err)
		writeError(w, http.StatusInternalServerError, "failed to load crop")
		return harvest.Crop{}, false
	}
	return crop, true
}

func (s *server) loadFarm(w http.ResponseWriter, r *http.Request) (store.FarmSummary, harvest.Farm, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid farm id")
		return store.FarmSummary{}, harvest.Farm{}, false
	}

	summary, farm, err := s.store.GetFarm(id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return store.FarmSummary{}, harvest.Farm{}, false
	}
	if err != nil {
		log.Printf("get farm %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to load farm")
		return store.FarmSummary{}, harvest.Farm{}, false
	}
	return summary, farm, true
}

// calculatorFor returns a calculator in the server's mode unless the
// request overrides it with ?strict=.
func (s *server) calculatorFor(w http.ResponseWriter, r *http.Request) (harvest.Calculator, bool) {
	mode := s.mode
	if raw := r.URL.Query().Get("strict"); raw != "" {
		strict, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "strict must be a boolean")
			return harvest.Calculator{}, false
		}
		mode = modeFor(strict)
	}
	return harvest.NewCalculator(mode), true
}

func (s *server) writeCalculation(w http.ResponseWriter, operation string, mode harvest.Mode, env harvest.Environment, value float64, err error) {
	s.metrics.observe(operation, mode, value, err)
	if err != nil {
		writeCalculationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calculationPayload{
		Operation:   operation,
		Mode:        mode.String(),
		Environment: env,
		Value:       number(value),
	})
}

func writeCalculationError(w http.ResponseWriter, err error) {
	if isMissingDefinition(err) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	log.Printf("calculation failed: %v", err)
	writeError(w, http.StatusInternalServerError, "calculation failed")
}

func modeFor(strict bool) harvest.Mode {
	if strict {
		return harvest.Strict
	}
	return harvest.Permissive
}

// environmentFromQuery selects a level for every category present in q.
// A parameter present with an empty value still counts as selected.
func environmentFromQuery(q url.Values) harvest.Environment {
	var env harvest.Environment
	for _, category := range harvest.Categories {
		if !q.Has(string(category)) {
			continue
		}
		if env == nil {
			env = harvest.Environment{}
		}
		env[category] = q.Get(string(category))
	}
	return env
}

// environmentFromMap keeps the known categories of m; other keys are ignored.
func environmentFromMap(m map[string]string) harvest.Environment {
	var env harvest.Environment
	for _, category := range harvest.Categories {
		level, ok := m[string(category)]
		if !ok {
			continue
		}
		if env == nil {
			env = harvest.Environment{}
		}
		env[category] = level
	}
	return env
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
