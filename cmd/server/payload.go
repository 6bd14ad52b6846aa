package main

import (
	"encoding/json"
	"log"
	"math"
	"net/http"

	"github.com/Simplici0/groentetuin/internal/harvest"
	"github.com/Simplici0/groentetuin/internal/report"
	"github.com/Simplici0/groentetuin/internal/store"
)

// number is a float64 that encodes NaN and infinities as null.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

type cropPayload struct {
	Name       string          `json:"name"`
	Yield      float64         `json:"yield"`
	Costs      *float64        `json:"costs"`
	SalesPrice *float64        `json:"salesPrice"`
	Factors    harvest.Factors `json:"factors,omitempty"`
}

func newCropPayload(crop harvest.Crop) cropPayload {
	return cropPayload{
		Name:       crop.Name,
		Yield:      crop.Yield,
		Costs:      crop.Costs,
		SalesPrice: crop.SalesPrice,
		Factors:    crop.Factors,
	}
}

func (p cropPayload) crop() harvest.Crop {
	return harvest.Crop{
		Name:       p.Name,
		Yield:      p.Yield,
		Costs:      p.Costs,
		SalesPrice: p.SalesPrice,
		Factors:    p.Factors,
	}
}

type batchRefPayload struct {
	Crop     string `json:"crop"`
	NumCrops int    `json:"numCrops"`
}

type createFarmRequest struct {
	Name    string            `json:"name"`
	Batches []batchRefPayload `json:"batches"`
}

type farmPayload struct {
	store.FarmSummary
	Batches []batchRefPayload `json:"batches"`
}

type calculateRequest struct {
	Farm struct {
		Crops []struct {
			Crop     cropPayload `json:"crop"`
			NumCrops int         `json:"numCrops"`
		} `json:"crops"`
	} `json:"farm"`
	Environment map[string]string `json:"environment"`
	Strict      *bool             `json:"strict"`
}

type calculationPayload struct {
	Operation   string              `json:"operation"`
	Mode        string              `json:"mode"`
	Environment harvest.Environment `json:"environment"`
	Value       number              `json:"value"`
}

type linePayload struct {
	Crop       string `json:"crop"`
	NumCrops   int    `json:"numCrops"`
	PlantYield number `json:"plantYield"`
	Yield      number `json:"yield"`
	Costs      number `json:"costs"`
	Revenue    number `json:"revenue"`
	Profit     number `json:"profit"`
}

type totalsPayload struct {
	Yield   number `json:"yield"`
	Costs   number `json:"costs"`
	Revenue number `json:"revenue"`
	Profit  number `json:"profit"`
}

type reportPayload struct {
	Farm        *store.FarmSummary  `json:"farm,omitempty"`
	Mode        string              `json:"mode"`
	Environment harvest.Environment `json:"environment"`
	Lines       []linePayload       `json:"lines"`
	Totals      totalsPayload       `json:"totals"`
}

func newReportPayload(mode harvest.Mode, result report.Result) reportPayload {
	payload := reportPayload{
		Mode:        mode.String(),
		Environment: result.Environment,
		Lines:       make([]linePayload, 0, len(result.Lines)),
		Totals: totalsPayload{
			Yield:   number(result.Totals.Yield),
			Costs:   number(result.Totals.Costs),
			Revenue: number(result.Totals.Revenue),
			Profit:  number(result.Totals.Profit),
		},
	}
	for _, line := range result.Lines {
		payload.Lines = append(payload.Lines, linePayload{
			Crop:       line.Crop,
			NumCrops:   line.NumCrops,
			PlantYield: number(line.PlantYield),
			Yield:      number(line.Yield),
			Costs:      number(line.Costs),
			Revenue:    number(line.Revenue),
			Profit:     number(line.Profit),
		})
	}
	return payload
}

type errorPayload struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("warning: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorPayload{Error: message})
}
