package batch

import (
	"fmt"
	"io"

	"go-hep.org/x/hep/hbook"

	"github.com/katalvlaran/ttreco/kinematics"
	"github.com/katalvlaran/ttreco/reco"
)

// Histogram binning.
const (
	massBins, massMin, massMax       = 60, 140.0, 200.0
	weightBins, weightMin, weightMax = 50, 0.0, 1.0
	pairBins, pairMin, pairMax       = 60, 300.0, 1500.0
)

// Summary aggregates the outcomes of one run.
type Summary struct {
	Processed int
	Accepted  int
	Rejected  map[reco.Reason]int

	TopMass  *hbook.H1D // m(t) and m(t̄) of accepted events
	Weight   *hbook.H1D // winning weight
	PairMass *hbook.H1D // m(tt̄)
}

// NewSummary returns an empty Summary with named histograms.
func NewSummary() *Summary {
	s := &Summary{
		Rejected: make(map[reco.Reason]int),
		TopMass:  hbook.NewH1D(massBins, massMin, massMax),
		Weight:   hbook.NewH1D(weightBins, weightMin, weightMax),
		PairMass: hbook.NewH1D(pairBins, pairMin, pairMax),
	}
	for name, h := range map[string]*hbook.H1D{
		"top_mass":   s.TopMass,
		"weight":     s.Weight,
		"ttbar_mass": s.PairMass,
	} {
		h.Annotation()["name"] = name
		h.Annotation()["path"] = "/ttreco/" + name
	}

	return s
}

// Add records one outcome.
func (s *Summary) Add(out reco.Outcome) {
	s.Processed++
	if out.Status != reco.Accepted {
		s.Rejected[out.Reason]++
		return
	}
	s.Accepted++
	res := out.Result
	s.TopMass.Fill(kinematics.Mass(res.Top), 1)
	s.TopMass.Fill(kinematics.Mass(res.AntiTop), 1)
	s.Weight.Fill(res.Weight, 1)
	s.PairMass.Fill(kinematics.Mass(kinematics.Sum(res.Top, res.AntiTop)), 1)
}

// RejectedTotal returns the number of rejected events.
func (s *Summary) RejectedTotal() int {
	n := 0
	for _, v := range s.Rejected {
		n += v
	}
	return n
}

// WriteYODA writes the histograms to w in YODA format.
func (s *Summary) WriteYODA(w io.Writer) error {
	for _, h := range []*hbook.H1D{s.TopMass, s.Weight, s.PairMass} {
		raw, err := h.MarshalYODA()
		if err != nil {
			return fmt.Errorf("batch: yoda %v: %w", h.Annotation()["name"], err)
		}
		if _, err = w.Write(raw); err != nil {
			return fmt.Errorf("batch: yoda: %w", err)
		}
	}

	return nil
}
