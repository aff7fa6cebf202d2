package filter

// Response is the behavior a set of component values actually realizes.
type Response struct {
	Frequency float64 `json:"frequency"`
	Gain      float64 `json:"gain"`
	Q         float64 `json:"q"`
}

// StageSummary is the value-level description of one stage.
type StageSummary struct {
	Index    int      `json:"index"`
	Params   Params   `json:"params"`
	Values   Values   `json:"values"`
	Labels   Labels   `json:"labels"`
	Response Response `json:"response"`
}

// Summary describes a synthesized filter without its geometry.
type Summary struct {
	Family    string         `json:"family,omitempty"`
	Order     int            `json:"order"`
	Frequency float64        `json:"frequency"`
	Gain      float64        `json:"gain"`
	R1        float64        `json:"r1"`
	Stages    []StageSummary `json:"stages"`
}

func (s *Stage) summarize(index int) StageSummary {
	f, g, q := s.Values.Response()
	return StageSummary{
		Index:    index,
		Params:   s.Params,
		Values:   s.Values,
		Labels:   s.Values.Labels(),
		Response: Response{Frequency: f, Gain: g, Q: q},
	}
}

// Summary describes the stage as a second-order filter.
func (s *Stage) Summary() Summary {
	return Summary{
		Order:     2,
		Frequency: s.Params.Frequency,
		Gain:      s.Params.Gain,
		R1:        s.Params.R1,
		Stages:    []StageSummary{s.summarize(1)},
	}
}

// Summary describes every stage of the cascade.
func (c *Cascade) Summary() Summary {
	sum := Summary{
		Family:    c.Design.Family.Name(),
		Order:     c.Design.Order,
		Frequency: c.Design.Frequency,
		Gain:      c.Design.Gain,
		R1:        c.Design.R1,
	}
	for i, s := range c.Stages {
		sum.Stages = append(sum.Stages, s.summarize(i+1))
	}
	return sum
}
