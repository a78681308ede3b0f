package forecast

import (
	"errors"
	"math"
)

// Scaler standardizes each column to zero mean and unit variance.
type Scaler struct {
	Mean       []float64 `json:"mean"`
	Scale      []float64 `json:"scale"`
	Generation int64     `json:"generation,omitempty"`
}

// FitScaler learns per-column mean and population standard deviation.
// Constant columns get a scale of 1 so they transform to 0.
func FitScaler(x [][]float64) (*Scaler, error) {
	if len(x) == 0 {
		return nil, errors.New("fit scaler: empty matrix")
	}
	cols := len(x[0])
	s := &Scaler{Mean: make([]float64, cols), Scale: make([]float64, cols)}
	n := float64(len(x))

	for _, row := range x {
		if len(row) != cols {
			return nil, errors.New("fit scaler: ragged matrix")
		}
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= n
	}

	for _, row := range x {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Scale[j] += d * d
		}
	}
	for j := range s.Scale {
		std := math.Sqrt(s.Scale[j] / n)
		if std == 0 {
			std = 1
		}
		s.Scale[j] = std
	}
	return s, nil
}

// Transform returns a standardized copy of vec.
func (s *Scaler) Transform(vec []float64) []float64 {
	out := make([]float64, len(vec))
	for j, v := range vec {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out
}

// TransformAll standardizes every row of x.
func (s *Scaler) TransformAll(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i, row := range x {
		out[i] = s.Transform(row)
	}
	return out
}

func (s *Scaler) valid(cols int) bool {
	return s != nil && len(s.Mean) == cols && len(s.Scale) == cols
}
