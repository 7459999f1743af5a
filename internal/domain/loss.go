package domain

import (
	"fmt"
	"math"
)

// ValidationErrors holds the error metrics between modelled and measured IAT.
type ValidationErrors struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
}

// MAE returns the mean absolute error between predicted and actual values.
func MAE(predicted, actual []float64) (float64, error) {
	return meanOf(predicted, actual, func(d float64) float64 { return math.Abs(d) })
}

// MSE returns the mean squared error between predicted and actual values.
func MSE(predicted, actual []float64) (float64, error) {
	return meanOf(predicted, actual, func(d float64) float64 { return d * d })
}

// RMSE returns the root mean squared error, always math.Sqrt of MSE.
func RMSE(predicted, actual []float64) (float64, error) {
	mse, err := MSE(predicted, actual)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// Errors computes RMSE and MAE in one call.
func Errors(predicted, actual []float64) (ValidationErrors, error) {
	rmse, err := RMSE(predicted, actual)
	if err != nil {
		return ValidationErrors{}, err
	}
	mae, err := MAE(predicted, actual)
	if err != nil {
		return ValidationErrors{}, err
	}
	return ValidationErrors{RMSE: rmse, MAE: mae}, nil
}

// ErrorText renders the validation sentence shown next to the comparison chart.
func ErrorText(e ValidationErrors) string {
	return fmt.Sprintf("The error between the modelled and the measured data was calculated using RMSE: %.2f and MAE: %.2f.", e.RMSE, e.MAE)
}

// meanOf averages f(predicted_i - actual_i). Pairs with a NaN on either side
// are skipped, matching how missing sensor readings are ignored.
func meanOf(predicted, actual []float64, f func(float64) float64) (float64, error) {
	if len(predicted) == 0 || len(actual) == 0 {
		return 0, fmt.Errorf("%w: empty input", ErrShape)
	}
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("%w: length mismatch %d != %d", ErrShape, len(predicted), len(actual))
	}

	var sum float64
	n := 0
	for i := range predicted {
		if math.IsNaN(predicted[i]) || math.IsNaN(actual[i]) {
			continue
		}
		sum += f(predicted[i] - actual[i])
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: no comparable samples", ErrShape)
	}
	return sum / float64(n), nil
}
