package domain

import "errors"

var (
	// ErrDatasetLoad signals that the reference dataset could not be read or parsed.
	ErrDatasetLoad = errors.New("dataset load failed")
	// ErrModelLoad signals a missing or corrupt model artifact.
	ErrModelLoad = errors.New("model load failed")
	// ErrSchemaMismatch signals a feature vector built for a different schema than the model's.
	ErrSchemaMismatch = errors.New("feature schema mismatch")
	// ErrInvalidPrediction signals a non-finite model output.
	ErrInvalidPrediction = errors.New("invalid prediction")
)
