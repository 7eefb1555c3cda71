package tone

import (
	"log/slog"
	"sync"

	"github.com/prosecheck/prosecheck/internal/model"
)

var (
	sharedOnce       sync.Once
	sharedClassifier *Classifier
	sharedErr        error
)

// Shared returns a process-wide Classifier built once from the first
// configuration it sees. Later calls ignore their arguments.
func Shared(cfg model.ToneConfig, logger *slog.Logger) (*Classifier, error) {
	sharedOnce.Do(func() {
		sharedClassifier, sharedErr = NewClassifier(cfg, logger)
	})
	return sharedClassifier, sharedErr
}
