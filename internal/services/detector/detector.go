package detector

import (
	"github.com/berkayda/hawkeye-public/internal/domain"
)

// Detector defines the interface for volume spike detection
type Detector interface {
	Detect(features domain.FeatureSet) domain.SpikeVerdict
}
