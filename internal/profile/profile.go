// Package profile defines scoring-target profiles: the ring table, bullet
// caliber and physical dimensions of one target type.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrInvalidProfile indicates a structurally invalid target profile.
// Nothing downstream ever scores against a profile that fails validation.
var ErrInvalidProfile = errors.New("invalid target profile")

// Ring represents a single scoring ring.
type Ring struct {
	Label      string  `json:"ring"`
	Score      float64 `json:"score"`
	DiameterMM float64 `json:"diameter_mm"`
}

// RadiusMM returns the ring radius in millimeters.
func (r Ring) RadiusMM() float64 {
	return r.DiameterMM / 2
}

// TargetProfile describes one target type. Rings are ordered innermost
// (smallest diameter) to outermost.
type TargetProfile struct {
	Name                string  `json:"name"`
	BulletDiameterMM    float64 `json:"bullet_diameter_mm"`
	Rings               []Ring  `json:"rings"`
	BlackAreaDiameterMM float64 `json:"black_area_diameter_mm"`
	TotalDiameterMM     float64 `json:"total_diameter_mm"`
}

// BulletRadiusMM returns half the bullet diameter.
func (p *TargetProfile) BulletRadiusMM() float64 {
	return p.BulletDiameterMM / 2
}

// Innermost returns the highest-value (smallest) ring.
func (p *TargetProfile) Innermost() Ring {
	return p.Rings[0]
}

// Outermost returns the lowest-value (largest) ring.
func (p *TargetProfile) Outermost() Ring {
	return p.Rings[len(p.Rings)-1]
}

// Validate checks the structural invariants of the profile.
func (p *TargetProfile) Validate() error {
	if p.BulletDiameterMM <= 0 {
		return fmt.Errorf("%w: bullet diameter %.2f mm", ErrInvalidProfile, p.BulletDiameterMM)
	}
	if p.BlackAreaDiameterMM <= 0 {
		return fmt.Errorf("%w: black area diameter %.2f mm", ErrInvalidProfile, p.BlackAreaDiameterMM)
	}
	if len(p.Rings) == 0 {
		return fmt.Errorf("%w: no rings", ErrInvalidProfile)
	}
	prev := 0.0
	for i, r := range p.Rings {
		if r.DiameterMM <= 0 {
			return fmt.Errorf("%w: ring %q has diameter %.2f mm", ErrInvalidProfile, r.Label, r.DiameterMM)
		}
		if r.DiameterMM <= prev {
			return fmt.Errorf("%w: rings must be ordered innermost to outermost (ring %d)", ErrInvalidProfile, i)
		}
		prev = r.DiameterMM
	}
	return nil
}

// Load reads a target profile from a JSON file and validates it.
func Load(path string) (*TargetProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p TargetProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse target profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}
