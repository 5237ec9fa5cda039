// ABOUTME: Data models for compression spring selection
// ABOUTME: Assembly input, candidate springs, sweep configuration, and search results

package models

import "strings"

// Unit conversion and material constants
const (
	// DefaultShearModulus is the shear modulus of spring steel in kgf/mm^2
	DefaultShearModulus = 8000.0
	// KgfToLbf converts kilogram-force to pound-force
	KgfToLbf = 2.2046
	// KgfPerMM2ToPSI converts kgf/mm^2 to lbf/in^2
	KgfPerMM2ToPSI = 1421.0573
	// MaxPitchMM is the manufacturability limit on coil pitch
	MaxPitchMM = 2.5
	// SolidLengthRatio is the minimum solid length as a fraction of free length
	SolidLengthRatio = 0.75
	// PSIBand is the accepted deviation from the target chip pressure
	PSIBand = 0.10
)

// NoFeasibleMessage is reported when no candidate reaches the minimum score.
const NoFeasibleMessage = "no combination satisfies the minimum feasibility threshold"

// AssemblyInput describes the screw-retention assembly a spring must fit.
// All lengths are in millimetres.
type AssemblyInput struct {
	ChipLength         float64 `json:"chip_length_mm" yaml:"chip_length_mm" validate:"gt=0,lte=1000"`
	ChipWidth          float64 `json:"chip_width_mm" yaml:"chip_width_mm" validate:"gt=0,lte=1000"`
	ScrewStroke        float64 `json:"screw_stroke_mm" yaml:"screw_stroke_mm" validate:"gt=0,lte=100"`
	SpringRoomUnlock   float64 `json:"spring_room_unlock_mm" yaml:"spring_room_unlock_mm" validate:"gt=0,lte=100"`
	ScrewShaftDiameter float64 `json:"screw_shaft_diameter_mm" yaml:"screw_shaft_diameter_mm" validate:"gt=0,lte=100"`
	ScrewHeadDiameter  float64 `json:"screw_head_diameter_mm" yaml:"screw_head_diameter_mm" validate:"gt=0,lte=100,gtfield=ScrewShaftDiameter"`
	ChipMaxPSI         float64 `json:"chip_max_psi" yaml:"chip_max_psi" validate:"gt=0"`
	ScrewCount         int     `json:"screw_count" yaml:"screw_count" validate:"gte=1"`
	ResultCount        int     `json:"result_count" yaml:"result_count" validate:"gte=1"`
	ShearModulus       float64 `json:"shear_modulus,omitempty" yaml:"shear_modulus,omitempty" validate:"gte=0"` // kgf/mm^2, 0 = DefaultShearModulus
}

// DefaultAssemblyInput returns the values the web form starts with.
func DefaultAssemblyInput() AssemblyInput {
	return AssemblyInput{
		ChipLength:         25,
		ChipWidth:          25,
		ScrewStroke:        0.3,
		SpringRoomUnlock:   2.5,
		ScrewShaftDiameter: 1.2,
		ScrewHeadDiameter:  2.4,
		ChipMaxPSI:         40,
		ScrewCount:         4,
		ResultCount:        5,
		ShearModulus:       DefaultShearModulus,
	}
}

// EffectiveShearModulus returns the configured modulus or the steel default.
func (a AssemblyInput) EffectiveShearModulus() float64 {
	if a.ShearModulus > 0 {
		return a.ShearModulus
	}
	return DefaultShearModulus
}

// ScoringMode selects which feasibility conditions contribute to the score
type ScoringMode string

const (
	// ScoringFull evaluates all four conditions (canonical)
	ScoringFull ScoringMode = "full"
	// ScoringLegacy drops the solid-length ratio condition (web form variant)
	ScoringLegacy ScoringMode = "legacy"
)

// MaxScore returns the highest score reachable in this mode.
func (m ScoringMode) MaxScore() int {
	if m == ScoringLegacy {
		return 3
	}
	return 4
}

// ParseScoringMode converts a string to a ScoringMode. Empty means full.
func ParseScoringMode(s string) (ScoringMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full":
		return ScoringFull, true
	case "legacy":
		return ScoringLegacy, true
	default:
		return "", false
	}
}

// SweepConfig holds the discretization of the design grid.
type SweepConfig struct {
	WireDiameterMin   float64     `json:"wire_diameter_min_mm"`
	WireDiameterMax   float64     `json:"wire_diameter_max_mm"`
	WireDiameterStep  float64     `json:"wire_diameter_step_mm"`
	InnerDiameterStep float64     `json:"inner_diameter_step_mm"`
	ClearanceMargin   float64     `json:"clearance_margin_mm"` // kept between coil and screw shaft/head
	CoilCountMin      float64     `json:"coil_count_min"`
	CoilCountMax      float64     `json:"coil_count_max"`
	CoilStep          float64     `json:"coil_step"`
	FreeLengthMargin  float64     `json:"free_length_margin_mm"` // minimum free length above solid length
	FreeLengthStep    float64     `json:"free_length_step_mm"`
	MinScore          int         `json:"min_score"`
	Scoring           ScoringMode `json:"scoring"`
}

// DefaultSweepConfig returns the standard grid used by the calculator.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		WireDiameterMin:   0.2,
		WireDiameterMax:   1.0,
		WireDiameterStep:  0.1,
		InnerDiameterStep: 0.1,
		ClearanceMargin:   0.01,
		CoilCountMin:      3,
		CoilCountMax:      20,
		CoilStep:          1,
		FreeLengthMargin:  0.1,
		FreeLengthStep:    0.5,
		MinScore:          2,
		Scoring:           ScoringFull,
	}
}

// Check is the outcome of a single feasibility condition
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Reason string `json:"reason,omitempty"`
}

// Feasibility condition names, in evaluation order
const (
	CheckChipPressure = "chip_pressure"
	CheckPreload      = "preload"
	CheckPitch        = "pitch"
	CheckSolidLength  = "solid_length"
)

// CandidateSpring is one evaluated point of the design grid.
// Lengths in mm, spring rate in kgf/mm, forces in kgf or lbf.
type CandidateSpring struct {
	// Swept parameters
	WireDiameter  float64 `json:"wire_diameter_mm"`
	InnerDiameter float64 `json:"inner_diameter_mm"`
	CoilCount     float64 `json:"coil_count"`
	FreeLength    float64 `json:"free_length_mm"`

	// Derived geometry and loads
	OuterDiameter   float64 `json:"outer_diameter_mm"`
	MeanDiameter    float64 `json:"mean_diameter_mm"`
	ActiveCoils     float64 `json:"active_coils"`
	SpringRate      float64 `json:"spring_rate_kgf_mm"`
	SolidLength     float64 `json:"solid_length_mm"`
	CoilBoundLength float64 `json:"coil_bound_length_mm"` // SN x WD
	Preload         float64 `json:"preload_mm"`
	Pitch           float64 `json:"pitch_mm"`
	ScrewRoomLocked float64 `json:"screw_room_locked_mm"`
	Stroke          float64 `json:"stroke_mm"`
	StackCheck      float64 `json:"stack_check_mm"`
	PerScrewForce   float64 `json:"per_screw_force_kgf"`
	TotalForceKgf   float64 `json:"total_force_kgf"`
	TotalForceLbf   float64 `json:"total_force_lbf"`
	ChipPressurePSI float64 `json:"chip_pressure_psi"`

	// Evaluation
	Score   int      `json:"score"`
	Checks  []Check  `json:"checks"`
	Reasons []string `json:"reasons"`
}

// Feasible reports whether every evaluated condition passed.
func (c CandidateSpring) Feasible() bool {
	return len(c.Reasons) == 0
}

// SweepStats counts what happened to each enumerated tuple
type SweepStats struct {
	Enumerated        int `json:"enumerated"`
	PrunedActiveCoils int `json:"pruned_active_coils"`
	PrunedPreload     int `json:"pruned_preload"`
	PrunedStack       int `json:"pruned_stack"`
	BelowMinScore     int `json:"below_min_score"`
	Retained          int `json:"retained"`
}

// SearchResult is the ranked output of one search
type SearchResult struct {
	Input         AssemblyInput     `json:"input"`
	Sweep         SweepConfig       `json:"sweep"`
	Candidates    []CandidateSpring `json:"candidates"`
	Requested     int               `json:"requested"`
	Returned      int               `json:"returned"`
	TotalRetained int               `json:"total_retained"`
	Shortfall     bool              `json:"shortfall"` // fewer retained than requested
	Empty         bool              `json:"empty"`
	MaxScore      int               `json:"max_score"`
	Message       string            `json:"message,omitempty"`
	Stats         SweepStats        `json:"stats"`
	Cached        bool              `json:"cached"`
}

// Stars renders a score as filled and empty stars, e.g. 3 of 4 -> "★★★☆".
func Stars(score, max int) string {
	if max < 0 {
		max = 0
	}
	if score < 0 {
		score = 0
	}
	if score > max {
		score = max
	}
	return strings.Repeat("★", score) + strings.Repeat("☆", max-score)
}
