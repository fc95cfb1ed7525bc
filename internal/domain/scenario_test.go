package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets_AllValid(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, len(PresetNames()))

	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			cfg, ok := presets[name]
			require.True(t, ok)
			assert.Equal(t, name, cfg.Name)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestPresets_GateFlavors(t *testing.T) {
	presets := Presets()

	// Exactly one weekly-gate flavor per scenario: cdh_sc4 is the CDD
	// variant, everything else is the simple mask.
	for _, name := range PresetNames() {
		cfg := presets[name]
		if name == "cdh_sc4" {
			assert.Equal(t, GateCDDOr, cfg.Gate)
			assert.Equal(t, DefaultCDDBaseTemp, cfg.CDDBaseTemp)
			continue
		}
		assert.Equal(t, GateSimpleOr, cfg.Gate, name)
		assert.True(t, cfg.DailyGate, name)
	}

	// Only sc3 scenarios enable the weekly mean condition.
	assert.True(t, presets["hdh_sc3"].WeeklyGate)
	assert.True(t, presets["cdh_sc3"].WeeklyGate)
	assert.False(t, presets["hdh_sc1"].WeeklyGate)
	assert.False(t, presets["cdh_sc2"].WeeklyGate)
}

func TestScenarioConfig_Validate(t *testing.T) {
	valid := Presets()["cdh_sc4"]

	tests := []struct {
		name    string
		mutate  func(*ScenarioConfig)
		wantErr string
	}{
		{"valid preset", func(*ScenarioConfig) {}, ""},
		{"bad degree type", func(c *ScenarioConfig) { c.DegreeType = "tepid" }, "degree type"},
		{"negative bin width", func(c *ScenarioConfig) { c.BinWidth = -1 }, "bin width"},
		{"min equals max", func(c *ScenarioConfig) { c.RangeMin = c.RangeMax }, "range"},
		{"CDD gate on heating", func(c *ScenarioConfig) { c.DegreeType = Heating }, "cooling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestScenarioConfig_CDDBaseDefault(t *testing.T) {
	cfg := ScenarioConfig{Gate: GateCDDOr}
	assert.Equal(t, DefaultCDDBaseTemp, cfg.cddBase())

	cfg.CDDBaseTemp = 18.0
	assert.Equal(t, 18.0, cfg.cddBase())
}
