package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalflux/vitalflux/schema"
)

func TestNormalizeHappyPath(t *testing.T) {
	reg := schema.VitalFlux()
	raw := []byte(`{
		"chartType": "column",
		"title": "Number of Patients by Program",
		"dataOptions": {
			"category": ["DM.vitalflux_patients_csv.program"],
			"value": ["measureFactory.count(DM.vitalflux_patients_csv.patient_id, 'Total Patients')"]
		}
	}`)

	cfg, err := Normalize(reg, raw)
	require.NoError(t, err)
	assert.Equal(t, ChartColumn, cfg.ChartType)
	assert.Equal(t, "Number of Patients by Program", cfg.Title)
	assert.Equal(t, []string{"DM.vitalflux_patients_csv.program"}, cfg.DataOptions.Category)
}

func TestNormalizeStructuralRejections(t *testing.T) {
	reg := schema.VitalFlux()
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "here is your chart!"},
		{"json array", `[1, 2, 3]`},
		{"missing chart type", `{"title": "x", "dataOptions": {"value": ["a"]}}`},
		{"empty value list", `{"chartType": "bar", "dataOptions": {"value": []}}`},
		{"no data options", `{"chartType": "bar", "title": "x"}`},
		{"blank value entry", `{"chartType": "bar", "dataOptions": {"value": ["  "]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(reg, []byte(tt.raw))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, CodeMalformed, verr.Code)
			assert.Equal(t, "The response did not contain a valid widget configuration.", verr.Message)
		})
	}
}

func TestNormalizeUnsupportedChartType(t *testing.T) {
	reg := schema.VitalFlux()
	raw := []byte(`{
		"chartType": "sankey",
		"dataOptions": {"value": ["measureFactory.count(DM.vitalflux_patients_csv.patient_id)"]}
	}`)

	_, err := Normalize(reg, raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeUnsupportedChart, verr.Code)
	assert.Contains(t, verr.Message, `"sankey"`)
	assert.Contains(t, verr.Message, "line, bar, column, pie, indicator")
}

func TestNormalizeCrossTable(t *testing.T) {
	reg := schema.VitalFlux()
	raw := []byte(`{
		"chartType": "line",
		"dataOptions": {
			"category": ["DM.vitalflux_cohort_outcomes_csv.month"],
			"value": ["measureFactory.count(DM.vitalflux_patients_csv.patient_id)"]
		}
	}`)

	_, err := Normalize(reg, raw)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, CodeCrossTable, verr.Code)
	// Both offenders are named, sorted.
	assert.Contains(t, verr.Message, "vitalflux_cohort_outcomes_csv and vitalflux_patients_csv")
}

func TestNormalizeIgnoresUnparseableForCrossTable(t *testing.T) {
	reg := schema.VitalFlux()
	raw := []byte(`{
		"chartType": "pie",
		"dataOptions": {
			"category": ["region"],
			"value": ["measureFactory.count(DM.vitalflux_patients_csv.patient_id)", "garbage()"]
		}
	}`)

	cfg, err := Normalize(reg, raw)
	require.NoError(t, err)
	assert.Equal(t, "Untitled Widget", cfg.Title)
}

func TestRepairCategoryDates(t *testing.T) {
	reg := schema.VitalFlux()
	opts := Repair(reg, DataOptions{
		Category: []string{
			"DM.vitalflux_adherence_daily_csv.date",
			"DM.vitalflux_cohort_outcomes_csv.month",
			"DM.vitalflux_escalations_csv.date.Weeks",
			"DM.vitalflux_patients_csv.region",
			"DM.vitalflux_kpi_overview_csv.month",
			"not a reference",
		},
	})

	assert.Equal(t, []string{
		"DM.vitalflux_adherence_daily_csv.date.Days",
		"DM.vitalflux_cohort_outcomes_csv.month.Months",
		"DM.vitalflux_escalations_csv.date.Weeks",
		"DM.vitalflux_patients_csv.region",
		"DM.vitalflux_kpi_overview_csv.month",
		"not a reference",
	}, opts.Category)
}

func TestRepairMeasureInnerArgument(t *testing.T) {
	reg := schema.VitalFlux()
	opts := Repair(reg, DataOptions{
		Value: []string{
			"measureFactory.count(DM.vitalflux_escalations_csv.date, 'Escalations')",
			"measureFactory.avg(DM.vitalflux_cohort_outcomes_csv.adherence_pct)",
			// Bare date fields in value are widened at resolve time instead.
			"DM.vitalflux_escalations_csv.date",
		},
	})

	assert.Equal(t, []string{
		"measureFactory.count(DM.vitalflux_escalations_csv.date.Days, 'Escalations')",
		"measureFactory.avg(DM.vitalflux_cohort_outcomes_csv.adherence_pct)",
		"DM.vitalflux_escalations_csv.date",
	}, opts.Value)
}

func TestRepairIdempotent(t *testing.T) {
	reg := schema.VitalFlux()
	opts := DataOptions{
		Category: []string{"DM.vitalflux_adherence_daily_csv.date"},
		Value:    []string{"measureFactory.count(DM.vitalflux_cohort_outcomes_csv.month)"},
		BreakBy:  []string{"DM.vitalflux_adherence_daily_csv.region"},
	}
	once := Repair(reg, opts)
	twice := Repair(reg, once)
	assert.Equal(t, once, twice)
}

func TestChartType(t *testing.T) {
	for _, ct := range ChartTypes {
		assert.True(t, ct.Valid())
	}
	assert.False(t, ChartType("sankey").Valid())
	assert.False(t, ChartType("Line").Valid())

	assert.True(t, ChartIndicator.IsIndicator())
	assert.False(t, ChartBar.IsIndicator())
}
