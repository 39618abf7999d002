package schema

// ============================================================================
// VITALFLUX CATALOG — Compiled data model for the remote-monitoring cube
// ============================================================================
// Generated from the BI modeling tool and checked in; keep field order in
// sync with the cube. Note: vitalflux_kpi_overview_csv.month is a plain
// text column in the cube, not a date dimension.
// ============================================================================

// VitalFlux returns the builtin registry for the VitalFlux datasource.
func VitalFlux() *Registry {
	return NewRegistry("VitalFlux", []Table{
		{
			Name:    "vitalflux_adherence_daily_csv",
			Display: "vitalflux_adherence_daily.csv",
			Fields: []Field{
				{Name: "adherent_flag", Kind: KindNumeric},
				{Name: "condition", Kind: KindText},
				{Name: "patient_id", Kind: KindText},
				{Name: "program", Kind: KindText},
				{Name: "region", Kind: KindText},
				{Name: "date", Kind: KindDate},
			},
		},
		{
			Name:    "vitalflux_cohort_outcomes_csv",
			Display: "vitalflux_cohort_outcomes.csv",
			Fields: []Field{
				{Name: "adherence_pct", Kind: KindNumeric},
				{Name: "condition", Kind: KindText},
				{Name: "readmit_30d_pct", Kind: KindNumeric},
				{Name: "region", Kind: KindText},
				{Name: "month", Kind: KindDate},
			},
		},
		{
			Name:    "vitalflux_cost_impact_csv",
			Display: "vitalflux_cost_impact.csv",
			Fields: []Field{
				{Name: "baseline_readmit_pct", Kind: KindNumeric},
				{Name: "current_readmit_pct", Kind: KindNumeric},
				{Name: "est_cost_avoidance_usd", Kind: KindNumeric},
				{Name: "program", Kind: KindText},
				{Name: "program_impact_proxy_pct", Kind: KindNumeric},
				{Name: "quarter", Kind: KindText},
				{Name: "region", Kind: KindText},
			},
		},
		{
			Name:    "vitalflux_escalations_csv",
			Display: "vitalflux_escalations.csv",
			Fields: []Field{
				{Name: "condition", Kind: KindText},
				{Name: "escalation_id", Kind: KindText},
				{Name: "patient_id", Kind: KindText},
				{Name: "program", Kind: KindText},
				{Name: "reason", Kind: KindText},
				{Name: "region", Kind: KindText},
				{Name: "resolved_flag", Kind: KindNumeric},
				{Name: "severity", Kind: KindText},
				{Name: "date", Kind: KindDate},
				{Name: "resolved_date", Kind: KindDate},
			},
		},
		{
			Name:    "vitalflux_escalations_by_reason_monthly_csv",
			Display: "vitalflux_escalations_by_reason_monthly.csv",
			Fields: []Field{
				{Name: "count", Kind: KindNumeric},
				{Name: "reason", Kind: KindText},
				{Name: "region", Kind: KindText},
				{Name: "month", Kind: KindDate},
			},
		},
		{
			Name:    "vitalflux_high_risk_patients_csv",
			Display: "vitalflux_high_risk_patients.csv",
			Fields: []Field{
				{Name: "age_band", Kind: KindText},
				{Name: "condition", Kind: KindText},
				{Name: "device_model", Kind: KindText},
				{Name: "patient_id", Kind: KindText},
				{Name: "program", Kind: KindText},
				{Name: "region", Kind: KindText},
				{Name: "risk_score", Kind: KindNumeric},
				{Name: "sex", Kind: KindText},
			},
		},
		{
			Name:    "vitalflux_kpi_overview_csv",
			Display: "vitalflux_kpi_overview.csv",
			Fields: []Field{
				{Name: "active_patients", Kind: KindNumeric},
				{Name: "avg_adherence_pct", Kind: KindText},
				{Name: "escalations_per_100", Kind: KindNumeric},
				{Name: "month", Kind: KindText},
				{Name: "readmit_30d_pct", Kind: KindText},
				{Name: "region", Kind: KindText},
			},
		},
		{
			Name:    "vitalflux_patients_csv",
			Display: "vitalflux_patients.csv",
			Fields: []Field{
				{Name: "active", Kind: KindText},
				{Name: "age_band", Kind: KindText},
				{Name: "condition", Kind: KindText},
				{Name: "device_model", Kind: KindText},
				{Name: "patient_id", Kind: KindText},
				{Name: "program", Kind: KindText},
				{Name: "region", Kind: KindText},
				{Name: "risk_band", Kind: KindText},
				{Name: "sex", Kind: KindText},
				{Name: "enrollment_date", Kind: KindDate},
			},
		},
		{
			Name:    "vitalflux_readmissions_csv",
			Display: "vitalflux_readmissions.csv",
			Fields: []Field{
				{Name: "condition", Kind: KindText},
				{Name: "encounter_id", Kind: KindText},
				{Name: "patient_id", Kind: KindText},
				{Name: "program", Kind: KindText},
				{Name: "readmitted_within_30d", Kind: KindNumeric},
				{Name: "region", Kind: KindText},
				{Name: "index_discharge_date", Kind: KindDate},
				{Name: "readmit_date", Kind: KindDate},
			},
		},
	})
}
