package gateway

import (
	"fmt"
	"strings"

	"github.com/vitalflux/vitalflux/schema"
	"github.com/vitalflux/vitalflux/widget"
)

// ============================================================================
// PROMPT BUILDER — Schema-driven generation contract
// ============================================================================
// The outbound prompt is assembled in a fixed order: role and goal, the
// full schema as text, the allowed chart types, worked examples mapping a
// request to a literal JSON config, then the user's raw text. The model
// only ever sees catalog metadata — never patient data.
// ============================================================================

// BuildPrompt composes the single outbound prompt for one user message.
func BuildPrompt(reg *schema.Registry, userText string) string {
	var b strings.Builder

	// ── Role / goal ───────────────────────────────────────────────────────
	fmt.Fprintf(&b, `You are the %s AI Assistant for a healthcare analytics dashboard.
Translate the user's request into a chart widget configuration.
Return ONLY a single JSON object. No markdown, no prose, no code fences.

`, reg.Source())

	// ── Schema ────────────────────────────────────────────────────────────
	b.WriteString("DATA MODEL (tables and fields — the only fields that exist):\n")
	b.WriteString(buildSchemaDescription(reg))
	b.WriteString("\n")

	// ── Chart types ───────────────────────────────────────────────────────
	types := make([]string, len(widget.ChartTypes))
	for i, t := range widget.ChartTypes {
		types[i] = string(t)
	}
	fmt.Fprintf(&b, "ALLOWED CHART TYPES: %s\n\n", strings.Join(types, ", "))

	// ── Reference grammar + rules ─────────────────────────────────────────
	b.WriteString(referenceRules)

	// ── Worked examples ───────────────────────────────────────────────────
	b.WriteString(workedExamples)

	// ── User request ──────────────────────────────────────────────────────
	b.WriteString("USER REQUEST: " + userText + "\n\nRespond with valid JSON only:")

	return b.String()
}

func buildSchemaDescription(reg *schema.Registry) string {
	var b strings.Builder
	for _, t := range reg.Tables() {
		fmt.Fprintf(&b, "- %s:\n", t.Name)
		for _, f := range t.Fields {
			fmt.Fprintf(&b, "    %s (%s", f.Name, f.Kind)
			if f.IsDate() {
				fmt.Fprintf(&b, ", granularities: %s", strings.Join(f.Granularities, "|"))
			}
			b.WriteString(")\n")
		}
	}
	return b.String()
}

const referenceRules = `RESPONSE SHAPE:
{
  "chartType": "line" | "bar" | "column" | "pie" | "indicator",
  "title": string,
  "description": string (optional),
  "dataOptions": {
    "category": string[],
    "value": string[],
    "breakBy": string[] (optional),
    "secondary": string[] (indicator charts only)
  }
}

REFERENCE RULES:
1. Every field reference is a string of the form "DM.<table>.<field>".
2. Date fields MUST carry a granularity suffix: "DM.<table>.<field>.<Granularity>"
   (e.g. "DM.vitalflux_adherence_daily_csv.date.Days"). Use Days for daily
   fields and Months for monthly fields.
3. Aggregated values use "measureFactory.<agg>(DM.<table>.<field>, '<Label>')"
   where <agg> is one of: sum, avg, count, min, max.
4. All fields in one widget MUST come from the SAME table. Never mix tables.
5. "value" must contain at least one entry.

`

const workedExamples = `EXAMPLES:
- "Show me the number of patients per program" →
{"chartType":"bar","title":"Number of Patients by Program","dataOptions":{"category":["DM.vitalflux_patients_csv.program"],"value":["measureFactory.count(DM.vitalflux_patients_csv.patient_id, 'Total Patients')"]}}
- "Readmission rate trend by month" →
{"chartType":"line","title":"Readmission Rate Over Time","dataOptions":{"category":["DM.vitalflux_cohort_outcomes_csv.month.Months"],"value":["measureFactory.avg(DM.vitalflux_cohort_outcomes_csv.readmit_30d_pct, 'Readmit %')"]}}
- "Escalations by reason, split by region" →
{"chartType":"column","title":"Escalations by Reason and Region","dataOptions":{"category":["DM.vitalflux_escalations_csv.reason"],"value":["measureFactory.count(DM.vitalflux_escalations_csv.escalation_id, 'Escalations')"],"breakBy":["DM.vitalflux_escalations_csv.region"]}}
- "Total estimated cost avoidance" →
{"chartType":"indicator","title":"Estimated Cost Avoidance","dataOptions":{"value":["measureFactory.sum(DM.vitalflux_cost_impact_csv.est_cost_avoidance_usd, 'Cost Avoidance (USD)')"]}}

`
