package radar

import "encoding/json"

// Result is the habilitation snapshot extracted from the upstream.
type Result struct {
	ContributorName string
	Status          string
	StatusDate      string
	Submodality     string
}

// HasNoUsableFields reports that the upstream answered but populated
// none of the logical fields. The aggregation layer turns this into the
// "NÃO HABILITADA" label instead of treating it as a failure.
func (r *Result) HasNoUsableFields() bool {
	return r.ContributorName == "" &&
		r.Status == "" &&
		r.StatusDate == "" &&
		r.Submodality == ""
}

// The upstream has renamed its fields more than once. Extraction walks
// these candidate lists in order and takes the first non-empty value, so
// a new schema variant is one more entry, not a new code branch.
var (
	contributorKeys = []string{"contribuinte", "nome_contribuinte", "contr_nome"}
	statusKeys      = []string{"situacao", "situacao_habilitacao", "status"}
	statusDateKeys  = []string{"data_situacao", "situacao_data", "data_situacao_habilitacao"}
	submodalityKeys = []string{"submodalidade", "submodalidade_texto", "submodalidade_descricao"}
)

type radarResponse struct {
	Data json.RawMessage `json:"data"`
}

func (p *radarResponse) toResult() *Result {
	record := normalizeRecord(p.Data)
	return &Result{
		ContributorName: firstNonEmpty(record, contributorKeys),
		Status:          firstNonEmpty(record, statusKeys),
		StatusDate:      firstNonEmpty(record, statusDateKeys),
		Submodality:     firstNonEmpty(record, submodalityKeys),
	}
}

// normalizeRecord flattens the upstream's inconsistent "data" shapes to
// one record or nil: an array (first element), an object keyed "0" (an
// integer key in the producer serializes to the same thing), or the
// record itself.
func normalizeRecord(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	var asList []map[string]any
	if err := json.Unmarshal(raw, &asList); err == nil {
		if len(asList) == 0 {
			return nil
		}
		return asList[0]
	}

	var asObject map[string]any
	if err := json.Unmarshal(raw, &asObject); err != nil {
		return nil
	}

	if nested, ok := asObject["0"].(map[string]any); ok {
		return nested
	}
	return asObject
}

func firstNonEmpty(record map[string]any, keys []string) string {
	if record == nil {
		return ""
	}

	for _, key := range keys {
		if val, ok := record[key].(string); ok && val != "" {
			return val
		}
	}
	return ""
}
