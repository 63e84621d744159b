package record

import "strings"

// Procedures is the fixed controlled vocabulary of clinical actions a record
// may reference. Enumeration order matters: it is the tie-breaker when
// ranking procedures with equal counts.
var Procedures = []string{
	"Avaliação odontológica inicial",
	"Acabamento, polimento e ajuste oclusal",
	"Capeamento Direto/Indireto",
	"Restauração de ionômero (exceto núcleo de preenchimento)",
	"Restauração de resina (até 3 faces)",
	"Restauração provisória",
	"Orientação de higiene oral",
	"Profilaxia (polimento coronário)",
	"Raspagem supragengival",
	"Dessensibilização dentinária",
	"Manutenção do tratamento periodontal básico",
	"Raspagem subgengival (bolsa até 6mm)",
	"Radiografia periapical",
	"Consulta pré-operatória",
	"Controle pós-operatório",
	"Exodontia simples",
	"Remoção de foco residual",
	"Remoção de sutura",
	"Restauração provisória em resina autopolimerizável",
	"Recimentação",
	"Aumento de coroa clínica por elemento",
	"Urgência",
	"Ajuste oclusal",
	"Cimentação",
}

var procedureRank = func() map[string]int {
	m := make(map[string]int, len(Procedures))
	for i, p := range Procedures {
		m[p] = i
	}
	return m
}()

// ProcedureRank returns the vocabulary position of a procedure name.
// Unknown names report ok=false and rank after every vocabulary entry.
func ProcedureRank(name string) (int, bool) {
	rank, ok := procedureRank[name]
	if !ok {
		return len(Procedures), false
	}
	return rank, true
}

func IsKnownProcedure(name string) bool {
	_, ok := procedureRank[name]
	return ok
}

// SearchProcedures returns the vocabulary entries containing term,
// case-insensitively, preserving enumeration order. An empty term returns
// the full vocabulary.
func SearchProcedures(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]string(nil), Procedures...)
	}
	var out []string
	for _, p := range Procedures {
		if strings.Contains(strings.ToLower(p), term) {
			out = append(out, p)
		}
	}
	return out
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
